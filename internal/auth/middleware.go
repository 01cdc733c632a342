package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/mkarpushin/board/internal/errresponse"
	"github.com/mkarpushin/board/internal/model"
	"github.com/mkarpushin/board/internal/user"
)

type ctxKey int8

const ctxKeyUser ctxKey = iota

// Auth owns token verification and the requester resolution that
// downstream handlers rely on for authorization checks.
type Auth struct {
	jwt   *JWT
	users *user.Directory
}

func New(jwt *JWT, users *user.Directory) *Auth {
	return &Auth{jwt: jwt, users: users}
}

// RequireUser verifies the Authorization token, resolves the
// requester in the user directory and puts it on the request context.
// Every mutating route goes through here so services always receive
// an explicit requester instead of ambient identity.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.Header.Get("Authorization")
		tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")
		if tokenStr == "" {
			a.unauthorized(w, r, errors.New("missing token"))

			return
		}

		claims, err := a.jwt.Parse(tokenStr)
		if err != nil {
			a.unauthorized(w, r, err)

			return
		}

		requester, err := a.users.ByUsername(r.Context(), claims.Username)
		if err != nil {
			a.unauthorized(w, r, ErrTokenInvalid)

			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser, requester)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	if rerr := render.Render(w, r, errresponse.ErrUnauthorized(err)); rerr != nil {
		log.Println(rerr)
	}
}

// RequesterFromContext returns the user RequireUser resolved. Handlers
// behind RequireUser may assume it is present; the Recoverer
// middleware catches the panic if it is not, which means a wiring bug.
func RequesterFromContext(ctx context.Context) *model.User {
	return ctx.Value(ctxKeyUser).(*model.User)
}
