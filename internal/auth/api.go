package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/mkarpushin/board/internal/errresponse"
	"github.com/mkarpushin/board/internal/user"
	"github.com/mkarpushin/board/internal/userpayload"
)

// Signup registers a new user and returns it back to the client as an
// acknowledgement.
func (a *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.SignupRequest{}
	if err := render.Bind(r, data); err != nil {
		if err := render.Render(w, r, errresponse.ErrInvalidRequest(err)); err != nil {
			log.Println(err)
		}

		return
	}

	u, err := a.users.Register(r.Context(), data.Username, data.Password)
	if err != nil {
		if errors.Is(err, user.ErrExists) {
			err = render.Render(w, r, errresponse.ErrInvalidRequest(err))
		} else {
			err = render.Render(w, r, errresponse.ErrInternal(err))
		}
		if err != nil {
			log.Println(err)
		}

		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, userpayload.NewUserPayloadResponse(u)); err != nil {
		log.Println(err)
	}
}

// Login checks credentials and issues a token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.TokenRequest{}
	if err := render.Bind(r, data); err != nil {
		if err := render.Render(w, r, errresponse.ErrInvalidRequest(err)); err != nil {
			log.Println(err)
		}

		return
	}

	u, err := a.users.Authenticate(r.Context(), data.Username, data.Password)
	if err != nil {
		if err := render.Render(w, r, errresponse.ErrUnauthorized(err)); err != nil {
			log.Println(err)
		}

		return
	}

	token, err := a.jwt.Generate(u.Username)
	if err != nil {
		if err := render.Render(w, r, errresponse.ErrInternal(err)); err != nil {
			log.Println(err)
		}

		return
	}

	if err := render.Render(w, r, &userpayload.TokenResponse{Token: token}); err != nil {
		log.Println(err)
	}
}

// Refresh re-issues the presented token.
func (a *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	tokenStr := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if tokenStr == "" {
		if err := render.Render(w, r, errresponse.ErrUnauthorized(errors.New("missing token"))); err != nil {
			log.Println(err)
		}

		return
	}

	token, err := a.jwt.Refresh(tokenStr)
	if err != nil {
		if err := render.Render(w, r, errresponse.ErrUnauthorized(err)); err != nil {
			log.Println(err)
		}

		return
	}

	if err := render.Render(w, r, &userpayload.TokenResponse{Token: token}); err != nil {
		log.Println(err)
	}
}
