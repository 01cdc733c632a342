package article

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mkarpushin/board/internal/errresponse"
	"github.com/mkarpushin/board/internal/model"
)

type ctxKey int8

const (
	ctxKeyArticle ctxKey = iota
	ctxKeyPage
	ctxKeyKeyword
)

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404.
func (rs *Resource) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "articleID")
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			if err := render.Render(w, r, errresponse.ErrNotFound); err != nil {
				log.Println(err)
			}

			return
		}

		a, err := rs.svc.Get(r.Context(), uint(id))
		if err != nil {
			if err := render.Render(w, r, errresponse.ErrNotFound); err != nil {
				log.Println(err)
			}

			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyArticle, a)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the article ArticleCtx loaded. Handlers mounted
// below ArticleCtx may assume it is present; the Recoverer middleware
// catches the panic otherwise.
func FromContext(ctx context.Context) *model.Article {
	return ctx.Value(ctxKeyArticle).(*model.Article)
}

// Paginate parses the page number and keyword query parameters and
// sends them down the chain. Bad page numbers fall back to page 0
// rather than erroring, matching the historical defaultValue="0".
func Paginate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := 0
		if pageStr := r.URL.Query().Get("page"); pageStr != "" {
			if p, err := strconv.Atoi(pageStr); err == nil {
				page = p
			}
		}
		kw := r.URL.Query().Get("kw")

		ctx := context.WithValue(r.Context(), ctxKeyPage, page)
		ctx = context.WithValue(ctx, ctxKeyKeyword, kw)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func pageFromContext(ctx context.Context) int {
	if p, ok := ctx.Value(ctxKeyPage).(int); ok {
		return p
	}

	return 0
}

func keywordFromContext(ctx context.Context) string {
	if kw, ok := ctx.Value(ctxKeyKeyword).(string); ok {
		return kw
	}

	return ""
}
