package article

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mkarpushin/board/internal/articlerequest"
	"github.com/mkarpushin/board/internal/articleresponse"
	"github.com/mkarpushin/board/internal/auth"
	"github.com/mkarpushin/board/internal/config"
	"github.com/mkarpushin/board/internal/errresponse"
)

// Resource bundles the article HTTP handlers around the service.
type Resource struct {
	svc *Service
}

func NewResource(svc *Service) *Resource {
	return &Resource{svc: svc}
}

// List serves the plain article listing: GET /articles?page=&kw=.
func (rs *Resource) List(w http.ResponseWriter, r *http.Request) {
	rs.listPage(w, r, config.ListPageSize)
}

// Search serves the keyword search listing, which historically uses
// its own, larger page size: GET /articles/search?page=&kw=.
func (rs *Resource) Search(w http.ResponseWriter, r *http.Request) {
	rs.listPage(w, r, config.SearchPageSize)
}

func (rs *Resource) listPage(w http.ResponseWriter, r *http.Request, size int) {
	page, err := rs.svc.ListPage(r.Context(), pageFromContext(r.Context()), size, keywordFromContext(r.Context()))
	if err != nil {
		if err := render.Render(w, r, errresponse.ErrInternal(err)); err != nil {
			log.Println(err)
		}

		return
	}

	resp := articleresponse.NewArticlePageResponse(page.Items, page.Total, page.Number, page.Size)
	if err := render.Render(w, r, resp); err != nil {
		if err := render.Render(w, r, errresponse.ErrRender(err)); err != nil {
			log.Println(err)
		}

		return
	}
}

// Create persists the posted Article and returns it back to the
// client as an acknowledgement. The requester becomes the author.
func (rs *Resource) Create(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		if err := render.Render(w, r, errresponse.ErrInvalidRequest(err)); err != nil {
			log.Println(err)
		}

		return
	}

	requester := auth.RequesterFromContext(r.Context())
	a, err := rs.svc.Create(r.Context(), data.Title, data.Content, requester)
	if err != nil {
		if err := render.Render(w, r, errresponse.ErrInternal(err)); err != nil {
			log.Println(err)
		}

		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, articleresponse.NewArticleResponse(a, 0)); err != nil {
		log.Println(err)
	}
}

// Get returns the specific Article. It fetches the Article right off
// the context, as its understood that if we made it this far, the
// Article must be on the context.
func (rs *Resource) Get(w http.ResponseWriter, r *http.Request) {
	a := FromContext(r.Context())

	count, err := rs.svc.VoteCount(r.Context(), a.ID)
	if err != nil {
		if err := render.Render(w, r, errresponse.ErrInternal(err)); err != nil {
			log.Println(err)
		}

		return
	}

	if err := render.Render(w, r, articleresponse.NewArticleResponse(a, count)); err != nil {
		if err := render.Render(w, r, errresponse.ErrRender(err)); err != nil {
			log.Println(err)
		}

		return
	}
}

// Update modifies an existing Article. Only the author may do this;
// the check lives here in the request layer, not in the service.
func (rs *Resource) Update(w http.ResponseWriter, r *http.Request) {
	a := FromContext(r.Context())
	requester := auth.RequesterFromContext(r.Context())

	if a.AuthorID != requester.ID {
		if err := render.Render(w, r, errresponse.ErrForbidden); err != nil {
			log.Println(err)
		}

		return
	}

	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		if err := render.Render(w, r, errresponse.ErrInvalidRequest(err)); err != nil {
			log.Println(err)
		}

		return
	}

	if err := rs.svc.Modify(r.Context(), a, data.Title, data.Content); err != nil {
		if err := render.Render(w, r, errresponse.ErrInternal(err)); err != nil {
			log.Println(err)
		}

		return
	}

	count, err := rs.svc.VoteCount(r.Context(), a.ID)
	if err != nil {
		count = 0
	}
	if err := render.Render(w, r, articleresponse.NewArticleResponse(a, count)); err != nil {
		log.Println(err)
	}
}

// Delete removes an existing Article and, transitively, its answers.
// Author-only, same as Update.
func (rs *Resource) Delete(w http.ResponseWriter, r *http.Request) {
	a := FromContext(r.Context())
	requester := auth.RequesterFromContext(r.Context())

	if a.AuthorID != requester.ID {
		if err := render.Render(w, r, errresponse.ErrForbidden); err != nil {
			log.Println(err)
		}

		return
	}

	if err := rs.svc.Delete(r.Context(), a); err != nil {
		if err := render.Render(w, r, errresponse.ErrInternal(err)); err != nil {
			log.Println(err)
		}

		return
	}

	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}

// Vote adds the requester to the article's voter set and returns the
// new count. Voting again is a no-op that returns the same count.
func (rs *Resource) Vote(w http.ResponseWriter, r *http.Request) {
	a := FromContext(r.Context())
	requester := auth.RequesterFromContext(r.Context())

	count, err := rs.svc.Vote(r.Context(), a, requester)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = render.Render(w, r, errresponse.ErrNotFound)
		} else {
			err = render.Render(w, r, errresponse.ErrInternal(err))
		}
		if err != nil {
			log.Println(err)
		}

		return
	}

	if err := render.Render(w, r, &articleresponse.VoteResponse{Count: count}); err != nil {
		log.Println(err)
	}
}
