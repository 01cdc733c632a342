package answer

import (
	"log"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mkarpushin/board/internal/answerpayload"
	"github.com/mkarpushin/board/internal/article"
	"github.com/mkarpushin/board/internal/auth"
	"github.com/mkarpushin/board/internal/errresponse"
)

// Resource bundles the answer HTTP handlers.
type Resource struct {
	svc *Service
}

func NewResource(svc *Service) *Resource {
	return &Resource{svc: svc}
}

// Create posts an answer to the article loaded by ArticleCtx:
// POST /articles/{articleID}/answers. The authenticated requester is
// recorded as the answer's author.
func (rs *Resource) Create(w http.ResponseWriter, r *http.Request) {
	parent := article.FromContext(r.Context())
	requester := auth.RequesterFromContext(r.Context())

	data := &answerpayload.AnswerRequest{}
	if err := render.Bind(r, data); err != nil {
		if err := render.Render(w, r, errresponse.ErrInvalidRequest(err)); err != nil {
			log.Println(err)
		}

		return
	}

	ans, err := rs.svc.Create(r.Context(), parent, data.Content, requester)
	if err != nil {
		if err := render.Render(w, r, errresponse.ErrInternal(err)); err != nil {
			log.Println(err)
		}

		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, answerpayload.NewAnswerResponse(ans)); err != nil {
		log.Println(err)
	}
}

// List returns the answers of the article loaded by ArticleCtx:
// GET /articles/{articleID}/answers.
func (rs *Resource) List(w http.ResponseWriter, r *http.Request) {
	parent := article.FromContext(r.Context())

	answers, err := rs.svc.ByArticle(r.Context(), parent.ID)
	if err != nil {
		if err := render.Render(w, r, errresponse.ErrInternal(err)); err != nil {
			log.Println(err)
		}

		return
	}

	if err := render.RenderList(w, r, answerpayload.NewAnswerListResponse(answers)); err != nil {
		if err := render.Render(w, r, errresponse.ErrRender(err)); err != nil {
			log.Println(err)
		}

		return
	}
}
