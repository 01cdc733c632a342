package answerpayload

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mkarpushin/board/internal/model"
	"github.com/mkarpushin/board/internal/userpayload"
)

// AnswerRequest is the request payload for posting an Answer to an
// Article. The parent article comes from the URL, the author from the
// authenticated requester.
type AnswerRequest struct {
	Content string `json:"content"`
}

func (a *AnswerRequest) Bind(r *http.Request) error {
	if a.Content == "" {
		return errors.New("missing required content field")
	}

	return nil
}

// AnswerResponse is the response payload for the Answer data model.
type AnswerResponse struct {
	*model.Answer

	Author *userpayload.UserPayload `json:"author,omitempty"`
}

func NewAnswerResponse(answer *model.Answer) *AnswerResponse {
	resp := &AnswerResponse{Answer: answer}
	if answer.Author != nil {
		resp.Author = userpayload.NewUserPayloadResponse(answer.Author)
	}

	return resp
}

func NewAnswerListResponse(answers []model.Answer) []render.Renderer {
	list := []render.Renderer{}
	for i := range answers {
		list = append(list, NewAnswerResponse(&answers[i]))
	}

	return list
}

func (rd *AnswerResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
