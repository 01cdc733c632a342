package articleresponse

import (
	"net/http"

	"github.com/mkarpushin/board/internal/answerpayload"
	"github.com/mkarpushin/board/internal/model"
	"github.com/mkarpushin/board/internal/userpayload"
)

// ArticleResponse is the response payload for the Article data model.
//
// In the ArticleResponse object, first a Render() is called on itself,
// then the next field, and so on, all the way down the tree.
// Render is called in top-down order, like a http handler middleware chain.
type ArticleResponse struct {
	*model.Article

	Author  *userpayload.UserPayload        `json:"author,omitempty"`
	Answers []*answerpayload.AnswerResponse `json:"answers,omitempty"`

	// VoteCount is a computed property: the size of the article's
	// voter set at render time.
	VoteCount int64 `json:"voteCount"`
}

func NewArticleResponse(article *model.Article, voteCount int64) *ArticleResponse {
	resp := &ArticleResponse{
		Article:   article,
		VoteCount: voteCount,
	}

	if article.Author != nil {
		resp.Author = userpayload.NewUserPayloadResponse(article.Author)
	}
	for i := range article.Answers {
		resp.Answers = append(resp.Answers, answerpayload.NewAnswerResponse(&article.Answers[i]))
	}

	return resp
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ArticlePageResponse is one page of the article listing: a bounded
// slice of the full result set plus the total match count.
type ArticlePageResponse struct {
	Items []*ArticleResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

func NewArticlePageResponse(articles []model.Article, total int64, page, size int) *ArticlePageResponse {
	resp := &ArticlePageResponse{
		Items: []*ArticleResponse{},
		Total: total,
		Page:  page,
		Size:  size,
	}
	for i := range articles {
		resp.Items = append(resp.Items, NewArticleResponse(&articles[i], 0))
	}

	return resp
}

func (rd *ArticlePageResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// VoteResponse carries the voter-set size after a vote.
type VoteResponse struct {
	Count int64 `json:"count"`
}

func (rd *VoteResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
