package answer

import (
	"context"
	"time"

	"github.com/mkarpushin/board/internal/model"
)

// Service applies the answer business rules: the creation timestamp
// and the immutable link to the parent article.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Create attaches a new answer to article. author is optional; when
// nil the answer is stored without one, which the data model allows.
func (s *Service) Create(ctx context.Context, article *model.Article, content string, author *model.User) (*model.Answer, error) {
	ans := &model.Answer{
		ArticleID:  article.ID,
		Content:    content,
		CreateDate: time.Now(),
	}
	if author != nil {
		ans.AuthorID = &author.ID
		ans.Author = author
	}

	if err := s.store.Create(ctx, ans); err != nil {
		return nil, err
	}

	return ans, nil
}

// ByArticle lists an article's answers in insertion order.
func (s *Service) ByArticle(ctx context.Context, articleID uint) ([]model.Answer, error) {
	return s.store.ByArticle(ctx, articleID)
}
