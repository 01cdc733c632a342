package answer

import (
	"context"

	"github.com/mkarpushin/board/internal/model"
	"gorm.io/gorm"
)

// Store owns answer persistence. Answers are only ever created
// through here; they are deleted by the article cascade.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, ans *model.Answer) error {
	return s.db.WithContext(ctx).Create(ans).Error
}

// ByArticle lists the answers attached to an article.
func (s *Store) ByArticle(ctx context.Context, articleID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("article_id = ?", articleID).
		Order("id ASC").
		Find(&answers).Error

	return answers, err
}
