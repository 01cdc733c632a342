package article

import (
	"context"
	"errors"
	"time"

	"github.com/mkarpushin/board/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is the absence signal for missing articles. Callers
// translate it into a user-facing 404.
var ErrNotFound = errors.New("article not found")

// Store owns article persistence: CRUD, the keyword search and the
// voter-set mutation.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, a *model.Article) error {
	return s.db.WithContext(ctx).Create(a).Error
}

// ByID fetches an article with its author and answers preloaded.
func (s *Store) ByID(ctx context.Context, id uint) (*model.Article, error) {
	var a model.Article
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Answers").
		Preload("Answers.Author").
		First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// searchQuery builds the keyword disjunction: a keyword matches an
// article when it is a substring of the title, the content, the
// author's username, any answer's content or any answer author's
// username. LIKE BINARY keeps the match case-sensitive on MySQL's
// default collations. The empty keyword matches every article.
func (s *Store) searchQuery(ctx context.Context, kw string) *gorm.DB {
	like := "%" + kw + "%"

	return s.db.WithContext(ctx).
		Model(&model.Article{}).
		Joins("LEFT JOIN users AS authors ON authors.id = articles.author_id").
		Joins("LEFT JOIN answers ON answers.article_id = articles.id").
		Joins("LEFT JOIN users AS answer_authors ON answer_authors.id = answers.author_id").
		Where(`articles.title LIKE BINARY ?
			OR articles.content LIKE BINARY ?
			OR authors.username LIKE BINARY ?
			OR answers.content LIKE BINARY ?
			OR answer_authors.username LIKE BINARY ?`,
			like, like, like, like, like)
}

// ListPage returns one page of matching articles, newest first, ties
// in insertion order, together with the distinct total. An article
// with several matching answers appears exactly once. An empty page
// is a valid result.
func (s *Store) ListPage(ctx context.Context, page, size int, kw string) ([]model.Article, int64, error) {
	var total int64
	if err := s.searchQuery(ctx, kw).Distinct("articles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Article
	err := s.searchQuery(ctx, kw).
		Select("articles.*").
		Group("articles.id").
		Order("articles.create_date DESC, articles.id ASC").
		Offset(page * size).
		Limit(size).
		Preload("Author").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *Store) Update(ctx context.Context, a *model.Article) error {
	return s.db.WithContext(ctx).Save(a).Error
}

// Delete removes the article together with its answers and all
// related vote rows in a single transaction. Either everything is
// committed or nothing is observed.
func (s *Store) Delete(ctx context.Context, a *model.Article) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		answerIDs := tx.Model(&model.Answer{}).Select("id").Where("article_id = ?", a.ID)
		if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&model.AnswerVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", a.ID).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", a.ID).Delete(&model.ArticleVote{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Article{}, a.ID).Error
	})
}

// AddVote inserts the (article, user) pair into the voter set. The
// composite primary key turns a duplicate vote into a no-op, so two
// concurrent voters can never overwrite each other.
func (s *Store) AddVote(ctx context.Context, articleID, userID uint) error {
	vote := model.ArticleVote{
		ArticleID:  articleID,
		UserID:     userID,
		CreateDate: time.Now(),
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&vote).Error
}

// VoteCount returns the size of the article's voter set.
func (s *Store) VoteCount(ctx context.Context, articleID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.ArticleVote{}).
		Where("article_id = ?", articleID).
		Count(&n).Error

	return n, err
}
