package article

import (
	"context"
	"time"

	"github.com/mkarpushin/board/internal/model"
	"github.com/mkarpushin/board/internal/votecache"
)

const maxPageSize = 100

// Page is a bounded, ordered slice of the full result set plus the
// total match count.
type Page struct {
	Items  []model.Article
	Total  int64
	Number int
	Size   int
}

// Service applies the business rules on top of the store: creation
// and modification timestamps, vote idempotency and the vote-count
// cache. Authorization is the caller's concern: handlers check
// requester == author before calling Modify or Delete.
type Service struct {
	store *Store
	votes *votecache.Cache
}

// NewService builds a service. votes may be nil, in which case every
// count goes straight to the database.
func NewService(store *Store, votes *votecache.Cache) *Service {
	return &Service{store: store, votes: votes}
}

func (s *Service) Create(ctx context.Context, title, content string, author *model.User) (*model.Article, error) {
	a := &model.Article{
		Title:      title,
		Content:    content,
		AuthorID:   author.ID,
		Author:     author,
		CreateDate: time.Now(),
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*model.Article, error) {
	return s.store.ByID(ctx, id)
}

// ListPage returns page number `page` of the articles matching kw.
// Out-of-range inputs are normalized rather than rejected; an empty
// page is a valid result.
func (s *Service) ListPage(ctx context.Context, page, size int, kw string) (*Page, error) {
	page, size = normalizePage(page, size)

	items, total, err := s.store.ListPage(ctx, page, size, kw)
	if err != nil {
		return nil, err
	}

	return &Page{Items: items, Total: total, Number: page, Size: size}, nil
}

// Modify updates title and content in place and stamps ModifyDate.
// Id, author, create date and the voter set stay untouched.
func (s *Service) Modify(ctx context.Context, a *model.Article, title, content string) error {
	now := time.Now()
	a.Title = title
	a.Content = content
	a.ModifyDate = &now

	return s.store.Update(ctx, a)
}

// Delete removes the article and its answers atomically and drops the
// cached vote count.
func (s *Service) Delete(ctx context.Context, a *model.Article) error {
	if err := s.store.Delete(ctx, a); err != nil {
		return err
	}
	if s.votes != nil {
		// Cache entries expire on their own; a failed invalidation
		// must not fail the committed deletion.
		_ = s.votes.Invalidate(ctx, a.ID)
	}

	return nil
}

// Vote idempotently adds user to the article's voter set and returns
// the resulting count. Voting twice leaves the set unchanged.
func (s *Service) Vote(ctx context.Context, a *model.Article, voter *model.User) (int64, error) {
	if err := s.store.AddVote(ctx, a.ID, voter.ID); err != nil {
		return 0, err
	}

	count, err := s.store.VoteCount(ctx, a.ID)
	if err != nil {
		return 0, err
	}
	if s.votes != nil {
		_ = s.votes.Put(ctx, a.ID, count)
	}

	return count, nil
}

// VoteCount reads the voter-set size through the cache.
func (s *Service) VoteCount(ctx context.Context, articleID uint) (int64, error) {
	if s.votes != nil {
		if n, ok, err := s.votes.Get(ctx, articleID); err == nil && ok {
			return n, nil
		}
	}

	count, err := s.store.VoteCount(ctx, articleID)
	if err != nil {
		return 0, err
	}
	if s.votes != nil {
		_ = s.votes.Put(ctx, articleID, count)
	}

	return count, nil
}

// normalizePage clamps page and size to sane bounds. Pages are
// 0-indexed.
func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	switch {
	case size < 1:
		size = 1
	case size > maxPageSize:
		size = maxPageSize
	}

	return page, size
}
