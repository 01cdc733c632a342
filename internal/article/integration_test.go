// integration_test.go
// +build integration

package article

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mkarpushin/board/internal/model"
	"github.com/mkarpushin/board/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// The tests below run against the MySQL instance from the config file
// (or the defaults). Fixtures use unique markers so reruns on a dirty
// database stay independent.

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := store.GetDB()
	require.Nil(t, err, "database must be reachable for integration tests")

	return db
}

func uniq(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func newTestUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := model.User{Username: name, CreateDate: time.Now()}
	require.Nil(t, db.Create(&u).Error)

	return &u
}

func newTestArticle(t *testing.T, s *Store, author *model.User, title, content string, createDate time.Time) *model.Article {
	t.Helper()
	a := model.Article{
		Title:      title,
		Content:    content,
		AuthorID:   author.ID,
		CreateDate: createDate,
	}
	require.Nil(t, s.Create(context.Background(), &a))

	return &a
}

func newTestAnswer(t *testing.T, db *gorm.DB, articleID uint, content string, author *model.User) *model.Answer {
	t.Helper()
	ans := model.Answer{ArticleID: articleID, Content: content, CreateDate: time.Now()}
	if author != nil {
		ans.AuthorID = &author.ID
	}
	require.Nil(t, db.Create(&ans).Error)

	return &ans
}

func TestVoteIdempotence(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewStore(db)
	svc := NewService(s, nil)

	author := newTestUser(t, db, uniq("author"))
	voter := newTestUser(t, db, uniq("voter"))
	a := newTestArticle(t, s, author, uniq("title"), "content", time.Now())

	first, err := svc.Vote(ctx, a, voter)
	require.Nil(t, err)
	assert.Equal(t, int64(1), first)

	second, err := svc.Vote(ctx, a, voter)
	require.Nil(t, err)
	assert.Equal(t, first, second, "voting twice must not grow the voter set")
}

func TestConcurrentVoters(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewStore(db)
	svc := NewService(s, nil)

	author := newTestUser(t, db, uniq("author"))
	a := newTestArticle(t, s, author, uniq("title"), "content", time.Now())

	const n = 20
	voters := make([]*model.User, n)
	for i := range voters {
		voters[i] = newTestUser(t, db, uniq(fmt.Sprintf("voter%d", i)))
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(u *model.User) {
			defer wg.Done()
			_, err := svc.Vote(ctx, a, u)
			assert.Nil(t, err)
		}(voters[i])
	}
	wg.Wait()

	count, err := s.VoteCount(ctx, a.ID)
	require.Nil(t, err)
	assert.Equal(t, int64(n), count, "no concurrent voter may be lost")
}

func TestKeywordSearchDisjunction(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewStore(db)

	tok := uniq("kw")
	author := newTestUser(t, db, uniq("plain"))
	markedAuthor := newTestUser(t, db, "user-"+tok+"-a")
	markedAnswerer := newTestUser(t, db, "user-"+tok+"-b")

	byTitle := newTestArticle(t, s, author, "about "+tok+"-title", "c", time.Now())
	byContent := newTestArticle(t, s, author, uniq("t"), "body "+tok+"-content", time.Now())
	byAuthor := newTestArticle(t, s, markedAuthor, uniq("t"), "c", time.Now())
	byAnswer := newTestArticle(t, s, author, uniq("t"), "c", time.Now())
	newTestAnswer(t, db, byAnswer.ID, "reply "+tok+"-answer", author)
	byAnswerAuthor := newTestArticle(t, s, author, uniq("t"), "c", time.Now())
	newTestAnswer(t, db, byAnswerAuthor.ID, "reply", markedAnswerer)
	noMatch := newTestArticle(t, s, author, uniq("t"), "c", time.Now())

	cases := []struct {
		name string
		kw   string
		want uint
	}{
		{"title", tok + "-title", byTitle.ID},
		{"content", tok + "-content", byContent.ID},
		{"author username", tok + "-a", byAuthor.ID},
		{"answer content", tok + "-answer", byAnswer.ID},
		{"answer author username", tok + "-b", byAnswerAuthor.ID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, total, err := s.ListPage(ctx, 0, 10, tc.kw)
			require.Nil(t, err)
			require.Equal(t, int64(1), total)
			require.Len(t, items, 1)
			assert.Equal(t, tc.want, items[0].ID)
			assert.NotEqual(t, noMatch.ID, items[0].ID)
		})
	}

	t.Run("no match is an empty page", func(t *testing.T) {
		items, total, err := s.ListPage(ctx, 0, 10, tok+"-nothing")
		require.Nil(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, items)
	})
}

func TestKeywordSearchIsCaseSensitive(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewStore(db)

	tok := uniq("case")
	author := newTestUser(t, db, uniq("author"))
	newTestArticle(t, s, author, "lower "+tok+"needle", "c", time.Now())

	_, total, err := s.ListPage(ctx, 0, 10, tok+"needle")
	require.Nil(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = s.ListPage(ctx, 0, 10, tok+"NEEDLE")
	require.Nil(t, err)
	assert.Equal(t, int64(0), total)
}

func TestSearchDeduplicatesMultipleMatchingAnswers(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewStore(db)

	tok := uniq("dup")
	author := newTestUser(t, db, uniq("author"))
	a := newTestArticle(t, s, author, uniq("t"), "c", time.Now())
	newTestAnswer(t, db, a.ID, "first "+tok, author)
	newTestAnswer(t, db, a.ID, "second "+tok, author)

	items, total, err := s.ListPage(ctx, 0, 10, tok)
	require.Nil(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)
}

func TestListOrderingNewestFirst(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewStore(db)

	tok := uniq("ord")
	author := newTestUser(t, db, uniq("author"))
	base := time.Now().Add(-time.Hour)
	oldest := newTestArticle(t, s, author, "a "+tok, "c", base)
	middle := newTestArticle(t, s, author, "b "+tok, "c", base.Add(time.Minute))
	newest := newTestArticle(t, s, author, "c "+tok, "c", base.Add(2*time.Minute))

	items, total, err := s.ListPage(ctx, 0, 10, tok)
	require.Nil(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, items, 3)
	assert.Equal(t, newest.ID, items[0].ID)
	assert.Equal(t, middle.ID, items[1].ID)
	assert.Equal(t, oldest.ID, items[2].ID)

	// Equal create dates fall back to insertion order.
	tieTok := uniq("tie")
	tieTime := base.Add(3 * time.Minute)
	first := newTestArticle(t, s, author, "x "+tieTok, "c", tieTime)
	second := newTestArticle(t, s, author, "y "+tieTok, "c", tieTime)

	items, _, err = s.ListPage(ctx, 0, 10, tieTok)
	require.Nil(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
}

func TestListPagination(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewStore(db)
	svc := NewService(s, nil)

	tok := uniq("page")
	author := newTestUser(t, db, uniq("author"))
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		newTestArticle(t, s, author, fmt.Sprintf("n%d %s", i, tok), "c", base.Add(time.Duration(i)*time.Minute))
	}

	page, err := svc.ListPage(ctx, 0, 2, tok)
	require.Nil(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Items, 2)

	last, err := svc.ListPage(ctx, 2, 2, tok)
	require.Nil(t, err)
	assert.Len(t, last.Items, 1)

	beyond, err := svc.ListPage(ctx, 5, 2, tok)
	require.Nil(t, err)
	assert.Empty(t, beyond.Items, "an empty page is a valid result")
	assert.Equal(t, int64(5), beyond.Total)
}

func TestModifyInvariants(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewStore(db)
	svc := NewService(s, nil)

	author := newTestUser(t, db, uniq("author"))
	voter := newTestUser(t, db, uniq("voter"))
	a := newTestArticle(t, s, author, uniq("before"), "old", time.Now().Add(-time.Minute))
	_, err := svc.Vote(ctx, a, voter)
	require.Nil(t, err)

	require.Nil(t, svc.Modify(ctx, a, "after", "new"))

	got, err := svc.Get(ctx, a.ID)
	require.Nil(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "new", got.Content)
	require.NotNil(t, got.ModifyDate)
	assert.False(t, got.ModifyDate.Before(got.CreateDate), "modifyDate must be >= createDate")
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, author.ID, got.AuthorID)

	count, err := s.VoteCount(ctx, a.ID)
	require.Nil(t, err)
	assert.Equal(t, int64(1), count, "modify must not touch the voter set")
}

func TestCreateLeavesModifyDateUnset(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewStore(db)
	svc := NewService(s, nil)

	author := newTestUser(t, db, uniq("author"))
	a, err := svc.Create(ctx, uniq("title"), "content", author)
	require.Nil(t, err)

	got, err := svc.Get(ctx, a.ID)
	require.Nil(t, err)
	assert.Nil(t, got.ModifyDate)
	assert.False(t, got.CreateDate.IsZero())
}

func TestDeleteCascades(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewStore(db)
	svc := NewService(s, nil)

	author := newTestUser(t, db, uniq("author"))
	voter := newTestUser(t, db, uniq("voter"))
	a := newTestArticle(t, s, author, uniq("doomed"), "c", time.Now())
	newTestAnswer(t, db, a.ID, "answer one", author)
	newTestAnswer(t, db, a.ID, "answer two", nil)
	_, err := svc.Vote(ctx, a, voter)
	require.Nil(t, err)

	require.Nil(t, svc.Delete(ctx, a))

	_, err = svc.Get(ctx, a.ID)
	assert.Equal(t, ErrNotFound, err)

	var answersLeft int64
	require.Nil(t, db.Model(&model.Answer{}).Where("article_id = ?", a.ID).Count(&answersLeft).Error)
	assert.Equal(t, int64(0), answersLeft, "delete must remove the article's answers")

	var votesLeft int64
	require.Nil(t, db.Model(&model.ArticleVote{}).Where("article_id = ?", a.ID).Count(&votesLeft).Error)
	assert.Equal(t, int64(0), votesLeft)
}

func TestAnswerKeywordExample(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewStore(db)

	tok := uniq("hello")
	alice := newTestUser(t, db, uniq("alice"))
	bob := newTestUser(t, db, uniq("bob"))
	a := newTestArticle(t, s, alice, "Hello "+tok, "World", time.Now())
	newTestAnswer(t, db, a.ID, "Hi "+tok+"-answer", bob)

	items, total, err := s.ListPage(ctx, 0, 10, tok+"-answer")
	require.Nil(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)

	_, total, err = s.ListPage(ctx, 0, 10, tok+"-nope")
	require.Nil(t, err)
	assert.Equal(t, int64(0), total)
}
