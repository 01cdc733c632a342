package model

import "time"

// User is a registered board member. Articles, answers and votes all
// reference users by id; usernames are unique.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:128" json:"-"`
	PasswordSalt string    `gorm:"size:64" json:"-"`
	CreateDate   time.Time `json:"createDate"`
}

// Article is a top-level question/post.
//
// CreateDate is set exactly once when the article is persisted.
// ModifyDate stays nil until the first edit, so gorm's automatic
// CreatedAt/UpdatedAt columns are deliberately not used here.
type Article struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Title      string     `gorm:"size:200;not null" json:"title"`
	Content    string     `gorm:"type:text" json:"content"`
	AuthorID   uint       `gorm:"index;not null" json:"authorId"`
	Author     *User      `json:"-"`
	CreateDate time.Time  `gorm:"index" json:"createDate"`
	ModifyDate *time.Time `json:"modifyDate,omitempty"`
	Answers    []Answer   `gorm:"foreignKey:ArticleID" json:"-"`
}

// Answer is a reply to exactly one Article. ArticleID is immutable
// after creation. AuthorID is nullable: the service accepts answers
// without an attached author.
type Answer struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ArticleID  uint       `gorm:"index;not null" json:"articleId"`
	Content    string     `gorm:"type:text" json:"content"`
	AuthorID   *uint      `gorm:"index" json:"authorId,omitempty"`
	Author     *User      `json:"-"`
	CreateDate time.Time  `json:"createDate"`
	ModifyDate *time.Time `json:"modifyDate,omitempty"`
}

// ArticleVote is one row of an article's voter set. The composite
// primary key (article_id, user_id) makes duplicate votes impossible
// at the storage layer, so inserts can be fired concurrently and the
// database arbitrates.
type ArticleVote struct {
	ArticleID  uint `gorm:"primaryKey;autoIncrement:false"`
	UserID     uint `gorm:"primaryKey;autoIncrement:false"`
	CreateDate time.Time
}

func (ArticleVote) TableName() string { return "article_votes" }

// AnswerVote mirrors ArticleVote for answers. Present in the schema
// for parity with the data model; no endpoint mutates it yet.
type AnswerVote struct {
	AnswerID   uint `gorm:"primaryKey;autoIncrement:false"`
	UserID     uint `gorm:"primaryKey;autoIncrement:false"`
	CreateDate time.Time
}

func (AnswerVote) TableName() string { return "answer_votes" }
