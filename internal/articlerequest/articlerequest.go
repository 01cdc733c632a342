package articlerequest

import (
	"errors"
	"net/http"
	"unicode/utf8"
)

// MaxTitleLen matches the size of the title column.
const MaxTitleLen = 200

// ArticleRequest is the request payload for creating or modifying an
// Article. The author is never taken from the body: it comes from the
// authenticated requester on create and is immutable afterwards.
type ArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Bind runs after the unmarshalling is complete. Form-level
// validation lives here so the service layer can trust its inputs.
func (a *ArticleRequest) Bind(r *http.Request) error {
	return Validate(a.Title, a.Content)
}

// Validate checks an article title/content pair.
func Validate(title, content string) error {
	if title == "" {
		return errors.New("missing required title field")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return errors.New("title longer than 200 characters")
	}
	if content == "" {
		return errors.New("missing required content field")
	}

	return nil
}
