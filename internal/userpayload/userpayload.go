package userpayload

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/mkarpushin/board/internal/model"
)

//--
// Request and Response payloads for the user/auth part of the REST api.
//
// The payloads embed the data model objects; password material never
// leaves the model's json:"-" fields.
//--

type UserPayload struct {
	*model.User
}

func NewUserPayloadResponse(user *model.User) *UserPayload {
	return &UserPayload{User: user}
}

func (u *UserPayload) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// SignupRequest is the payload for POST /users.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Bind on SignupRequest runs after unmarshalling; it carries the
// explicit parameter validation the service layer does not repeat.
func (s *SignupRequest) Bind(r *http.Request) error {
	if s.Username == "" {
		return errors.New("missing required username field")
	}
	if utf8.RuneCountInString(s.Username) > 64 {
		return errors.New("username longer than 64 characters")
	}
	if utf8.RuneCountInString(s.Password) < 6 {
		return errors.New("password shorter than 6 characters")
	}

	return nil
}

// TokenRequest is the payload for POST /auth/token.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (t *TokenRequest) Bind(r *http.Request) error {
	if t.Username == "" || t.Password == "" {
		return errors.New("missing required credentials")
	}

	return nil
}

// TokenResponse carries an issued or refreshed token.
type TokenResponse struct {
	Token string `json:"token"`
}

func (t *TokenResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
