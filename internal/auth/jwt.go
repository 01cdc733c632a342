package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotValidYet = errors.New("token not valid yet")
	ErrTokenMalformed   = errors.New("token malformed")
	ErrTokenInvalid     = errors.New("token invalid")
)

// Claims carries the authenticated username. The username rather than
// the numeric id is the stable identity here, matching what the rest
// of the system keys users on.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username"`
}

type JWT struct {
	signingKey []byte
	ttl        time.Duration
}

func NewJWT(signingKey string, ttl time.Duration) *JWT {
	return &JWT{signingKey: []byte(signingKey), ttl: ttl}
}

// Generate issues a signed HS256 token for username.
func (j *JWT) Generate(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			NotBefore: now.Unix(),
			ExpiresAt: now.Add(j.ttl).Unix(),
		},
		Username: username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(j.signingKey)
}

// Parse validates tokenStr and returns its claims.
func (j *JWT) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return j.signingKey, nil
	})
	if err != nil {
		if result, ok := err.(*jwt.ValidationError); ok {
			switch {
			case result.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, ErrTokenMalformed
			case result.Errors&jwt.ValidationErrorExpired != 0:
				return nil, ErrTokenExpired
			case result.Errors&jwt.ValidationErrorNotValidYet != 0:
				return nil, ErrTokenNotValidYet
			}
		}

		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

// Refresh re-issues a token for the same username, even when the old
// one already expired, as long as its signature checks out.
func (j *JWT) Refresh(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return j.signingKey, nil
	})
	if err != nil {
		if result, ok := err.(*jwt.ValidationError); !ok || result.Errors&jwt.ValidationErrorExpired == 0 {
			return "", ErrTokenInvalid
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Username == "" {
		return "", ErrTokenInvalid
	}

	return j.Generate(claims.Username)
}
