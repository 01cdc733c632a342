package user

import (
	"context"
	"errors"
	"time"

	password "github.com/anaskhan96/go-password-encoder"
	"github.com/mkarpushin/board/internal/model"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrExists         = errors.New("username already taken")
	ErrBadCredentials = errors.New("wrong username or password")
)

// Directory resolves usernames and ids to user records and owns the
// signup/credential-check path.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) ByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	err := d.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (d *Directory) ByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := d.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Register creates a user with a salted password hash.
func (d *Directory) Register(ctx context.Context, username, rawPassword string) (*model.User, error) {
	var existing model.User
	result := d.db.WithContext(ctx).Where("username = ?", username).First(&existing)
	if result.RowsAffected == 1 {
		return nil, ErrExists
	}
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	salt, encoded := password.Encode(rawPassword, nil)
	u := model.User{
		Username:     username,
		PasswordHash: encoded,
		PasswordSalt: salt,
		CreateDate:   time.Now(),
	}
	if err := d.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}

	return &u, nil
}

// Authenticate verifies credentials and returns the matching user.
func (d *Directory) Authenticate(ctx context.Context, username, rawPassword string) (*model.User, error) {
	u, err := d.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadCredentials
		}

		return nil, err
	}

	if !password.Verify(rawPassword, u.PasswordSalt, u.PasswordHash, nil) {
		return nil, ErrBadCredentials
	}

	return u, nil
}
