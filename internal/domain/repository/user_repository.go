package repository

import (
	"context"
	"errors"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
)

// ErrUserNotFound is returned when no account matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the account lookups the development auth server needs.
type UserRepository interface {
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
}
