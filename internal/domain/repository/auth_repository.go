package repository

import (
	"context"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
)

// AuthRepository authenticates credentials against the remote user service.
// Every non-nil error it returns is an *entity.AuthError.
type AuthRepository interface {
	Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResult, error)
}
