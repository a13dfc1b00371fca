package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
	repo "github.com/luxor-app/luxor-auth/internal/domain/repository"
)

// AuthUseCase exposes login to presentation code. It holds no state.
type AuthUseCase struct {
	Repo   repo.AuthRepository
	Logger *logrus.Logger
}

func NewAuthUseCase(repo repo.AuthRepository, logger *logrus.Logger) *AuthUseCase {
	return &AuthUseCase{Repo: repo, Logger: logger}
}

// Login delegates to the repository. A non-nil error is always an
// *entity.AuthError; anything else is reported as an unknown-kind error.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	res, err := u.Repo.Login(ctx, entity.Credentials{Email: email, Password: password})
	if err == nil {
		return res, nil
	}
	var authErr *entity.AuthError
	if errors.As(err, &authErr) {
		return nil, authErr
	}
	if u.Logger != nil {
		u.Logger.WithError(err).Warn("unexpected login error")
	}
	return nil, entity.NewAuthError(entity.KindUnknown)
}
