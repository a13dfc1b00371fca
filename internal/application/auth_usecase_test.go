package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
)

type stubAuthRepo struct {
	res   *entity.AuthResult
	err   error
	creds []entity.Credentials
}

func (s *stubAuthRepo) Login(_ context.Context, creds entity.Credentials) (*entity.AuthResult, error) {
	s.creds = append(s.creds, creds)
	return s.res, s.err
}

func TestAuthUseCase_Login(t *testing.T) {
	want := &entity.AuthResult{AccessToken: "a"}
	stub := &stubAuthRepo{res: want}
	uc := NewAuthUseCase(stub, nil)

	res, err := uc.Login(context.Background(), "a@b.co", "Secret1!")
	require.NoError(t, err)
	assert.Same(t, want, res)
	assert.Equal(t, []entity.Credentials{{Email: "a@b.co", Password: "Secret1!"}}, stub.creds)
}

func TestAuthUseCase_Login_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want *entity.AuthError
	}{
		{"domain error passes through", entity.ErrNetwork, entity.ErrNetwork},
		{"wrapped domain error unwrapped", fmt.Errorf("ctx: %w", entity.NewServerError("x")), entity.NewServerError("x")},
		{"foreign error becomes unknown", errors.New("panic-ish"), entity.ErrUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewAuthUseCase(&stubAuthRepo{err: tt.err}, nil)
			res, err := uc.Login(context.Background(), "a@b.co", "p")
			assert.Nil(t, res)

			var authErr *entity.AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.want, authErr)
		})
	}
}
