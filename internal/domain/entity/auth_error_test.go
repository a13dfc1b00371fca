package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthError_Is(t *testing.T) {
	err := NewServerError("maintenance window")

	assert.ErrorIs(t, err, ErrServer)
	assert.ErrorIs(t, err, NewServerError("maintenance window"))
	assert.NotErrorIs(t, err, NewServerError("other"))
	assert.NotErrorIs(t, err, ErrNetwork)

	wrapped := fmt.Errorf("sign in: %w", ErrInvalidCredentials)
	assert.ErrorIs(t, wrapped, ErrInvalidCredentials)
	assert.False(t, errors.Is(wrapped, ErrUnknown))

	var ae *AuthError
	assert.True(t, errors.As(wrapped, &ae))
	assert.Equal(t, KindInvalidCredentials, ae.Kind)
}

func TestAuthError_Error(t *testing.T) {
	assert.Equal(t, "invalid credentials", ErrInvalidCredentials.Error())
	assert.Equal(t, "network error", ErrNetwork.Error())
	assert.Equal(t, "server error", ErrServer.Error())
	assert.Equal(t, "server error: boom", NewServerError("boom").Error())
	assert.Equal(t, "decoding error", ErrDecoding.Error())
	assert.Equal(t, "unknown error", ErrUnknown.Error())
}

func TestAuthErrorKind_String(t *testing.T) {
	assert.Equal(t, "invalid_credentials", KindInvalidCredentials.String())
	assert.Equal(t, "network_error", KindNetwork.String())
	assert.Equal(t, "server_error", KindServer.String())
	assert.Equal(t, "decoding_error", KindDecoding.String())
	assert.Equal(t, "unknown_error", KindUnknown.String())
	assert.Equal(t, "unknown_error", AuthErrorKind(42).String())
}

func TestNewAuthError(t *testing.T) {
	err := NewAuthError(KindNetwork)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.NotSame(t, ErrNetwork, err)

	err.Message = "changed"
	assert.Empty(t, ErrNetwork.Message)
	assert.NotSame(t, NewAuthError(KindNetwork), NewAuthError(KindNetwork))
}
