package grpcauth

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/status"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
	"github.com/luxor-app/luxor-auth/internal/domain/repository"
)

// DefaultFailureMessage is reported when the service rejects a login without a message.
const DefaultFailureMessage = "Authentication failed"

// Authenticator performs the remote authentication call.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*entity.AuthResult, error)
}

// AuthRepository turns transport results into domain results.
type AuthRepository struct {
	Transport Authenticator
	Logger    *logrus.Logger
}

func NewAuthRepository(transport Authenticator, logger *logrus.Logger) *AuthRepository {
	return &AuthRepository{Transport: transport, Logger: logger}
}

// Login authenticates creds. Empty credentials are rejected without a
// network call. Every returned error is an *entity.AuthError.
func (r *AuthRepository) Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResult, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, entity.NewAuthError(entity.KindInvalidCredentials)
	}

	res, err := r.Transport.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		authErr := ClassifyTransportError(err)
		if r.Logger != nil {
			r.Logger.WithError(err).WithFields(logrus.Fields{
				"grpc_code": status.Code(err).String(),
				"kind":      authErr.Kind.String(),
			}).Debug("authenticate call failed")
		}
		return nil, authErr
	}
	if res == nil {
		return nil, entity.NewAuthError(entity.KindDecoding)
	}

	if !res.Response.Success {
		msg := res.Response.Message
		if msg == "" {
			msg = DefaultFailureMessage
		}
		if r.Logger != nil {
			r.Logger.WithFields(logrus.Fields{
				"status_code": res.Response.StatusCode,
				"request_id":  res.Response.RequestID,
			}).Debug("authentication rejected by service")
		}
		return nil, entity.NewServerError(msg)
	}
	// A signed-in session always carries an access token.
	if res.AccessToken == "" {
		if r.Logger != nil {
			r.Logger.WithField("request_id", res.Response.RequestID).Warn("successful response without access token")
		}
		return nil, entity.NewAuthError(entity.KindDecoding)
	}
	return res, nil
}

// ClassifyTransportError maps a transport failure onto an error kind by
// case-insensitive substring match on its description.
func ClassifyTransportError(err error) *entity.AuthError {
	desc := err.Error()
	lower := strings.ToLower(desc)
	switch {
	case strings.Contains(lower, "network") || strings.Contains(lower, "connection"):
		return entity.NewAuthError(entity.KindNetwork)
	case strings.Contains(lower, "decode") || strings.Contains(lower, "parsing"):
		return entity.NewAuthError(entity.KindDecoding)
	case strings.Contains(lower, "unauthorized") || strings.Contains(lower, "invalid credentials"):
		return entity.NewAuthError(entity.KindInvalidCredentials)
	default:
		return entity.NewServerError(desc)
	}
}

var _ repository.AuthRepository = (*AuthRepository)(nil)
