package application

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
	repo "github.com/luxor-app/luxor-auth/internal/domain/repository"
	"github.com/luxor-app/luxor-auth/pkg/helpers"
	"github.com/luxor-app/luxor-auth/pkg/response"
)

var ErrUserInactive = errors.New("user account is inactive")

// Messages sent back in the StandardResponse envelope.
const (
	MsgLoginSuccessful    = "login successful"
	MsgInvalidCredentials = "invalid credentials"
	MsgAccountInactive    = "account is inactive"
)

// AuthService is the development stand-in for the remote user service. It
// answers AuthenticateUser from a Postgres account table.
type AuthService struct {
	Repo       repo.UserRepository
	JWT        *helpers.JWTManager
	Redis      *redis.Client
	Logger     *logrus.Logger
	SessionTTL time.Duration
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Repo:       repo,
		JWT:        jwt,
		Redis:      rdb,
		Logger:     logger,
		SessionTTL: 24 * time.Hour,
	}
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	acc, err := s.Repo.GetAccountByEmail(ctx, email)
	if errors.Is(err, repo.ErrUserNotFound) || (err == nil && acc == nil) {
		return nil, entity.NewAuthError(entity.KindInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(acc.PasswordHash, password) {
		return nil, entity.NewAuthError(entity.KindInvalidCredentials)
	}
	if !acc.User.IsActive {
		return nil, ErrUserInactive
	}
	u := acc.User.Normalized()
	return &u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.FullName(),
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.SessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Login answers one AuthenticateUser call. Rejected credentials come back
// as an unsuccessful envelope; the error return is for internal failures.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	requestID := uuid.NewString()
	log := s.logEntry().WithField("request_id", requestID)

	u, err := s.Authenticate(ctx, email, password)
	switch {
	case errors.Is(err, entity.ErrInvalidCredentials):
		log.Info("login rejected: invalid credentials")
		return &entity.AuthResult{
			Response: response.Error(requestID, http.StatusUnauthorized, MsgInvalidCredentials),
			User:     entity.User{Photos: []entity.Photo{}},
		}, nil
	case errors.Is(err, ErrUserInactive):
		log.Info("login rejected: inactive account")
		return &entity.AuthResult{
			Response: response.Error(requestID, http.StatusForbidden, MsgAccountInactive),
			User:     entity.User{Photos: []entity.Photo{}},
		}, nil
	case err != nil:
		return nil, err
	}

	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, err
	}
	log.WithField("user_id", u.ID).Info("login successful")
	return &entity.AuthResult{
		Response: response.Success(requestID, http.StatusOK, MsgLoginSuccessful, map[string]string{
			"access_expires_at":  pair.AccessTokenExpiry.UTC().Format(time.RFC3339),
			"refresh_expires_at": pair.RefreshTokenExpiry.UTC().Format(time.RFC3339),
		}),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         *u,
	}, nil
}

func (s *AuthService) logEntry() *logrus.Entry {
	if s.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return logrus.NewEntry(l)
	}
	return logrus.NewEntry(s.Logger)
}
