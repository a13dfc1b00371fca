// Package container builds the client-side object graph once at start-up
// and owns its lifecycle. Nothing in it is global.
package container

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/luxor-app/luxor-auth/config"
	"github.com/luxor-app/luxor-auth/internal/application"
	"github.com/luxor-app/luxor-auth/internal/domain/repository"
	"github.com/luxor-app/luxor-auth/internal/i18n"
	"github.com/luxor-app/luxor-auth/internal/infrastructure/grpcauth"
	"github.com/luxor-app/luxor-auth/internal/infrastructure/sessionstore"
	"github.com/luxor-app/luxor-auth/pkg/helpers"
)

// Container holds the constructed components. Fields are read-only after New.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Language i18n.Language

	Client   *grpcauth.Client
	Redis    *redis.Client
	Store    repository.SessionStore
	AuthRepo repository.AuthRepository
	UseCase  *application.AuthUseCase
	Session  *application.Session
}

// Option customizes New.
type Option func(*options)

type options struct {
	dialer func(ctx context.Context, addr string) (net.Conn, error)
	store  repository.SessionStore
}

// WithDialer routes the gRPC connection through dial.
func WithDialer(dial func(ctx context.Context, addr string) (net.Conn, error)) Option {
	return func(o *options) { o.dialer = dial }
}

// WithStore uses store instead of the configured backend.
func WithStore(store repository.SessionStore) Option {
	return func(o *options) { o.store = store }
}

// New wires the client, repository, use case, store and session. The
// session is restored from the store before New returns.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger, opts ...Option) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Container{Config: cfg, Logger: logger, Language: language(cfg)}

	ccfg := grpcauth.ClientConfig{
		Address:          cfg.AuthAddr,
		KeepaliveTime:    cfg.AuthKeepaliveTime,
		KeepaliveTimeout: cfg.AuthKeepaliveTimeout,
		Dialer:           o.dialer,
	}
	if cfg.AuthTLS {
		ccfg.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client, err := grpcauth.NewClient(ctx, ccfg)
	if err != nil {
		return nil, err
	}
	c.Client = client

	store := o.store
	if store == nil {
		store, err = c.buildStore(ctx)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	c.Store = store

	c.AuthRepo = grpcauth.NewAuthRepository(client, logger)
	c.UseCase = application.NewAuthUseCase(c.AuthRepo, logger)
	c.Session = application.NewSession(ctx, store, c.UseCase, logger)
	return c, nil
}

func (c *Container) buildStore(ctx context.Context) (repository.SessionStore, error) {
	switch c.Config.SessionBackend {
	case config.SessionBackendFile, "":
		return sessionstore.NewFileStore(c.Config.SessionFile), nil
	case config.SessionBackendRedis:
		rdb := helpers.NewRedisClient(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Redis = rdb
		return sessionstore.NewRedisStore(rdb, c.Config.RedisKeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", c.Config.SessionBackend)
	}
}

func language(cfg *config.Config) i18n.Language {
	if cfg.Language != "" {
		return i18n.Resolve(cfg.Language)
	}
	return i18n.FromEnv()
}

// Close tears down the session queue and releases connections.
func (c *Container) Close() error {
	if c.Session != nil {
		c.Session.Close()
	}
	var errs []error
	if c.Client != nil {
		errs = append(errs, c.Client.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	return errors.Join(errs...)
}
