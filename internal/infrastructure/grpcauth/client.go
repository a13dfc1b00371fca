// Package grpcauth talks to the remote user service over gRPC and maps its
// results into the auth domain.
package grpcauth

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
)

// DefaultAddress is where the user service listens in local deployments.
const DefaultAddress = "localhost:50051"

// ClientConfig holds configuration for the user service client.
type ClientConfig struct {
	// Address is the target server address (e.g., "localhost:50051")
	Address string

	// TLSConfig enables transport security. If nil, plaintext is used.
	TLSConfig *tls.Config

	// KeepaliveTime is how often to ping the server (default: 30s)
	KeepaliveTime time.Duration

	// KeepaliveTimeout is how long to wait for ping response (default: 10s)
	KeepaliveTimeout time.Duration

	// Dialer overrides the network dialer; tests use it for in-memory listeners.
	Dialer func(ctx context.Context, addr string) (net.Conn, error)
}

// Client performs the AuthenticateUser call. It never retries.
type Client struct {
	conn *grpc.ClientConn
}

// NewClient creates a client for the user service. The connection is
// established lazily on the first call.
func NewClient(_ context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.KeepaliveTime == 0 {
		cfg.KeepaliveTime = 30 * time.Second
	}
	if cfg.KeepaliveTimeout == 0 {
		cfg.KeepaliveTimeout = 10 * time.Second
	}

	opts := []grpc.DialOption{
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    cfg.KeepaliveTime,
			Timeout: cfg.KeepaliveTimeout,
		}),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}
	if cfg.TLSConfig != nil {
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(cfg.TLSConfig)))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	if cfg.Dialer != nil {
		opts = append(opts, grpc.WithContextDialer(cfg.Dialer))
	}

	conn, err := grpc.NewClient(cfg.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service client: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Authenticate sends one AuthenticateUser request. Transport errors are
// returned unchanged; the StandardResponse is not inspected here.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	req := &AuthenticateUserRequest{Email: email, Password: password}
	resp := new(AuthenticateUserResponse)
	if err := c.conn.Invoke(ctx, AuthenticateUserMethod, req, resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
