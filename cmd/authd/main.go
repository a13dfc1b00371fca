package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"

	"github.com/luxor-app/luxor-auth/config"
	"github.com/luxor-app/luxor-auth/internal/application"
	"github.com/luxor-app/luxor-auth/internal/infrastructure/grpcauth"
	pginfra "github.com/luxor-app/luxor-auth/internal/infrastructure/postgres"
	"github.com/luxor-app/luxor-auth/internal/interface/middleware"
	"github.com/luxor-app/luxor-auth/internal/router"
	"github.com/luxor-app/luxor-auth/internal/router/modules"
	"github.com/luxor-app/luxor-auth/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-authd", cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
		DSN:         cfg.PostgresDSN(),
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := helpers.PingRedis(ctx, rdb); err != nil {
		logger.WithError(err).Warn("redis unreachable; sessions will not be recorded until it is")
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	users := pginfra.NewUserRepository(pool)
	svc := application.NewAuthService(users, jwtManager, rdb, logger)
	svc.SessionTTL = cfg.SessionTTL

	// gRPC user service
	grpcSrv := grpc.NewServer()
	grpcauth.RegisterUserServiceServer(grpcSrv, grpcauth.NewServer(svc, logger))
	lis, err := net.Listen("tcp", cfg.AuthdAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", cfg.AuthdAddr, err)
	}
	go func() {
		logger.Infof("user service listening on %s", cfg.AuthdAddr)
		if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			logger.Fatalf("grpc serve: %s", err)
		}
	}()

	// Health and debug endpoints
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	reg := router.NewRegistry(r, "/")
	reg.Add(
		modules.NewHealthModule(map[string]modules.Check{
			"postgres": pool.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		modules.NewDebugModule(rdb),
	)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.AuthdHTTPPort, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("http server starting on :%s", cfg.AuthdHTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("http server forced to shutdown")
	}
	stopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctxShutdown.Done():
		grpcSrv.Stop()
	}
	logger.Info("server exited properly")
}
