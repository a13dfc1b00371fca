package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/luxor-app/luxor-auth/config"
	"github.com/luxor-app/luxor-auth/internal/domain/entity"
	pginfra "github.com/luxor-app/luxor-auth/internal/infrastructure/postgres"
	"github.com/luxor-app/luxor-auth/pkg/helpers"
	"github.com/luxor-app/luxor-auth/pkg/validation"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	email := envOr("SEED_EMAIL", "demo@luxor.app")
	password := envOr("SEED_PASSWORD", "Luxor123!")
	if err := (validation.LoginForm{Email: email, Password: password}).Validate(); err != nil {
		log.Fatalf("seed credentials would be rejected by the client: %v", validation.ToDetails(err))
	}

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	repo := pginfra.NewUserRepository(pool)
	id, err := repo.UpsertAccount(ctx, &entity.Account{
		User: entity.User{
			Email:       email,
			FirstName:   "Demo",
			LastName:    "User",
			CountryCode: "+971",
			Phone:       "501234567",
			IsVerified:  true,
			IsActive:    true,
		},
		PasswordHash: hash,
	})
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	if err := repo.AddPhoto(ctx, id, entity.Photo{
		Type:     entity.PhotoTypeUser,
		URL:      "https://cdn.luxor.app/demo/avatar.jpg",
		Filename: "avatar.jpg",
		Size:     24576,
		MimeType: "image/jpeg",
	}); err != nil {
		log.Fatalf("failed to seed photo: %v", err)
	}
	fmt.Println("attached profile photo (if not already)")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
