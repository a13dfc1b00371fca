package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
	"github.com/luxor-app/luxor-auth/internal/domain/repository"
)

// dbtx is the subset of *pgxpool.Pool the repository uses.
type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type UserRepository struct {
	pool dbtx
}

func NewUserRepository(pool dbtx) *UserRepository {
	return &UserRepository{pool: pool}
}

const selectAccountByEmail = `
		SELECT id, email, password_hash, first_name, last_name, country_code, phone,
		       is_verified, is_active, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)`

const selectPhotosByUser = `
		SELECT id, type, url, filename, size, mime_type, uploaded_at
		FROM user_photos
		WHERE user_id = $1
		ORDER BY uploaded_at`

func (r *UserRepository) GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var (
		acc                  entity.Account
		createdAt, updatedAt time.Time
	)
	u := &acc.User
	row := r.pool.QueryRow(ctx, selectAccountByEmail, email)
	if err := row.Scan(&u.ID, &u.Email, &acc.PasswordHash, &u.FirstName, &u.LastName,
		&u.CountryCode, &u.Phone, &u.IsVerified, &u.IsActive, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	u.CreatedAt = formatTime(createdAt)
	u.UpdatedAt = formatTime(updatedAt)

	photos, err := r.photos(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Photos = photos
	return &acc, nil
}

func (r *UserRepository) photos(ctx context.Context, userID string) ([]entity.Photo, error) {
	rows, err := r.pool.Query(ctx, selectPhotosByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	out := []entity.Photo{}
	for rows.Next() {
		var (
			p          entity.Photo
			typ        int32
			uploadedAt time.Time
		)
		if err := rows.Scan(&p.ID, &typ, &p.URL, &p.Filename, &p.Size, &p.MimeType, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		p.Type = entity.ParsePhotoType(typ)
		p.UploadedAt = formatTime(uploadedAt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return out, nil
}

// UpsertAccount inserts or refreshes a user keyed by email and returns its id.
// Used by the seeder.
func (r *UserRepository) UpsertAccount(ctx context.Context, acc *entity.Account) (string, error) {
	u := acc.User
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, country_code, phone, is_verified, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    is_active = EXCLUDED.is_active,
		    updated_at = now()
		RETURNING id
	`, u.Email, acc.PasswordHash, u.FirstName, u.LastName, u.CountryCode, u.Phone, u.IsVerified, u.IsActive).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert account: %w", err)
	}
	return id, nil
}

// AddPhoto attaches a photo record to a user unless one with the same type exists.
func (r *UserRepository) AddPhoto(ctx context.Context, userID string, p entity.Photo) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_photos (user_id, type, url, filename, size, mime_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, type) DO NOTHING
	`, userID, int32(p.Type), p.URL, p.Filename, p.Size, p.MimeType)
	if err != nil {
		return fmt.Errorf("add photo: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

var _ repository.UserRepository = (*UserRepository)(nil)
