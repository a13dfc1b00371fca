package sessionstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/luxor-app/luxor-auth/internal/domain/repository"
)

// RedisStore keeps the session keys in Redis under an optional prefix.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) keys() []string {
	return []string{
		s.key(repository.KeyCurrentUser),
		s.key(repository.KeyAccessToken),
		s.key(repository.KeyRefreshToken),
	}
}

// Save writes all three keys in one MULTI/EXEC transaction.
func (s *RedisStore) Save(ctx context.Context, rec repository.SessionRecord) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(repository.KeyCurrentUser), rec.User, 0)
		pipe.Set(ctx, s.key(repository.KeyAccessToken), rec.AccessToken, 0)
		pipe.Set(ctx, s.key(repository.KeyRefreshToken), rec.RefreshToken, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (repository.SessionRecord, bool, error) {
	vals, err := s.rdb.MGet(ctx, s.keys()...).Result()
	if errors.Is(err, redis.Nil) {
		return repository.SessionRecord{}, false, nil
	}
	if err != nil {
		return repository.SessionRecord{}, false, fmt.Errorf("load session: %w", err)
	}
	strs := make([]string, len(vals))
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			return repository.SessionRecord{}, false, nil
		}
		strs[i] = str
	}
	return repository.SessionRecord{
		User:         []byte(strs[0]),
		AccessToken:  strs[1],
		RefreshToken: strs[2],
	}, true, nil
}

// Clear deletes the three keys with a single DEL.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.keys()...).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

var _ repository.SessionStore = (*RedisStore)(nil)
