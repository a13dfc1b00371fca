// Package sessionstore persists the signed-in session keys.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/luxor-app/luxor-auth/internal/domain/repository"
)

// FileStore keeps the session keys in a single JSON document. Writes go to a
// temporary file that is renamed over the target, so readers see either
// all three keys or none.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(_ context.Context, rec repository.SessionRecord) error {
	doc := map[string]string{
		repository.KeyCurrentUser:  string(rec.User),
		repository.KeyAccessToken:  rec.AccessToken,
		repository.KeyRefreshToken: rec.RefreshToken,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod session: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

// Load returns ok=false when the file or any key is missing. A file that
// is not valid JSON is reported as an error.
func (s *FileStore) Load(_ context.Context) (repository.SessionRecord, bool, error) {
	s.mu.Lock()
	b, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		return repository.SessionRecord{}, false, nil
	}
	if err != nil {
		return repository.SessionRecord{}, false, fmt.Errorf("read session: %w", err)
	}

	var doc map[string]string
	if err := json.Unmarshal(b, &doc); err != nil {
		return repository.SessionRecord{}, false, fmt.Errorf("decode session: %w", err)
	}
	user, ok1 := doc[repository.KeyCurrentUser]
	access, ok2 := doc[repository.KeyAccessToken]
	refresh, ok3 := doc[repository.KeyRefreshToken]
	if !ok1 || !ok2 || !ok3 {
		return repository.SessionRecord{}, false, nil
	}
	return repository.SessionRecord{User: []byte(user), AccessToken: access, RefreshToken: refresh}, true, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

var _ repository.SessionStore = (*FileStore)(nil)
