package application

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
	repo "github.com/luxor-app/luxor-auth/internal/domain/repository"
	"github.com/luxor-app/luxor-auth/internal/infrastructure/sessionstore"
)

// memStore is an in-memory SessionStore that counts writes.
type memStore struct {
	mu      sync.Mutex
	rec     *repo.SessionRecord
	saves   int
	clears  int
	saveErr error
}

func (m *memStore) Save(_ context.Context, rec repo.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.rec = &rec
	return nil
}

func (m *memStore) Load(context.Context) (repo.SessionRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return repo.SessionRecord{}, false, nil
	}
	return *m.rec, true, nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.rec = nil
	return nil
}

// stubAuth returns a fixed result, optionally blocking until release is closed.
type stubAuth struct {
	res     *entity.AuthResult
	err     error
	started chan struct{}
	release chan struct{}
}

func (s *stubAuth) Login(context.Context, string, string) (*entity.AuthResult, error) {
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	return s.res, s.err
}

func testUser() entity.User {
	return entity.User{
		ID:          "u-1",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		CountryCode: "+971",
		Phone:       "500000000",
		IsVerified:  true,
		IsActive:    true,
		Photos:      []entity.Photo{{ID: "p-1", Type: entity.PhotoTypePassport, MimeType: "image/png"}},
		CreatedAt:   "2025-09-04T10:00:00Z",
		UpdatedAt:   "2025-09-04T10:00:00Z",
	}
}

func okResult() *entity.AuthResult {
	return &entity.AuthResult{
		Response:     entity.StandardResponse{Success: true},
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         testUser(),
	}
}

func newTestSession(t *testing.T, store repo.SessionStore, auth Authenticator) *Session {
	t.Helper()
	s := NewSession(context.Background(), store, auth, nil)
	t.Cleanup(s.Close)
	return s
}

func TestSession_StartsLoggedOut(t *testing.T) {
	s := newTestSession(t, &memStore{}, &stubAuth{})
	snap := s.Snapshot()
	assert.Equal(t, StateLoggedOut, snap.State)
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.CurrentUser)
}

func TestSession_SignIn_Success(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, store, &stubAuth{res: okResult()})

	var states []State
	s.Subscribe(func(sn Snapshot) { states = append(states, sn.State) })

	user, err := s.SignIn(context.Background(), "ada@example.com", "Secret1!")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)

	snap := s.Snapshot()
	assert.Equal(t, StateLoggedIn, snap.State)
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.CurrentUser)
	assert.Equal(t, testUser(), *snap.CurrentUser)
	assert.Equal(t, "access-1", snap.AccessToken)
	assert.Equal(t, "refresh-1", snap.RefreshToken)
	assert.False(t, snap.IsLoading)
	assert.Nil(t, snap.LastError)

	assert.Equal(t, []State{StateAuthenticating, StateLoggedIn}, states)
	assert.Equal(t, 1, store.saves, "three keys written in one save")
	assert.Equal(t, "access-1", store.rec.AccessToken)
	assert.Equal(t, "refresh-1", store.rec.RefreshToken)
	assert.JSONEq(t, `{"id":"u-1","first_name":"Ada","last_name":"Lovelace","email":"ada@example.com",
		"country_code":"+971","phone":"500000000","is_verified":true,"is_active":true,
		"photos":[{"id":"p-1","type":2,"url":"","filename":"","size":0,"mime_type":"image/png","uploaded_at":""}],
		"created_at":"2025-09-04T10:00:00Z","updated_at":"2025-09-04T10:00:00Z"}`, string(store.rec.User))
}

func TestSession_SignIn_Failure(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, store, &stubAuth{err: entity.ErrInvalidCredentials})

	_, err := s.SignIn(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	snap := s.Snapshot()
	assert.Equal(t, StateLoggedOut, snap.State)
	assert.False(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading)
	assert.ErrorIs(t, snap.LastError, entity.ErrInvalidCredentials)
	assert.Equal(t, 0, store.saves)
	assert.Equal(t, 0, store.clears, "failed login does not touch storage")
}

func TestSession_SignIn_MissingAccessToken(t *testing.T) {
	res := okResult()
	res.AccessToken = ""
	store := &memStore{}
	s := newTestSession(t, store, &stubAuth{res: res})

	user, err := s.SignIn(context.Background(), "ada@example.com", "Secret1!")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, entity.ErrDecoding)

	snap := s.Snapshot()
	assert.Equal(t, StateLoggedOut, snap.State)
	assert.False(t, snap.IsAuthenticated)
	assert.Empty(t, snap.AccessToken)
	assert.ErrorIs(t, snap.LastError, entity.ErrDecoding)
	assert.Equal(t, 0, store.saves)
}

func TestSession_SignIn_PersistFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	s := newTestSession(t, store, &stubAuth{res: okResult()})

	_, err := s.SignIn(context.Background(), "ada@example.com", "Secret1!")
	require.Error(t, err)
	snap := s.Snapshot()
	assert.Equal(t, StateLoggedOut, snap.State)
	assert.False(t, snap.IsAuthenticated)
	assert.ErrorIs(t, snap.LastError, entity.ErrUnknown)
}

func TestSession_SignIn_RejectedWhileLoading(t *testing.T) {
	auth := &stubAuth{res: okResult(), started: make(chan struct{}), release: make(chan struct{})}
	s := newTestSession(t, &memStore{}, auth)

	done := make(chan error, 1)
	go func() {
		_, err := s.SignIn(context.Background(), "ada@example.com", "Secret1!")
		done <- err
	}()
	<-auth.started

	snap := s.Snapshot()
	assert.Equal(t, StateAuthenticating, snap.State)
	assert.True(t, snap.IsLoading)
	assert.False(t, snap.IsAuthenticated)

	_, err := s.SignIn(context.Background(), "ada@example.com", "Secret1!")
	assert.ErrorIs(t, err, ErrLoginInProgress)

	close(auth.release)
	require.NoError(t, <-done)
	assert.Equal(t, StateLoggedIn, s.Snapshot().State)
}

func TestSession_SignIn_AlreadySignedIn(t *testing.T) {
	s := newTestSession(t, &memStore{}, &stubAuth{res: okResult()})
	_, err := s.SignIn(context.Background(), "ada@example.com", "Secret1!")
	require.NoError(t, err)

	_, err = s.SignIn(context.Background(), "ada@example.com", "Secret1!")
	assert.ErrorIs(t, err, ErrAlreadySignedIn)
}

func TestSession_LogoutDuringSignIn(t *testing.T) {
	store := &memStore{}
	auth := &stubAuth{res: okResult(), started: make(chan struct{}), release: make(chan struct{})}
	s := newTestSession(t, store, auth)

	done := make(chan error, 1)
	go func() {
		_, err := s.SignIn(context.Background(), "ada@example.com", "Secret1!")
		done <- err
	}()
	<-auth.started

	require.NoError(t, s.Logout(context.Background()))
	close(auth.release)

	assert.ErrorIs(t, <-done, ErrSignInAborted)
	assert.Equal(t, StateLoggedOut, s.Snapshot().State)
	assert.Equal(t, 0, store.saves)
}

func TestSession_Logout(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, store, &stubAuth{res: okResult()})
	_, err := s.SignIn(context.Background(), "ada@example.com", "Secret1!")
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background()))
	snap := s.Snapshot()
	assert.Equal(t, StateLoggedOut, snap.State)
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.CurrentUser)
	assert.Empty(t, snap.AccessToken)
	assert.Nil(t, store.rec)

	// idempotent
	require.NoError(t, s.Logout(context.Background()))
	assert.Equal(t, StateLoggedOut, s.Snapshot().State)
	assert.Nil(t, store.rec)
}

func TestSession_RestoreAfterRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewSession(context.Background(), sessionstore.NewFileStore(path), &stubAuth{res: okResult()}, nil)
	_, err := first.SignIn(context.Background(), "ada@example.com", "Secret1!")
	require.NoError(t, err)
	first.Close()

	second := newTestSession(t, sessionstore.NewFileStore(path), &stubAuth{})
	snap := second.Snapshot()
	assert.Equal(t, StateLoggedIn, snap.State)
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.CurrentUser)
	assert.Equal(t, testUser(), *snap.CurrentUser)
	assert.Equal(t, "access-1", snap.AccessToken)
	assert.Equal(t, "refresh-1", snap.RefreshToken)

	require.NoError(t, second.Logout(context.Background()))
	third := newTestSession(t, sessionstore.NewFileStore(path), &stubAuth{})
	assert.Equal(t, StateLoggedOut, third.Snapshot().State)
}

func TestSession_RestoreCorruptUser(t *testing.T) {
	tests := []struct {
		name   string
		user   string
		access string
	}{
		{"malformed json", "{not json", "a"},
		{"null user", "null", "a"},
		{"empty object", "{}", "a"},
		{"user without id", `{"first_name":"Ada","email":"ada@example.com"}`, "a"},
		{"empty access token", `{"id":"u-1"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{rec: &repo.SessionRecord{User: []byte(tt.user), AccessToken: tt.access, RefreshToken: "r"}}
			s := newTestSession(t, store, &stubAuth{})
			snap := s.Snapshot()
			assert.Equal(t, StateLoggedOut, snap.State)
			assert.False(t, snap.IsAuthenticated)
			assert.Nil(t, snap.CurrentUser)
		})
	}
}

func TestSession_UpdateUser(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, store, &stubAuth{res: okResult()})

	assert.ErrorIs(t, s.UpdateUser(context.Background(), testUser()), ErrNotSignedIn)

	_, err := s.SignIn(context.Background(), "ada@example.com", "Secret1!")
	require.NoError(t, err)

	updated := testUser()
	updated.Phone = "511111111"
	updated.Photos = nil
	require.NoError(t, s.UpdateUser(context.Background(), updated))

	snap := s.Snapshot()
	assert.Equal(t, "511111111", snap.CurrentUser.Phone)
	assert.NotNil(t, snap.CurrentUser.Photos)
	assert.Equal(t, "access-1", snap.AccessToken)
	assert.Equal(t, 2, store.saves)
	assert.Equal(t, "refresh-1", store.rec.RefreshToken)
}

func TestSession_SnapshotIsCopy(t *testing.T) {
	s := newTestSession(t, &memStore{}, &stubAuth{res: okResult()})
	_, err := s.SignIn(context.Background(), "ada@example.com", "Secret1!")
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.CurrentUser.FirstName = "mutated"
	snap.CurrentUser.Photos[0].ID = "mutated"
	assert.Equal(t, "Ada", s.Snapshot().CurrentUser.FirstName)
	assert.Equal(t, "p-1", s.Snapshot().CurrentUser.Photos[0].ID)
}

func TestSession_ConcurrentReadersNeverSeeTornState(t *testing.T) {
	s := newTestSession(t, &memStore{}, &stubAuth{res: okResult()})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	var torn bool
	var mu sync.Mutex
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				sn := s.Snapshot()
				if sn.IsAuthenticated != (sn.CurrentUser != nil && sn.AccessToken != "") {
					mu.Lock()
					torn = true
					mu.Unlock()
				}
			}
		}()
	}
	for i := 0; i < 20; i++ {
		_, err := s.SignIn(ctx, "ada@example.com", "Secret1!")
		require.NoError(t, err)
		require.NoError(t, s.Logout(ctx))
	}
	cancel()
	wg.Wait()
	assert.False(t, torn)
}

func TestSession_Closed(t *testing.T) {
	s := NewSession(context.Background(), &memStore{}, &stubAuth{}, nil)
	s.Close()
	s.Close()
	assert.ErrorIs(t, s.Logout(context.Background()), ErrSessionClosed)
}
