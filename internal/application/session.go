package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
	repo "github.com/luxor-app/luxor-auth/internal/domain/repository"
)

var (
	ErrLoginInProgress = errors.New("login already in progress")
	ErrAlreadySignedIn = errors.New("already signed in")
	ErrNotSignedIn     = errors.New("not signed in")
	ErrSignInAborted   = errors.New("sign-in aborted by logout")
	ErrSessionClosed   = errors.New("session closed")
)

// State is the authentication state of a Session.
type State int

const (
	StateLoggedOut State = iota
	StateAuthenticating
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateLoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}

// Snapshot is a consistent view of a Session. IsAuthenticated is true iff
// CurrentUser and AccessToken are both set.
type Snapshot struct {
	State           State
	IsAuthenticated bool
	CurrentUser     *entity.User
	AccessToken     string
	RefreshToken    string
	IsLoading       bool
	LastError       error
}

// Authenticator is the login entry point a Session drives.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*entity.AuthResult, error)
}

// Session is the process-wide authentication state. It is created once at
// start-up with NewSession and torn down with Close.
//
// All mutations run on a single goroutine in submission order, so the
// three persisted keys are never written concurrently. Reads go through
// Snapshot and never observe a half-applied mutation.
type Session struct {
	store  repo.SessionStore
	auth   Authenticator
	logger *logrus.Logger

	mu   sync.RWMutex
	snap Snapshot

	// attempt is bumped by Logout so an in-flight sign-in can tell it was
	// superseded. Only touched on the mutation goroutine.
	attempt uint64

	obsMu     sync.Mutex
	observers []func(Snapshot)

	ops       chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession restores any persisted session from store and starts the
// mutation queue. A missing or unreadable record yields StateLoggedOut.
func NewSession(ctx context.Context, store repo.SessionStore, auth Authenticator, logger *logrus.Logger) *Session {
	s := &Session{
		store:  store,
		auth:   auth,
		logger: logger,
		ops:    make(chan func()),
		done:   make(chan struct{}),
	}
	s.snap = s.restore(ctx)
	go s.loop()
	return s
}

func (s *Session) restore(ctx context.Context) Snapshot {
	rec, ok, err := s.store.Load(ctx)
	if err != nil {
		s.warn(err, "stored session unreadable; starting signed out")
		return Snapshot{State: StateLoggedOut}
	}
	if !ok {
		return Snapshot{State: StateLoggedOut}
	}
	var user entity.User
	if err := json.Unmarshal(rec.User, &user); err != nil {
		s.warn(err, "stored user record corrupt; starting signed out")
		return Snapshot{State: StateLoggedOut}
	}
	if user.ID == "" || rec.AccessToken == "" {
		s.warn(errors.New("incomplete session record"), "stored session incomplete; starting signed out")
		return Snapshot{State: StateLoggedOut}
	}
	user = user.Normalized()
	return Snapshot{
		State:           StateLoggedIn,
		IsAuthenticated: true,
		CurrentUser:     &user,
		AccessToken:     rec.AccessToken,
		RefreshToken:    rec.RefreshToken,
	}
}

func (s *Session) loop() {
	for {
		select {
		case op := <-s.ops:
			op()
		case <-s.done:
			return
		}
	}
}

// submit runs fn on the mutation goroutine and waits for its result.
func (s *Session) submit(ctx context.Context, fn func() error) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	res := make(chan error, 1)
	op := func() { res <- fn() }
	select {
	case s.ops <- op:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-res
}

// commit replaces the snapshot and notifies observers. Mutation goroutine only.
func (s *Session) commit(next Snapshot) {
	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	s.obsMu.Lock()
	observers := append([]func(Snapshot){}, s.observers...)
	s.obsMu.Unlock()
	for _, fn := range observers {
		fn(next.clone())
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Subscribe registers fn to receive every committed snapshot. fn runs on
// the mutation goroutine right after the change is applied; it must not
// call back into mutating Session methods.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.obsMu.Lock()
	s.observers = append(s.observers, fn)
	s.obsMu.Unlock()
}

// SignIn authenticates and, on success, persists the session. It is
// rejected with ErrLoginInProgress while another attempt is loading. The
// returned error is an *entity.AuthError for authentication failures.
func (s *Session) SignIn(ctx context.Context, email, password string) (*entity.User, error) {
	var attempt uint64
	err := s.submit(ctx, func() error {
		cur := s.snap
		if cur.IsLoading {
			return ErrLoginInProgress
		}
		if cur.State == StateLoggedIn {
			return ErrAlreadySignedIn
		}
		attempt = s.attempt
		s.commit(Snapshot{State: StateAuthenticating, IsLoading: true})
		return nil
	})
	if err != nil {
		return nil, err
	}

	res, authErr := s.auth.Login(ctx, email, password)
	switch {
	case authErr != nil:
	case res == nil:
		authErr = entity.NewAuthError(entity.KindUnknown)
	case res.AccessToken == "":
		authErr = entity.NewAuthError(entity.KindDecoding)
	}

	// The outcome is committed even if ctx was cancelled during the call.
	cctx := context.WithoutCancel(ctx)
	var user *entity.User
	err = s.submit(cctx, func() error {
		if attempt != s.attempt {
			return ErrSignInAborted
		}
		if authErr != nil {
			s.commit(Snapshot{State: StateLoggedOut, LastError: authErr})
			return authErr
		}
		u := res.User.Normalized()
		if err := s.persist(cctx, u, res.AccessToken, res.RefreshToken); err != nil {
			s.commit(Snapshot{State: StateLoggedOut, LastError: entity.NewAuthError(entity.KindUnknown)})
			return err
		}
		s.commit(Snapshot{
			State:           StateLoggedIn,
			IsAuthenticated: true,
			CurrentUser:     &u,
			AccessToken:     res.AccessToken,
			RefreshToken:    res.RefreshToken,
		})
		user = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithField("user_id", user.ID).Info("signed in")
	}
	cp := *user
	return &cp, nil
}

// Logout clears in-memory state and the persisted keys. Calling it while
// signed out is a no-op apart from clearing storage again.
func (s *Session) Logout(ctx context.Context) error {
	return s.submit(ctx, func() error {
		if err := s.store.Clear(ctx); err != nil {
			return err
		}
		s.attempt++
		wasIn := s.snap.State == StateLoggedIn
		s.commit(Snapshot{State: StateLoggedOut})
		if wasIn && s.logger != nil {
			s.logger.Info("signed out")
		}
		return nil
	})
}

// UpdateUser replaces the signed-in user wholesale and persists it with the
// current tokens.
func (s *Session) UpdateUser(ctx context.Context, user entity.User) error {
	return s.submit(ctx, func() error {
		cur := s.snap
		if cur.State != StateLoggedIn {
			return ErrNotSignedIn
		}
		u := user.Normalized()
		if err := s.persist(ctx, u, cur.AccessToken, cur.RefreshToken); err != nil {
			return err
		}
		next := cur
		next.CurrentUser = &u
		s.commit(next)
		return nil
	})
}

func (s *Session) persist(ctx context.Context, u entity.User, access, refresh string) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Save(ctx, repo.SessionRecord{User: b, AccessToken: access, RefreshToken: refresh}); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("user_id", u.ID).Error("persist session failed")
		}
		return err
	}
	return nil
}

// Close stops the mutation queue. Later mutations return ErrSessionClosed.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Session) warn(err error, msg string) {
	if s.logger != nil {
		s.logger.WithError(err).Warn(msg)
	}
}

func (sn Snapshot) clone() Snapshot {
	if sn.CurrentUser != nil {
		u := sn.CurrentUser.Normalized()
		sn.CurrentUser = &u
	}
	return sn
}
