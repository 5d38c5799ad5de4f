// Package auth holds the signed-in user of one session and persists it to
// durable key-value storage so it survives restarts.
package auth

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopswift/internal/domain"
	"shopswift/internal/kv"
	"shopswift/internal/logging"
)

// DefaultKey is the storage key holding the JSON encoded user.
const DefaultKey = "user"

// MinPasswordLength applies to signup only.
const MinPasswordLength = 6

// State is the authentication state of a Store.
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Store tracks at most one current user. It starts in StateLoading and leaves
// it once Load has read the persisted record.
type Store struct {
	storage  kv.Store
	key      string
	logger   *zap.Logger
	accounts *Accounts
	newID    func() string

	// opMu serializes login, signup and logout so that the persisted record
	// always matches the last completed operation.
	opMu sync.Mutex

	mu    sync.RWMutex
	state State
	user  *domain.User

	loadOnce sync.Once
	ready    chan struct{}
}

// Option customizes a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used to report swallowed storage failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithAccounts replaces the built-in accounts.
func WithAccounts(a *Accounts) Option {
	return func(s *Store) { s.accounts = a }
}

// WithIDGenerator replaces the id source used by Signup.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New returns a Store in StateLoading backed by storage.
func New(storage kv.Store, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		newID:   uuid.NewString,
		state:   StateLoading,
		ready:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger).Named("auth")
	if s.accounts == nil {
		s.accounts = BuiltinAccounts()
	}
	return s
}

// Load reads the persisted user and leaves StateLoading. Only the first call
// does any work; later calls return immediately. Storage or decode failures
// are logged and leave the store anonymous.
func (s *Store) Load(ctx context.Context) {
	s.loadOnce.Do(func() {
		defer close(s.ready)

		user := s.readPersisted(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state != StateLoading {
			// A login or signup finished first; it wins.
			return
		}
		if user != nil {
			s.user = user
			s.state = StateAuthenticated
			return
		}
		s.state = StateAnonymous
	})
}

// Ready is closed once Load has completed.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Login signs in one of the built-in accounts. A false result leaves the
// current user untouched.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	user, ok := s.accounts.Authenticate(email, password)
	if !ok {
		s.logger.Debug("login rejected", zap.String("email", email))
		return false
	}
	s.setUser(ctx, &user)
	return true
}

// Signup creates a fresh non-admin user for any non-empty email and a
// password of at least MinPasswordLength characters. Nothing checks whether
// the email is already in use.
func (s *Store) Signup(ctx context.Context, email, password string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	email = strings.TrimSpace(email)
	if email == "" || utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}
	s.setUser(ctx, &domain.User{ID: s.newID(), Email: email, IsAdmin: false})
	return true
}

// Logout forgets the current user and removes the persisted record.
func (s *Store) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.user = nil
	s.state = StateAnonymous
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, s.key); err != nil {
		s.logger.Error("remove persisted user", zap.String("key", s.key), zap.Error(err))
	}
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *Store) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAdmin reports whether a user is signed in and carries the admin flag.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// State returns the current authentication state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) setUser(ctx context.Context, user *domain.User) {
	s.mu.Lock()
	s.user = user
	s.state = StateAuthenticated
	s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		s.logger.Error("encode user", zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, s.key, string(raw)); err != nil {
		s.logger.Error("persist user", zap.String("key", s.key), zap.Error(err))
	}
}

func (s *Store) readPersisted(ctx context.Context) *domain.User {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("load persisted user", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Error("decode persisted user", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	if user.ID == "" {
		s.logger.Warn("persisted user has no id", zap.String("key", s.key))
		return nil
	}
	return &user
}
