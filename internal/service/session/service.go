// Package session maps client tokens to the per-client cart and auth state.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"shopswift/internal/kv"
	"shopswift/internal/logging"
	"shopswift/internal/store/auth"
	"shopswift/internal/store/cart"
)

var ErrInvalidToken = errors.New("invalid token")

// Session is the state of one client install.
type Session struct {
	Token string
	Cart  *cart.Store
	Auth  *auth.Store

	lastSeen time.Time
}

type Service struct {
	storage kv.Store
	logger  *zap.Logger
	idleTTL time.Duration
	limit   int
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

type Option func(*Service)

// WithIdleTTL sets how long an untouched session stays in memory. Zero keeps
// sessions forever.
func WithIdleTTL(d time.Duration) Option {
	return func(s *Service) { s.idleTTL = d }
}

// DefaultMaxSessions caps how many sessions are held in memory.
const DefaultMaxSessions = 100000

// WithMaxSessions caps the sessions held in memory. When a new session would
// exceed it, idle sessions are swept and then the least recently seen ones are
// dropped. Zero or less removes the cap.
func WithMaxSessions(n int) Option {
	return func(s *Service) { s.limit = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a service whose auth stores persist into storage, one key
// namespace per token.
func New(storage kv.Store, opts ...Option) *Service {
	s := &Service{
		storage:  storage,
		idleTTL:  24 * time.Hour,
		limit:    DefaultMaxSessions,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger).Named("session")
	return s
}

// Issue creates a session under a fresh token. Its auth store has finished
// loading when Issue returns.
func (s *Service) Issue(ctx context.Context) (*Session, error) {
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if _, taken := s.sessions[token]; taken {
			s.mu.Unlock()
			continue
		}
		s.makeRoom(s.now())
		sess := s.newSession(token)
		s.sessions[token] = sess
		s.mu.Unlock()

		sess.Auth.Load(ctx)
		s.logger.Debug("session issued")
		return sess, nil
	}
	return nil, errors.New("token collision")
}

// Resolve returns the session for token. A well-formed token that is not in
// memory, because the process restarted or the session idled out, gets a new
// session with an empty cart whose auth store reloads the persisted user.
func (s *Service) Resolve(ctx context.Context, token string) (*Session, error) {
	if !wellFormed(token) {
		return nil, ErrInvalidToken
	}
	now := s.now()

	s.mu.Lock()
	sess, ok := s.sessions[token]
	if ok && s.expired(sess, now) {
		ok = false
	}
	if !ok {
		delete(s.sessions, token)
		s.makeRoom(now)
		sess = s.newSession(token)
		s.sessions[token] = sess
		s.logger.Debug("session resumed")
	}
	sess.lastSeen = now
	s.mu.Unlock()

	sess.Auth.Load(ctx)
	return sess, nil
}

// Sweep drops sessions idle longer than the TTL and returns how many went.
// Persisted users are left in storage.
func (s *Service) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweep(s.now())
}

func (s *Service) sweep(now time.Time) int {
	removed := 0
	for token, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// makeRoom frees a slot for one more session. Callers hold mu.
func (s *Service) makeRoom(now time.Time) {
	if s.limit <= 0 || len(s.sessions) < s.limit {
		return
	}
	s.sweep(now)
	for len(s.sessions) >= s.limit {
		var oldest *Session
		for _, sess := range s.sessions {
			if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
				oldest = sess
			}
		}
		delete(s.sessions, oldest.Token)
		s.logger.Warn("session limit reached, dropped least recently seen", zap.Int("limit", s.limit))
	}
}

// Run sweeps on every tick until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if s.idleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}

// Len is the number of sessions held in memory.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Service) newSession(token string) *Session {
	return &Session{
		Token:    token,
		Cart:     cart.New(),
		Auth:     auth.New(kv.WithPrefix(s.storage, KeyPrefix(token)), auth.WithLogger(s.logger)),
		lastSeen: s.now(),
	}
}

func (s *Service) expired(sess *Session, now time.Time) bool {
	return s.idleTTL > 0 && now.Sub(sess.lastSeen) > s.idleTTL
}

// KeyPrefix is the storage namespace of one session's records.
func KeyPrefix(token string) string {
	return "session:" + token + ":"
}
