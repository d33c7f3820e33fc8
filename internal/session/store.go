package session

import (
	"strconv"
	"sync"
	"time"
)

const (
	tokenKey  = "token"
	expiryKey = "tokenExpiresAt"
)

// Authenticator exchanges credentials for an access token. The API client
// implements it.
type Authenticator interface {
	Login(username, password string) (string, error)
}

// Store holds the current session in memory and mirrors it into durable
// storage. Authentication status is derived from the held token, never
// stored on its own.
type Store struct {
	mu      sync.Mutex
	auth    Authenticator
	storage Storage
	ttl     time.Duration
	now     func() time.Time
	current Session
}

func NewStore(auth Authenticator, storage Storage, ttl time.Duration) *Store {
	return &Store{
		auth:    auth,
		storage: storage,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Login authenticates and, on success, replaces the current session with one
// expiring exactly ttl from now, persisting both token and expiry. A failed
// login leaves any prior session untouched.
func (s *Store) Login(username, password string) (Session, error) {
	token, err := s.auth.Login(username, password)
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		Token:     token,
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	if err := s.storage.Set(tokenKey, sess.Token); err != nil {
		return sess, err
	}
	if err := s.storage.Set(expiryKey, strconv.FormatInt(sess.ExpiresAt.UnixMilli(), 10)); err != nil {
		return sess, err
	}
	return sess, nil
}

// Logout clears the in-memory session and both persisted keys. Safe to call
// with no session.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()

	err := s.storage.Delete(tokenKey)
	if derr := s.storage.Delete(expiryKey); err == nil {
		err = derr
	}
	return err
}

// Restore rehydrates the session from storage. Anything short of a complete,
// unexpired pair of keys clears the stored state and reports no session.
// When the token itself is a decodable JWT, an exp claim earlier than the
// stored expiry wins.
func (s *Store) Restore() (Session, bool) {
	token, err := s.storage.Get(tokenKey)
	if err != nil || token == "" {
		s.Logout()
		return Session{}, false
	}

	expStr, err := s.storage.Get(expiryKey)
	if err != nil || expStr == "" {
		s.Logout()
		return Session{}, false
	}

	ms, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		s.Logout()
		return Session{}, false
	}

	expiresAt := time.UnixMilli(ms)
	if claimExp, ok := TokenExpiry(token); ok && claimExp.Before(expiresAt) {
		expiresAt = claimExp
	}

	if !s.now().Before(expiresAt) {
		s.Logout()
		return Session{}, false
	}

	sess := Session{Token: token, ExpiresAt: expiresAt}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	return sess, true
}

// Current returns the session iff it is valid right now.
func (s *Store) Current() (Session, bool) {
	s.mu.Lock()
	sess := s.current
	s.mu.Unlock()

	if !sess.Valid(s.now()) {
		return Session{}, false
	}
	return sess, true
}

func (s *Store) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Token returns the current bearer token, or "" when unauthenticated. Used
// by the API client's request interceptor.
func (s *Store) Token() string {
	sess, ok := s.Current()
	if !ok {
		return ""
	}
	return sess.Token
}
