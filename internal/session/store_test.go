package session

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Login(username, password string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestLogin_ExpiryIsExactlyTTLFromNow(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	storage := NewMemoryStorage()
	store := NewStore(&fakeAuth{token: "tok-123"}, storage, 30*time.Minute)
	store.now = func() time.Time { return now }

	sess, err := store.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := now.Add(30 * time.Minute)
	if !sess.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, sess.ExpiresAt)
	}

	savedToken, _ := storage.Get(tokenKey)
	if savedToken != "tok-123" {
		t.Errorf("expected persisted token 'tok-123', got '%s'", savedToken)
	}

	savedExpiry, _ := storage.Get(expiryKey)
	if savedExpiry != strconv.FormatInt(want.UnixMilli(), 10) {
		t.Errorf("expected persisted expiry %d, got '%s'", want.UnixMilli(), savedExpiry)
	}

	if !store.Authenticated() {
		t.Error("expected authenticated after login")
	}
}

func TestLogin_FailureLeavesPriorSessionUntouched(t *testing.T) {
	auth := &fakeAuth{token: "tok-first"}
	storage := NewMemoryStorage()
	store := NewStore(auth, storage, 30*time.Minute)

	if _, err := store.Login("admin", "admin123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	auth.err = errors.New("Invalid credentials")
	if _, err := store.Login("admin", "wrong"); err == nil {
		t.Fatal("expected error for rejected login")
	}

	sess, ok := store.Current()
	if !ok {
		t.Fatal("expected prior session to survive a failed login")
	}
	if sess.Token != "tok-first" {
		t.Errorf("expected token 'tok-first', got '%s'", sess.Token)
	}
}

func TestLogout_ClearsMemoryAndStorage(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(&fakeAuth{token: "tok-123"}, storage, 30*time.Minute)

	if _, err := store.Login("admin", "admin123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Logout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.Authenticated() {
		t.Error("expected unauthenticated after logout")
	}
	if v, _ := storage.Get(tokenKey); v != "" {
		t.Errorf("expected token cleared, got '%s'", v)
	}
	if v, _ := storage.Get(expiryKey); v != "" {
		t.Errorf("expected expiry cleared, got '%s'", v)
	}
}

func TestLogout_IdempotentWithoutSession(t *testing.T) {
	store := NewStore(&fakeAuth{}, NewMemoryStorage(), 30*time.Minute)

	if err := store.Logout(); err != nil {
		t.Fatalf("unexpected error on logout with no session: %v", err)
	}
	if err := store.Logout(); err != nil {
		t.Fatalf("unexpected error on repeated logout: %v", err)
	}
}

func TestRestore_ValidSession(t *testing.T) {
	now := time.Now()
	storage := NewMemoryStorage()
	storage.Set(tokenKey, "tok-restored")
	storage.Set(expiryKey, strconv.FormatInt(now.Add(10*time.Minute).UnixMilli(), 10))

	store := NewStore(&fakeAuth{}, storage, 30*time.Minute)

	sess, ok := store.Restore()
	if !ok {
		t.Fatal("expected session to restore")
	}
	if sess.Token != "tok-restored" {
		t.Errorf("expected token 'tok-restored', got '%s'", sess.Token)
	}
	if !store.Authenticated() {
		t.Error("expected authenticated after restore")
	}
}

func TestRestore_ExpiredClearsStorage(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Set(tokenKey, "tok-stale")
	storage.Set(expiryKey, strconv.FormatInt(time.Now().Add(-time.Minute).UnixMilli(), 10))

	store := NewStore(&fakeAuth{}, storage, 30*time.Minute)

	if _, ok := store.Restore(); ok {
		t.Fatal("expected expired session not to restore")
	}
	if store.Authenticated() {
		t.Error("expected unauthenticated after expired restore")
	}
	if v, _ := storage.Get(tokenKey); v != "" {
		t.Errorf("expected residual token cleared, got '%s'", v)
	}
	if v, _ := storage.Get(expiryKey); v != "" {
		t.Errorf("expected residual expiry cleared, got '%s'", v)
	}
}

func TestRestore_IncompletePairIsNoSession(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		expiry string
	}{
		{name: "token only", token: "tok-123", expiry: ""},
		{name: "expiry only", token: "", expiry: "9999999999999"},
		{name: "garbage expiry", token: "tok-123", expiry: "not-a-number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			if tt.token != "" {
				storage.Set(tokenKey, tt.token)
			}
			if tt.expiry != "" {
				storage.Set(expiryKey, tt.expiry)
			}

			store := NewStore(&fakeAuth{}, storage, 30*time.Minute)
			if _, ok := store.Restore(); ok {
				t.Error("expected no session")
			}
			if v, _ := storage.Get(tokenKey); v != "" {
				t.Error("expected storage cleared")
			}
		})
	}
}

func TestRestore_TokenExpClaimWins(t *testing.T) {
	now := time.Now()
	claimExpiry := now.Add(2 * time.Minute)
	token := signedToken(t, claimExpiry)

	storage := NewMemoryStorage()
	storage.Set(tokenKey, token)
	storage.Set(expiryKey, strconv.FormatInt(now.Add(30*time.Minute).UnixMilli(), 10))

	store := NewStore(&fakeAuth{}, storage, 30*time.Minute)

	sess, ok := store.Restore()
	if !ok {
		t.Fatal("expected session to restore")
	}
	if sess.ExpiresAt.After(claimExpiry.Add(time.Second)) {
		t.Errorf("expected expiry capped at token exp %v, got %v", claimExpiry, sess.ExpiresAt)
	}
}

func TestRestore_TokenAlreadyExpiredByClaim(t *testing.T) {
	token := signedToken(t, time.Now().Add(-time.Minute))

	storage := NewMemoryStorage()
	storage.Set(tokenKey, token)
	storage.Set(expiryKey, strconv.FormatInt(time.Now().Add(30*time.Minute).UnixMilli(), 10))

	store := NewStore(&fakeAuth{}, storage, 30*time.Minute)

	if _, ok := store.Restore(); ok {
		t.Fatal("expected no session when the token's own exp has passed")
	}
}

func TestCurrent_FalseOnceExpiryPasses(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := NewStore(&fakeAuth{token: "tok-123"}, NewMemoryStorage(), 30*time.Minute)
	store.now = func() time.Time { return now }

	if _, err := store.Login("admin", "admin123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Authenticated() {
		t.Fatal("expected authenticated immediately after login")
	}

	// Advance the clock to exactly the expiry instant.
	now = now.Add(30 * time.Minute)

	if store.Authenticated() {
		t.Error("expected unauthenticated at the expiry instant")
	}
	if _, ok := store.Current(); ok {
		t.Error("expected no current session at the expiry instant")
	}
}
