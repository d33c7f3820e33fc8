package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStorage(path)

	if v, err := s.Get("token"); err != nil || v != "" {
		t.Fatalf("expected empty value for missing key, got '%s' (err %v)", v, err)
	}

	if err := s.Set("token", "tok-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set("tokenExpiresAt", "1767225600000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh instance over the same file sees the persisted values.
	s2 := NewFileStorage(path)
	if v, _ := s2.Get("token"); v != "tok-123" {
		t.Errorf("expected 'tok-123', got '%s'", v)
	}

	if err := s2.Delete("token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := s2.Get("token"); v != "" {
		t.Errorf("expected deleted key to read empty, got '%s'", v)
	}
	if v, _ := s2.Get("tokenExpiresAt"); v != "1767225600000" {
		t.Errorf("expected other key untouched, got '%s'", v)
	}

	if err := s2.Delete("never-set"); err != nil {
		t.Errorf("unexpected error deleting missing key: %v", err)
	}
}

func TestFileStorage_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	s := NewFileStorage(path)

	if err := s.Set("token", "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := s.Get("token"); v != "tok" {
		t.Errorf("expected 'tok', got '%s'", v)
	}
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage()

	if v, _ := s.Get("missing"); v != "" {
		t.Errorf("expected empty value, got '%s'", v)
	}

	s.Set("k", "v1")
	s.Set("k", "v2")
	if v, _ := s.Get("k"); v != "v2" {
		t.Errorf("expected last write to win, got '%s'", v)
	}

	s.Delete("k")
	if v, _ := s.Get("k"); v != "" {
		t.Errorf("expected deleted key to read empty, got '%s'", v)
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	token := signedToken(t, exp)

	got, ok := TokenExpiry(token)
	if !ok {
		t.Fatal("expected exp claim to be read")
	}
	if !got.Equal(exp) {
		t.Errorf("expected exp %v, got %v", exp, got)
	}
}

func TestTokenExpiry_NotAJWT(t *testing.T) {
	if _, ok := TokenExpiry("opaque-token"); ok {
		t.Error("expected no exp for a non-JWT token")
	}
	if _, ok := TokenExpiry(""); ok {
		t.Error("expected no exp for an empty token")
	}
}

func TestTokenExpiry_NoExpClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "admin"})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, ok := TokenExpiry(signed); ok {
		t.Error("expected no exp for a token without the claim")
	}
}
