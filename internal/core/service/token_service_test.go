package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

const testSecret = "test-signing-secret"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestTokenService(t *testing.T, now time.Time) *TokenService {
	t.Helper()
	s, err := NewTokenService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	return s.WithClock(fixedClock(now))
}

func testAccount() *domain.Account {
	owned := "01HZCUSTOMER"
	return &domain.Account{
		ID:              "01HZACCOUNT",
		Username:        "alice",
		Roles:           []domain.Role{domain.RoleUser},
		OwnedResourceID: &owned,
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(t, now)

	token, err := s.Issue(testAccount())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := s.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles %v", claims.Roles)
	}
	if claims.AccountID != "01HZACCOUNT" || claims.OwnedResourceID != "01HZCUSTOMER" {
		t.Fatalf("unexpected ids: %+v", claims)
	}
	if !claims.IssuedAt.Equal(now) || !claims.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected timestamps: iat=%v exp=%v", claims.IssuedAt, claims.ExpiresAt)
	}
}

func TestTokenService_DefaultsEmptyRolesToUser(t *testing.T) {
	s := newTestTokenService(t, time.Now())

	token, err := s.Issue(&domain.Account{Username: "bob"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := s.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleUser {
		t.Fatalf("expected [USER], got %v", claims.Roles)
	}
}

func TestTokenService_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(t, issuedAt)

	token, err := s.Issue(testAccount())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	s.WithClock(fixedClock(issuedAt.Add(time.Hour + time.Second)))
	if _, err := s.Validate(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	s := newTestTokenService(t, time.Now())
	token, err := s.Issue(testAccount())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	sigStart := strings.LastIndex(token, ".") + 1
	for i := sigStart; i < len(token); i++ {
		for _, mask := range []byte{0x01, 0x02, 0x20} {
			tampered := []byte(token)
			tampered[i] ^= mask

			_, err := s.Validate(string(tampered))
			if !errors.Is(err, domain.ErrTokenInvalidSignature) {
				t.Fatalf("byte %d xor %#x (%q): expected ErrTokenInvalidSignature, got %v", i, mask, tampered[i], err)
			}
		}
	}

	for _, last := range []byte{'z', 'A', '_', '-'} {
		tampered := []byte(token)
		tampered[len(tampered)-1] = last
		if string(tampered) == token {
			continue
		}
		if _, err := s.Validate(string(tampered)); !errors.Is(err, domain.ErrTokenInvalidSignature) {
			t.Fatalf("last byte %q: expected ErrTokenInvalidSignature, got %v", last, err)
		}
	}
}

func TestTokenService_TruncatedSignature(t *testing.T) {
	s := newTestTokenService(t, time.Now())
	token, err := s.Issue(testAccount())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for _, tampered := range []string{token[:len(token)-1], token[:strings.LastIndex(token, ".")+1]} {
		if _, err := s.Validate(tampered); !errors.Is(err, domain.ErrTokenInvalidSignature) {
			t.Fatalf("%q: expected ErrTokenInvalidSignature, got %v", tampered, err)
		}
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	other, _ := NewTokenService("another-secret", time.Hour)
	token, err := other.Issue(testAccount())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	s := newTestTokenService(t, time.Now())
	if _, err := s.Validate(token); !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestTokenService_RejectsUnsignedToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":   "mallory",
		"roles": []string{"ADMIN"},
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	s := newTestTokenService(t, time.Now())
	if _, err := s.Validate(token); !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	s := newTestTokenService(t, time.Now())

	cases := map[string]string{
		"empty":          "",
		"garbage":        "not-a-token",
		"two segments":   "abc.def",
		"bad header":     "!!!.e30.c2ln",
		"non-json claim": "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.c2ln",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Validate(token); !errors.Is(err, domain.ErrTokenMalformed) {
				t.Fatalf("expected ErrTokenMalformed, got %v", err)
			}
		})
	}
}

func TestTokenService_MissingExpiryIsMalformed(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"iat": time.Now().Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	s := newTestTokenService(t, time.Now())
	if _, err := s.Validate(token); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestNewTokenService_Config(t *testing.T) {
	if _, err := NewTokenService("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	s, err := NewTokenService("x", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TTL() != defaultTokenTTL {
		t.Fatalf("expected default ttl, got %v", s.TTL())
	}
}
