package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// accessClaims is the signed payload. Subject is the username.
type accessClaims struct {
	Roles           []string `json:"roles"`
	AccountID       string   `json:"uid,omitempty"`
	OwnedResourceID string   `json:"cid,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenService returns a TokenService. A ttl below one second falls back to one hour.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: empty signing secret")
	}
	if ttl < time.Second {
		ttl = defaultTokenTTL
	}
	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return s, nil
}

// WithClock replaces the time source. Used by tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Issue(account *domain.Account) (string, error) {
	if account == nil || account.Username == "" {
		return "", errors.New("issue token: account without username")
	}

	now := s.now().UTC().Truncate(time.Second)
	roles := account.EffectiveRoles()
	claims := accessClaims{
		Roles:           make([]string, 0, len(roles)),
		AccountID:       account.ID,
		OwnedResourceID: account.OwnedResource(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	for _, r := range roles {
		claims.Roles = append(claims.Roles, string(r))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks structure first, then signature, then expiry. Only the
// structural pre-check runs on unverified data; nothing from it is returned.
func (s *TokenService) Validate(token string) (*domain.TokenClaims, error) {
	if err := s.checkStructure(token); err != nil {
		return nil, err
	}

	var claims accessClaims
	_, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, classifyTokenError(err)
	}

	if claims.Subject == "" || claims.IssuedAt == nil || !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		return nil, domain.ErrTokenMalformed
	}

	roles := make([]domain.Role, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		roles = append(roles, domain.Role(r))
	}

	return &domain.TokenClaims{
		Subject:         claims.Subject,
		AccountID:       claims.AccountID,
		Roles:           roles,
		OwnedResourceID: claims.OwnedResourceID,
		IssuedAt:        claims.IssuedAt.Time,
		ExpiresAt:       claims.ExpiresAt.Time,
	}, nil
}

// checkStructure decodes the header and claims segments only. Whatever is in
// the signature segment is left to signature verification.
func (s *TokenService) checkStructure(token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return domain.ErrTokenMalformed
	}

	headerJSON, err := s.parser.DecodeSegment(parts[0])
	if err != nil {
		return domain.ErrTokenMalformed
	}
	var header map[string]any
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return domain.ErrTokenMalformed
	}
	if _, ok := header["alg"].(string); !ok {
		return domain.ErrTokenMalformed
	}

	claimsJSON, err := s.parser.DecodeSegment(parts[1])
	if err != nil {
		return domain.ErrTokenMalformed
	}
	if err := json.Unmarshal(claimsJSON, &accessClaims{}); err != nil {
		return domain.ErrTokenMalformed
	}
	return nil
}

// classifyTokenError maps a parser error on a structurally sound token.
// A signature segment that fails strict decoding counts as a bad signature.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		return domain.ErrTokenMalformed
	}
}
