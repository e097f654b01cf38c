package domain

import (
	"context"
	"slices"
	"time"
)

// TokenClaims is the validated content of a bearer token. It is never persisted.
type TokenClaims struct {
	Subject         string
	AccountID       string
	Roles           []Role
	OwnedResourceID string
	IssuedAt        time.Time
	ExpiresAt       time.Time
}

// Principal is the token-derived identity used during request handling.
// It deliberately carries no password hash or profile data.
type Principal struct {
	Username        string
	AccountID       string
	Roles           []Role
	OwnedResourceID string
}

// NewPrincipal builds a Principal from validated claims.
func NewPrincipal(c TokenClaims) *Principal {
	return &Principal{
		Username:        c.Subject,
		AccountID:       c.AccountID,
		Roles:           normalizeRoles(c.Roles),
		OwnedResourceID: c.OwnedResourceID,
	}
}

func (p *Principal) HasRole(role Role) bool {
	return p != nil && slices.Contains(p.Roles, role)
}

// Owns reports whether the principal is the designated owner of resourceID.
// An empty id never matches.
func (p *Principal) Owns(resourceID string) bool {
	return p != nil && resourceID != "" && p.OwnedResourceID == resourceID
}

// Identity is the per-request authentication outcome. Principal is nil for
// anonymous requests; TokenErr records why a presented token was rejected.
type Identity struct {
	Principal *Principal
	TokenErr  error
}

func (i Identity) Authenticated() bool {
	return i.Principal != nil
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored in ctx, or an anonymous identity.
func IdentityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}
