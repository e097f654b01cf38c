package domain

import (
	"context"
	"errors"
	"testing"
)

func TestNewPrincipal_DefaultsRoles(t *testing.T) {
	p := NewPrincipal(TokenClaims{Subject: "alice"})
	if len(p.Roles) != 1 || p.Roles[0] != RoleUser {
		t.Fatalf("expected [USER], got %v", p.Roles)
	}

	p = NewPrincipal(TokenClaims{Subject: "root", Roles: []Role{RoleAdmin, "BOGUS", RoleAdmin}})
	if len(p.Roles) != 1 || !p.HasRole(RoleAdmin) {
		t.Fatalf("expected [ADMIN], got %v", p.Roles)
	}
}

func TestAccount_EffectiveRoles(t *testing.T) {
	a := &Account{}
	if roles := a.EffectiveRoles(); len(roles) != 1 || roles[0] != RoleUser {
		t.Fatalf("expected [USER], got %v", roles)
	}
	if a.OwnedResource() != "" {
		t.Fatalf("expected no owned resource")
	}
}

func TestIdentityContext(t *testing.T) {
	if id := IdentityFrom(context.Background()); id.Authenticated() || id.TokenErr != nil {
		t.Fatalf("empty context must be anonymous, got %+v", id)
	}

	p := &Principal{Username: "alice", Roles: []Role{RoleUser}}
	ctx := WithIdentity(context.Background(), Identity{Principal: p})
	if got := IdentityFrom(ctx); got.Principal != p {
		t.Fatalf("principal not carried by context")
	}

	ctx = WithIdentity(context.Background(), Identity{TokenErr: ErrTokenExpired})
	got := IdentityFrom(ctx)
	if got.Authenticated() || !errors.Is(got.TokenErr, ErrTokenExpired) {
		t.Fatalf("unexpected identity %+v", got)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(map[string]string{"username": "is required", "email": "must be a valid email"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ValidationError must match ErrValidation")
	}
	want := "validation failed: email: must be a valid email; username: is required"
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestDuplicateErrorsMatchCredentialFamily(t *testing.T) {
	for _, err := range []error{ErrDuplicateUsername, ErrDuplicateEmail} {
		if !errors.Is(err, ErrDuplicateCredential) {
			t.Fatalf("%v must match ErrDuplicateCredential", err)
		}
	}
	for _, err := range []error{ErrTokenMalformed, ErrTokenInvalidSignature} {
		if !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("%v must match ErrTokenInvalid", err)
		}
	}
}
