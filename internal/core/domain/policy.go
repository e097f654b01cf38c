package domain

import "fmt"

// RequirementKind enumerates the access rules a handler can demand.
type RequirementKind int

const (
	RequirePublic RequirementKind = iota
	RequireAuthenticated
	RequireRole
	RequireOwnerOrRole
)

func (k RequirementKind) String() string {
	switch k {
	case RequirePublic:
		return "public"
	case RequireAuthenticated:
		return "authenticated"
	case RequireRole:
		return "role"
	case RequireOwnerOrRole:
		return "owner_or_role"
	default:
		return fmt.Sprintf("requirement(%d)", int(k))
	}
}

// Requirement describes what a single operation needs from the caller.
type Requirement struct {
	Kind            RequirementKind
	Role            Role
	ResourceOwnerID string
}

func Public() Requirement { return Requirement{Kind: RequirePublic} }

func AnyAuthenticated() Requirement { return Requirement{Kind: RequireAuthenticated} }

func RoleRequired(role Role) Requirement {
	return Requirement{Kind: RequireRole, Role: role}
}

func OwnerOrRole(resourceOwnerID string, role Role) Requirement {
	return Requirement{Kind: RequireOwnerOrRole, Role: role, ResourceOwnerID: resourceOwnerID}
}

// Decision is the outcome of Decide. Reason is nil when Allowed.
type Decision struct {
	Allowed bool
	Reason  error
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason error) Decision { return Decision{Reason: reason} }

// Err returns nil for an allow and the deny reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

// Decide evaluates req against p. A nil principal is anonymous and is denied
// with ErrUnauthenticated on every non-public requirement. Role membership
// always satisfies OwnerOrRole regardless of ownership.
func Decide(p *Principal, req Requirement) Decision {
	if req.Kind == RequirePublic {
		return allow()
	}
	if p == nil {
		return deny(ErrUnauthenticated)
	}

	switch req.Kind {
	case RequireAuthenticated:
		return allow()
	case RequireRole:
		if p.HasRole(req.Role) {
			return allow()
		}
	case RequireOwnerOrRole:
		if p.HasRole(req.Role) || p.Owns(req.ResourceOwnerID) {
			return allow()
		}
	}
	return deny(ErrForbidden)
}
