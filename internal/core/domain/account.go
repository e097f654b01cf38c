package domain

import "time"

// Role is a coarse permission tag attached to an account.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Account is the persistence-facing identity record.
type Account struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Nombre          string    `json:"nombre"`
	Apellidos       string    `json:"apellidos"`
	PasswordHash    string    `json:"-"`
	Roles           []Role    `json:"roles"`
	Disabled        bool      `json:"disabled"`
	OwnedResourceID *string   `json:"ownedResourceId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// EffectiveRoles returns the account roles, falling back to USER when none are stored.
func (a *Account) EffectiveRoles() []Role {
	return normalizeRoles(a.Roles)
}

// OwnedResource returns the owned resource id, or "" when the account owns nothing.
func (a *Account) OwnedResource() string {
	if a.OwnedResourceID == nil {
		return ""
	}
	return *a.OwnedResourceID
}

func normalizeRoles(roles []Role) []Role {
	out := make([]Role, 0, len(roles))
	seen := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		if !r.Valid() {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(out) == 0 {
		return []Role{RoleUser}
	}
	return out
}
