// Package auth holds password hashing and the logged-in identity kept in the
// session.
package auth

import (
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/session"
)

// Role is a user's capability level.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	// RoleAny is only meaningful as a requirement: any logged-in user.
	RoleAny Role = "*"
)

// Valid reports whether r may be stored on a user.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Identity is the snapshot stored in the session at login. It is not
// refreshed if the user row changes afterwards.
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin is a template convenience.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Allows is the single capability check behind every guard.
func Allows(id *Identity, required Role) bool {
	if id == nil {
		return false
	}
	if required == RoleAny {
		return true
	}
	return id.Role == required
}

const sessionKey = "user"

// Current returns the identity stored in s, or nil for guests.
func Current(s *session.Session) *Identity {
	if s == nil {
		return nil
	}
	var id Identity
	ok, err := s.Decode(sessionKey, &id)
	if err != nil || !ok {
		return nil
	}
	return &id
}

// Remember stores id in s.
func Remember(s *session.Session, id Identity) error {
	return s.Put(sessionKey, id)
}

// Forget removes the identity from s.
func Forget(s *session.Session) {
	s.Delete(sessionKey)
}
