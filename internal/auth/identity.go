package auth

import "context"

// Role is the access level of a caller
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// Identity is who is making a request
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}

// Anonymous is the identity of a request without credentials
func Anonymous() Identity {
	return Identity{Role: RoleAnonymous}
}

// Authenticated reports whether the identity belongs to a known user
func (i Identity) Authenticated() bool {
	return i.Role == RoleUser || i.Role == RoleAdmin
}

// IsAdmin reports whether the identity has staff rights
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// RoleFor maps the staff flag of a user to a role
func RoleFor(isStaff bool) Role {
	if isStaff {
		return RoleAdmin
	}
	return RoleUser
}

type identityKey struct{}

// WithIdentity stores the identity in ctx
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored in ctx, or Anonymous
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Anonymous()
}
