// Package auth verifies session tokens issued by the external identity
// provider and exposes the authenticated user through the request context.
//
// The storefront does not manage credentials itself: sign-in and sign-up
// happen against the provider, which hands the client an HS256 JWT carrying
// the user id, display name and role. This package only validates that token
// and enforces the admin role where required.
package auth

import (
	"context"
	"errors"
)

// Role is the coarse authorization level carried on the session token.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the authenticated identity attached to a request.
type User struct {
	ID          string
	DisplayName string
	Role        Role
}

// IsAdmin reports whether this user may perform privileged operations.
// Privileged services call this themselves instead of trusting the HTTP
// layer, so a missing route guard cannot widen access.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

var (
	// ErrUnauthenticated means no valid session token accompanied the request.
	ErrUnauthenticated = errors.New("auth: no authenticated user")

	// ErrForbidden means the user is authenticated but lacks the required role.
	ErrForbidden = errors.New("auth: operation requires the admin role")
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext extracts the authenticated user placed by the middleware.
func UserFromContext(ctx context.Context) (User, error) {
	u, ok := ctx.Value(ctxKey{}).(User)
	if !ok || u.ID == "" {
		return User{}, ErrUnauthenticated
	}
	return u, nil
}

// RequireAdmin is the single role check used by every privileged service
// method.
func RequireAdmin(u User) error {
	if !u.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
