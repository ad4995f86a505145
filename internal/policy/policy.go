// Package policy implements the access control decision predicates. Every
// check takes an explicit AuthContext value; there is no request-scoped
// global state and no side effects.
package policy

import "github.com/google/uuid"

// AuthContext describes the acting identity for a single request. A caller
// without a profile gets a context with IsAdmin false, so every predicate
// fails closed rather than faulting.
type AuthContext struct {
	UserID        uuid.UUID
	IsAdmin       bool
	IsStaff       bool
	Authenticated bool
}

// ReadOnlyUnlessAdmin grants read access to any authenticated caller and
// write access only to admins.
func ReadOnlyUnlessAdmin(ctx AuthContext, write bool) bool {
	if !ctx.Authenticated {
		return false
	}
	if !write {
		return true
	}
	return ctx.IsAdmin
}

// AdminOnly grants access only to admins, regardless of operation safety.
func AdminOnly(ctx AuthContext) bool {
	return ctx.Authenticated && ctx.IsAdmin
}

// OwnerOrAdmin grants access to admins and to the identity that owns the
// target resource.
func OwnerOrAdmin(ctx AuthContext, ownerID uuid.UUID) bool {
	if !ctx.Authenticated {
		return false
	}
	if ctx.IsAdmin {
		return true
	}
	return ctx.UserID == ownerID
}
