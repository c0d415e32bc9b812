package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/partsgarage/inventory-api/internal/model"
	"github.com/partsgarage/inventory-api/internal/session"
)

// RoleSource resolves the stored role of a username. Implemented by
// the user service; the indirection keeps the gate free of any
// repository dependency.
type RoleSource interface {
	GetRole(ctx context.Context, username string) (model.RoleID, error)
}

// Gate resolves session tokens to identities. It is invoked on every
// protected request and never returns an error: any condition that
// prevents authentication resolves to anonymous, and the only side
// effect is evicting an expired session on first access after its
// expiry.
type Gate struct {
	store session.Store
	roles RoleSource
	now   func() time.Time
}

// NewGate builds a gate over the given session store and role source.
func NewGate(store session.Store, roles RoleSource) *Gate {
	return &Gate{
		store: store,
		roles: roles,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the gate's time source; used by tests to simulate
// expiry.
func (g *Gate) SetClock(now func() time.Time) { g.now = now }

// Authenticate resolves token to an identity. An empty, unknown or
// expired token yields the anonymous identity. Expired sessions are
// evicted so a second lookup no longer sees them.
func (g *Gate) Authenticate(ctx context.Context, token string) model.Identity {
	if token == "" {
		return model.Identity{}
	}
	s, ok, err := g.store.Lookup(ctx, token)
	if err != nil {
		// A broken session backend must not authenticate anyone.
		log.Printf("auth: session lookup failed: %v", err)
		return model.Identity{}
	}
	if !ok {
		return model.Identity{}
	}
	if s.Expired(g.now()) {
		if err := g.store.Delete(ctx, token); err != nil {
			log.Printf("auth: evict expired session failed: %v", err)
		}
		return model.Identity{}
	}
	return model.Identity{Username: s.Username}
}

// DetermineRole maps an identity to its authorization level. The
// mapping fails closed: anonymous identities, unknown users and
// unrecognized stored role values all resolve to guest. Admin is
// returned only when the stored role is exactly the admin role.
func (g *Gate) DetermineRole(ctx context.Context, id model.Identity) model.RoleID {
	if id.Anonymous() {
		return model.RoleGuest
	}
	role, err := g.roles.GetRole(ctx, id.Username)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			log.Printf("auth: role lookup for %q failed: %v", id.Username, err)
		}
		return model.RoleGuest
	}
	if role != model.RoleAdmin {
		return model.RoleGuest
	}
	return model.RoleAdmin
}
