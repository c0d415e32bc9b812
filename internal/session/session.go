// Package session implements the server-side session table. A session
// binds an opaque token to an authenticated username for a bounded
// time window. Records are immutable once created; they leave the
// store either by explicit deletion (logout) or lazily after expiry.
//
// Tokens are canonical 36-character UUIDv4 strings. Uniqueness among
// live sessions is probabilistic (122 bits of entropy), not enforced
// by locking, so concurrent Create calls never contend.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is one record in the session table.
//
// Fields:
//  ID        – opaque token handed to the client, fixed 36 characters.
//  Username  – identity the token authenticates.
//  CreatedAt – when the session was issued.
//  ExpiresAt – instant after which the session no longer authenticates.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session no longer authenticates at the
// given instant. Pure function of now vs ExpiresAt.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store is the only mutation surface over the session table. The
// authentication gate treats expired records returned by Lookup as
// absent and evicts them via Delete.
type Store interface {
	// Create issues a new session for username valid for ttl.
	Create(ctx context.Context, username string, ttl time.Duration) (Session, error)
	// Lookup returns the session for id. The second result is false
	// when no record exists. An expired record may still be returned;
	// interpreting expiry is the caller's job.
	Lookup(ctx context.Context, id string) (Session, bool, error)
	// Delete removes the session. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
	// Close releases any resources held by the store.
	Close() error
}

// newToken returns a fresh session identifier.
func newToken() string { return uuid.NewString() }
