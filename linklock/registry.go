// Package linklock enforces the 1:1 binding between an externally distributed
// interview link and the browser fingerprint that first claimed it. One
// interview, one browser: a link cannot be split across two machines to
// divide the work.
package linklock

import "time"

// Entry binds a link id to the fingerprint that owns it.
type Entry struct {
	LinkID      string
	Fingerprint string
	LockedAt    time.Time
}

// Registry tracks link ownership. Release must only be invoked as part of
// Resource Teardown; releasing a lock while its session still exists would
// let a second browser slip in and later collide.
type Registry interface {
	// TryClaim binds linkID to fingerprint on first access. owned=false means
	// the link is already bound to a different fingerprint and the caller must
	// reject the request. created=true means this call established the
	// binding; exactly one claimant observes it, so a caller that needs to
	// undo its own claim on failure can rely on it without a separate read.
	TryClaim(linkID, fingerprint string) (owned, created bool)

	// Owner returns the fingerprint currently bound to linkID, if any.
	Owner(linkID string) (string, bool)

	// Release removes the binding for linkID. Releasing an absent link is a
	// no-op.
	Release(linkID string)
}
