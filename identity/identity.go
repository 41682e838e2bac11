// Package identity maps a logical user identifier to a single reusable
// session id, durably, so repeated "start" calls from the same legitimate
// context do not fragment state across process restarts.
package identity

import (
	"context"
	"fmt"
)

// Repo is the persistent identity map. Resolve is idempotent: the same
// identifier always yields the same session id for as long as the entry
// exists. Implementations must be durable; legitimate resumption depends on
// the mapping surviving a crash or redeploy.
type Repo interface {
	// Resolve returns the session id mapped to userIdentifier, creating and
	// persisting a new one on first access. A failed durable write must be
	// returned as an error, never papered over with a non-persisted id.
	Resolve(ctx context.Context, userIdentifier string) (string, error)
}

// LinkedIdentifier builds the identifier for a link-scoped interview. The
// fingerprint is deliberately excluded: a crash followed by a legitimate
// restart from the intended browser must still resolve to the same id.
func LinkedIdentifier(linkID, candidateEmail string) string {
	return fmt.Sprintf("linked:%s:%s", linkID, candidateEmail)
}

// AdHocIdentifier builds the identifier for an ad-hoc interview. Here the
// fingerprint is included: an unrelated person reusing the same candidate
// email from a different machine must not collide.
func AdHocIdentifier(candidateEmail, fingerprint string) string {
	return fmt.Sprintf("adhoc:%s:%s", candidateEmail, fingerprint)
}
