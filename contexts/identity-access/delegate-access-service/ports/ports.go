package ports

import (
	"context"
	"time"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for outbox rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// TokenIssuer mints opaque acceptance tokens. Tokens are fixed length,
// URL-safe, and drawn from a cryptographically strong source; expiry is
// a constant offset from issuance, never extended afterwards.
type TokenIssuer interface {
	Issue(ctx context.Context, now time.Time) (token string, expiresAt time.Time, err error)
}

// Principal is the authenticated caller, resolved by the session layer
// upstream and passed explicitly into every workflow operation.
type Principal struct {
	Address      string
	Capabilities []string
}

// HasCapability reports whether the principal carries any of the listed
// capabilities.
func (p Principal) HasCapability(capabilities ...string) bool {
	for _, required := range capabilities {
		for _, held := range p.Capabilities {
			if held == required {
				return true
			}
		}
	}
	return false
}

// Membership answers membership/ownership/identity questions about an
// actor address. Provided by the membership-service module; all reads
// are side-effect free and idempotent.
type Membership interface {
	OrgForMember(ctx context.Context, address string) (string, bool, error)
	IsOrgMember(ctx context.Context, address string, orgID string) (bool, error)
	IsOrgOwner(ctx context.Context, address string, orgID string) (bool, error)
	// HasVerifiedOrgEmail is the identity proof used by Accept: the actor
	// must hold a verified email belonging to the target organization.
	// Acceptance is identity-proof based rather than role based because
	// the grantee org may not have a registered member yet.
	HasVerifiedOrgEmail(ctx context.Context, address string, orgID string) (bool, error)
	VerifiedEmail(ctx context.Context, address string) (string, bool, error)
	OwnerContact(ctx context.Context, orgID string) (string, bool, error)
}

// OrgSummary is the display metadata joined onto delegation list views.
type OrgSummary struct {
	OrgID string
	Name  string
	Logo  string
}

// Directory is the organization lookup boundary consumed by the
// workflow: existence, display metadata, and entitlement state.
type Directory interface {
	OrgExists(ctx context.Context, orgID string) (bool, error)
	OrgSummary(ctx context.Context, orgID string) (OrgSummary, bool, error)
	HasActiveSubscription(ctx context.Context, orgID string) (bool, error)
}

// AccessRequestNotice carries everything the dispatcher needs to mail
// the acceptance link to the target organization's verified contact.
type AccessRequestNotice struct {
	FromOrgID      string
	ToOrgID        string
	RecipientEmail string
	AcceptanceLink string
}

// Notifier dispatches the acceptance link. Best effort: failures are
// logged by the caller and never roll back the request.
type Notifier interface {
	AccessRequested(ctx context.Context, notice AccessRequestNotice) error
}
