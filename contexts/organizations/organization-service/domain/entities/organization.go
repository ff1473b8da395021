package entities

import "time"

// Organization is a tenant in the job board directory.
type Organization struct {
	OrgID   string `json:"org_id"`
	Name    string `json:"name"`
	Logo    string `json:"logo,omitempty"`
	Website string `json:"website,omitempty"`
	Summary string `json:"summary,omitempty"`

	// Entitlement window; nil means no subscription was ever purchased.
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// SubscriptionActive reports whether the org's entitlement covers now.
func (o Organization) SubscriptionActive(now time.Time) bool {
	return o.SubscriptionExpiresAt != nil && o.SubscriptionExpiresAt.After(now)
}
