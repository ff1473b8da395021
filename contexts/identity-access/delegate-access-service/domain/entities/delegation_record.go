package entities

import "time"

// DelegationStatus is the lifecycle state of a delegation record.
// pending is the only initial state; revoked is terminal.
type DelegationStatus string

const (
	DelegationStatusPending  DelegationStatus = "pending"
	DelegationStatusAccepted DelegationStatus = "accepted"
	DelegationStatusRevoked  DelegationStatus = "revoked"
)

// DelegationRecord is one organization's time-bounded administrative
// access relationship to another. Exactly one record exists per ordered
// (FromOrgID, ToOrgID) pair. AuthToken is non-empty iff the record is
// pending; it is cleared on acceptance and never restored.
type DelegationRecord struct {
	FromOrgID        string           `json:"from_org_id"`
	ToOrgID          string           `json:"to_org_id"`
	Status           DelegationStatus `json:"status"`
	AuthToken        string           `json:"auth_token,omitempty"`
	RequestorAddress string           `json:"requestor_address"`
	GrantorAddress   string           `json:"grantor_address,omitempty"`
	RevokerAddress   string           `json:"revoker_address,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	ExpiresAt        time.Time        `json:"expires_at"`
}

// Acceptable reports whether the record can still be accepted at now.
// Expiry is evaluated lazily here and in the store's conditional update;
// there is no sweep that transitions expired records.
func (r DelegationRecord) Acceptable(now time.Time) bool {
	return r.Status == DelegationStatusPending && r.ExpiresAt.After(now)
}

// Replaceable reports whether a new request may take over the pair.
// Revoked records and pending records that were never accepted before
// expiry are dead and may be replaced; live pending and accepted records
// may not.
func (r DelegationRecord) Replaceable(now time.Time) bool {
	if r.Status == DelegationStatusRevoked {
		return true
	}
	return r.Status == DelegationStatusPending && !r.ExpiresAt.After(now)
}
