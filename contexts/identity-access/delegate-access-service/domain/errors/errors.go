package errors

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrNotAuthorized        = errors.New("not authorized")
	ErrSelfDelegation       = errors.New("an organization cannot delegate access to itself")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrSubscriptionInactive = errors.New("organization subscription is not active")
	ErrDelegationExists     = errors.New("an active delegation already exists for this organization pair")

	// Precondition failures on accept/revoke share one message; callers
	// cannot tell token mismatch, expiry, and state apart.
	ErrNotFoundOrExpired   = errors.New("request not found or expired")
	ErrNotFoundOrNotActive = errors.New("delegation not found or not active")
)
