package httptransport

import "time"

// Wire contract: every business outcome is HTTP 200 with success/message;
// only the session middleware answers 401/403. Field names follow the
// public API's camelCase convention.

// DelegationRecordDTO is one delegation joined with display metadata.
// AuthToken and Link are null for every record that is not pending; a
// consumed token is never shown again.
type DelegationRecordDTO struct {
	FromOrgID        string    `json:"fromOrgId"`
	FromOrgName      string    `json:"fromOrgName"`
	FromOrgLogo      string    `json:"fromOrgLogo"`
	ToOrgID          string    `json:"toOrgId"`
	ToOrgName        string    `json:"toOrgName"`
	ToOrgLogo        string    `json:"toOrgLogo"`
	Requestor        string    `json:"requestor"`
	Grantor          string    `json:"grantor"`
	Revoker          string    `json:"revoker"`
	Status           string    `json:"status"`
	AuthToken        *string   `json:"authToken"`
	Link             *string   `json:"link"`
	CreatedTimestamp time.Time `json:"createdTimestamp"`
}

type ListDelegationsResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    []DelegationRecordDTO `json:"data"`
}

type RequestDelegationRequest struct {
	ToOrgID string `json:"toOrgId"`
}

type RequestDelegationResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Data    *string `json:"data,omitempty"` // acceptance link
}

type AcceptDelegationRequest struct {
	ToOrgID   string `json:"toOrgId"`
	AuthToken string `json:"authToken"`
}

type RevokeDelegationRequest struct {
	FromOrgID string `json:"fromOrgId"`
	ToOrgID   string `json:"toOrgId"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
