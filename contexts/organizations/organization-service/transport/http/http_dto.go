package httptransport

import "time"

type OrganizationDTO struct {
	OrgID              string    `json:"org_id"`
	Name               string    `json:"name"`
	Logo               string    `json:"logo,omitempty"`
	Website            string    `json:"website,omitempty"`
	Summary            string    `json:"summary,omitempty"`
	SubscriptionActive bool      `json:"subscription_active"`
	CreatedAt          time.Time `json:"created_at"`
}

type ListOrganizationsResponse struct {
	Organizations []OrganizationDTO `json:"organizations"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
