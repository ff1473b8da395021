package httptransport

import "time"

// MemberDTO is one roster entry. Raw addresses are exposed only to
// members of the same org; email appears only when verified.
type MemberDTO struct {
	Address  string    `json:"address"`
	Role     string    `json:"role"`
	Email    string    `json:"email,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

type ListOrgMembersResponse struct {
	OrgID   string      `json:"org_id"`
	Members []MemberDTO `json:"members"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
