package entities

import "time"

// MemberRole is the authority a member holds inside an organization.
type MemberRole string

const (
	MemberRoleOwner            MemberRole = "owner"
	MemberRoleMember           MemberRole = "member"
	MemberRoleEcosystemManager MemberRole = "ecosystem-manager"
)

// Member binds an actor address to an organization. Email is only
// trusted when EmailVerified is set; identity-proof checks ignore
// unverified addresses entirely.
type Member struct {
	Address       string     `json:"address"`
	OrgID         string     `json:"org_id"`
	Role          MemberRole `json:"role"`
	Email         string     `json:"email,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	JoinedAt      time.Time  `json:"joined_at"`
}
