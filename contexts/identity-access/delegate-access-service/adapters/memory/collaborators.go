package memory

import (
	"context"
	"sync"

	"jobdeck/contexts/identity-access/delegate-access-service/ports"
)

// Member is seed data for the in-memory membership collaborator.
type Member struct {
	Address       string
	OrgID         string
	Role          string // "owner" or "member"
	Email         string
	EmailVerified bool
}

// Memberships is an in-memory stand-in for the membership-service
// boundary, used by tests and local development wiring.
type Memberships struct {
	mu      sync.RWMutex
	members []Member
}

func NewMemberships(members ...Member) *Memberships {
	return &Memberships{members: members}
}

func (m *Memberships) Add(member Member) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members = append(m.members, member)
}

func (m *Memberships) OrgForMember(_ context.Context, address string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, member := range m.members {
		if member.Address == address {
			return member.OrgID, true, nil
		}
	}
	return "", false, nil
}

func (m *Memberships) IsOrgMember(_ context.Context, address string, orgID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, member := range m.members {
		if member.Address == address && member.OrgID == orgID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memberships) IsOrgOwner(_ context.Context, address string, orgID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, member := range m.members {
		if member.Address == address && member.OrgID == orgID && member.Role == "owner" {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memberships) HasVerifiedOrgEmail(_ context.Context, address string, orgID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, member := range m.members {
		if member.Address == address && member.OrgID == orgID && member.EmailVerified {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memberships) VerifiedEmail(_ context.Context, address string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, member := range m.members {
		if member.Address == address && member.EmailVerified && member.Email != "" {
			return member.Email, true, nil
		}
	}
	return "", false, nil
}

func (m *Memberships) OwnerContact(_ context.Context, orgID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, member := range m.members {
		if member.OrgID == orgID && member.Role == "owner" && member.EmailVerified && member.Email != "" {
			return member.Email, true, nil
		}
	}
	return "", false, nil
}

// Org is seed data for the in-memory directory collaborator.
type Org struct {
	OrgID              string
	Name               string
	Logo               string
	SubscriptionActive bool
}

// Directory is an in-memory stand-in for the organization directory.
type Directory struct {
	mu   sync.RWMutex
	orgs map[string]Org
}

func NewDirectory(orgs ...Org) *Directory {
	indexed := make(map[string]Org, len(orgs))
	for _, org := range orgs {
		indexed[org.OrgID] = org
	}
	return &Directory{orgs: indexed}
}

func (d *Directory) OrgExists(_ context.Context, orgID string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.orgs[orgID]
	return ok, nil
}

func (d *Directory) OrgSummary(_ context.Context, orgID string) (ports.OrgSummary, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	org, ok := d.orgs[orgID]
	if !ok {
		return ports.OrgSummary{}, false, nil
	}
	return ports.OrgSummary{OrgID: org.OrgID, Name: org.Name, Logo: org.Logo}, true, nil
}

func (d *Directory) HasActiveSubscription(_ context.Context, orgID string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	org, ok := d.orgs[orgID]
	return ok && org.SubscriptionActive, nil
}

// NoticeRecorder captures dispatched notices. Delivered receives each
// notice so tests can wait for the asynchronous dispatch.
type NoticeRecorder struct {
	mu        sync.Mutex
	notices   []ports.AccessRequestNotice
	Fail      error
	Delivered chan ports.AccessRequestNotice
}

func NewNoticeRecorder() *NoticeRecorder {
	return &NoticeRecorder{Delivered: make(chan ports.AccessRequestNotice, 16)}
}

func (n *NoticeRecorder) AccessRequested(_ context.Context, notice ports.AccessRequestNotice) error {
	if n.Fail != nil {
		select {
		case n.Delivered <- notice:
		default:
		}
		return n.Fail
	}
	n.mu.Lock()
	n.notices = append(n.notices, notice)
	n.mu.Unlock()
	select {
	case n.Delivered <- notice:
	default:
	}
	return nil
}

func (n *NoticeRecorder) Notices() []ports.AccessRequestNotice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.AccessRequestNotice(nil), n.notices...)
}
