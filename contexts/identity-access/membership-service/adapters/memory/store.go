package memory

import (
	"context"
	"sort"
	"sync"

	"jobdeck/contexts/identity-access/membership-service/domain/entities"
)

// Store is an in-memory membership roster for tests and local
// development wiring.
type Store struct {
	mu      sync.RWMutex
	members []entities.Member
}

func NewStore(members ...entities.Member) *Store {
	return &Store{members: members}
}

func (s *Store) Add(member entities.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append(s.members, member)
}

func (s *Store) ListByAddress(_ context.Context, address string) ([]entities.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Member, 0)
	for _, member := range s.members {
		if member.Address == address {
			items = append(items, member)
		}
	}
	return items, nil
}

func (s *Store) ListByOrg(_ context.Context, orgID string) ([]entities.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Member, 0)
	for _, member := range s.members {
		if member.OrgID == orgID {
			items = append(items, member)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].JoinedAt.Before(items[j].JoinedAt)
	})
	return items, nil
}
