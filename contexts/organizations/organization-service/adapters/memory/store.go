package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"jobdeck/contexts/organizations/organization-service/domain/entities"
)

// Store is an in-memory directory for tests and local development.
type Store struct {
	mu   sync.RWMutex
	orgs map[string]entities.Organization
	now  time.Time
}

func NewStore(orgs ...entities.Organization) *Store {
	indexed := make(map[string]entities.Organization, len(orgs))
	for _, org := range orgs {
		indexed[org.OrgID] = org
	}
	return &Store{orgs: indexed}
}

func (s *Store) Put(org entities.Organization) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgs[org.OrgID] = org
}

// SetNow pins the clock for deterministic entitlement tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now.UTC()
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.now.IsZero() {
		return s.now
	}
	return time.Now().UTC()
}

func (s *Store) GetOrganization(_ context.Context, orgID string) (entities.Organization, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.orgs[orgID]
	return org, ok, nil
}

func (s *Store) ListOrganizations(_ context.Context) ([]entities.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		items = append(items, org)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}
