package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"jobdeck/contexts/identity-access/delegate-access-service/domain/entities"
	domainerrors "jobdeck/contexts/identity-access/delegate-access-service/domain/errors"
	"jobdeck/contexts/identity-access/delegate-access-service/ports"

	"github.com/google/uuid"
)

type pairKey struct {
	FromOrgID string
	ToOrgID   string
}

type outboxRow struct {
	ports.OutboxMessage
	PublishedAt *time.Time
}

// Store is an in-memory access store implementing the repository,
// outbox, clock, and id-generator ports. It is intended for tests and
// local development wiring; all transitions hold the mutex across the
// condition check and the write, matching the compare-and-swap the
// Postgres adapter gets from conditional UPDATEs.
type Store struct {
	mu      sync.Mutex
	records map[pairKey]entities.DelegationRecord
	outbox  map[string]outboxRow
	now     time.Time
}

func NewStore() *Store {
	return &Store{
		records: make(map[pairKey]entities.DelegationRecord),
		outbox:  make(map[string]outboxRow),
	}
}

// SetNow pins the clock for deterministic expiry tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now.UTC()
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.now.IsZero() {
		return s.now
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) FindForPair(_ context.Context, fromOrgID string, toOrgID string) (entities.DelegationRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[pairKey{FromOrgID: fromOrgID, ToOrgID: toOrgID}]
	return record, ok, nil
}

func (s *Store) CreatePending(_ context.Context, input ports.CreatePendingInput) (entities.DelegationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{FromOrgID: input.FromOrgID, ToOrgID: input.ToOrgID}
	if existing, ok := s.records[key]; ok && !existing.Replaceable(input.CreatedAt) {
		return entities.DelegationRecord{}, domainerrors.ErrDelegationExists
	}

	record := entities.DelegationRecord{
		FromOrgID:        input.FromOrgID,
		ToOrgID:          input.ToOrgID,
		Status:           entities.DelegationStatusPending,
		AuthToken:        input.AuthToken,
		RequestorAddress: input.RequestorAddress,
		CreatedAt:        input.CreatedAt.UTC(),
		UpdatedAt:        input.CreatedAt.UTC(),
		ExpiresAt:        input.ExpiresAt.UTC(),
	}
	s.records[key] = record
	s.appendOutbox(input.OutboxID, "delegate_access.requested", record)
	return record, nil
}

func (s *Store) Accept(_ context.Context, toOrgID string, authToken string, grantorAddress string, now time.Time) (entities.DelegationRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, record := range s.records {
		if record.ToOrgID != toOrgID {
			continue
		}
		if record.Status != entities.DelegationStatusPending ||
			record.AuthToken != authToken ||
			!record.ExpiresAt.After(now) {
			continue
		}
		record.Status = entities.DelegationStatusAccepted
		record.AuthToken = ""
		record.GrantorAddress = grantorAddress
		record.UpdatedAt = now.UTC()
		s.records[key] = record
		s.appendOutbox(uuid.NewString(), "delegate_access.accepted", record)
		return record, true, nil
	}
	return entities.DelegationRecord{}, false, nil
}

func (s *Store) Revoke(_ context.Context, fromOrgID string, toOrgID string, revokerAddress string, now time.Time) (entities.DelegationRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{FromOrgID: fromOrgID, ToOrgID: toOrgID}
	record, ok := s.records[key]
	if !ok || record.Status != entities.DelegationStatusAccepted {
		return entities.DelegationRecord{}, false, nil
	}
	record.Status = entities.DelegationStatusRevoked
	record.RevokerAddress = revokerAddress
	record.UpdatedAt = now.UTC()
	s.records[key] = record
	s.appendOutbox(uuid.NewString(), "delegate_access.revoked", record)
	return record, true, nil
}

func (s *Store) ListForOrg(_ context.Context, orgID string) ([]entities.DelegationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.DelegationRecord, 0)
	for _, record := range s.records {
		if record.FromOrgID == orgID || record.ToOrgID == orgID {
			items = append(items, record)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.PublishedAt == nil {
			items = append(items, row.OutboxMessage)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	at := publishedAt.UTC()
	row.PublishedAt = &at
	s.outbox[outboxID] = row
	return nil
}

func (s *Store) appendOutbox(outboxID string, eventType string, record entities.DelegationRecord) {
	payload, err := json.Marshal(ports.EventEnvelope{
		EventID:       outboxID,
		EventType:     eventType,
		OccurredAt:    record.UpdatedAt,
		SourceService: "delegate-access-service",
		SchemaVersion: 1,
		PartitionKey:  record.FromOrgID + ":" + record.ToOrgID,
		Data:          mustRedactedRecord(record),
	})
	if err != nil {
		return
	}
	s.outbox[outboxID] = outboxRow{
		OutboxMessage: ports.OutboxMessage{
			OutboxID:  outboxID,
			EventType: eventType,
			Payload:   payload,
			CreatedAt: record.UpdatedAt,
		},
	}
}

// Outbox payloads never carry the raw token.
func mustRedactedRecord(record entities.DelegationRecord) json.RawMessage {
	record.AuthToken = ""
	raw, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	return raw
}
