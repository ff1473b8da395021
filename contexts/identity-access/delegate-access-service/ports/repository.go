package ports

import (
	"context"
	"time"

	"jobdeck/contexts/identity-access/delegate-access-service/domain/entities"
)

// CreatePendingInput is persisted atomically with an outbox record.
type CreatePendingInput struct {
	OutboxID         string
	FromOrgID        string
	ToOrgID          string
	RequestorAddress string
	AuthToken        string
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

// Repository is the access store: one record per ordered org pair, all
// state transitions expressed as conditional writes so that concurrent
// callers cannot observe-then-write around the condition.
type Repository interface {
	FindForPair(ctx context.Context, fromOrgID string, toOrgID string) (entities.DelegationRecord, bool, error)

	// CreatePending is an atomic create-if-absent. A revoked or
	// expired-pending record for the pair is replaced in place; a live
	// pending or accepted record makes the call fail with
	// ErrDelegationExists.
	CreatePending(ctx context.Context, input CreatePendingInput) (entities.DelegationRecord, error)

	// Accept succeeds only if a record exists for the target org with
	// status=pending, a matching token, and expiry after now. On success
	// it sets the grantor, clears the token, and stamps updated_at. The
	// condition check and the write are a single compare-and-swap, so at
	// most one of two racing accepts wins.
	Accept(ctx context.Context, toOrgID string, authToken string, grantorAddress string, now time.Time) (entities.DelegationRecord, bool, error)

	// Revoke succeeds only from status=accepted.
	Revoke(ctx context.Context, fromOrgID string, toOrgID string, revokerAddress string, now time.Time) (entities.DelegationRecord, bool, error)

	// ListForOrg returns raw records where the org is either side,
	// newest first. Display enrichment stays out of the store.
	ListForOrg(ctx context.Context, orgID string) ([]entities.DelegationRecord, error)
}

// OutboxMessage represents a pending relay message.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository supports worker relay polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}
