package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "jobdeck/contexts/identity-access/delegate-access-service/application"
	"jobdeck/contexts/identity-access/delegate-access-service/ports"
)

// OutboxRelay drains pending outbox rows onto the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("delegate access outbox list failed",
			"event", "delegate_access_outbox_list_failed",
			"module", "identity-access/delegate-access-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			return err
		}
		if err := r.Publisher.Publish(ctx, r.Topic, event); err != nil {
			logger.Error("delegate access outbox publish failed",
				"event", "delegate_access_outbox_publish_failed",
				"module", "identity-access/delegate-access-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			return err
		}
	}
	return nil
}
