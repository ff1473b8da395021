package emailadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"jobdeck/contexts/identity-access/delegate-access-service/ports"
)

// NoticeTopic carries access-request notices from the API process to the
// email relay worker.
const NoticeTopic = "notifications.delegate-access"

// Dispatcher implements ports.Notifier by publishing the notice onto the
// event bus; the worker-side relay turns it into an email. Keeping the
// send off the request path is what makes dispatch best effort.
type Dispatcher struct {
	Publisher ports.EventPublisher
	IDs       ports.IDGenerator
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (d Dispatcher) AccessRequested(ctx context.Context, notice ports.AccessRequestNotice) error {
	eventID, err := d.IDs.NewID(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(notice)
	if err != nil {
		return err
	}
	return d.Publisher.Publish(ctx, NoticeTopic, ports.EventEnvelope{
		EventID:       eventID,
		EventType:     "delegate_access.notice",
		OccurredAt:    d.now(),
		SourceService: "delegate-access-service",
		SchemaVersion: 1,
		PartitionKey:  notice.ToOrgID,
		Data:          data,
	})
}

func (d Dispatcher) now() time.Time {
	if d.Clock != nil {
		return d.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
