package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	application "jobdeck/contexts/identity-access/delegate-access-service/application"
	"jobdeck/contexts/identity-access/delegate-access-service/ports"
)

// NoticeRelay consumes access-request notices from the bus and delivers
// the acceptance email. Delivery failures are logged; the request that
// produced the notice already succeeded and is never rolled back.
type NoticeRelay struct {
	Subscriber    ports.EventSubscriber
	Sender        ports.EmailSender
	Topic         string
	ConsumerGroup string
	Logger        *slog.Logger
}

func (r NoticeRelay) Start(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	return r.Subscriber.Subscribe(ctx, r.Topic, r.ConsumerGroup,
		func(ctx context.Context, event ports.EventEnvelope) error {
			var notice ports.AccessRequestNotice
			if err := json.Unmarshal(event.Data, &notice); err != nil {
				logger.Error("delegate access notice decode failed",
					"event", "delegate_access_notice_decode_failed",
					"module", "identity-access/delegate-access-service",
					"layer", "worker",
					"event_id", event.EventID,
					"error", err.Error(),
				)
				return err
			}
			if err := r.Sender.Send(ctx, buildAcceptanceEmail(notice)); err != nil {
				logger.Error("delegate access notice delivery failed",
					"event", "delegate_access_notice_delivery_failed",
					"module", "identity-access/delegate-access-service",
					"layer", "worker",
					"event_id", event.EventID,
					"to_org_id", notice.ToOrgID,
					"error", err.Error(),
				)
				return err
			}
			return nil
		})
}

func buildAcceptanceEmail(notice ports.AccessRequestNotice) ports.Email {
	return ports.Email{
		To:      notice.RecipientEmail,
		Subject: fmt.Sprintf("Delegated access request from %s", notice.FromOrgID),
		Body: fmt.Sprintf(
			"Organization %s has requested time-bounded administrative access to %s.\n\n"+
				"Review and accept the request here: %s\n\n"+
				"The link expires seven days after the request was made. If you do not "+
				"recognize this request, ignore this email.",
			notice.FromOrgID, notice.ToOrgID, notice.AcceptanceLink,
		),
	}
}
