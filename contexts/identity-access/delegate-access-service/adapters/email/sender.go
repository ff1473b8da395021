package emailadapter

import (
	"context"
	"log/slog"

	"jobdeck/contexts/identity-access/delegate-access-service/ports"
)

// LogSender implements ports.EmailSender by logging the outbound mail.
// Current implementation stands in while SMTP runtime wiring is
// finalized, mirroring the platform's in-process event bus posture.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(_ context.Context, email ports.Email) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("email sent",
		"event", "email_sent",
		"module", "identity-access/delegate-access-service",
		"layer", "adapter",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}
