package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tokopasar/storefront/internal/notification/domain"
)

// Service delivers email/send events. Input is at-least-once; the consumer's
// idempotency check upstream keeps duplicate sends out.
type Service struct {
	log    *slog.Logger
	sender Sender
}

func NewService(log *slog.Logger, sender Sender) *Service {
	return &Service{log: log, sender: sender}
}

func (s *Service) Deliver(ctx context.Context, email domain.EmailSendPayload) error {
	if email.RecipientEmail == "" {
		return fmt.Errorf("email event has no recipient")
	}
	if err := s.sender.Send(ctx, email.RecipientEmail, email.Subject, email.HTML); err != nil {
		return fmt.Errorf("send email to %s: %w", email.RecipientEmail, err)
	}
	s.log.Info("email delivered", "recipient", email.RecipientEmail, "subject", email.Subject)
	return nil
}
