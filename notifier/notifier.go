// Package notifier renders and dispatches transactional booking email.
// Sending is always best-effort relative to the payment operation it
// accompanies; callers log failures and move on.
package notifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wholesomemarket.io/booking/calendar"
	"wholesomemarket.io/booking/models"
)

type ConfirmationEmail struct {
	To                 string
	CustomerName       string
	Company            string
	Product            string
	ConfirmationNumber string
	Bookings           []models.DemoSlot
	AmountTotal        int64
}

type CancellationEmail struct {
	To           string
	CustomerName string
	Company      string
	Bookings     []models.DemoSlot
	RefundAmount int64
}

type Service interface {
	SendConfirmation(ctx context.Context, email *ConfirmationEmail) error
	SendCancellation(ctx context.Context, email *CancellationEmail) error
}

type service struct {
	mailer Mailer
	logger *zap.Logger
}

func NewService(mailer Mailer, logger *zap.Logger) Service {
	return &service{
		mailer: mailer,
		logger: logger,
	}
}

func (s *service) SendConfirmation(ctx context.Context, email *ConfirmationEmail) error {
	ics := calendar.Render(email.Bookings, email.Company, email.Product)

	msg := &Message{
		To:       email.To,
		Subject:  fmt.Sprintf("Demo Booking Confirmed - %s", email.ConfirmationNumber),
		HTMLBody: confirmationBody(email),
		Attachment: &Attachment{
			Filename: "demo-bookings.ics",
			MIMEType: "text/calendar",
			Content:  []byte(ics),
		},
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	s.logger.Info("Confirmation email sent",
		zap.String("to", email.To),
		zap.String("confirmation", email.ConfirmationNumber))

	return nil
}

func (s *service) SendCancellation(ctx context.Context, email *CancellationEmail) error {
	msg := &Message{
		To:       email.To,
		Subject:  "Demo Booking Cancelled - Refund Issued",
		HTMLBody: cancellationBody(email),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send cancellation email: %w", err)
	}

	s.logger.Info("Cancellation email sent", zap.String("to", email.To))

	return nil
}
