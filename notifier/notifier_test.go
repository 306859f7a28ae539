package notifier

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"go.uber.org/zap"

	"wholesomemarket.io/booking/models"
)

type recordingMailer struct {
	sent []*Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg *Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

var testSlots = []models.DemoSlot{
	{Date: "2025-03-07", Time: "11:00 AM", Location: "Downtown", DisplayDate: "Friday, March 7"},
	{Date: "2025-03-08", Time: "3:00 PM", Location: "Midtown", DisplayDate: "Saturday, March 8"},
}

func TestSendConfirmation(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewService(mailer, zap.NewNop())

	err := svc.SendConfirmation(context.Background(), &ConfirmationEmail{
		To:                 "ada@example.com",
		CustomerName:       "Ada",
		Company:            "Acme Foods",
		Product:            "Hot Sauce",
		ConfirmationNumber: "WM-12345678",
		Bookings:           testSlots,
		AmountTotal:        6000,
	})
	if err != nil {
		t.Fatalf("SendConfirmation: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(mailer.sent))
	}
	msg := mailer.sent[0]

	if msg.To != "ada@example.com" {
		t.Errorf("To = %q", msg.To)
	}
	if !strings.Contains(msg.Subject, "WM-12345678") {
		t.Errorf("subject missing confirmation number: %q", msg.Subject)
	}
	for _, want := range []string{"WM-12345678", "Friday, March 7", "11:00 AM", "Downtown", "Midtown", "$60.00"} {
		if !strings.Contains(msg.HTMLBody, want) {
			t.Errorf("body missing %q", want)
		}
	}

	if msg.Attachment == nil {
		t.Fatal("confirmation must attach the calendar document")
	}
	if msg.Attachment.MIMEType != "text/calendar" {
		t.Errorf("attachment MIME type = %q", msg.Attachment.MIMEType)
	}
	if !strings.Contains(string(msg.Attachment.Content), "BEGIN:VCALENDAR") {
		t.Error("attachment is not a calendar document")
	}
}

func TestSendCancellation(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewService(mailer, zap.NewNop())

	err := svc.SendCancellation(context.Background(), &CancellationEmail{
		To:           "ada@example.com",
		CustomerName: "Ada",
		Company:      "Acme Foods",
		Bookings:     testSlots[:1],
		RefundAmount: 3000,
	})
	if err != nil {
		t.Fatalf("SendCancellation: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(mailer.sent))
	}
	body := mailer.sent[0].HTMLBody
	for _, want := range []string{"$30.00", "Downtown", "cancelled"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestBuildMIME(t *testing.T) {
	msg := &Message{
		To:       "ada@example.com",
		Subject:  "Demo Booking\r\nConfirmed",
		HTMLBody: "<p>hello</p>",
		Attachment: &Attachment{
			Filename: "demo-bookings.ics",
			MIMEType: "text/calendar",
			Content:  []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
		},
	}

	payload := string(BuildMIME("Wholesome Market <demos@wholesomemarket.io>", msg))

	if !strings.Contains(payload, "Subject: Demo Booking Confirmed\r\n") {
		t.Error("subject header not sanitized to a single line")
	}
	if !strings.Contains(payload, "Content-Type: multipart/mixed") {
		t.Error("missing multipart content type")
	}
	if !strings.Contains(payload, `filename="demo-bookings.ics"`) {
		t.Error("missing attachment disposition")
	}

	encoded := base64.StdEncoding.EncodeToString(msg.Attachment.Content)
	if !strings.Contains(strings.ReplaceAll(payload, "\r\n", ""), encoded) {
		t.Error("attachment content not base64-encoded into the payload")
	}
}
