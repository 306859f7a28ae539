// Package booking is the core of the demo scheduling backend. The payment
// processor's checkout sessions are the only durable store: a cart's sole
// trace is the metadata encoded onto its session, and every admin view is
// recomputed from session records on each request.
package booking

import (
	"context"
	"errors"
	"strconv"
	"time"

	"wholesomemarket.io/booking/models"
)

// SlotFeeCents is the flat fee for one three-hour demo slot, in minor
// currency units.
const SlotFeeCents int64 = 3000

var (
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrAlreadyRefunded     = errors.New("booking already refunded")
	ErrNoPaymentIntent     = errors.New("no payment intent found")
)

type Booking interface {
	CreateCheckout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResult, error) // Interacts with Stripe
	VerifyPayment(ctx context.Context, sessionID string) (*models.VerificationResult, error)         // Interacts with Stripe

	ListBookings(ctx context.Context) ([]*models.BookingRecord, error)
	MonthStats(ctx context.Context) (*models.MonthStats, error)
	Analytics(ctx context.Context) (*models.Analytics, error)
	RefundBooking(ctx context.Context, sessionID string) (*models.RefundResult, error) // Interacts with Stripe
}

// newConfirmationNumber derives a human-facing booking identifier from the
// last eight digits of the epoch-millisecond clock. Two verifications inside
// the same millisecond would collide; swap the implementation for a random
// generator if that ever matters at this volume.
func newConfirmationNumber(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return "WM-" + ms
}
