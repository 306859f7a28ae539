package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"wholesomemarket.io/booking/analytics"
	"wholesomemarket.io/booking/cache"
	"wholesomemarket.io/booking/codec"
	"wholesomemarket.io/booking/config"
	"wholesomemarket.io/booking/models"
	"wholesomemarket.io/booking/notifier"
)

const (
	// Stripe pages at most 100 sessions per cursor fetch; analytics walks up
	// to three pages.
	sessionPageSize     = 100
	analyticsSessionCap = 300
	listBookingsCap     = 100
	chargeExpand        = "data.payment_intent.latest_charge"
	analyticsCacheKey   = "admin:analytics"
	analyticsCacheTTL   = time.Minute
)

type StripeBooking struct {
	gateway  PaymentGateway
	notifier notifier.Service
	cache    cache.Cache
	config   *config.Config
	logger   *zap.Logger
}

func NewStripeBooking(
	appConfig *config.Config,
	gateway PaymentGateway,
	ns notifier.Service,
	responseCache cache.Cache,
	logger *zap.Logger,
) Booking {
	return &StripeBooking{
		gateway:  gateway,
		notifier: ns,
		cache:    responseCache,
		config:   appConfig,
		logger:   logger,
	}
}

// CreateCheckout prices the cart at a flat 3000 minor units per slot, one
// line item each, and opens a hosted checkout session carrying the encoded
// booking metadata. Repeated calls with the same cart open distinct
// sessions; retries are user-initiated.
func (sb *StripeBooking) CreateCheckout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResult, error) {
	metadata, err := codec.Encode(req.Cart)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bookings: %w", err)
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Cart))
	for _, slot := range req.Cart {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(fmt.Sprintf("Product Demo - %s", slot.Location)),
					Description: stripe.String(fmt.Sprintf("%s at %s", slot.DisplayDate, slot.Time)),
				},
				UnitAmount: stripe.Int64(SlotFeeCents),
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:     lineItems,
		CustomerEmail: stripe.String(req.CustomerEmail),
		SuccessURL:    stripe.String(sb.config.FrontendURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(sb.config.FrontendURL + "/"),
	}
	params.AddMetadata("customerName", req.CustomerName)
	params.AddMetadata("company", req.Company)
	params.AddMetadata("product", req.Product)
	params.AddMetadata("phone", req.Phone)
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	session, err := sb.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	sb.logger.Info("Checkout session created",
		zap.String("session_id", session.ID),
		zap.Int("slots", len(req.Cart)))

	return &models.CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

// VerifyPayment confirms a completed session, decodes its bookings, and
// sends the confirmation email. Email failure never fails verification;
// payment is the source of truth and the email is a convenience.
func (sb *StripeBooking) VerifyPayment(ctx context.Context, sessionID string) (*models.VerificationResult, error) {
	session, err := sb.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, ErrPaymentNotCompleted
	}

	bookings := codec.Decode(session.Metadata)
	confirmation := newConfirmationNumber(time.Now())
	email := customerEmail(session)

	if email != "" {
		if err = sb.notifier.SendConfirmation(ctx, &notifier.ConfirmationEmail{
			To:                 email,
			CustomerName:       session.Metadata["customerName"],
			Company:            session.Metadata["company"],
			Product:            session.Metadata["product"],
			ConfirmationNumber: confirmation,
			Bookings:           bookings,
			AmountTotal:        session.AmountTotal,
		}); err != nil {
			sb.logger.Warn("Failed to send confirmation email",
				zap.Error(err),
				zap.String("session_id", sessionID))
		}
	}

	return &models.VerificationResult{
		ConfirmationNumber: confirmation,
		Bookings:           bookings,
		CustomerEmail:      email,
	}, nil
}

// ListBookings projects the newest paid sessions into flat admin records,
// joining refund state from each session's charge.
func (sb *StripeBooking) ListBookings(ctx context.Context) ([]*models.BookingRecord, error) {
	sessions, err := sb.gateway.ListCheckoutSessions(ctx, SessionQuery{
		PageSize: sessionPageSize,
		Max:      listBookingsCap,
		Expand:   []string{chargeExpand},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	records := make([]*models.BookingRecord, 0, len(sessions))
	for _, session := range sessions {
		if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			continue
		}
		if session.Metadata["customerName"] == "" {
			continue
		}

		records = append(records, &models.BookingRecord{
			SessionID:     session.ID,
			CustomerName:  session.Metadata["customerName"],
			CustomerEmail: customerEmail(session),
			Company:       session.Metadata["company"],
			Product:       session.Metadata["product"],
			Phone:         session.Metadata["phone"],
			Bookings:      codec.Decode(session.Metadata),
			AmountTotal:   session.AmountTotal,
			CreatedAt:     time.Unix(session.Created, 0),
			Refunded:      sessionRefunded(session),
		})
	}

	return records, nil
}

// MonthStats sums demo counts and the fixed revenue split over sessions
// created since the first moment of the current calendar month.
func (sb *StripeBooking) MonthStats(ctx context.Context) (*models.MonthStats, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	sessions, err := sb.gateway.ListCheckoutSessions(ctx, SessionQuery{
		PageSize:     sessionPageSize,
		Max:          listBookingsCap,
		CreatedAfter: monthStart.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for stats: %w", err)
	}

	views := make([]analytics.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			continue
		}
		views = append(views, projectSession(session))
	}

	return analytics.MonthSummary(views), nil
}

// Analytics walks up to 300 paid sessions and folds them into the full
// admin analytics view. Results may be served from a short-lived cache;
// cache failures degrade to recomputation.
func (sb *StripeBooking) Analytics(ctx context.Context) (*models.Analytics, error) {
	var cached models.Analytics
	if found, err := sb.cache.Get(ctx, analyticsCacheKey, &cached); err != nil {
		sb.logger.Warn("Failed to read analytics cache", zap.Error(err))
	} else if found {
		return &cached, nil
	}

	sessions, err := sb.gateway.ListCheckoutSessions(ctx, SessionQuery{
		PageSize: sessionPageSize,
		Max:      analyticsSessionCap,
		Expand:   []string{chargeExpand},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for analytics: %w", err)
	}

	views := make([]analytics.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			continue
		}
		views = append(views, projectSession(session))
	}

	result := analytics.Aggregate(views, time.Now())

	if err = sb.cache.Set(ctx, analyticsCacheKey, result, analyticsCacheTTL); err != nil {
		sb.logger.Warn("Failed to cache analytics", zap.Error(err))
	}

	return result, nil
}

// RefundBooking issues a full refund for a paid session. A session whose
// charge is already refunded fails without a second processor call.
func (sb *StripeBooking) RefundBooking(ctx context.Context, sessionID string) (*models.RefundResult, error) {
	session, err := sb.gateway.GetCheckoutSession(ctx, sessionID, "payment_intent.latest_charge")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	if session.PaymentIntent == nil {
		return nil, ErrNoPaymentIntent
	}
	if sessionRefunded(session) {
		return nil, ErrAlreadyRefunded
	}

	refund, err := sb.gateway.CreateRefund(ctx, &stripe.RefundParams{
		PaymentIntent: stripe.String(session.PaymentIntent.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	sb.logger.Info("Booking refunded",
		zap.String("session_id", sessionID),
		zap.String("refund_id", refund.ID),
		zap.Int64("amount", refund.Amount))

	if email := customerEmail(session); email != "" {
		if err = sb.notifier.SendCancellation(ctx, &notifier.CancellationEmail{
			To:           email,
			CustomerName: session.Metadata["customerName"],
			Company:      session.Metadata["company"],
			Bookings:     codec.Decode(session.Metadata),
			RefundAmount: refund.Amount,
		}); err != nil {
			sb.logger.Warn("Failed to send cancellation email",
				zap.Error(err),
				zap.String("session_id", sessionID))
		}
	}

	return &models.RefundResult{RefundID: refund.ID, Amount: refund.Amount}, nil
}

func projectSession(session *stripe.CheckoutSession) analytics.Session {
	return analytics.Session{
		ID:          session.ID,
		Email:       customerEmail(session),
		Name:        session.Metadata["customerName"],
		Company:     session.Metadata["company"],
		Product:     session.Metadata["product"],
		AmountTotal: session.AmountTotal,
		Created:     time.Unix(session.Created, 0),
		Refunded:    sessionRefunded(session),
		Slots:       codec.Decode(session.Metadata),
	}
}

// customerEmail prefers the post-payment customer details over the email
// the session was opened with.
func customerEmail(session *stripe.CheckoutSession) string {
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		return session.CustomerDetails.Email
	}
	return session.CustomerEmail
}

func sessionRefunded(session *stripe.CheckoutSession) bool {
	return session.PaymentIntent != nil &&
		session.PaymentIntent.LatestCharge != nil &&
		session.PaymentIntent.LatestCharge.Refunded
}
