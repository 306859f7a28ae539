package booking

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"wholesomemarket.io/booking/config"
)

// SessionQuery bounds a checkout session listing. PageSize maps to the
// processor's per-page limit; Max caps the total sessions fetched across
// cursor pages.
type SessionQuery struct {
	PageSize     int64
	Max          int
	CreatedAfter int64
	Expand       []string
}

// PaymentGateway is the narrow surface this service needs from the payment
// processor. Tests substitute an in-memory fake.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string, expand ...string) (*stripe.CheckoutSession, error)
	ListCheckoutSessions(ctx context.Context, query SessionQuery) ([]*stripe.CheckoutSession, error)
	CreateRefund(ctx context.Context, params *stripe.RefundParams) (*stripe.Refund, error)
}

type stripeGateway struct {
	client *client.API
}

func NewStripeGateway(appConfig *config.Config) PaymentGateway {
	return &stripeGateway{
		client: client.New(appConfig.Stripe.SecretKey, nil),
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx
	return g.client.CheckoutSessions.New(params)
}

func (g *stripeGateway) GetCheckoutSession(ctx context.Context, id string, expand ...string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	for _, field := range expand {
		params.AddExpand(field)
	}
	return g.client.CheckoutSessions.Get(id, params)
}

func (g *stripeGateway) ListCheckoutSessions(ctx context.Context, query SessionQuery) ([]*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(query.PageSize)
	if query.CreatedAfter > 0 {
		params.CreatedRange = &stripe.RangeQueryParams{GreaterThanOrEqual: query.CreatedAfter}
	}
	for _, field := range query.Expand {
		params.AddExpand(field)
	}

	sessions := make([]*stripe.CheckoutSession, 0, query.Max)
	iter := g.client.CheckoutSessions.List(params)
	for iter.Next() {
		sessions = append(sessions, iter.CheckoutSession())
		if query.Max > 0 && len(sessions) >= query.Max {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list checkout sessions: %w", err)
	}

	return sessions, nil
}

func (g *stripeGateway) CreateRefund(ctx context.Context, params *stripe.RefundParams) (*stripe.Refund, error) {
	params.Context = ctx
	return g.client.Refunds.New(params)
}
