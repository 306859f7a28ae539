package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"wholesomemarket.io/booking"
	"wholesomemarket.io/booking/models"
)

type CheckoutHandler interface {
	CreateCheckoutSession(c echo.Context) error
}

type checkoutHandler struct {
	Booking booking.Booking
	logger  *zap.Logger
}

func NewCheckoutHandler(b booking.Booking, logger *zap.Logger) CheckoutHandler {
	return &checkoutHandler{
		Booking: b,
		logger:  logger,
	}
}

// CreateCheckoutSession handles POST /api/create-checkout-session
func (ch *checkoutHandler) CreateCheckoutSession(c echo.Context) error {
	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	result, err := ch.Booking.CreateCheckout(c.Request().Context(), &req)
	if err != nil {
		ch.logger.Error("Failed to create checkout session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, stripeErrorBody(err))
	}

	return c.JSON(http.StatusOK, result)
}

// stripeErrorBody surfaces the processor's own error type and message when
// the failure came from Stripe, rather than swallowing the detail.
func stripeErrorBody(err error) map[string]string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return map[string]string{"error": stripeErr.Msg, "type": string(stripeErr.Type)}
	}
	return map[string]string{"error": err.Error(), "type": "api_error"}
}
