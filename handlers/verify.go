package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"wholesomemarket.io/booking"
)

type VerifyHandler interface {
	VerifyPayment(c echo.Context) error
}

type verifyHandler struct {
	Booking booking.Booking
	logger  *zap.Logger
}

func NewVerifyHandler(b booking.Booking, logger *zap.Logger) VerifyHandler {
	return &verifyHandler{
		Booking: b,
		logger:  logger,
	}
}

// VerifyPayment handles GET /api/verify-payment/:sessionId
func (vh *verifyHandler) VerifyPayment(c echo.Context) error {
	sessionID := c.Param("sessionId")

	result, err := vh.Booking.VerifyPayment(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, booking.ErrPaymentNotCompleted) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Payment not completed"})
		}
		vh.logger.Error("Failed to verify payment", zap.Error(err), zap.String("session_id", sessionID))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to verify payment"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":            true,
		"confirmationNumber": result.ConfirmationNumber,
		"bookings":           result.Bookings,
		"customerEmail":      result.CustomerEmail,
	})
}
