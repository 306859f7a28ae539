package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"wholesomemarket.io/booking"
	"wholesomemarket.io/booking/config"
)

type AdminHandler interface {
	Authenticate(c echo.Context) error
	ListBookings(c echo.Context) error
	Stats(c echo.Context) error
	Analytics(c echo.Context) error
	RefundBooking(c echo.Context) error
}

type adminHandler struct {
	Booking booking.Booking
	config  *config.Config
	logger  *zap.Logger
}

func NewAdminHandler(b booking.Booking, appConfig *config.Config, logger *zap.Logger) AdminHandler {
	return &adminHandler{
		Booking: b,
		config:  appConfig,
		logger:  logger,
	}
}

// AdminAuth guards the admin routes with the shared secret, supplied either
// as an x-admin-password header or a password query parameter. An
// unconfigured secret is a server fault, never a bypass. The comparison is
// not constant-time, matching the documented threat model.
func AdminAuth(appConfig *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if appConfig.Admin.Password == "" {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Admin password is not configured"})
			}

			supplied := c.Request().Header.Get("x-admin-password")
			if supplied == "" {
				supplied = c.QueryParam("password")
			}
			if supplied != appConfig.Admin.Password {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			return next(c)
		}
	}
}

// Authenticate handles POST /api/admin/auth
func (ah *adminHandler) Authenticate(c echo.Context) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	if ah.config.Admin.Password == "" {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Admin password is not configured"})
	}
	if req.Password != ah.config.Admin.Password {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid password"})
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ListBookings handles GET /api/admin/bookings
func (ah *adminHandler) ListBookings(c echo.Context) error {
	records, err := ah.Booking.ListBookings(c.Request().Context())
	if err != nil {
		ah.logger.Error("Failed to list bookings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list bookings"})
	}

	return c.JSON(http.StatusOK, map[string]any{"bookings": records})
}

// Stats handles GET /api/admin/stats
func (ah *adminHandler) Stats(c echo.Context) error {
	stats, err := ah.Booking.MonthStats(c.Request().Context())
	if err != nil {
		ah.logger.Error("Failed to compute stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute stats"})
	}

	return c.JSON(http.StatusOK, stats)
}

// Analytics handles GET /api/admin/analytics
func (ah *adminHandler) Analytics(c echo.Context) error {
	analytics, err := ah.Booking.Analytics(c.Request().Context())
	if err != nil {
		ah.logger.Error("Failed to compute analytics", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute analytics"})
	}

	return c.JSON(http.StatusOK, analytics)
}

// RefundBooking handles POST /api/admin/bookings/:sessionId/refund
func (ah *adminHandler) RefundBooking(c echo.Context) error {
	sessionID := c.Param("sessionId")

	result, err := ah.Booking.RefundBooking(c.Request().Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrAlreadyRefunded):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Booking already refunded"})
		case errors.Is(err, booking.ErrNoPaymentIntent):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "No payment intent found"})
		}
		ah.logger.Error("Failed to refund booking", zap.Error(err), zap.String("session_id", sessionID))
		return c.JSON(http.StatusInternalServerError, stripeErrorBody(err))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"refundId": result.RefundID,
		"amount":   result.Amount,
	})
}
