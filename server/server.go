package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"wholesomemarket.io/booking/config"
	"wholesomemarket.io/booking/handlers"
)

type Server struct {
	echo     *echo.Echo
	config   *config.Config
	Checkout handlers.CheckoutHandler
	Verify   handlers.VerifyHandler
	Admin    handlers.AdminHandler
}

func NewServer(
	appConfig *config.Config,
	Checkout handlers.CheckoutHandler,
	Verify handlers.VerifyHandler,
	Admin handlers.AdminHandler,
) *Server {
	return &Server{
		echo:     echo.New(),
		config:   appConfig,
		Checkout: Checkout,
		Verify:   Verify,
		Admin:    Admin,
	}
}

// Start initializes the server by registering middlewares and routes, and starts listening for connections on the provided address.
// It returns an error if there is an issue starting the server.
func (s *Server) Start(address string) error {
	s.registerMiddlewares()
	s.registerRoutes()
	return s.echo.Start(address)
}

// Run starts the server in a goroutine, then waits for an OS interrupt or
// SIGTERM and shuts down gracefully with a five second deadline.
func (s *Server) Run(address string) error {

	go func() {
		if err := s.Start(address); err != nil {
			s.echo.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

func (s *Server) registerMiddlewares() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
}

func (s *Server) registerRoutes() {

	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	s.echo.POST("/api/create-checkout-session", s.Checkout.CreateCheckoutSession)
	s.echo.GET("/api/verify-payment/:sessionId", s.Verify.VerifyPayment)

	s.echo.POST("/api/admin/auth", s.Admin.Authenticate)

	admin := s.echo.Group("/api/admin", handlers.AdminAuth(s.config))
	admin.GET("/bookings", s.Admin.ListBookings)
	admin.GET("/stats", s.Admin.Stats)
	admin.GET("/analytics", s.Admin.Analytics)
	admin.POST("/bookings/:sessionId/refund", s.Admin.RefundBooking)
}
