//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"wholesomemarket.io/booking"
	"wholesomemarket.io/booking/config"
	"wholesomemarket.io/booking/handlers"
	"wholesomemarket.io/booking/notifier"
	"wholesomemarket.io/booking/server"
)

func InitializeBookingService() (*server.Server, error) {

	wire.Build(
		config.ProvideApplicationConfig,
		config.NewLogger,
		config.ProvideCache,
		booking.NewStripeGateway,
		notifier.NewSMTPMailer,
		notifier.NewService,
		booking.NewStripeBooking,
		handlers.NewCheckoutHandler,
		handlers.NewVerifyHandler,
		handlers.NewAdminHandler,
		server.NewServer,
	)

	return &server.Server{}, nil
}
