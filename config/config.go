package config

import (
	"errors"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"wholesomemarket.io/booking/cache"
)

const ServerStartPort = ":8080"

type Config struct {
	Stripe      StripeConfig
	SMTP        SMTPConfig
	Redis       RedisConfig
	Admin       AdminConfig
	FrontendURL string
}

type StripeConfig struct {
	SecretKey string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

type RedisConfig struct {
	Addr     string
	Password string
}

type AdminConfig struct {
	// Password may legitimately be unset; the admin endpoints then answer
	// 500 rather than silently opening up.
	Password string
}

// ProvideApplicationConfig reads every setting from the process environment.
// A .env file, if present, is loaded by cmd/api before this runs.
func ProvideApplicationConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("SMTP_FROM_NAME", "Wholesome Market Demos")

	config := &Config{
		Stripe: StripeConfig{
			SecretKey: v.GetString("STRIPE_SECRET_KEY"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetString("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			FromName: v.GetString("SMTP_FROM_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		Admin: AdminConfig{
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		FrontendURL: v.GetString("FRONTEND_URL"),
	}

	if config.Stripe.SecretKey == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is required")
	}

	return config, nil
}

// ProvideCache wires the analytics cache: Redis when configured, otherwise a
// no-op that always recomputes.
func ProvideCache(appConfig *Config) cache.Cache {
	if appConfig.Redis.Addr == "" {
		return cache.NewNoop()
	}
	return cache.NewRedis(appConfig.Redis.Addr, appConfig.Redis.Password)
}

func NewLogger() *zap.Logger {

	logger, _ := zap.NewProduction()
	return logger
}
