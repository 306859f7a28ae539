package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"wholesomemarket.io/booking/config"
)

func callAdminAuth(t *testing.T, appConfig *config.Config, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AdminAuth(appConfig)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestAdminAuthUnconfigured(t *testing.T) {
	rec := callAdminAuth(t, &config.Config{}, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 when no password is configured", rec.Code)
	}
}

func TestAdminAuthRejectsMissingAndWrong(t *testing.T) {
	appConfig := &config.Config{}
	appConfig.Admin.Password = "hunter2"

	tests := []struct {
		name   string
		mutate func(*http.Request)
	}{
		{"no credentials", nil},
		{"wrong header", func(r *http.Request) { r.Header.Set("x-admin-password", "guess") }},
		{"wrong query", func(r *http.Request) { r.URL.RawQuery = "password=guess" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := callAdminAuth(t, appConfig, tt.mutate)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAdminAuthAcceptsHeaderOrQuery(t *testing.T) {
	appConfig := &config.Config{}
	appConfig.Admin.Password = "hunter2"

	tests := []struct {
		name   string
		mutate func(*http.Request)
	}{
		{"header", func(r *http.Request) { r.Header.Set("x-admin-password", "hunter2") }},
		{"query", func(r *http.Request) { r.URL.RawQuery = "password=hunter2" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := callAdminAuth(t, appConfig, tt.mutate)
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
		})
	}
}

func TestAuthenticateEndpoint(t *testing.T) {
	appConfig := &config.Config{}
	appConfig.Admin.Password = "hunter2"
	handler := NewAdminHandler(nil, appConfig, nil)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"correct password", `{"password":"hunter2"}`, http.StatusOK},
		{"wrong password", `{"password":"guess"}`, http.StatusUnauthorized},
		{"empty body", `{}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/admin/auth", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			if err := handler.Authenticate(e.NewContext(req, rec)); err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
