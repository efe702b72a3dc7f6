package http

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashutosh-050/sweet-shop-service/internal/api/http/handlers"
	"github.com/ashutosh-050/sweet-shop-service/internal/auth"
	"github.com/ashutosh-050/sweet-shop-service/internal/mocks"
	"github.com/ashutosh-050/sweet-shop-service/internal/observability"
)

func TestHealthAndMetricsRoutes(t *testing.T) {
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("sweet-shop-service", "test", nil, nil),
		Users:          handlers.NewUsersHandler(nil, false),
		Sweets:         handlers.NewSweetsHandler(nil),
		Orders:         handlers.NewOrdersHandler(nil),
		AuthMiddleware: auth.NewAuthMiddleware(auth.NewTokenManager("testsecret", 1), new(mocks.UserRepository)),
		Metrics:        metrics,
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Contains(t, string(body), `"alive"`)

	metrics.RecordRequest("/health/live", "GET", 200, time.Millisecond)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Contains(t, string(body), "sweetshop_http_requests_total")
}
