package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ashutosh-050/sweet-shop-service/internal/config"
	apperrors "github.com/ashutosh-050/sweet-shop-service/pkg/util"
)

func testAppConfig(rps, burst int) config.AppConfig {
	return config.AppConfig{
		CORSOrigins:    "http://localhost:5173",
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error.Code
}

func TestRateLimitReturns429PastBurst(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, testAppConfig(1, 2))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	statuses := make([]int, 0, 4)
	var limitedCode string
	for i := 0; i < 4; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
		if resp.StatusCode == fiber.StatusTooManyRequests && limitedCode == "" {
			limitedCode = errorCode(t, resp)
		} else {
			resp.Body.Close()
		}
	}

	// the burst admits the first two requests, the rest are rejected
	assert.Equal(t, []int{200, 200, 429, 429}, statuses)
	assert.Equal(t, "RATE_LIMITED", limitedCode)
}

func TestFailedRequestsLogMappedStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), nil, testAppConfig(0, 0))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("sweet", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, fiber.StatusNotFound, entries[0].ContextMap()["status"])
}

func TestPanicBecomesInternalError(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, testAppConfig(0, 0))
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("kaboom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, resp))
}
