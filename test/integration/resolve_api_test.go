package integration

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"ordermypdf-be/internal/bootstrap"
	"ordermypdf-be/internal/config"
	"ordermypdf-be/internal/dto"
	"ordermypdf-be/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: "http://localhost:5173",
		},
		Session: config.SessionConfig{
			Backend: "memory",
			TTL:     time.Minute,
			Sweep:   time.Minute,
		},
		// Provider left empty: the rewrite stage stays offline in tests.
	}

	container := bootstrap.NewContainer(nil, cfg)
	return server.New(cfg, container).GetApp()
}

func postResolve(t *testing.T, app *fiber.App, req dto.ResolveRequest) (*dto.ResolveResponse, int) {
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest("POST", "/api/resolve", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(httpReq, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		return nil, resp.StatusCode
	}

	var out dto.ResolveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return &out, resp.StatusCode
}

func TestResolveEndpointDirectPlan(t *testing.T) {
	app := newTestApp(t)

	res, status := postResolve(t, app, dto.ResolveRequest{
		SessionId: "it-plan",
		Text:      "compress to 2mb",
		Files:     []string{"report.pdf"},
	})

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "plan", res.Type)
	assert.Equal(t, 1, res.Stage)
	assert.NotEmpty(t, res.Plan)
	assert.GreaterOrEqual(t, res.Confidence, 0.7)
}

func TestResolveEndpointClarifiesThenResolves(t *testing.T) {
	app := newTestApp(t)

	first, status := postResolve(t, app, dto.ResolveRequest{
		SessionId: "it-split",
		Text:      "split this",
		Files:     []string{"report.pdf"},
	})
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "question", first.Type)
	require.NotNil(t, first.Clarification)
	assert.NotEmpty(t, first.Clarification.Options)

	second, status := postResolve(t, app, dto.ResolveRequest{
		SessionId: "it-split",
		Text:      first.Clarification.Options[0],
		Files:     []string{"report.pdf"},
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "plan", second.Type)
	assert.NotEmpty(t, second.Plan)
}

func TestResolveEndpointRejectsEmptyText(t *testing.T) {
	app := newTestApp(t)

	_, status := postResolve(t, app, dto.ResolveRequest{
		SessionId: "it-empty",
		Files:     []string{"report.pdf"},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestResolveEndpointUnsupportedCapability(t *testing.T) {
	app := newTestApp(t)

	res, status := postResolve(t, app, dto.ResolveRequest{
		SessionId: "it-unsupported",
		Text:      "password protect this file",
		Files:     []string{"report.pdf"},
	})

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "unsupported", res.Type)
	assert.Equal(t, "Not supported yet or sooner", res.Message)
}

func TestResetSessionEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/sessions/it-reset/reset", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.ResetSessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "it-reset", out.SessionId)
	assert.True(t, out.Reset)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out.Status)
}
