package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smart-interviewer-api/internal/handler"
	"github.com/noah-isme/smart-interviewer-api/internal/service"
	"github.com/noah-isme/smart-interviewer-api/pkg/ai"
)

// offlineAI behaves like a service with no configured provider.
type offlineAI struct{}

func (offlineAI) GenerateText(context.Context, string) (string, error) {
	return "", ai.ErrNoProviderConfigured
}

func (offlineAI) GenerateStructured(context.Context, string, ai.Schema) (map[string]interface{}, error) {
	return nil, ai.ErrNoProviderConfigured
}

func (offlineAI) CurrentProvider() string { return "none" }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newInterviewApp(client service.AIClient) *fiber.App {
	logger := zerolog.Nop()
	validate := validator.New(validator.WithRequiredStructEnabled())

	app := fiber.New()
	handler.NewInterviewHandler(
		service.NewQuestionService(client, logger),
		service.NewAnswerService(client, logger),
		service.NewReportService(client, logger),
		validate,
		logger,
	).Register(app.Group("/api"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body string) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return perform(t, app, req)
}

func perform(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload envelope
	require.NoError(t, json.Unmarshal(raw, &payload), string(raw))
	return resp, payload
}
