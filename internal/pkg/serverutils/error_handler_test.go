package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"talk-rag-be/pkg/rag/ragerr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(handlerErr error) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return handlerErr
	})
	return app
}

func requestStatus(t *testing.T, app *fiber.App) (int, Response[any]) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body Response[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlerMapsLookupMissesTo404(t *testing.T) {
	status, body := requestStatus(t, newTestApp(&ragerr.BotNotFoundError{BotID: "b-1"}))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, body.Success)

	status, _ = requestStatus(t, newTestApp(&ragerr.SessionNotFoundError{SessionID: "missing"}))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestErrorHandlerMapsConfigurationTo422(t *testing.T) {
	status, body := requestStatus(t, newTestApp(&ragerr.ConfigurationError{Reason: "main prompt is empty"}))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body.Message, "main prompt is empty")

	status, _ = requestStatus(t, newTestApp(&ragerr.NoDocumentsError{ProcessingID: "proc-1"}))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestErrorHandlerKeepsFiberStatus(t *testing.T) {
	status, body := requestStatus(t, newTestApp(fiber.NewError(fiber.StatusBadRequest, "bad payload")))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "bad payload", body.Message)
}

func TestErrorHandlerDefaultsTo500(t *testing.T) {
	status, body := requestStatus(t, newTestApp(errors.New("database unavailable")))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, fiber.StatusInternalServerError, body.Code)
}
