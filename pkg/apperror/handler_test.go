package apperror

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(method string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	inner, ok := body["error"].(map[string]any)
	require.True(t, ok, "response must have an error object")
	return inner
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPErrorHandlerAppError(t *testing.T) {
	c, rec := newTestContext(http.MethodGet)

	HTTPErrorHandler(testLogger())(ErrInvalidCursor, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	inner := decodeErrorBody(t, rec)
	assert.Equal(t, "invalid_cursor", inner["code"])
	assert.Equal(t, "Malformed pagination cursor", inner["message"])
}

func TestHTTPErrorHandlerEchoError(t *testing.T) {
	c, rec := newTestContext(http.MethodGet)

	HTTPErrorHandler(testLogger())(echo.NewHTTPError(http.StatusNotFound, "Not Found"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	inner := decodeErrorBody(t, rec)
	assert.Equal(t, "not_found", inner["code"])
}

func TestHTTPErrorHandlerUnknownError(t *testing.T) {
	c, rec := newTestContext(http.MethodGet)

	HTTPErrorHandler(testLogger())(errors.New("something exploded"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	inner := decodeErrorBody(t, rec)
	assert.Equal(t, "internal_error", inner["code"])
	// Internal details must not leak to the client.
	assert.Equal(t, "An internal error occurred", inner["message"])
}

func TestHTTPErrorHandlerHead(t *testing.T) {
	c, rec := newTestContext(http.MethodHead)

	HTTPErrorHandler(testLogger())(ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
