package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goplanner/goplanner/internal/db"
)

// capturingDispatcher records outgoing notifications so tests can read the
// verification code instead of an inbox.
type capturingDispatcher struct {
	codes    map[string]string
	contacts []string
}

func newCapturingDispatcher() *capturingDispatcher {
	return &capturingDispatcher{codes: map[string]string{}}
}

func (dispatcher *capturingDispatcher) SendVerificationCode(_ context.Context, email string, _ string, code string, _ time.Duration) error {
	dispatcher.codes[email] = code
	return nil
}

func (dispatcher *capturingDispatcher) SendContactMessage(_ context.Context, _ string, email string, _ string, _ string, _ string) error {
	dispatcher.contacts = append(dispatcher.contacts, email)
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *capturingDispatcher) {
	t.Helper()
	return newTestAppWithOptions(t, HandlerOptions{})
}

func newTestAppWithOptions(t *testing.T, options HandlerOptions) (*fiber.App, *capturingDispatcher) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "goplanner-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	dispatcher := newCapturingDispatcher()
	if options.SecretKey == "" {
		options.SecretKey = "test-secret-key"
	}
	if options.Dispatcher == nil {
		options.Dispatcher = dispatcher
	}
	if options.AuthRatePerMinute == 0 {
		// High enough that multi-step test flows never trip the limiter.
		options.AuthRatePerMinute = 6000
		options.AuthRateBurst = 100
	}

	handler := NewHandler(database, options)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, dispatcher
}

func jsonRequest(t *testing.T, method string, target string, payload any, token string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, target, body)
	request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return request
}

func doJSON(t *testing.T, app *fiber.App, request *http.Request, wantStatus int) map[string]any {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d (body %s)",
			request.Method, request.URL.Path, wantStatus, response.StatusCode, raw)
	}

	decoded := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response body %s: %v", raw, err)
		}
	}
	return decoded
}

func dataField(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", body)
	}
	value, ok := data[key].(map[string]any)
	if !ok {
		t.Fatalf("data has no %q object: %v", key, data)
	}
	return value
}

// registerAndVerify walks an account through the full activation flow and
// returns its session token.
func registerAndVerify(t *testing.T, app *fiber.App, dispatcher *capturingDispatcher, email string) string {
	t.Helper()

	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Ada",
		"email":    email,
		"password": "secret123",
	}, ""), fiber.StatusCreated)

	code, ok := dispatcher.codes[email]
	if !ok {
		t.Fatalf("no verification code dispatched to %s", email)
	}

	body := doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/verify-otp", map[string]any{
		"email": email,
		"otp":   code,
	}, ""), fiber.StatusOK)

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("verify response has no data: %v", body)
	}
	token, ok := data["token"].(string)
	if !ok || token == "" {
		t.Fatalf("verify response has no token: %v", data)
	}
	return token
}
