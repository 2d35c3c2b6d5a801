package api

import (
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterVerifyLoginFlow(t *testing.T) {
	app, dispatcher := newTestApp(t)

	body := doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Ada",
		"email":    "Ada@Example.com",
		"password": "secret123",
	}, ""), fiber.StatusCreated)

	if body["status"] != "success" {
		t.Fatalf("unexpected register envelope: %v", body)
	}
	data, _ := body["data"].(map[string]any)
	if data["email"] != "ada@example.com" {
		t.Fatalf("register must echo the normalized address, got %v", data)
	}
	if _, leaked := data["token"]; leaked {
		t.Fatal("register must not hand out a token")
	}

	// Login is refused until the code is accepted, even with the right
	// password.
	loginPayload := map[string]any{"email": "ada@example.com", "password": "secret123"}
	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/login", loginPayload, ""), fiber.StatusForbidden)

	code := dispatcher.codes["ada@example.com"]
	if len(code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", code)
	}

	wrongCode := "000000"
	if code == wrongCode {
		wrongCode = "111111"
	}
	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/verify-otp", map[string]any{
		"email": "ada@example.com",
		"otp":   wrongCode,
	}, ""), fiber.StatusBadRequest)

	verifyBody := doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/verify-otp", map[string]any{
		"email": "ada@example.com",
		"otp":   code,
	}, ""), fiber.StatusOK)
	user := dataField(t, verifyBody, "user")
	if user["emailVerified"] != true {
		t.Fatalf("expected a verified user in the response, got %v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatal("password hash must never be serialized")
	}

	loginBody := doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/login", loginPayload, ""), fiber.StatusOK)
	loginData, _ := loginBody["data"].(map[string]any)
	if token, _ := loginData["token"].(string); token == "" {
		t.Fatalf("expected a token after login, got %v", loginData)
	}

	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/login", map[string]any{
		"email": "ada@example.com", "password": "wrong",
	}, ""), fiber.StatusUnauthorized)
}

func TestRegisterDuplicateVerifiedEmail(t *testing.T) {
	app, dispatcher := newTestApp(t)

	registerAndVerify(t, app, dispatcher, "ada@example.com")

	body := doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Impostor",
		"email":    "ada@example.com",
		"password": "hunter22",
	}, ""), fiber.StatusBadRequest)
	if body["message"] != "User with this email already exists" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing name", payload: map[string]any{"email": "a@b.co", "password": "secret123"}},
		{name: "bad email", payload: map[string]any{"name": "Ada", "email": "nope", "password": "secret123"}},
		{name: "short password", payload: map[string]any{"name": "Ada", "email": "a@b.co", "password": "abc"}},
		{name: "unknown field", payload: map[string]any{"name": "Ada", "email": "a@b.co", "password": "secret123", "role": "admin"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/register", testCase.payload, ""), fiber.StatusBadRequest)
		})
	}
}

func TestResendVerificationRotatesCode(t *testing.T) {
	app, dispatcher := newTestApp(t)

	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/register", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "secret123",
	}, ""), fiber.StatusCreated)
	firstCode := dispatcher.codes["ada@example.com"]

	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/resend-verification", map[string]any{
		"email": "ada@example.com",
	}, ""), fiber.StatusOK)
	secondCode := dispatcher.codes["ada@example.com"]

	// The old code is dead the moment a new one is issued.
	if firstCode != secondCode {
		doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/verify-otp", map[string]any{
			"email": "ada@example.com", "otp": firstCode,
		}, ""), fiber.StatusBadRequest)
	}
	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/verify-otp", map[string]any{
		"email": "ada@example.com", "otp": secondCode,
	}, ""), fiber.StatusOK)
}

func TestResendVerificationErrorCases(t *testing.T) {
	app, dispatcher := newTestApp(t)

	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/resend-verification", map[string]any{
		"email": "nobody@example.com",
	}, ""), fiber.StatusNotFound)

	registerAndVerify(t, app, dispatcher, "ada@example.com")
	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/resend-verification", map[string]any{
		"email": "ada@example.com",
	}, ""), fiber.StatusBadRequest)
}

func TestGoogleLoginEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	body := doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/google", map[string]any{
		"name":     "Ada",
		"email":    "ada@example.com",
		"googleId": "google-sub-1",
		"picture":  "https://pics/ada.png",
	}, ""), fiber.StatusOK)

	data, _ := body["data"].(map[string]any)
	if token, _ := data["token"].(string); token == "" {
		t.Fatalf("expected a token, got %v", data)
	}
	user := dataField(t, body, "user")
	if user["emailVerified"] != true {
		t.Fatalf("federated account must be verified, got %v", user)
	}

	// Password login stays open alongside the federated identity, and the
	// placeholder credential never matches.
	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/login", map[string]any{
		"email": "ada@example.com", "password": "",
	}, ""), fiber.StatusUnauthorized)
}

func TestGetMeAndDeleteAccount(t *testing.T) {
	app, dispatcher := newTestApp(t)

	doJSON(t, app, jsonRequest(t, fiber.MethodGet, "/api/auth/me", nil, ""), fiber.StatusUnauthorized)
	doJSON(t, app, jsonRequest(t, fiber.MethodGet, "/api/auth/me", nil, "not-a-token"), fiber.StatusUnauthorized)

	token := registerAndVerify(t, app, dispatcher, "ada@example.com")

	body := doJSON(t, app, jsonRequest(t, fiber.MethodGet, "/api/auth/me", nil, token), fiber.StatusOK)
	user := dataField(t, body, "user")
	if user["email"] != "ada@example.com" {
		t.Fatalf("unexpected account %v", user)
	}

	doJSON(t, app, jsonRequest(t, fiber.MethodDelete, "/api/auth/account", nil, token), fiber.StatusOK)

	// The token dies with the account.
	doJSON(t, app, jsonRequest(t, fiber.MethodGet, "/api/auth/me", nil, token), fiber.StatusUnauthorized)
}
