package api

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func tripPayload(destination string) map[string]any {
	return map[string]any{
		"destination": destination,
		"startDate":   "2025-07-01",
		"endDate":     "2025-07-05",
		"budget":      "mid",
		"interests":   []string{"food"},
	}
}

func createTrip(t *testing.T, app *fiber.App, token string, payload map[string]any) map[string]any {
	t.Helper()
	body := doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/trips", payload, token), fiber.StatusCreated)
	return dataField(t, body, "trip")
}

func TestTripCRUD(t *testing.T) {
	app, dispatcher := newTestApp(t)
	token := registerAndVerify(t, app, dispatcher, "ada@example.com")

	trip := createTrip(t, app, token, tripPayload("Lisbon"))
	if trip["budget"] != "$1,000 - $2,500" {
		t.Fatalf("expected normalized budget, got %v", trip["budget"])
	}
	if trip["status"] != "draft" {
		t.Fatalf("expected default status draft, got %v", trip["status"])
	}

	tripID := int(trip["id"].(float64))
	target := fmt.Sprintf("/api/trips/%d", tripID)

	got := doJSON(t, app, jsonRequest(t, fiber.MethodGet, target, nil, token), fiber.StatusOK)
	if dataField(t, got, "trip")["destination"] != "Lisbon" {
		t.Fatalf("unexpected trip %v", got)
	}

	update := tripPayload("Lisbon")
	update["budget"] = "high"
	update["status"] = "planned"
	updated := doJSON(t, app, jsonRequest(t, fiber.MethodPut, target, update, token), fiber.StatusOK)
	updatedTrip := dataField(t, updated, "trip")
	if updatedTrip["budget"] != "$5,000 - $10,000" || updatedTrip["status"] != "planned" {
		t.Fatalf("unexpected update result %v", updatedTrip)
	}

	doJSON(t, app, jsonRequest(t, fiber.MethodDelete, target, nil, token), fiber.StatusOK)
	doJSON(t, app, jsonRequest(t, fiber.MethodGet, target, nil, token), fiber.StatusNotFound)
}

func TestTripEndpointsRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/trips", tripPayload("Lisbon"), ""), fiber.StatusUnauthorized)
	doJSON(t, app, jsonRequest(t, fiber.MethodGet, "/api/trips", nil, ""), fiber.StatusUnauthorized)
	doJSON(t, app, jsonRequest(t, fiber.MethodGet, "/api/trips/1", nil, ""), fiber.StatusUnauthorized)
	doJSON(t, app, jsonRequest(t, fiber.MethodPut, "/api/trips/1", tripPayload("Lisbon"), ""), fiber.StatusUnauthorized)
	doJSON(t, app, jsonRequest(t, fiber.MethodDelete, "/api/trips/1", nil, ""), fiber.StatusUnauthorized)
}

func TestTripOwnerFieldInPayloadIsRejected(t *testing.T) {
	app, dispatcher := newTestApp(t)
	token := registerAndVerify(t, app, dispatcher, "ada@example.com")

	// Ownership never comes from the payload; a userId field is an unknown
	// field and the whole request is refused.
	payload := tripPayload("Lisbon")
	payload["userId"] = 999
	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/trips", payload, token), fiber.StatusBadRequest)
}

func TestTripsAreInvisibleAcrossAccounts(t *testing.T) {
	app, dispatcher := newTestApp(t)
	adaToken := registerAndVerify(t, app, dispatcher, "ada@example.com")
	graceToken := registerAndVerify(t, app, dispatcher, "grace@example.com")

	trip := createTrip(t, app, adaToken, tripPayload("Lisbon"))
	target := fmt.Sprintf("/api/trips/%d", int(trip["id"].(float64)))

	// The other account gets a 404, not a 403: the trip's existence is not
	// disclosed.
	doJSON(t, app, jsonRequest(t, fiber.MethodGet, target, nil, graceToken), fiber.StatusNotFound)
	doJSON(t, app, jsonRequest(t, fiber.MethodPut, target, tripPayload("Porto"), graceToken), fiber.StatusNotFound)
	doJSON(t, app, jsonRequest(t, fiber.MethodDelete, target, nil, graceToken), fiber.StatusNotFound)

	list := doJSON(t, app, jsonRequest(t, fiber.MethodGet, "/api/trips", nil, graceToken), fiber.StatusOK)
	if list["total"] != float64(0) {
		t.Fatalf("expected an empty list for the other account, got %v", list)
	}
}

func TestGetMyTripsFilterAndPaging(t *testing.T) {
	app, dispatcher := newTestApp(t)
	token := registerAndVerify(t, app, dispatcher, "ada@example.com")

	for i := 0; i < 3; i++ {
		createTrip(t, app, token, tripPayload("Lisbon"))
	}
	planned := tripPayload("Porto")
	planned["status"] = "planned"
	createTrip(t, app, token, planned)

	filtered := doJSON(t, app, jsonRequest(t, fiber.MethodGet, "/api/trips?status=planned", nil, token), fiber.StatusOK)
	if filtered["total"] != float64(1) || filtered["results"] != float64(1) {
		t.Fatalf("unexpected filtered list %v", filtered)
	}

	doJSON(t, app, jsonRequest(t, fiber.MethodGet, "/api/trips?status=abandoned", nil, token), fiber.StatusBadRequest)

	page := doJSON(t, app, jsonRequest(t, fiber.MethodGet, "/api/trips?page=2&limit=3", nil, token), fiber.StatusOK)
	if page["total"] != float64(4) || page["results"] != float64(1) {
		t.Fatalf("unexpected page %v", page)
	}
}

func TestDeleteAccountRemovesTrips(t *testing.T) {
	app, dispatcher := newTestApp(t)
	adaToken := registerAndVerify(t, app, dispatcher, "ada@example.com")
	graceToken := registerAndVerify(t, app, dispatcher, "grace@example.com")

	public := tripPayload("Lisbon")
	public["isPublic"] = true
	createTrip(t, app, adaToken, public)

	doJSON(t, app, jsonRequest(t, fiber.MethodDelete, "/api/auth/account", nil, adaToken), fiber.StatusOK)

	// Nothing owned by the deleted account survives, not even publicly.
	list := doJSON(t, app, jsonRequest(t, fiber.MethodGet, "/api/trips/public", nil, graceToken), fiber.StatusOK)
	if list["total"] != float64(0) {
		t.Fatalf("expected no public trips left, got %v", list)
	}
}
