package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/goplanner/goplanner/internal/services"
)

// apiError writes the stable error envelope. Internal detail never reaches
// the caller; it is logged where the error is classified.
func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// serviceError maps domain errors onto HTTP statuses and caller-safe
// messages. Unknown errors are logged and reported generically.
func serviceError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return apiError(c, fiber.StatusBadRequest, validation.Message)
	}

	var dispatch *services.DispatchError
	if errors.As(err, &dispatch) {
		log.Printf("dispatch failure on %s: %v", c.Path(), dispatch.Err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to send email. Please try again.")
	}

	switch {
	case errors.Is(err, services.ErrAlreadyExists):
		return apiError(c, fiber.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, services.ErrAlreadyVerified):
		return apiError(c, fiber.StatusBadRequest, "Email already verified. Please login.")
	case errors.Is(err, services.ErrInvalidCode):
		return apiError(c, fiber.StatusBadRequest, "Invalid email or OTP")
	case errors.Is(err, services.ErrCodeExpired):
		return apiError(c, fiber.StatusBadRequest, "OTP has expired. Please request a new OTP.")
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrEmailNotVerified):
		return apiError(c, fiber.StatusForbidden, "Please verify your email before logging in. Check your inbox for the OTP code.")
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "Not found")
	default:
		log.Printf("internal error on %s: %v", c.Path(), err)
		return apiError(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

// decodeStrict parses the request body as JSON and rejects unknown fields,
// so a client-supplied owner on a trip payload is a 400 rather than a
// silently dropped value.
func decodeStrict(c *fiber.Ctx, destination any) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(destination); err != nil {
		return err
	}
	// A second value after the first document is malformed input too.
	if decoder.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}
