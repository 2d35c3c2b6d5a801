package api

import (
	"github.com/gofiber/fiber/v2"
)

// Register creates an unverified account and sends the verification code.
// No token is issued here: the client has to complete verification first.
func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := decodeStrict(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	email, err := handler.authService.Register(c.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		return serviceError(c, err)
	}

	handler.metrics.RecordRegistration()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Registration successful. Please check your email for the verification OTP.",
		"data":    fiber.Map{"email": email},
	})
}

// VerifyOTP confirms the code sent at registration. Success is the first
// moment a session token is handed out.
func (handler *Handler) VerifyOTP(c *fiber.Ctx) error {
	var input verifyOTPInput
	if err := decodeStrict(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := handler.authService.Verify(input.Email, input.OTP)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return serviceError(c, err)
	}

	handler.metrics.RecordVerification()
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Email verified successfully",
		"data":    fiber.Map{"user": user, "token": token},
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := decodeStrict(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := handler.authService.Login(input.Email, input.Password)
	if err != nil {
		handler.metrics.RecordLogin(false)
		return serviceError(c, err)
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return serviceError(c, err)
	}

	handler.metrics.RecordLogin(true)
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": user, "token": token},
	})
}

// GoogleLogin signs in (or signs up) a federated identity. Accounts created
// or reached this way count as verified; the identity provider already
// confirmed the address.
func (handler *Handler) GoogleLogin(c *fiber.Ctx) error {
	var input googleLoginInput
	if err := decodeStrict(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := handler.authService.GoogleLogin(input.Name, input.Email, input.GoogleID, input.Picture)
	if err != nil {
		handler.metrics.RecordLogin(false)
		return serviceError(c, err)
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return serviceError(c, err)
	}

	handler.metrics.RecordLogin(true)
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": user, "token": token},
	})
}

// ResendVerification re-issues a fresh code for an unverified account.
func (handler *Handler) ResendVerification(c *fiber.Ctx) error {
	var input resendVerificationInput
	if err := decodeStrict(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := handler.authService.ResendVerification(c.Context(), input.Email); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "A new OTP has been sent to your email.",
	})
}

func (handler *Handler) GetMe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"user": currentUser(c)},
	})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user := currentUser(c)
	if err := handler.authService.DeleteAccount(user.ID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Account deleted",
	})
}
