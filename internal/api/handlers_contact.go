package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) SubmitContact(c *fiber.Ctx) error {
	var input contactInput
	if err := decodeStrict(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	err := handler.contactService.Submit(c.Context(), input.Name, input.Email, input.Subject, input.Message, input.IssueType)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Your message has been sent. We will get back to you soon.",
	})
}
