package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goplanner/goplanner/internal/services"
)

// GenerateItinerary builds a day-by-day plan without persisting anything.
// The client saves the result as a trip in a separate call if it wants to.
func (handler *Handler) GenerateItinerary(c *fiber.Ctx) error {
	var input itineraryGenerateInput
	if err := decodeStrict(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	plan, err := handler.itineraryService.Generate(c.Context(), services.ItineraryRequest{
		Destination: input.Destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Budget:      input.Budget,
		Interests:   input.Interests,
	})
	if err != nil {
		return serviceError(c, err)
	}

	handler.metrics.RecordItineraryGenerated()
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   plan,
	})
}
