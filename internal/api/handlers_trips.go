package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func parseTripID(c *fiber.Ctx) (uint, error) {
	tripID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || tripID == 0 {
		return 0, err
	}
	return uint(tripID), nil
}

func (handler *Handler) CreateTrip(c *fiber.Ctx) error {
	var input tripInput
	if err := decodeStrict(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	serviceInput, err := input.toServiceInput()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	trip, err := handler.tripService.CreateTrip(currentUser(c).ID, serviceInput)
	if err != nil {
		return serviceError(c, err)
	}

	handler.metrics.RecordTripCreated()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"trip": trip},
	})
}

func (handler *Handler) GetMyTrips(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 0)

	trips, total, err := handler.tripService.GetMyTrips(currentUser(c).ID, c.Query("status"), page, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(trips),
		"total":   total,
		"data":    fiber.Map{"trips": trips},
	})
}

func (handler *Handler) GetTrip(c *fiber.Ctx) error {
	tripID, err := parseTripID(c)
	if err != nil || tripID == 0 {
		return apiError(c, fiber.StatusNotFound, "Not found")
	}

	trip, err := handler.tripService.GetTrip(currentUser(c).ID, tripID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"trip": trip},
	})
}

func (handler *Handler) UpdateTrip(c *fiber.Ctx) error {
	tripID, err := parseTripID(c)
	if err != nil || tripID == 0 {
		return apiError(c, fiber.StatusNotFound, "Not found")
	}

	var input tripInput
	if err := decodeStrict(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	serviceInput, err := input.toServiceInput()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	trip, err := handler.tripService.UpdateTrip(currentUser(c).ID, tripID, serviceInput)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"trip": trip},
	})
}

func (handler *Handler) DeleteTrip(c *fiber.Ctx) error {
	tripID, err := parseTripID(c)
	if err != nil || tripID == 0 {
		return apiError(c, fiber.StatusNotFound, "Not found")
	}

	if err := handler.tripService.DeleteTrip(currentUser(c).ID, tripID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Trip deleted",
	})
}

// GetPublicTrips is the one trip listing that does not require a session.
// It only ever sees trips explicitly marked public.
func (handler *Handler) GetPublicTrips(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 0)

	trips, total, err := handler.tripService.GetPublicTrips(c.Query("destination"), page, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(trips),
		"total":   total,
		"data":    fiber.Map{"trips": trips},
	})
}
