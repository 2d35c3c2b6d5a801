package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth", handler.authLimiter.Middleware)
	auth.Post("/register", handler.Register)
	auth.Post("/verify-otp", handler.VerifyOTP)
	auth.Post("/login", handler.Login)
	auth.Post("/google", handler.GoogleLogin)
	auth.Post("/resend-verification", handler.ResendVerification)
	auth.Get("/me", handler.AuthRequired, handler.GetMe)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	trips := api.Group("/trips")
	trips.Get("/public", handler.GetPublicTrips)
	trips.Post("", handler.AuthRequired, handler.CreateTrip)
	trips.Get("", handler.AuthRequired, handler.GetMyTrips)
	trips.Get("/:id", handler.AuthRequired, handler.GetTrip)
	trips.Put("/:id", handler.AuthRequired, handler.UpdateTrip)
	trips.Delete("/:id", handler.AuthRequired, handler.DeleteTrip)

	api.Post("/contact", handler.SubmitContact)
	api.Post("/itinerary/generate", handler.GenerateItinerary)
}
