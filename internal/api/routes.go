package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Get("/dashboard", handler.GetDashboard)
	api.Get("/symptoms", handler.GetSymptoms)

	periods := api.Group("/periods")
	periods.Get("", handler.ListPeriods)
	periods.Post("", handler.AddPeriod)
	periods.Get("/forecast", handler.GetForecast)
	periods.Patch("/:id", handler.UpdatePeriod)

	pregnancy := api.Group("/pregnancy")
	pregnancy.Get("", handler.GetPregnancy)
	pregnancy.Patch("", handler.UpdatePregnancy)
	pregnancy.Post("/setup", handler.SetupPregnancy)
	pregnancy.Post("/appointments", handler.AddAppointment)
	pregnancy.Get("/overview", handler.GetPregnancyOverview)

	contacts := api.Group("/contacts")
	contacts.Get("", handler.ListContacts)
	contacts.Post("", handler.AddContact)
	contacts.Post("/alert", handler.EmergencyAlert)
	contacts.Delete("/:id", handler.RemoveContact)

	profile := api.Group("/profile")
	profile.Get("", handler.GetProfile)
	profile.Patch("", handler.UpdateProfile)
	profile.Post("/reminders", handler.AddReminder)
	profile.Patch("/reminders/:id", handler.ToggleReminder)

	records := api.Group("/records")
	records.Get("/:key", handler.GetRecord)
	records.Put("/:key", handler.PutRecord)

	api.Get("/export/:format", handler.Export)
	api.Post("/import", handler.Import)
	api.Post("/data/clear", handler.ClearAllData)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
