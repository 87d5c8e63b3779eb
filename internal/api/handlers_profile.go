package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/lunara/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	return c.JSON(handler.profileService.Get())
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	patch := services.ProfilePatch{}
	if !parseJSONBody(c, &patch) {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	profile, err := handler.profileService.Update(patch)
	return handler.respondMutation(c, fiber.StatusOK, profile, err)
}

func (handler *Handler) AddReminder(c *fiber.Ctx) error {
	input := services.HealthReminderInput{}
	if !parseJSONBody(c, &input) {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	reminder, err := handler.profileService.AddReminder(input)
	return handler.respondMutation(c, fiber.StatusCreated, reminder, err)
}

func (handler *Handler) ToggleReminder(c *fiber.Ctx) error {
	payload := reminderTogglePayload{}
	if !parseJSONBody(c, &payload) || payload.IsActive == nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	reminder, err := handler.profileService.SetReminderActive(c.Params("id"), *payload.IsActive)
	return handler.respondMutation(c, fiber.StatusOK, reminder, err)
}
