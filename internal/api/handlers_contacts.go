package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/lunara/internal/services"
)

func (handler *Handler) ListContacts(c *fiber.Ctx) error {
	return c.JSON(handler.safetyService.List())
}

func (handler *Handler) AddContact(c *fiber.Ctx) error {
	input := services.EmergencyContactInput{}
	if !parseJSONBody(c, &input) {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	contact, err := handler.safetyService.Add(input)
	return handler.respondMutation(c, fiber.StatusCreated, contact, err)
}

func (handler *Handler) RemoveContact(c *fiber.Ctx) error {
	err := handler.safetyService.Remove(c.Params("id"))
	return handler.respondMutation(c, fiber.StatusOK, fiber.Map{"ok": true}, err)
}

// EmergencyAlert resolves who would be contacted. No message leaves the device.
func (handler *Handler) EmergencyAlert(c *fiber.Ctx) error {
	alert, err := handler.safetyService.AlertTarget()
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(alert)
}
