package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/lunara/internal/services"
)

func (handler *Handler) GetPregnancy(c *fiber.Ctx) error {
	return c.JSON(handler.pregnancyService.Get())
}

func (handler *Handler) SetupPregnancy(c *fiber.Ctx) error {
	input := services.PregnancySetupInput{}
	if !parseJSONBody(c, &input) {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	data, err := handler.pregnancyService.Setup(input, handler.today())
	return handler.respondMutation(c, fiber.StatusOK, data, err)
}

func (handler *Handler) UpdatePregnancy(c *fiber.Ctx) error {
	patch := services.PregnancyPatch{}
	if !parseJSONBody(c, &patch) {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	data, err := handler.pregnancyService.Update(patch)
	return handler.respondMutation(c, fiber.StatusOK, data, err)
}

func (handler *Handler) AddAppointment(c *fiber.Ctx) error {
	input := services.AppointmentInput{}
	if !parseJSONBody(c, &input) {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	appointment, err := handler.pregnancyService.AddAppointment(input)
	return handler.respondMutation(c, fiber.StatusCreated, appointment, err)
}

func (handler *Handler) GetPregnancyOverview(c *fiber.Ctx) error {
	return c.JSON(handler.pregnancyService.Overview(handler.today()))
}
