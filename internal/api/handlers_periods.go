package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/lunara/internal/services"
)

func (handler *Handler) ListPeriods(c *fiber.Ctx) error {
	return c.JSON(handler.periodService.List())
}

func (handler *Handler) AddPeriod(c *fiber.Ctx) error {
	input := services.PeriodEntryInput{}
	if !parseJSONBody(c, &input) {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, err := handler.periodService.Add(input)
	return handler.respondMutation(c, fiber.StatusCreated, entry, err)
}

func (handler *Handler) UpdatePeriod(c *fiber.Ctx) error {
	patch := services.PeriodEntryPatch{}
	if !parseJSONBody(c, &patch) {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, err := handler.periodService.Update(c.Params("id"), patch)
	return handler.respondMutation(c, fiber.StatusOK, entry, err)
}

func (handler *Handler) GetForecast(c *fiber.Ctx) error {
	return c.JSON(handler.periodService.Forecast(handler.today()))
}
