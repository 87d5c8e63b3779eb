package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/lunara/internal/models"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}

func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	return c.JSON(handler.dashboardService.Build(handler.today()))
}

func (handler *Handler) GetSymptoms(c *fiber.Ctx) error {
	return c.JSON(models.DefaultBuiltinSymptoms())
}
