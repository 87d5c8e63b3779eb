package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terraincognita07/lunara/internal/services"
)

func (handler *Handler) Export(c *fiber.Ctx) error {
	format := strings.ToLower(strings.TrimSpace(c.Params("format")))
	if !services.IsValidReportFormat(format) {
		return apiError(c, fiber.StatusNotFound, "unsupported export format")
	}

	report, err := handler.dataService.Report(format, handler.now(), handler.today())
	if err != nil {
		handler.logger.Error("build export", zap.String("format", format), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, report.ContentType, report.Filename)
	return c.Send(report.Body)
}

func (handler *Handler) Import(c *fiber.Ctx) error {
	bundle, err := handler.dataService.Import(c.Body())
	return handler.respondMutation(c, fiber.StatusOK, bundle, err)
}

func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	err := handler.dataService.ClearAll()
	return handler.respondMutation(c, fiber.StatusOK, handler.dataService.ExportAll(handler.now()), err)
}

func (handler *Handler) GetRecord(c *fiber.Ctx) error {
	value, err := handler.dataService.Record(c.Params("key"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(value)
}

func (handler *Handler) PutRecord(c *fiber.Ctx) error {
	value, err := handler.dataService.ReplaceRecord(c.Params("key"), c.Body())
	return handler.respondMutation(c, fiber.StatusOK, value, err)
}
