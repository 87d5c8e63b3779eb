package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terraincognita07/lunara/internal/services"
	"github.com/terraincognita07/lunara/internal/store"
)

const (
	storageWarningHeader  = "X-Storage-Warning"
	storageWarningMessage = "storage write failed"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseJSONBody(c *fiber.Ctx, target any) bool {
	if len(c.Body()) == 0 {
		return false
	}
	return json.Unmarshal(c.Body(), target) == nil
}

// respondMutation sends the applied value. A failed durable write keeps the request
// successful and is surfaced as a warning instead.
func (handler *Handler) respondMutation(c *fiber.Ctx, status int, value any, err error) error {
	payload := fiber.Map{"data": value}
	if err != nil {
		if !errors.Is(err, store.ErrWriteFailed) {
			return handler.serviceError(c, err)
		}
		handler.logger.Warn("request applied without durable write", zap.String("path", c.Path()), zap.Error(err))
		c.Set(storageWarningHeader, storageWarningMessage)
		payload["warning"] = storageWarningMessage
	}
	return c.Status(status).JSON(payload)
}

func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	status, message := serviceErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		handler.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return apiError(c, status, message)
}

func serviceErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrPeriodEntryNotFound),
		errors.Is(err, services.ErrEmergencyContactNotFound),
		errors.Is(err, services.ErrHealthReminderNotFound),
		errors.Is(err, services.ErrUnknownRecord):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrPregnancyNotTracked),
		errors.Is(err, services.ErrNoEmergencyContacts):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrImportInvalid):
		return fiber.StatusBadRequest, err.Error()
	case isValidationError(err):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, "internal error"
	}
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var validationErrors = []error{
	services.ErrPeriodStartDateRequired,
	services.ErrPeriodStartDateInvalid,
	services.ErrPeriodEndDateInvalid,
	services.ErrPeriodEndBeforeStart,
	services.ErrPeriodFlowInvalid,
	services.ErrPeriodMoodInvalid,
	services.ErrPregnancyDueDateRequired,
	services.ErrPregnancyDueDateInvalid,
	services.ErrPregnancyLastPeriodRequired,
	services.ErrPregnancyLastPeriodInvalid,
	services.ErrAppointmentDateInvalid,
	services.ErrAppointmentTimeInvalid,
	services.ErrAppointmentTypeRequired,
	services.ErrAppointmentDoctorRequired,
	services.ErrContactNameRequired,
	services.ErrContactPhoneInvalid,
	services.ErrContactRelationshipRequired,
	services.ErrProfileAgeInvalid,
	services.ErrProfileCycleLengthInvalid,
	services.ErrProfilePeriodLengthInvalid,
	services.ErrProfileNameTooLong,
	services.ErrReminderTitleRequired,
	services.ErrReminderTimeInvalid,
	services.ErrReminderFrequencyInvalid,
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
