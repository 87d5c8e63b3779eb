package api

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/terraincognita07/lunara/internal/services"
	"github.com/terraincognita07/lunara/internal/store"
)

type Handler struct {
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time

	periodService    *services.PeriodService
	pregnancyService *services.PregnancyService
	safetyService    *services.SafetyService
	profileService   *services.ProfileService
	dataService      *services.DataService
	dashboardService *services.DashboardService
}

type reminderTogglePayload struct {
	IsActive *bool `json:"isActive"`
}

func NewHandler(records *store.Store, location *time.Location, logger *zap.Logger) (*Handler, error) {
	if records == nil {
		return nil, errors.New("record store is required")
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	periodService := services.NewPeriodService(records)
	pregnancyService := services.NewPregnancyService(records)
	safetyService := services.NewSafetyService(records)
	profileService := services.NewProfileService(records)

	return &Handler{
		location:         location,
		logger:           logger,
		now:              time.Now,
		periodService:    periodService,
		pregnancyService: pregnancyService,
		safetyService:    safetyService,
		profileService:   profileService,
		dataService:      services.NewDataService(records),
		dashboardService: services.NewDashboardService(periodService, pregnancyService, safetyService, profileService),
	}, nil
}

// today returns the current wall clock of the configured location expressed in UTC, so that
// calendar dates compare against stored UTC-midnight dates by the user's local day.
func (handler *Handler) today() time.Time {
	local := handler.now().In(handler.location)
	year, month, day := local.Date()
	return time.Date(year, month, day, local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
}
