package services

import (
	"time"

	"github.com/terraincognita07/lunara/internal/models"
	"github.com/terraincognita07/lunara/internal/prediction"
)

const dashboardRecentEntries = 3

type Dashboard struct {
	Today             string               `json:"today"`
	Period            PeriodForecast       `json:"period"`
	RecentEntries     []models.PeriodEntry `json:"recentEntries"`
	Pregnancy         PregnancyOverview    `json:"pregnancy"`
	EmergencyContacts int                  `json:"emergencyContacts"`
	ActiveReminders   int                  `json:"activeReminders"`
}

type DashboardService struct {
	periods   *PeriodService
	pregnancy *PregnancyService
	safety    *SafetyService
	profile   *ProfileService
}

func NewDashboardService(periods *PeriodService, pregnancy *PregnancyService, safety *SafetyService, profile *ProfileService) *DashboardService {
	return &DashboardService{periods: periods, pregnancy: pregnancy, safety: safety, profile: profile}
}

func (service *DashboardService) Build(now time.Time) Dashboard {
	entries := service.periods.List()
	recent := make([]models.PeriodEntry, 0, dashboardRecentEntries)
	for index := len(entries) - 1; index >= 0 && len(recent) < dashboardRecentEntries; index-- {
		recent = append(recent, entries[index])
	}

	active := 0
	for _, reminder := range service.profile.Get().HealthReminders {
		if reminder.IsActive {
			active++
		}
	}

	return Dashboard{
		Today:             prediction.FormatDate(now),
		Period:            service.periods.Forecast(now),
		RecentEntries:     recent,
		Pregnancy:         service.pregnancy.Overview(now),
		EmergencyContacts: len(service.safety.List()),
		ActiveReminders:   active,
	}
}
