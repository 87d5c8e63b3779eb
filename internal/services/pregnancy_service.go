package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
	"github.com/terraincognita07/lunara/internal/prediction"
	"github.com/terraincognita07/lunara/internal/store"
)

var (
	ErrPregnancyDueDateRequired    = errors.New("pregnancy due date is required")
	ErrPregnancyDueDateInvalid     = errors.New("pregnancy due date invalid")
	ErrPregnancyLastPeriodRequired = errors.New("pregnancy last period date is required")
	ErrPregnancyLastPeriodInvalid  = errors.New("pregnancy last period date invalid")
	ErrPregnancyNotTracked         = errors.New("pregnancy is not being tracked")
	ErrAppointmentDateInvalid      = errors.New("appointment date invalid")
	ErrAppointmentTimeInvalid      = errors.New("appointment time invalid")
	ErrAppointmentTypeRequired     = errors.New("appointment type is required")
	ErrAppointmentDoctorRequired   = errors.New("appointment doctor is required")
)

type PregnancySetupInput struct {
	DueDate        string `json:"dueDate"`
	LastPeriodDate string `json:"lastPeriodDate"`
}

type PregnancyPatch struct {
	IsPregnant     *bool   `json:"isPregnant"`
	DueDate        *string `json:"dueDate"`
	LastPeriodDate *string `json:"lastPeriodDate"`
}

type AppointmentInput struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Type   string `json:"type"`
	Doctor string `json:"doctor"`
	Notes  string `json:"notes"`
}

// PregnancyOverview reports both the week stored at setup and the week derived from today.
type PregnancyOverview struct {
	IsPregnant          bool                `json:"isPregnant"`
	CurrentWeek         *int                `json:"currentWeek,omitempty"`
	WeekToday           int                 `json:"weekToday"`
	DueDate             string              `json:"dueDate,omitempty"`
	DaysUntilDue        *int                `json:"daysUntilDue,omitempty"`
	CompletedMilestones int                 `json:"completedMilestones"`
	TotalMilestones     int                 `json:"totalMilestones"`
	NextAppointment     *models.Appointment `json:"nextAppointment,omitempty"`
}

type PregnancyService struct {
	records *store.Store
	newID   func() string
}

func NewPregnancyService(records *store.Store) *PregnancyService {
	return &PregnancyService{records: records, newID: newRecordID}
}

func (service *PregnancyService) Get() models.PregnancyData {
	return store.Load(service.records, models.KeyPregnancyData, models.DefaultPregnancyData())
}

// Setup starts pregnancy tracking. The week and milestone completion are computed once here
// and are not refreshed later.
func (service *PregnancyService) Setup(input PregnancySetupInput, now time.Time) (models.PregnancyData, error) {
	dueDate := strings.TrimSpace(input.DueDate)
	lastPeriodDate := strings.TrimSpace(input.LastPeriodDate)
	if dueDate == "" {
		return models.PregnancyData{}, ErrPregnancyDueDateRequired
	}
	if lastPeriodDate == "" {
		return models.PregnancyData{}, ErrPregnancyLastPeriodRequired
	}
	if !IsValidCalendarDate(dueDate) {
		return models.PregnancyData{}, ErrPregnancyDueDateInvalid
	}
	lastPeriod, err := prediction.ParseDate(lastPeriodDate)
	if err != nil {
		return models.PregnancyData{}, ErrPregnancyLastPeriodInvalid
	}

	week := prediction.PregnancyWeek(lastPeriod, now)
	milestones := prediction.GenerateMilestones(lastPeriod, now)

	return store.Update(service.records, models.KeyPregnancyData, models.DefaultPregnancyData(), func(data models.PregnancyData) models.PregnancyData {
		data.IsPregnant = true
		data.DueDate = dueDate
		data.LastPeriodDate = lastPeriodDate
		data.CurrentWeek = &week
		data.Appointments = []models.Appointment{}
		data.Milestones = milestones
		return data
	})
}

// Update merges patch into the stored pregnancy record without recomputing the week snapshot.
func (service *PregnancyService) Update(patch PregnancyPatch) (models.PregnancyData, error) {
	if patch.DueDate != nil {
		if value := strings.TrimSpace(*patch.DueDate); value != "" && !IsValidCalendarDate(value) {
			return models.PregnancyData{}, ErrPregnancyDueDateInvalid
		}
	}
	if patch.LastPeriodDate != nil {
		if value := strings.TrimSpace(*patch.LastPeriodDate); value != "" && !IsValidCalendarDate(value) {
			return models.PregnancyData{}, ErrPregnancyLastPeriodInvalid
		}
	}

	return store.Update(service.records, models.KeyPregnancyData, models.DefaultPregnancyData(), func(data models.PregnancyData) models.PregnancyData {
		if patch.IsPregnant != nil {
			data.IsPregnant = *patch.IsPregnant
		}
		if patch.DueDate != nil {
			data.DueDate = strings.TrimSpace(*patch.DueDate)
		}
		if patch.LastPeriodDate != nil {
			data.LastPeriodDate = strings.TrimSpace(*patch.LastPeriodDate)
		}
		return data
	})
}

func (service *PregnancyService) AddAppointment(input AppointmentInput) (models.Appointment, error) {
	appointment, err := NormalizeAppointmentInput(input)
	if err != nil {
		return models.Appointment{}, err
	}
	if !service.Get().IsPregnant {
		return models.Appointment{}, ErrPregnancyNotTracked
	}
	appointment.ID = service.newID()

	_, err = store.Update(service.records, models.KeyPregnancyData, models.DefaultPregnancyData(), func(data models.PregnancyData) models.PregnancyData {
		data.Appointments = append(data.Appointments, appointment)
		return data
	})
	return appointment, err
}

func (service *PregnancyService) Overview(now time.Time) PregnancyOverview {
	data := service.Get()
	overview := PregnancyOverview{
		IsPregnant:          data.IsPregnant,
		CurrentWeek:         data.CurrentWeek,
		DueDate:             data.DueDate,
		CompletedMilestones: prediction.CompletedMilestones(data.Milestones),
		TotalMilestones:     len(data.Milestones),
	}

	if lastPeriod, err := prediction.ParseDate(data.LastPeriodDate); err == nil {
		overview.WeekToday = prediction.PregnancyWeek(lastPeriod, now)
	}
	if dueDate, err := prediction.ParseDate(data.DueDate); err == nil {
		days := prediction.DaysUntilDueDate(dueDate, now)
		overview.DaysUntilDue = &days
	}
	overview.NextAppointment = nextAppointment(data.Appointments, now)
	return overview
}

func NormalizeAppointmentInput(input AppointmentInput) (models.Appointment, error) {
	appointment := models.Appointment{
		Date:   strings.TrimSpace(input.Date),
		Time:   strings.TrimSpace(input.Time),
		Type:   strings.TrimSpace(input.Type),
		Doctor: strings.TrimSpace(input.Doctor),
		Notes:  TrimNotes(input.Notes),
	}
	if !IsValidCalendarDate(appointment.Date) {
		return models.Appointment{}, ErrAppointmentDateInvalid
	}
	if !IsValidTimeOfDay(appointment.Time) {
		return models.Appointment{}, ErrAppointmentTimeInvalid
	}
	if appointment.Type == "" {
		return models.Appointment{}, ErrAppointmentTypeRequired
	}
	if appointment.Doctor == "" {
		return models.Appointment{}, ErrAppointmentDoctorRequired
	}
	return appointment, nil
}

func nextAppointment(appointments []models.Appointment, now time.Time) *models.Appointment {
	today := prediction.FormatDate(now.UTC())
	upcoming := make([]models.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		if appointment.Date >= today {
			upcoming = append(upcoming, appointment)
		}
	}
	if len(upcoming) == 0 {
		return nil
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].Time < upcoming[j].Time
	})
	return &upcoming[0]
}
