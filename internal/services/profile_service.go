package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/lunara/internal/models"
	"github.com/terraincognita07/lunara/internal/store"
)

const (
	MinCycleLength  = 15
	MaxCycleLength  = 90
	MinPeriodLength = 1
	MaxPeriodLength = 14
	MaxProfileName  = 120
)

var (
	ErrProfileAgeInvalid          = errors.New("profile age invalid")
	ErrProfileCycleLengthInvalid  = errors.New("profile cycle length out of range")
	ErrProfilePeriodLengthInvalid = errors.New("profile period length out of range")
	ErrProfileNameTooLong         = errors.New("profile name too long")
	ErrReminderTitleRequired      = errors.New("reminder title is required")
	ErrReminderTimeInvalid        = errors.New("reminder time invalid")
	ErrReminderFrequencyInvalid   = errors.New("reminder frequency invalid")
	ErrHealthReminderNotFound     = errors.New("health reminder not found")
)

type ProfilePatch struct {
	Name            *string `json:"name"`
	Age             *int    `json:"age"`
	AvgCycleLength  *int    `json:"avgCycleLength"`
	AvgPeriodLength *int    `json:"avgPeriodLength"`
}

type HealthReminderInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Frequency   string `json:"frequency"`
}

type ProfileService struct {
	records *store.Store
	newID   func() string
}

func NewProfileService(records *store.Store) *ProfileService {
	return &ProfileService{records: records, newID: newRecordID}
}

func (service *ProfileService) Get() models.UserProfile {
	return store.Load(service.records, models.KeyUserProfile, models.DefaultUserProfile())
}

func (service *ProfileService) Update(patch ProfilePatch) (models.UserProfile, error) {
	if err := ValidateProfilePatch(patch); err != nil {
		return models.UserProfile{}, err
	}

	return store.Update(service.records, models.KeyUserProfile, models.DefaultUserProfile(), func(profile models.UserProfile) models.UserProfile {
		if patch.Name != nil {
			profile.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Age != nil {
			profile.Age = *patch.Age
		}
		if patch.AvgCycleLength != nil {
			profile.AvgCycleLength = *patch.AvgCycleLength
		}
		if patch.AvgPeriodLength != nil {
			profile.AvgPeriodLength = *patch.AvgPeriodLength
		}
		return profile
	})
}

// AddReminder stores an active reminder. Reminders are only toggles; nothing is scheduled.
func (service *ProfileService) AddReminder(input HealthReminderInput) (models.HealthReminder, error) {
	reminder := models.HealthReminder{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Time:        strings.TrimSpace(input.Time),
		Frequency:   strings.ToLower(strings.TrimSpace(input.Frequency)),
		IsActive:    true,
	}
	switch {
	case reminder.Title == "":
		return models.HealthReminder{}, ErrReminderTitleRequired
	case !IsValidTimeOfDay(reminder.Time):
		return models.HealthReminder{}, ErrReminderTimeInvalid
	case !models.IsValidReminderFrequency(reminder.Frequency):
		return models.HealthReminder{}, ErrReminderFrequencyInvalid
	}
	reminder.ID = service.newID()

	_, err := store.Update(service.records, models.KeyUserProfile, models.DefaultUserProfile(), func(profile models.UserProfile) models.UserProfile {
		profile.HealthReminders = append(profile.HealthReminders, reminder)
		return profile
	})
	return reminder, err
}

func (service *ProfileService) SetReminderActive(id string, active bool) (models.HealthReminder, error) {
	var (
		updated models.HealthReminder
		found   bool
	)
	_, err := store.Update(service.records, models.KeyUserProfile, models.DefaultUserProfile(), func(profile models.UserProfile) models.UserProfile {
		for index := range profile.HealthReminders {
			if profile.HealthReminders[index].ID == id {
				profile.HealthReminders[index].IsActive = active
				updated = profile.HealthReminders[index]
				found = true
				break
			}
		}
		return profile
	})
	if !found {
		return models.HealthReminder{}, ErrHealthReminderNotFound
	}
	return updated, err
}

func ValidateProfilePatch(patch ProfilePatch) error {
	if patch.Name != nil && len(strings.TrimSpace(*patch.Name)) > MaxProfileName {
		return ErrProfileNameTooLong
	}
	if patch.Age != nil && *patch.Age < 0 {
		return ErrProfileAgeInvalid
	}
	if patch.AvgCycleLength != nil && !IsValidCycleLength(*patch.AvgCycleLength) {
		return ErrProfileCycleLengthInvalid
	}
	if patch.AvgPeriodLength != nil && !IsValidPeriodLength(*patch.AvgPeriodLength) {
		return ErrProfilePeriodLengthInvalid
	}
	return nil
}

func IsValidCycleLength(value int) bool {
	return value >= MinCycleLength && value <= MaxCycleLength
}

func IsValidPeriodLength(value int) bool {
	return value >= MinPeriodLength && value <= MaxPeriodLength
}
