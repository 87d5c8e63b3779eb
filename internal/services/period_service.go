package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
	"github.com/terraincognita07/lunara/internal/prediction"
	"github.com/terraincognita07/lunara/internal/store"
)

var (
	ErrPeriodStartDateRequired = errors.New("period start date is required")
	ErrPeriodStartDateInvalid  = errors.New("period start date invalid")
	ErrPeriodEndDateInvalid    = errors.New("period end date invalid")
	ErrPeriodEndBeforeStart    = errors.New("period end date before start date")
	ErrPeriodFlowInvalid       = errors.New("invalid period flow")
	ErrPeriodMoodInvalid       = errors.New("invalid period mood")
	ErrPeriodEntryNotFound     = errors.New("period entry not found")
)

type PeriodEntryInput struct {
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Flow      string   `json:"flow"`
	Symptoms  []string `json:"symptoms"`
	Mood      string   `json:"mood"`
	Notes     string   `json:"notes"`
}

// PeriodEntryPatch carries the fields of a partial entry update. Nil fields are left as they are;
// an empty EndDate clears it.
type PeriodEntryPatch struct {
	StartDate *string   `json:"startDate"`
	EndDate   *string   `json:"endDate"`
	Flow      *string   `json:"flow"`
	Symptoms  *[]string `json:"symptoms"`
	Mood      *string   `json:"mood"`
	Notes     *string   `json:"notes"`
}

type PeriodForecast struct {
	HasPrediction       bool     `json:"hasPrediction"`
	NextPeriodDate      string   `json:"nextPeriodDate,omitempty"`
	DaysUntilNext       int      `json:"daysUntilNext"`
	Overdue             bool     `json:"overdue"`
	AverageCycleLength  *float64 `json:"averageCycleLength,omitempty"`
	FallbackCycleLength int      `json:"fallbackCycleLength"`
	LastPeriodStart     string   `json:"lastPeriodStart,omitempty"`
	EntryCount          int      `json:"entryCount"`
}

type PeriodService struct {
	records *store.Store
	newID   func() string
}

func NewPeriodService(records *store.Store) *PeriodService {
	return &PeriodService{records: records, newID: newRecordID}
}

func (service *PeriodService) List() []models.PeriodEntry {
	return store.Load(service.records, models.KeyPeriodEntries, models.DefaultPeriodEntries())
}

// Add validates input and appends a new entry. A store.ErrWriteFailed error still comes with
// the applied entry.
func (service *PeriodService) Add(input PeriodEntryInput) (models.PeriodEntry, error) {
	entry, err := NormalizePeriodEntryInput(input)
	if err != nil {
		return models.PeriodEntry{}, err
	}
	entry.ID = service.newID()

	_, err = store.Update(service.records, models.KeyPeriodEntries, models.DefaultPeriodEntries(), func(entries []models.PeriodEntry) []models.PeriodEntry {
		return append(entries, entry)
	})
	return entry, err
}

func (service *PeriodService) Update(id string, patch PeriodEntryPatch) (models.PeriodEntry, error) {
	var (
		updated  models.PeriodEntry
		found    bool
		patchErr error
	)

	_, err := store.Update(service.records, models.KeyPeriodEntries, models.DefaultPeriodEntries(), func(entries []models.PeriodEntry) []models.PeriodEntry {
		for index := range entries {
			if entries[index].ID != id {
				continue
			}
			found = true
			updated, patchErr = ApplyPeriodEntryPatch(entries[index], patch)
			if patchErr != nil {
				return entries
			}
			entries[index] = updated
			return entries
		}
		return entries
	})

	if !found {
		return models.PeriodEntry{}, ErrPeriodEntryNotFound
	}
	if patchErr != nil {
		return models.PeriodEntry{}, patchErr
	}
	return updated, err
}

// Forecast predicts the next period start from the recorded entries, falling back to the
// profile's average cycle length when there is only one entry.
func (service *PeriodService) Forecast(now time.Time) PeriodForecast {
	entries := service.List()
	profile := store.Load(service.records, models.KeyUserProfile, models.DefaultUserProfile())

	forecast := PeriodForecast{
		FallbackCycleLength: profile.AvgCycleLength,
		EntryCount:          len(entries),
	}
	if len(entries) > 0 {
		forecast.LastPeriodStart = entries[len(entries)-1].StartDate
	}
	if average, ok := prediction.AverageCycleLength(entries); ok {
		forecast.AverageCycleLength = &average
	}

	next, ok := prediction.PredictNextPeriod(entries, profile.AvgCycleLength)
	if !ok {
		return forecast
	}
	now = now.UTC()
	forecast.HasPrediction = true
	forecast.NextPeriodDate = prediction.FormatDate(next)
	forecast.DaysUntilNext = prediction.DaysBetween(now, next)
	forecast.Overdue = next.Before(now)
	return forecast
}

func NormalizePeriodEntryInput(input PeriodEntryInput) (models.PeriodEntry, error) {
	startDate := strings.TrimSpace(input.StartDate)
	if startDate == "" {
		return models.PeriodEntry{}, ErrPeriodStartDateRequired
	}

	entry := models.PeriodEntry{
		StartDate: startDate,
		EndDate:   strings.TrimSpace(input.EndDate),
		Flow:      strings.ToLower(strings.TrimSpace(input.Flow)),
		Symptoms:  NormalizeSymptoms(input.Symptoms),
		Mood:      strings.ToLower(strings.TrimSpace(input.Mood)),
		Notes:     TrimNotes(input.Notes),
	}
	if entry.Flow == "" {
		entry.Flow = models.FlowMedium
	}
	if entry.Mood == "" {
		entry.Mood = models.MoodNeutral
	}

	if err := validatePeriodEntry(entry); err != nil {
		return models.PeriodEntry{}, err
	}
	return entry, nil
}

func ApplyPeriodEntryPatch(entry models.PeriodEntry, patch PeriodEntryPatch) (models.PeriodEntry, error) {
	if patch.StartDate != nil {
		entry.StartDate = strings.TrimSpace(*patch.StartDate)
		if entry.StartDate == "" {
			return models.PeriodEntry{}, ErrPeriodStartDateRequired
		}
	}
	if patch.EndDate != nil {
		entry.EndDate = strings.TrimSpace(*patch.EndDate)
	}
	if patch.Flow != nil {
		entry.Flow = strings.ToLower(strings.TrimSpace(*patch.Flow))
	}
	if patch.Symptoms != nil {
		entry.Symptoms = NormalizeSymptoms(*patch.Symptoms)
	}
	if patch.Mood != nil {
		entry.Mood = strings.ToLower(strings.TrimSpace(*patch.Mood))
	}
	if patch.Notes != nil {
		entry.Notes = TrimNotes(*patch.Notes)
	}

	if err := validatePeriodEntry(entry); err != nil {
		return models.PeriodEntry{}, err
	}
	return entry, nil
}

func validatePeriodEntry(entry models.PeriodEntry) error {
	start, err := prediction.ParseDate(entry.StartDate)
	if err != nil {
		return ErrPeriodStartDateInvalid
	}
	if entry.EndDate != "" {
		end, err := prediction.ParseDate(entry.EndDate)
		if err != nil {
			return ErrPeriodEndDateInvalid
		}
		if end.Before(start) {
			return ErrPeriodEndBeforeStart
		}
	}
	if !models.IsValidFlow(entry.Flow) {
		return ErrPeriodFlowInvalid
	}
	if !models.IsValidMood(entry.Mood) {
		return ErrPeriodMoodInvalid
	}
	return nil
}
