package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
	"github.com/terraincognita07/lunara/internal/prediction"
	"github.com/terraincognita07/lunara/internal/store"
)

const exportTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	ErrImportInvalid = errors.New("import bundle invalid")
	ErrUnknownRecord = errors.New("unknown record key")
)

var exportBundleFields = []string{
	models.KeyPeriodEntries,
	models.KeyPregnancyData,
	models.KeyEmergencyContacts,
	models.KeyUserProfile,
	"exportDate",
}

// ExportBundle is the complete backup document. Its shape is also the only accepted import format.
type ExportBundle struct {
	PeriodEntries     []models.PeriodEntry      `json:"periodEntries"`
	PregnancyData     models.PregnancyData      `json:"pregnancyData"`
	EmergencyContacts []models.EmergencyContact `json:"emergencyContacts"`
	UserProfile       models.UserProfile        `json:"userProfile"`
	ExportDate        string                    `json:"exportDate"`
}

type DataService struct {
	records *store.Store
}

func NewDataService(records *store.Store) *DataService {
	return &DataService{records: records}
}

// Init loads every record once so that first-run defaults are persisted up front.
func (service *DataService) Init() {
	service.snapshot()
}

func (service *DataService) ExportAll(now time.Time) ExportBundle {
	bundle := service.snapshot()
	bundle.ExportDate = now.UTC().Format(exportTimestampLayout)
	return bundle
}

func (service *DataService) ExportJSON(now time.Time) ([]byte, error) {
	return json.MarshalIndent(service.ExportAll(now), "", "  ")
}

func ExportFilename(now time.Time) string {
	return fmt.Sprintf("womens-health-data-%s.json", now.UTC().Format(prediction.DateLayout))
}

// ClearAll resets every record to its first-run default.
func (service *DataService) ClearAll() error {
	return service.records.SaveMany(map[string]any{
		models.KeyPeriodEntries:     models.DefaultPeriodEntries(),
		models.KeyPregnancyData:     models.DefaultPregnancyData(),
		models.KeyEmergencyContacts: models.DefaultEmergencyContacts(),
		models.KeyUserProfile:       models.DefaultUserProfile(),
	})
}

// Import replaces all records with the content of an exported bundle. Nothing is written
// unless the whole bundle is valid.
func (service *DataService) Import(raw []byte) (ExportBundle, error) {
	bundle, err := ParseExportBundle(raw)
	if err != nil {
		return ExportBundle{}, err
	}

	err = service.records.SaveMany(map[string]any{
		models.KeyPeriodEntries:     bundle.PeriodEntries,
		models.KeyPregnancyData:     bundle.PregnancyData,
		models.KeyEmergencyContacts: bundle.EmergencyContacts,
		models.KeyUserProfile:       bundle.UserProfile,
	})
	return bundle, err
}

// Record returns the current value stored under one of the four record keys.
func (service *DataService) Record(key string) (any, error) {
	return recordFromBundle(service.snapshot(), key)
}

// ReplaceRecord overwrites a whole record after validating it with the import rules.
func (service *DataService) ReplaceRecord(key string, raw []byte) (any, error) {
	bundle := service.snapshot()

	var target any
	switch key {
	case models.KeyPeriodEntries:
		bundle.PeriodEntries = nil
		target = &bundle.PeriodEntries
	case models.KeyPregnancyData:
		bundle.PregnancyData = models.PregnancyData{}
		target = &bundle.PregnancyData
	case models.KeyEmergencyContacts:
		bundle.EmergencyContacts = nil
		target = &bundle.EmergencyContacts
	case models.KeyUserProfile:
		bundle.UserProfile = models.UserProfile{}
		target = &bundle.UserProfile
	default:
		return nil, ErrUnknownRecord
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}
	if err := validateBundleRecords(&bundle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}

	value, err := recordFromBundle(bundle, key)
	if err != nil {
		return nil, err
	}
	return value, store.Save(service.records, key, value)
}

func recordFromBundle(bundle ExportBundle, key string) (any, error) {
	switch key {
	case models.KeyPeriodEntries:
		return bundle.PeriodEntries, nil
	case models.KeyPregnancyData:
		return bundle.PregnancyData, nil
	case models.KeyEmergencyContacts:
		return bundle.EmergencyContacts, nil
	case models.KeyUserProfile:
		return bundle.UserProfile, nil
	default:
		return nil, ErrUnknownRecord
	}
}

func ParseExportBundle(raw []byte) (ExportBundle, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ExportBundle{}, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}
	for _, name := range exportBundleFields {
		value, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return ExportBundle{}, fmt.Errorf("%w: missing %s", ErrImportInvalid, name)
		}
	}
	if len(fields) != len(exportBundleFields) {
		return ExportBundle{}, fmt.Errorf("%w: unexpected fields", ErrImportInvalid)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	var bundle ExportBundle
	if err := decoder.Decode(&bundle); err != nil {
		return ExportBundle{}, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}

	if _, err := time.Parse(time.RFC3339, bundle.ExportDate); err != nil {
		return ExportBundle{}, fmt.Errorf("%w: exportDate: %v", ErrImportInvalid, err)
	}
	if err := validateBundleRecords(&bundle); err != nil {
		return ExportBundle{}, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}
	return bundle, nil
}

// validateBundleRecords checks every record and replaces nil lists with empty ones.
func validateBundleRecords(bundle *ExportBundle) error {
	if bundle.PeriodEntries == nil {
		bundle.PeriodEntries = models.DefaultPeriodEntries()
	}
	for index, entry := range bundle.PeriodEntries {
		if strings.TrimSpace(entry.ID) == "" {
			return fmt.Errorf("periodEntries[%d]: missing id", index)
		}
		if err := validatePeriodEntry(entry); err != nil {
			return fmt.Errorf("periodEntries[%d]: %w", index, err)
		}
		if entry.Symptoms == nil {
			bundle.PeriodEntries[index].Symptoms = []string{}
		}
	}

	pregnancy := &bundle.PregnancyData
	if pregnancy.DueDate != "" && !IsValidCalendarDate(pregnancy.DueDate) {
		return ErrPregnancyDueDateInvalid
	}
	if pregnancy.LastPeriodDate != "" && !IsValidCalendarDate(pregnancy.LastPeriodDate) {
		return ErrPregnancyLastPeriodInvalid
	}
	if pregnancy.CurrentWeek != nil && *pregnancy.CurrentWeek < 0 {
		return errors.New("pregnancyData: negative currentWeek")
	}
	if pregnancy.Appointments == nil {
		pregnancy.Appointments = []models.Appointment{}
	}
	if pregnancy.Milestones == nil {
		pregnancy.Milestones = []models.Milestone{}
	}
	for index, appointment := range pregnancy.Appointments {
		if _, err := NormalizeAppointmentInput(AppointmentInput{
			Date:   appointment.Date,
			Time:   appointment.Time,
			Type:   appointment.Type,
			Doctor: appointment.Doctor,
		}); err != nil {
			return fmt.Errorf("appointments[%d]: %w", index, err)
		}
	}

	if bundle.EmergencyContacts == nil {
		bundle.EmergencyContacts = models.DefaultEmergencyContacts()
	}
	for index, contact := range bundle.EmergencyContacts {
		if strings.TrimSpace(contact.Name) == "" {
			return fmt.Errorf("emergencyContacts[%d]: %w", index, ErrContactNameRequired)
		}
	}

	profile := &bundle.UserProfile
	if err := ValidateProfilePatch(ProfilePatch{
		Age:             &profile.Age,
		AvgCycleLength:  &profile.AvgCycleLength,
		AvgPeriodLength: &profile.AvgPeriodLength,
	}); err != nil {
		return fmt.Errorf("userProfile: %w", err)
	}
	if profile.EmergencyContacts == nil {
		profile.EmergencyContacts = models.DefaultEmergencyContacts()
	}
	if profile.HealthReminders == nil {
		profile.HealthReminders = []models.HealthReminder{}
	}
	for index, reminder := range profile.HealthReminders {
		if !models.IsValidReminderFrequency(reminder.Frequency) {
			return fmt.Errorf("healthReminders[%d]: %w", index, ErrReminderFrequencyInvalid)
		}
	}
	return nil
}

func (service *DataService) snapshot() ExportBundle {
	return ExportBundle{
		PeriodEntries:     store.Load(service.records, models.KeyPeriodEntries, models.DefaultPeriodEntries()),
		PregnancyData:     store.Load(service.records, models.KeyPregnancyData, models.DefaultPregnancyData()),
		EmergencyContacts: store.Load(service.records, models.KeyEmergencyContacts, models.DefaultEmergencyContacts()),
		UserProfile:       store.Load(service.records, models.KeyUserProfile, models.DefaultUserProfile()),
	}
}
