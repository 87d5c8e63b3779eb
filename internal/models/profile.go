package models

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

const (
	ReminderDaily   = "daily"
	ReminderWeekly  = "weekly"
	ReminderMonthly = "monthly"
)

type UserProfile struct {
	Name              string             `json:"name"`
	Age               int                `json:"age"`
	AvgCycleLength    int                `json:"avgCycleLength"`
	AvgPeriodLength   int                `json:"avgPeriodLength"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts"`
	HealthReminders   []HealthReminder   `json:"healthReminders"`
}

type HealthReminder struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Frequency   string `json:"frequency"`
	IsActive    bool   `json:"isActive"`
}

func DefaultUserProfile() UserProfile {
	return UserProfile{
		Name:              "",
		Age:               0,
		AvgCycleLength:    DefaultCycleLength,
		AvgPeriodLength:   DefaultPeriodLength,
		EmergencyContacts: []EmergencyContact{},
		HealthReminders:   []HealthReminder{},
	}
}

func IsValidReminderFrequency(frequency string) bool {
	switch frequency {
	case ReminderDaily, ReminderWeekly, ReminderMonthly:
		return true
	default:
		return false
	}
}
