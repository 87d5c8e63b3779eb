package models

// Persisted record keys. They are part of the storage and export format and must stay stable.
const (
	KeyPeriodEntries     = "periodEntries"
	KeyPregnancyData     = "pregnancyData"
	KeyEmergencyContacts = "emergencyContacts"
	KeyUserProfile       = "userProfile"
)

func RecordKeys() []string {
	return []string{KeyPeriodEntries, KeyPregnancyData, KeyEmergencyContacts, KeyUserProfile}
}

func DefaultPeriodEntries() []PeriodEntry {
	return []PeriodEntry{}
}

func DefaultEmergencyContacts() []EmergencyContact {
	return []EmergencyContact{}
}
