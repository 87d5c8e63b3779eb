package models

const (
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

const (
	MoodHappy     = "happy"
	MoodSad       = "sad"
	MoodAnxious   = "anxious"
	MoodNeutral   = "neutral"
	MoodIrritated = "irritated"
)

type PeriodEntry struct {
	ID        string   `json:"id"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate,omitempty"`
	Flow      string   `json:"flow"`
	Symptoms  []string `json:"symptoms"`
	Mood      string   `json:"mood"`
	Notes     string   `json:"notes,omitempty"`
}

func IsValidFlow(flow string) bool {
	switch flow {
	case FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}

func IsValidMood(mood string) bool {
	switch mood {
	case MoodHappy, MoodSad, MoodAnxious, MoodNeutral, MoodIrritated:
		return true
	default:
		return false
	}
}
