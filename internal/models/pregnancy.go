package models

import "fmt"

type PregnancyData struct {
	IsPregnant     bool          `json:"isPregnant"`
	DueDate        string        `json:"dueDate,omitempty"`
	LastPeriodDate string        `json:"lastPeriodDate,omitempty"`
	CurrentWeek    *int          `json:"currentWeek,omitempty"`
	Appointments   []Appointment `json:"appointments"`
	Milestones     []Milestone   `json:"milestones"`
}

type Appointment struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Type   string `json:"type"`
	Doctor string `json:"doctor"`
	Notes  string `json:"notes,omitempty"`
}

type Milestone struct {
	ID          string `json:"id"`
	Week        int    `json:"week"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type MilestoneTemplate struct {
	Week        int
	Title       string
	Description string
}

func DefaultPregnancyData() PregnancyData {
	return PregnancyData{
		IsPregnant:   false,
		Appointments: []Appointment{},
		Milestones:   []Milestone{},
	}
}

func MilestoneID(week int) string {
	return fmt.Sprintf("milestone-%d", week)
}

// PregnancyMilestoneTemplate is the fixed checkpoint list instantiated at pregnancy setup.
func PregnancyMilestoneTemplate() []MilestoneTemplate {
	return []MilestoneTemplate{
		{Week: 4, Title: "Missed Period", Description: "First sign of pregnancy"},
		{Week: 6, Title: "Heartbeat Detectable", Description: "Baby's heart starts beating"},
		{Week: 8, Title: "First Prenatal Visit", Description: "Schedule your first appointment"},
		{Week: 12, Title: "End of First Trimester", Description: "Risk of miscarriage decreases"},
		{Week: 16, Title: "Baby's Sex Revealed", Description: "Gender can be determined"},
		{Week: 20, Title: "Anatomy Scan", Description: "Detailed ultrasound examination"},
		{Week: 24, Title: "Viability Milestone", Description: "Baby could survive outside womb"},
		{Week: 28, Title: "Third Trimester", Description: "Final stretch begins"},
		{Week: 32, Title: "Baby's Lungs Develop", Description: "Lungs are maturing rapidly"},
		{Week: 36, Title: "Full Term Approaching", Description: "Baby is almost ready"},
		{Week: 40, Title: "Due Date", Description: "Your baby is ready to meet you!"},
	}
}
