package models

type BuiltinSymptom struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func DefaultBuiltinSymptoms() []BuiltinSymptom {
	return []BuiltinSymptom{
		{Name: "Cramps", Icon: "🩸"},
		{Name: "Headache", Icon: "🤕"},
		{Name: "Bloating", Icon: "🎈"},
		{Name: "Fatigue", Icon: "😴"},
		{Name: "Mood swings", Icon: "😢"},
		{Name: "Breast tenderness", Icon: "💔"},
		{Name: "Nausea", Icon: "🤢"},
		{Name: "Back pain", Icon: "🦴"},
		{Name: "Acne", Icon: "🔴"},
		{Name: "Cravings", Icon: "🍫"},
	}
}
