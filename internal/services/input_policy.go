package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/terraincognita07/lunara/internal/prediction"
)

const MaxNotesLength = 2000

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidTimeOfDay reports whether raw is a 24h HH:MM clock time.
func IsValidTimeOfDay(raw string) bool {
	return timeOfDayPattern.MatchString(raw)
}

func IsValidCalendarDate(raw string) bool {
	_, err := prediction.ParseDate(raw)
	return err == nil
}

// TrimNotes trims surrounding space and caps notes at MaxNotesLength runes.
func TrimNotes(value string) string {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) <= MaxNotesLength {
		return value
	}
	runes := []rune(value)
	return string(runes[:MaxNotesLength])
}

// NormalizeSymptoms trims names and drops blanks and repeats, keeping first-seen order.
func NormalizeSymptoms(symptoms []string) []string {
	result := make([]string, 0, len(symptoms))
	seen := make(map[string]struct{}, len(symptoms))
	for _, symptom := range symptoms {
		name := strings.TrimSpace(symptom)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}

func newRecordID() string {
	return uuid.NewString()
}
