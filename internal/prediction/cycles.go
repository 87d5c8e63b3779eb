package prediction

import (
	"math"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
)

// recentEntryWindow is how many trailing entries feed the average cycle length.
const recentEntryWindow = 3

// PredictNextPeriod returns the expected start of the next period, or false when there is
// no history (or a start date in the window cannot be read).
//
// The average gap is not clamped, so a single mistyped start date skews the prediction.
func PredictNextPeriod(entries []models.PeriodEntry, fallbackCycleLength int) (time.Time, bool) {
	if len(entries) == 0 {
		return time.Time{}, false
	}
	if fallbackCycleLength <= 0 {
		fallbackCycleLength = models.DefaultCycleLength
	}

	lastStart, err := ParseDate(entries[len(entries)-1].StartDate)
	if err != nil {
		return time.Time{}, false
	}

	if len(entries) == 1 {
		return AddDays(lastStart, fallbackCycleLength), true
	}

	average, ok := AverageCycleLength(entries)
	if !ok {
		return time.Time{}, false
	}

	cycleLength := roundHalfUp(average)
	if cycleLength < 1 {
		// Same-day duplicates average to zero; the next period is never the last one.
		cycleLength = 1
	}
	return AddDays(lastStart, cycleLength), true
}

// AverageCycleLength is the mean gap between consecutive start dates among the last three
// entries. It needs at least two entries.
func AverageCycleLength(entries []models.PeriodEntry) (float64, bool) {
	if len(entries) < 2 {
		return 0, false
	}

	starts := make([]time.Time, 0, recentEntryWindow)
	for _, entry := range tailEntries(entries, recentEntryWindow) {
		start, err := ParseDate(entry.StartDate)
		if err != nil {
			return 0, false
		}
		starts = append(starts, start)
	}

	gaps := make([]int, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		gaps = append(gaps, DaysBetween(starts[i-1], starts[i]))
	}
	return averageInts(gaps), true
}

func tailEntries(values []models.PeriodEntry, n int) []models.PeriodEntry {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}
