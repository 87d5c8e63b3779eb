package prediction

import (
	"errors"
	"math"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const day = 24 * time.Hour

var ErrInvalidDate = errors.New("invalid calendar date")

// ParseDate reads a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

func FormatDate(value time.Time) string {
	return value.UTC().Format(DateLayout)
}

// AddDays returns the calendar date n days after date. n may be negative.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// DaysBetween is the absolute difference in days, with any partial day counted as a whole one.
func DaysBetween(a time.Time, b time.Time) int {
	elapsed := b.Sub(a)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return ceilDays(elapsed)
}

// DaysUntil is the signed number of days from today until target, rounded up.
func DaysUntil(target time.Time, today time.Time) int {
	return ceilDays(target.Sub(today))
}

func ceilDays(elapsed time.Duration) int {
	return int(math.Ceil(float64(elapsed) / float64(day)))
}
