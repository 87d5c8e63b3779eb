package prediction

import (
	"time"

	"github.com/terraincognita07/lunara/internal/models"
)

// PregnancyWeek counts completed weeks since the last menstrual period. A today before
// lastPeriodDate yields 0.
func PregnancyWeek(lastPeriodDate time.Time, today time.Time) int {
	elapsedDays := ceilDays(today.Sub(lastPeriodDate))
	if elapsedDays <= 0 {
		return 0
	}
	return elapsedDays / 7
}

// DaysUntilDueDate is signed: it goes negative once the due date has passed.
func DaysUntilDueDate(dueDate time.Time, today time.Time) int {
	return DaysUntil(dueDate, today)
}

// GenerateMilestones instantiates the milestone template with completion flags as of today.
// The flags are a snapshot and are not refreshed later.
func GenerateMilestones(lastPeriodDate time.Time, today time.Time) []models.Milestone {
	week := PregnancyWeek(lastPeriodDate, today)

	template := models.PregnancyMilestoneTemplate()
	milestones := make([]models.Milestone, 0, len(template))
	for _, item := range template {
		milestones = append(milestones, models.Milestone{
			ID:          models.MilestoneID(item.Week),
			Week:        item.Week,
			Title:       item.Title,
			Description: item.Description,
			Completed:   item.Week <= week,
		})
	}
	return milestones
}

func CompletedMilestones(milestones []models.Milestone) int {
	count := 0
	for _, milestone := range milestones {
		if milestone.Completed {
			count++
		}
	}
	return count
}
