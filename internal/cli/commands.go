package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/terraincognita07/lunara/internal/services"
	"github.com/terraincognita07/lunara/internal/store"
)

var ErrClearNotConfirmed = errors.New("refusing to clear data without confirmation")

// RunExportCommand renders a report and writes it to outputPath, or to the report's
// default file name inside the current directory when outputPath is empty.
func RunExportCommand(records *store.Store, format string, outputPath string, exportedAt time.Time, today time.Time, out io.Writer) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if !services.IsValidReportFormat(format) {
		return fmt.Errorf("unsupported export format %q", format)
	}

	report, err := services.NewDataService(records).Report(format, exportedAt, today)
	if err != nil {
		return fmt.Errorf("build export: %w", err)
	}

	if strings.TrimSpace(outputPath) == "" {
		outputPath = report.Filename
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, report.Body, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Fprintf(out, "Exported %s to %s\n", format, outputPath)
	return nil
}

func RunImportCommand(records *store.Store, inputPath string, out io.Writer) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	bundle, err := services.NewDataService(records).Import(raw)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %d period entries, %d contacts, %d appointments\n",
		len(bundle.PeriodEntries), len(bundle.EmergencyContacts), len(bundle.PregnancyData.Appointments))
	return nil
}

func RunClearCommand(records *store.Store, confirmed bool, out io.Writer) error {
	if !confirmed {
		return ErrClearNotConfirmed
	}
	if err := services.NewDataService(records).ClearAll(); err != nil {
		return err
	}

	fmt.Fprintln(out, "All records reset to defaults")
	return nil
}

// RunPredictCommand prints the cycle forecast and, while tracking a pregnancy, its overview.
func RunPredictCommand(records *store.Store, now time.Time, out io.Writer) error {
	forecast := services.NewPeriodService(records).Forecast(now)

	fmt.Fprintf(out, "Recorded periods: %d\n", forecast.EntryCount)
	if forecast.AverageCycleLength != nil {
		fmt.Fprintf(out, "Average cycle length: %.1f days\n", *forecast.AverageCycleLength)
	}
	switch {
	case !forecast.HasPrediction:
		fmt.Fprintln(out, "Next period: no prediction available")
	case forecast.Overdue:
		fmt.Fprintf(out, "Next period: %s (%d days late)\n", forecast.NextPeriodDate, forecast.DaysUntilNext)
	default:
		fmt.Fprintf(out, "Next period: %s (in %d days)\n", forecast.NextPeriodDate, forecast.DaysUntilNext)
	}

	overview := services.NewPregnancyService(records).Overview(now)
	if !overview.IsPregnant {
		return nil
	}
	fmt.Fprintf(out, "Pregnancy week: %d\n", overview.WeekToday)
	if overview.DaysUntilDue != nil {
		fmt.Fprintf(out, "Days until due date: %d\n", *overview.DaysUntilDue)
	}
	fmt.Fprintf(out, "Milestones: %d/%d\n", overview.CompletedMilestones, overview.TotalMilestones)
	return nil
}
