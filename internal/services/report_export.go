package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/terraincognita07/lunara/internal/models"
	"github.com/terraincognita07/lunara/internal/prediction"
)

const (
	ReportFormatJSON = "json"
	ReportFormatCSV  = "csv"
	ReportFormatXLSX = "xlsx"
	ReportFormatPDF  = "pdf"
)

var PeriodReportHeaders = []string{"Start date", "End date", "Flow", "Mood", "Symptoms", "Notes"}

// Report is a rendered export ready to be sent as an attachment.
type Report struct {
	Body        []byte
	Filename    string
	ContentType string
}

func IsValidReportFormat(format string) bool {
	switch format {
	case ReportFormatJSON, ReportFormatCSV, ReportFormatXLSX, ReportFormatPDF:
		return true
	default:
		return false
	}
}

// Report renders every record in format. exportedAt is the real instant stamped into the
// bundle; today is the user's calendar day used for file names and the forecast.
func (service *DataService) Report(format string, exportedAt time.Time, today time.Time) (Report, error) {
	bundle := service.ExportAll(exportedAt)
	day := prediction.FormatDate(today)

	switch format {
	case ReportFormatJSON:
		body, err := service.ExportJSON(exportedAt)
		if err != nil {
			return Report{}, err
		}
		return Report{Body: body, Filename: ExportFilename(today), ContentType: "application/json"}, nil
	case ReportFormatCSV:
		body, err := BuildPeriodCSV(bundle.PeriodEntries)
		if err != nil {
			return Report{}, err
		}
		return Report{Body: body, Filename: fmt.Sprintf("womens-health-periods-%s.csv", day), ContentType: "text/csv"}, nil
	case ReportFormatXLSX:
		body, err := BuildWorkbook(bundle)
		if err != nil {
			return Report{}, err
		}
		return Report{
			Body:        body,
			Filename:    fmt.Sprintf("womens-health-data-%s.xlsx", day),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		}, nil
	case ReportFormatPDF:
		body, err := BuildSummaryPDF(bundle, NewPeriodService(service.records).Forecast(today))
		if err != nil {
			return Report{}, err
		}
		return Report{Body: body, Filename: fmt.Sprintf("womens-health-summary-%s.pdf", day), ContentType: "application/pdf"}, nil
	default:
		return Report{}, fmt.Errorf("unsupported report format: %s", format)
	}
}

func BuildPeriodCSV(entries []models.PeriodEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(PeriodReportHeaders); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := writer.Write(periodReportRow(entry)); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildWorkbook renders periods, appointments and contacts on separate sheets.
func BuildWorkbook(bundle ExportBundle) ([]byte, error) {
	workbook := excelize.NewFile()
	defer workbook.Close()

	periodRows := make([][]string, 0, len(bundle.PeriodEntries))
	for _, entry := range bundle.PeriodEntries {
		periodRows = append(periodRows, periodReportRow(entry))
	}
	appointmentRows := make([][]string, 0, len(bundle.PregnancyData.Appointments))
	for _, appointment := range bundle.PregnancyData.Appointments {
		appointmentRows = append(appointmentRows, []string{appointment.Date, appointment.Time, appointment.Type, appointment.Doctor, appointment.Notes})
	}
	contactRows := make([][]string, 0, len(bundle.EmergencyContacts))
	for _, contact := range bundle.EmergencyContacts {
		contactRows = append(contactRows, []string{contact.Name, contact.Phone, contact.Relationship, yesNo(contact.IsPrimary)})
	}

	if err := workbook.SetSheetName("Sheet1", "Periods"); err != nil {
		return nil, err
	}
	if err := writeSheet(workbook, "Periods", PeriodReportHeaders, periodRows); err != nil {
		return nil, err
	}
	if _, err := workbook.NewSheet("Appointments"); err != nil {
		return nil, err
	}
	if err := writeSheet(workbook, "Appointments", []string{"Date", "Time", "Type", "Doctor", "Notes"}, appointmentRows); err != nil {
		return nil, err
	}
	if _, err := workbook.NewSheet("Contacts"); err != nil {
		return nil, err
	}
	if err := writeSheet(workbook, "Contacts", []string{"Name", "Phone", "Relationship", "Primary"}, contactRows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildSummaryPDF renders a one-page overview suitable for sharing with a clinician.
func BuildSummaryPDF(bundle ExportBundle, forecast PeriodForecast) ([]byte, error) {
	pdf, tr := newSummaryPDF()
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Health Summary")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	profile := bundle.UserProfile
	lines := []string{
		"Exported: " + bundle.ExportDate,
		fmt.Sprintf("Average cycle length: %d days", profile.AvgCycleLength),
		fmt.Sprintf("Average period length: %d days", profile.AvgPeriodLength),
		fmt.Sprintf("Recorded periods: %d", len(bundle.PeriodEntries)),
	}
	if strings.TrimSpace(profile.Name) != "" {
		lines = append([]string{"Name: " + profile.Name}, lines...)
	}
	if forecast.HasPrediction {
		lines = append(lines, "Next period expected: "+forecast.NextPeriodDate)
	}
	if bundle.PregnancyData.IsPregnant {
		lines = append(lines, "Pregnancy due date: "+bundle.PregnancyData.DueDate)
	}
	for _, line := range lines {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	widths := []float64{25, 25, 20, 22, 60, 38}
	pdf.SetFont("Arial", "B", 9)
	for i, header := range PeriodReportHeaders {
		pdf.CellFormat(widths[i], 7, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, entry := range bundle.PeriodEntries {
		for i, value := range periodReportRow(entry) {
			pdf.CellFormat(widths[i], 6, tr(value), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newSummaryPDF returns an A4 document and the translator that maps UTF-8 text onto the
// cp1252 encoding of the core fonts.
func newSummaryPDF() (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

func writeSheet(workbook *excelize.File, sheet string, headers []string, rows [][]string) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := workbook.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	for rowIndex, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIndex+2)
			if err != nil {
				return err
			}
			if err := workbook.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func periodReportRow(entry models.PeriodEntry) []string {
	return []string{
		entry.StartDate,
		entry.EndDate,
		entry.Flow,
		entry.Mood,
		strings.Join(entry.Symptoms, "; "),
		entry.Notes,
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
