package api

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/lunara/internal/models"
	"github.com/terraincognita07/lunara/internal/services"
	"github.com/terraincognita07/lunara/internal/store"
)

func TestPregnancyEndpoints(t *testing.T) {
	app := newTestApp(t)

	early := doJSONRequest(t, app, http.MethodPost, "/api/pregnancy/appointments", `{"date":"2024-04-01","time":"09:00","type":"Checkup","doctor":"Dr. Rao"}`)
	if early.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected status 409 before setup, got %d", early.StatusCode)
	}

	setup := doJSONRequest(t, app, http.MethodPost, "/api/pregnancy/setup", `{"dueDate":"2024-10-07","lastPeriodDate":"2024-01-01"}`)
	if setup.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", setup.StatusCode)
	}
	data := readMutation[models.PregnancyData](t, setup.Body).Data
	if !data.IsPregnant || data.CurrentWeek == nil || *data.CurrentWeek != 12 {
		t.Fatalf("unexpected pregnancy data after setup %#v", data)
	}

	appointment := doJSONRequest(t, app, http.MethodPost, "/api/pregnancy/appointments", `{"date":"2024-04-01","time":"9am","type":"Checkup","doctor":"Dr. Rao"}`)
	if appointment.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected status 400 for bad time, got %d", appointment.StatusCode)
	}

	appointment = doJSONRequest(t, app, http.MethodPost, "/api/pregnancy/appointments", `{"date":"2024-04-01","time":"09:00","type":"Checkup","doctor":"Dr. Rao"}`)
	if appointment.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected status 201, got %d", appointment.StatusCode)
	}

	overview := readJSON[services.PregnancyOverview](t, doJSONRequest(t, app, http.MethodGet, "/api/pregnancy/overview", "").Body)
	if overview.CompletedMilestones != 4 || overview.TotalMilestones != 11 {
		t.Fatalf("expected 4/11 milestones, got %d/%d", overview.CompletedMilestones, overview.TotalMilestones)
	}
	if overview.NextAppointment == nil || overview.NextAppointment.Date != "2024-04-01" {
		t.Fatalf("expected next appointment 2024-04-01, got %#v", overview.NextAppointment)
	}
}

func TestContactEndpoints(t *testing.T) {
	app := newTestApp(t)

	empty := doJSONRequest(t, app, http.MethodPost, "/api/contacts/alert", "")
	if empty.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected status 409 without contacts, got %d", empty.StatusCode)
	}

	created := readMutation[models.EmergencyContact](t, doJSONRequest(t, app, http.MethodPost, "/api/contacts", `{"name":"Ana","phone":"5550100001","relationship":"Sister"}`).Body).Data
	mustRequest(t, app, http.MethodPost, "/api/contacts", `{"name":"Ben","phone":"5550100002","relationship":"Partner","isPrimary":true}`, fiber.StatusCreated)

	alert := readJSON[services.EmergencyAlert](t, doJSONRequest(t, app, http.MethodPost, "/api/contacts/alert", "").Body)
	if alert.Contact.Name != "Ben" {
		t.Fatalf("expected primary contact Ben, got %q", alert.Contact.Name)
	}

	removed := doJSONRequest(t, app, http.MethodDelete, "/api/contacts/"+created.ID, "")
	if removed.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", removed.StatusCode)
	}
	missing := doJSONRequest(t, app, http.MethodDelete, "/api/contacts/"+created.ID, "")
	if missing.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected status 404, got %d", missing.StatusCode)
	}
}

func TestProfileEndpoints(t *testing.T) {
	app := newTestApp(t)

	profile := readJSON[models.UserProfile](t, doJSONRequest(t, app, http.MethodGet, "/api/profile", "").Body)
	if profile.AvgCycleLength != 28 || profile.AvgPeriodLength != 5 {
		t.Fatalf("expected default profile, got %#v", profile)
	}

	invalid := doJSONRequest(t, app, http.MethodPatch, "/api/profile", `{"age":-1}`)
	if invalid.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", invalid.StatusCode)
	}
	if got := readAPIError(t, invalid.Body); got != services.ErrProfileAgeInvalid.Error() {
		t.Fatalf("expected age error, got %q", got)
	}

	updated := readMutation[models.UserProfile](t, doJSONRequest(t, app, http.MethodPatch, "/api/profile", `{"name":"Maya","avgCycleLength":30}`).Body).Data
	if updated.Name != "Maya" || updated.AvgCycleLength != 30 || updated.AvgPeriodLength != 5 {
		t.Fatalf("unexpected profile after patch %#v", updated)
	}

	reminder := readMutation[models.HealthReminder](t, doJSONRequest(t, app, http.MethodPost, "/api/profile/reminders", `{"title":"Vitamins","time":"08:00","frequency":"daily"}`).Body).Data
	missingFlag := doJSONRequest(t, app, http.MethodPatch, "/api/profile/reminders/"+reminder.ID, `{}`)
	if missingFlag.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected status 400 without isActive, got %d", missingFlag.StatusCode)
	}
	toggled := readMutation[models.HealthReminder](t, doJSONRequest(t, app, http.MethodPatch, "/api/profile/reminders/"+reminder.ID, `{"isActive":false}`).Body).Data
	if toggled.IsActive {
		t.Fatalf("expected reminder to be inactive")
	}
}

func TestExportEndpointsSetAttachmentHeaders(t *testing.T) {
	app := newTestApp(t)
	mustRequest(t, app, http.MethodPost, "/api/periods", `{"startDate":"2024-01-01"}`, fiber.StatusCreated)

	tests := []struct {
		format      string
		contentType string
		filename    string
	}{
		{format: "json", contentType: "application/json", filename: "womens-health-data-2024-03-25.json"},
		{format: "csv", contentType: "text/csv", filename: "womens-health-periods-2024-03-25.csv"},
		{format: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename: "womens-health-data-2024-03-25.xlsx"},
		{format: "pdf", contentType: "application/pdf", filename: "womens-health-summary-2024-03-25.pdf"},
	}

	for _, testCase := range tests {
		t.Run(testCase.format, func(t *testing.T) {
			response := doJSONRequest(t, app, http.MethodGet, "/api/export/"+testCase.format, "")
			if response.StatusCode != fiber.StatusOK {
				t.Fatalf("expected status 200, got %d", response.StatusCode)
			}
			if got := response.Header.Get(fiber.HeaderContentType); got != testCase.contentType {
				t.Fatalf("expected content type %q, got %q", testCase.contentType, got)
			}
			if got := response.Header.Get(fiber.HeaderContentDisposition); got != "attachment; filename="+testCase.filename {
				t.Fatalf("unexpected content disposition %q", got)
			}
		})
	}

	unsupported := doJSONRequest(t, app, http.MethodGet, "/api/export/docx", "")
	if unsupported.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected status 404 for unsupported format, got %d", unsupported.StatusCode)
	}
}

func TestExportDateIsTheRealInstantOutsideUTC(t *testing.T) {
	newYork := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, time.March, 11, 2, 0, 0, 0, time.UTC)
	app := newConfiguredTestApp(t, store.NewMemoryBackend(), newYork, now)

	response := mustRequest(t, app, http.MethodGet, "/api/export/json", "", fiber.StatusOK)
	if got := response.Header.Get(fiber.HeaderContentDisposition); got != "attachment; filename=womens-health-data-2024-03-10.json" {
		t.Fatalf("expected file named by the local day, got %q", got)
	}
	bundle := readJSON[services.ExportBundle](t, response.Body)
	if bundle.ExportDate != "2024-03-11T02:00:00.000Z" {
		t.Fatalf("expected export instant 2024-03-11T02:00:00.000Z, got %q", bundle.ExportDate)
	}

	cleared := readMutation[services.ExportBundle](t, mustRequest(t, app, http.MethodPost, "/api/data/clear", "", fiber.StatusOK).Body)
	if cleared.Data.ExportDate != "2024-03-11T02:00:00.000Z" {
		t.Fatalf("expected clear response stamped with the real instant, got %q", cleared.Data.ExportDate)
	}

	dashboard := readJSON[services.Dashboard](t, mustRequest(t, app, http.MethodGet, "/api/dashboard", "", fiber.StatusOK).Body)
	if dashboard.Today != "2024-03-10" {
		t.Fatalf("expected dashboard day in the configured location, got %q", dashboard.Today)
	}
}

func TestImportAndClearEndpoints(t *testing.T) {
	source := newTestApp(t)
	mustRequest(t, source, http.MethodPost, "/api/periods", `{"startDate":"2024-01-01","flow":"heavy"}`, fiber.StatusCreated)
	mustRequest(t, source, http.MethodPatch, "/api/profile", `{"name":"Maya"}`, fiber.StatusOK)

	exported, err := io.ReadAll(doJSONRequest(t, source, http.MethodGet, "/api/export/json", "").Body)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	target := newTestApp(t)
	rejected := doJSONRequest(t, target, http.MethodPost, "/api/import", `{"periodEntries":[]}`)
	if rejected.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected status 400 for partial bundle, got %d", rejected.StatusCode)
	}

	imported := doJSONRequest(t, target, http.MethodPost, "/api/import", string(exported))
	if imported.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", imported.StatusCode)
	}
	entries := readJSON[[]models.PeriodEntry](t, doJSONRequest(t, target, http.MethodGet, "/api/periods", "").Body)
	if len(entries) != 1 || entries[0].Flow != models.FlowHeavy {
		t.Fatalf("expected imported entry, got %#v", entries)
	}

	cleared := doJSONRequest(t, target, http.MethodPost, "/api/data/clear", "")
	if cleared.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", cleared.StatusCode)
	}
	profile := readJSON[models.UserProfile](t, doJSONRequest(t, target, http.MethodGet, "/api/profile", "").Body)
	if profile.Name != "" || profile.AvgCycleLength != 28 {
		t.Fatalf("expected default profile after clear, got %#v", profile)
	}
}

func TestRecordEndpoints(t *testing.T) {
	app := newTestApp(t)

	unknown := doJSONRequest(t, app, http.MethodGet, "/api/records/settings", "")
	if unknown.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected status 404, got %d", unknown.StatusCode)
	}

	put := doJSONRequest(t, app, http.MethodPut, "/api/records/emergencyContacts", `[{"id":"c1","name":"Ana","phone":"5550100001","relationship":"Sister","isPrimary":true}]`)
	if put.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", put.StatusCode)
	}

	contacts := readJSON[[]models.EmergencyContact](t, doJSONRequest(t, app, http.MethodGet, "/api/records/emergencyContacts", "").Body)
	if len(contacts) != 1 || contacts[0].ID != "c1" {
		t.Fatalf("expected replaced contact list, got %#v", contacts)
	}

	invalid := doJSONRequest(t, app, http.MethodPut, "/api/records/userProfile", `{"name":"x","age":1,"avgCycleLength":5,"avgPeriodLength":5}`)
	if invalid.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", invalid.StatusCode)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	app := newTestApp(t)
	mustRequest(t, app, http.MethodPost, "/api/periods", `{"startDate":"2024-03-01"}`, fiber.StatusCreated)

	dashboard := readJSON[services.Dashboard](t, doJSONRequest(t, app, http.MethodGet, "/api/dashboard", "").Body)
	if dashboard.Today != "2024-03-25" {
		t.Fatalf("expected today 2024-03-25, got %q", dashboard.Today)
	}
	if dashboard.Period.NextPeriodDate != "2024-03-29" {
		t.Fatalf("expected next period 2024-03-29, got %q", dashboard.Period.NextPeriodDate)
	}
	if dashboard.Period.DaysUntilNext != 4 {
		t.Fatalf("expected 4 days until next period, got %d", dashboard.Period.DaysUntilNext)
	}
}
