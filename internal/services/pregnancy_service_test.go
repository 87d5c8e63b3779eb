package services

import (
	"errors"
	"testing"
)

func setupTestPregnancy(t *testing.T) *PregnancyService {
	t.Helper()
	service := NewPregnancyService(newTestRecords(t))
	service.newID = sequentialIDs("appointment")

	_, err := service.Setup(PregnancySetupInput{
		DueDate:        "2024-10-07",
		LastPeriodDate: "2024-01-01",
	}, mustParseServiceDay(t, "2024-03-25"))
	if err != nil {
		t.Fatalf("Setup() unexpected error: %v", err)
	}
	return service
}

func TestPregnancyServiceDefaultsToNotPregnant(t *testing.T) {
	service := NewPregnancyService(newTestRecords(t))

	data := service.Get()
	if data.IsPregnant {
		t.Fatalf("expected isPregnant=false by default")
	}
	if data.Appointments == nil || data.Milestones == nil {
		t.Fatalf("expected empty, non-nil appointment and milestone lists")
	}
}

func TestPregnancyServiceSetupSnapshotsWeekAndMilestones(t *testing.T) {
	service := setupTestPregnancy(t)

	data := service.Get()
	if !data.IsPregnant {
		t.Fatalf("expected isPregnant=true after setup")
	}
	if data.CurrentWeek == nil || *data.CurrentWeek != 12 {
		t.Fatalf("expected currentWeek=12, got %v", data.CurrentWeek)
	}
	if len(data.Milestones) != 11 {
		t.Fatalf("expected 11 milestones, got %d", len(data.Milestones))
	}
	if data.Milestones[0].ID != "milestone-4" || !data.Milestones[0].Completed {
		t.Fatalf("expected completed milestone-4 first, got %#v", data.Milestones[0])
	}
}

func TestPregnancyServiceSetupValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   PregnancySetupInput
		wantErr error
	}{
		{name: "missing due date", input: PregnancySetupInput{LastPeriodDate: "2024-01-01"}, wantErr: ErrPregnancyDueDateRequired},
		{name: "missing last period", input: PregnancySetupInput{DueDate: "2024-10-07"}, wantErr: ErrPregnancyLastPeriodRequired},
		{name: "bad due date", input: PregnancySetupInput{DueDate: "soon", LastPeriodDate: "2024-01-01"}, wantErr: ErrPregnancyDueDateInvalid},
		{name: "bad last period", input: PregnancySetupInput{DueDate: "2024-10-07", LastPeriodDate: "2024-02-30"}, wantErr: ErrPregnancyLastPeriodInvalid},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			service := NewPregnancyService(newTestRecords(t))
			_, err := service.Setup(testCase.input, mustParseServiceDay(t, "2024-03-25"))
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected error %v, got %v", testCase.wantErr, err)
			}
			if service.Get().IsPregnant {
				t.Fatalf("expected rejected setup to leave record untouched")
			}
		})
	}
}

// The stored week and milestone flags are a snapshot taken at setup. The overview
// reports the live week next to it.
func TestPregnancyOverviewKeepsSetupSnapshot(t *testing.T) {
	service := setupTestPregnancy(t)

	overview := service.Overview(mustParseServiceDay(t, "2024-05-20"))
	if overview.CurrentWeek == nil || *overview.CurrentWeek != 12 {
		t.Fatalf("expected stored week 12, got %v", overview.CurrentWeek)
	}
	if overview.WeekToday != 20 {
		t.Fatalf("expected live week 20, got %d", overview.WeekToday)
	}
	if overview.CompletedMilestones != 4 || overview.TotalMilestones != 11 {
		t.Fatalf("expected 4/11 milestones, got %d/%d", overview.CompletedMilestones, overview.TotalMilestones)
	}
	if overview.DaysUntilDue == nil || *overview.DaysUntilDue != 140 {
		t.Fatalf("expected 140 days until due, got %v", overview.DaysUntilDue)
	}

	late := service.Overview(mustParseServiceDay(t, "2024-10-10"))
	if late.DaysUntilDue == nil || *late.DaysUntilDue != -3 {
		t.Fatalf("expected -3 days past due, got %v", late.DaysUntilDue)
	}
}

func TestPregnancyServiceAppointments(t *testing.T) {
	unstarted := NewPregnancyService(newTestRecords(t))
	_, err := unstarted.AddAppointment(AppointmentInput{Date: "2024-05-25", Time: "09:30", Type: "Ultrasound", Doctor: "Dr. Rao"})
	if !errors.Is(err, ErrPregnancyNotTracked) {
		t.Fatalf("expected ErrPregnancyNotTracked, got %v", err)
	}

	service := setupTestPregnancy(t)
	for _, input := range []AppointmentInput{
		{Date: "2024-04-01", Time: "08:00", Type: "Checkup", Doctor: "Dr. Rao"},
		{Date: "2024-06-01", Time: "10:00", Type: "Glucose test", Doctor: "Dr. Rao"},
		{Date: "2024-05-25", Time: "09:30", Type: "Ultrasound", Doctor: "Dr. Okafor"},
	} {
		if _, err := service.AddAppointment(input); err != nil {
			t.Fatalf("AddAppointment(%s) unexpected error: %v", input.Date, err)
		}
	}

	overview := service.Overview(mustParseServiceDay(t, "2024-05-20"))
	if overview.NextAppointment == nil || overview.NextAppointment.Date != "2024-05-25" {
		t.Fatalf("expected next appointment on 2024-05-25, got %#v", overview.NextAppointment)
	}
	if overview.NextAppointment.ID != "appointment-3" {
		t.Fatalf("expected appointment-3, got %q", overview.NextAppointment.ID)
	}

	_, err = service.Setup(PregnancySetupInput{DueDate: "2024-10-07", LastPeriodDate: "2024-01-01"}, mustParseServiceDay(t, "2024-05-20"))
	if err != nil {
		t.Fatalf("Setup() unexpected error: %v", err)
	}
	if got := len(service.Get().Appointments); got != 0 {
		t.Fatalf("expected setup to reset appointments, got %d", got)
	}
}

func TestNormalizeAppointmentInputValidation(t *testing.T) {
	t.Parallel()

	valid := AppointmentInput{Date: "2024-05-25", Time: "09:30", Type: "Ultrasound", Doctor: "Dr. Rao"}
	tests := []struct {
		name    string
		mutate  func(*AppointmentInput)
		wantErr error
	}{
		{name: "valid", mutate: func(*AppointmentInput) {}},
		{name: "bad date", mutate: func(input *AppointmentInput) { input.Date = "25.05.2024" }, wantErr: ErrAppointmentDateInvalid},
		{name: "short hour", mutate: func(input *AppointmentInput) { input.Time = "9:30" }, wantErr: ErrAppointmentTimeInvalid},
		{name: "hour out of range", mutate: func(input *AppointmentInput) { input.Time = "24:00" }, wantErr: ErrAppointmentTimeInvalid},
		{name: "missing type", mutate: func(input *AppointmentInput) { input.Type = " " }, wantErr: ErrAppointmentTypeRequired},
		{name: "missing doctor", mutate: func(input *AppointmentInput) { input.Doctor = "" }, wantErr: ErrAppointmentDoctorRequired},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			input := valid
			testCase.mutate(&input)
			_, err := NormalizeAppointmentInput(input)
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected error %v, got %v", testCase.wantErr, err)
			}
		})
	}
}

func TestPregnancyServiceUpdateDoesNotRecomputeWeek(t *testing.T) {
	service := setupTestPregnancy(t)

	lastPeriod := "2024-02-01"
	ended := false
	data, err := service.Update(PregnancyPatch{LastPeriodDate: &lastPeriod, IsPregnant: &ended})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if data.IsPregnant || data.LastPeriodDate != lastPeriod {
		t.Fatalf("expected patch to apply, got %#v", data)
	}
	if data.CurrentWeek == nil || *data.CurrentWeek != 12 {
		t.Fatalf("expected stored week to stay 12, got %v", data.CurrentWeek)
	}
	if data.DueDate != "2024-10-07" {
		t.Fatalf("expected due date untouched, got %s", data.DueDate)
	}

	bad := "tomorrow"
	if _, err := service.Update(PregnancyPatch{DueDate: &bad}); !errors.Is(err, ErrPregnancyDueDateInvalid) {
		t.Fatalf("expected ErrPregnancyDueDateInvalid, got %v", err)
	}
}
