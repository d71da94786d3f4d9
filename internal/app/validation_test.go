package app_test

import (
	"errors"
	"reflect"
	"testing"

	"wellness/internal/app"
	"wellness/internal/domain"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

const today = "2026-09-01"

func TestValidateSubmissionRanges(t *testing.T) {
	tests := []struct {
		name   string
		log    domain.DailyLog
		fields []string
	}{
		{
			name:   "negative steps",
			log:    domain.DailyLog{LogDate: today, Steps: intp(-1)},
			fields: []string{"steps"},
		},
		{
			name:   "sleep above a day",
			log:    domain.DailyLog{LogDate: today, SleepHours: floatp(24.5)},
			fields: []string{"sleepHours"},
		},
		{
			name:   "water above limit",
			log:    domain.DailyLog{LogDate: today, WaterLiters: floatp(10.5)},
			fields: []string{"waterLiters"},
		},
		{
			name: "scores out of bounds reported together",
			log: domain.DailyLog{
				LogDate:   today,
				Steps:     intp(-5),
				DietScore: intp(11),
				Mood:      intp(-1),
			},
			fields: []string{"steps", "dietScore", "mood"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.ValidateSubmission(tt.log, today)
			var oor *app.OutOfRangeError
			if !errors.As(err, &oor) {
				t.Fatalf("expected OutOfRangeError, got %v", err)
			}
			if !reflect.DeepEqual(oor.Fields, tt.fields) {
				t.Errorf("fields = %v, want %v", oor.Fields, tt.fields)
			}
		})
	}
}

func TestValidateSubmissionDates(t *testing.T) {
	err := app.ValidateSubmission(domain.DailyLog{LogDate: "not-a-date"}, today)
	if !errors.Is(err, app.ErrInvalidDate) {
		t.Errorf("malformed date: got %v, want ErrInvalidDate", err)
	}

	err = app.ValidateSubmission(domain.DailyLog{LogDate: "2026-09-02"}, today)
	if !errors.Is(err, app.ErrFutureDate) {
		t.Errorf("future date: got %v, want ErrFutureDate", err)
	}

	if err := app.ValidateSubmission(domain.DailyLog{LogDate: today}, today); err != nil {
		t.Errorf("same-day log: got %v, want nil", err)
	}
}

func TestValidateSubmissionDailyHours(t *testing.T) {
	err := app.ValidateSubmission(domain.DailyLog{
		LogDate:         today,
		SleepHours:      floatp(20),
		ExerciseMinutes: intp(300),
	}, today)
	if !errors.Is(err, app.ErrExcessiveDailyHours) {
		t.Errorf("sleep 20h + exercise 5h: got %v, want ErrExcessiveDailyHours", err)
	}

	// Exactly 24 combined hours is allowed.
	err = app.ValidateSubmission(domain.DailyLog{
		LogDate:         today,
		SleepHours:      floatp(20),
		ExerciseMinutes: intp(240),
	}, today)
	if err != nil {
		t.Errorf("sleep 20h + exercise 4h: got %v, want nil", err)
	}

	// An absent field does not count toward the budget.
	err = app.ValidateSubmission(domain.DailyLog{
		LogDate:    today,
		SleepHours: floatp(24),
	}, today)
	if err != nil {
		t.Errorf("sleep 24h alone: got %v, want nil", err)
	}
}

func TestValidateSubmissionAllFieldsAbsent(t *testing.T) {
	if err := app.ValidateSubmission(domain.DailyLog{LogDate: today}, today); err != nil {
		t.Errorf("empty log: got %v, want nil", err)
	}
}

func TestValidatePatch(t *testing.T) {
	if err := app.ValidatePatch(domain.LogPatch{SleepHours: floatp(8)}); err != nil {
		t.Errorf("valid patch: got %v, want nil", err)
	}

	err := app.ValidatePatch(domain.LogPatch{ExerciseMinutes: intp(-10)})
	var oor *app.OutOfRangeError
	if !errors.As(err, &oor) {
		t.Errorf("negative exercise: got %v, want OutOfRangeError", err)
	}

	err = app.ValidatePatch(domain.LogPatch{SleepHours: floatp(22), ExerciseMinutes: intp(180)})
	if !errors.Is(err, app.ErrExcessiveDailyHours) {
		t.Errorf("excessive patch: got %v, want ErrExcessiveDailyHours", err)
	}
}

func TestIsValidationError(t *testing.T) {
	for _, err := range []error{
		app.ErrInvalidDate,
		app.ErrFutureDate,
		app.ErrExcessiveDailyHours,
		&app.OutOfRangeError{Fields: []string{"mood"}},
	} {
		if !app.IsValidationError(err) {
			t.Errorf("IsValidationError(%v) = false, want true", err)
		}
	}
	if app.IsValidationError(errors.New("boom")) {
		t.Error("IsValidationError(arbitrary) = true, want false")
	}
	if app.IsValidationError(domain.ErrLogExists) {
		t.Error("IsValidationError(ErrLogExists) = true, want false")
	}
}
