package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wellness/internal/domain"
)

var (
	// ErrInvalidDate indicates a log date that is not a valid YYYY-MM-DD day.
	ErrInvalidDate = errors.New("invalid log date")
	// ErrFutureDate indicates a log dated after the current calendar day.
	ErrFutureDate = errors.New("log date must not be in the future")
	// ErrExcessiveDailyHours indicates that sleep plus exercise exceed a day.
	ErrExcessiveDailyHours = errors.New("combined sleep and exercise hours exceed a day")
)

// maxDailyHours leaves a small margin over 24 for float imprecision.
const maxDailyHours = 24.01

// OutOfRangeError reports every metric field whose value is outside its
// allowed bounds.
type OutOfRangeError struct {
	Fields []string
}

func (e *OutOfRangeError) Error() string {
	return "metric out of range: " + strings.Join(e.Fields, ", ")
}

// InputError marks rejected caller input outside the metric validators, such
// as a malformed signup or profile payload.
type InputError struct {
	msg string
}

func (e *InputError) Error() string {
	return e.msg
}

func inputErrorf(format string, args ...any) error {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// ValidateSubmission checks a new log submission. Rule groups run in order:
// per-field bounds (all violations reported together), then the date rules,
// then the cross-field hours budget. It is a pure function of its input.
func ValidateSubmission(log domain.DailyLog, today string) error {
	if err := checkRanges(log.Steps, log.ExerciseMinutes, log.SleepHours, log.WaterLiters, log.DietScore, log.Mood); err != nil {
		return err
	}
	day, err := time.Parse(domain.DayFormat, log.LogDate)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, log.LogDate)
	}
	now, err := time.Parse(domain.DayFormat, today)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, today)
	}
	if day.After(now) {
		return ErrFutureDate
	}
	return checkDailyHours(log.ExerciseMinutes, log.SleepHours)
}

// ValidatePatch checks a sparse update the same way as a submission, minus
// the date rules: the patched record's date already exists and cannot change.
func ValidatePatch(p domain.LogPatch) error {
	if err := checkRanges(p.Steps, p.ExerciseMinutes, p.SleepHours, p.WaterLiters, p.DietScore, p.Mood); err != nil {
		return err
	}
	return checkDailyHours(p.ExerciseMinutes, p.SleepHours)
}

// IsValidationError reports whether err is rejected input rather than a
// system failure, so the boundary can map it to a client error.
func IsValidationError(err error) bool {
	var (
		oor *OutOfRangeError
		in  *InputError
	)
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrFutureDate) ||
		errors.Is(err, ErrExcessiveDailyHours) ||
		errors.As(err, &oor) ||
		errors.As(err, &in)
}

func checkRanges(steps, exerciseMinutes *int, sleepHours, waterLiters *float64, dietScore, mood *int) error {
	var bad []string
	if steps != nil && *steps < 0 {
		bad = append(bad, "steps")
	}
	if exerciseMinutes != nil && *exerciseMinutes < 0 {
		bad = append(bad, "exerciseMinutes")
	}
	if sleepHours != nil && (*sleepHours < 0 || *sleepHours > 24) {
		bad = append(bad, "sleepHours")
	}
	if waterLiters != nil && (*waterLiters < 0 || *waterLiters > 10) {
		bad = append(bad, "waterLiters")
	}
	if dietScore != nil && (*dietScore < 0 || *dietScore > 10) {
		bad = append(bad, "dietScore")
	}
	if mood != nil && (*mood < 0 || *mood > 10) {
		bad = append(bad, "mood")
	}
	if len(bad) > 0 {
		return &OutOfRangeError{Fields: bad}
	}
	return nil
}

// checkDailyHours treats absent fields as zero, matching how the limit is
// meant to bound only what was actually reported.
func checkDailyHours(exerciseMinutes *int, sleepHours *float64) error {
	var total float64
	if exerciseMinutes != nil {
		total += float64(*exerciseMinutes) / 60
	}
	if sleepHours != nil {
		total += *sleepHours
	}
	if total > maxDailyHours {
		return ErrExcessiveDailyHours
	}
	return nil
}
