package domain

import (
	"context"
	"errors"
)

// DayFormat is the wire and storage format for log dates.
const DayFormat = "2006-01-02"

// DailyLog is one user's habit record for one calendar date. The pair
// (UserID, LogDate) identifies the record; at most one log exists per user
// per day. Metric fields are pointers: a nil field means "no data", which
// is distinct from a recorded zero.
type DailyLog struct {
	UserID          string   `json:"userId"`
	LogDate         string   `json:"logDate"`
	Steps           *int     `json:"steps"`
	ExerciseMinutes *int     `json:"exerciseMinutes"`
	SleepHours      *float64 `json:"sleepHours"`
	WaterLiters     *float64 `json:"waterLiters"`
	DietScore       *int     `json:"dietScore"`
	Mood            *int     `json:"mood"`
}

// LogPatch is a sparse update for an existing log. Nil fields are left
// untouched on merge. The patch deliberately has no date field: the log
// date is the record's identity and cannot be rewritten.
type LogPatch struct {
	Steps           *int
	ExerciseMinutes *int
	SleepHours      *float64
	WaterLiters     *float64
	DietScore       *int
	Mood            *int
}

// Apply merges the patch into l, overwriting only the supplied fields.
func (p LogPatch) Apply(l *DailyLog) {
	if p.Steps != nil {
		l.Steps = p.Steps
	}
	if p.ExerciseMinutes != nil {
		l.ExerciseMinutes = p.ExerciseMinutes
	}
	if p.SleepHours != nil {
		l.SleepHours = p.SleepHours
	}
	if p.WaterLiters != nil {
		l.WaterLiters = p.WaterLiters
	}
	if p.DietScore != nil {
		l.DietScore = p.DietScore
	}
	if p.Mood != nil {
		l.Mood = p.Mood
	}
}

// MetricNames lists the six tracked metrics in a fixed order. Aggregation
// iterates this table uniformly instead of naming fields individually.
var MetricNames = [...]string{
	"steps",
	"exerciseMinutes",
	"sleepHours",
	"waterLiters",
	"dietScore",
	"mood",
}

// MetricValues returns the log's metric fields as floats in MetricNames
// order, nil for fields with no data.
func (l DailyLog) MetricValues() [6]*float64 {
	return [6]*float64{
		intMetric(l.Steps),
		intMetric(l.ExerciseMinutes),
		l.SleepHours,
		l.WaterLiters,
		intMetric(l.DietScore),
		intMetric(l.Mood),
	}
}

func intMetric(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

var (
	// ErrLogExists indicates that a log already exists for the (user, date) pair.
	ErrLogExists = errors.New("log already exists for date")
	// ErrLogNotFound indicates that no log exists for the (user, date) pair.
	ErrLogNotFound = errors.New("no log exists for date")
)

// LogRepository defines the port for daily-log persistence. Create fails
// with ErrLogExists on a duplicate (user, date) pair; Update merges a sparse
// patch into the stored record and fails with ErrLogNotFound when the record
// is missing.
type LogRepository interface {
	Create(ctx context.Context, log DailyLog) (*DailyLog, error)
	Update(ctx context.Context, userID, day string, patch LogPatch) (*DailyLog, error)
	GetByUserAndDate(ctx context.Context, userID, day string) (*DailyLog, error)
	ListByUserInRange(ctx context.Context, userID, startDay, endDay string) ([]DailyLog, error)
}
