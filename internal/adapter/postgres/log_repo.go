package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wellness/internal/domain"
)

const logColumns = "user_id, log_date, steps, exercise_minutes, sleep_hours, water_liters, diet_score, mood"

// LogRepo implements daily-log persistence on DB.
type LogRepo struct {
	db *DB
}

// NewLogRepo wraps a DB as a LogRepository.
func NewLogRepo(db *DB) *LogRepo {
	return &LogRepo{db: db}
}

// Create inserts a new daily log. A duplicate (user, date) pair fails with
// domain.ErrLogExists: the composite primary key is the race-safety backstop,
// so the violation is translated from the constraint error itself.
func (r *LogRepo) Create(ctx context.Context, log domain.DailyLog) (*domain.DailyLog, error) {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO daily_logs ("+logColumns+", created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);",
		log.UserID, log.LogDate, log.Steps, log.ExerciseMinutes, log.SleepHours,
		log.WaterLiters, log.DietScore, log.Mood, time.Now().UTC(),
	)
	if isUniqueViolation(err) {
		return nil, domain.ErrLogExists
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// Update merges a sparse patch into the stored log for (userID, day) inside
// a single transaction: the row is locked, merged in memory and written
// back, so concurrent patches cannot interleave field-by-field.
func (r *LogRepo) Update(ctx context.Context, userID, day string, patch domain.LogPatch) (*domain.DailyLog, error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	row := tx.QueryRowContext(ctx,
		"SELECT "+logColumns+" FROM daily_logs WHERE user_id = $1 AND log_date = $2 FOR UPDATE;",
		userID, day,
	)
	log, err := scanLog(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrLogNotFound
	}
	if err != nil {
		return nil, err
	}

	patch.Apply(log)

	_, err = tx.ExecContext(ctx,
		`UPDATE daily_logs SET steps = $3, exercise_minutes = $4, sleep_hours = $5,
			water_liters = $6, diet_score = $7, mood = $8
			WHERE user_id = $1 AND log_date = $2;`,
		userID, day, log.Steps, log.ExerciseMinutes, log.SleepHours,
		log.WaterLiters, log.DietScore, log.Mood,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return log, nil
}

// GetByUserAndDate returns the log for a single (user, day) pair, or nil.
func (r *LogRepo) GetByUserAndDate(ctx context.Context, userID, day string) (*domain.DailyLog, error) {
	row := r.db.sql.QueryRowContext(ctx,
		"SELECT "+logColumns+" FROM daily_logs WHERE user_id = $1 AND log_date = $2;",
		userID, day,
	)
	log, err := scanLog(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return log, nil
}

// ListByUserInRange returns the user's logs with startDay <= log_date <=
// endDay. Order is not significant to callers.
func (r *LogRepo) ListByUserInRange(ctx context.Context, userID, startDay, endDay string) ([]domain.DailyLog, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT "+logColumns+" FROM daily_logs WHERE user_id = $1 AND log_date >= $2 AND log_date <= $3 ORDER BY log_date;",
		userID, startDay, endDay,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.DailyLog
	for rows.Next() {
		log, err := scanLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *log)
	}
	return out, rows.Err()
}

// scanLog reads a daily_logs row in logColumns order, mapping SQL NULLs to
// nil metric fields.
func scanLog(scan func(dest ...any) error) (*domain.DailyLog, error) {
	var (
		l                           domain.DailyLog
		date                        time.Time
		steps, exercise, diet, mood sql.NullInt64
		sleep, water                sql.NullFloat64
	)
	if err := scan(&l.UserID, &date, &steps, &exercise, &sleep, &water, &diet, &mood); err != nil {
		return nil, err
	}
	l.LogDate = date.Format(domain.DayFormat)
	l.Steps = nullableInt(steps)
	l.ExerciseMinutes = nullableInt(exercise)
	l.SleepHours = nullableFloat(sleep)
	l.WaterLiters = nullableFloat(water)
	l.DietScore = nullableInt(diet)
	l.Mood = nullableInt(mood)
	return &l, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
