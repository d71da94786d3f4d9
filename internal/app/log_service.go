package app

import (
	"context"
	"fmt"
	"time"

	"wellness/internal/domain"
)

// LogService encapsulates daily-log use cases.
type LogService struct {
	repo domain.LogRepository
}

// NewLogService creates a LogService backed by the given repository.
func NewLogService(repo domain.LogRepository) *LogService {
	return &LogService{repo: repo}
}

// Create validates and stores a new daily log for the user. A log that
// already exists for the submitted date fails with domain.ErrLogExists;
// callers must use Update to modify an existing day.
func (s *LogService) Create(ctx context.Context, userID string, log domain.DailyLog) (*domain.DailyLog, error) {
	today := time.Now().In(time.Local).Format(domain.DayFormat)
	if err := ValidateSubmission(log, today); err != nil {
		return nil, err
	}
	log.UserID = userID
	return s.repo.Create(ctx, log)
}

// Update validates a sparse patch and merges it into the stored log for the
// given day. Fields absent from the patch keep their stored values; the day
// itself is the record's identity and is never modified.
func (s *LogService) Update(ctx context.Context, userID, day string, patch domain.LogPatch) (*domain.DailyLog, error) {
	if _, err := time.Parse(domain.DayFormat, day); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, day)
	}
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, userID, day, patch)
}

// Get returns the log for a single day, or domain.ErrLogNotFound.
func (s *LogService) Get(ctx context.Context, userID, day string) (*domain.DailyLog, error) {
	log, err := s.repo.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, domain.ErrLogNotFound
	}
	return log, nil
}

// ListRecent returns the user's logs within the trailing window of days
// ending today, both bounds inclusive.
func (s *LogService) ListRecent(ctx context.Context, userID string, days int) ([]domain.DailyLog, error) {
	today := time.Now().In(time.Local)
	start := today.AddDate(0, 0, -days)
	return s.repo.ListByUserInRange(ctx, userID,
		start.Format(domain.DayFormat), today.Format(domain.DayFormat))
}
