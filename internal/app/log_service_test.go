package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"wellness/internal/app"
	"wellness/internal/domain"
)

// mockLogRepo implements domain.LogRepository with per-test function fields.
type mockLogRepo struct {
	create func(ctx context.Context, log domain.DailyLog) (*domain.DailyLog, error)
	update func(ctx context.Context, userID, day string, patch domain.LogPatch) (*domain.DailyLog, error)
	get    func(ctx context.Context, userID, day string) (*domain.DailyLog, error)
	list   func(ctx context.Context, userID, startDay, endDay string) ([]domain.DailyLog, error)
}

func (m *mockLogRepo) Create(ctx context.Context, log domain.DailyLog) (*domain.DailyLog, error) {
	return m.create(ctx, log)
}

func (m *mockLogRepo) Update(ctx context.Context, userID, day string, patch domain.LogPatch) (*domain.DailyLog, error) {
	return m.update(ctx, userID, day, patch)
}

func (m *mockLogRepo) GetByUserAndDate(ctx context.Context, userID, day string) (*domain.DailyLog, error) {
	return m.get(ctx, userID, day)
}

func (m *mockLogRepo) ListByUserInRange(ctx context.Context, userID, startDay, endDay string) ([]domain.DailyLog, error) {
	return m.list(ctx, userID, startDay, endDay)
}

func yesterday() string {
	return time.Now().In(time.Local).AddDate(0, 0, -1).Format(domain.DayFormat)
}

func TestLogServiceCreate(t *testing.T) {
	var stored domain.DailyLog
	repo := &mockLogRepo{
		create: func(ctx context.Context, log domain.DailyLog) (*domain.DailyLog, error) {
			stored = log
			return &log, nil
		},
	}
	svc := app.NewLogService(repo)

	log, err := svc.Create(context.Background(), "u1", domain.DailyLog{
		LogDate:    yesterday(),
		Steps:      intp(10500),
		SleepHours: floatp(7.8),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if stored.UserID != "u1" {
		t.Errorf("stored user id = %q, want u1", stored.UserID)
	}
	if log.Steps == nil || *log.Steps != 10500 {
		t.Errorf("steps = %v, want 10500", log.Steps)
	}
	if stored.Mood != nil {
		t.Errorf("absent mood stored as %v, want nil", stored.Mood)
	}
}

func TestLogServiceCreateDuplicate(t *testing.T) {
	repo := &mockLogRepo{
		create: func(ctx context.Context, log domain.DailyLog) (*domain.DailyLog, error) {
			return nil, domain.ErrLogExists
		},
	}
	svc := app.NewLogService(repo)

	_, err := svc.Create(context.Background(), "u1", domain.DailyLog{LogDate: yesterday()})
	if !errors.Is(err, domain.ErrLogExists) {
		t.Errorf("got %v, want ErrLogExists", err)
	}
}

func TestLogServiceCreateRejectsBeforeRepo(t *testing.T) {
	called := false
	repo := &mockLogRepo{
		create: func(ctx context.Context, log domain.DailyLog) (*domain.DailyLog, error) {
			called = true
			return &log, nil
		},
	}
	svc := app.NewLogService(repo)

	future := time.Now().In(time.Local).AddDate(0, 0, 1).Format(domain.DayFormat)
	_, err := svc.Create(context.Background(), "u1", domain.DailyLog{LogDate: future})
	if !errors.Is(err, app.ErrFutureDate) {
		t.Errorf("got %v, want ErrFutureDate", err)
	}
	if called {
		t.Error("repo called for a rejected submission")
	}
}

func TestLogServiceUpdate(t *testing.T) {
	day := yesterday()
	repo := &mockLogRepo{
		update: func(ctx context.Context, userID, d string, patch domain.LogPatch) (*domain.DailyLog, error) {
			if userID != "u1" || d != day {
				t.Errorf("update key = (%q, %q), want (u1, %q)", userID, d, day)
			}
			log := domain.DailyLog{UserID: userID, LogDate: d, Steps: intp(10500)}
			patch.Apply(&log)
			return &log, nil
		},
	}
	svc := app.NewLogService(repo)

	log, err := svc.Update(context.Background(), "u1", day, domain.LogPatch{SleepHours: floatp(8.5)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if log.SleepHours == nil || *log.SleepHours != 8.5 {
		t.Errorf("sleepHours = %v, want 8.5", log.SleepHours)
	}
	if log.Steps == nil || *log.Steps != 10500 {
		t.Errorf("steps = %v, want 10500 untouched", log.Steps)
	}
}

func TestLogServiceUpdateBadDay(t *testing.T) {
	svc := app.NewLogService(&mockLogRepo{})
	_, err := svc.Update(context.Background(), "u1", "20-10-2025", domain.LogPatch{})
	if !errors.Is(err, app.ErrInvalidDate) {
		t.Errorf("got %v, want ErrInvalidDate", err)
	}
}

func TestLogServiceUpdateMissing(t *testing.T) {
	repo := &mockLogRepo{
		update: func(ctx context.Context, userID, day string, patch domain.LogPatch) (*domain.DailyLog, error) {
			return nil, domain.ErrLogNotFound
		},
	}
	svc := app.NewLogService(repo)

	_, err := svc.Update(context.Background(), "u1", yesterday(), domain.LogPatch{Mood: intp(7)})
	if !errors.Is(err, domain.ErrLogNotFound) {
		t.Errorf("got %v, want ErrLogNotFound", err)
	}
}

func TestLogServiceGetMissing(t *testing.T) {
	repo := &mockLogRepo{
		get: func(ctx context.Context, userID, day string) (*domain.DailyLog, error) {
			return nil, nil
		},
	}
	svc := app.NewLogService(repo)

	_, err := svc.Get(context.Background(), "u1", yesterday())
	if !errors.Is(err, domain.ErrLogNotFound) {
		t.Errorf("got %v, want ErrLogNotFound", err)
	}
}

func TestLogServiceListRecentWindow(t *testing.T) {
	var gotStart, gotEnd string
	repo := &mockLogRepo{
		list: func(ctx context.Context, userID, startDay, endDay string) ([]domain.DailyLog, error) {
			gotStart, gotEnd = startDay, endDay
			return nil, nil
		},
	}
	svc := app.NewLogService(repo)

	if _, err := svc.ListRecent(context.Background(), "u1", 7); err != nil {
		t.Fatalf("ListRecent: %v", err)
	}

	now := time.Now().In(time.Local)
	if want := now.AddDate(0, 0, -7).Format(domain.DayFormat); gotStart != want {
		t.Errorf("start = %q, want %q", gotStart, want)
	}
	if want := now.Format(domain.DayFormat); gotEnd != want {
		t.Errorf("end = %q, want %q", gotEnd, want)
	}
}
