// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"wellness/internal/domain"
)

// DB implements in-memory storage shared by the repositories.
type DB struct {
	mu    sync.Mutex
	users []*domain.User
	logs  []domain.DailyLog
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.LogRepository = (*LogRepo)(nil)

// --- UserRepository ---

// GetByEmail retrieves a user by email, or nil.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by id, or nil.
func (db *DB) GetByID(ctx context.Context, id string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Create stores a new user, rejecting duplicate ids or emails.
func (db *DB) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.users {
		if existing.ID == u.ID || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}

	cp := *u
	db.users = append(db.users, &cp)
	return u, nil
}

// Update overwrites the stored user's mutable fields.
func (db *DB) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.users {
		if existing.ID == u.ID {
			existing.Name = u.Name
			existing.Age = u.Age
			cp := *existing
			return &cp, nil
		}
	}
	return nil, errors.New("user not found")
}

// --- LogRepository ---

// LogRepo implements daily-log persistence on the shared store.
type LogRepo struct {
	db *DB
}

// NewLogRepo wraps the database as a LogRepository.
func (db *DB) NewLogRepo() *LogRepo {
	return &LogRepo{db: db}
}

// Create stores a new daily log, enforcing (user, date) uniqueness.
func (r *LogRepo) Create(ctx context.Context, log domain.DailyLog) (*domain.DailyLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, l := range r.db.logs {
		if l.UserID == log.UserID && l.LogDate == log.LogDate {
			return nil, domain.ErrLogExists
		}
	}

	r.db.logs = append(r.db.logs, log)
	cp := log
	return &cp, nil
}

// Update merges a sparse patch into the stored log for (userID, day).
func (r *LogRepo) Update(ctx context.Context, userID, day string, patch domain.LogPatch) (*domain.DailyLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.logs {
		l := &r.db.logs[i]
		if l.UserID == userID && l.LogDate == day {
			patch.Apply(l)
			cp := *l
			return &cp, nil
		}
	}
	return nil, domain.ErrLogNotFound
}

// GetByUserAndDate returns the log for a single (user, day) pair, or nil.
func (r *LogRepo) GetByUserAndDate(ctx context.Context, userID, day string) (*domain.DailyLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, l := range r.db.logs {
		if l.UserID == userID && l.LogDate == day {
			cp := l
			return &cp, nil
		}
	}
	return nil, nil
}

// ListByUserInRange returns the user's logs with startDay <= date <= endDay.
// ISO day strings compare lexicographically, so plain string comparison
// matches the date order.
func (r *LogRepo) ListByUserInRange(ctx context.Context, userID, startDay, endDay string) ([]domain.DailyLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []domain.DailyLog
	for _, l := range r.db.logs {
		if l.UserID == userID && l.LogDate >= startDay && l.LogDate <= endDay {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LogDate < out[j].LogDate
	})
	return out, nil
}
