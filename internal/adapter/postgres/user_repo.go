package postgres

import (
	"context"
	"database/sql"
	"errors"

	"wellness/internal/domain"
)

// GetByEmail retrieves a user by normalized email. Returns nil when absent.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return d.scanUser(d.sql.QueryRowContext(ctx,
		"SELECT id, name, age, email, password_hash, created_at FROM users WHERE email = $1;",
		email,
	))
}

// GetByID retrieves a user by id. Returns nil when absent.
func (d *DB) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return d.scanUser(d.sql.QueryRowContext(ctx,
		"SELECT id, name, age, email, password_hash, created_at FROM users WHERE id = $1;",
		id,
	))
}

// Create inserts a new user. A duplicate id or email fails with
// domain.ErrUserExists via unique-constraint translation.
func (d *DB) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO users (id, name, age, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, $6);",
		u.ID, u.Name, u.Age, u.Email, u.PasswordHash, u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return nil, domain.ErrUserExists
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Update persists the user's mutable profile fields.
func (d *DB) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE users SET name = $2, age = $3 WHERE id = $1;",
		u.ID, u.Name, u.Age,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (d *DB) scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u   domain.User
		age sql.NullInt64
	)
	err := row.Scan(&u.ID, &u.Name, &age, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if age.Valid {
		n := int(age.Int64)
		u.Age = &n
	}
	return &u, nil
}
