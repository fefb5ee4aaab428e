package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"todoapi/internal/models"
	"todoapi/internal/utils"

	"github.com/lib/pq"
)

const uniqueViolation = pq.ErrorCode("23505")

// UserStore reads and writes rows of the users table.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create validates the signup payload, hashes the password and inserts the
// user. A taken email is reported as a validation failure.
func (s *UserStore) Create(ctx context.Context, input models.NewUser) (models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateRecord(&input); err != nil {
		return models.User{}, err
	}

	digest, err := utils.HashPassword(input.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Name: input.Name, Email: input.Email, PasswordDigest: digest}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_digest) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		user.Name, user.Email, user.PasswordDigest,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.User{}, &ValidationError{Fields: []FieldError{{Field: "email", Reason: "has already been taken"}}}
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// FindByEmail looks a user up by (case-insensitive) email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_digest, created_at, updated_at FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordDigest, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, &NotFoundError{Resource: "User", ID: email}
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Count returns the number of registered users.
func (s *UserStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}
