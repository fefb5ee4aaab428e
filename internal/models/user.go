package models

import (
	"time"
)

// User represents a user in the system
type User struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	PasswordDigest string    `json:"-" db:"password_digest"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser is the signup payload.
type NewUser struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank,min=6"`
}
