package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Todo is the single resource managed by the API.
type Todo struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title" validate:"notblank"`
	CreatedBy string    `json:"created_by" db:"created_by" validate:"notblank"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TodoAttributes carries client-supplied fields. Nil means "not supplied".
type TodoAttributes struct {
	Title     *string `json:"title"`
	CreatedBy *string `json:"created_by"`
}

// UnmarshalJSON accepts created_by as a string or a bare number; user ids
// are stored as text either way.
func (a *TodoAttributes) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title     *string         `json:"title"`
		CreatedBy json.RawMessage `json:"created_by"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	createdBy, err := decodeIdentifier(raw.CreatedBy)
	if err != nil {
		return fmt.Errorf("created_by: %w", err)
	}

	a.Title = raw.Title
	a.CreatedBy = createdBy
	return nil
}

func decodeIdentifier(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	if raw[0] == '"' {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, err
		}
		return &value, nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return nil, fmt.Errorf("must be a string or a number")
	}
	value := number.String()
	return &value, nil
}

// Apply merges the supplied attributes into t.
func (a TodoAttributes) Apply(t *Todo) {
	if a.Title != nil {
		t.Title = *a.Title
	}
	if a.CreatedBy != nil {
		t.CreatedBy = *a.CreatedBy
	}
}
