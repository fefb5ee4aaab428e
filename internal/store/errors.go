// Package store persists todos and users in PostgreSQL and reports
// failures as typed errors the HTTP layer can map to status codes.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound matches any *NotFoundError via errors.Is.
var ErrNotFound = errors.New("record not found")

// NotFoundError reports that no record of Resource has the given ID.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Couldn't find %s with 'id'=%s", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FieldError is a single failed constraint.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every constraint a record failed, in field order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		messages = append(messages, humanize(field.Field)+" "+field.Reason)
	}
	return "Validation failed: " + strings.Join(messages, ", ")
}

// humanize turns a JSON attribute name into a label: created_by -> Created by.
func humanize(name string) string {
	label := strings.ReplaceAll(name, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
