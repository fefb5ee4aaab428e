package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"todoapi/internal/models"
)

const todoColumns = `id, title, created_by, created_at, updated_at`

// TodoStore reads and writes rows of the todos table.
type TodoStore struct {
	db *sql.DB
}

func NewTodoStore(db *sql.DB) *TodoStore {
	return &TodoStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (models.Todo, error) {
	var todo models.Todo
	err := row.Scan(&todo.ID, &todo.Title, &todo.CreatedBy, &todo.CreatedAt, &todo.UpdatedAt)
	return todo, err
}

func todoNotFound(id int) error {
	return &NotFoundError{Resource: "Todo", ID: strconv.Itoa(id)}
}

// List returns todos ordered by id.
func (s *TodoStore) List(ctx context.Context, page Page) ([]models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos ORDER BY id ASC`
	var args []any
	switch {
	case page.Limit > 0:
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, page.Limit, page.Offset)
	case page.Offset > 0:
		query += ` OFFSET $1`
		args = append(args, page.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan todo: %w", scanErr)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

// Get returns the todo with the given id.
func (s *TodoStore) Get(ctx context.Context, id int) (models.Todo, error) {
	todo, err := scanTodo(s.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, todoNotFound(id)
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("get todo %d: %w", id, err)
	}
	return todo, nil
}

// Create validates attrs and inserts a new todo.
func (s *TodoStore) Create(ctx context.Context, attrs models.TodoAttributes) (models.Todo, error) {
	var todo models.Todo
	attrs.Apply(&todo)
	if err := validateRecord(&todo); err != nil {
		return models.Todo{}, err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO todos (title, created_by) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		todo.Title, todo.CreatedBy,
	).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return models.Todo{}, fmt.Errorf("insert todo: %w", err)
	}

	return todo, nil
}

// Update merges attrs into the stored todo and saves it if the result is
// still valid. The row is locked for the duration of the merge.
func (s *TodoStore) Update(ctx context.Context, id int, attrs models.TodoAttributes) (models.Todo, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Todo{}, fmt.Errorf("begin todo update: %w", err)
	}
	defer tx.Rollback()

	todo, err := scanTodo(tx.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, todoNotFound(id)
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("lock todo %d: %w", id, err)
	}

	attrs.Apply(&todo)
	if err := validateRecord(&todo); err != nil {
		return models.Todo{}, err
	}

	err = tx.QueryRowContext(ctx,
		`UPDATE todos SET title = $1, created_by = $2, updated_at = NOW() WHERE id = $3 RETURNING updated_at`,
		todo.Title, todo.CreatedBy, id,
	).Scan(&todo.UpdatedAt)
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Todo{}, fmt.Errorf("commit todo update: %w", err)
	}
	return todo, nil
}

// Delete removes the todo with the given id.
func (s *TodoStore) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	if affected == 0 {
		return todoNotFound(id)
	}
	return nil
}

// Count returns the number of stored todos.
func (s *TodoStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return total, nil
}
