package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"todoapi/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var todoRowColumns = []string{"id", "title", "created_by", "created_at", "updated_at"}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func strPtr(v string) *string { return &v }

func TestTodoStoreList(t *testing.T) {
	db, mock := setupMockDB(t)
	now := time.Now()

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, title, created_by, created_at, updated_at FROM todos ORDER BY id ASC`)).
		WillReturnRows(
			sqlmock.NewRows(todoRowColumns).
				AddRow(1, "Buy milk", "7", now, now).
				AddRow(2, "Walk dog", "7", now, now),
		)

	todos, err := NewTodoStore(db).List(context.Background(), Page{})
	require.NoError(t, err)
	require.Len(t, todos, 2)
	require.Equal(t, "Walk dog", todos[1].Title)
}

func TestTodoStoreListEmptyIsNotNil(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT .* FROM todos ORDER BY id ASC`).WillReturnRows(sqlmock.NewRows(todoRowColumns))

	todos, err := NewTodoStore(db).List(context.Background(), Page{})
	require.NoError(t, err)
	require.NotNil(t, todos)
	require.Empty(t, todos)
}

func TestTodoStoreListWithPage(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.
		ExpectQuery(`FROM todos ORDER BY id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows(todoRowColumns))

	_, err := NewTodoStore(db).List(context.Background(), Page{Limit: 5, Offset: 10})
	require.NoError(t, err)
}

func TestTodoStoreListOffsetOnly(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.
		ExpectQuery(`FROM todos ORDER BY id ASC OFFSET \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(todoRowColumns))

	_, err := NewTodoStore(db).List(context.Background(), Page{Offset: 3})
	require.NoError(t, err)
}

func TestTodoStoreGetNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.
		ExpectQuery(`FROM todos WHERE id = \$1`).
		WithArgs(100).
		WillReturnError(sql.ErrNoRows)

	_, err := NewTodoStore(db).Get(context.Background(), 100)
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualError(t, err, "Couldn't find Todo with 'id'=100")
}

func TestTodoStoreCreate(t *testing.T) {
	db, mock := setupMockDB(t)
	now := time.Now()

	mock.
		ExpectQuery(regexp.QuoteMeta(`INSERT INTO todos (title, created_by) VALUES ($1, $2) RETURNING id, created_at, updated_at`)).
		WithArgs("Learn Elm", "7").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))

	todo, err := NewTodoStore(db).Create(context.Background(), models.TodoAttributes{
		Title:     strPtr("Learn Elm"),
		CreatedBy: strPtr("7"),
	})
	require.NoError(t, err)
	require.Equal(t, 11, todo.ID)
	require.Equal(t, "Learn Elm", todo.Title)
	require.Equal(t, "7", todo.CreatedBy)
}

func TestTodoStoreCreateRejectsBlankFields(t *testing.T) {
	db, _ := setupMockDB(t)

	_, err := NewTodoStore(db).Create(context.Background(), models.TodoAttributes{Title: strPtr("   ")})

	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, []FieldError{
		{Field: "title", Reason: "can't be blank"},
		{Field: "created_by", Reason: "can't be blank"},
	}, invalid.Fields)
	require.EqualError(t, err, "Validation failed: Title can't be blank, Created by can't be blank")
}

func TestTodoStoreUpdate(t *testing.T) {
	db, mock := setupMockDB(t)
	created := time.Now().Add(-time.Hour)
	updated := time.Now()

	mock.ExpectBegin()
	mock.
		ExpectQuery(`FROM todos WHERE id = \$1 FOR UPDATE`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(todoRowColumns).AddRow(3, "Groceries", "7", created, created))
	mock.
		ExpectQuery(regexp.QuoteMeta(`UPDATE todos SET title = $1, created_by = $2, updated_at = NOW() WHERE id = $3 RETURNING updated_at`)).
		WithArgs("Shopping", "7", 3).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))
	mock.ExpectCommit()

	todo, err := NewTodoStore(db).Update(context.Background(), 3, models.TodoAttributes{Title: strPtr("Shopping")})
	require.NoError(t, err)
	require.Equal(t, "Shopping", todo.Title)
	require.Equal(t, "7", todo.CreatedBy)
	require.True(t, todo.UpdatedAt.Equal(updated))
}

func TestTodoStoreUpdateNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.
		ExpectQuery(`FROM todos WHERE id = \$1 FOR UPDATE`).
		WithArgs(100).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := NewTodoStore(db).Update(context.Background(), 100, models.TodoAttributes{Title: strPtr("Shopping")})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTodoStoreUpdateRevalidatesMergedRecord(t *testing.T) {
	db, mock := setupMockDB(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.
		ExpectQuery(`FROM todos WHERE id = \$1 FOR UPDATE`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(todoRowColumns).AddRow(3, "Groceries", "7", now, now))
	mock.ExpectRollback()

	_, err := NewTodoStore(db).Update(context.Background(), 3, models.TodoAttributes{Title: strPtr("")})
	require.EqualError(t, err, "Validation failed: Title can't be blank")
}

func TestTodoStoreDelete(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.
		ExpectExec(`DELETE FROM todos WHERE id = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewTodoStore(db).Delete(context.Background(), 4))
}

func TestTodoStoreDeleteNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.
		ExpectExec(`DELETE FROM todos WHERE id = \$1`).
		WithArgs(100).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, NewTodoStore(db).Delete(context.Background(), 100), ErrNotFound)
}

func TestTodoStoreCount(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.
		ExpectQuery(`SELECT COUNT\(\*\) FROM todos`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	total, err := NewTodoStore(db).Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 10, total)
}

func TestUserStoreCreate(t *testing.T) {
	db, mock := setupMockDB(t)
	now := time.Now()

	mock.
		ExpectQuery(`INSERT INTO users \(name, email, password_digest\)`).
		WithArgs("Ada", "ada@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))

	user, err := NewUserStore(db).Create(context.Background(), models.NewUser{
		Name:     "Ada",
		Email:    " Ada@Example.com ",
		Password: "Secret123",
	})
	require.NoError(t, err)
	require.Equal(t, 7, user.ID)
	require.Equal(t, "ada@example.com", user.Email)
	require.NotEqual(t, "Secret123", user.PasswordDigest)
}

func TestUserStoreCreateValidation(t *testing.T) {
	db, _ := setupMockDB(t)

	_, err := NewUserStore(db).Create(context.Background(), models.NewUser{Email: "nope", Password: "123"})
	require.EqualError(t, err, "Validation failed: Name can't be blank, Email is invalid, Password is too short (minimum is 6 characters)")
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.
		ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := NewUserStore(db).Create(context.Background(), models.NewUser{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "Secret123",
	})
	require.EqualError(t, err, "Validation failed: Email has already been taken")
}

func TestUserStoreFindByEmailNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.
		ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := NewUserStore(db).FindByEmail(context.Background(), "Ghost@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}
