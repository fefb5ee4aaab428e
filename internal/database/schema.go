package database

import (
	"database/sql"
	"fmt"
	"log"
)

// CreateTables creates all required tables in the database
func CreateTables(db *sql.DB) error {
	if err := createUsersTable(db); err != nil {
		return err
	}
	return createTodosTable(db)
}

func createUsersTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_digest VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	log.Println("Users table ready")
	return nil
}

func createTodosTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS todos (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		created_by VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS todos_created_by_idx ON todos(created_by)`); err != nil {
		return fmt.Errorf("ensure todos created_by index: %w", err)
	}

	log.Println("Todos table ready")
	return nil
}
