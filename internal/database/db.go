package database

import (
	"database/sql"
	"fmt"
	"log"

	"todoapi/internal/config"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL, sizes the pool and verifies the connection.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	log.Printf("Connecting to database: host=%s port=%s user=%s db=%s sslmode=%s", cfg.Host, cfg.Port, cfg.User, cfg.Name, cfg.SSLMode)

	db, err := sql.Open("postgres", ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Println("Connected to database successfully")
	return db, nil
}

// ConnString builds a lib/pq keyword/value connection string.
func ConnString(cfg config.DBConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}
