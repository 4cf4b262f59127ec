package database

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the database and verifies the connection. Supported drivers
// are "postgres" (production) and "sqlite3" (local development and tests).
func Connect(driver, dsn string) (*sqlx.DB, error) {
	return sqlx.Connect(driver, dsn)
}
