package database

import (
	"embed"
	"fmt"
	"log"
	"time"

	"blogsite/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/xo/dburl"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type MethodsDB interface {
	CloseDB() error
	RunMigrations() error
	HealthCheck() error
	GetDB() *DB
}

type DB struct {
	*sqlx.DB
	Driver string
}

// ConnectDB opens the database named by cfg.DB.URL. Both postgres:// and
// sqlite: URLs are accepted, see github.com/xo/dburl.
func ConnectDB(cfg *config.Config) (*DB, error) {
	u, err := dburl.Parse(cfg.DB.URL)
	if err != nil {
		return nil, fmt.Errorf("could not parse database url: %w", err)
	}

	log.Printf("connecting to database: driver=%s", u.Driver)

	db, err := sqlx.Connect(u.Driver, u.DSN)
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	dbStruct := NewDB(db, u.Driver)

	switch u.Driver {
	case DriverSQLite:
		// sqlite serializes writers anyway; one connection avoids "database is locked"
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	log.Printf("connected to %s", u.Driver)
	return dbStruct, nil
}

func NewDB(db *sqlx.DB, driver string) *DB {
	return &DB{DB: db, Driver: driver}
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations creates the accounts, posts and sessions tables for the
// active driver. Statements are idempotent.
func (db *DB) RunMigrations() error {
	migrationFilePath := fmt.Sprintf("migrations/%s.sql", db.Driver)

	migrationSQL, err := migrations.ReadFile(migrationFilePath)
	if err != nil {
		return fmt.Errorf("no migrations for driver %q: %w", db.Driver, err)
	}

	log.Printf("applying migrations from %s", migrationFilePath)

	_, err = db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	log.Println("migrations applied")
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}

func (db *DB) GetDB() *DB {
	return db
}
