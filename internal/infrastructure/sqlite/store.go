package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // driver sqlite en Go puro
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MemoryPath abre una BD en memoria, útil para tests y desarrollo local.
const MemoryPath = ":memory:"

// Open abre la BD SQLite en path con claves foráneas activadas. SQLite serializa las
// escrituras, así que el pool se limita a una conexión: cada transacción de petición la
// toma en exclusiva y la devuelve al terminar.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "customer_orders.db"
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func dsn(path string) string {
	name := "file:" + path
	if path == MemoryPath {
		name = "file::memory:"
	}
	params := []string{"_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)"}
	return name + "?" + strings.Join(params, "&")
}

// Migrate aplica las migraciones embebidas sobre db. No se llama a m.Close porque
// cerraría db, que sigue en uso por la aplicación.
func Migrate(db *sql.DB) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("init migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
