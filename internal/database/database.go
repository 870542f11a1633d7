package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wikiquiz/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"
)

// NewSQLXSQLiteDB opens (creating if absent) the SQLite database at path.
func NewSQLXSQLiteDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// SQLite serializes writers internally; a single connection avoids
	// SQLITE_BUSY under concurrent inserts.
	db.SetMaxOpenConns(1)

	logger.Get().Info("Connected to SQLite database", zap.String("path", path))
	return db, nil
}

// RunMigrations executes every *.up.sql file in dir, in lexical order.
// Statements are idempotent (CREATE TABLE IF NOT EXISTS), so running on every
// startup is safe.
func RunMigrations(db *sqlx.DB, dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	var names []string
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".up.sql") {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}
		logger.Get().Info("Executed migration", zap.String("file", name))
	}

	return nil
}
