package persistence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// DefaultMigrationsDir is the fixed directory scanned for *.sql files.
const DefaultMigrationsDir = "migrations"

// ErrMigrationsDirMissing is returned when the migrations directory does not exist.
var ErrMigrationsDirMissing = errors.New("migrations directory not found")

// TxBeginner is satisfied by *pgx.Conn and *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// MigrationError identifies the file that failed. Earlier files stay committed.
type MigrationError struct {
	File string
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("apply migration %s: %v", e.File, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// MigrationResult summarizes a run.
type MigrationResult struct {
	Applied []string
	Skipped []string
}

// Migrator applies SQL files in lexical order, one transaction per file.
type Migrator struct {
	dir    string
	out    io.Writer
	logger *zap.Logger
}

// NewMigrator builds a migrator that prints per-file status to out.
func NewMigrator(dir string, out io.Writer, logger *zap.Logger) *Migrator {
	if dir == "" {
		dir = DefaultMigrationsDir
	}
	if out == nil {
		out = io.Discard
	}
	return &Migrator{dir: dir, out: out, logger: logger.Named("migrations")}
}

// Files lists the *.sql files in the migrations directory in lexical order.
func (m *Migrator) Files() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMigrationsDirMissing, m.dir)
		}
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		filenames = append(filenames, entry.Name())
	}
	sort.Strings(filenames)
	return filenames, nil
}

// Run applies every migration file. It stops at the first failure after rolling
// back that file's transaction.
func (m *Migrator) Run(ctx context.Context, db TxBeginner) (MigrationResult, error) {
	var result MigrationResult

	filenames, err := m.Files()
	if err != nil {
		return result, err
	}
	if len(filenames) == 0 {
		fmt.Fprintln(m.out, "No migration files found.")
		return result, nil
	}
	if db == nil {
		m.logger.Warn("no database available; skipping migrations")
		return result, nil
	}

	fmt.Fprintf(m.out, "Applying %d migrations...\n", len(filenames))
	for _, name := range filenames {
		content, err := os.ReadFile(filepath.Join(m.dir, name))
		if err != nil {
			return result, fmt.Errorf("read migration %s: %w", name, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		fmt.Fprintf(m.out, "→ %s ... ", name)
		if err := applyInTx(ctx, db, string(content)); err != nil {
			fmt.Fprintf(m.out, "FAILED\n%v\n", err)
			m.logger.Error("migration failed", zap.String("file", name), zap.Error(err))
			return result, &MigrationError{File: name, Err: err}
		}
		fmt.Fprintln(m.out, "OK")
		m.logger.Info("migration applied", zap.String("file", name))
		result.Applied = append(result.Applied, name)
	}

	fmt.Fprintln(m.out, "All migrations applied successfully.")
	return result, nil
}

func applyInTx(ctx context.Context, db TxBeginner, sql string) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if _, err = tx.Exec(ctx, sql); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
