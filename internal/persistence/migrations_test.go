package persistence

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDB struct {
	failOn    string
	executed  []string
	committed []string
	rollbacks int
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	return &fakeTx{db: d}, nil
}

// fakeTx embeds pgx.Tx so only the methods the migrator calls need bodies.
type fakeTx struct {
	pgx.Tx
	db  *fakeDB
	sql string
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	t.db.executed = append(t.db.executed, sql)
	t.sql = sql
	if t.db.failOn != "" && strings.Contains(sql, t.db.failOn) {
		return pgconn.CommandTag{}, errors.New("syntax error at or near \"BROKEN\"")
	}
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.db.committed = append(t.db.committed, t.sql)
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.db.rollbacks++
	return nil
}

func writeMigrations(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func TestMigrator_AppliesInLexicalOrder(t *testing.T) {
	dir := writeMigrations(t, map[string]string{
		"002_features.sql": "CREATE TABLE b();",
		"001_init.sql":     "CREATE TABLE a();",
		"010_later.sql":    "CREATE TABLE c();",
		"README.md":        "not sql",
		"003_blank.sql":    "   \n",
	})
	var out bytes.Buffer
	db := &fakeDB{}

	result, err := NewMigrator(dir, &out, zap.NewNop()).Run(context.Background(), db)
	require.NoError(t, err)

	assert.Equal(t, []string{"001_init.sql", "002_features.sql", "010_later.sql"}, result.Applied)
	assert.Equal(t, []string{"003_blank.sql"}, result.Skipped)
	assert.Equal(t, []string{"CREATE TABLE a();", "CREATE TABLE b();", "CREATE TABLE c();"}, db.committed)
	assert.Contains(t, out.String(), "→ 001_init.sql ... OK")
	assert.Contains(t, out.String(), "All migrations applied successfully.")
}

func TestMigrator_StopsOnFirstFailure(t *testing.T) {
	dir := writeMigrations(t, map[string]string{
		"001_ok.sql":     "CREATE TABLE a();",
		"002_broken.sql": "BROKEN;",
		"003_never.sql":  "CREATE TABLE c();",
	})
	var out bytes.Buffer
	db := &fakeDB{failOn: "BROKEN"}

	result, err := NewMigrator(dir, &out, zap.NewNop()).Run(context.Background(), db)

	var migErr *MigrationError
	require.ErrorAs(t, err, &migErr)
	assert.Equal(t, "002_broken.sql", migErr.File)
	assert.Equal(t, []string{"001_ok.sql"}, result.Applied)
	assert.Equal(t, []string{"CREATE TABLE a();"}, db.committed)
	assert.Equal(t, 1, db.rollbacks)
	assert.NotContains(t, strings.Join(db.executed, "\n"), "CREATE TABLE c();")
	assert.Contains(t, out.String(), "→ 002_broken.sql ... FAILED")
}

func TestMigrator_NoFiles(t *testing.T) {
	dir := writeMigrations(t, nil)
	var out bytes.Buffer

	result, err := NewMigrator(dir, &out, zap.NewNop()).Run(context.Background(), &fakeDB{})
	require.NoError(t, err)
	assert.Empty(t, result.Applied)
	assert.Equal(t, "No migration files found.\n", out.String())
}

func TestMigrator_MissingDir(t *testing.T) {
	_, err := NewMigrator(filepath.Join(t.TempDir(), "nope"), nil, zap.NewNop()).Run(context.Background(), &fakeDB{})
	assert.ErrorIs(t, err, ErrMigrationsDirMissing)
}
