package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearMigrationEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"POSTGRES_URL_NON_POOLING", "POSTGRES_PRISMA_URL", "POSTGRES_URL", "POSTGRES_DSN"} {
		t.Setenv(key, "")
	}
}

func TestMigrationDSN_FallbackOrder(t *testing.T) {
	clearMigrationEnv(t)

	_, err := MigrationDSN()
	require.ErrorIs(t, err, ErrMissingMigrationDSN)

	t.Setenv("POSTGRES_URL", "postgres://c")
	dsn, err := MigrationDSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://c", dsn)

	t.Setenv("POSTGRES_PRISMA_URL", "postgres://b")
	dsn, err = MigrationDSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://b", dsn)

	t.Setenv("POSTGRES_URL_NON_POOLING", "postgres://a")
	dsn, err = MigrationDSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://a", dsn)
}

func TestMigrationDSN_IgnoresServerOnlyDSN(t *testing.T) {
	clearMigrationEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://server")

	_, err := MigrationDSN()
	assert.ErrorIs(t, err, ErrMissingMigrationDSN)
}

func TestLoad_BackendConfigured(t *testing.T) {
	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "")
	t.Setenv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Backend.Configured())

	t.Setenv("SUPABASE_ANON_KEY", "anon")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.Backend.Configured())
	assert.Equal(t, "https://example.supabase.co", cfg.Backend.URL)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMIN_FALLBACK_PATH", "")
	t.Setenv("CHAT_MODEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.Auth.AdminFallbackPath)
	assert.Equal(t, "meta-llama/llama-3.1-8b-instruct", cfg.Chat.Model)
	assert.Equal(t, "0.0.0.0:8080", AppConfig{Host: "0.0.0.0", Port: "8080"}.Addr())
}
