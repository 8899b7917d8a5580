package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, DefaultFilesDatabasePath, cfg.Files.DatabasePath)
	assert.True(t, cfg.Files.AtomicWrites)
	assert.Equal(t, DefaultCatalogDatabasePath, cfg.Catalog.DatabasePath)
	assert.Equal(t, 7, cfg.Catalog.LoanDays)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionLifetime)
	assert.Equal(t, "0 8 * * *", cfg.OverdueReport.Schedule)
	assert.Empty(t, cfg.Log.File)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FILES_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("FILES_ATOMIC_WRITES", "false")
	t.Setenv("CATALOG_LOAN_DAYS", "14")
	t.Setenv("PORT", "9000")

	cfg := NewConfig()

	assert.Equal(t, "/tmp/other.db", cfg.Files.DatabasePath)
	assert.False(t, cfg.Files.AtomicWrites)
	assert.Equal(t, 14, cfg.Catalog.LoanDays)
	assert.Equal(t, int32(9000), cfg.HTTP.Port)
}
