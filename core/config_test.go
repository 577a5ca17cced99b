package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENV", "")
		conf, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "DEV", conf.Env)
		assert.True(t, conf.Debug, "debug by default while developing")
		assert.Equal(t, EngineSQLite, conf.Database.Engine)
		assert.Equal(t, "attendance.db", conf.Database.Path)
		assert.Equal(t, ".", conf.ExportDir)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("ENV", "test")
		t.Setenv("TEST_DB_ENGINE", "Postgres")
		t.Setenv("TEST_DB_HOST", "db")
		t.Setenv("TEST_DB_PORT", "5433")
		t.Setenv("TEST_EXPORTDIR", "/tmp/reports")
		t.Setenv("TEST_PROFILE", "true")
		conf, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "TEST", conf.Env)
		assert.True(t, conf.TestMode)
		assert.False(t, conf.Debug)
		assert.True(t, conf.Profile)
		assert.Equal(t, EnginePostgres, conf.Database.Engine)
		assert.Equal(t, "db:5433", conf.Database.Address())
		assert.Equal(t, "/tmp/reports", conf.ExportDir)
	})

	t.Run("unknown engine", func(t *testing.T) {
		t.Setenv("ENV", "PROD")
		t.Setenv("PROD_DB_ENGINE", "oracle")
		_, err := NewConfig()
		assert.EqualError(t, err, `unsupported database engine "oracle"`)
	})
}
