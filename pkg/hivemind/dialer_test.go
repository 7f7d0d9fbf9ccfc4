package hivemind_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/effective-security/bedrockmcp/pkg/config"
	"github.com/effective-security/bedrockmcp/pkg/hivemind"
	"github.com/effective-security/bedrockmcp/pkg/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDialer(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		dial, err := hivemind.NewDialer(&config.HiveMind{Driver: config.DriverNone})
		require.NoError(t, err)
		a := hivemind.New(config.DriverNone, dial)
		res := a.Recent(ctx, 3)
		assert.Equal(t, outcome.KindUnavailable, res.Kind)
		assert.ErrorIs(t, res.Err, hivemind.ErrNotConfigured)
		assert.False(t, a.Connected(ctx))
	})

	t.Run("memory", func(t *testing.T) {
		dial, err := hivemind.NewDialer(&config.HiveMind{Driver: config.DriverMemory})
		require.NoError(t, err)
		a := hivemind.New(config.DriverMemory, dial)
		res := a.Recent(ctx, 3)
		require.True(t, res.OK())
		assert.Empty(t, res.Text)
	})

	t.Run("memory seed", func(t *testing.T) {
		dial, err := hivemind.NewDialer(&config.HiveMind{Driver: config.DriverMemory, SeedFile: "../../store/testdata/records.yaml"})
		require.NoError(t, err)
		a := hivemind.New(config.DriverMemory, dial)
		res := a.Recent(ctx, 1)
		require.True(t, res.OK())
		assert.Equal(t, "gemini (note): Weekly portfolio sync moved to Thursday", res.Text)

		_, err = hivemind.NewDialer(&config.HiveMind{Driver: config.DriverMemory, SeedFile: "missing.yaml"})
		assert.Error(t, err)
	})

	t.Run("snowflake not configured", func(t *testing.T) {
		dial, err := hivemind.NewDialer(&config.HiveMind{Driver: config.DriverSnowflake, Table: config.DefaultTable})
		require.NoError(t, err)
		a := hivemind.New(config.DriverSnowflake, dial)
		res := a.Recent(ctx, 3)
		assert.Equal(t, outcome.KindUnavailable, res.Kind)
		assert.Empty(t, res.Text)
	})

	t.Run("redis bad url", func(t *testing.T) {
		dial, err := hivemind.NewDialer(&config.HiveMind{Driver: config.DriverRedis, Redis: config.Redis{URL: "::"}})
		require.NoError(t, err)
		_, err = dial(ctx)
		assert.Error(t, err)
	})

	t.Run("sqlite", func(t *testing.T) {
		dsn := filepath.Join(t.TempDir(), "hm.db")
		db, err := sql.Open("sqlite", dsn)
		require.NoError(t, err)
		_, err = db.Exec(`CREATE TABLE HIVE_MIND (SOURCE TEXT, CATEGORY TEXT, SUMMARY TEXT, CREATED_AT TEXT)`)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO HIVE_MIND VALUES
			('grok', 'decision', 'old', '2025-01-01T00:00:00Z'),
			('claude', 'note', 'new', '2025-02-01T00:00:00Z')`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		dial, err := hivemind.NewDialer(&config.HiveMind{Driver: config.DriverSQLite, DSN: dsn, Table: "HIVE_MIND"})
		require.NoError(t, err)
		a := hivemind.New(config.DriverSQLite, dial)
		defer a.Close()

		res := a.Recent(ctx, 3)
		require.True(t, res.OK(), res.Detail())
		assert.Equal(t, "claude (note): new\ngrok (decision): old", res.Text)
		assert.True(t, a.Connected(ctx))
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := hivemind.NewDialer(&config.HiveMind{Driver: "postgres"})
		assert.EqualError(t, err, "unsupported hive mind driver: postgres")
	})
}
