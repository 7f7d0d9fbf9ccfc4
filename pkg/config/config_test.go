package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/effective-security/bedrockmcp/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"PORT", "AWS_REGION", "BEDROCK_MODEL", "HIVE_MIND_LIMIT",
		"SNOWFLAKE_ACCOUNT", "SNOWFLAKE_USER", "SNOWFLAKE_PASSWORD",
		"SNOWFLAKE_DATABASE", "SNOWFLAKE_WAREHOUSE",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, config.DefaultRegion, cfg.Bedrock.Region)
	assert.Equal(t, config.DefaultModel, cfg.Bedrock.Model)
	assert.Equal(t, 4096, cfg.Bedrock.MaxTokens)
	assert.Equal(t, "bedrock-2023-05-31", cfg.Bedrock.AnthropicVersion)
	assert.Equal(t, config.DriverSnowflake, cfg.HiveMind.Driver)
	assert.Equal(t, config.DefaultTable, cfg.HiveMind.Table)
	assert.Equal(t, 3, cfg.HiveMind.Limit)
	assert.False(t, cfg.Tools.StrictArguments)
	assert.False(t, cfg.Tools.ReportErrors)
	assert.Equal(t, config.EventsLog, cfg.Tools.Events)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7070")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("BEDROCK_MODEL", "anthropic.claude-3-haiku-20240307-v1:0")
	t.Setenv("SNOWFLAKE_ACCOUNT", "acct")
	t.Setenv("SNOWFLAKE_USER", "user")
	t.Setenv("SNOWFLAKE_PASSWORD", "secret")
	t.Setenv("SNOWFLAKE_DATABASE", "SOVEREIGN_MIND")
	t.Setenv("SNOWFLAKE_WAREHOUSE", "SOVEREIGN_MIND_WH")
	t.Setenv("HIVE_MIND_LIMIT", "7")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, "eu-west-1", cfg.Bedrock.Region)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", cfg.Bedrock.Model)
	assert.Equal(t, config.Snowflake{
		Account:   "acct",
		User:      "user",
		Password:  "secret",
		Database:  "SOVEREIGN_MIND",
		Warehouse: "SOVEREIGN_MIND_WH",
	}, cfg.HiveMind.Snowflake)
	assert.Equal(t, 7, cfg.HiveMind.Limit)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_SNOWFLAKE_PASSWORD", "from-env")

	cfg, err := config.Load("testdata/bedrock-mcp.yaml")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "us-west-2", cfg.Bedrock.Region)
	assert.Equal(t, "us.anthropic.claude-3-5-sonnet-20241022-v2:0", cfg.Bedrock.Model)
	assert.Equal(t, 1024, cfg.Bedrock.MaxTokens)
	assert.Equal(t, config.DriverSQLite, cfg.HiveMind.Driver)
	assert.Equal(t, "/tmp/hivemind.db", cfg.HiveMind.DSN)
	assert.Equal(t, "HIVE_MIND", cfg.HiveMind.Table)
	assert.Equal(t, 5, cfg.HiveMind.Limit)
	assert.Equal(t, "from-env", cfg.HiveMind.Snowflake.Password)
	assert.True(t, cfg.Tools.StrictArguments)
	assert.True(t, cfg.Tools.ReportErrors)
	assert.Equal(t, config.EventsVerbose, cfg.Tools.Events)

	// environment wins over the file
	t.Setenv("PORT", "6060")
	cfg, err = config.Load("testdata/bedrock-mcp.yaml")
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.ListenAddr)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := config.Load("testdata/missing.yaml")
	assert.ErrorContains(t, err, "failed to load testdata/missing.yaml")

	_, err = config.Load("testdata/invalid.yaml")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestLoad_StaticCredentials(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "creds.yaml")
	require.NoError(t, os.WriteFile(file, []byte("bedrock:\n  access_key_id: AKIDEXAMPLE\n"), 0o600))

	_, err := config.Load(file)
	assert.ErrorContains(t, err, "invalid configuration")

	require.NoError(t, os.WriteFile(file, []byte("bedrock:\n  access_key_id: AKIDEXAMPLE\n  secret_access_key: secret\n"), 0o600))
	cfg, err := config.Load(file)
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", cfg.Bedrock.AccessKeyID)
	assert.Equal(t, "secret", cfg.Bedrock.SecretAccessKey)
}
