package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/snowflakedb/gosnowflake"
)

// SnowflakeDriver is the database/sql driver name registered by gosnowflake.
const SnowflakeDriver = "snowflake"

// OpenSnowflake connects to Snowflake and returns a reader for the table.
func OpenSnowflake(ctx context.Context, cfg *gosnowflake.Config, table string) (*SQLReader, error) {
	if cfg.Account == "" {
		return nil, errors.New("snowflake account is not configured")
	}
	dsn, err := gosnowflake.DSN(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build snowflake DSN")
	}
	return OpenSQL(ctx, SnowflakeDriver, dsn, table)
}
