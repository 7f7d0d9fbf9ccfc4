package hivemind

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/bedrockmcp/pkg/config"
	"github.com/effective-security/bedrockmcp/store"
	"github.com/effective-security/xlog"
	"github.com/snowflakedb/gosnowflake"
)

// NewDialer returns the Dialer for the configured driver.
// The seed file, if configured, is added to an empty redis or memory store.
func NewDialer(cfg *config.HiveMind) (Dialer, error) {
	var seed []store.Record
	if cfg.SeedFile != "" {
		list, err := store.LoadRecords(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		seed = list
	}

	switch cfg.Driver {
	case "", config.DriverNone:
		return func(context.Context) (store.Reader, error) {
			return nil, ErrNotConfigured
		}, nil

	case config.DriverSnowflake:
		sf := &gosnowflake.Config{
			Account:   cfg.Snowflake.Account,
			User:      cfg.Snowflake.User,
			Password:  cfg.Snowflake.Password,
			Database:  cfg.Snowflake.Database,
			Warehouse: cfg.Snowflake.Warehouse,
		}
		return func(ctx context.Context) (store.Reader, error) {
			r, err := store.OpenSnowflake(ctx, sf, cfg.Table)
			if err != nil {
				return nil, err
			}
			return r, nil
		}, nil

	case config.DriverSQLite:
		return func(ctx context.Context) (store.Reader, error) {
			r, err := store.OpenSQL(ctx, config.DriverSQLite, cfg.DSN, cfg.Table)
			if err != nil {
				return nil, err
			}
			return r, nil
		}, nil

	case config.DriverRedis:
		return func(ctx context.Context) (store.Reader, error) {
			r, err := store.OpenRedis(ctx, cfg.Redis.URL, cfg.Redis.Prefix)
			if err != nil {
				return nil, err
			}
			if err = seedStore(ctx, config.DriverRedis, r, seed); err != nil {
				_ = r.Close()
				return nil, err
			}
			return r, nil
		}, nil

	case config.DriverMemory:
		mem := store.NewMemoryStore()
		if err := seedStore(context.Background(), config.DriverMemory, mem, seed); err != nil {
			return nil, err
		}
		return func(context.Context) (store.Reader, error) {
			return mem, nil
		}, nil
	}
	return nil, errors.Errorf("unsupported hive mind driver: %s", cfg.Driver)
}

func seedStore(ctx context.Context, driver string, w store.Writer, seed []store.Record) error {
	added, err := store.Seed(ctx, w, seed)
	if err != nil {
		return errors.WithMessagef(err, "failed to seed %s store", driver)
	}
	if added > 0 {
		logger.ContextKV(ctx, xlog.INFO,
			"reason", "seed",
			"driver", driver,
			"records", added,
		)
	}
	return nil
}
