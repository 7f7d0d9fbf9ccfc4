package store

import (
	"context"
	"database/sql"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"

	// sqlite driver for local deployments and tests
	_ "modernc.org/sqlite"
)

// ErrInvalidTable is returned when the configured table name is not a plain,
// optionally schema-qualified, identifier.
var ErrInvalidTable = errors.New("invalid table name")

var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*){0,2}$`)

// SQLReader reads records from a table with
// SOURCE, CATEGORY, SUMMARY and CREATED_AT columns.
type SQLReader struct {
	db    *sql.DB
	query string
}

// NewSQLReader returns a reader for the table over an open connection.
func NewSQLReader(db *sql.DB, table string) (*SQLReader, error) {
	if !tableNameRegex.MatchString(table) {
		return nil, errors.WithMessagef(ErrInvalidTable, "%q", table)
	}
	return &SQLReader{
		db:    db,
		query: "SELECT SOURCE, CATEGORY, SUMMARY FROM " + table + " ORDER BY CREATED_AT DESC LIMIT ",
	}, nil
}

// OpenSQL opens a connection with the registered driver and verifies it,
// the connection is closed if the table name is invalid or the ping fails.
func OpenSQL(ctx context.Context, driver, dsn, table string) (*SQLReader, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", driver)
	}

	r, err := NewSQLReader(db, table)
	if err == nil {
		err = errors.Wrapf(db.PingContext(ctx), "failed to connect to %s", driver)
	}
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.ContextKV(ctx, xlog.INFO, "status", "connected", "driver", driver, "table", table)
	return r, nil
}

// Recent implements Reader.
func (r *SQLReader) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	// LIMIT is not bindable on every driver; limit is an int
	rows, err := r.db.QueryContext(ctx, r.query+strconv.Itoa(limit))
	if err != nil {
		return nil, errors.Wrap(err, "failed to query records")
	}
	defer rows.Close()

	var list []Record
	for rows.Next() {
		var source, category, summary sql.NullString
		if err := rows.Scan(&source, &category, &summary); err != nil {
			return nil, errors.Wrap(err, "failed to scan record")
		}
		list = append(list, Record{
			Source:   source.String,
			Category: category.String,
			Summary:  summary.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read records")
	}
	return list, nil
}

// Close implements Reader.
func (r *SQLReader) Close() error {
	return r.db.Close()
}

var _ Reader = (*SQLReader)(nil)
