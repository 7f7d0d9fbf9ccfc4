// Package hivemind retrieves the recent Hive Mind records and renders them
// as the context section of the system prompt.
package hivemind

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/bedrockmcp/pkg/metricskey"
	"github.com/effective-security/bedrockmcp/pkg/outcome"
	"github.com/effective-security/bedrockmcp/store"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/bedrockmcp/pkg", "hivemind")

// ErrNotConfigured is returned by the dialer when no store is configured.
var ErrNotConfigured = errors.New("hive mind store is not configured")

// Dialer opens a connection to the store.
type Dialer func(ctx context.Context) (store.Reader, error)

// Adapter holds the lazily established store connection.
// A failed dial leaves the connection unset and the next call dials again.
type Adapter struct {
	driver string
	dial   Dialer

	lock   sync.Mutex
	reader store.Reader
}

// New returns an Adapter, the driver name is used for logs and metrics.
func New(driver string, dial Dialer) *Adapter {
	return &Adapter{
		driver: driver,
		dial:   dial,
	}
}

func (a *Adapter) getReader(ctx context.Context) (store.Reader, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.reader != nil {
		return a.reader, nil
	}

	r, err := a.dial(ctx)
	if err != nil {
		level := xlog.ERROR
		if errors.Is(err, ErrNotConfigured) {
			level = xlog.DEBUG
		}
		logger.ContextKV(ctx, level,
			"reason", "dial",
			"driver", a.driver,
			"err", err.Error(),
		)
		return nil, err
	}
	a.reader = r
	return r, nil
}

// Connected returns true if the store connection is established,
// it dials the store if the connection was not established yet.
func (a *Adapter) Connected(ctx context.Context) bool {
	_, err := a.getReader(ctx)
	return err == nil
}

// Recent returns the rendered context for at most limit recent records.
func (a *Adapter) Recent(ctx context.Context, limit int) outcome.Result {
	started := time.Now()
	defer metricskey.PerfContextQuery.MeasureSince(started, a.driver)

	r, err := a.getReader(ctx)
	if err != nil {
		res := outcome.Unavailable(err)
		metricskey.StatsContextQueriesFailed.IncrCounter(1, a.driver, res.Kind.String())
		return res
	}

	list, err := r.Recent(ctx, limit)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"reason", "recent",
			"driver", a.driver,
			"err", err.Error(),
		)
		res := outcome.Failed(err)
		metricskey.StatsContextQueriesFailed.IncrCounter(1, a.driver, res.Kind.String())
		return res
	}

	metricskey.StatsContextQueriesSucceeded.IncrCounter(1, a.driver)
	return outcome.Success(Format(list))
}

// Close closes the store connection, if established.
func (a *Adapter) Close() error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.reader == nil {
		return nil
	}
	err := a.reader.Close()
	a.reader = nil
	return err
}

// Format renders records as `<source> (<category>): <summary>` lines.
func Format(records []store.Record) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.Source + " (" + r.Category + "): " + r.Summary
	}
	return strings.Join(lines, "\n")
}
