// Package store provides readers for the Hive Mind records that are injected
// into the system prompt as recent context.
package store

import (
	"context"
	"time"

	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/bedrockmcp", "store")

//go:generate mockgen -source=store.go -destination=../mocks/mockstore/store_mock.gen.go -package mockstore

// Record is a single Hive Mind entry.
type Record struct {
	Source    string    `json:"source" yaml:"source" fake:"{company}"`
	Category  string    `json:"category" yaml:"category" fake:"{buzzword}"`
	Summary   string    `json:"summary" yaml:"summary" fake:"{sentence:8}"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Reader provides read-only access to the most recent records.
type Reader interface {
	// Recent returns at most limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
	// Close releases the underlying connection.
	Close() error
}
