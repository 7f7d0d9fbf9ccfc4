package store

import (
	"context"
	"os"
	"slices"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Writer is a Reader that accepts new records.
type Writer interface {
	Reader
	// Add stores the record as the newest one.
	Add(ctx context.Context, rec Record) error
}

// LoadRecords reads a YAML list of records.
func LoadRecords(file string) ([]Record, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var list []Record
	if err = yaml.Unmarshal(b, &list); err != nil {
		return nil, errors.Wrapf(err, "failed to parse records: %s", file)
	}
	return list, nil
}

// Seed adds the records to an empty store, oldest first,
// and returns the number of records added.
// A store that already has records is left unchanged.
func Seed(ctx context.Context, w Writer, records []Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	existing, err := w.Recent(ctx, 1)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	list := slices.Clone(records)
	slices.SortStableFunc(list, func(a, b Record) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	for i, rec := range list {
		if err = w.Add(ctx, rec); err != nil {
			return i, err
		}
	}
	return len(list), nil
}
