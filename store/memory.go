package store

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process Reader, used for local runs and tests.
type Memory struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryStore returns a Memory store seeded with records.
func NewMemoryStore(records ...Record) *Memory {
	return &Memory{records: slices.Clone(records)}
}

// Add appends a record.
func (m *Memory) Add(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// Recent implements Reader.
func (m *Memory) Recent(_ context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	m.mu.RLock()
	list := slices.Clone(m.records)
	m.mu.RUnlock()

	// newest first; records added later win ties
	slices.Reverse(list)
	slices.SortStableFunc(list, func(a, b Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Close implements Reader.
func (m *Memory) Close() error {
	return nil
}

var _ Writer = (*Memory)(nil)
