// Package session implements the in-memory workout log owned by a single
// session. The log is append-only and lives only as long as its owner; it is
// never persisted.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/fit-advisor/internal/domain"
)

// Log is an append-only, ordered sequence of workout records. The design
// assumes one writer per session; the lock keeps concurrent readers (web
// handlers rendering history while a log request runs) safe.
type Log struct {
	mu      sync.RWMutex
	records []domain.WorkoutRecord
}

// NewLog creates an empty session log
func NewLog() *Log {
	return &Log{records: make([]domain.WorkoutRecord, 0)}
}

// Append adds a record to the end of the log, assigning an ID when the
// record has none. Existing entries are never removed or reordered.
func (l *Log) Append(record domain.WorkoutRecord) domain.WorkoutRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	l.records = append(l.records, record)
	return record
}

// Len returns the number of records
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// All returns a copy of every record in append order
func (l *Log) All() []domain.WorkoutRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.WorkoutRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Tail returns the last n records in original append order
func (l *Log) Tail(n int) []domain.WorkoutRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 {
		return []domain.WorkoutRecord{}
	}
	start := len(l.records) - n
	if start < 0 {
		start = 0
	}
	out := make([]domain.WorkoutRecord, len(l.records)-start)
	copy(out, l.records[start:])
	return out
}

// CaloriesByActivity groups records by activity, summing calories per group.
// Map iteration order is not stable; consumers should sort for display.
func (l *Log) CaloriesByActivity() map[string]float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	totals := make(map[string]float64)
	for _, r := range l.records {
		totals[r.Activity] += r.Calories
	}
	return totals
}

// TotalCalories sums calories across every record
func (l *Log) TotalCalories() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total float64
	for _, r := range l.records {
		total += r.Calories
	}
	return total
}
