// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UnitFailure records why one unit of a batch failed.
type UnitFailure struct {
	ID    uuid.UUID
	Error string
}

// BatchResult collects per-unit outcomes of a sweep over leases or
// properties. A failing unit never aborts the batch.
type BatchResult struct {
	Job        string
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  []uuid.UUID
	Failed     []UnitFailure
	Skipped    []uuid.UUID // claimed by another worker
	Canceled   bool        // stopped before every unit was scheduled
}

// NewBatchResult starts a result for the named job.
func NewBatchResult(job string, startedAt time.Time) *BatchResult {
	return &BatchResult{
		Job:       job,
		StartedAt: startedAt,
	}
}

// RecordSuccess marks a unit as completed.
func (b *BatchResult) RecordSuccess(id uuid.UUID) {
	b.Succeeded = append(b.Succeeded, id)
}

// RecordFailure marks a unit as failed.
func (b *BatchResult) RecordFailure(id uuid.UUID, err error) {
	b.Failed = append(b.Failed, UnitFailure{ID: id, Error: err.Error()})
}

// RecordSkip marks a unit as left for another worker.
func (b *BatchResult) RecordSkip(id uuid.UUID) {
	b.Skipped = append(b.Skipped, id)
}

// Total returns the number of units that were scheduled.
func (b *BatchResult) Total() int {
	return len(b.Succeeded) + len(b.Failed) + len(b.Skipped)
}

// HasFailures reports whether any unit failed.
func (b *BatchResult) HasFailures() bool {
	return len(b.Failed) > 0
}
