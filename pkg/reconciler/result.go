package reconciler

import (
	"fmt"
	"time"

	"github.com/jpbowler97/airtable-csv-sync/pkg/records"
)

// Result represents the outcome of a reconciliation run.
type Result struct {
	Operations []Operation

	// Metadata about the run
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation run.
type ResultMetadata struct {
	// StartTime when reconciliation started
	StartTime time.Time

	// EndTime when reconciliation completed
	EndTime time.Time

	// Duration of the reconciliation
	Duration time.Duration

	// Statistics about the classified operations
	Stats ResultStatistics
}

// ResultStatistics counts the classified operations by kind and target.
type ResultStatistics struct {
	CreatesCSV      int
	CreatesAirtable int
	UpdatesCSV      int
	UpdatesAirtable int
	InSync          int
}

// Total returns the number of emails classified.
func (s ResultStatistics) Total() int {
	return s.CreatesCSV + s.CreatesAirtable + s.UpdatesCSV + s.UpdatesAirtable + s.InSync
}

// HasChanges returns true if any operation other than NONE was produced.
func (r *Result) HasChanges() bool {
	return r.Metadata.Stats.Total() > r.Metadata.Stats.InSync
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	if !r.HasChanges() {
		return fmt.Sprintf("Compared %d contacts. Both sides in agreement.", s.Total())
	}
	return fmt.Sprintf("Compared %d contacts: %d creates, %d updates, %d in sync.",
		s.Total(),
		s.CreatesCSV+s.CreatesAirtable,
		s.UpdatesCSV+s.UpdatesAirtable,
		s.InSync)
}

// Run reconciles both record sets and wraps the operations with timing
// and per-kind statistics for reporting.
func Run(local, remote records.Set) (*Result, error) {
	result := &Result{
		Metadata: ResultMetadata{StartTime: time.Now()},
	}

	ops, err := Reconcile(local, remote)
	if err != nil {
		return nil, err
	}

	result.Operations = ops
	for _, op := range ops {
		switch {
		case op.Kind == KindCreate && op.Target == TargetCSV:
			result.Metadata.Stats.CreatesCSV++
		case op.Kind == KindCreate && op.Target == TargetAirtable:
			result.Metadata.Stats.CreatesAirtable++
		case op.Kind == KindUpdate && op.Target == TargetCSV:
			result.Metadata.Stats.UpdatesCSV++
		case op.Kind == KindUpdate && op.Target == TargetAirtable:
			result.Metadata.Stats.UpdatesAirtable++
		default:
			result.Metadata.Stats.InSync++
		}
	}

	result.Metadata.EndTime = time.Now()
	result.Metadata.Duration = result.Metadata.EndTime.Sub(result.Metadata.StartTime)
	return result, nil
}
