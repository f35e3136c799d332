package coverage

import (
	"fmt"

	"dealgraph.app/insight/internal/model"
)

// FilterAll selects every record regardless of status.
const FilterAll = "all"

// ValidationError reports a structural violation in the use-case catalog.
// Violations are surfaced immediately and never silently repaired.
type ValidationError struct {
	RecordID string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.RecordID == "" {
		return fmt.Sprintf("invalid catalog: %s", e.Reason)
	}
	return fmt.Sprintf("invalid catalog record %q: %s", e.RecordID, e.Reason)
}

// AggregateStats holds the derived per-status rollups for one catalog.
// Always recomputed, never stored: the ledger is the sole writer.
type AggregateStats struct {
	TotalRecords int
	TotalEmails  int
	RecordCounts map[model.CoverageStatus]int
	EmailCounts  map[model.CoverageStatus]int
}

// Ledger owns an ordered use-case catalog and exposes derived, read-only
// views over it. It never mutates records.
type Ledger struct {
	records []model.CoverageRecord
}

func NewLedger(records []model.CoverageRecord) *Ledger {
	owned := make([]model.CoverageRecord, len(records))
	copy(owned, records)
	return &Ledger{records: owned}
}

// Validate checks catalog-level invariants: unique ids, non-negative email
// counts, recognized statuses, and the covered-implies-no-gaps rule. The
// source data does not guarantee the last one, so it is flagged here rather
// than trusted.
func (l *Ledger) Validate() error {
	seen := make(map[string]struct{}, len(l.records))
	for _, rec := range l.records {
		if rec.ID == "" {
			return &ValidationError{Reason: "record id is required"}
		}
		if _, dup := seen[rec.ID]; dup {
			return &ValidationError{RecordID: rec.ID, Reason: "duplicate id"}
		}
		seen[rec.ID] = struct{}{}

		if !rec.Status.Valid() {
			return &ValidationError{RecordID: rec.ID, Reason: fmt.Sprintf("unknown status %q", rec.Status)}
		}
		if rec.EmailCount < 0 {
			return &ValidationError{RecordID: rec.ID, Reason: fmt.Sprintf("negative email count %d", rec.EmailCount)}
		}
		if rec.Status == model.CoverageStatusCovered && len(rec.WhatsGap) > 0 {
			return &ValidationError{RecordID: rec.ID, Reason: "covered record lists open gaps"}
		}
	}
	return nil
}

// Aggregate computes per-status record counts and email-count sums over the
// full catalog. The per-status email sums always add up to TotalEmails
// exactly; nothing is double-counted because every record lands in exactly
// one status bucket.
func (l *Ledger) Aggregate() (AggregateStats, error) {
	if err := l.Validate(); err != nil {
		return AggregateStats{}, err
	}

	stats := AggregateStats{
		TotalRecords: len(l.records),
		RecordCounts: make(map[model.CoverageStatus]int, 3),
		EmailCounts:  make(map[model.CoverageStatus]int, 3),
	}
	for _, rec := range l.records {
		stats.RecordCounts[rec.Status]++
		stats.EmailCounts[rec.Status] += rec.EmailCount
		stats.TotalEmails += rec.EmailCount
	}
	return stats, nil
}

// Percentage returns the share of total email volume held by status, in
// [0,1]. An empty catalog (zero total volume) yields 0 for every status.
func (l *Ledger) Percentage(status model.CoverageStatus, stats AggregateStats) float64 {
	if stats.TotalEmails == 0 {
		return 0
	}
	return float64(stats.EmailCounts[status]) / float64(stats.TotalEmails)
}

// Remainder derives the not-covered email volume without re-summing:
// total minus covered minus partial. Matches the independently summed
// not-covered bucket for any valid catalog.
func (l *Ledger) Remainder(stats AggregateStats) int {
	return stats.TotalEmails -
		stats.EmailCounts[model.CoverageStatusCovered] -
		stats.EmailCounts[model.CoverageStatusPartial]
}

// Filter returns the records matching selector in original catalog order.
// Selector is a status value or FilterAll; FilterAll is identity.
func (l *Ledger) Filter(selector string) ([]model.CoverageRecord, error) {
	if selector == FilterAll {
		out := make([]model.CoverageRecord, len(l.records))
		copy(out, l.records)
		return out, nil
	}

	status := model.CoverageStatus(selector)
	if !status.Valid() {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown status filter %q", selector)}
	}

	var out []model.CoverageRecord
	for _, rec := range l.records {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}
