package models

import (
	"sort"
	"time"
)

// Snapshot is the immutable in-memory dataset built once at startup and
// handed to the dashboard engine. It must not be mutated after creation;
// concurrent readers need no locking.
type Snapshot struct {
	records []LiquidityRecord
}

// NewSnapshot sorts the records by reporting date and freezes them.
func NewSnapshot(records []LiquidityRecord) *Snapshot {
	rs := make([]LiquidityRecord, len(records))
	copy(rs, records)
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].EndOfDate.Before(rs[j].EndOfDate)
	})
	return &Snapshot{records: rs}
}

// Len reports the number of records in the snapshot.
func (s *Snapshot) Len() int { return len(s.records) }

// Records returns the date-ordered records. Callers must treat the slice
// as read-only.
func (s *Snapshot) Records() []LiquidityRecord { return s.records }

// Between returns the records whose date lies within [from, to], both
// bounds inclusive. A reversed range yields an empty subset.
func (s *Snapshot) Between(from, to time.Time) []LiquidityRecord {
	out := make([]LiquidityRecord, 0, len(s.records))
	for _, r := range s.records {
		if r.EndOfDate.Before(from) || r.EndOfDate.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Bounds returns the min and max reporting dates, and false when empty.
func (s *Snapshot) Bounds() (min, max time.Time, ok bool) {
	if len(s.records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.records[0].EndOfDate, s.records[len(s.records)-1].EndOfDate, true
}
