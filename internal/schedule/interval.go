package schedule

import (
	"sort"
	"time"
)

// BusyInterval is a time range already occupied on the external calendar.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// IntervalSet holds the busy intervals for one availability query. It is
// rebuilt from the calendar's free/busy report on every query and never
// cached across calls.
type IntervalSet struct {
	intervals []BusyInterval
}

// NewIntervalSet builds a set from the given intervals, sorted by start time.
// Intervals with a non-positive span are dropped.
func NewIntervalSet(intervals ...BusyInterval) IntervalSet {
	kept := make([]BusyInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.End.After(iv.Start) {
			kept = append(kept, iv)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Start.Before(kept[j].Start)
	})
	return IntervalSet{intervals: kept}
}

// Overlaps reports whether any busy interval overlaps (start, end) as open
// intervals: a busy block that merely touches an endpoint does not count.
func (s IntervalSet) Overlaps(start, end time.Time) bool {
	for _, iv := range s.intervals {
		if iv.Start.Before(end) && start.Before(iv.End) {
			return true
		}
	}
	return false
}

// Intervals returns a copy of the busy intervals in start order.
func (s IntervalSet) Intervals() []BusyInterval {
	out := make([]BusyInterval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// Len returns the number of busy intervals in the set.
func (s IntervalSet) Len() int {
	return len(s.intervals)
}
