package schedule

import (
	"encoding/json"
	"time"
)

// TimeSlot is a candidate bookable interval of fixed duration. Immutable
// once constructed; End is always Start plus the requested duration.
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// NewTimeSlot builds a slot of the given duration starting at start.
func NewTimeSlot(start time.Time, duration time.Duration) TimeSlot {
	return TimeSlot{Start: start, End: start.Add(duration)}
}

// Duration returns the slot length.
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// MarshalJSON serializes both endpoints as RFC 3339 timestamps carrying the
// clinic's UTC offset, the only timestamp form allowed at the tool boundary.
func (s TimeSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}{
		Start: s.Start.Format(time.RFC3339),
		End:   s.End.Format(time.RFC3339),
	})
}
