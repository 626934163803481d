package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upfh/frontdesk/pkg/logging"
)

// fakeBusySource serves canned busy intervals keyed by ISO date and records
// how many fetches were made.
type fakeBusySource struct {
	byDay   map[string][]BusyInterval
	fetches int
	err     error
}

func (f *fakeBusySource) QueryBusy(_ context.Context, _ string, timeMin, _ time.Time) (IntervalSet, error) {
	f.fetches++
	if f.err != nil {
		return IntervalSet{}, f.err
	}
	return NewIntervalSet(f.byDay[timeMin.Format("2006-01-02")]...), nil
}

func denver(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	return loc
}

func newTestCalculator(t *testing.T, busy *fakeBusySource) *Calculator {
	t.Helper()
	return NewCalculator(busy, "clinic@example.com", CalculatorConfig{
		Location: denver(t),
	}, logging.New("error"))
}

func TestComputeSingleDayOpenCalendar(t *testing.T) {
	busy := &fakeBusySource{byDay: map[string][]BusyInterval{}}
	calc := newTestCalculator(t, busy)

	res, err := calc.Compute(context.Background(), Request{Date: "2026-03-02", DurationMinutes: 30})
	require.NoError(t, err)
	require.Len(t, res, 1)

	slots := res["2026-03-02"]
	require.Len(t, slots, 10) // capped at 10 per day
	assert.Equal(t, 1, busy.fetches)

	loc := denver(t)
	winStart := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)
	winEnd := time.Date(2026, 3, 2, 17, 30, 0, 0, loc)
	for i, s := range slots {
		assert.Equal(t, 30*time.Minute, s.Duration())
		assert.False(t, s.Start.Before(winStart), "slot %d before window", i)
		assert.False(t, s.End.After(winEnd), "slot %d after window", i)
		if i > 0 {
			assert.True(t, slots[i-1].Start.Before(s.Start), "slots out of order")
		}
	}
	// 15-minute scan step from the window start.
	assert.Equal(t, winStart, slots[0].Start)
	assert.Equal(t, winStart.Add(15*time.Minute), slots[1].Start)
}

func TestComputeSkipsBusySlots(t *testing.T) {
	loc := denver(t)
	busy := &fakeBusySource{byDay: map[string][]BusyInterval{
		"2026-03-02": {{
			Start: time.Date(2026, 3, 2, 8, 0, 0, 0, loc),
			End:   time.Date(2026, 3, 2, 9, 0, 0, 0, loc),
		}},
	}}
	calc := newTestCalculator(t, busy)

	res, err := calc.Compute(context.Background(), Request{Date: "2026-03-02", DurationMinutes: 30})
	require.NoError(t, err)

	slots := res["2026-03-02"]
	require.NotEmpty(t, slots)
	// A 9:00 busy-block end touching a 9:00 slot start is not overlap.
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, loc), slots[0].Start)
	for _, s := range slots {
		for _, b := range busy.byDay["2026-03-02"] {
			assert.False(t, b.Start.Before(s.End) && s.Start.Before(b.End),
				"slot %v overlaps busy %v", s, b)
		}
	}
}

func TestComputeOmitsFullyBookedDays(t *testing.T) {
	loc := denver(t)
	busy := &fakeBusySource{byDay: map[string][]BusyInterval{
		"2026-03-02": {{
			Start: time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
			End:   time.Date(2026, 3, 3, 0, 0, 0, 0, loc),
		}},
	}}
	calc := newTestCalculator(t, busy)

	res, err := calc.Compute(context.Background(), Request{
		StartDate: "2026-03-02", EndDate: "2026-03-03", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.NotContains(t, res, "2026-03-02")
	assert.Contains(t, res, "2026-03-03")
	assert.Equal(t, 2, busy.fetches) // one free/busy fetch per day
}

func TestComputeIdempotent(t *testing.T) {
	loc := denver(t)
	busy := &fakeBusySource{byDay: map[string][]BusyInterval{
		"2026-03-02": {{
			Start: time.Date(2026, 3, 2, 10, 0, 0, 0, loc),
			End:   time.Date(2026, 3, 2, 12, 0, 0, 0, loc),
		}},
	}}
	calc := newTestCalculator(t, busy)

	req := Request{Date: "2026-03-02", DurationMinutes: 60}
	first, err := calc.Compute(context.Background(), req)
	require.NoError(t, err)
	second, err := calc.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeRequestShapeValidation(t *testing.T) {
	calc := newTestCalculator(t, &fakeBusySource{})

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"neither form", Request{}, ErrInvalidRequestShape},
		{"both forms", Request{Date: "2026-03-02", StartDate: "2026-03-02", EndDate: "2026-03-03"}, ErrInvalidRequestShape},
		{"half a range", Request{StartDate: "2026-03-02"}, ErrInvalidRequestShape},
		{"end before start", Request{StartDate: "2026-03-05", EndDate: "2026-03-02"}, ErrInvalidRange},
		{"bad date", Request{Date: "tomorrow"}, ErrInvalidRange},
		{"bad start", Request{StartDate: "soon", EndDate: "2026-03-02"}, ErrInvalidRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.Compute(context.Background(), tc.req)
			assert.True(t, errors.Is(err, tc.want), "got %v want %v", err, tc.want)
		})
	}
}

func TestComputeRangeBoundary(t *testing.T) {
	busy := &fakeBusySource{byDay: map[string][]BusyInterval{}}
	calc := newTestCalculator(t, busy)

	// Exactly 30 days out succeeds.
	_, err := calc.Compute(context.Background(), Request{
		StartDate: "2026-03-01", EndDate: "2026-03-31", DurationMinutes: 30,
	})
	assert.NoError(t, err)

	// 31 days out fails.
	_, err = calc.Compute(context.Background(), Request{
		StartDate: "2026-03-01", EndDate: "2026-04-01", DurationMinutes: 30,
	})
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestComputeDurationMustMatchGranularity(t *testing.T) {
	calc := newTestCalculator(t, &fakeBusySource{})
	_, err := calc.Compute(context.Background(), Request{Date: "2026-03-02", DurationMinutes: 45})
	assert.True(t, errors.Is(err, ErrInvalidRange))

	res, err := calc.Compute(context.Background(), Request{Date: "2026-03-02", DurationMinutes: 60})
	assert.NoError(t, err)
	for _, s := range res["2026-03-02"] {
		assert.Equal(t, time.Hour, s.Duration())
	}
}

func TestComputeDSTTransitionWindow(t *testing.T) {
	// 2026-03-08 is the US spring-forward date; the working window must
	// carry the post-transition -06:00 offset, not a hardcoded one.
	busy := &fakeBusySource{byDay: map[string][]BusyInterval{}}
	calc := newTestCalculator(t, busy)

	res, err := calc.Compute(context.Background(), Request{Date: "2026-03-08", DurationMinutes: 30})
	require.NoError(t, err)
	slots := res["2026-03-08"]
	require.NotEmpty(t, slots)
	_, offset := slots[0].Start.Zone()
	assert.Equal(t, -6*3600, offset)
}

func TestComputeBusyFetchFailure(t *testing.T) {
	busy := &fakeBusySource{err: errors.New("calendar down")}
	calc := newTestCalculator(t, busy)
	_, err := calc.Compute(context.Background(), Request{Date: "2026-03-02", DurationMinutes: 30})
	assert.ErrorContains(t, err, "free/busy fetch")
}
