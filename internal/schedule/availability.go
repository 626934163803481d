package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/upfh/frontdesk/pkg/logging"
)

const dateLayout = "2006-01-02"

var (
	// ErrInvalidRequestShape is returned when neither or both of the
	// single-date and date-range forms are supplied.
	ErrInvalidRequestShape = errors.New("schedule: pass date or both start_date and end_date, not both and not neither")

	// ErrInvalidRange is returned for malformed dates or ranges longer
	// than the configured maximum.
	ErrInvalidRange = errors.New("schedule: invalid date range")
)

// BusySource fetches the busy intervals for a calendar between two instants.
type BusySource interface {
	QueryBusy(ctx context.Context, calendarID string, timeMin, timeMax time.Time) (IntervalSet, error)
}

// Request asks for free slots on a single date or on every day of an
// inclusive date range. Exactly one of the two forms must be set.
type Request struct {
	Date            string `json:"date,omitempty"`
	StartDate       string `json:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// Result maps ISO dates to the free slots found for that day, earliest
// first. Days with no free slots are omitted.
type Result map[string][]TimeSlot

// CalculatorConfig carries the clinic schedule settings. Scan step, slot
// granularity, and working hours are deliberately configuration, not
// constants, so availability stays testable under varied clinic schedules.
type CalculatorConfig struct {
	Location       *time.Location
	WorkDayStart   string // "HH:MM" clinic-local
	WorkDayEnd     string // "HH:MM" clinic-local
	ScanStep       time.Duration
	Granularity    time.Duration
	MaxSlotsPerDay int
	MaxRangeDays   int
}

func (c *CalculatorConfig) applyDefaults() {
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.WorkDayStart == "" {
		c.WorkDayStart = "08:00"
	}
	if c.WorkDayEnd == "" {
		c.WorkDayEnd = "17:30"
	}
	if c.ScanStep <= 0 {
		c.ScanStep = 15 * time.Minute
	}
	if c.Granularity <= 0 {
		c.Granularity = 30 * time.Minute
	}
	if c.MaxSlotsPerDay <= 0 {
		c.MaxSlotsPerDay = 10
	}
	if c.MaxRangeDays <= 0 {
		c.MaxRangeDays = 30
	}
}

// Calculator computes free slots against a calendar's busy intervals.
type Calculator struct {
	busy       BusySource
	calendarID string
	cfg        CalculatorConfig
	logger     *logging.Logger
}

// NewCalculator creates an availability calculator for one calendar.
func NewCalculator(busy BusySource, calendarID string, cfg CalculatorConfig, logger *logging.Logger) *Calculator {
	if logger == nil {
		logger = logging.Default()
	}
	cfg.applyDefaults()
	return &Calculator{
		busy:       busy,
		calendarID: calendarID,
		cfg:        cfg,
		logger:     logger,
	}
}

// Compute validates the request and returns the free slots per day. The
// busy set is fetched fresh for every day in the request, one fetch per day.
func (c *Calculator) Compute(ctx context.Context, req Request) (Result, error) {
	days, err := c.enumerateDays(req)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	if req.DurationMinutes == 0 {
		duration = c.cfg.Granularity
	}
	if duration <= 0 || duration%c.cfg.Granularity != 0 {
		return nil, fmt.Errorf("%w: duration must be a positive multiple of %v", ErrInvalidRange, c.cfg.Granularity)
	}

	result := make(Result)
	for _, day := range days {
		winStart, winEnd, err := c.workingWindow(day)
		if err != nil {
			return nil, err
		}

		busy, err := c.busy.QueryBusy(ctx, c.calendarID, winStart, winEnd)
		if err != nil {
			return nil, fmt.Errorf("schedule: free/busy fetch for %s failed: %w", day, err)
		}

		slots := c.scanDay(winStart, winEnd, duration, busy)
		if len(slots) > 0 {
			result[day] = slots
		}
	}

	c.logger.Debug("availability computed", "days", len(days), "days_with_slots", len(result))
	return result, nil
}

// enumerateDays validates the date-vs-range shape and expands the request
// into the list of ISO dates to scan.
func (c *Calculator) enumerateDays(req Request) ([]string, error) {
	hasDate := req.Date != ""
	hasRange := req.StartDate != "" || req.EndDate != ""

	if hasDate == hasRange {
		return nil, ErrInvalidRequestShape
	}
	if hasRange && (req.StartDate == "" || req.EndDate == "") {
		return nil, ErrInvalidRequestShape
	}

	if hasDate {
		if _, err := time.ParseInLocation(dateLayout, req.Date, c.cfg.Location); err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrInvalidRange, req.Date)
		}
		return []string{req.Date}, nil
	}

	start, err := time.ParseInLocation(dateLayout, req.StartDate, c.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start_date %q", ErrInvalidRange, req.StartDate)
	}
	end, err := time.ParseInLocation(dateLayout, req.EndDate, c.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end_date %q", ErrInvalidRange, req.EndDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date before start_date", ErrInvalidRange)
	}
	if daysBetween(start, end) > c.cfg.MaxRangeDays {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, c.cfg.MaxRangeDays)
	}

	var days []string
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		days = append(days, cur.Format(dateLayout))
	}
	return days, nil
}

// workingWindow anchors the configured working hours to the clinic's IANA
// timezone for the given calendar date. The UTC offset falls out of the
// timezone database for that specific date, so daylight-saving transitions
// need no special casing.
func (c *Calculator) workingWindow(day string) (time.Time, time.Time, error) {
	date, err := time.ParseInLocation(dateLayout, day, c.cfg.Location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidRange, day)
	}

	startH, startM, err := parseClock(c.cfg.WorkDayStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("schedule: bad working-hours start: %w", err)
	}
	endH, endM, err := parseClock(c.cfg.WorkDayEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("schedule: bad working-hours end: %w", err)
	}

	y, m, d := date.Date()
	winStart := time.Date(y, m, d, startH, startM, 0, 0, c.cfg.Location)
	winEnd := time.Date(y, m, d, endH, endM, 0, 0, c.cfg.Location)
	return winStart, winEnd, nil
}

// scanDay walks candidate start times at the scan step and keeps slots that
// fit inside the window and miss every busy interval.
func (c *Calculator) scanDay(winStart, winEnd time.Time, duration time.Duration, busy IntervalSet) []TimeSlot {
	var slots []TimeSlot
	for cursor := winStart; !cursor.Add(duration).After(winEnd); cursor = cursor.Add(c.cfg.ScanStep) {
		if busy.Overlaps(cursor, cursor.Add(duration)) {
			continue
		}
		slots = append(slots, NewTimeSlot(cursor, duration))
		if len(slots) >= c.cfg.MaxSlotsPerDay {
			break
		}
	}
	return slots
}

// daysBetween counts calendar days from a to b, immune to DST offset drift.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

func parseClock(clock string) (int, int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed clock %q: %w", clock, err)
	}
	return t.Hour(), t.Minute(), nil
}
