package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/upfh/frontdesk/internal/schedule"
	"github.com/upfh/frontdesk/pkg/logging"
)

// CalendarGateway is the external calendar collaborator. QueryBusy serves
// the availability calculator; InsertEvent persists a booking.
type CalendarGateway interface {
	QueryBusy(ctx context.Context, calendarID string, timeMin, timeMax time.Time) (schedule.IntervalSet, error)
	InsertEvent(ctx context.Context, calendarID string, event Event) (InsertedEvent, error)
}

// Event is the calendar event body handed to the gateway.
type Event struct {
	Summary         string
	Description     string
	Start           time.Time
	End             time.Time
	AttendeeEmail   string
	NotifyAttendees bool
}

// InsertedEvent is what the provider returns for a persisted event. The
// HTMLLink never travels past this package.
type InsertedEvent struct {
	ID       string
	HTMLLink string
}

// Request carries the patient's chosen slot and contact details. Name,
// start, and end are mandatory; the rest is forwarded verbatim.
type Request struct {
	PatientName string `json:"patient_name"`
	Start       string `json:"start"` // RFC 3339 with offset
	End         string `json:"end"`   // RFC 3339 with offset
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// Confirmation is returned to the caller after a successful booking. It
// deliberately has no field for the provider's web link: exposing that link
// would leak a door into the clinic calendar, so it is stripped here and
// never reaches a caller-facing surface.
type Confirmation struct {
	Status      string `json:"status"`
	EventID     string `json:"event_id"`
	Start       string `json:"start"`
	End         string `json:"end"`
	PatientName string `json:"patient_name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// FailedError wraps a calendar persistence failure. The coordinator never
// retries; retries are the caller's choice.
type FailedError struct {
	Cause error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("booking failed: %v", e.Cause)
}

func (e *FailedError) Unwrap() error {
	return e.Cause
}

var (
	errMissingName  = errors.New("booking: patient name is required")
	errMissingTimes = errors.New("booking: start and end are required")
)

// Coordinator validates booking requests and persists them through the
// calendar gateway. Writes to a given calendar are serialized through a
// per-calendar lock so two turns cannot interleave their insert calls.
type Coordinator struct {
	gateway    CalendarGateway
	calendarID string
	location   *time.Location
	logger     *logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCoordinator creates a booking coordinator for one clinic calendar.
func NewCoordinator(gateway CalendarGateway, calendarID string, location *time.Location, logger *logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Default()
	}
	if location == nil {
		location = time.UTC
	}
	return &Coordinator{
		gateway:    gateway,
		calendarID: calendarID,
		location:   location,
		logger:     logger,
		locks:      make(map[string]*sync.Mutex),
	}
}

// Book persists the chosen slot. It trusts that the caller picked a slot
// from a fresh availability result and does not re-verify it.
func (c *Coordinator) Book(ctx context.Context, req Request) (Confirmation, error) {
	if req.PatientName == "" {
		return Confirmation{}, errMissingName
	}
	if req.Start == "" || req.End == "" {
		return Confirmation{}, errMissingTimes
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return Confirmation{}, &FailedError{Cause: fmt.Errorf("malformed start %q: %w", req.Start, err)}
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		return Confirmation{}, &FailedError{Cause: fmt.Errorf("malformed end %q: %w", req.End, err)}
	}
	if !end.After(start) {
		return Confirmation{}, &FailedError{Cause: fmt.Errorf("end %s is not after start %s", req.End, req.Start)}
	}

	event := Event{
		Summary:         fmt.Sprintf("%s – Clinic Visit", req.PatientName),
		Description:     fmt.Sprintf("Reason: %s\nPhone: %s\nEmail: %s", req.Reason, req.Phone, req.Email),
		Start:           start.In(c.location),
		End:             end.In(c.location),
		AttendeeEmail:   req.Email,
		NotifyAttendees: true,
	}

	lock := c.calendarLock(c.calendarID)
	lock.Lock()
	inserted, err := c.gateway.InsertEvent(ctx, c.calendarID, event)
	lock.Unlock()
	if err != nil {
		c.logger.Error("calendar insert failed", "calendar_id", c.calendarID, "error", err)
		return Confirmation{}, &FailedError{Cause: err}
	}

	c.logger.Info("appointment booked",
		"event_id", inserted.ID,
		"start", req.Start,
		"end", req.End,
	)

	// inserted.HTMLLink is intentionally dropped here.
	return Confirmation{
		Status:      "booked",
		EventID:     inserted.ID,
		Start:       start.In(c.location).Format(time.RFC3339),
		End:         end.In(c.location).Format(time.RFC3339),
		PatientName: req.PatientName,
		Email:       req.Email,
		Phone:       req.Phone,
		Reason:      req.Reason,
	}, nil
}

func (c *Coordinator) calendarLock(calendarID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[calendarID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[calendarID] = lock
	}
	return lock
}
