// Package gcal implements the calendar gateway against the Google Calendar
// API: free/busy queries for the availability calculator and event inserts
// for the booking coordinator.
package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/upfh/frontdesk/internal/booking"
	"github.com/upfh/frontdesk/internal/schedule"
	"github.com/upfh/frontdesk/pkg/logging"
)

// Client wraps the Calendar API service for one clinic.
type Client struct {
	svc      *calendar.Service
	timezone string // IANA name stamped on event bodies
	logger   *logging.Logger
}

// Config selects the credential source. OAuthTokenPath wins when both are
// set, mirroring how the clinic's personal-calendar setup works; otherwise
// CredentialsFile must point at a service-account key.
type Config struct {
	CredentialsFile string
	OAuthTokenPath  string
	Timezone        string
}

// NewClient creates an authenticated Calendar API client.
func NewClient(ctx context.Context, cfg Config, logger *logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var opts []option.ClientOption
	switch {
	case cfg.OAuthTokenPath != "":
		tok, err := tokenFromFile(cfg.OAuthTokenPath)
		if err != nil {
			return nil, fmt.Errorf("gcal: could not load oauth token: %w", err)
		}
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(tok)))
		logger.Info("calendar auth: oauth user token")
	case cfg.CredentialsFile != "":
		opts = append(opts,
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(calendar.CalendarScope),
		)
		logger.Info("calendar auth: service-account key")
	default:
		return nil, fmt.Errorf("gcal: neither oauth token nor service-account credentials configured")
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcal: failed to create calendar service: %w", err)
	}

	return &Client{svc: svc, timezone: cfg.Timezone, logger: logger}, nil
}

// QueryBusy fetches the busy intervals for calendarID between timeMin and
// timeMax via the free/busy endpoint.
func (c *Client) QueryBusy(ctx context.Context, calendarID string, timeMin, timeMax time.Time) (schedule.IntervalSet, error) {
	req := &calendar.FreeBusyRequest{
		TimeMin:  timeMin.Format(time.RFC3339),
		TimeMax:  timeMax.Format(time.RFC3339),
		TimeZone: c.timezone,
		Items:    []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}

	resp, err := c.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return schedule.IntervalSet{}, fmt.Errorf("gcal: freebusy query failed: %w", err)
	}

	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return schedule.NewIntervalSet(), nil
	}

	intervals := make([]schedule.BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			c.logger.Warn("skipping unparseable busy start", "raw", period.Start)
			continue
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			c.logger.Warn("skipping unparseable busy end", "raw", period.End)
			continue
		}
		intervals = append(intervals, schedule.BusyInterval{Start: start, End: end})
	}

	c.logger.Debug("freebusy fetched", "calendar_id", calendarID, "busy_blocks", len(intervals))
	return schedule.NewIntervalSet(intervals...), nil
}

// InsertEvent persists a booking on the clinic calendar. The patient gets a
// Google invite when an attendee email is present and notifications are on.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, event booking.Event) (booking.InsertedEvent, error) {
	body := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: c.timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: c.timezone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault:      true,
			ForceSendFields: []string{"UseDefault"},
		},
	}
	if event.AttendeeEmail != "" {
		body.Attendees = []*calendar.EventAttendee{{Email: event.AttendeeEmail}}
	}

	call := c.svc.Events.Insert(calendarID, body).Context(ctx)
	if event.NotifyAttendees {
		call = call.SendUpdates("all")
	}

	created, err := call.Do()
	if err != nil {
		return booking.InsertedEvent{}, fmt.Errorf("gcal: event insert failed: %w", err)
	}

	c.logger.Info("calendar event created", "calendar_id", calendarID, "event_id", created.Id)
	return booking.InsertedEvent{ID: created.Id, HTMLLink: created.HtmlLink}, nil
}

// tokenFromFile retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}
