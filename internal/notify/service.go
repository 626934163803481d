package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/upfh/frontdesk/pkg/logging"
)

// AppointmentRequest carries what the patient left for the front desk.
// Only the email is mandatory; everything else is forwarded as given.
type AppointmentRequest struct {
	Email         string `json:"email"`
	PatientName   string `json:"patient_name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	PreferredDate string `json:"preferred_date,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"`
	Reason        string `json:"reason,omitempty"`
	HasInsurance  bool   `json:"has_insurance,omitempty"`
}

// Service sends the appointment-request emails: an acknowledgement to the
// patient and an alert to the front-desk inbox.
type Service struct {
	email      EmailSender
	staffEmail string
	logger     *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, staffEmail string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:      email,
		staffEmail: staffEmail,
		logger:     logger,
	}
}

// SubmitAppointmentRequest delivers both emails. A failed patient
// acknowledgement does not block the staff alert; the first failure is
// still reported so the model can tell the patient.
func (s *Service) SubmitAppointmentRequest(ctx context.Context, req AppointmentRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("notify: appointment request needs an email")
	}
	if s.email == nil {
		return fmt.Errorf("notify: email sender not configured")
	}

	name := strings.TrimSpace(req.PatientName)
	if name == "" {
		name = "Valued Patient"
	}
	when := strings.TrimSpace(req.PreferredDate + " " + req.PreferredTime)
	if when == "" {
		when = "TBD"
	}
	reason := req.Reason
	if reason == "" {
		reason = "General appointment"
	}

	var firstErr error

	ack := EmailMessage{
		To:      req.Email,
		ToName:  name,
		Subject: "We received your appointment request – UPFH",
		Body: fmt.Sprintf(
			"Hi %s,\n\nWe received your appointment request for %s (Reason: %s). "+
				"Our front desk will confirm soon.\n\n"+
				"Thank you,\nUtah Partners for Health\n801-417-0131",
			name, when, reason),
	}
	if err := s.email.Send(ctx, ack); err != nil {
		s.logger.Error("patient acknowledgement failed", "error", err, "to", req.Email)
		firstErr = fmt.Errorf("notify: patient acknowledgement: %w", err)
	}

	if s.staffEmail != "" {
		insurance := "no"
		if req.HasInsurance {
			insurance = "yes"
		}
		alert := EmailMessage{
			To:      s.staffEmail,
			ToName:  "UPFH Front Desk",
			Subject: "NEW appointment request – action needed",
			Body: fmt.Sprintf(
				"NEW REQUEST\nPatient: %s\nEmail: %s\nPhone: %s\nDate/time: %s\nReason: %s\nInsurance: %s",
				name, req.Email, req.Phone, when, reason, insurance),
		}
		if err := s.email.Send(ctx, alert); err != nil {
			s.logger.Error("staff alert failed", "error", err, "to", s.staffEmail)
			if firstErr == nil {
				firstErr = fmt.Errorf("notify: staff alert: %w", err)
			}
		}
	}

	return firstErr
}
