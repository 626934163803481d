package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []EmailMessage
	fail map[string]error // keyed by recipient
}

func (r *recordingSender) Send(ctx context.Context, msg EmailMessage) error {
	if err := r.fail[msg.To]; err != nil {
		return err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestSubmitAppointmentRequestSendsBothEmails(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, "frontdesk@upfh.org", nil)

	err := svc.SubmitAppointmentRequest(context.Background(), AppointmentRequest{
		Email:         "maria@example.com",
		PatientName:   "Maria Lopez",
		Phone:         "801-555-0100",
		PreferredDate: "2026-09-01",
		PreferredTime: "9:00 am",
		Reason:        "annual physical",
		HasInsurance:  true,
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	assert.Equal(t, "maria@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Body, "Maria Lopez")
	assert.Contains(t, sender.sent[0].Body, "2026-09-01 9:00 am")

	assert.Equal(t, "frontdesk@upfh.org", sender.sent[1].To)
	assert.Contains(t, sender.sent[1].Body, "annual physical")
	assert.Contains(t, sender.sent[1].Body, "801-555-0100")
	assert.Contains(t, sender.sent[1].Body, "Insurance: yes")
}

func TestSubmitAppointmentRequestEmailOnly(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, "frontdesk@upfh.org", nil)

	// Email is the only mandatory field; everything else gets a placeholder.
	err := svc.SubmitAppointmentRequest(context.Background(), AppointmentRequest{
		Email: "sam@example.com",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[0].Body, "Valued Patient")
	assert.Contains(t, sender.sent[0].Body, "TBD")
	assert.Contains(t, sender.sent[1].Body, "Insurance: no")
}

func TestSubmitAppointmentRequestRequiresEmail(t *testing.T) {
	svc := NewService(&recordingSender{}, "frontdesk@upfh.org", nil)

	err := svc.SubmitAppointmentRequest(context.Background(), AppointmentRequest{
		PatientName: "Maria Lopez",
		Phone:       "801-555-0100",
	})
	assert.Error(t, err)
}

func TestSubmitAppointmentRequestAckFailureStillAlertsStaff(t *testing.T) {
	sender := &recordingSender{fail: map[string]error{"maria@example.com": errors.New("bounce")}}
	svc := NewService(sender, "frontdesk@upfh.org", nil)

	err := svc.SubmitAppointmentRequest(context.Background(), AppointmentRequest{
		Email:       "maria@example.com",
		PatientName: "Maria Lopez",
	})
	require.Error(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "frontdesk@upfh.org", sender.sent[0].To)
}
