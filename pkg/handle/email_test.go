package handle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/ports"
)

type stubMailer struct {
	sent []ports.Mail
	err  error
}

func (s *stubMailer) Send(ctx context.Context, msg ports.Mail) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func TestEmail_Handle_HospitalUrgency(t *testing.T) {
	mailer := &stubMailer{}
	h := NewEmail(mailer, "admin@clinic.example")

	res, err := h.Handle(context.Background(), ports.Request{
		Query:  "need a bed in Adyar, Chennai",
		Intent: domain.IntentHospital,
		History: []domain.Turn{
			{Role: domain.RoleUser, Content: "need a bed in Adyar, Chennai"},
		},
	})
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "admin@clinic.example", msg.To)
	assert.Equal(t, "URGENT: Emergency Hospital Bed Required", msg.Subject)
	assert.Contains(t, msg.Body, "Patient location: Adyar, Chennai")
	assert.Contains(t, msg.Body, "Patient: need a bed in Adyar, Chennai")

	require.Equal(t, domain.KindEmail, res.Kind)
	assert.Equal(t, "admin@clinic.example", res.Email.Recipient)
}

func TestEmail_Handle_MedicationUrgency(t *testing.T) {
	mailer := &stubMailer{}
	h := NewEmail(mailer, "admin@clinic.example")

	_, err := h.Handle(context.Background(), ports.Request{
		Query:  "medicines near Velachery",
		Intent: domain.IntentMedicalShop,
	})
	require.NoError(t, err)
	assert.Equal(t, "URGENT: Medication Assistance Required", mailer.sent[0].Subject)
}

func TestEmail_Handle_TruncatesHistory(t *testing.T) {
	mailer := &stubMailer{}
	h := NewEmail(mailer, "admin@clinic.example")

	history := make([]domain.Turn, 0, 10)
	for i := 0; i < 10; i++ {
		history = append(history, domain.Turn{Role: domain.RoleUser, Content: "old turn"})
	}
	history[0].Content = "very first turn"

	_, err := h.Handle(context.Background(), ports.Request{
		Query:   "send an email",
		Intent:  domain.IntentEmail,
		History: history,
	})
	require.NoError(t, err)
	assert.NotContains(t, mailer.sent[0].Body, "very first turn")
}

func TestEmail_Handle_MailerFailures(t *testing.T) {
	for _, sentinel := range []error{domain.ErrMailUnauthorized, domain.ErrUpstream} {
		h := NewEmail(&stubMailer{err: sentinel}, "admin@clinic.example")
		_, err := h.Handle(context.Background(), ports.Request{Query: "send an email"})
		assert.ErrorIs(t, err, sentinel)
	}
}
