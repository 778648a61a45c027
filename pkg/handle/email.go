package handle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/ports"
)

// contextTurns caps how much conversation history goes into the email body.
const contextTurns = 6

// Email composes an urgent healthcare email from the conversation context and
// dispatches it through the mail service. Composition is deterministic
// templating, not language generation.
type Email struct {
	mailer    ports.Mailer
	recipient string
	logger    *slog.Logger
}

// EmailOption configures the email handler.
type EmailOption func(*Email)

// WithEmailLogger sets the handler logger.
func WithEmailLogger(logger *slog.Logger) EmailOption {
	return func(e *Email) {
		e.logger = logger
	}
}

// NewEmail creates the email handler. The recipient is the configured
// healthcare contact address.
func NewEmail(mailer ports.Mailer, recipient string, opts ...EmailOption) *Email {
	e := &Email{
		mailer:    mailer,
		recipient: recipient,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle composes subject and body from the request and sends the mail.
func (e *Email) Handle(ctx context.Context, req ports.Request) (*domain.Result, error) {
	subject := subjectFor(req.Intent)
	body := composeBody(req)

	err := e.mailer.Send(ctx, ports.Mail{To: e.recipient, Subject: subject, Body: body})
	if err != nil {
		return nil, err
	}

	e.logger.Info("email dispatched", "recipient", e.recipient, "subject", subject)

	return &domain.Result{
		Kind:  domain.KindEmail,
		Email: &domain.EmailResult{Recipient: e.recipient, Subject: subject},
	}, nil
}

// subjectFor picks the urgency line from the conversation's current intent:
// bed availability for hospital requests, medication for everything else.
func subjectFor(intent domain.Intent) string {
	if intent == domain.IntentHospital {
		return "URGENT: Emergency Hospital Bed Required"
	}
	return "URGENT: Medication Assistance Required"
}

func composeBody(req ports.Request) string {
	var b strings.Builder
	b.WriteString("Dear Healthcare Administrator,\n\n")
	b.WriteString("This is an urgent request for assistance on behalf of a patient.\n\n")

	if loc := extractLocation(req.Query); loc != "" && loc != req.Query {
		fmt.Fprintf(&b, "Patient location: %s\n", loc)
	}
	fmt.Fprintf(&b, "Request: %s\n\n", req.Query)

	history := req.History
	if len(history) > contextTurns {
		history = history[len(history)-contextTurns:]
	}
	if len(history) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, turn := range history {
			label := "Patient"
			if turn.Role == domain.RoleAssistant {
				label = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", label, turn.Content)
		}
		b.WriteString("\n")
	}

	b.WriteString("Please respond at the earliest with available options in this area.\n")
	return b.String()
}
