// Package gmail implements ports.Mailer on the Gmail REST API. The message
// is assembled as a plain-text RFC 822 document and posted base64url-encoded
// to the authenticated user's send endpoint.
package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/ports"
)

const (
	defaultBaseURL = "https://gmail.googleapis.com/gmail/v1"
	defaultUserID  = "me"
	defaultTimeout = 10 * time.Second
)

// Mailer sends mail as one Gmail user.
type Mailer struct {
	token   string
	userID  string
	baseURL string
	client  *http.Client
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithUserID sets the Gmail user the mail is sent as. Defaults to "me", the
// owner of the bearer token.
func WithUserID(id string) Option {
	return func(m *Mailer) {
		if id != "" {
			m.userID = id
		}
	}
}

// WithBaseURL overrides the API endpoint, for tests.
func WithBaseURL(u string) Option {
	return func(m *Mailer) {
		m.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Mailer) {
		if c != nil {
			m.client = c
		}
	}
}

// New creates a Gmail mailer authenticated by a bearer token.
func New(token string, opts ...Option) *Mailer {
	m := &Mailer{
		token:   token,
		userID:  defaultUserID,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send posts the message. Rejected credentials map to
// domain.ErrMailUnauthorized, everything else upstream to
// domain.ErrUpstream.
func (m *Mailer) Send(ctx context.Context, msg ports.Mail) error {
	raw := base64.URLEncoding.EncodeToString(rfc822(m.userID, msg))
	payload, err := json.Marshal(map[string]string{"raw": raw})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	url := fmt.Sprintf("%s/users/%s/messages/send", m.baseURL, m.userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+m.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.ErrMailUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: http %d", domain.ErrUpstream, resp.StatusCode)
	}
	return nil
}

// rfc822 renders the message headers and body in wire form.
func rfc822(from string, msg ports.Mail) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return b.Bytes()
}
