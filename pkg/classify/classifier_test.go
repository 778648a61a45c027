package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helioscommand/helios/pkg/domain"
)

func TestClassify(t *testing.T) {
	c := New()

	tests := []struct {
		query string
		want  domain.Intent
	}{
		{"nearest hospital in Adyar", domain.IntentHospital},
		{"are ICU beds available?", domain.IntentHospital},
		{"need emergency admission", domain.IntentHospital},
		{"pharmacies near Velachery", domain.IntentMedicalShop},
		{"where can I buy medicines", domain.IntentMedicalShop},
		{"any medical shop nearby", domain.IntentMedicalShop},
		{"send an email to the clinic", domain.IntentEmail},
		{"mail the report please", domain.IntentEmail},
		// Documented fallback: unmatched queries default to hospital, not
		// unknown, even though IntentUnknown exists in the closed set.
		{"random unrelated text", domain.IntentHospital},
		{"", domain.IntentHospital},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.query))
		})
	}
}

func TestClassify_RuleOrderWins(t *testing.T) {
	c := New()

	// "send" belongs to the email rule, but the hospital rule is evaluated
	// first and must win.
	assert.Equal(t, domain.IntentHospital, c.Classify("send me to the nearest hospital"))
}

func TestClassify_NeverReturnsUnknown(t *testing.T) {
	c := New()
	for _, q := range []string{"hello", "what's the weather", "42", "..."} {
		assert.NotEqual(t, domain.IntentUnknown, c.Classify(q), "query %q", q)
	}
}

func TestClassify_CustomFallback(t *testing.T) {
	c := New(WithFallback(domain.IntentEmail))
	assert.Equal(t, domain.IntentEmail, c.Classify("gibberish"))
}

func TestDetectConfirmation(t *testing.T) {
	tests := []struct {
		msg  string
		want Confirmation
	}{
		{"yes", ConfirmYes},
		{"Yes, please", ConfirmYes},
		{"okay", ConfirmYes},
		{"sure thing", ConfirmYes},
		{"go ahead", ConfirmYes},
		{"no", ConfirmNo},
		{"No thanks", ConfirmNo},
		{"not interested", ConfirmNo},
		{"nope", ConfirmNo},
		{"nearest hospital", ConfirmNone},
		// "north..." must not trip the "no" prefix.
		{"north chennai hospital", ConfirmNone},
		{"notify the clinic", ConfirmNone},
		{"", ConfirmNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectConfirmation(tt.msg))
		})
	}
}
