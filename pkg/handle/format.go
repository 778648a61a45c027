package handle

import (
	"fmt"

	"github.com/helioscommand/helios/pkg/domain"
)

// genericErrorLine is shown when a payload violates the expected shape.
const genericErrorLine = "Sorry, something went wrong while handling your request."

// noPlacesLine is the zero-results sentence for shop searches.
const noPlacesLine = "No nearby places found."

// FormatResult maps a handler's structured payload to a one-line human
// string. It never panics: a nil result or a payload inconsistent with its
// kind is treated as an error payload with a generic message. Error payloads
// render their message text as-is.
func FormatResult(r *domain.Result) string {
	if r == nil {
		return genericErrorLine
	}

	switch r.Kind {
	case domain.KindHospital:
		if r.Hospital == nil {
			return genericErrorLine
		}
		return fmt.Sprintf("Found: %s | Distance: %.3f km | ETA: %d min",
			r.Hospital.Name, r.Hospital.DistanceKm, r.Hospital.ETAMinutes)

	case domain.KindPlaces:
		if r.Places == nil {
			return genericErrorLine
		}
		if len(r.Places.Places) == 0 {
			return noPlacesLine
		}
		return fmt.Sprintf("Found %d nearby places. First: %s",
			len(r.Places.Places), r.Places.Places[0].Name)

	case domain.KindEmail:
		if r.Email == nil {
			return genericErrorLine
		}
		return fmt.Sprintf("Email sent to %s: %s", r.Email.Recipient, r.Email.Subject)

	case domain.KindText:
		if r.Text == nil || r.Text.Message == "" {
			return genericErrorLine
		}
		return r.Text.Message

	case domain.KindError:
		if r.Err == nil || r.Err.Message == "" {
			return genericErrorLine
		}
		return r.Err.Message

	default:
		return genericErrorLine
	}
}
