package domain

// Intent is the closed set of query categories the assistant can act on.
type Intent string

const (
	// IntentHospital asks for the nearest hospital with availability.
	IntentHospital Intent = "hospital"

	// IntentMedicalShop asks for pharmacies or medical shops near a location.
	IntentMedicalShop Intent = "medical_shop"

	// IntentEmail asks to notify the administrator by email.
	IntentEmail Intent = "email"

	// IntentUnknown exists to close the set; classification never produces
	// it because unmatched queries fall back to IntentHospital.
	IntentUnknown Intent = "unknown"
)

// Intents returns the actionable intents, in rule-evaluation order. Every
// intent listed here must have a registered handler.
func Intents() []Intent {
	return []Intent{IntentHospital, IntentMedicalShop, IntentEmail}
}
