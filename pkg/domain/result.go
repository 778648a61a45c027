package domain

// ResultKind discriminates the payload carried by a Result.
type ResultKind string

const (
	KindHospital ResultKind = "hospital"
	KindPlaces   ResultKind = "places"
	KindEmail    ResultKind = "email"
	KindText     ResultKind = "text"
	KindError    ResultKind = "error"
)

// Result is the discriminated union produced by a handler invocation.
// Exactly one payload field matching Kind is populated.
type Result struct {
	Kind     ResultKind      `json:"kind" mapstructure:"kind"`
	Hospital *HospitalResult `json:"hospital,omitempty" mapstructure:"hospital,omitempty"`
	Places   *PlacesResult   `json:"places,omitempty" mapstructure:"places,omitempty"`
	Email    *EmailResult    `json:"email,omitempty" mapstructure:"email,omitempty"`
	Text     *TextResult     `json:"text,omitempty" mapstructure:"text,omitempty"`
	Err      *ErrorResult    `json:"error,omitempty" mapstructure:"error,omitempty"`
}

// HospitalResult is the nearest-facility answer.
type HospitalResult struct {
	Name       string     `json:"name" mapstructure:"name"`
	DistanceKm float64    `json:"distance_km" mapstructure:"distance_km"`
	ETAMinutes int        `json:"eta_minutes" mapstructure:"eta_minutes"`
	Origin     Coordinate `json:"origin" mapstructure:"origin"`
}

// PlacesResult is the nearby-places answer. An empty list is a valid success.
type PlacesResult struct {
	Places []Place `json:"places" mapstructure:"places"`
}

// EmailResult confirms a dispatched email.
type EmailResult struct {
	Recipient string `json:"recipient" mapstructure:"recipient"`
	Subject   string `json:"subject" mapstructure:"subject"`
}

// TextResult carries a plain assistant line (acknowledgments, greetings).
type TextResult struct {
	Message string `json:"message" mapstructure:"message"`
}

// ErrorResult is the error payload; Message is what the user sees.
type ErrorResult struct {
	Message string `json:"message" mapstructure:"message"`
}

// OK reports whether the result is a success payload.
func (r *Result) OK() bool {
	return r != nil && r.Kind != KindError
}

// NewErrorResult wraps a handler failure into the error payload. The error's
// text becomes the user-visible message; it is never left empty.
func NewErrorResult(err error) *Result {
	msg := "something went wrong while handling your request"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Result{Kind: KindError, Err: &ErrorResult{Message: msg}}
}

// NewTextResult wraps a plain message into a success payload.
func NewTextResult(msg string) *Result {
	return &Result{Kind: KindText, Text: &TextResult{Message: msg}}
}
