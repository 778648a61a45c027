package domain

import "errors"

// ErrGeocodeNotFound is returned when the geocoding service has no result for an address.
var ErrGeocodeNotFound = errors.New("address could not be located")

// ErrGeocodeService is returned on geocoding transport or HTTP failure.
var ErrGeocodeService = errors.New("geocoding service unavailable")

// ErrGeocodeQuota is returned when the geocoding service reports rate-limit exhaustion.
var ErrGeocodeQuota = errors.New("geocoding quota exceeded")

// ErrEmptyIndex is returned when a nearest-facility query hits an empty index.
var ErrEmptyIndex = errors.New("facility index is empty")

// ErrNoHandler is returned when an intent has no registered handler.
var ErrNoHandler = errors.New("no handler registered for intent")

// ErrUpstream covers transport or auth failures from the places and mail services.
var ErrUpstream = errors.New("upstream service error")

// ErrMalformedResponse is returned when an external service replies with an
// unexpected payload shape.
var ErrMalformedResponse = errors.New("malformed upstream response")

// ErrMailUnauthorized is returned when the mail service rejects the credentials.
var ErrMailUnauthorized = errors.New("mail service rejected credentials")

// ErrConversationNotFound is returned when a conversation ID cannot be found in the store.
var ErrConversationNotFound = errors.New("conversation not found")
