// Package domain holds the core types shared across the assistant: coordinates
// and facilities, conversation state and turn records, intents, handler results,
// and the sentinel errors of the failure taxonomy. It has no dependencies on
// adapters or transports.
package domain
