// Package ports defines the driven-side interfaces of the assistant: the
// geocoding, places, and mail clients, the intent handler contract, and the
// conversation store. Adapters under pkg/adapters implement these interfaces;
// the orchestrator depends only on this package.
package ports
