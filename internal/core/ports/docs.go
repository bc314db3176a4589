// Package ports defines the interfaces the application core depends on: repositories and
// the unit of work over the status store, the event publisher, the location cache and the
// synchronous collaborators (driver directory, menu catalog).
//
// Adapters in internal/adapters implement them; command handlers and their tests only see
// these contracts.
package ports
