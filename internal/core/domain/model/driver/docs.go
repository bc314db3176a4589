// Package driver provides the driver Profile aggregate owned by the driver service.
//
// The package includes:
//   - Profile: driver identity, vehicle details, last known location, availability and the
//     current reservation (claim) for an order
//
// Key business rules:
//   - New profiles start offline (not available) without a location
//   - A driver can be claimed for one order at a time and only while available
//   - Claiming the same order twice is idempotent; releasing an unclaimed driver is a no-op
//   - Location updates require both coordinates within geographic bounds
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package driver
