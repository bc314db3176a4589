// Package kernel provides value objects shared by the order, payment, delivery and
// driver aggregates.
//
// The package includes:
//   - Location: a validated latitude/longitude pair
//   - IsTerminal helpers are kept on each aggregate's Status instead of here, since
//     every aggregate owns its own closed status enum
//
// Values are immutable and safe for concurrent use. The zero value of Location is
// invalid and fails Validate, so callers always go through NewLocation.
package kernel
