// Package services provides domain services that orchestrate business operations
// spanning more than one aggregate.
//
// The package includes:
//   - DriverDispatcher: picks a driver for an order uniformly at random and retries among
//     the remaining candidates when the chosen driver was reserved by a concurrent assignment
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
