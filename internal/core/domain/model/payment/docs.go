// Package payment provides the payment Transaction aggregate owned by the payment service.
//
// A transaction is created PENDING for exactly one order and is confirmed once, to either
// SUCCESSFUL or FAILED. Confirmation is not idempotent: a second attempt is rejected with an
// InvalidStateError.
package payment
