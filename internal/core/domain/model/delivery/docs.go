// Package delivery provides the Assignment aggregate: the binding of one driver to one
// order for the duration of the delivery.
//
// Status transitions:
//
//	Assigned ──> PickedUp ──> Delivered
//	    │            │
//	    └────────────┴──> FailedDelivery
//
// Delivered and FailedDelivery are terminal. Requesting Delivered straight from Assigned is
// an InvalidStateError; any other request that matches no edge (same status, terminal
// source) is reported as "no change" rather than as an error.
package delivery
