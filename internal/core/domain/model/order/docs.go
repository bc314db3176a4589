// Package order provides the Order aggregate of the order service and the state machine
// that drives it through the fulfillment saga.
//
// The package includes:
//   - Order: the aggregate root with line items, total amount and delivery address snapshot
//   - LineItem: an immutable snapshot of a menu item (name and unit price at order time)
//   - Status: a closed enum with an explicit transition table
//
// Key business rules:
//   - Orders start in RECEIVED with a total computed from the line items
//   - Payment outcome is applied only from RECEIVED or PENDING_PAYMENT
//   - Afterwards the order advances PREPARING -> ASSIGNED -> OUT_FOR_DELIVERY -> DELIVERED
//   - Transition methods return an InvalidStateError and leave the order unchanged when the
//     edge does not exist; saga consumers treat that as a no-op
package order
