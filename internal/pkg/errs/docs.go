// Package errs provides the error taxonomy shared by every fulfillment service.
//
// Each error kind follows the same shape:
//   - a sentinel variable (e.g. ErrObjectNotFound) used with errors.Is
//   - a struct carrying the details (e.g. ObjectNotFoundError) used with errors.As
//   - New… and New…WithCause constructors
//   - Unwrap returning the sentinel
//
// Kinds and how adapters treat them:
//   - ObjectNotFoundError: the referenced entity id does not exist (HTTP 404)
//   - InvalidStateError: the requested transition does not match the current status (HTTP 400)
//   - AlreadyExistsError: duplicate creation, e.g. a second payment for one order (HTTP 409)
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input (HTTP 400)
//   - UpstreamUnavailableError: a synchronous collaborator call failed (HTTP 503)
//
// Event consumers never surface these to the broker; they log them and acknowledge the message.
package errs
