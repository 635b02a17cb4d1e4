// Package errs provides the error vocabulary shared by the fulfillment core.
//
// Two families live here:
//   - value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError) returned by constructors, validators and repositories;
//   - failure kinds (Unauthorized, Forbidden, RegionMismatch, InvalidStatus,
//     IllegalTransition, TerminalState, CancellationNotAllowed, PriceChanged,
//     Conflict, Timeout, StoreUnavailable) returned by the order lifecycle engine,
//     the access policy and the application handlers.
//
// Every error type follows the same shape:
//   - a sentinel variable usable with errors.Is
//   - a struct carrying the details
//   - New... constructors (with and without cause)
//   - Error() for the message and Unwrap() for classification
//
// Kind maps any error produced by the core to a stable, transport-neutral code.
package errs
