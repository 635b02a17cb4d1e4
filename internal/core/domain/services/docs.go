// Package services holds the domain services that span aggregates:
//   - AccessPolicy decides whether an actor may perform an action on a target;
//   - OrderLifecycle combines the policy with the Order state machine for
//     status transitions and courier assignment.
//
// Both are pure. They never read storage and never consult the clock on their
// own; callers load the aggregates and pass the current time.
package services
