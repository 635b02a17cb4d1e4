package order

import (
	"fulfillment/internal/pkg/errs"
)

type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	Processing
	Shipped
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Processing: "processing",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// happy path successors; cancelled is handled separately
func getSuccessors() map[Status]Status {
	//nolint:exhaustive // terminal statuses have no successor
	return map[Status]Status{
		Pending:    Confirmed,
		Confirmed:  Processing,
		Processing: Shipped,
		Shipped:    Delivered,
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Processing, Shipped, Delivered, Cancelled}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewInvalidStatusError(s.String())
	}
	return nil
}

// ParseStatus resolves a status name, failing with an InvalidStatus error.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewInvalidStatusError(s)
}

// ParseStatuses resolves a status filter. An empty input yields an empty set.
func ParseStatuses(names []string) ([]Status, error) {
	statuses := make([]Status, 0, len(names))
	for _, name := range names {
		status, err := ParseStatus(name)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanCancel reports whether the order is still inside the cancellable window.
func (s Status) CanCancel() bool {
	return s == Pending || s == Confirmed
}

// CanAssign reports whether a courier may be assigned, reassigned or removed.
func (s Status) CanAssign() bool {
	return s == Pending || s == Confirmed || s == Processing || s == Shipped
}

// Successor returns the next status on the happy path.
func (s Status) Successor() (Status, bool) {
	next, ok := getSuccessors()[s]
	return next, ok
}

// TransitionTo validates a move to target and returns it.
//
// Checks run in a fixed order: target recognized, cancellation window,
// terminal source, then legality on the happy path.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if target == Cancelled && !s.CanCancel() {
		return Unknown, errs.NewCancellationNotAllowedError(s.String(), s.IsTerminal())
	}

	if s.IsTerminal() {
		return Unknown, errs.NewTerminalStateError(s.String(), target.String())
	}

	if target == Cancelled {
		return Cancelled, nil
	}

	if next, ok := s.Successor(); ok && next == target {
		return target, nil
	}

	return Unknown, errs.NewIllegalTransitionError(s.String(), target.String())
}
