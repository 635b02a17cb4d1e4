package errs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrRegionMismatch         = errors.New("region mismatch")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrIllegalTransition      = errors.New("illegal transition")
	ErrTerminalState          = errors.New("order is in a terminal state")
	ErrCancellationNotAllowed = errors.New("cancellation not allowed")
	ErrPriceChanged           = errors.New("price changed")
	ErrConflict               = errors.New("concurrent modification")
	ErrTimeout                = errors.New("operation timed out")
	ErrStoreUnavailable       = errors.New("store unavailable")
)

// AccessDeniedError is returned by the access policy. Kind is one of
// ErrUnauthorized, ErrForbidden or ErrRegionMismatch.
type AccessDeniedError struct {
	Kind   error
	Action string
	Reason string
}

func NewUnauthorizedError(action string) *AccessDeniedError {
	return &AccessDeniedError{Kind: ErrUnauthorized, Action: action, Reason: "no authenticated actor"}
}

func NewForbiddenError(action, reason string) *AccessDeniedError {
	return &AccessDeniedError{Kind: ErrForbidden, Action: action, Reason: reason}
}

func NewRegionMismatchError(action, actorRegion, targetRegion string) *AccessDeniedError {
	return &AccessDeniedError{
		Kind:   ErrRegionMismatch,
		Action: action,
		Reason: fmt.Sprintf("actor region %s does not match target region %s", actorRegion, targetRegion),
	}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Action, e.Reason)
}

func (e *AccessDeniedError) Unwrap() error {
	return e.Kind
}

// InvalidStatusError reports a status name that is not part of the lifecycle.
type InvalidStatusError struct {
	Value string
}

func NewInvalidStatusError(value string) *InvalidStatusError {
	return &InvalidStatusError{Value: value}
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("%s: %q is not a recognized order status", ErrInvalidStatus, sanitize(e.Value))
}

func (e *InvalidStatusError) Unwrap() error {
	return ErrInvalidStatus
}

// TransitionError reports a move the state machine does not permit.
// Kind is ErrIllegalTransition or ErrTerminalState.
type TransitionError struct {
	Kind error
	From string
	To   string
}

func NewIllegalTransitionError(from, to string) *TransitionError {
	return &TransitionError{Kind: ErrIllegalTransition, From: from, To: to}
}

func NewTerminalStateError(from, to string) *TransitionError {
	return &TransitionError{Kind: ErrTerminalState, From: from, To: to}
}

func (e *TransitionError) Error() string {
	if errors.Is(e.Kind, ErrTerminalState) {
		return fmt.Sprintf("%s: %s orders cannot be changed", e.Kind, e.From)
	}
	return fmt.Sprintf("%s: %s -> %s", e.Kind, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return e.Kind
}

// CancellationNotAllowedError is returned when a cancel is requested on an
// order that has left the cancellable window. If the order is already terminal
// the error also matches ErrTerminalState.
type CancellationNotAllowedError struct {
	Status   string
	Terminal bool
}

func NewCancellationNotAllowedError(status string, terminal bool) *CancellationNotAllowedError {
	return &CancellationNotAllowedError{Status: status, Terminal: terminal}
}

func (e *CancellationNotAllowedError) Error() string {
	return fmt.Sprintf("%s: order has progressed too far to be cancelled (status: %s)",
		ErrCancellationNotAllowed, e.Status)
}

func (e *CancellationNotAllowedError) Unwrap() []error {
	if e.Terminal {
		return []error{ErrCancellationNotAllowed, ErrTerminalState}
	}
	return []error{ErrCancellationNotAllowed}
}

// PriceChangedError lists the cart lines whose snapshot price no longer
// matches the live catalog.
type PriceChangedError struct {
	ProductIDs []string
}

func NewPriceChangedError(productIDs []string) *PriceChangedError {
	return &PriceChangedError{ProductIDs: productIDs}
}

func (e *PriceChangedError) Error() string {
	return fmt.Sprintf("%s: %d item(s) repriced: %s", ErrPriceChanged, len(e.ProductIDs), strings.Join(e.ProductIDs, ", "))
}

func (e *PriceChangedError) Unwrap() error {
	return ErrPriceChanged
}

// ConflictError is returned when a conditional write lost a race.
type ConflictError struct {
	ParamName string
	ID        any
}

func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %v changed since it was read", ErrConflict, e.ParamName, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// DependencyError wraps a failure of an external collaborator.
// Kind is ErrTimeout or ErrStoreUnavailable.
type DependencyError struct {
	Kind       error
	Dependency string
	Cause      error
}

func NewTimeoutError(dependency string, cause error) *DependencyError {
	return &DependencyError{Kind: ErrTimeout, Dependency: dependency, Cause: cause}
}

func NewStoreUnavailableError(dependency string, cause error) *DependencyError {
	return &DependencyError{Kind: ErrStoreUnavailable, Dependency: dependency, Cause: cause}
}

func (e *DependencyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Kind, e.Dependency, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Dependency)
}

func (e *DependencyError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// WrapDependency classifies an error returned by an external collaborator.
// Errors that already carry a kind are returned unchanged.
func WrapDependency(dependency string, err error) error {
	if err == nil {
		return nil
	}
	if Kind(err) != KindInternal {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(dependency, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return NewStoreUnavailableError(dependency, err)
}

const (
	KindUnauthorized           = "unauthorized"
	KindForbidden              = "forbidden"
	KindRegionMismatch         = "region_mismatch"
	KindNotFound               = "not_found"
	KindInvalidStatus          = "invalid_status"
	KindIllegalTransition      = "illegal_transition"
	KindTerminalState          = "terminal_state"
	KindCancellationNotAllowed = "cancellation_not_allowed"
	KindValidation             = "validation_error"
	KindPriceChanged           = "price_changed"
	KindConflict               = "conflict"
	KindTimeout                = "timeout"
	KindStoreUnavailable       = "store_unavailable"
	KindInternal               = "internal"
)

// Kind returns the stable code of the most specific failure kind err matches.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrRegionMismatch):
		return KindRegionMismatch
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidStatus):
		return KindInvalidStatus
	case errors.Is(err, ErrCancellationNotAllowed):
		return KindCancellationNotAllowed
	case errors.Is(err, ErrTerminalState):
		return KindTerminalState
	case errors.Is(err, ErrIllegalTransition):
		return KindIllegalTransition
	case errors.Is(err, ErrPriceChanged):
		return KindPriceChanged
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	default:
		return KindInternal
	}
}
