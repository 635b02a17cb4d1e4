package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueErrors(t *testing.T) {
	t.Run("required error formats param and cause", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("region_id")
		assert.Equal(t, "value is required: region_id", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		withCause := errs.NewValueIsRequiredErrorWithCause("reason", errors.New("rejections need a reason"))
		assert.Equal(t, "value is required: reason (cause: rejections need a reason)", withCause.Error())
	})

	t.Run("invalid error unwraps to its sentinel", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("-1 is not greater than 0"))
		assert.Equal(t, "value is invalid: quantity (cause: -1 is not greater than 0)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("out of range error sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("lat", "91\n", -90, 90)
		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "min value is -90, max value is 90")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("not found error names the object", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "42")
		assert.Equal(t, "object not found: order 42", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestCancellationNotAllowedError(t *testing.T) {
	t.Run("non terminal status only matches cancellation kind", func(t *testing.T) {
		err := errs.NewCancellationNotAllowedError("shipped", false)

		require.ErrorIs(t, err, errs.ErrCancellationNotAllowed)
		assert.NotErrorIs(t, err, errs.ErrTerminalState)
		assert.Contains(t, err.Error(), "progressed too far")
	})

	t.Run("terminal status matches both kinds", func(t *testing.T) {
		err := errs.NewCancellationNotAllowedError("delivered", true)

		require.ErrorIs(t, err, errs.ErrCancellationNotAllowed)
		require.ErrorIs(t, err, errs.ErrTerminalState)
		assert.Equal(t, errs.KindCancellationNotAllowed, errs.Kind(err))
	})
}

func TestKind(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unauthorized", errs.NewUnauthorizedError("order:cancel"), errs.KindUnauthorized},
		{"forbidden", errs.NewForbiddenError("order:cancel", "not the owner"), errs.KindForbidden},
		{"region mismatch", errs.NewRegionMismatchError("product:update", "r1", "r2"), errs.KindRegionMismatch},
		{"not found", errs.NewObjectNotFoundError("order", "1"), errs.KindNotFound},
		{"invalid status", errs.NewInvalidStatusError("lost"), errs.KindInvalidStatus},
		{"illegal transition", errs.NewIllegalTransitionError("pending", "delivered"), errs.KindIllegalTransition},
		{"terminal", errs.NewTerminalStateError("cancelled", "pending"), errs.KindTerminalState},
		{"validation", errs.NewValueIsRequiredError("name"), errs.KindValidation},
		{"price changed", errs.NewPriceChangedError([]string{"p1"}), errs.KindPriceChanged},
		{"conflict", errs.NewConflictError("order", "1"), errs.KindConflict},
		{"timeout", errs.NewTimeoutError("store", context.DeadlineExceeded), errs.KindTimeout},
		{"store unavailable", errs.NewStoreUnavailableError("store", errors.New("conn refused")), errs.KindStoreUnavailable},
		{"wrapped", fmt.Errorf("handler: %w", errs.NewForbiddenError("x", "y")), errs.KindForbidden},
		{"joined validation", errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsInvalidError("b")), errs.KindValidation},
		{"plain", errors.New("boom"), errs.KindInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errs.Kind(tc.err))
		})
	}
}

func TestWrapDependency(t *testing.T) {
	t.Run("returns nil for nil", func(t *testing.T) {
		require.NoError(t, errs.WrapDependency("store", nil))
	})

	t.Run("deadline becomes timeout", func(t *testing.T) {
		err := errs.WrapDependency("store", fmt.Errorf("query: %w", context.DeadlineExceeded))

		require.ErrorIs(t, err, errs.ErrTimeout)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("driver failure becomes store unavailable", func(t *testing.T) {
		err := errs.WrapDependency("store", errors.New("connection reset by peer"))

		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	})

	t.Run("classified errors pass through unchanged", func(t *testing.T) {
		original := errs.NewObjectNotFoundError("order", "1")

		assert.Same(t, original, errs.WrapDependency("store", original))
	})

	t.Run("cancellation is not reclassified", func(t *testing.T) {
		err := errs.WrapDependency("store", context.Canceled)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, errs.KindInternal, errs.Kind(err))
	})
}
