package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newItem(t *testing.T, qty int, price string) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), qty, decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{newItem(t, 3, "10")}, nil, now)
	require.NoError(t, err)
	o.ClearEvents()
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should start pending and unpaid", func(t *testing.T) {
		loc, _ := kernel.NewLocation(-6.2, 106.8)
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			[]order.Item{newItem(t, 3, "10"), newItem(t, 1, "2.5")}, &loc, now)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Nil(t, o.AssignedTo())
		assert.Nil(t, o.DeliveredAt())
		assert.True(t, decimal.RequireFromString("32.5").Equal(o.Total()))
		require.Len(t, o.Events(), 1)
		assert.Equal(t, order.EventPlaced, o.Events()[0].Name)
	})

	t.Run("should require at least one item", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject duplicate products", func(t *testing.T) {
		item := newItem(t, 1, "1")

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			[]order.Item{item, item}, nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a hand built item", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			[]order.Item{{}}, nil, now)

		require.ErrorIs(t, err, order.ErrItemIsNotConstructed)
	})
}

func TestNewItem(t *testing.T) {
	_, err := order.NewItem(kernel.UUID{}, 0, decimal.NewFromInt(-1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "product_id")
	assert.Contains(t, err.Error(), "quantity")
	assert.Contains(t, err.Error(), "unit_price")
}

func TestUnitPriceOf(t *testing.T) {
	assert.True(t, decimal.NewFromInt(10).Equal(order.UnitPriceOf(decimal.NewFromInt(100), 10)))
	assert.True(t, decimal.RequireFromString("33.3333").Equal(order.UnitPriceOf(decimal.NewFromInt(100), 3)))
	assert.True(t, decimal.NewFromInt(7).Equal(order.UnitPriceOf(decimal.NewFromInt(7), 1)))
}

func TestOrder_TransitionTo(t *testing.T) {
	actor := kernel.NewUUID()

	t.Run("should walk the happy path and stamp delivery", func(t *testing.T) {
		o := newOrder(t)

		for i, status := range []order.Status{order.Confirmed, order.Processing, order.Shipped, order.Delivered} {
			at := now.Add(time.Duration(i+1) * time.Hour)
			require.NoError(t, o.TransitionTo(status, actor, at))
			assert.Equal(t, status, o.Status())
		}

		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, now.Add(4*time.Hour), *o.DeliveredAt())
		assert.Len(t, o.Events(), 4)
		assert.Equal(t, order.Pending, o.PersistedStatus())
	})

	t.Run("should leave state untouched on failure", func(t *testing.T) {
		o := newOrder(t)

		err := o.TransitionTo(order.Shipped, actor, now)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Empty(t, o.Events())
	})

	t.Run("should cancel without stamping delivery", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.TransitionTo(order.Confirmed, actor, now))

		require.NoError(t, o.Cancel(actor, now))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("should refuse late cancellation", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.TransitionTo(order.Confirmed, actor, now))
		require.NoError(t, o.TransitionTo(order.Processing, actor, now))

		err := o.Cancel(actor, now)

		require.ErrorIs(t, err, errs.ErrCancellationNotAllowed)
		assert.Contains(t, err.Error(), "progressed too far")
	})
}

func TestOrder_AssignCourier(t *testing.T) {
	actor := kernel.NewUUID()

	t.Run("should stamp and clear assigned_at with the assignee", func(t *testing.T) {
		o := newOrder(t)
		courier := kernel.NewUUID()

		require.NoError(t, o.AssignCourier(&courier, actor, now))
		require.NotNil(t, o.AssignedAt())
		assert.True(t, o.IsAssignedTo(courier))

		require.NoError(t, o.AssignCourier(nil, actor, now.Add(time.Hour)))
		assert.Nil(t, o.AssignedTo())
		assert.Nil(t, o.AssignedAt())
		assert.Len(t, o.Events(), 2)
	})

	t.Run("should re-stamp on reassignment", func(t *testing.T) {
		o := newOrder(t)
		first, second := kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, o.AssignCourier(&first, actor, now))

		require.NoError(t, o.AssignCourier(&second, actor, now.Add(time.Hour)))

		assert.True(t, o.IsAssignedTo(second))
		assert.Equal(t, now.Add(time.Hour), *o.AssignedAt())
	})

	t.Run("should ignore assigning the same courier", func(t *testing.T) {
		o := newOrder(t)
		courier := kernel.NewUUID()
		require.NoError(t, o.AssignCourier(&courier, actor, now))

		require.NoError(t, o.AssignCourier(&courier, actor, now.Add(time.Hour)))

		assert.Equal(t, now, *o.AssignedAt())
		assert.Len(t, o.Events(), 1)
	})

	t.Run("should refuse terminal orders", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel(actor, now))
		courier := kernel.NewUUID()

		err := o.AssignCourier(&courier, actor, now)

		require.ErrorIs(t, err, errs.ErrTerminalState)
		assert.Nil(t, o.AssignedTo())
	})
}

func TestOrder_SetPaymentStatus(t *testing.T) {
	o := newOrder(t)
	actor := kernel.NewUUID()

	require.NoError(t, o.SetPaymentStatus(order.PaymentPaid, actor, now))
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus())

	require.ErrorIs(t, o.SetPaymentStatus(order.UnknownPayment, actor, now), errs.ErrValueIsInvalid)
	assert.Len(t, o.Events(), 1)
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should round trip a snapshot", func(t *testing.T) {
		o := newOrder(t)
		courier := kernel.NewUUID()
		require.NoError(t, o.AssignCourier(&courier, kernel.NewUUID(), now))

		restored, err := order.RestoreOrder(o.Snapshot())

		require.NoError(t, err)
		assert.Equal(t, o.Snapshot(), restored.Snapshot())
		assert.Empty(t, restored.Events())
	})

	t.Run("should reject assigned_to without assigned_at", func(t *testing.T) {
		s := newOrder(t).Snapshot()
		courier := kernel.NewUUID()
		s.AssignedTo = &courier

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject delivered without delivered_at", func(t *testing.T) {
		s := newOrder(t).Snapshot()
		s.Status = order.Delivered

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should remember the loaded status for conditional writes", func(t *testing.T) {
		s := newOrder(t).Snapshot()
		s.Status = order.Confirmed

		restored, err := order.RestoreOrder(s)
		require.NoError(t, err)
		require.NoError(t, restored.TransitionTo(order.Processing, kernel.NewUUID(), now))

		assert.Equal(t, order.Confirmed, restored.PersistedStatus())
		restored.MarkPersisted()
		assert.Equal(t, order.Processing, restored.PersistedStatus())
	})
}

func TestOrder_Validate(t *testing.T) {
	var o *order.Order

	assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
}

func TestOrder_AssignmentAndDeliveryStampsFollowEveryStep(t *testing.T) {
	type step struct {
		name    string
		apply   func(o *order.Order, at time.Time) error
		wantErr bool
	}

	admin := kernel.NewUUID()
	first := kernel.NewUUID()
	second := kernel.NewUUID()
	assign := func(courier *kernel.UUID) func(*order.Order, time.Time) error {
		return func(o *order.Order, at time.Time) error { return o.AssignCourier(courier, admin, at) }
	}
	moveTo := func(status order.Status) func(*order.Order, time.Time) error {
		return func(o *order.Order, at time.Time) error { return o.TransitionTo(status, admin, at) }
	}
	cancel := func(o *order.Order, at time.Time) error { return o.Cancel(admin, at) }

	tests := []struct {
		name  string
		steps []step
		final order.Status
	}{
		{
			name: "courier changes hands on the way to delivery",
			steps: []step{
				{name: "assign first", apply: assign(&first)},
				{name: "confirm", apply: moveTo(order.Confirmed)},
				{name: "reassign to second", apply: assign(&second)},
				{name: "process", apply: moveTo(order.Processing)},
				{name: "unassign", apply: assign(nil)},
				{name: "skip to delivered", apply: moveTo(order.Delivered), wantErr: true},
				{name: "assign first again", apply: assign(&first)},
				{name: "ship", apply: moveTo(order.Shipped)},
				{name: "deliver", apply: moveTo(order.Delivered)},
				{name: "assign after delivery", apply: assign(&second), wantErr: true},
				{name: "unassign after delivery", apply: assign(nil), wantErr: true},
			},
			final: order.Delivered,
		},
		{
			name: "cancelled order keeps its last courier",
			steps: []step{
				{name: "assign", apply: assign(&first)},
				{name: "confirm", apply: moveTo(order.Confirmed)},
				{name: "cancel", apply: cancel},
				{name: "unassign after cancel", apply: assign(nil), wantErr: true},
				{name: "deliver after cancel", apply: moveTo(order.Delivered), wantErr: true},
			},
			final: order.Cancelled,
		},
		{
			name: "repeated and empty assignments",
			steps: []step{
				{name: "unassign nobody", apply: assign(nil)},
				{name: "assign", apply: assign(&first)},
				{name: "assign same courier", apply: assign(&first)},
				{name: "confirm", apply: moveTo(order.Confirmed)},
				{name: "process", apply: moveTo(order.Processing)},
				{name: "cancel while processing", apply: cancel, wantErr: true},
				{name: "unassign", apply: assign(nil)},
				{name: "ship", apply: moveTo(order.Shipped)},
				{name: "deliver without courier", apply: moveTo(order.Delivered)},
			},
			final: order.Delivered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrder(t)
			at := now

			for _, s := range tt.steps {
				at = at.Add(time.Minute)
				before := o.Snapshot()

				err := s.apply(o, at)

				if s.wantErr {
					require.Error(t, err, s.name)
					assert.Equal(t, before, o.Snapshot(), "%s must not change the order", s.name)
				} else {
					require.NoError(t, err, s.name)
				}
				assert.Equal(t, o.AssignedTo() != nil, o.AssignedAt() != nil,
					"%s: assigned_at is set exactly when assigned_to is", s.name)
				assert.Equal(t, o.Status() == order.Delivered, o.DeliveredAt() != nil,
					"%s: delivered_at is set exactly when delivered", s.name)
			}

			assert.Equal(t, tt.final, o.Status())
		})
	}
}
