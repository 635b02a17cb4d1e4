package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderCommandHandler_Handle(t *testing.T) {
	setup := func(t *testing.T) (*MockUoW, commands.PlaceOrderCommandHandler) {
		t.Helper()
		uow := newMockUoW()
		return uow, commands.NewPlaceOrderCommandHandler(uowFactory{uow}.checkout(), policy, clock)
	}

	t.Run("places a pending unpaid order priced per unit", func(t *testing.T) {
		uow, h := setup(t)
		r := newRegion(t)
		customer := approvedCustomer()
		bundle := newProduct(t, r.ID(), "10", 3)
		single := newProduct(t, r.ID(), "2.5", 1)
		orderID := kernel.NewUUID()
		cmd, err := commands.NewPlaceOrderCommand(customer, orderID, []cart.Line{lineOf(bundle, 3), lineOf(single, 2)}, nil)
		require.NoError(t, err)

		var stored *order.Order
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil).Once(),
			uow.regions.On("Get", mock.Anything, r.ID()).Return(r, nil).Once(),
			uow.products.On("GetMany", mock.Anything, []kernel.UUID{bundle.ID(), single.ID()}).
				Return([]*product.Product{single, bundle}, nil).Once(),
			uow.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
				Run(func(args mock.Arguments) { stored = args.Get(1).(*order.Order) }).
				Return(nil).Once(),
			uow.On("Commit", mock.Anything).Return(nil).Once(),
		)

		require.NoError(t, h.Handle(t.Context(), cmd))
		uow.assertExpectations(t)

		require.NotNil(t, stored)
		assert.Equal(t, orderID, stored.ID())
		assert.Equal(t, customer.ID, stored.UserID())
		assert.Equal(t, r.ID(), stored.RegionID())
		assert.Equal(t, order.Pending, stored.Status())
		assert.Equal(t, order.PaymentPending, stored.PaymentStatus())
		items := stored.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "3.3333", items[0].UnitPrice().String())
		assert.True(t, items[1].UnitPrice().Equal(decimal.RequireFromString("2.5")))
	})

	t.Run("changed price fails the whole checkout", func(t *testing.T) {
		uow, h := setup(t)
		r := newRegion(t)
		stale := newProduct(t, r.ID(), "10", 1)
		fresh := newProduct(t, r.ID(), "4", 1)
		line := lineOf(stale, 1)
		require.NoError(t, stale.Update(product.Details{Name: "Rice", Price: decimal.NewFromInt(11), PricePerQuantity: 1, Unit: "kg"}, now))
		cmd, err := commands.NewPlaceOrderCommand(approvedCustomer(), kernel.NewUUID(), []cart.Line{line, lineOf(fresh, 1)}, nil)
		require.NoError(t, err)

		uow.expectBegin()
		uow.regions.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
		uow.products.On("GetMany", mock.Anything, mock.Anything).Return([]*product.Product{stale, fresh}, nil).Once()

		err = h.Handle(t.Context(), cmd)

		var priceErr *errs.PriceChangedError
		require.ErrorAs(t, err, &priceErr)
		assert.Equal(t, []string{stale.ID().String()}, priceErr.ProductIDs)
		uow.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("changed unit fails the checkout", func(t *testing.T) {
		uow, h := setup(t)
		r := newRegion(t)
		p := newProduct(t, r.ID(), "10", 1)
		line := lineOf(p, 2)
		require.NoError(t, p.Update(product.Details{Name: "Rice", Price: decimal.NewFromInt(10), PricePerQuantity: 1, Unit: "sack"}, now))
		cmd, err := commands.NewPlaceOrderCommand(approvedCustomer(), kernel.NewUUID(), []cart.Line{line}, nil)
		require.NoError(t, err)

		uow.expectBegin()
		uow.regions.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
		uow.products.On("GetMany", mock.Anything, mock.Anything).Return([]*product.Product{p}, nil).Once()

		err = h.Handle(t.Context(), cmd)

		var priceErr *errs.PriceChangedError
		require.ErrorAs(t, err, &priceErr)
		assert.Equal(t, []string{p.ID().String()}, priceErr.ProductIDs)
		uow.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("inactive products are refused", func(t *testing.T) {
		uow, h := setup(t)
		r := newRegion(t)
		p := newProduct(t, r.ID(), "10", 1)
		line := lineOf(p, 1)
		p.SetActive(false, now)
		cmd, err := commands.NewPlaceOrderCommand(approvedCustomer(), kernel.NewUUID(), []cart.Line{line}, nil)
		require.NoError(t, err)

		uow.expectBegin()
		uow.regions.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
		uow.products.On("GetMany", mock.Anything, mock.Anything).Return([]*product.Product{p}, nil).Once()

		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrValueIsInvalid)
	})

	t.Run("inactive region is refused", func(t *testing.T) {
		uow, h := setup(t)
		r := newRegion(t)
		r.Deactivate()
		cmd, err := commands.NewPlaceOrderCommand(approvedCustomer(), kernel.NewUUID(), []cart.Line{lineOf(newProduct(t, r.ID(), "1", 1), 1)}, nil)
		require.NoError(t, err)

		uow.expectBegin()
		uow.regions.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()

		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrValueIsInvalid)
		uow.products.AssertNotCalled(t, "GetMany", mock.Anything, mock.Anything)
	})

	t.Run("pending KYC cannot check out", func(t *testing.T) {
		uow, h := setup(t)
		pending := profile.Customer{ID: kernel.NewUUID(), KYC: profile.KYCPending}
		cmd, err := commands.NewPlaceOrderCommand(pending, kernel.NewUUID(), []cart.Line{lineOf(newProduct(t, kernel.NewUUID(), "1", 1), 1)}, nil)
		require.NoError(t, err)

		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrForbidden)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("lines from two regions are refused", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand(approvedCustomer(), kernel.NewUUID(), []cart.Line{
			lineOf(newProduct(t, kernel.NewUUID(), "1", 1), 1),
			lineOf(newProduct(t, kernel.NewUUID(), "1", 1), 1),
		}, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("empty checkout is refused", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand(approvedCustomer(), kernel.NewUUID(), nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestTransitionOrderCommandHandler_Handle(t *testing.T) {
	t.Run("admin confirms a pending order", func(t *testing.T) {
		uow := newMockUoW()
		regionID := kernel.NewUUID()
		o := newOrder(t, kernel.NewUUID(), regionID)
		cmd, err := commands.NewTransitionOrderCommand(regionAdmin(regionID), o.ID(), "confirmed")
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil).Once(),
			uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
			uow.orders.On("Update", mock.Anything, o).Return(nil).Once(),
			uow.On("Commit", mock.Anything).Return(nil).Once(),
		)

		h := commands.NewTransitionOrderCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, order.Pending, o.PersistedStatus())
		require.Len(t, o.Events(), 1)
		assert.Equal(t, order.EventStatusChanged, o.Events()[0].Name)
	})

	t.Run("skipping a step is illegal and nothing is written", func(t *testing.T) {
		uow := newMockUoW()
		regionID := kernel.NewUUID()
		o := newOrder(t, kernel.NewUUID(), regionID)
		cmd, err := commands.NewTransitionOrderCommand(regionAdmin(regionID), o.ID(), "delivered")
		require.NoError(t, err)

		uow.expectBegin()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()

		h := commands.NewTransitionOrderCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrIllegalTransition)
		uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("lost race surfaces as conflict", func(t *testing.T) {
		uow := newMockUoW()
		o := newOrder(t, kernel.NewUUID(), kernel.NewUUID())
		cmd, err := commands.NewTransitionOrderCommand(superAdmin(), o.ID(), "confirmed")
		require.NoError(t, err)

		uow.expectBegin()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
		uow.orders.On("Update", mock.Anything, o).Return(errs.NewConflictError("order", o.ID().String())).Once()

		h := commands.NewTransitionOrderCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrConflict)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("unknown status name", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(superAdmin(), kernel.NewUUID(), "teleported")
		require.ErrorIs(t, err, errs.ErrInvalidStatus)
	})
}

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	t.Run("owner cancels a pending order", func(t *testing.T) {
		uow := newMockUoW()
		customer := approvedCustomer()
		o := newOrder(t, customer.ID, kernel.NewUUID())
		cmd, err := commands.NewCancelOrderCommand(customer, o.ID())
		require.NoError(t, err)

		uow.expectBegin()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once()
		uow.expectCommit()

		h := commands.NewCancelOrderCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.NoError(t, h.Handle(t.Context(), cmd))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("another customer is forbidden", func(t *testing.T) {
		uow := newMockUoW()
		o := newOrder(t, kernel.NewUUID(), kernel.NewUUID())
		cmd, err := commands.NewCancelOrderCommand(approvedCustomer(), o.ID())
		require.NoError(t, err)

		uow.expectBegin()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()

		h := commands.NewCancelOrderCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrForbidden)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("shipped orders can no longer be cancelled", func(t *testing.T) {
		uow := newMockUoW()
		customer := approvedCustomer()
		admin := superAdmin()
		o := newOrder(t, customer.ID, kernel.NewUUID())
		for _, s := range []order.Status{order.Confirmed, order.Processing, order.Shipped} {
			require.NoError(t, o.TransitionTo(s, admin.ID, now))
		}
		cmd, err := commands.NewCancelOrderCommand(customer, o.ID())
		require.NoError(t, err)

		uow.expectBegin()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()

		h := commands.NewCancelOrderCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrCancellationNotAllowed)
	})
}

func TestAssignCourierCommandHandler_Handle(t *testing.T) {
	t.Run("assigns a courier of the same region", func(t *testing.T) {
		uow := newMockUoW()
		regionID := kernel.NewUUID()
		o := newOrder(t, kernel.NewUUID(), regionID)
		courier := newCourier(t, ptr(regionID))
		cmd, err := commands.NewAssignCourierCommand(regionAdmin(regionID), o.ID(), ptr(courier.ID()))
		require.NoError(t, err)

		uow.expectBegin()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
		uow.profiles.On("GetForUpdate", mock.Anything, courier.ID()).Return(courier, nil).Once()
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once()
		uow.expectCommit()

		h := commands.NewAssignCourierCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.True(t, o.IsAssignedTo(courier.ID()))
		require.NotNil(t, o.AssignedAt())
		assert.Equal(t, now, *o.AssignedAt())
	})

	t.Run("courier from another region is a region mismatch", func(t *testing.T) {
		uow := newMockUoW()
		regionID := kernel.NewUUID()
		o := newOrder(t, kernel.NewUUID(), regionID)
		courier := newCourier(t, ptr(kernel.NewUUID()))
		cmd, err := commands.NewAssignCourierCommand(regionAdmin(regionID), o.ID(), ptr(courier.ID()))
		require.NoError(t, err)

		uow.expectBegin()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
		uow.profiles.On("GetForUpdate", mock.Anything, courier.ID()).Return(courier, nil).Once()

		h := commands.NewAssignCourierCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrRegionMismatch)
		assert.Nil(t, o.AssignedTo())
	})

	t.Run("nil courier unassigns", func(t *testing.T) {
		uow := newMockUoW()
		o := newOrder(t, kernel.NewUUID(), kernel.NewUUID())
		courier := kernel.NewUUID()
		require.NoError(t, o.AssignCourier(&courier, kernel.NewUUID(), now))
		cmd, err := commands.NewAssignCourierCommand(superAdmin(), o.ID(), nil)
		require.NoError(t, err)

		uow.expectBegin()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once()
		uow.expectCommit()

		h := commands.NewAssignCourierCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.NoError(t, h.Handle(t.Context(), cmd))
		assert.Nil(t, o.AssignedTo())
		uow.profiles.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("couriers cannot assign", func(t *testing.T) {
		uow := newMockUoW()
		cmd, err := commands.NewAssignCourierCommand(profile.Logistics{ID: kernel.NewUUID()}, kernel.NewUUID(), nil)
		require.NoError(t, err)

		h := commands.NewAssignCourierCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrForbidden)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}

func TestUpdatePaymentStatusCommandHandler_Handle(t *testing.T) {
	t.Run("refund after cancellation", func(t *testing.T) {
		uow := newMockUoW()
		regionID := kernel.NewUUID()
		admin := regionAdmin(regionID)
		o := newOrder(t, kernel.NewUUID(), regionID)
		require.NoError(t, o.Cancel(admin.ID, now))
		cmd, err := commands.NewUpdatePaymentStatusCommand(admin, o.ID(), "refunded")
		require.NoError(t, err)

		uow.expectBegin()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once()
		uow.expectCommit()

		h := commands.NewUpdatePaymentStatusCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.NoError(t, h.Handle(t.Context(), cmd))
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	})

	t.Run("admin of another region is refused", func(t *testing.T) {
		uow := newMockUoW()
		o := newOrder(t, kernel.NewUUID(), kernel.NewUUID())
		cmd, err := commands.NewUpdatePaymentStatusCommand(regionAdmin(kernel.NewUUID()), o.ID(), "paid")
		require.NoError(t, err)

		uow.expectBegin()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()

		h := commands.NewUpdatePaymentStatusCommandHandler(uowFactory{uow}.orders(), policy, clock)
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrRegionMismatch)
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("unknown payment status", func(t *testing.T) {
		_, err := commands.NewUpdatePaymentStatusCommand(superAdmin(), kernel.NewUUID(), "bartered")
		require.Error(t, err)
	})
}
