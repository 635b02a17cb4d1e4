package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartFixture struct {
	uow      *MockUoW
	storage  *MockCartStorage
	placer   *MockOrderPlacer
	customer profile.Customer
	acc      *commands.CartAccumulator
}

func newCartFixture() cartFixture {
	f := cartFixture{
		uow:      newMockUoW(),
		storage:  new(MockCartStorage),
		placer:   new(MockOrderPlacer),
		customer: approvedCustomer(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.acc = commands.NewCartAccumulator(f.storage, uowFactory{f.uow}.catalog(), f.placer, policy, logger)
	return f
}

func TestCartAccumulator_AddItem(t *testing.T) {
	t.Run("snapshots the product into a new cart", func(t *testing.T) {
		f := newCartFixture()
		p := newProduct(t, kernel.NewUUID(), "12.5", 1)

		f.uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
		f.storage.On("Load", mock.Anything, f.customer.ID).Return(nil, nil).Once()
		f.storage.On("Save", mock.Anything, f.customer.ID, []cart.Line{lineOf(p, 2)}).Return(nil).Once()

		c, err := f.acc.AddItem(t.Context(), f.customer, p.ID(), 2)

		require.NoError(t, err)
		assert.Equal(t, 2, c.ItemCount())
		assert.True(t, c.Total().Equal(decimal.NewFromInt(25)))
		f.storage.AssertExpectations(t)
	})

	t.Run("inactive product is refused", func(t *testing.T) {
		f := newCartFixture()
		p := newProduct(t, kernel.NewUUID(), "1", 1)
		p.SetActive(false, now)
		f.uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()

		_, err := f.acc.AddItem(t.Context(), f.customer, p.ID(), 1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		f.storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("product from another region is refused", func(t *testing.T) {
		f := newCartFixture()
		held := newProduct(t, kernel.NewUUID(), "1", 1)
		other := newProduct(t, kernel.NewUUID(), "1", 1)
		f.uow.products.On("Get", mock.Anything, other.ID()).Return(other, nil).Once()
		f.storage.On("Load", mock.Anything, f.customer.ID).Return([]cart.Line{lineOf(held, 1)}, nil).Once()

		_, err := f.acc.AddItem(t.Context(), f.customer, other.ID(), 1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		f.storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unavailable storage starts an empty cart", func(t *testing.T) {
		f := newCartFixture()
		p := newProduct(t, kernel.NewUUID(), "3", 1)
		f.uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
		f.storage.On("Load", mock.Anything, f.customer.ID).Return(nil, errors.New("connection refused")).Once()
		f.storage.On("Save", mock.Anything, f.customer.ID, mock.Anything).Return(errors.New("connection refused")).Once()

		c, err := f.acc.AddItem(t.Context(), f.customer, p.ID(), 1)

		require.NoError(t, err)
		assert.Len(t, c.Lines(), 1)
	})

	t.Run("unapproved customers cannot shop", func(t *testing.T) {
		f := newCartFixture()
		pending := profile.Customer{ID: kernel.NewUUID(), KYC: profile.KYCPending}

		_, err := f.acc.AddItem(t.Context(), pending, kernel.NewUUID(), 1)

		require.ErrorIs(t, err, errs.ErrForbidden)
		f.uow.products.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestCartAccumulator_Get(t *testing.T) {
	t.Run("corrupt cart is discarded", func(t *testing.T) {
		f := newCartFixture()
		p := newProduct(t, kernel.NewUUID(), "1", 1)
		corrupt := []cart.Line{lineOf(p, 1), lineOf(p, 2)}
		f.storage.On("Load", mock.Anything, f.customer.ID).Return(corrupt, nil).Once()
		f.storage.On("Delete", mock.Anything, f.customer.ID).Return(nil).Once()

		c, err := f.acc.Get(t.Context(), f.customer)

		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
		f.storage.AssertExpectations(t)
	})
}

func TestCartAccumulator_UpdateQuantity(t *testing.T) {
	t.Run("zero removes the last line and deletes the cart", func(t *testing.T) {
		f := newCartFixture()
		p := newProduct(t, kernel.NewUUID(), "1", 1)
		f.storage.On("Load", mock.Anything, f.customer.ID).Return([]cart.Line{lineOf(p, 4)}, nil).Once()
		f.storage.On("Delete", mock.Anything, f.customer.ID).Return(nil).Once()

		c, err := f.acc.UpdateQuantity(t.Context(), f.customer, p.ID(), 0)

		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
		f.storage.AssertExpectations(t)
	})

	t.Run("unknown line is not found", func(t *testing.T) {
		f := newCartFixture()
		f.storage.On("Load", mock.Anything, f.customer.ID).Return(nil, nil).Once()

		_, err := f.acc.UpdateQuantity(t.Context(), f.customer, kernel.NewUUID(), 3)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	}
	t.Run("zero for a product not in the cart is a no-op", func(t *testing.T) {
		f := newCartFixture()
		p := newProduct(t, kernel.NewUUID(), "1", 1)
		f.storage.On("Load", mock.Anything, f.customer.ID).Return([]cart.Line{lineOf(p, 4)}, nil).Once()
		f.storage.On("Save", mock.Anything, f.customer.ID, []cart.Line{lineOf(p, 4)}).Return(nil).Once()

		c, err := f.acc.UpdateQuantity(t.Context(), f.customer, kernel.NewUUID(), 0)

		require.NoError(t, err)
		assert.Equal(t, 4, c.ItemCount())
		f.storage.AssertExpectations(t)
	})
}

func TestCartAccumulator_Checkout(t *testing.T) {
	t.Run("places the order and empties the cart", func(t *testing.T) {
		f := newCartFixture()
		p := newProduct(t, kernel.NewUUID(), "7", 1)
		orderID := kernel.NewUUID()
		f.storage.On("Load", mock.Anything, f.customer.ID).Return([]cart.Line{lineOf(p, 2)}, nil).Once()
		f.placer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PlaceOrderCommand) bool {
			return cmd.OrderID().IsEqual(orderID) && len(cmd.Lines()) == 1 && cmd.RegionID().IsEqual(p.RegionID())
		})).Return(nil).Once()
		f.storage.On("Delete", mock.Anything, f.customer.ID).Return(nil).Once()

		require.NoError(t, f.acc.Checkout(t.Context(), f.customer, orderID, nil))
		f.placer.AssertExpectations(t)
		f.storage.AssertExpectations(t)
	})

	t.Run("empty cart cannot be checked out", func(t *testing.T) {
		f := newCartFixture()
		f.storage.On("Load", mock.Anything, f.customer.ID).Return(nil, nil).Once()

		err := f.acc.Checkout(t.Context(), f.customer, kernel.NewUUID(), nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		f.placer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("price change refreshes the cart and is reported", func(t *testing.T) {
		f := newCartFixture()
		p := newProduct(t, kernel.NewUUID(), "7", 1)
		line := lineOf(p, 2)
		require.NoError(t, p.Update(product.Details{Name: "Rice", Price: decimal.NewFromInt(9), PricePerQuantity: 1, Unit: "kg"}, now))
		refreshed := lineOf(p, 2)

		f.storage.On("Load", mock.Anything, f.customer.ID).Return([]cart.Line{line}, nil).Once()
		f.placer.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewPriceChangedError([]string{p.ID().String()})).Once()
		f.uow.products.On("GetMany", mock.Anything, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once()
		f.storage.On("Save", mock.Anything, f.customer.ID, []cart.Line{refreshed}).Return(nil).Once()

		err := f.acc.Checkout(t.Context(), f.customer, kernel.NewUUID(), nil)

		require.ErrorIs(t, err, errs.ErrPriceChanged)
		f.storage.AssertExpectations(t)
		f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("other failures keep the cart untouched", func(t *testing.T) {
		f := newCartFixture()
		p := newProduct(t, kernel.NewUUID(), "7", 1)
		f.storage.On("Load", mock.Anything, f.customer.ID).Return([]cart.Line{lineOf(p, 1)}, nil).Once()
		f.placer.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewStoreUnavailableError("postgres", errors.New("down"))).Once()

		err := f.acc.Checkout(t.Context(), f.customer, kernel.NewUUID(), nil)

		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
		f.storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
