package commands_test

import (
	"errors"
	"strings"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func details(name, price string) product.Details {
	return product.Details{Name: name, Price: decimal.RequireFromString(price), PricePerQuantity: 1, Unit: "pcs"}
}

func TestCreateProductCommandHandler_Handle(t *testing.T) {
	t.Run("admin adds a product to their region", func(t *testing.T) {
		uow := newMockUoW()
		r := newRegion(t)
		cmd, err := commands.NewCreateProductCommand(regionAdmin(r.ID()), kernel.NewUUID(), r.ID(), details("Soap", "3.50"))
		require.NoError(t, err)

		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil).Once(),
			uow.regions.On("Get", mock.Anything, r.ID()).Return(r, nil).Once(),
			uow.products.On("Add", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil).Once(),
			uow.On("Commit", mock.Anything).Return(nil).Once(),
		)

		h := commands.NewCreateProductCommandHandler(uowFactory{uow}.catalog(), policy, clock)
		require.NoError(t, h.Handle(t.Context(), cmd))
		uow.assertExpectations(t)
	})

	t.Run("admin of another region gets a region mismatch", func(t *testing.T) {
		uow := newMockUoW()
		cmd, err := commands.NewCreateProductCommand(regionAdmin(kernel.NewUUID()), kernel.NewUUID(), kernel.NewUUID(), details("Soap", "3.50"))
		require.NoError(t, err)

		h := commands.NewCreateProductCommandHandler(uowFactory{uow}.catalog(), policy, clock)
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrRegionMismatch)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("invalid details are rejected before storage", func(t *testing.T) {
		uow := newMockUoW()
		regionID := kernel.NewUUID()
		cmd, err := commands.NewCreateProductCommand(superAdmin(), kernel.NewUUID(), regionID, details("", "-1"))
		require.NoError(t, err)

		h := commands.NewCreateProductCommandHandler(uowFactory{uow}.catalog(), policy, clock)
		err = h.Handle(t.Context(), cmd)

		assert.Equal(t, errs.KindValidation, errs.Kind(err))
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}

func TestUpdateProductCommandHandler_Handle(t *testing.T) {
	t.Run("updates details atomically", func(t *testing.T) {
		uow := newMockUoW()
		regionID := kernel.NewUUID()
		p := newProduct(t, regionID, "10", 1)
		cmd, err := commands.NewUpdateProductCommand(regionAdmin(regionID), p.ID(), details("Brown rice", "12"))
		require.NoError(t, err)

		uow.expectBegin()
		uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
		uow.products.On("Update", mock.Anything, p).Return(nil).Once()
		uow.expectCommit()

		h := commands.NewUpdateProductCommandHandler(uowFactory{uow}.catalog(), policy, clock)
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, "Brown rice", p.Name())
		assert.True(t, p.Price().Equal(decimal.NewFromInt(12)))
	})

	t.Run("regular admin cannot edit another region's product", func(t *testing.T) {
		uow := newMockUoW()
		p := newProduct(t, kernel.NewUUID(), "10", 1)
		cmd, err := commands.NewUpdateProductCommand(regionAdmin(kernel.NewUUID()), p.ID(), details("Brown rice", "12"))
		require.NoError(t, err)

		uow.expectBegin()
		uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()

		h := commands.NewUpdateProductCommandHandler(uowFactory{uow}.catalog(), policy, clock)
		err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrRegionMismatch)
		assert.Equal(t, "Rice", p.Name())
		uow.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("customers are forbidden", func(t *testing.T) {
		uow := newMockUoW()
		cmd, err := commands.NewUpdateProductCommand(approvedCustomer(), kernel.NewUUID(), details("x", "1"))
		require.NoError(t, err)

		h := commands.NewUpdateProductCommandHandler(uowFactory{uow}.catalog(), policy, clock)
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrForbidden)
	})
}

func TestSetProductActiveCommandHandler_Handle(t *testing.T) {
	uow := newMockUoW()
	p := newProduct(t, kernel.NewUUID(), "10", 1)
	cmd, err := commands.NewSetProductActiveCommand(superAdmin(), p.ID(), false)
	require.NoError(t, err)

	uow.expectBegin()
	uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	uow.products.On("Update", mock.Anything, p).Return(nil).Once()
	uow.expectCommit()

	h := commands.NewSetProductActiveCommandHandler(uowFactory{uow}.catalog(), policy, clock)
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.False(t, p.IsActive())
}

func TestUploadProductImageCommandHandler_Handle(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G'}

	t.Run("stores the image and records its URL", func(t *testing.T) {
		uow := newMockUoW()
		storage := new(MockObjectStorage)
		p := newProduct(t, kernel.NewUUID(), "10", 1)
		cmd, err := commands.NewUploadProductImageCommand(superAdmin(), p.ID(), "image/png", image)
		require.NoError(t, err)

		uow.expectBegin()
		uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
		storage.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "products/"+p.ID().String()+"/") && strings.HasSuffix(key, ".png")
		}), image, "image/png").Return("https://cdn.example.com/products/x.png", nil).Once()
		uow.products.On("Update", mock.Anything, p).Return(nil).Once()
		uow.expectCommit()

		h := commands.NewUploadProductImageCommandHandler(uowFactory{uow}.catalog(), storage, policy, clock)
		url, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/products/x.png", url)
		assert.Equal(t, url, p.ImageURL())
		storage.AssertExpectations(t)
	})

	t.Run("storage failure leaves the product untouched", func(t *testing.T) {
		uow := newMockUoW()
		storage := new(MockObjectStorage)
		p := newProduct(t, kernel.NewUUID(), "10", 1)
		cmd, err := commands.NewUploadProductImageCommand(superAdmin(), p.ID(), "image/png", image)
		require.NoError(t, err)

		uow.expectBegin()
		uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
		storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errs.NewTimeoutError("blob", errors.New("deadline"))).Once()

		h := commands.NewUploadProductImageCommandHandler(uowFactory{uow}.catalog(), storage, policy, clock)
		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrTimeout)
		assert.Empty(t, p.ImageURL())
		uow.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects unsupported and oversized files", func(t *testing.T) {
		_, err := commands.NewUploadProductImageCommand(superAdmin(), kernel.NewUUID(), "application/pdf", image)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = commands.NewUploadProductImageCommand(superAdmin(), kernel.NewUUID(), "image/png", make([]byte, commands.MaxImageSize+1))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = commands.NewUploadProductImageCommand(superAdmin(), kernel.NewUUID(), "image/png", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
