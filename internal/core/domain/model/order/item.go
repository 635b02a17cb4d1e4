package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// unitPricePlaces bounds the precision of per-unit prices derived from bundle prices.
const unitPricePlaces = 4

var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("order item must be created via NewItem")

// Item is an order line. UnitPrice is the price of a single unit at checkout.
type Item struct {
	productID kernel.UUID
	quantity  int
	unitPrice decimal.Decimal
	guard     guard.ConstructorGuard
}

func NewItem(productID kernel.UUID, quantity int, unitPrice decimal.Decimal) (Item, error) {
	var problems []error
	if err := productID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("product_id", err))
	}
	if quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if unitPrice.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("unit_price",
			fmt.Errorf("%s is negative", unitPrice)))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return Item{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// UnitPriceOf derives the single-unit price from a bundle price.
func UnitPriceOf(price decimal.Decimal, pricePerQuantity int) decimal.Decimal {
	if pricePerQuantity <= 1 {
		return price
	}
	return price.DivRound(decimal.NewFromInt(int64(pricePerQuantity)), unitPricePlaces)
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() kernel.UUID {
	return i.productID
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i Item) Total() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
