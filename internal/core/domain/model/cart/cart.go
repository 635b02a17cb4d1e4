// Package cart accumulates the quantities a customer intends to order.
// Lines snapshot the product's price at the time they were added; checkout
// re-prices them against the live catalog.
package cart

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one product in the cart.
type Line struct {
	ProductID        kernel.UUID
	Name             string
	Price            decimal.Decimal
	PricePerQuantity int
	Unit             string
	Quantity         int
	RegionID         kernel.UUID
}

// Validate checks a stored line before it is trusted again. Every problem is
// reported, joined into one error.
func (l Line) Validate() error {
	var problems []error
	if err := l.ProductID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("product_id", err))
	}
	if err := l.RegionID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("region_id", err))
	}
	if strings.TrimSpace(l.Name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if l.Quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", l.Quantity)))
	}
	if l.PricePerQuantity < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("price_per_quantity",
			fmt.Errorf("%d is not greater than 0", l.PricePerQuantity)))
	}
	if l.Price.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidError("price"))
	}
	return errors.Join(problems...)
}

// Total is price / price_per_quantity * quantity.
func (l Line) Total() decimal.Decimal {
	return product.LineTotal(l.Price, l.PricePerQuantity, l.Quantity)
}

// Cart keeps lines in insertion order, one per product.
type Cart struct {
	lines []Line
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// RestoreCart rebuilds a cart from stored lines. Any invalid or duplicated
// line makes the whole payload unusable.
func RestoreCart(lines []Line) (*Cart, error) {
	c := NewCart()
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		if c.indexOf(line.ProductID) >= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("product %s appears more than once", line.ProductID))
		}
		c.lines = append(c.lines, line)
	}
	return c, nil
}

// AddItem increments the quantity of an existing line or appends a snapshot
// of the product. All lines must come from one region.
func (c *Cart) AddItem(p *product.Product, quantity int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if region, ok := c.RegionID(); ok && !region.IsEqual(p.RegionID()) {
		return errs.NewValueIsInvalidErrorWithCause("region_id",
			fmt.Errorf("cart holds products from region %s, product belongs to %s", region, p.RegionID()))
	}

	if i := c.indexOf(p.ID()); i >= 0 {
		c.lines[i].Quantity += quantity
		return nil
	}

	c.lines = append(c.lines, Line{
		ProductID:        p.ID(),
		Name:             p.Name(),
		Price:            p.Price(),
		PricePerQuantity: p.PricePerQuantity(),
		Unit:             p.Unit(),
		Quantity:         quantity,
		RegionID:         p.RegionID(),
	})
	return nil
}

// UpdateQuantity sets the quantity of a line. Zero or less behaves like
// Remove, so it is a no-op for a product that is not in the cart.
//
// Parameters:
//   - productID: the product whose line changes
//   - quantity: the new number of units
//
// Returns:
//   - error: ObjectNotFound when quantity is positive and no line holds
//     productID
//
// Example:
//
//	_ = c.UpdateQuantity(riceID, 5) // five units of rice
//	_ = c.UpdateQuantity(riceID, 0) // line removed
//	_ = c.UpdateQuantity(riceID, 0) // still nil, nothing to remove
func (c *Cart) UpdateQuantity(productID kernel.UUID, quantity int) error {
	if quantity <= 0 {
		c.Remove(productID)
		return nil
	}

	i := c.indexOf(productID)
	if i < 0 {
		return errs.NewObjectNotFoundError("cart item", productID.String())
	}
	c.lines[i].Quantity = quantity
	return nil
}

// Reprice refreshes the snapshot of the line holding p. It reports whether
// such a line exists.
func (c *Cart) Reprice(p *product.Product) bool {
	i := c.indexOf(p.ID())
	if i < 0 {
		return false
	}
	c.lines[i].Name = p.Name()
	c.lines[i].Price = p.Price()
	c.lines[i].PricePerQuantity = p.PricePerQuantity()
	c.lines[i].Unit = p.Unit()
	return true
}

// Remove drops the line holding productID. Removing a product that is not in
// the cart does nothing.
func (c *Cart) Remove(productID kernel.UUID) {
	if i := c.indexOf(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order. Changing the result
// does not change the cart.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// RegionID is the region of the cart's lines, if any.
func (c *Cart) RegionID() (kernel.UUID, bool) {
	if len(c.lines) == 0 {
		return kernel.UUID{}, false
	}
	return c.lines[0].RegionID, true
}

// Total sums the line totals. An empty cart totals zero.
//
// Example:
//
//	// 3 units at 100 per 10 units plus 2 units at 5 per unit
//	c.Total() // 40
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Total())
	}
	return total
}

// ItemCount is the number of units across all lines, not the number of lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) indexOf(productID kernel.UUID) int {
	for i, line := range c.lines {
		if line.ProductID.IsEqual(productID) {
			return i
		}
	}
	return -1
}
