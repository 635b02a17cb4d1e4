// Package product models catalog entries. Every product belongs to exactly one
// region and is priced per a bundle of units (price for PricePerQuantity units).
package product

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

type Product struct {
	id               kernel.UUID
	regionID         kernel.UUID
	name             string
	price            decimal.Decimal
	pricePerQuantity int
	unit             string
	imageURL         string
	isActive         bool
	createdAt        time.Time
	updatedAt        time.Time

	isConstructed bool
}

// Details are the admin-editable fields of a product.
type Details struct {
	Name             string
	Price            decimal.Decimal
	PricePerQuantity int
	Unit             string
}

func NewProduct(id, regionID kernel.UUID, details Details, now time.Time) (*Product, error) {
	p := &Product{
		isActive:      true,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(p.setID(id), p.setRegionID(regionID), p.setDetails(details)); err != nil {
		return nil, err
	}
	return p, nil
}

// Snapshot is the full persisted state of a product.
type Snapshot struct {
	ID        kernel.UUID
	RegionID  kernel.UUID
	Details   Details
	ImageURL  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func RestoreProduct(s Snapshot) (*Product, error) {
	p, err := NewProduct(s.ID, s.RegionID, s.Details, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.imageURL = s.ImageURL
	p.isActive = s.IsActive
	p.updatedAt = s.UpdatedAt
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) RegionID() kernel.UUID {
	return p.regionID
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Price() decimal.Decimal {
	return p.price
}

func (p *Product) PricePerQuantity() int {
	return p.pricePerQuantity
}

func (p *Product) Unit() string {
	return p.unit
}

func (p *Product) ImageURL() string {
	return p.imageURL
}

func (p *Product) IsActive() bool {
	return p.isActive
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Product) Snapshot() Snapshot {
	return Snapshot{
		ID:       p.id,
		RegionID: p.regionID,
		Details: Details{
			Name:             p.name,
			Price:            p.price,
			PricePerQuantity: p.pricePerQuantity,
			Unit:             p.unit,
		},
		ImageURL:  p.imageURL,
		IsActive:  p.isActive,
		CreatedAt: p.createdAt,
		UpdatedAt: p.updatedAt,
	}
}

// LineTotal is the price of quantity units: price / price_per_quantity * quantity.
func (p *Product) LineTotal(quantity int) decimal.Decimal {
	return LineTotal(p.price, p.pricePerQuantity, quantity)
}

// LineTotal multiplies before dividing so bundle prices stay exact.
func LineTotal(price decimal.Decimal, pricePerQuantity, quantity int) decimal.Decimal {
	if pricePerQuantity <= 0 {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(quantity))).Div(decimal.NewFromInt(int64(pricePerQuantity)))
}

func (p *Product) Update(details Details, now time.Time) error {
	candidate := *p
	if err := candidate.setDetails(details); err != nil {
		return err
	}
	candidate.updatedAt = now
	*p = candidate
	return nil
}

func (p *Product) SetActive(active bool, now time.Time) {
	p.isActive = active
	p.updatedAt = now
}

func (p *Product) SetImageURL(raw string, now time.Time) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("image_url", fmt.Errorf("%q is not an absolute URL", raw))
	}
	p.imageURL = raw
	p.updatedAt = now
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setRegionID(regionID kernel.UUID) error {
	if err := regionID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("region_id", err)
	}
	p.regionID = regionID
	return nil
}

func (p *Product) setDetails(d Details) error {
	name := strings.TrimSpace(d.Name)
	unit := strings.TrimSpace(d.Unit)

	var problems []error
	if name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if unit == "" {
		problems = append(problems, errs.NewValueIsRequiredError("unit"))
	}
	if d.Price.IsNegative() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is negative", d.Price)))
	}
	if d.PricePerQuantity < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("price_per_quantity",
			fmt.Errorf("%d is not greater than 0", d.PricePerQuantity)))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	p.name = name
	p.unit = unit
	p.price = d.Price
	p.pricePerQuantity = d.PricePerQuantity
	return nil
}
