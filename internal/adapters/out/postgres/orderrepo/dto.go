// Package orderrepo maps order aggregates onto the orders and order_items
// tables. Items are written once, when the order is placed.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	RegionID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status        string          `gorm:"type:varchar(16);not null;index"`
	PaymentStatus string          `gorm:"type:varchar(16);not null"`
	AssignedTo    *uuid.UUID      `gorm:"type:uuid;index"`
	AssignedAt    *time.Time
	DeliveredAt   *time.Time
	Delivery      LocationDTO     `gorm:"embedded;embeddedPrefix:delivery_"`
	Total         decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	CreatedAt     time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime:false"`
	Items         []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO holds the optional drop-off point; both columns are null when
// the order has none.
type LocationDTO struct {
	Lat *float64
	Lng *float64
}

type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"type:int;not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,4);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	orderID := s.ID.Bytes()

	items := make([]OrderItemDTO, 0, len(s.Items))
	for i, item := range s.Items {
		items = append(items, OrderItemDTO{
			OrderID:   orderID,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	var delivery LocationDTO
	if s.Delivery != nil {
		lat, lng := s.Delivery.Lat(), s.Delivery.Lng()
		delivery = LocationDTO{Lat: &lat, Lng: &lng}
	}

	var assignedTo *uuid.UUID
	if s.AssignedTo != nil {
		raw := s.AssignedTo.Bytes()
		assignedTo = &raw
	}

	return OrderDTO{
		ID:            orderID,
		UserID:        s.UserID.Bytes(),
		RegionID:      s.RegionID.Bytes(),
		Status:        s.Status.String(),
		PaymentStatus: s.PaymentStatus.String(),
		AssignedTo:    assignedTo,
		AssignedAt:    s.AssignedAt,
		DeliveredAt:   s.DeliveredAt,
		Delivery:      delivery,
		Total:         o.Total(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Items:         items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	regionID, err := kernel.UUIDFromBytes(dto.RegionID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	payment, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		courierID, courierErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		assignedTo = &courierID
	}

	var delivery *kernel.Location
	if dto.Delivery.Lat != nil && dto.Delivery.Lng != nil {
		loc, locErr := kernel.NewLocation(*dto.Delivery.Lat, *dto.Delivery.Lng)
		if locErr != nil {
			return nil, locErr
		}
		delivery = &loc
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            id,
		UserID:        userID,
		RegionID:      regionID,
		Status:        status,
		PaymentStatus: payment,
		AssignedTo:    assignedTo,
		AssignedAt:    dto.AssignedAt,
		DeliveredAt:   dto.DeliveredAt,
		Delivery:      delivery,
		Items:         items,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(productID, dto.Quantity, dto.UnitPrice)
}
