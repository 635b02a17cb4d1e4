package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

type Order struct {
	id            kernel.UUID
	userID        kernel.UUID
	regionID      kernel.UUID
	status        Status
	paymentStatus PaymentStatus
	assignedTo    *kernel.UUID
	assignedAt    *time.Time
	deliveredAt   *time.Time
	delivery      *kernel.Location
	items         []Item
	createdAt     time.Time
	updatedAt     time.Time

	// status as last read from or written to storage; used for conditional writes
	persistedStatus Status
	events          []Event
	isConstructed   bool
}

// NewOrder places a pending, unpaid order for userID in regionID and records
// the placed event.
//
// Parameters:
//   - id: the order identifier, chosen by the caller so retries stay idempotent
//   - userID: the customer placing the order
//   - regionID: the region every item was priced in
//   - items: at least one line, unit prices already fixed
//   - delivery: the optional drop-off point
//   - now: the placement time
//
// Returns:
//   - *Order: the new order in Pending with PaymentPending
//   - error: every invalid argument, joined into one error
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, regionID, items, nil, now)
//	if err != nil {
//	    return err
//	}
//	o.Status() // pending
func NewOrder(
	id, userID, regionID kernel.UUID,
	items []Item,
	delivery *kernel.Location,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setRegionID(regionID),
		o.setItems(items),
		o.setDelivery(delivery),
	); err != nil {
		return nil, err
	}

	o.persistedStatus = Pending
	o.record(Event{Name: EventPlaced, ActorID: userID, ToStatus: Pending, OccurredAt: now})
	return o, nil
}

// Snapshot is the full persisted state of an order.
type Snapshot struct {
	ID            kernel.UUID
	UserID        kernel.UUID
	RegionID      kernel.UUID
	Status        Status
	PaymentStatus PaymentStatus
	AssignedTo    *kernel.UUID
	AssignedAt    *time.Time
	DeliveredAt   *time.Time
	Delivery      *kernel.Location
	Items         []Item
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestoreOrder rebuilds an order from storage and re-checks its invariants:
// assigned_at is set exactly when assigned_to is, and delivered_at exactly
// when the status is delivered. No event is recorded.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setUserID(s.UserID),
		o.setRegionID(s.RegionID),
		o.setItems(s.Items),
		o.setDelivery(s.Delivery),
		s.Status.Validate(),
		s.PaymentStatus.Validate(),
		validateAssignment(s.AssignedTo, s.AssignedAt),
		validateDelivered(s.Status, s.DeliveredAt),
	); err != nil {
		return nil, err
	}

	o.status = s.Status
	o.persistedStatus = s.Status
	o.paymentStatus = s.PaymentStatus
	o.assignedTo = s.AssignedTo
	o.assignedAt = s.AssignedAt
	o.deliveredAt = s.DeliveredAt
	return o, nil
}

// Validate reports ErrOrderIsNotConstructed for a nil or zero order.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
//
// Returns:
//   - true if both orders have the same ID
//   - false if other is nil or the IDs differ
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the customer who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// RegionID returns the region the order belongs to. It never changes.
func (o *Order) RegionID() kernel.UUID {
	return o.regionID
}

// Status returns the current lifecycle status, including unsaved changes.
func (o *Order) Status() Status {
	return o.status
}

// PersistedStatus is the status the stored row is expected to hold.
func (o *Order) PersistedStatus() Status {
	return o.persistedStatus
}

// PaymentStatus returns the payment status, independent of the lifecycle.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// AssignedTo returns the assigned courier.
// Returns nil if no courier is assigned.
func (o *Order) AssignedTo() *kernel.UUID {
	return o.assignedTo
}

// AssignedAt returns when the current courier was assigned.
// It is nil exactly when AssignedTo is nil.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// DeliveredAt returns when the order entered delivered.
// It is nil for every other status.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Delivery returns the drop-off point, or nil when none was given.
func (o *Order) Delivery() *kernel.Location {
	return o.delivery
}

// Items returns a copy of the order lines in placement order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// CreatedAt returns the placement time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Total sums the line totals at the unit prices fixed on placement.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Total())
	}
	return total
}

// Snapshot returns the full state for persistence. The items are a copy;
// the pointer fields are shared and must not be modified.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:            o.id,
		UserID:        o.userID,
		RegionID:      o.regionID,
		Status:        o.status,
		PaymentStatus: o.paymentStatus,
		AssignedTo:    o.assignedTo,
		AssignedAt:    o.assignedAt,
		DeliveredAt:   o.deliveredAt,
		Delivery:      o.delivery,
		Items:         o.Items(),
		CreatedAt:     o.createdAt,
		UpdatedAt:     o.updatedAt,
	}
}

// TransitionTo moves the order to target and records a status change event.
//
// This method enforces the following business rules:
//   - target must be a known status
//   - cancelled is reachable from pending and confirmed only
//   - terminal orders never change
//   - otherwise target must be the next status on the happy path
//
// Entering delivered stamps DeliveredAt. On error the order is unchanged.
//
// Parameters:
//   - target: the requested status
//   - actorID: the caller, recorded on the event
//   - now: the time of the change
//
// Returns:
//   - nil on success
//   - error of kind cancellation_not_allowed, terminal_state or
//     illegal_transition otherwise
//
// Example:
//
//	if err := o.TransitionTo(order.Confirmed, adminID, now); err != nil {
//	    return err
//	}
func (o *Order) TransitionTo(target Status, actorID kernel.UUID, now time.Time) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	previous := o.status
	o.status = next
	if next == Delivered {
		o.deliveredAt = &now
	}
	o.updatedAt = now

	o.record(Event{Name: EventStatusChanged, ActorID: actorID, FromStatus: previous, ToStatus: next, OccurredAt: now})
	return nil
}

// Cancel is TransitionTo(Cancelled).
func (o *Order) Cancel(actorID kernel.UUID, now time.Time) error {
	return o.TransitionTo(Cancelled, actorID, now)
}

// AssignCourier sets, replaces or, with a nil courierID, clears the courier.
// AssignedTo and AssignedAt always change together. Assigning the current
// courier again is a no-op and records nothing.
//
// Parameters:
//   - courierID: the new courier, nil to unassign
//   - actorID: the caller, recorded on the event
//   - now: the assignment time
//
// Returns:
//   - nil on success
//   - error of kind terminal_state once the order is delivered or cancelled
//
// Example:
//
//	_ = o.AssignCourier(&courierID, adminID, now) // assigned
//	_ = o.AssignCourier(nil, adminID, now)        // unassigned again
func (o *Order) AssignCourier(courierID *kernel.UUID, actorID kernel.UUID, now time.Time) error {
	if !o.status.CanAssign() {
		return errs.NewTerminalStateError(o.status.String(), "assign courier")
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("courier_id", err)
		}
	}
	if kernel.SameUUID(o.assignedTo, courierID) {
		return nil
	}

	if courierID == nil {
		o.assignedTo = nil
		o.assignedAt = nil
	} else {
		id := *courierID
		o.assignedTo = &id
		o.assignedAt = &now
	}
	o.updatedAt = now

	o.record(Event{
		Name:       EventCourierAssigned,
		ActorID:    actorID,
		FromStatus: o.status,
		ToStatus:   o.status,
		Courier:    o.assignedTo,
		OccurredAt: now,
	})
	return nil
}

// IsAssignedTo reports whether courierID is the current assignee.
func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.assignedTo != nil && o.assignedTo.IsEqual(courierID)
}

// SetPaymentStatus records a payment status change. Payment may change in any
// lifecycle status; setting the current value again is a no-op.
func (o *Order) SetPaymentStatus(status PaymentStatus, actorID kernel.UUID, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == o.paymentStatus {
		return nil
	}

	o.paymentStatus = status
	o.updatedAt = now
	o.record(Event{
		Name:       EventPaymentUpdated,
		ActorID:    actorID,
		FromStatus: o.status,
		ToStatus:   o.status,
		Payment:    status,
		OccurredAt: now,
	})
	return nil
}

// Events returns the changes recorded since the last ClearEvents.
func (o *Order) Events() []Event {
	events := make([]Event, len(o.events))
	copy(events, o.events)
	return events
}

// ClearEvents drops the recorded events once they were handed off.
func (o *Order) ClearEvents() {
	o.events = nil
}

// MarkPersisted is called by repositories once the current state is stored.
func (o *Order) MarkPersisted() {
	o.persistedStatus = o.status
}

func (o *Order) record(e Event) {
	e.OrderID = o.id
	e.RegionID = o.regionID
	o.events = append(o.events, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user_id", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setRegionID(regionID kernel.UUID) error {
	if err := regionID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("region_id", err)
	}
	o.regionID = regionID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ProductID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("product %s appears more than once", item.ProductID()))
		}
		seen[item.ProductID()] = struct{}{}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDelivery(delivery *kernel.Location) error {
	if delivery == nil {
		return nil
	}
	if err := delivery.Validate(); err != nil {
		return err
	}
	loc := *delivery
	o.delivery = &loc
	return nil
}

func validateAssignment(assignedTo *kernel.UUID, assignedAt *time.Time) error {
	if (assignedTo == nil) != (assignedAt == nil) {
		return errs.NewValueIsInvalidErrorWithCause("assigned_at",
			errors.New("assigned_at must be set exactly when assigned_to is set"))
	}
	return nil
}

func validateDelivered(status Status, deliveredAt *time.Time) error {
	if (status == Delivered) != (deliveredAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause("delivered_at",
			fmt.Errorf("delivered_at must be set exactly when status is delivered, status is %s", status))
	}
	return nil
}
