package order

import (
	"errors"
	"time"

	"geodispatch/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCourierAlreadyAssigned is returned when a second, different courier
	// is written to an order whose courier reference is already set.
	ErrCourierAlreadyAssigned = errors.New("order already has a courier assigned")
)

// Order represents a delivery order. It is the aggregate root for the order
// lifecycle from creation through dispatch to delivery.
//
// Order follows these invariants:
//   - Must have valid identifiers for itself, its store and its delivery address
//   - Status transitions follow the rules encoded in Status
//   - The courier reference is written at most once, on assignment acceptance
//   - Every status change is recorded as a StatusChanged event, including creation
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// storeID references the store preparing the order (pickup side)
	storeID kernel.UUID

	// addressID references the delivery address (drop side)
	addressID kernel.UUID

	// courierID is the accepted courier, nil until an assignment is accepted
	courierID *kernel.UUID

	// status represents the current state in the order lifecycle
	status Status

	// createdAt is the creation time of the order
	createdAt time.Time

	// events accumulates status changes until drained by TakeEvents
	events []StatusChanged

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status and records the creation
// entry as the first StatusChanged event.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - storeID: The store preparing the order
//   - addressID: The delivery address
//   - actor: Who created the order, written into the creation history entry
//   - now: Creation timestamp
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id, storeID, addressID kernel.UUID, actor Actor, now time.Time) (*Order, error) {
	order := &Order{
		status:        Pending,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setStoreID(storeID),
		order.setAddressID(addressID),
		actor.Validate(),
	); err != nil {
		return nil, err
	}

	order.record(Unknown, Pending, actor, "order created", now)
	return order, nil
}

// RestoreOrder reconstructs an Order from persistent storage.
// No events are recorded; restored orders start with an empty event list.
func RestoreOrder(
	id, storeID, addressID kernel.UUID,
	courierID *kernel.UUID,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setStoreID(storeID),
		order.setAddressID(addressID),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		c := *courierID
		order.courierID = &c
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// StoreID returns the store reference for pickup coordinates.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// AddressID returns the delivery address reference.
func (o *Order) AddressID() kernel.UUID {
	return o.addressID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation time of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Courier returns the accepted courier's ID, or nil while unassigned.
func (o *Order) Courier() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	c := *o.courierID
	return &c
}

// IsDispatchable reports whether the order is eligible for a dispatch
// attempt: confirmed or ready, with no courier pinned yet. Used as the
// idempotent guard that makes duplicate dispatch triggers a no-op.
func (o *Order) IsDispatchable() bool {
	return (o.status == Processing || o.status == ReadyForDelivery) && o.courierID == nil
}

// Confirm moves the order from Pending to Processing.
func (o *Order) Confirm(actor Actor, now time.Time) error {
	return o.AdvanceTo(Processing, actor, "order confirmed", now)
}

// MarkReady moves the order to ReadyForDelivery, making it dispatchable.
func (o *Order) MarkReady(actor Actor, now time.Time) error {
	return o.AdvanceTo(ReadyForDelivery, actor, "order ready for delivery", now)
}

// MarkOnTheWay moves the order to OnTheWay when a courier reports transit.
func (o *Order) MarkOnTheWay(actor Actor, now time.Time) error {
	return o.AdvanceTo(OnTheWay, actor, "courier picked up the order", now)
}

// MarkDelivered moves the order to its terminal Delivered status.
func (o *Order) MarkDelivered(actor Actor, now time.Time) error {
	return o.AdvanceTo(Delivered, actor, "order delivered", now)
}

// Cancel moves the order to Cancelled from any non-terminal status.
// The note explains the cancellation reason in the history trail.
func (o *Order) Cancel(actor Actor, note string, now time.Time) error {
	return o.AdvanceTo(Cancelled, actor, note, now)
}

// AdvanceTo transitions the order to the target status and records the
// change as a StatusChanged event.
//
// The transition is idempotent: advancing to the current status is a no-op
// and records nothing. Backward transitions and transitions out of a
// terminal status fail, keeping the audit trail strictly forward.
func (o *Order) AdvanceTo(target Status, actor Actor, note string, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if target == o.status {
		return nil
	}

	if err := o.status.ValidateAdvanceTo(target); err != nil {
		return err
	}

	from := o.status
	o.status = target
	o.record(from, target, actor, note, now)
	return nil
}

// AssignCourier pins the accepted courier on the order.
//
// The courier reference is write-once: assigning the same courier again is
// an idempotent no-op, assigning a different courier fails with
// ErrCourierAlreadyAssigned.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		if o.courierID.IsEqual(courierID) {
			return nil
		}
		return ErrCourierAlreadyAssigned
	}

	o.courierID = &courierID
	return nil
}

// TakeEvents drains and returns the accumulated status change events.
// Handlers call this once per unit of work to persist history rows and
// relay broadcasts; subsequent calls return nil until new changes occur.
func (o *Order) TakeEvents() []StatusChanged {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) record(from, to Status, actor Actor, note string, at time.Time) {
	o.events = append(o.events, StatusChanged{
		OrderID:   o.id,
		From:      from,
		To:        to,
		ChangedBy: actor,
		Note:      note,
		ChangedAt: at,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	o.addressID = addressID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
