package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"geodispatch/internal/core/application/events"
	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/services"
	"geodispatch/internal/core/ports"
	"geodispatch/internal/pkg/errs"
	"geodispatch/internal/pkg/metrics"
)

// DispatchOrderCommandHandler runs the dispatch decision for one order:
// take the per-order lease, re-verify eligibility, rank candidates, and
// persist exactly one new offer.
//
// The read-decide-write sequence runs entirely under the lease, so two
// concurrent attempts for the same order produce exactly one offered
// assignment. The loser of the lease gets ErrOrderLocked, which jobs treat
// as a retryable non-event.
type DispatchOrderCommandHandler struct {
	uowFactory      DispatchUoWFactory
	locker          ports.OrderLocker
	publisher       events.Publisher
	selector        services.CandidateSelector
	lockTTL         time.Duration
	offerTTL        time.Duration
	maxReassignment int
}

// NewDispatchOrderCommandHandler creates a handler for dispatch operations.
//
// Parameters:
//   - uowFactory: transaction scope over orders, assignments, couriers and stores
//   - locker: the per-order dispatch lease
//   - publisher: post-commit event fan-out (offer notification)
//   - lockTTL: lease duration covering the read-decide-write window
//   - offerTTL: how long a courier has to accept an offer
//   - maxReassignment: bound on reassignment attempts per order
func NewDispatchOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	locker ports.OrderLocker,
	publisher events.Publisher,
	lockTTL, offerTTL time.Duration,
	maxReassignment int,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory:      uowFactory,
		locker:          locker,
		publisher:       publisher,
		selector:        services.NewCandidateSelector(),
		lockTTL:         lockTTL,
		offerTTL:        offerTTL,
		maxReassignment: maxReassignment,
	}
}

// Handle processes one dispatch attempt.
//
// Soft outcomes, all safe to retry on a later sweep:
//   - ErrOrderLocked: another worker holds the lease
//   - ErrNoCourierAvailable: no eligible candidate right now
//   - ErrReassignmentsExhausted: the order ran out of attempts
//   - ErrAddressUnresolved: the delivery address has no usable drop point
//
// An order that is not dispatchable (wrong status, courier already pinned,
// live offer outstanding) is a silent no-op, making duplicate triggers
// idempotent.
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	token, acquired, err := h.locker.Acquire(ctx, cmd.OrderID(), h.lockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		return ErrOrderLocked
	}

	defer func() {
		_ = h.locker.Release(ctx, cmd.OrderID(), token)
	}()

	offer, deviceToken, err := h.dispatch(ctx, cmd.OrderID())
	if err != nil || offer == nil {
		return err
	}

	metrics.OffersCreated.Inc()
	h.publisher.PublishOfferCreated(ctx, events.OfferCreated{
		AssignmentID: offer.ID(),
		OrderID:      offer.OrderID(),
		CourierID:    offer.CourierID(),
		DeviceToken:  deviceToken,
		ExpiresAt:    offer.ExpiresAt(),
	})

	return nil
}

// dispatch runs the decision inside one transaction and returns the
// persisted offer, or (nil, nil) for the idempotent no-op case.
func (h *DispatchOrderCommandHandler) dispatch(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	// Eligibility is re-verified here, under the lease, right before any
	// write. A duplicate trigger on an already-handled order stops here.
	if !o.IsDispatchable() {
		return nil, "", nil
	}

	assignmentRepo := uow.AssignmentRepository()
	if _, err = assignmentRepo.GetLiveByOrder(ctx, orderID); err == nil {
		return nil, "", nil
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, "", err
	}

	attempts, err := assignmentRepo.CountByOrder(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if attempts > h.maxReassignment {
		metrics.ReassignmentsExhausted.Inc()
		return nil, "", fmt.Errorf("%w: order %s after %d attempts", ErrReassignmentsExhausted, orderID, attempts)
	}

	pickupStore, err := uow.StoreRepository().Get(ctx, o.StoreID())
	if err != nil {
		return nil, "", err
	}

	// The drop side must be deliverable before any courier is burned on the
	// order: an address without coordinates or without a resolved zone has
	// no destination to dispatch to.
	dropAddress, err := uow.AddressRepository().Get(ctx, o.AddressID())
	if err != nil {
		return nil, "", err
	}
	if dropAddress.Point() == nil || !dropAddress.IsResolved() {
		return nil, "", fmt.Errorf("%w: order %s, address %s", ErrAddressUnresolved, orderID, dropAddress.ID())
	}

	offeredIDs, err := assignmentRepo.GetOfferedCourierIDs(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	excluded := make(map[string]struct{}, len(offeredIDs))
	for _, id := range offeredIDs {
		excluded[id.String()] = struct{}{}
	}

	couriers, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return nil, "", err
	}

	candidates, err := h.selector.Select(pickupStore.Location(), couriers, excluded)
	if err != nil {
		return nil, "", err
	}
	if len(candidates) == 0 {
		metrics.NoCourierAvailable.Inc()
		return nil, "", fmt.Errorf("%w: order %s", ErrNoCourierAvailable, orderID)
	}

	best := candidates[0]
	now := time.Now()
	offer, err := assignment.NewAssignment(kernel.NewUUID(), orderID, best.ID(), now, now.Add(h.offerTTL))
	if err != nil {
		return nil, "", err
	}

	if err = assignmentRepo.Add(ctx, offer); err != nil {
		return nil, "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, "", err
	}

	return offer, best.DeviceToken(), nil
}
