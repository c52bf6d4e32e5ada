package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"geodispatch/internal/core/application/events"
	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/ports"
	"geodispatch/internal/pkg/metrics"
)

// Dispatcher re-invokes the dispatch algorithm for an order. Implemented by
// DispatchOrderCommandHandler through a thin adapter in the composition
// root; the indirection keeps the expiry sweep testable without the full
// dispatch dependency set.
type Dispatcher interface {
	Dispatch(ctx context.Context, orderID kernel.UUID) error
}

// ExpireOffersCommandHandler handles the periodic offer expiry sweep.
//
// Each lapsed offer is expired with a compare-and-set: an acceptance that
// landed first wins and the sweep skips that row. Expired offers trigger an
// expiry broadcast and a reassignment attempt that excludes every courier
// the order was already offered to; soft dispatch outcomes are logged and
// never abort the rest of the sweep.
type ExpireOffersCommandHandler struct {
	uowFactory AssignmentUoWFactory
	dispatcher Dispatcher
	publisher  events.Publisher
	logger     *slog.Logger
}

// NewExpireOffersCommandHandler creates a handler for the expiry sweep.
func NewExpireOffersCommandHandler(
	uowFactory AssignmentUoWFactory,
	dispatcher Dispatcher,
	publisher events.Publisher,
	logger *slog.Logger,
) ExpireOffersCommandHandler {
	return ExpireOffersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger.With("component", "expire_offers"),
	}
}

// Handle processes one sweep pass.
func (h *ExpireOffersCommandHandler) Handle(ctx context.Context, cmd ExpireOffersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	expired, err := h.expireLapsed(ctx)
	if err != nil {
		return err
	}

	for _, a := range expired {
		metrics.OffersExpired.Inc()
		h.publisher.PublishOfferExpired(ctx, events.OfferExpired{
			AssignmentID: a.ID(),
			OrderID:      a.OrderID(),
			ExpiresAt:    a.ExpiresAt(),
		})

		if err = h.dispatcher.Dispatch(ctx, a.OrderID()); err != nil {
			switch {
			case errors.Is(err, ErrOrderLocked),
				errors.Is(err, ErrNoCourierAvailable),
				errors.Is(err, ErrAddressUnresolved):
				h.logger.Info("reassignment deferred", "order_id", a.OrderID(), "reason", err)
			case errors.Is(err, ErrReassignmentsExhausted):
				h.logger.Warn("order left undispatched", "order_id", a.OrderID(), "reason", err)
			default:
				h.logger.Error("reassignment failed", "order_id", a.OrderID(), "error", err)
			}
		}
	}

	return nil
}

// expireLapsed marks every lapsed offer expired in one transaction and
// returns the rows this sweep won.
func (h *ExpireOffersCommandHandler) expireLapsed(ctx context.Context) ([]*assignment.Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	lapsed, err := assignmentRepo.GetExpiredOffered(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	expired := make([]*assignment.Assignment, 0, len(lapsed))
	for _, a := range lapsed {
		if err = a.Expire(); err != nil {
			return nil, err
		}

		err = assignmentRepo.UpdateWithExpectedStatus(ctx, a, assignment.Offered)
		if errors.Is(err, ports.ErrConcurrentUpdate) {
			// an acceptance or a concurrent sweep won this row
			continue
		}
		if err != nil {
			return nil, err
		}

		expired = append(expired, a)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return expired, nil
}
