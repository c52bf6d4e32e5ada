package commands

import (
	"context"
	"log/slog"
	"time"

	"geodispatch/internal/core/domain/model/shift"
	"geodispatch/internal/pkg/metrics"
)

// CloseOverdueShiftsCommandHandler handles the shift watchdog sweep.
//
// Every overdue shift is closed in its own transaction: a failure on one
// shift is logged and the batch continues with the rest. The same close
// primitive serves manual closure, and closing is idempotent, so re-running
// the sweep over an already-closed shift is a no-op.
type CloseOverdueShiftsCommandHandler struct {
	uowFactory ShiftUoWFactory
	logger     *slog.Logger
}

// NewCloseOverdueShiftsCommandHandler creates a handler for the watchdog sweep.
func NewCloseOverdueShiftsCommandHandler(uowFactory ShiftUoWFactory, logger *slog.Logger) CloseOverdueShiftsCommandHandler {
	return CloseOverdueShiftsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "close_overdue_shifts"),
	}
}

// Handle processes one watchdog pass. Per-item failures never abort the
// batch; the returned error covers only the initial overdue-shift read.
func (h *CloseOverdueShiftsCommandHandler) Handle(ctx context.Context, cmd CloseOverdueShiftsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()
	overdue, err := h.getOverdue(ctx, now)
	if err != nil {
		return err
	}

	for _, s := range overdue {
		if err = h.closeOne(ctx, s, now); err != nil {
			h.logger.Error("failed to force-close shift",
				"shift_id", s.ID(), "courier_id", s.CourierID(), "error", err)
			continue
		}

		metrics.ShiftsForceClosed.Inc()
		h.logger.Info("shift force-closed",
			"shift_id", s.ID(), "courier_id", s.CourierID(),
			"expected_end_at", s.ExpectedEndAt())
	}

	return nil
}

func (h *CloseOverdueShiftsCommandHandler) getOverdue(ctx context.Context, now time.Time) ([]*shift.Shift, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	overdue, err := uow.ShiftRepository().GetOverdueOpen(ctx, now)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return overdue, nil
}

// closeOne force-closes a single shift in its own transaction, isolating
// failures to that shift.
func (h *CloseOverdueShiftsCommandHandler) closeOne(ctx context.Context, s *shift.Shift, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s.Close(now)
	if err := uow.ShiftRepository().Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
