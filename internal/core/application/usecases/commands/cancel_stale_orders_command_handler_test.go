package commands_test

import (
	"testing"
	"time"

	"geodispatch/internal/core/application/usecases/commands"
	"geodispatch/internal/core/domain/model/order"
	"geodispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelStaleOrdersCommandHandler_CancelsWithTimeoutActor(t *testing.T) {
	ctx := t.Context()
	uow := &MockUoW{}
	orderRepo := &MockOrderRepository{}

	stale := makePendingOrder(t, time.Now().Add(-time.Hour))

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		uow.On("OrderRepository").Return(orderRepo),
		orderRepo.On("GetStalePending", ctx, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{stale}, nil),
		orderRepo.On("UpdateWithExpectedStatus", ctx, stale, order.Pending).Return(nil),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("[]order.HistoryRecord")).Return(nil),
		uow.On("Commit", ctx).Return(nil),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := commands.NewCancelStaleOrdersCommandHandler(
		FuncOrderUoWFactory(func() commands.OrderUoW { return uow }),
		15*time.Minute, discardLogger())
	err := handler.Handle(ctx, commands.NewCancelStaleOrdersCommand())
	require.NoError(t, err)

	assert.Equal(t, order.Cancelled, stale.Status())

	cutoff := orderRepo.Calls[0].Arguments.Get(1).(time.Time)
	assert.WithinDuration(t, time.Now().Add(-15*time.Minute), cutoff, time.Second)

	records := orderRepo.Calls[2].Arguments.Get(1).([]order.HistoryRecord)
	require.Len(t, records, 1)
	assert.Equal(t, order.Cancelled, records[0].Status)
	assert.Equal(t, order.SystemTimeoutActor, records[0].ChangedBy)
	assert.Equal(t, "pending timeout exceeded", records[0].Note)

	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCancelStaleOrdersCommandHandler_SkipsOrderConfirmedMeanwhile(t *testing.T) {
	ctx := t.Context()
	uow := &MockUoW{}
	orderRepo := &MockOrderRepository{}

	confirmed := makePendingOrder(t, time.Now().Add(-time.Hour))
	stillStale := makePendingOrder(t, time.Now().Add(-time.Hour))

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		uow.On("OrderRepository").Return(orderRepo),
		orderRepo.On("GetStalePending", ctx, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{confirmed, stillStale}, nil),
		orderRepo.On("UpdateWithExpectedStatus", ctx, confirmed, order.Pending).
			Return(ports.ErrConcurrentUpdate),
		orderRepo.On("UpdateWithExpectedStatus", ctx, stillStale, order.Pending).Return(nil),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("[]order.HistoryRecord")).Return(nil),
		uow.On("Commit", ctx).Return(nil),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := commands.NewCancelStaleOrdersCommandHandler(
		FuncOrderUoWFactory(func() commands.OrderUoW { return uow }),
		15*time.Minute, discardLogger())
	err := handler.Handle(ctx, commands.NewCancelStaleOrdersCommand())
	require.NoError(t, err)

	orderRepo.AssertNumberOfCalls(t, "AppendHistory", 1)

	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}
