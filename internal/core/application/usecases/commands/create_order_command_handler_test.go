package commands_test

import (
	"testing"

	"geodispatch/internal/core/application/events"
	"geodispatch/internal/core/application/usecases/commands"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_CreatesPendingOrderWithHistory(t *testing.T) {
	ctx := t.Context()
	uow := &MockUoW{}
	orderRepo := &MockOrderRepository{}
	publisher := &MockPublisher{}

	orderID := kernel.NewUUID()
	storeID := kernel.NewUUID()
	addressID := kernel.NewUUID()
	customerID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, storeID, addressID, customerID)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		uow.On("OrderRepository").Return(orderRepo),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("[]order.HistoryRecord")).Return(nil),
		uow.On("Commit", ctx).Return(nil),
		uow.On("Rollback", ctx).Return(nil),
		publisher.On("PublishOrderCreated", ctx, events.OrderCreated{
			OrderID: orderID,
			StoreID: storeID,
		}).Return(),
	)

	handler := commands.NewCreateOrderCommandHandler(
		FuncOrderUoWFactory(func() commands.OrderUoW { return uow }), publisher)
	err = handler.Handle(ctx, cmd)
	require.NoError(t, err)

	added := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	assert.True(t, added.ID().IsEqual(orderID))
	assert.Equal(t, order.Pending, added.Status())
	assert.Nil(t, added.Courier())

	records := orderRepo.Calls[1].Arguments.Get(1).([]order.HistoryRecord)
	require.Len(t, records, 1)
	assert.Equal(t, order.Pending, records[0].Status)
	assert.Equal(t, order.UserActor(customerID), records[0].ChangedBy)

	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_NoBroadcastWhenCommitFails(t *testing.T) {
	ctx := t.Context()
	uow := &MockUoW{}
	orderRepo := &MockOrderRepository{}
	publisher := &MockPublisher{}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		uow.On("OrderRepository").Return(orderRepo),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("[]order.HistoryRecord")).Return(nil),
		uow.On("Commit", ctx).Return(assert.AnError),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := commands.NewCreateOrderCommandHandler(
		FuncOrderUoWFactory(func() commands.OrderUoW { return uow }), publisher)
	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, assert.AnError)

	publisher.AssertNotCalled(t, "PublishOrderCreated", mock.Anything, mock.Anything)

	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}
