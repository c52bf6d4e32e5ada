package commands_test

import (
	"testing"
	"time"

	"geodispatch/internal/core/application/usecases/commands"
	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/ports"
	"geodispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRejectHandler(uow *MockUoW, dispatcher *MockDispatcher) commands.RejectAssignmentCommandHandler {
	return commands.NewRejectAssignmentCommandHandler(
		FuncAssignmentUoWFactory(func() commands.AssignmentUoW { return uow }),
		dispatcher, discardLogger())
}

func TestRejectAssignmentCommandHandler_DeclineTriggersReassignment(t *testing.T) {
	ctx := t.Context()
	uow := &MockUoW{}
	assignmentRepo := &MockAssignmentRepository{}
	dispatcher := &MockDispatcher{}

	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	a := makeOffer(t, orderID, courierID, time.Minute)

	cmd, err := commands.NewRejectAssignmentCommand(a.ID(), courierID)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		uow.On("AssignmentRepository").Return(assignmentRepo),
		assignmentRepo.On("Get", ctx, a.ID()).Return(a, nil),
		assignmentRepo.On("UpdateWithExpectedStatus", ctx, a, assignment.Offered).Return(nil),
		uow.On("Commit", ctx).Return(nil),
		uow.On("Rollback", ctx).Return(nil),
		dispatcher.On("Dispatch", ctx, orderID).Return(nil),
	)

	handler := newRejectHandler(uow, dispatcher)
	err = handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, assignment.Rejected, a.Status())

	uow.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestRejectAssignmentCommandHandler_LosesRaceToExpiryIsNoOp(t *testing.T) {
	ctx := t.Context()
	uow := &MockUoW{}
	assignmentRepo := &MockAssignmentRepository{}
	dispatcher := &MockDispatcher{}

	courierID := kernel.NewUUID()
	a := makeOffer(t, kernel.NewUUID(), courierID, time.Minute)

	cmd, err := commands.NewRejectAssignmentCommand(a.ID(), courierID)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		uow.On("AssignmentRepository").Return(assignmentRepo),
		assignmentRepo.On("Get", ctx, a.ID()).Return(a, nil),
		assignmentRepo.On("UpdateWithExpectedStatus", ctx, a, assignment.Offered).
			Return(ports.ErrConcurrentUpdate),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := newRejectHandler(uow, dispatcher)
	err = handler.Handle(ctx, cmd)
	require.NoError(t, err, "a decline beaten by the expiry sweep has nothing left to do")

	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
}

func TestRejectAssignmentCommandHandler_WrongCourier(t *testing.T) {
	ctx := t.Context()
	uow := &MockUoW{}
	assignmentRepo := &MockAssignmentRepository{}
	dispatcher := &MockDispatcher{}

	a := makeOffer(t, kernel.NewUUID(), kernel.NewUUID(), time.Minute)

	cmd, err := commands.NewRejectAssignmentCommand(a.ID(), kernel.NewUUID())
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		uow.On("AssignmentRepository").Return(assignmentRepo),
		assignmentRepo.On("Get", ctx, a.ID()).Return(a, nil),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := newRejectHandler(uow, dispatcher)
	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, assignment.Offered, a.Status())
	assignmentRepo.AssertNotCalled(t, "UpdateWithExpectedStatus", mock.Anything, mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestRejectAssignmentCommandHandler_SoftDispatchOutcomeDoesNotFailDecline(t *testing.T) {
	ctx := t.Context()
	uow := &MockUoW{}
	assignmentRepo := &MockAssignmentRepository{}
	dispatcher := &MockDispatcher{}

	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	a := makeOffer(t, orderID, courierID, time.Minute)

	cmd, err := commands.NewRejectAssignmentCommand(a.ID(), courierID)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		uow.On("AssignmentRepository").Return(assignmentRepo),
		assignmentRepo.On("Get", ctx, a.ID()).Return(a, nil),
		assignmentRepo.On("UpdateWithExpectedStatus", ctx, a, assignment.Offered).Return(nil),
		uow.On("Commit", ctx).Return(nil),
		uow.On("Rollback", ctx).Return(nil),
		dispatcher.On("Dispatch", ctx, orderID).Return(commands.ErrNoCourierAvailable),
	)

	handler := newRejectHandler(uow, dispatcher)
	err = handler.Handle(ctx, cmd)
	require.NoError(t, err, "the decline already committed; reassignment retries later")

	uow.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}
