package commands_test

import (
	"context"
	"errors"
	"testing"

	"shipments/internal/core/application/usecases/commands"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockShipmentRepository) Update(_ context.Context, _ *shipment.Shipment) error { return nil }
func (m *MockShipmentRepository) UpdateStage(
	_ context.Context, _ kernel.UUID, _, _ shipment.Stage, _ int,
) error {
	return errors.New("not implemented in mock")
}
func (m *MockShipmentRepository) AppendTrackingEvent(
	_ context.Context, _ kernel.UUID, _ shipment.TrackingEvent,
) error {
	return errors.New("not implemented in mock")
}
func (m *MockShipmentRepository) UpsertDocument(
	_ context.Context, _ kernel.UUID, _ shipment.DocumentRecord,
) error {
	return errors.New("not implemented in mock")
}
func (m *MockShipmentRepository) RemoveDocument(
	_ context.Context, _ kernel.UUID, _ shipment.DocumentKey,
) error {
	return errors.New("not implemented in mock")
}
func (m *MockShipmentRepository) AppendCorrespondence(
	_ context.Context, _ kernel.UUID, _ shipment.CorrespondenceRecord,
) error {
	return errors.New("not implemented in mock")
}
func (m *MockShipmentRepository) Get(_ context.Context, _ kernel.UUID) (*shipment.Shipment, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockShipmentRepository) GetAll(_ context.Context) ([]*shipment.Shipment, error) {
	return nil, errors.New("not implemented in mock")
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCreateShipmentCommand(id, "F-2026-0042", "Fresh Produce Inc", "1200 Produce Row", "Laredo")

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &capturingPublisher{}
	h := commands.NewCreateShipmentCommandHandler(factory, publisher, discardLogger())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, ports.ChangeCreated, publisher.events[0].Kind)
	assert.Equal(t, ports.EntityShipment, publisher.events[0].EntityType)
	assert.Equal(t, id.String(), publisher.events[0].EntityID)
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateShipmentCommand{} // not constructed properly
	factory := new(MockShipmentUoWFactory)
	h := commands.NewCreateShipmentCommandHandler(factory, &capturingPublisher{}, discardLogger())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateShipmentCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), "F-2026-0042", "Fresh Produce Inc", "1200 Produce Row", "")

	uow := new(MockShipmentUoW)
	factory := new(MockShipmentUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateShipmentCommandHandler(factory, &capturingPublisher{}, discardLogger())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateShipmentCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), "F-2026-0042", "Fresh Produce Inc", "1200 Produce Row", "")

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &capturingPublisher{}
	h := commands.NewCreateShipmentCommandHandler(factory, publisher, discardLogger())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Empty(t, publisher.events)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateShipmentCommand(
		kernel.NewUUID(), "F-2026-0042", "Fresh Produce Inc", "1200 Produce Row", "")

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &capturingPublisher{}
	h := commands.NewCreateShipmentCommandHandler(factory, publisher, discardLogger())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Empty(t, publisher.events)
}
