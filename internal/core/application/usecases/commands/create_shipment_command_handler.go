package commands

import (
	"context"
	"log/slog"
	"time"

	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/core/ports"
)

// CreateShipmentCommandHandler registers new shipment aggregates.
// After a successful commit it publishes a Created change event so the
// reconcilers of other connected clients pick the shipment up.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.ChangePublisher
	logger     *slog.Logger
}

// NewCreateShipmentCommandHandler creates a handler for shipment registration.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory, publisher ports.ChangePublisher, logger *slog.Logger,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "create_shipment_handler"),
	}
}

// Handle processes the shipment registration command.
// The aggregate is born at the cooler stage with the initial destination.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, command CreateShipmentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	destination, err := shipment.NewDestination(command.Consignee(), command.Address(), command.City())
	if err != nil {
		return err
	}

	aggregate, err := shipment.NewShipment(command.ShipmentID(), command.Folio(), time.Now())
	if err != nil {
		return err
	}
	aggregate.AddDestination(destination)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, aggregate.ID().String())
	return nil
}

// publish emits the Created change event. Publication failure never undoes
// the commit; it is logged and the reconcilers converge on the next event.
func (h CreateShipmentCommandHandler) publish(ctx context.Context, id string) {
	event := ports.ChangeEvent{Kind: ports.ChangeCreated, EntityType: ports.EntityShipment, EntityID: id}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish shipment created event", "shipment_id", id, "error", err)
	}
}
