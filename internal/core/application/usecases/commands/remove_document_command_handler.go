package commands

import (
	"context"
	"log/slog"

	"shipments/internal/core/ports"
)

// RemoveDocumentCommandHandler deletes a checklist document. The metadata
// record is the source of truth for gate evaluation, so it is always removed;
// the blob delete is best effort and a failure there only leaves an orphaned
// object behind.
type RemoveDocumentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	storage    ports.BlobStorage
	publisher  ports.ChangePublisher
	logger     *slog.Logger
}

// NewRemoveDocumentCommandHandler creates a handler for document removals.
func NewRemoveDocumentCommandHandler(
	uowFactory ShipmentUoWFactory, storage ports.BlobStorage, publisher ports.ChangePublisher, logger *slog.Logger,
) RemoveDocumentCommandHandler {
	return RemoveDocumentCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		publisher:  publisher,
		logger:     logger.With("component", "remove_document_handler"),
	}
}

// Handle removes the document record and then attempts the blob delete.
// If the blob delete fails the record stays removed and the failure is
// only logged.
func (h RemoveDocumentCommandHandler) Handle(ctx context.Context, command RemoveDocumentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()

	aggregate, err := repo.Get(ctx, command.ShipmentID())
	if err != nil {
		return err
	}

	record, found := aggregate.Document(command.DocumentKey())
	if !found {
		// Removing an absent document is a no-op.
		return nil
	}

	aggregate.RemoveDocument(command.DocumentKey())

	if err = repo.RemoveDocument(ctx, aggregate.ID(), command.DocumentKey()); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.storage.Delete(ctx, record.StoragePath()); err != nil {
		h.logger.WarnContext(ctx, "Document blob delete failed, metadata removed",
			"shipment_id", aggregate.ID().String(), "path", record.StoragePath(), "error", err)
	}

	h.publish(ctx, aggregate.ID().String())
	return nil
}

func (h RemoveDocumentCommandHandler) publish(ctx context.Context, id string) {
	event := ports.ChangeEvent{Kind: ports.ChangeUpdated, EntityType: ports.EntityShipment, EntityID: id}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish shipment updated event", "shipment_id", id, "error", err)
	}
}
