package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/core/ports"
)

// RecordDocumentUploadCommandHandler stores a checklist document blob and
// upserts its ledger record. The record keeps only the stable storage path;
// access URLs are minted fresh at read time by the document URL query.
type RecordDocumentUploadCommandHandler struct {
	uowFactory ShipmentUoWFactory
	storage    ports.BlobStorage
	publisher  ports.ChangePublisher
	logger     *slog.Logger
}

// NewRecordDocumentUploadCommandHandler creates a handler for document uploads.
func NewRecordDocumentUploadCommandHandler(
	uowFactory ShipmentUoWFactory, storage ports.BlobStorage, publisher ports.ChangePublisher, logger *slog.Logger,
) RecordDocumentUploadCommandHandler {
	return RecordDocumentUploadCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		publisher:  publisher,
		logger:     logger.With("component", "record_document_upload_handler"),
	}
}

// Handle stores the blob under the shipment's stable path for the key, then
// upserts the document record. Re-running the same command overwrites both
// blob and record, never duplicating either.
func (h RecordDocumentUploadCommandHandler) Handle(ctx context.Context, command RecordDocumentUploadCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	path := documentStoragePath(command.ShipmentID().String(), command.DocumentKey())
	if err := h.storage.Put(ctx, path, command.Content(), command.ContentType()); err != nil {
		return fmt.Errorf("store document blob: %w", err)
	}

	record, err := shipment.NewUploadedDocument(command.DocumentKey(), path, time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()

	// The aggregate must exist; fetching it also keeps the upsert honest
	// against deleted shipments.
	aggregate, err := repo.Get(ctx, command.ShipmentID())
	if err != nil {
		return err
	}
	aggregate.UpsertDocument(record)

	if err = repo.UpsertDocument(ctx, aggregate.ID(), record); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, aggregate.ID().String())
	return nil
}

func (h RecordDocumentUploadCommandHandler) publish(ctx context.Context, id string) {
	event := ports.ChangeEvent{Kind: ports.ChangeUpdated, EntityType: ports.EntityShipment, EntityID: id}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish shipment updated event", "shipment_id", id, "error", err)
	}
}

// documentStoragePath is the stable blob path for a (shipment, key) pair.
// Stability is what makes the upload an upsert.
func documentStoragePath(shipmentID string, key shipment.DocumentKey) string {
	return fmt.Sprintf("shipments/%s/documents/%s", shipmentID, key)
}
