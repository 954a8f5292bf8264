package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/core/ports"
)

// SendCorrespondenceCommandHandler mails shipment paperwork and records the
// correspondence on the aggregate. Requested attachments are pulled from blob
// storage by their stable paths; a key with no uploaded record is skipped.
type SendCorrespondenceCommandHandler struct {
	uowFactory ShipmentUoWFactory
	mailer     ports.Mailer
	storage    ports.BlobStorage
	logger     *slog.Logger
}

// NewSendCorrespondenceCommandHandler creates a handler for outbound
// correspondence.
func NewSendCorrespondenceCommandHandler(
	uowFactory ShipmentUoWFactory, mailer ports.Mailer, storage ports.BlobStorage, logger *slog.Logger,
) SendCorrespondenceCommandHandler {
	return SendCorrespondenceCommandHandler{
		uowFactory: uowFactory,
		mailer:     mailer,
		storage:    storage,
		logger:     logger.With("component", "send_correspondence_handler"),
	}
}

// Handle sends the mail and appends the correspondence record. The send
// happens before the record write; a failure to persist the record after a
// successful send is logged and returned, but the mail is already out.
func (h SendCorrespondenceCommandHandler) Handle(ctx context.Context, command SendCorrespondenceCommand) error {
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

	attachments, err := h.collectAttachments(ctx, aggregate, command.AttachKeys())
	if err != nil {
		return err
	}

	mailID, err := h.mailer.Send(ctx, command.Recipients(), command.Subject(), command.HTMLBody(), attachments)
	if err != nil {
		return fmt.Errorf("send correspondence: %w", err)
	}

	record, err := shipment.NewCorrespondenceRecord(command.Recipients(), command.Subject(), mailID, time.Now())
	if err != nil {
		return err
	}
	aggregate.AddCorrespondence(record)

	if err = repo.AppendCorrespondence(ctx, aggregate.ID(), record); err != nil {
		h.logger.ErrorContext(ctx, "Correspondence sent but record append failed",
			"shipment_id", aggregate.ID().String(), "mail_id", mailID, "error", err)
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Correspondence sent but record commit failed",
			"shipment_id", aggregate.ID().String(), "mail_id", mailID, "error", err)
		return err
	}

	return nil
}

func (h SendCorrespondenceCommandHandler) collectAttachments(
	ctx context.Context, aggregate *shipment.Shipment, keys []shipment.DocumentKey,
) ([]ports.Attachment, error) {
	var attachments []ports.Attachment
	for _, key := range keys {
		record, found := aggregate.Document(key)
		if !found || !record.IsUploaded() {
			h.logger.WarnContext(ctx, "Attachment skipped, document not uploaded",
				"shipment_id", aggregate.ID().String(), "document_key", string(key))
			continue
		}

		content, err := h.storage.Get(ctx, record.StoragePath())
		if err != nil {
			return nil, fmt.Errorf("fetch attachment %s: %w", key, err)
		}
		attachments = append(attachments, ports.Attachment{
			Filename: string(key) + ".pdf",
			MimeType: "application/pdf",
			Content:  content,
		})
	}
	return attachments, nil
}
