package commands

import (
	"errors"
	"fmt"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/pkg/guard"
)

var (
	ErrRecordDocumentUploadCommandIsNotConstructed = errors.New(
		"RecordDocumentUploadCommand must be created via NewRecordDocumentUploadCommand constructor",
	)
	ErrDocumentContentIsRequired = errors.New("document content is required")
)

// RecordDocumentUploadCommand represents a request to store one checklist
// document for a shipment. The upload is an idempotent upsert keyed by
// (shipment, document key): re-uploading replaces the blob and the record.
type RecordDocumentUploadCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	documentKey shipment.DocumentKey
	content     []byte
	contentType string

	guard guard.ConstructorGuard
}

// NewRecordDocumentUploadCommand creates an upload command. The key must
// belong to some stage checklist and the content must be non-empty.
func NewRecordDocumentUploadCommand(
	shipmentID kernel.UUID, documentKey shipment.DocumentKey, content []byte, contentType string,
) (RecordDocumentUploadCommand, error) {
	command := RecordDocumentUploadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setDocumentKey(documentKey),
		command.setContent(content),
	); err != nil {
		return RecordDocumentUploadCommand{}, err
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	command.contentType = contentType
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDocumentUploadCommand) Validate() error {
	return c.guard.Validate(ErrRecordDocumentUploadCommandIsNotConstructed)
}

// ShipmentID returns the target shipment.
func (c RecordDocumentUploadCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// DocumentKey returns the checklist key being uploaded.
func (c RecordDocumentUploadCommand) DocumentKey() shipment.DocumentKey {
	return c.documentKey
}

// Content returns the document bytes.
func (c RecordDocumentUploadCommand) Content() []byte {
	return c.content
}

// ContentType returns the MIME type of the blob.
func (c RecordDocumentUploadCommand) ContentType() string {
	return c.contentType
}

func (c *RecordDocumentUploadCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *RecordDocumentUploadCommand) setDocumentKey(documentKey shipment.DocumentKey) error {
	if !shipment.IsKnownDocumentKey(documentKey) {
		return fmt.Errorf("%q is not part of any stage checklist", documentKey)
	}
	c.documentKey = documentKey
	return nil
}

func (c *RecordDocumentUploadCommand) setContent(content []byte) error {
	if len(content) == 0 {
		return ErrDocumentContentIsRequired
	}
	c.content = content
	return nil
}
