package commands

import (
	"errors"
	"fmt"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/pkg/guard"
)

var ErrRemoveDocumentCommandIsNotConstructed = errors.New(
	"RemoveDocumentCommand must be created via NewRemoveDocumentCommand constructor",
)

// RemoveDocumentCommand represents a request to delete one checklist document
// from a shipment.
type RemoveDocumentCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	documentKey shipment.DocumentKey

	guard guard.ConstructorGuard
}

// NewRemoveDocumentCommand creates a document removal command.
func NewRemoveDocumentCommand(
	shipmentID kernel.UUID, documentKey shipment.DocumentKey,
) (RemoveDocumentCommand, error) {
	command := RemoveDocumentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setDocumentKey(documentKey),
	); err != nil {
		return RemoveDocumentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveDocumentCommand) Validate() error {
	return c.guard.Validate(ErrRemoveDocumentCommandIsNotConstructed)
}

// ShipmentID returns the target shipment.
func (c RemoveDocumentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// DocumentKey returns the checklist key being removed.
func (c RemoveDocumentCommand) DocumentKey() shipment.DocumentKey {
	return c.documentKey
}

func (c *RemoveDocumentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *RemoveDocumentCommand) setDocumentKey(documentKey shipment.DocumentKey) error {
	if !shipment.IsKnownDocumentKey(documentKey) {
		return fmt.Errorf("%q is not part of any stage checklist", documentKey)
	}
	c.documentKey = documentKey
	return nil
}
