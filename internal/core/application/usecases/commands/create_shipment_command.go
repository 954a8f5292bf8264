package commands

import (
	"errors"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrFolioIsRequired     = errors.New("folio is required")
	ErrConsigneeIsRequired = errors.New("consignee is required")
	ErrAddressIsRequired   = errors.New("address is required")
)

// CreateShipmentCommand represents a request to register a new export
// shipment. The shipment is born at the cooler stage with one destination.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	folio      string
	consignee  string
	address    string
	city       string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment.
// Validates that the id is valid, the folio is not empty, and the
// destination names a consignee and address.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID, folio, consignee, address, city string,
) (CreateShipmentCommand, error) {
	command := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setFolio(folio),
		command.setDestination(consignee, address, city),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Folio returns the human-facing shipment reference.
func (c CreateShipmentCommand) Folio() string {
	return c.folio
}

// Consignee returns the receiving party of the initial destination.
func (c CreateShipmentCommand) Consignee() string {
	return c.consignee
}

// Address returns the delivery address of the initial destination.
func (c CreateShipmentCommand) Address() string {
	return c.address
}

// City returns the optional destination city.
func (c CreateShipmentCommand) City() string {
	return c.city
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setFolio(folio string) error {
	if folio == "" {
		return ErrFolioIsRequired
	}
	c.folio = folio
	return nil
}

func (c *CreateShipmentCommand) setDestination(consignee, address, city string) error {
	if consignee == "" {
		return ErrConsigneeIsRequired
	}
	if address == "" {
		return ErrAddressIsRequired
	}
	c.consignee = consignee
	c.address = address
	c.city = city
	return nil
}
