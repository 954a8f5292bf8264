package commands

import (
	"errors"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/pkg/guard"
)

var (
	ErrAdvanceShipmentCommandIsNotConstructed = errors.New(
		"AdvanceShipmentCommand must be created via NewAdvanceShipmentCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")
)

// AdvanceShipmentCommand represents a request to move a shipment one stage
// forward. A regular command re-evaluates the gate synchronously before
// commit; a resumed command (created by the approval executor) bypasses the
// gate exactly once and carries the literal target stage that was approved.
type AdvanceShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	actor       string
	note        string
	bypassGate  bool
	targetStage shipment.Stage

	guard guard.ConstructorGuard
}

// NewAdvanceShipmentCommand creates a gate-checked advance request.
func NewAdvanceShipmentCommand(shipmentID kernel.UUID, actor, note string) (AdvanceShipmentCommand, error) {
	command := AdvanceShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setActor(actor),
	); err != nil {
		return AdvanceShipmentCommand{}, err
	}

	command.note = note
	return command, nil
}

// NewResumedAdvanceShipmentCommand creates the advance that completes an
// approved gate override. The target stage is the literal value persisted
// in the approval request's context data; the handler verifies it still
// matches the shipment's next stage before committing.
func NewResumedAdvanceShipmentCommand(
	shipmentID kernel.UUID, targetStage shipment.Stage, actor string,
) (AdvanceShipmentCommand, error) {
	command := AdvanceShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setActor(actor),
		targetStage.Validate(),
	); err != nil {
		return AdvanceShipmentCommand{}, err
	}

	command.bypassGate = true
	command.targetStage = targetStage
	command.note = "gate override approved"
	return command, nil
}

// Validate ensures the command was created through a constructor.
func (c AdvanceShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to advance.
func (c AdvanceShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Actor returns who requested the advance.
func (c AdvanceShipmentCommand) Actor() string {
	return c.actor
}

// Note returns the optional tracking annotation.
func (c AdvanceShipmentCommand) Note() string {
	return c.note
}

// BypassGate reports whether this is an approval-resumed advance.
func (c AdvanceShipmentCommand) BypassGate() bool {
	return c.bypassGate
}

// TargetStage returns the approved target stage of a resumed advance.
// Only meaningful when BypassGate is true.
func (c AdvanceShipmentCommand) TargetStage() shipment.Stage {
	return c.targetStage
}

func (c *AdvanceShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *AdvanceShipmentCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
