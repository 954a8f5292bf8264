package commands

import (
	"context"
	"fmt"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/pkg/errs"
)

// AdvanceShipmentActionExecutor resumes an approved gate override. It is
// registered with the approval interceptor under ActionAdvanceShipment and
// reconstructs the advance purely from the persisted context data: a
// shipment id and a literal target stage identifier.
type AdvanceShipmentActionExecutor struct {
	handler AdvanceShipmentCommandHandler
}

// NewAdvanceShipmentActionExecutor creates the executor for approved advances.
func NewAdvanceShipmentActionExecutor(handler AdvanceShipmentCommandHandler) AdvanceShipmentActionExecutor {
	return AdvanceShipmentActionExecutor{handler: handler}
}

// Execute re-derives the advance from context data and runs it with the
// gate bypassed. The bypass applies to exactly this one invocation.
func (e AdvanceShipmentActionExecutor) Execute(ctx context.Context, contextData map[string]string) error {
	rawID, ok := contextData[ContextKeyShipmentID]
	if !ok {
		return errs.NewValueIsRequiredError(ContextKeyShipmentID)
	}
	rawStage, ok := contextData[ContextKeyTargetStage]
	if !ok {
		return errs.NewValueIsRequiredError(ContextKeyTargetStage)
	}

	shipmentID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return err
	}
	targetStage, err := shipment.ParseStage(rawStage)
	if err != nil {
		return err
	}

	actor := contextData[ContextKeyActor]
	if actor == "" {
		actor = "approval"
	}

	command, err := NewResumedAdvanceShipmentCommand(shipmentID, targetStage, actor)
	if err != nil {
		return err
	}

	result, err := e.handler.Handle(ctx, command)
	if err != nil {
		return err
	}
	if result.Outcome != OutcomeAdvanced {
		return fmt.Errorf("resumed advance of shipment %s did not commit", rawID)
	}
	return nil
}
