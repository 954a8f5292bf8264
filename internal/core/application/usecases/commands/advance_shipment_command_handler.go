package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shipments/internal/core/application/interception"
	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/core/domain/services"
	"shipments/internal/core/ports"
	"shipments/internal/pkg/errs"
)

// ActionAdvanceShipment is the guarded-action key for advancing a shipment
// past an unsatisfied document gate.
const ActionAdvanceShipment = "shipment.advance_override"

// Context-data keys of the serialized advance continuation. The values are
// literals — a shipment id and a target stage identifier — sufficient to
// re-derive the advance in any process, which is what lets an approval
// granted after the requester disconnected still complete the transition.
const (
	ContextKeyShipmentID  = "shipment_id"
	ContextKeyTargetStage = "target_stage"
	ContextKeyActor       = "actor"
)

// ErrStaleApprovedStage is returned when an approval-resumed advance finds
// the shipment no longer one step behind the approved target stage.
var ErrStaleApprovedStage = errors.New("approved target stage no longer matches the shipment's next stage")

// AdvanceOutcome classifies the result of an advance request.
type AdvanceOutcome int

const (
	// OutcomeAdvanced means the stage transition was committed.
	OutcomeAdvanced AdvanceOutcome = iota + 1

	// OutcomeGateBlocked means required documents are missing and a pending
	// approval request was opened (or coalesced) instead of the transition.
	OutcomeGateBlocked
)

// AdvanceResult reports the outcome of an advance request. A blocked gate
// is a control result, not an error: Missing carries the ordered list of
// blocking documents and ApprovalID the pending override request.
type AdvanceResult struct {
	Outcome    AdvanceOutcome
	From       shipment.Stage
	To         shipment.Stage
	Missing    []shipment.DocumentKey
	ApprovalID string
}

// GateOverrideInterceptor is the slice of the approval interceptor the
// advance handler needs: submitting a guarded gate override.
type GateOverrideInterceptor interface {
	Intercept(
		ctx context.Context, actionKey, contextID string, contextData map[string]string, requestedBy string,
	) (interception.InterceptResult, error)
}

// AdvanceShipmentCommandHandler owns the stage state machine. A committed
// advance persists the new stage under a compare-and-swap on the observed
// (stage, version) pair, then appends a tracking event in a separate write.
// A gate-blocked advance mutates nothing and opens an approval interception
// instead; the approval executor re-invokes this handler with the gate
// bypassed exactly once.
type AdvanceShipmentCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	gate        services.StageGate
	interceptor GateOverrideInterceptor
	publisher   ports.ChangePublisher
	notifier    ports.LifecycleNotifier
	logger      *slog.Logger
}

// NewAdvanceShipmentCommandHandler creates a handler for stage advances.
func NewAdvanceShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	interceptor GateOverrideInterceptor,
	publisher ports.ChangePublisher,
	notifier ports.LifecycleNotifier,
	logger *slog.Logger,
) AdvanceShipmentCommandHandler {
	return AdvanceShipmentCommandHandler{
		uowFactory:  uowFactory,
		gate:        services.NewStageGate(),
		interceptor: interceptor,
		publisher:   publisher,
		notifier:    notifier,
		logger:      logger.With("component", "advance_shipment_handler"),
	}
}

// Handle processes one advance request.
//
// The gate is re-evaluated synchronously immediately before commit. There is
// no server-side transactional guard across concurrent callers — the CAS on
// the persisted (stage, version) pair is what rejects the loser of a race,
// with ports.ErrStageConflict telling the caller to re-fetch and re-evaluate.
func (h AdvanceShipmentCommandHandler) Handle(
	ctx context.Context, command AdvanceShipmentCommand,
) (AdvanceResult, error) {
	if err := command.Validate(); err != nil {
		return AdvanceResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()

	aggregate, err := repo.Get(ctx, command.ShipmentID())
	if err != nil {
		return AdvanceResult{}, err
	}

	// Gate preconditions: a shipment without a destination cannot advance
	// at all. This aborts before any mutation.
	if len(aggregate.Destinations()) == 0 {
		return AdvanceResult{}, errs.NewValueIsRequiredError("destination")
	}

	if aggregate.Stage().IsTerminal() {
		return AdvanceResult{}, shipment.ErrShipmentAlreadyDelivered
	}

	currentStage := aggregate.Stage()
	version := aggregate.Version()

	if !command.BypassGate() {
		gateResult, gateErr := h.gate.Evaluate(aggregate, currentStage)
		if gateErr != nil {
			return AdvanceResult{}, gateErr
		}
		if !gateResult.Satisfied {
			return h.escalate(ctx, aggregate, gateResult.Missing, command.Actor())
		}
	} else if command.TargetStage() != currentStage.Next() {
		// The shipment moved between interception and approval; the
		// approved continuation no longer applies.
		return AdvanceResult{}, ErrStaleApprovedStage
	}

	from, to, err := aggregate.Advance()
	if err != nil {
		return AdvanceResult{}, err
	}

	if err = repo.UpdateStage(ctx, aggregate.ID(), from, to, version); err != nil {
		return AdvanceResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return AdvanceResult{}, err
	}

	// The stage commit is final from here on. The tracking append and the
	// change-event publication may still fail, but neither blocks nor
	// reverses stage progress.
	h.appendTracking(ctx, aggregate, from, to, command.Actor(), command.Note())
	h.publish(ctx, aggregate.ID().String())

	h.notifier.OnAdvanced(aggregate, from, to)
	if command.BypassGate() {
		h.notifier.OnApprovalResumed(aggregate)
	}

	return AdvanceResult{Outcome: OutcomeAdvanced, From: from, To: to}, nil
}

// escalate opens (or coalesces onto) a pending gate-override approval
// instead of running the transition. Nothing on the shipment is mutated.
func (h AdvanceShipmentCommandHandler) escalate(
	ctx context.Context, aggregate *shipment.Shipment, missing []shipment.DocumentKey, actor string,
) (AdvanceResult, error) {
	contextData := map[string]string{
		ContextKeyShipmentID:  aggregate.ID().String(),
		ContextKeyTargetStage: aggregate.Stage().Next().String(),
		ContextKeyActor:       actor,
	}

	interceptResult, err := h.interceptor.Intercept(
		ctx, ActionAdvanceShipment, aggregate.ID().String(), contextData, actor,
	)
	if err != nil {
		return AdvanceResult{}, err
	}

	if interceptResult.Outcome == interception.OutcomeExecuted {
		// Policy allowed the override to run immediately: the resumed
		// advance already committed the transition, so the gate never
		// blocked anything worth announcing.
		return AdvanceResult{
			Outcome: OutcomeAdvanced,
			From:    aggregate.Stage(),
			To:      aggregate.Stage().Next(),
			Missing: missing,
		}, nil
	}

	h.notifier.OnGateBlocked(aggregate, missing)

	return AdvanceResult{
		Outcome:    OutcomeGateBlocked,
		From:       aggregate.Stage(),
		To:         aggregate.Stage().Next(),
		Missing:    missing,
		ApprovalID: interceptResult.RequestID.String(),
	}, nil
}

// appendTracking writes the audit entry for a committed transition in its
// own transaction. A failure here is logged and swallowed: stage
// correctness is preserved over audit completeness.
func (h AdvanceShipmentCommandHandler) appendTracking(
	ctx context.Context, aggregate *shipment.Shipment, from, to shipment.Stage, actor, note string,
) {
	event, err := shipment.NewTrackingEvent(from, to, actor, time.Now(), note)
	if err != nil {
		h.logger.ErrorContext(ctx, "Tracking event rejected after stage commit",
			"shipment_id", aggregate.ID().String(), "error", err)
		return
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Tracking append transaction failed to begin",
			"shipment_id", aggregate.ID().String(), "error", err)
		return
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().AppendTrackingEvent(ctx, aggregate.ID(), event); err != nil {
		h.logger.ErrorContext(ctx, "Tracking event append failed after stage commit",
			"shipment_id", aggregate.ID().String(), "from", from.String(), "to", to.String(), "error", err)
		return
	}
	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Tracking event commit failed after stage commit",
			"shipment_id", aggregate.ID().String(), "error", err)
		return
	}

	aggregate.AppendTrackingEvent(event)
}

func (h AdvanceShipmentCommandHandler) publish(ctx context.Context, id string) {
	event := ports.ChangeEvent{Kind: ports.ChangeUpdated, EntityType: ports.EntityShipment, EntityID: id}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish shipment updated event", "shipment_id", id, "error", err)
	}
}
