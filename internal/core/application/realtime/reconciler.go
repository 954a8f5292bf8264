package realtime

import (
	"context"
	"errors"
	"log/slog"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/ports"
	"shipments/internal/pkg/errs"
)

// Reconciler keeps a Workspace consistent with the persisted shipments by
// consuming change events. Every event carries only the entity id; the
// reconciler refetches the full aggregate and replaces the held state
// wholesale, so processing the same event twice converges to the same
// workspace (events are idempotent).
type Reconciler struct {
	workspace *Workspace
	repo      ports.ShipmentRepository
	stream    ports.ChangeStream
	logger    *slog.Logger
}

// NewReconciler creates a reconciler over the given workspace.
func NewReconciler(
	workspace *Workspace, repo ports.ShipmentRepository, stream ports.ChangeStream, logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		workspace: workspace,
		repo:      repo,
		stream:    stream,
		logger:    logger.With("component", "shipment_reconciler"),
	}
}

// Run subscribes to shipment change events and applies them until the
// context is cancelled or the stream fails.
func (r *Reconciler) Run(ctx context.Context) error {
	return r.stream.Subscribe(ctx, ports.EntityShipment, r.apply)
}

// apply processes one change event.
//
// Created and Updated both resolve to refetch-and-replace: the distinction
// carries no extra payload, and replacement makes a Created for an already
// held shipment or an Updated for an unseen one equally harmless. Deleted
// removes the shipment and clears the selection if it pointed there.
func (r *Reconciler) apply(ctx context.Context, event ports.ChangeEvent) error {
	switch event.Kind {
	case ports.ChangeCreated, ports.ChangeUpdated:
		return r.refresh(ctx, event.EntityID)
	case ports.ChangeDeleted:
		r.workspace.Remove(event.EntityID)
		r.logger.InfoContext(ctx, "Shipment removed from workspace", "shipment_id", event.EntityID)
		return nil
	default:
		r.logger.WarnContext(ctx, "Unknown change kind ignored",
			"kind", string(event.Kind), "shipment_id", event.EntityID)
		return nil
	}
}

func (r *Reconciler) refresh(ctx context.Context, rawID string) error {
	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		r.logger.WarnContext(ctx, "Change event carried malformed shipment id", "shipment_id", rawID, "error", err)
		return nil
	}

	aggregate, err := r.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			// The shipment vanished between event and refetch; treat the
			// event as a delete.
			r.workspace.Remove(rawID)
			return nil
		}
		return err
	}

	r.workspace.Replace(aggregate)
	r.logger.DebugContext(ctx, "Shipment refreshed in workspace",
		"shipment_id", rawID, "stage", aggregate.Stage().String())
	return nil
}
