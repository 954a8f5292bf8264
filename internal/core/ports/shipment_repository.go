// Package ports defines the contracts between the core and its external
// collaborators: persistence, blob storage, the change-event channel, the
// mail collaborator, and the lifecycle notification surface. These
// interfaces establish the dependency-inversion boundary of the hexagon.
package ports

import (
	"context"
	"errors"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"
)

// ErrStageConflict is returned by UpdateStage when the persisted stage or
// version no longer matches what the caller observed. The caller must
// re-fetch the aggregate and re-evaluate the gate before retrying.
var ErrStageConflict = errors.New("shipment stage was changed concurrently")

// ShipmentRepository defines the persistence contract for shipment
// aggregates. Get and GetAll return the full aggregate with every nested
// collection joined; change notifications carry no nested-collection deltas,
// so consumers always re-fetch through here.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists non-stage field edits of an existing aggregate.
	// Stage changes must go through UpdateStage.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// UpdateStage commits a stage transition with a compare-and-swap on the
	// persisted (stage, version) pair. Returns ErrStageConflict when the
	// observed stage or version no longer matches, in which case nothing
	// was written.
	UpdateStage(ctx context.Context, id kernel.UUID, from, to shipment.Stage, version int) error

	// AppendTrackingEvent appends one audit entry to the shipment's
	// tracking log. The log is append-only; there is no update or delete.
	AppendTrackingEvent(ctx context.Context, id kernel.UUID, event shipment.TrackingEvent) error

	// UpsertDocument stores the document record for its key, replacing any
	// existing record for the same (shipment, key) pair.
	UpsertDocument(ctx context.Context, id kernel.UUID, record shipment.DocumentRecord) error

	// RemoveDocument drops the document record for the key, if present.
	RemoveDocument(ctx context.Context, id kernel.UUID, key shipment.DocumentKey) error

	// AppendCorrespondence notes an outbound mail on the aggregate.
	AppendCorrespondence(ctx context.Context, id kernel.UUID, record shipment.CorrespondenceRecord) error

	// Get retrieves the full aggregate by id, including destinations,
	// cargo units, documents, tracking events, and correspondence.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAll retrieves all shipments, full aggregates, ordered by creation
	// time descending.
	GetAll(ctx context.Context) ([]*shipment.Shipment, error)
}
