package queries

import (
	"context"

	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/core/ports"
)

// GetShipmentQueryHandler retrieves one full shipment aggregate. Unlike the
// board query this goes through the repository: the detail view needs every
// nested collection, which is exactly what the repository's Get assembles.
type GetShipmentQueryHandler struct {
	repo ports.ShipmentRepository
}

// NewGetShipmentQueryHandler creates a handler for shipment detail queries.
func NewGetShipmentQueryHandler(repo ports.ShipmentRepository) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{repo: repo}
}

// Handle executes the query. Returns an object-not-found error when no
// shipment exists for the id.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (*shipment.Shipment, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.repo.Get(ctx, query.ShipmentID())
}
