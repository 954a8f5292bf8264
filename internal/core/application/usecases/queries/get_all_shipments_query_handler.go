package queries

import (
	"context"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllShipmentsQueryHandler retrieves the shipment board from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetAllShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllShipmentsQueryHandler creates a handler for shipment board queries.
func NewGetAllShipmentsQueryHandler(db *gorm.DB) GetAllShipmentsQueryHandler {
	return GetAllShipmentsQueryHandler{db: db}
}

// Handle executes the query. Returns shipments ordered newest first, with
// the persisted stage identifier parsed back to the canonical stage (legacy
// aliases in old rows resolve to the same stage).
func (h GetAllShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetAllShipmentsQuery,
) ([]GetAllShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetAllShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			folio,
			stage,
			version,
			created_at
		FROM shipments
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetAllShipmentsQueryResponse
		var id uuid.UUID
		var stage string

		err = rows.Scan(
			&id,
			&row.Folio,
			&stage,
			&row.Version,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = shipmentID

		parsedStage, stageErr := shipment.ParseStage(stage)
		if stageErr != nil {
			return nil, stageErr
		}
		row.Stage = parsedStage
		shipments = append(shipments, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
