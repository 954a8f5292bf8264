package queries

import (
	"context"

	"shipments/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingApprovalsQueryHandler retrieves the pending approval queue from
// the database.
type GetPendingApprovalsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingApprovalsQueryHandler creates a handler for pending approval
// queries.
func NewGetPendingApprovalsQueryHandler(db *gorm.DB) GetPendingApprovalsQueryHandler {
	return GetPendingApprovalsQueryHandler{db: db}
}

// Handle executes the query. Returns pending requests oldest first so the
// queue reads in arrival order.
func (h GetPendingApprovalsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingApprovalsQuery,
) ([]GetPendingApprovalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	approvals := make([]GetPendingApprovalsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			action_key,
			context_id,
			requested_by,
			created_at
		FROM approval_requests
		WHERE status = 'pending'
		ORDER BY created_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetPendingApprovalsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&row.ActionKey,
			&row.ContextID,
			&row.RequestedBy,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = requestID
		approvals = append(approvals, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return approvals, nil
}
