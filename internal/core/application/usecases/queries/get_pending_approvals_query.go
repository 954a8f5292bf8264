package queries

import (
	"errors"
	"time"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/guard"
)

var ErrGetPendingApprovalsQueryIsNotConstructed = errors.New(
	"GetPendingApprovalsQuery must be created via NewGetPendingApprovalsQuery constructor",
)

// GetPendingApprovalsQuery retrieves all approval requests still awaiting a
// verdict, oldest first.
type GetPendingApprovalsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingApprovalsQuery creates a query for the pending approval queue.
func NewGetPendingApprovalsQuery() GetPendingApprovalsQuery {
	return GetPendingApprovalsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingApprovalsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingApprovalsQueryIsNotConstructed)
}

// GetPendingApprovalsQueryResponse is one pending approval in the read model.
type GetPendingApprovalsQueryResponse struct {
	ID          kernel.UUID
	ActionKey   string
	ContextID   string
	RequestedBy string
	CreatedAt   time.Time
}
