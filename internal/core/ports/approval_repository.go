package ports

import (
	"context"

	"shipments/internal/core/domain/model/approval"
	"shipments/internal/core/domain/model/kernel"
)

// ApprovalRepository defines the persistence contract for approval requests.
// Requests outlive the requester's session: a resolution may arrive from a
// different process long after the interception, so everything needed to
// resume the guarded action is persisted with the request.
type ApprovalRepository interface {
	// Add persists a new approval request.
	Add(ctx context.Context, request *approval.Request) error

	// Update persists a resolution of an existing request.
	Update(ctx context.Context, request *approval.Request) error

	// Get retrieves a request by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*approval.Request, error)

	// GetPending retrieves the pending request for the (actionKey,
	// contextID) pair, if one exists. At most one such request exists at a
	// time; duplicates are coalesced onto it instead of being queued.
	// Returns errs.ObjectNotFoundError when no pending request exists.
	GetPending(ctx context.Context, actionKey, contextID string) (*approval.Request, error)

	// GetAllPending retrieves every unresolved request, oldest first.
	GetAllPending(ctx context.Context) ([]*approval.Request, error)
}
