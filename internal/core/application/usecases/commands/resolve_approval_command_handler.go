package commands

import (
	"context"

	"shipments/internal/core/application/interception"
	"shipments/internal/core/domain/model/kernel"
)

// ApprovalResolver is the slice of the approval interceptor the resolution
// handler needs.
type ApprovalResolver interface {
	Resolve(
		ctx context.Context, requestID kernel.UUID, approved bool, resolvedBy string,
	) (interception.ResolveResult, error)
}

// ResolveApprovalCommandHandler applies an authorization verdict. Approval
// resumes the suspended action exactly once; denial discards it.
type ResolveApprovalCommandHandler struct {
	resolver ApprovalResolver
}

// NewResolveApprovalCommandHandler creates a handler for approval resolutions.
func NewResolveApprovalCommandHandler(resolver ApprovalResolver) ResolveApprovalCommandHandler {
	return ResolveApprovalCommandHandler{resolver: resolver}
}

// Handle resolves the request through the interceptor.
func (h ResolveApprovalCommandHandler) Handle(
	ctx context.Context, command ResolveApprovalCommand,
) (interception.ResolveResult, error) {
	if err := command.Validate(); err != nil {
		return interception.ResolveResult{}, err
	}

	return h.resolver.Resolve(ctx, command.RequestID(), command.Approved(), command.ResolvedBy())
}
