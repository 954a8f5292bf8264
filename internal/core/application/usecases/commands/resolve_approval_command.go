package commands

import (
	"errors"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/guard"
)

var (
	ErrResolveApprovalCommandIsNotConstructed = errors.New(
		"ResolveApprovalCommand must be created via NewResolveApprovalCommand constructor",
	)
	ErrResolvedByIsRequired = errors.New("resolvedBy is required")
)

// ResolveApprovalCommand represents an authorization verdict for a pending
// approval request.
type ResolveApprovalCommand struct { //nolint:recvcheck //using for validation
	requestID  kernel.UUID
	approved   bool
	resolvedBy string

	guard guard.ConstructorGuard
}

// NewResolveApprovalCommand creates a resolution command.
func NewResolveApprovalCommand(
	requestID kernel.UUID, approved bool, resolvedBy string,
) (ResolveApprovalCommand, error) {
	command := ResolveApprovalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRequestID(requestID),
		command.setResolvedBy(resolvedBy),
	); err != nil {
		return ResolveApprovalCommand{}, err
	}

	command.approved = approved
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveApprovalCommand) Validate() error {
	return c.guard.Validate(ErrResolveApprovalCommandIsNotConstructed)
}

// RequestID returns the approval request being resolved.
func (c ResolveApprovalCommand) RequestID() kernel.UUID {
	return c.requestID
}

// Approved reports the verdict.
func (c ResolveApprovalCommand) Approved() bool {
	return c.approved
}

// ResolvedBy returns who issued the verdict.
func (c ResolveApprovalCommand) ResolvedBy() string {
	return c.resolvedBy
}

func (c *ResolveApprovalCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *ResolveApprovalCommand) setResolvedBy(resolvedBy string) error {
	if resolvedBy == "" {
		return ErrResolvedByIsRequired
	}
	c.resolvedBy = resolvedBy
	return nil
}
