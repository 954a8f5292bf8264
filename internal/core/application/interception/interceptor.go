package interception

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shipments/internal/core/domain/model/approval"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/ports"
	"shipments/internal/pkg/errs"
)

// ErrUnknownAction is returned when no executor is registered for an action key.
var ErrUnknownAction = errors.New("no executor registered for action")

// Decision is a policy verdict for a guarded action.
type Decision int

const (
	// Allow runs the guarded action immediately.
	Allow Decision = iota

	// NeedsApproval suspends the guarded action behind a pending request.
	NeedsApproval
)

// Policy decides whether an action key may run immediately or must be
// suspended for out-of-band authorization.
type Policy interface {
	Decide(actionKey string) Decision
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(actionKey string) Decision

// Decide implements Policy.
func (f PolicyFunc) Decide(actionKey string) Decision {
	return f(actionKey)
}

// Executor re-derives and runs a guarded action from persisted context data
// alone. Implementations must not rely on any in-memory state held by the
// original requester: the resolution may arrive in a different process after
// the requester's session has ended.
type Executor interface {
	Execute(ctx context.Context, contextData map[string]string) error
}

// Outcome classifies the result of an interception or a resolution.
type Outcome int

const (
	// OutcomeExecuted means the guarded action ran.
	OutcomeExecuted Outcome = iota + 1

	// OutcomePending means the action is suspended behind an approval request.
	OutcomePending

	// OutcomeDenied means the request was denied; the action never runs.
	OutcomeDenied
)

// InterceptResult reports what happened to an intercepted action.
type InterceptResult struct {
	Outcome Outcome

	// RequestID identifies the pending approval request when Outcome is
	// OutcomePending. When the pair already had a pending request, this is
	// the id of the existing request (the duplicate is coalesced).
	RequestID kernel.UUID
}

// ResolveResult reports the terminal state of a resolved request.
type ResolveResult struct {
	Outcome Outcome
	Request *approval.Request
}

// UoW is the transaction scope the interceptor needs: approval persistence
// only. Declared here, on the consumer side, so the interceptor stays
// decoupled from the full unit-of-work surface.
type UoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	ApprovalRepository() ports.ApprovalRepository
}

// UoWFactory creates a fresh UoW per interception or resolution.
type UoWFactory interface {
	Create() UoW
}

// Interceptor implements guarded execution: an action submitted through
// Intercept either runs immediately (policy Allow) or is persisted as a
// pending approval request and runs later — exactly once — when Resolve
// observes an approval for it.
//
// Executors are registered per action key; the registry is how a resolution
// re-derives the concrete action from the request's context data. At most
// one pending request exists per (actionKey, contextID) pair; a duplicate
// interception coalesces onto the existing request instead of queuing twice.
type Interceptor struct {
	policy     Policy
	uowFactory UoWFactory
	executors  map[string]Executor
	logger     *slog.Logger
}

// NewInterceptor creates an interceptor with an empty executor registry.
func NewInterceptor(policy Policy, uowFactory UoWFactory, logger *slog.Logger) *Interceptor {
	return &Interceptor{
		policy:     policy,
		uowFactory: uowFactory,
		executors:  make(map[string]Executor),
		logger:     logger.With("component", "approval_interceptor"),
	}
}

// Register binds an executor to an action key. Wiring happens once in the
// composition root, before any interception is served.
func (i *Interceptor) Register(actionKey string, executor Executor) {
	i.executors[actionKey] = executor
}

// Intercept submits a guarded action. Under policy Allow the registered
// executor runs immediately with the given context data. Under
// NeedsApproval the action does not run; a pending approval request is
// persisted (or the existing pending request for the same pair is reused)
// and surfaced for authorization.
func (i *Interceptor) Intercept(
	ctx context.Context, actionKey, contextID string, contextData map[string]string, requestedBy string,
) (InterceptResult, error) {
	executor, ok := i.executors[actionKey]
	if !ok {
		return InterceptResult{}, fmt.Errorf("%w: %s", ErrUnknownAction, actionKey)
	}

	if i.policy.Decide(actionKey) == Allow {
		if err := executor.Execute(ctx, contextData); err != nil {
			return InterceptResult{}, err
		}
		return InterceptResult{Outcome: OutcomeExecuted}, nil
	}

	uow := i.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return InterceptResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ApprovalRepository()

	existing, err := repo.GetPending(ctx, actionKey, contextID)
	if err == nil {
		// Already pending for this pair: coalesce, never queue twice.
		i.logger.InfoContext(ctx, "Interception coalesced onto pending request",
			"action", actionKey, "context_id", contextID, "request_id", existing.ID().String())
		return InterceptResult{Outcome: OutcomePending, RequestID: existing.ID()}, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return InterceptResult{}, err
	}

	request, err := approval.NewRequest(kernel.NewUUID(), actionKey, contextID, contextData, requestedBy, time.Now())
	if err != nil {
		return InterceptResult{}, err
	}

	if err = repo.Add(ctx, request); err != nil {
		return i.coalesceLostRace(ctx, actionKey, contextID, err)
	}
	if err = uow.Commit(ctx); err != nil {
		return i.coalesceLostRace(ctx, actionKey, contextID, err)
	}

	i.logger.InfoContext(ctx, "Guarded action suspended pending approval",
		"action", actionKey, "context_id", contextID, "request_id", request.ID().String())
	return InterceptResult{Outcome: OutcomePending, RequestID: request.ID()}, nil
}

// coalesceLostRace rechecks for a pending request after a failed insert.
// The storage layer keeps a partial unique index on pending (actionKey,
// contextID) pairs, so losing a concurrent interception race surfaces as an
// insert failure with the winner's request already committed. When the
// recheck finds that request, the loser coalesces onto it; otherwise the
// insert failed for some other reason and the original error stands.
func (i *Interceptor) coalesceLostRace(
	ctx context.Context, actionKey, contextID string, insertErr error,
) (InterceptResult, error) {
	uow := i.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return InterceptResult{}, insertErr
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	existing, err := uow.ApprovalRepository().GetPending(ctx, actionKey, contextID)
	if err != nil {
		return InterceptResult{}, insertErr
	}

	i.logger.InfoContext(ctx, "Interception lost the insert race, coalesced onto pending request",
		"action", actionKey, "context_id", contextID, "request_id", existing.ID().String())
	return InterceptResult{Outcome: OutcomePending, RequestID: existing.ID()}, nil
}

// Resolve applies an external authorization verdict to a request.
//
// On approval the request transitions pending->approved and is committed
// before the executor runs; the transition fails on anything but a pending
// request, so the guarded action can never run twice. The action is then
// re-derived purely from the persisted context data — no requester-held
// closure is involved, so any process instance can complete it.
//
// On denial the request is terminal and the guarded action never runs.
func (i *Interceptor) Resolve(
	ctx context.Context, requestID kernel.UUID, approved bool, resolvedBy string,
) (ResolveResult, error) {
	uow := i.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ResolveResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ApprovalRepository()

	request, err := repo.Get(ctx, requestID)
	if err != nil {
		return ResolveResult{}, err
	}

	now := time.Now()
	if !approved {
		if err = request.Deny(resolvedBy, now); err != nil {
			return ResolveResult{}, err
		}
		if err = repo.Update(ctx, request); err != nil {
			return ResolveResult{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return ResolveResult{}, err
		}
		i.logger.InfoContext(ctx, "Approval denied, guarded action discarded",
			"action", request.ActionKey(), "request_id", requestID.String())
		return ResolveResult{Outcome: OutcomeDenied, Request: request}, nil
	}

	if err = request.Approve(resolvedBy, now); err != nil {
		return ResolveResult{}, err
	}
	if err = repo.Update(ctx, request); err != nil {
		return ResolveResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return ResolveResult{}, err
	}

	executor, ok := i.executors[request.ActionKey()]
	if !ok {
		return ResolveResult{}, fmt.Errorf("%w: %s", ErrUnknownAction, request.ActionKey())
	}

	if err = executor.Execute(ctx, request.ContextData()); err != nil {
		// The request stays approved: the action will not be re-run on a
		// second resolution attempt. Surface the failure to the resolver.
		return ResolveResult{}, fmt.Errorf("resumed action %s failed: %w", request.ActionKey(), err)
	}

	i.logger.InfoContext(ctx, "Approved action resumed and executed",
		"action", request.ActionKey(), "request_id", requestID.String())
	return ResolveResult{Outcome: OutcomeExecuted, Request: request}, nil
}
