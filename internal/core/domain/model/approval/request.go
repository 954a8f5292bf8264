package approval

import (
	"errors"
	"time"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/errs"
)

// ErrRequestIsNotConstructed is returned when a Request instance was not
// created through NewRequest or RestoreRequest.
var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")

// Request is the aggregate root of one suspended guarded action.
//
// The pair (ActionKey, ContextID) identifies what was intercepted; at most
// one pending request may exist per pair at a time. ContextData is the
// serialized continuation: it must be self-sufficient to re-derive and
// re-execute the guarded action without any in-memory state from the
// requester, so that a resolution arriving minutes later — possibly in a
// different process, from a different operator — can still complete the
// action.
type Request struct {
	id          kernel.UUID
	actionKey   string
	contextID   string
	contextData map[string]string
	status      Status
	requestedBy string
	createdAt   time.Time
	resolvedBy  string
	resolvedAt  *time.Time

	isConstructed bool
}

// NewRequest creates a pending approval request.
func NewRequest(
	id kernel.UUID, actionKey, contextID string, contextData map[string]string, requestedBy string, createdAt time.Time,
) (*Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if actionKey == "" {
		return nil, errs.NewValueIsRequiredError("action key")
	}
	if contextID == "" {
		return nil, errs.NewValueIsRequiredError("context id")
	}
	if len(contextData) == 0 {
		return nil, errs.NewValueIsRequiredError("context data")
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &Request{
		id:            id,
		actionKey:     actionKey,
		contextID:     contextID,
		contextData:   copyContextData(contextData),
		status:        StatusPending,
		requestedBy:   requestedBy,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreRequest reconstructs a request from persistence.
func RestoreRequest(
	id kernel.UUID,
	actionKey, contextID string,
	contextData map[string]string,
	status Status,
	requestedBy string,
	createdAt time.Time,
	resolvedBy string,
	resolvedAt *time.Time,
) (*Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if actionKey == "" {
		return nil, errs.NewValueIsRequiredError("action key")
	}
	if contextID == "" {
		return nil, errs.NewValueIsRequiredError("context id")
	}

	return &Request{
		id:            id,
		actionKey:     actionKey,
		contextID:     contextID,
		contextData:   copyContextData(contextData),
		status:        status,
		requestedBy:   requestedBy,
		createdAt:     createdAt,
		resolvedBy:    resolvedBy,
		resolvedAt:    resolvedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Request was created through a constructor.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID {
	return r.id
}

// ActionKey returns the guarded action identifier.
func (r *Request) ActionKey() string {
	return r.actionKey
}

// ContextID returns the identifier of the entity the action targets.
func (r *Request) ContextID() string {
	return r.contextID
}

// ContextData returns a copy of the serialized continuation.
func (r *Request) ContextData() map[string]string {
	return copyContextData(r.contextData)
}

// Status returns the resolution state.
func (r *Request) Status() Status {
	return r.status
}

// IsPending reports whether the request still awaits resolution.
func (r *Request) IsPending() bool {
	return r.status == StatusPending
}

// RequestedBy returns who triggered the interception.
func (r *Request) RequestedBy() string {
	return r.requestedBy
}

// CreatedAt returns when the request was opened.
func (r *Request) CreatedAt() time.Time {
	return r.createdAt
}

// ResolvedBy returns who resolved the request, if resolved.
func (r *Request) ResolvedBy() string {
	return r.resolvedBy
}

// ResolvedAt returns when the request was resolved, if resolved.
func (r *Request) ResolvedAt() *time.Time {
	return r.resolvedAt
}

// Approve marks the request approved. Fails unless the request is still
// pending — this is the transition that guarantees the guarded action
// executes at most once.
func (r *Request) Approve(resolvedBy string, resolvedAt time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}

	newStatus, err := r.status.Approve()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.resolvedBy = resolvedBy
	r.resolvedAt = &resolvedAt
	return nil
}

// Deny marks the request denied. Fails unless the request is still pending.
// A denied request is terminal: the guarded action never runs.
func (r *Request) Deny(resolvedBy string, resolvedAt time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}

	newStatus, err := r.status.Deny()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.resolvedBy = resolvedBy
	r.resolvedAt = &resolvedAt
	return nil
}

func copyContextData(data map[string]string) map[string]string {
	if data == nil {
		return nil
	}
	copied := make(map[string]string, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return copied
}
