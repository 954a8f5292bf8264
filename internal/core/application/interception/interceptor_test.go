package interception_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"shipments/internal/core/application/interception"
	"shipments/internal/core/domain/model/approval"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/ports"
	"shipments/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inMemoryApprovalRepo keeps requests in a map so resolution round trips go
// through real pending->resolved transitions.
type inMemoryApprovalRepo struct {
	requests     map[string]*approval.Request
	addErr       error
	racedRequest *approval.Request
}

func newInMemoryApprovalRepo() *inMemoryApprovalRepo {
	return &inMemoryApprovalRepo{requests: make(map[string]*approval.Request)}
}

// failNextAddWith makes the next Add fail. A non-nil winner appears in the
// store at that moment, mimicking a concurrent interception committing its
// request between the miss on GetPending and the insert.
func (r *inMemoryApprovalRepo) failNextAddWith(err error, winner *approval.Request) {
	r.addErr = err
	r.racedRequest = winner
}

func (r *inMemoryApprovalRepo) Add(_ context.Context, request *approval.Request) error {
	if r.addErr != nil {
		err := r.addErr
		r.addErr = nil
		if r.racedRequest != nil {
			r.requests[r.racedRequest.ID().String()] = r.racedRequest
			r.racedRequest = nil
		}
		return err
	}
	r.requests[request.ID().String()] = request
	return nil
}

func (r *inMemoryApprovalRepo) Update(_ context.Context, request *approval.Request) error {
	if _, ok := r.requests[request.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("approval request", request.ID().String())
	}
	r.requests[request.ID().String()] = request
	return nil
}

func (r *inMemoryApprovalRepo) Get(_ context.Context, id kernel.UUID) (*approval.Request, error) {
	request, ok := r.requests[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("approval request", id.String())
	}
	return request, nil
}

func (r *inMemoryApprovalRepo) GetPending(_ context.Context, actionKey, contextID string) (*approval.Request, error) {
	for _, request := range r.requests {
		if request.ActionKey() == actionKey && request.ContextID() == contextID && request.IsPending() {
			return request, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("pending approval", actionKey+"/"+contextID)
}

func (r *inMemoryApprovalRepo) GetAllPending(_ context.Context) ([]*approval.Request, error) {
	var pending []*approval.Request
	for _, request := range r.requests {
		if request.IsPending() {
			pending = append(pending, request)
		}
	}
	return pending, nil
}

type fakeApprovalUoW struct {
	repo *inMemoryApprovalRepo
}

func (u *fakeApprovalUoW) Begin(context.Context) error    { return nil }
func (u *fakeApprovalUoW) Commit(context.Context) error   { return nil }
func (u *fakeApprovalUoW) Rollback(context.Context) error { return nil }

func (u *fakeApprovalUoW) ApprovalRepository() ports.ApprovalRepository { return u.repo }

type fakeApprovalUoWFactory struct {
	repo *inMemoryApprovalRepo
}

func (f *fakeApprovalUoWFactory) Create() interception.UoW {
	return &fakeApprovalUoW{repo: f.repo}
}

// recordingExecutor counts executions and optionally fails them.
type recordingExecutor struct {
	calls    int
	lastData map[string]string
	err      error
}

func (e *recordingExecutor) Execute(_ context.Context, contextData map[string]string) error {
	e.calls++
	e.lastData = contextData
	return e.err
}

func alwaysPolicy(decision interception.Decision) interception.Policy {
	return interception.PolicyFunc(func(string) interception.Decision { return decision })
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newInterceptor(
	policy interception.Policy, repo *inMemoryApprovalRepo, executor interception.Executor,
) *interception.Interceptor {
	interceptor := interception.NewInterceptor(policy, &fakeApprovalUoWFactory{repo: repo}, testLogger())
	interceptor.Register("shipment.advance_override", executor)
	return interceptor
}

func contextData() map[string]string {
	return map[string]string{
		"shipment_id":  kernel.NewUUID().String(),
		"target_stage": "cruce",
		"actor":        "ops@acme.test",
	}
}

func TestInterceptor_Intercept_Allow(t *testing.T) {
	t.Run("should execute the action immediately", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		executor := &recordingExecutor{}
		interceptor := newInterceptor(alwaysPolicy(interception.Allow), repo, executor)
		data := contextData()

		result, err := interceptor.Intercept(
			t.Context(), "shipment.advance_override", data["shipment_id"], data, "ops@acme.test")

		require.NoError(t, err)
		assert.Equal(t, interception.OutcomeExecuted, result.Outcome)
		assert.Equal(t, 1, executor.calls)
		assert.Equal(t, data, executor.lastData)
		pending, _ := repo.GetAllPending(t.Context())
		assert.Empty(t, pending)
	})

	t.Run("should surface executor failure", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		executor := &recordingExecutor{err: errors.New("advance failed")}
		interceptor := newInterceptor(alwaysPolicy(interception.Allow), repo, executor)
		data := contextData()

		_, err := interceptor.Intercept(
			t.Context(), "shipment.advance_override", data["shipment_id"], data, "ops@acme.test")

		require.Error(t, err)
	})
}

func TestInterceptor_Intercept_NeedsApproval(t *testing.T) {
	t.Run("should suspend the action behind a pending request", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		executor := &recordingExecutor{}
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, executor)
		data := contextData()

		result, err := interceptor.Intercept(
			t.Context(), "shipment.advance_override", data["shipment_id"], data, "ops@acme.test")

		require.NoError(t, err)
		assert.Equal(t, interception.OutcomePending, result.Outcome)
		assert.Zero(t, executor.calls)

		request, err := repo.Get(t.Context(), result.RequestID)
		require.NoError(t, err)
		assert.True(t, request.IsPending())
		assert.Equal(t, data, request.ContextData())
		assert.Equal(t, "ops@acme.test", request.RequestedBy())
	})

	t.Run("should coalesce a duplicate interception onto the pending request", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		executor := &recordingExecutor{}
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, executor)
		data := contextData()

		first, err := interceptor.Intercept(
			t.Context(), "shipment.advance_override", data["shipment_id"], data, "ops@acme.test")
		require.NoError(t, err)

		second, err := interceptor.Intercept(
			t.Context(), "shipment.advance_override", data["shipment_id"], data, "other@acme.test")
		require.NoError(t, err)

		assert.Equal(t, interception.OutcomePending, second.Outcome)
		assert.True(t, first.RequestID.IsEqual(second.RequestID))
		pending, _ := repo.GetAllPending(t.Context())
		assert.Len(t, pending, 1)
	})

	t.Run("should open separate requests for different context ids", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		executor := &recordingExecutor{}
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, executor)

		first, err := interceptor.Intercept(
			t.Context(), "shipment.advance_override", kernel.NewUUID().String(), contextData(), "ops@acme.test")
		require.NoError(t, err)
		second, err := interceptor.Intercept(
			t.Context(), "shipment.advance_override", kernel.NewUUID().String(), contextData(), "ops@acme.test")
		require.NoError(t, err)

		assert.False(t, first.RequestID.IsEqual(second.RequestID))
	})

	t.Run("should coalesce onto the winner after losing the insert race", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		executor := &recordingExecutor{}
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, executor)
		data := contextData()

		winner, err := approval.NewRequest(
			kernel.NewUUID(), "shipment.advance_override", data["shipment_id"], data, "other@acme.test", time.Now())
		require.NoError(t, err)
		repo.failNextAddWith(errors.New("duplicate key value violates unique constraint"), winner)

		result, err := interceptor.Intercept(
			t.Context(), "shipment.advance_override", data["shipment_id"], data, "ops@acme.test")

		require.NoError(t, err)
		assert.Equal(t, interception.OutcomePending, result.Outcome)
		assert.True(t, result.RequestID.IsEqual(winner.ID()))
		assert.Zero(t, executor.calls)
		pending, _ := repo.GetAllPending(t.Context())
		assert.Len(t, pending, 1)
	})

	t.Run("should surface an insert failure that is not a lost race", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, &recordingExecutor{})
		data := contextData()
		repo.failNextAddWith(errors.New("connection reset"), nil)

		_, err := interceptor.Intercept(
			t.Context(), "shipment.advance_override", data["shipment_id"], data, "ops@acme.test")

		require.Error(t, err)
		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("should reject unregistered action", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, &recordingExecutor{})

		_, err := interceptor.Intercept(
			t.Context(), "shipment.delete", "ctx", map[string]string{"k": "v"}, "ops@acme.test")

		require.Error(t, err)
		assert.ErrorIs(t, err, interception.ErrUnknownAction)
	})
}

func TestInterceptor_Resolve(t *testing.T) {
	suspend := func(t *testing.T, repo *inMemoryApprovalRepo, interceptor *interception.Interceptor) kernel.UUID {
		t.Helper()
		data := contextData()
		result, err := interceptor.Intercept(
			t.Context(), "shipment.advance_override", data["shipment_id"], data, "ops@acme.test")
		require.NoError(t, err)
		require.Equal(t, interception.OutcomePending, result.Outcome)
		return result.RequestID
	}

	t.Run("should run the action exactly once on approval", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		executor := &recordingExecutor{}
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, executor)
		requestID := suspend(t, repo, interceptor)

		result, err := interceptor.Resolve(t.Context(), requestID, true, "manager@acme.test")

		require.NoError(t, err)
		assert.Equal(t, interception.OutcomeExecuted, result.Outcome)
		assert.Equal(t, 1, executor.calls)
		assert.Equal(t, approval.StatusApproved, result.Request.Status())
		assert.Equal(t, "manager@acme.test", result.Request.ResolvedBy())
	})

	t.Run("should pass the persisted context data to the executor", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		executor := &recordingExecutor{}
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, executor)
		data := contextData()
		result, err := interceptor.Intercept(
			t.Context(), "shipment.advance_override", data["shipment_id"], data, "ops@acme.test")
		require.NoError(t, err)

		_, err = interceptor.Resolve(t.Context(), result.RequestID, true, "manager@acme.test")

		require.NoError(t, err)
		assert.Equal(t, data, executor.lastData)
	})

	t.Run("should never run the action on denial", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		executor := &recordingExecutor{}
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, executor)
		requestID := suspend(t, repo, interceptor)

		result, err := interceptor.Resolve(t.Context(), requestID, false, "manager@acme.test")

		require.NoError(t, err)
		assert.Equal(t, interception.OutcomeDenied, result.Outcome)
		assert.Zero(t, executor.calls)
		assert.Equal(t, approval.StatusDenied, result.Request.Status())
	})

	t.Run("should fail resolving the same request twice", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		executor := &recordingExecutor{}
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, executor)
		requestID := suspend(t, repo, interceptor)

		_, err := interceptor.Resolve(t.Context(), requestID, true, "manager@acme.test")
		require.NoError(t, err)

		_, err = interceptor.Resolve(t.Context(), requestID, true, "other@acme.test")

		require.Error(t, err)
		assert.Equal(t, 1, executor.calls)
	})

	t.Run("should keep the request approved when the resumed action fails", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		executor := &recordingExecutor{err: errors.New("stage conflict")}
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, executor)
		requestID := suspend(t, repo, interceptor)

		_, err := interceptor.Resolve(t.Context(), requestID, true, "manager@acme.test")

		require.Error(t, err)
		request, getErr := repo.Get(t.Context(), requestID)
		require.NoError(t, getErr)
		assert.Equal(t, approval.StatusApproved, request.Status())

		// A retried resolution fails on the already-resolved request; the
		// action is never re-run automatically.
		executor.err = nil
		_, err = interceptor.Resolve(t.Context(), requestID, true, "manager@acme.test")
		require.Error(t, err)
		assert.Equal(t, 1, executor.calls)
	})

	t.Run("should fail for unknown request id", func(t *testing.T) {
		repo := newInMemoryApprovalRepo()
		interceptor := newInterceptor(alwaysPolicy(interception.NeedsApproval), repo, &recordingExecutor{})

		_, err := interceptor.Resolve(t.Context(), kernel.NewUUID(), true, "manager@acme.test")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
