package approval_test

import (
	"testing"
	"time"

	"shipments/internal/core/domain/model/approval"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingRequest(t *testing.T) *approval.Request {
	t.Helper()

	request, err := approval.NewRequest(
		kernel.NewUUID(),
		"shipment.advance_override",
		kernel.NewUUID().String(),
		map[string]string{
			"shipment_id":  kernel.NewUUID().String(),
			"target_stage": "cruce",
			"actor":        "ops@acme.test",
		},
		"ops@acme.test",
		time.Now(),
	)
	require.NoError(t, err)
	return request
}

func TestNewRequest(t *testing.T) {
	t.Run("should create pending request", func(t *testing.T) {
		id := kernel.NewUUID()
		contextID := kernel.NewUUID().String()
		createdAt := time.Now()

		request, err := approval.NewRequest(
			id, "shipment.advance_override", contextID,
			map[string]string{"target_stage": "cruce"},
			"ops@acme.test", createdAt,
		)

		require.NoError(t, err)
		assert.True(t, request.ID().IsEqual(id))
		assert.Equal(t, "shipment.advance_override", request.ActionKey())
		assert.Equal(t, contextID, request.ContextID())
		assert.Equal(t, approval.StatusPending, request.Status())
		assert.True(t, request.IsPending())
		assert.Equal(t, "ops@acme.test", request.RequestedBy())
		assert.Equal(t, createdAt, request.CreatedAt())
		assert.Empty(t, request.ResolvedBy())
		assert.Nil(t, request.ResolvedAt())
	})

	t.Run("should reject missing action key", func(t *testing.T) {
		_, err := approval.NewRequest(
			kernel.NewUUID(), "", "ctx", map[string]string{"k": "v"}, "ops@acme.test", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject missing context id", func(t *testing.T) {
		_, err := approval.NewRequest(
			kernel.NewUUID(), "shipment.advance_override", "", map[string]string{"k": "v"}, "ops@acme.test", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject empty context data", func(t *testing.T) {
		_, err := approval.NewRequest(
			kernel.NewUUID(), "shipment.advance_override", "ctx", nil, "ops@acme.test", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRequest_ContextData(t *testing.T) {
	t.Run("should return a defensive copy", func(t *testing.T) {
		request := newPendingRequest(t)

		data := request.ContextData()
		data["target_stage"] = "entregado"

		assert.Equal(t, "cruce", request.ContextData()["target_stage"])
	})
}

func TestRequest_Approve(t *testing.T) {
	t.Run("should approve a pending request", func(t *testing.T) {
		request := newPendingRequest(t)
		resolvedAt := time.Now()

		err := request.Approve("manager@acme.test", resolvedAt)

		require.NoError(t, err)
		assert.Equal(t, approval.StatusApproved, request.Status())
		assert.False(t, request.IsPending())
		assert.Equal(t, "manager@acme.test", request.ResolvedBy())
		require.NotNil(t, request.ResolvedAt())
		assert.Equal(t, resolvedAt, *request.ResolvedAt())
	})

	t.Run("should refuse approving twice", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Approve("manager@acme.test", time.Now()))

		err := request.Approve("other@acme.test", time.Now())

		require.Error(t, err)
		assert.Equal(t, "manager@acme.test", request.ResolvedBy())
	})

	t.Run("should refuse approving a denied request", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Deny("manager@acme.test", time.Now()))

		err := request.Approve("other@acme.test", time.Now())

		require.Error(t, err)
		assert.Equal(t, approval.StatusDenied, request.Status())
	})

	t.Run("should refuse unconstructed request", func(t *testing.T) {
		var request approval.Request

		err := request.Approve("manager@acme.test", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, approval.ErrRequestIsNotConstructed)
	})
}

func TestRequest_Deny(t *testing.T) {
	t.Run("should deny a pending request", func(t *testing.T) {
		request := newPendingRequest(t)

		err := request.Deny("manager@acme.test", time.Now())

		require.NoError(t, err)
		assert.Equal(t, approval.StatusDenied, request.Status())
		assert.False(t, request.IsPending())
	})

	t.Run("should refuse denying twice", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Deny("manager@acme.test", time.Now()))

		err := request.Deny("other@acme.test", time.Now())

		require.Error(t, err)
	})
}

func TestRestoreRequest(t *testing.T) {
	t.Run("should restore resolved request", func(t *testing.T) {
		resolvedAt := time.Now()

		request, err := approval.RestoreRequest(
			kernel.NewUUID(),
			"shipment.advance_override",
			kernel.NewUUID().String(),
			map[string]string{"target_stage": "cruce"},
			approval.StatusApproved,
			"ops@acme.test",
			time.Now().Add(-time.Hour),
			"manager@acme.test",
			&resolvedAt,
		)

		require.NoError(t, err)
		assert.Equal(t, approval.StatusApproved, request.Status())
		assert.Equal(t, "manager@acme.test", request.ResolvedBy())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := approval.RestoreRequest(
			kernel.NewUUID(), "shipment.advance_override", "ctx",
			map[string]string{"k": "v"},
			approval.StatusUnknown,
			"ops@acme.test", time.Now(), "", nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
