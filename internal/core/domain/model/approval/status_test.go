package approval_test

import (
	"fmt"
	"testing"

	"shipments/internal/core/domain/model/approval"
	"shipments/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(approval.StatusUnknown))
		assert.Equal(t, 1, int(approval.StatusPending))
		assert.Equal(t, 2, int(approval.StatusApproved))
		assert.Equal(t, 3, int(approval.StatusDenied))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []approval.Status{
			approval.StatusPending,
			approval.StatusApproved,
			approval.StatusDenied,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		invalidStatuses := []approval.Status{
			approval.StatusUnknown,
			approval.Status(-1),
			approval.Status(4),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return persisted identifiers", func(t *testing.T) {
		assert.Equal(t, "pending", approval.StatusPending.String())
		assert.Equal(t, "approved", approval.StatusApproved.String())
		assert.Equal(t, "denied", approval.StatusDenied.String())
		assert.Equal(t, "unknown", approval.StatusUnknown.String())
		assert.Equal(t, "unknown", approval.Status(42).String())
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse persisted identifiers", func(t *testing.T) {
		testCases := []struct {
			value    string
			expected approval.Status
		}{
			{"pending", approval.StatusPending},
			{"approved", approval.StatusApproved},
			{"denied", approval.StatusDenied},
		}

		for _, tc := range testCases {
			status, err := approval.ParseStatus(tc.value)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, status)
		}
	})

	t.Run("should reject unknown identifiers", func(t *testing.T) {
		for _, value := range []string{"", "unknown", "Pending", "rejected"} {
			status, err := approval.ParseStatus(value)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Equal(t, approval.StatusUnknown, status)
		}
	})
}

func TestStatus_Approve(t *testing.T) {
	t.Run("should approve from pending", func(t *testing.T) {
		status, err := approval.StatusPending.Approve()

		require.NoError(t, err)
		assert.Equal(t, approval.StatusApproved, status)
	})

	t.Run("should refuse approving a resolved status", func(t *testing.T) {
		for _, status := range []approval.Status{approval.StatusApproved, approval.StatusDenied} {
			_, err := status.Approve()

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_Deny(t *testing.T) {
	t.Run("should deny from pending", func(t *testing.T) {
		status, err := approval.StatusPending.Deny()

		require.NoError(t, err)
		assert.Equal(t, approval.StatusDenied, status)
	})

	t.Run("should refuse denying a resolved status", func(t *testing.T) {
		for _, status := range []approval.Status{approval.StatusApproved, approval.StatusDenied} {
			_, err := status.Deny()

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}
