package commands_test

import (
	"testing"

	"shipments/internal/core/application/usecases/commands"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceShipmentCommand(t *testing.T) {
	t.Run("should create gate-checked command", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewAdvanceShipmentCommand(id, "ops@acme.test", "left the cooler")

		require.NoError(t, err)
		assert.True(t, cmd.ShipmentID().IsEqual(id))
		assert.Equal(t, "ops@acme.test", cmd.Actor())
		assert.Equal(t, "left the cooler", cmd.Note())
		assert.False(t, cmd.BypassGate())
		require.NoError(t, cmd.Validate())
	})

	t.Run("should allow empty note", func(t *testing.T) {
		cmd, err := commands.NewAdvanceShipmentCommand(kernel.NewUUID(), "ops@acme.test", "")

		require.NoError(t, err)
		assert.Empty(t, cmd.Note())
	})

	t.Run("should reject invalid shipment id", func(t *testing.T) {
		_, err := commands.NewAdvanceShipmentCommand(kernel.UUID{}, "ops@acme.test", "")

		require.Error(t, err)
	})

	t.Run("should reject empty actor", func(t *testing.T) {
		_, err := commands.NewAdvanceShipmentCommand(kernel.NewUUID(), "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrActorIsRequired)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.AdvanceShipmentCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrAdvanceShipmentCommandIsNotConstructed)
	})
}

func TestNewResumedAdvanceShipmentCommand(t *testing.T) {
	t.Run("should create bypassing command with approved target", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewResumedAdvanceShipmentCommand(id, shipment.StageCruce, "manager@acme.test")

		require.NoError(t, err)
		assert.True(t, cmd.BypassGate())
		assert.Equal(t, shipment.StageCruce, cmd.TargetStage())
		assert.Equal(t, "manager@acme.test", cmd.Actor())
		assert.NotEmpty(t, cmd.Note())
	})

	t.Run("should reject invalid target stage", func(t *testing.T) {
		_, err := commands.NewResumedAdvanceShipmentCommand(
			kernel.NewUUID(), shipment.StageUnknown, "manager@acme.test")

		require.Error(t, err)
	})

	t.Run("should reject empty actor", func(t *testing.T) {
		_, err := commands.NewResumedAdvanceShipmentCommand(kernel.NewUUID(), shipment.StageCruce, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrActorIsRequired)
	})
}
