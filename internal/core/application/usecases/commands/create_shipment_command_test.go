package commands_test

import (
	"testing"

	"shipments/internal/core/application/usecases/commands"
	"shipments/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateShipmentCommand(t *testing.T) {
	t.Run("should create command with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewCreateShipmentCommand(
			id, "F-2026-0042", "Fresh Produce Inc", "1200 Produce Row", "Laredo")

		require.NoError(t, err)
		assert.True(t, cmd.ShipmentID().IsEqual(id))
		assert.Equal(t, "F-2026-0042", cmd.Folio())
		assert.Equal(t, "Fresh Produce Inc", cmd.Consignee())
		assert.Equal(t, "1200 Produce Row", cmd.Address())
		assert.Equal(t, "Laredo", cmd.City())
		require.NoError(t, cmd.Validate())
	})

	t.Run("should allow empty city", func(t *testing.T) {
		cmd, err := commands.NewCreateShipmentCommand(
			kernel.NewUUID(), "F-2026-0042", "Fresh Produce Inc", "1200 Produce Row", "")

		require.NoError(t, err)
		assert.Empty(t, cmd.City())
	})

	t.Run("should reject invalid shipment id", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(
			kernel.UUID{}, "F-2026-0042", "Fresh Produce Inc", "1200 Produce Row", "")

		require.Error(t, err)
	})

	t.Run("should reject empty folio", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(
			kernel.NewUUID(), "", "Fresh Produce Inc", "1200 Produce Row", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrFolioIsRequired)
	})

	t.Run("should reject empty consignee", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(
			kernel.NewUUID(), "F-2026-0042", "", "1200 Produce Row", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrConsigneeIsRequired)
	})

	t.Run("should reject empty address", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(
			kernel.NewUUID(), "F-2026-0042", "Fresh Produce Inc", "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrAddressIsRequired)
	})

	t.Run("should join multiple validation failures", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(kernel.UUID{}, "", "", "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrFolioIsRequired)
		assert.ErrorIs(t, err, commands.ErrConsigneeIsRequired)
		assert.ErrorIs(t, err, commands.ErrAddressIsRequired)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.CreateShipmentCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrCreateShipmentCommandIsNotConstructed)
	})
}
