package realtime_test

import (
	"testing"
	"time"

	"shipments/internal/core/application/realtime"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspaceShipment(t *testing.T, folio string, stage shipment.Stage, createdAt time.Time) *shipment.Shipment {
	t.Helper()

	aggregate, err := shipment.RestoreShipment(
		kernel.NewUUID(), folio, stage, 1, nil, nil, nil, nil, nil, createdAt)
	require.NoError(t, err)
	return aggregate
}

func TestWorkspace_Replace(t *testing.T) {
	t.Run("should install new shipment", func(t *testing.T) {
		workspace := realtime.NewWorkspace()
		aggregate := newWorkspaceShipment(t, "F-2026-0042", shipment.StageCooler, time.Now())

		workspace.Replace(aggregate)

		held, ok := workspace.Get(aggregate.ID().String())
		require.True(t, ok)
		assert.Same(t, aggregate, held)
		assert.Equal(t, 1, workspace.Len())
	})

	t.Run("should replace held state wholesale with the last write", func(t *testing.T) {
		workspace := realtime.NewWorkspace()
		first := newWorkspaceShipment(t, "F-2026-0042", shipment.StageCooler, time.Now())
		workspace.Replace(first)

		updated, err := shipment.RestoreShipment(
			first.ID(), first.Folio(), shipment.StageCruce, 2, nil, nil, nil, nil, nil, first.CreatedAt())
		require.NoError(t, err)
		workspace.Replace(updated)

		held, ok := workspace.Get(first.ID().String())
		require.True(t, ok)
		assert.Equal(t, shipment.StageCruce, held.Stage())
		assert.Equal(t, 2, held.Version())
		assert.Equal(t, 1, workspace.Len())
	})
}

func TestWorkspace_Remove(t *testing.T) {
	t.Run("should drop the shipment", func(t *testing.T) {
		workspace := realtime.NewWorkspace()
		aggregate := newWorkspaceShipment(t, "F-2026-0042", shipment.StageCooler, time.Now())
		workspace.Replace(aggregate)

		workspace.Remove(aggregate.ID().String())

		_, ok := workspace.Get(aggregate.ID().String())
		assert.False(t, ok)
		assert.Zero(t, workspace.Len())
	})

	t.Run("should clear the selection when the selected shipment is removed", func(t *testing.T) {
		workspace := realtime.NewWorkspace()
		aggregate := newWorkspaceShipment(t, "F-2026-0042", shipment.StageCooler, time.Now())
		workspace.Replace(aggregate)
		workspace.Select(aggregate.ID().String())

		workspace.Remove(aggregate.ID().String())

		_, ok := workspace.Selection()
		assert.False(t, ok)
	})

	t.Run("should keep the selection when another shipment is removed", func(t *testing.T) {
		workspace := realtime.NewWorkspace()
		selected := newWorkspaceShipment(t, "F-2026-0042", shipment.StageCooler, time.Now())
		other := newWorkspaceShipment(t, "F-2026-0099", shipment.StageCooler, time.Now())
		workspace.Replace(selected)
		workspace.Replace(other)
		workspace.Select(selected.ID().String())

		workspace.Remove(other.ID().String())

		held, ok := workspace.Selection()
		require.True(t, ok)
		assert.Same(t, selected, held)
	})

	t.Run("should be a no-op for absent id", func(t *testing.T) {
		workspace := realtime.NewWorkspace()

		workspace.Remove(kernel.NewUUID().String())

		assert.Zero(t, workspace.Len())
	})
}

func TestWorkspace_All(t *testing.T) {
	t.Run("should order newest first", func(t *testing.T) {
		workspace := realtime.NewWorkspace()
		oldest := newWorkspaceShipment(t, "F-2026-0001", shipment.StageEntregado, time.Now().Add(-2*time.Hour))
		middle := newWorkspaceShipment(t, "F-2026-0002", shipment.StageCruce, time.Now().Add(-time.Hour))
		newest := newWorkspaceShipment(t, "F-2026-0003", shipment.StageCooler, time.Now())
		workspace.Replace(middle)
		workspace.Replace(oldest)
		workspace.Replace(newest)

		all := workspace.All()

		require.Len(t, all, 3)
		assert.Equal(t, "F-2026-0003", all[0].Folio())
		assert.Equal(t, "F-2026-0002", all[1].Folio())
		assert.Equal(t, "F-2026-0001", all[2].Folio())
	})
}

func TestWorkspace_Selection(t *testing.T) {
	t.Run("should follow updates to the selected shipment", func(t *testing.T) {
		workspace := realtime.NewWorkspace()
		aggregate := newWorkspaceShipment(t, "F-2026-0042", shipment.StageCooler, time.Now())
		workspace.Replace(aggregate)
		workspace.Select(aggregate.ID().String())

		updated, err := shipment.RestoreShipment(
			aggregate.ID(), aggregate.Folio(), shipment.StageCruce, 2,
			nil, nil, nil, nil, nil, aggregate.CreatedAt())
		require.NoError(t, err)
		workspace.Replace(updated)

		held, ok := workspace.Selection()
		require.True(t, ok)
		assert.Equal(t, shipment.StageCruce, held.Stage())
	})

	t.Run("should clear selection when selecting an absent id", func(t *testing.T) {
		workspace := realtime.NewWorkspace()
		aggregate := newWorkspaceShipment(t, "F-2026-0042", shipment.StageCooler, time.Now())
		workspace.Replace(aggregate)
		workspace.Select(aggregate.ID().String())

		workspace.Select(kernel.NewUUID().String())

		_, ok := workspace.Selection()
		assert.False(t, ok)
	})

	t.Run("should report no selection on an empty workspace", func(t *testing.T) {
		workspace := realtime.NewWorkspace()

		_, ok := workspace.Selection()

		assert.False(t, ok)
	})

	t.Run("should clear selection explicitly", func(t *testing.T) {
		workspace := realtime.NewWorkspace()
		aggregate := newWorkspaceShipment(t, "F-2026-0042", shipment.StageCooler, time.Now())
		workspace.Replace(aggregate)
		workspace.Select(aggregate.ID().String())

		workspace.ClearSelection()

		_, ok := workspace.Selection()
		assert.False(t, ok)
	})
}
