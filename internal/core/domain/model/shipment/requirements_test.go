package shipment_test

import (
	"testing"

	"shipments/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementsFor(t *testing.T) {
	t.Run("should return cooler checklist in declaration order", func(t *testing.T) {
		requirements := shipment.RequirementsFor(shipment.StageCooler)

		require.Len(t, requirements, 7)
		keys := make([]shipment.DocumentKey, 0, len(requirements))
		for _, requirement := range requirements {
			keys = append(keys, requirement.Key)
		}
		assert.Equal(t, []shipment.DocumentKey{
			shipment.DocFacturaComercial,
			shipment.DocListaEmpaque,
			shipment.DocCertFitosanitario,
			shipment.DocCartaResponsiva,
			shipment.DocManifiestoCarga,
			shipment.DocHojaCalidad,
			shipment.DocFotosEmbarque,
		}, keys)
	})

	t.Run("should mark fotos embarque as optional in cooler", func(t *testing.T) {
		requirements := shipment.RequirementsFor(shipment.StageCooler)

		for _, requirement := range requirements {
			if requirement.Key == shipment.DocFotosEmbarque {
				assert.False(t, requirement.Required)
			} else {
				assert.True(t, requirement.Required, "%s should be required", requirement.Key)
			}
		}
	})

	t.Run("should have only optional entries for the terminal stage", func(t *testing.T) {
		requirements := shipment.RequirementsFor(shipment.StageEntregado)

		require.Len(t, requirements, 1)
		assert.Equal(t, shipment.DocProofOfDelivery, requirements[0].Key)
		assert.False(t, requirements[0].Required)
	})

	t.Run("should return empty checklist for unknown stage", func(t *testing.T) {
		assert.Empty(t, shipment.RequirementsFor(shipment.StageUnknown))
	})
}

func TestIsKnownDocumentKey(t *testing.T) {
	t.Run("should accept every checklist key", func(t *testing.T) {
		stages := []shipment.Stage{
			shipment.StageCooler,
			shipment.StageCruce,
			shipment.StageTransito,
			shipment.StageEntregado,
		}

		for _, stage := range stages {
			for _, requirement := range shipment.RequirementsFor(stage) {
				assert.True(t, shipment.IsKnownDocumentKey(requirement.Key))
			}
		}
	})

	t.Run("should reject keys outside every checklist", func(t *testing.T) {
		assert.False(t, shipment.IsKnownDocumentKey(""))
		assert.False(t, shipment.IsKnownDocumentKey("carta_porte"))
		assert.False(t, shipment.IsKnownDocumentKey("Pedimento"))
	})
}
