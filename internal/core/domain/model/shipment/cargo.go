package shipment

import (
	"fmt"

	"shipments/internal/pkg/errs"
)

// CargoUnit describes one palletized unit of produce on the shipment.
type CargoUnit struct {
	produce string
	pallets int
	kilos   float64
}

// NewCargoUnit creates a cargo unit. The produce description is required and
// pallet count must be positive.
func NewCargoUnit(produce string, pallets int, kilos float64) (CargoUnit, error) {
	if produce == "" {
		return CargoUnit{}, errs.NewValueIsRequiredError("produce")
	}
	if pallets <= 0 {
		return CargoUnit{}, errs.NewValueIsInvalidErrorWithCause(
			"pallets is invalid",
			fmt.Errorf("%d is not greater than 0", pallets),
		)
	}
	if kilos < 0 {
		return CargoUnit{}, errs.NewValueIsInvalidErrorWithCause(
			"kilos is invalid",
			fmt.Errorf("%f is negative", kilos),
		)
	}

	return CargoUnit{
		produce: produce,
		pallets: pallets,
		kilos:   kilos,
	}, nil
}

// Produce returns the produce description.
func (c CargoUnit) Produce() string {
	return c.produce
}

// Pallets returns the pallet count.
func (c CargoUnit) Pallets() int {
	return c.pallets
}

// Kilos returns the net weight.
func (c CargoUnit) Kilos() float64 {
	return c.kilos
}
