package shipment

import "shipments/internal/pkg/errs"

// Destination is the consignee endpoint of a shipment.
// A shipment must carry at least one destination before it may advance.
type Destination struct {
	consignee string
	address   string
	city      string
}

// NewDestination creates a destination. Consignee and address are required;
// city is optional.
func NewDestination(consignee, address, city string) (Destination, error) {
	if consignee == "" {
		return Destination{}, errs.NewValueIsRequiredError("consignee")
	}
	if address == "" {
		return Destination{}, errs.NewValueIsRequiredError("address")
	}

	return Destination{
		consignee: consignee,
		address:   address,
		city:      city,
	}, nil
}

// Consignee returns the receiving party.
func (d Destination) Consignee() string {
	return d.consignee
}

// Address returns the delivery address.
func (d Destination) Address() string {
	return d.address
}

// City returns the optional destination city.
func (d Destination) City() string {
	return d.city
}
