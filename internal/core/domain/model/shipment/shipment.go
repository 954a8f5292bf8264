package shipment

import (
	"errors"
	"time"

	"shipments/internal/core/domain/model/kernel"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

	// ErrShipmentAlreadyDelivered is returned when an advance is requested on a
	// shipment whose stage is terminal.
	ErrShipmentAlreadyDelivered = errors.New("shipment is already delivered")
)

// Shipment is the aggregate root for one export load. It owns the lifecycle
// stage, the per-document upload ledger, the append-only tracking log, and the
// nested destination/cargo/correspondence collections.
//
// Shipment follows these invariants:
//   - Must have a valid unique identifier and a non-empty folio
//   - The stage only ever moves forward, one position at a time
//   - At most one DocumentRecord per document key (upserted, never appended)
//   - TrackingEvents are append-only and never mutated
//   - Can only be created through NewShipment or RestoreShipment
//
// The version field is the optimistic-concurrency token checked by the
// repository when the stage is committed; two concurrent advances observe the
// same version and only one wins.
type Shipment struct {
	id             kernel.UUID
	folio          string
	stage          Stage
	version        int
	destinations   []Destination
	cargo          []CargoUnit
	documents      []DocumentRecord
	tracking       []TrackingEvent
	correspondence []CorrespondenceRecord
	createdAt      time.Time

	isConstructed bool
}

// NewShipment creates a shipment at the initial stage with version 1.
func NewShipment(id kernel.UUID, folio string, createdAt time.Time) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if folio == "" {
		return nil, errors.New("folio is required")
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &Shipment{
		id:            id,
		folio:         folio,
		stage:         StageCooler,
		version:       1,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreShipment reconstructs the full aggregate from persistence.
// The stage must already be canonical; adapters parse legacy identifiers
// through ParseStage before calling this.
func RestoreShipment(
	id kernel.UUID,
	folio string,
	stage Stage,
	version int,
	destinations []Destination,
	cargo []CargoUnit,
	documents []DocumentRecord,
	tracking []TrackingEvent,
	correspondence []CorrespondenceRecord,
	createdAt time.Time,
) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := stage.Validate(); err != nil {
		return nil, err
	}
	if folio == "" {
		return nil, errors.New("folio is required")
	}
	if version < 1 {
		return nil, errors.New("version must be at least 1")
	}

	return &Shipment{
		id:             id,
		folio:          folio,
		stage:          stage,
		version:        version,
		destinations:   destinations,
		cargo:          cargo,
		documents:      documents,
		tracking:       tracking,
		correspondence: correspondence,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by identifier.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Folio returns the human-facing shipment reference.
func (s *Shipment) Folio() string {
	return s.folio
}

// Stage returns the current lifecycle stage.
func (s *Shipment) Stage() Stage {
	return s.stage
}

// Version returns the optimistic-concurrency token of the aggregate.
func (s *Shipment) Version() int {
	return s.version
}

// CreatedAt returns when the shipment was registered.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// Destinations returns the consignee endpoints.
func (s *Shipment) Destinations() []Destination {
	return s.destinations
}

// Cargo returns the palletized cargo units.
func (s *Shipment) Cargo() []CargoUnit {
	return s.cargo
}

// Documents returns the document ledger entries.
func (s *Shipment) Documents() []DocumentRecord {
	return s.documents
}

// TrackingEvents returns the append-only audit log in creation order.
func (s *Shipment) TrackingEvents() []TrackingEvent {
	return s.tracking
}

// Correspondence returns the outbound mail records.
func (s *Shipment) Correspondence() []CorrespondenceRecord {
	return s.correspondence
}

// Advance moves the stage forward exactly one position and returns the
// transition that was made. The move is refused on a terminal stage.
// Gating is not this method's concern: the application layer evaluates the
// gate (or bypasses it for an approval-resumed call) before invoking Advance.
func (s *Shipment) Advance() (from, to Stage, err error) {
	if err = s.Validate(); err != nil {
		return StageUnknown, StageUnknown, err
	}
	if s.stage.IsTerminal() {
		return StageUnknown, StageUnknown, ErrShipmentAlreadyDelivered
	}

	from = s.stage
	to = s.stage.Next()
	s.stage = to
	return from, to, nil
}

// AddDestination appends a consignee endpoint.
func (s *Shipment) AddDestination(destination Destination) {
	s.destinations = append(s.destinations, destination)
}

// AddCargoUnit appends a cargo unit.
func (s *Shipment) AddCargoUnit(unit CargoUnit) {
	s.cargo = append(s.cargo, unit)
}

// Document returns the ledger entry for the key, if one exists.
func (s *Shipment) Document(key DocumentKey) (DocumentRecord, bool) {
	for _, record := range s.documents {
		if record.Key() == key {
			return record, true
		}
	}
	return DocumentRecord{}, false
}

// UpsertDocument records an upload, replacing any existing entry for the
// same key. There is never more than one record per key.
func (s *Shipment) UpsertDocument(record DocumentRecord) {
	for i, existing := range s.documents {
		if existing.Key() == record.Key() {
			s.documents[i] = record
			return
		}
	}
	s.documents = append(s.documents, record)
}

// RemoveDocument drops the ledger entry for the key.
// Reports whether an entry existed.
func (s *Shipment) RemoveDocument(key DocumentKey) bool {
	for i, existing := range s.documents {
		if existing.Key() == key {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			return true
		}
	}
	return false
}

// AppendTrackingEvent adds an audit entry to the end of the log.
func (s *Shipment) AppendTrackingEvent(event TrackingEvent) {
	s.tracking = append(s.tracking, event)
}

// AddCorrespondence notes an outbound mail on the aggregate.
func (s *Shipment) AddCorrespondence(record CorrespondenceRecord) {
	s.correspondence = append(s.correspondence, record)
}
