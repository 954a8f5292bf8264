// Package shipmentrepo provides data transfer objects and mapping functions for shipment persistence.
// This package implements the repository pattern for the shipment domain aggregate, handling
// the conversion between domain entities and database representations.
package shipmentrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
// The stage is stored as its canonical string identifier; rows written by older
// software may still carry legacy identifiers, which ParseStage consolidates on read.
type ShipmentDTO struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Folio          string              `gorm:"type:varchar(64);not null;index"`
	Stage          string              `gorm:"type:varchar(32);not null;index"`
	Version        int                 `gorm:"type:int;not null"`
	CreatedAt      time.Time           `gorm:"not null;index"`
	Destinations   []DestinationDTO    `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	Cargo          []CargoUnitDTO      `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	Documents      []DocumentDTO       `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	TrackingEvents []TrackingEventDTO  `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	Correspondence []CorrespondenceDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// DestinationDTO represents one delivery destination row.
type DestinationDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Consignee  string    `gorm:"type:varchar(255);not null"`
	Address    string    `gorm:"type:varchar(512);not null"`
	City       string    `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for destination rows.
func (DestinationDTO) TableName() string {
	return "shipment_destinations"
}

// CargoUnitDTO represents one cargo line row.
type CargoUnitDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Produce    string    `gorm:"type:varchar(255);not null"`
	Pallets    int       `gorm:"type:int;not null"`
	Kilos      float64   `gorm:"type:numeric;not null"`
}

// TableName specifies the database table name for cargo rows.
func (CargoUnitDTO) TableName() string {
	return "shipment_cargo"
}

// DocumentDTO represents one document record row. The composite primary key
// on (shipment_id, doc_key) is what makes document writes an upsert: there
// is never more than one row per pair.
type DocumentDTO struct {
	ShipmentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocKey      string    `gorm:"type:varchar(64);primaryKey;column:doc_key"`
	Status      string    `gorm:"type:varchar(16);not null"`
	StoragePath string    `gorm:"type:varchar(512)"`
	UploadedAt  time.Time
}

// TableName specifies the database table name for document rows.
func (DocumentDTO) TableName() string {
	return "shipment_documents"
}

// TrackingEventDTO represents one append-only audit log row.
type TrackingEventDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStage  string    `gorm:"type:varchar(32);not null"`
	ToStage    string    `gorm:"type:varchar(32);not null"`
	Actor      string    `gorm:"type:varchar(255);not null"`
	OccurredAt time.Time `gorm:"not null;index"`
	Note       string    `gorm:"type:varchar(512)"`
}

// TableName specifies the database table name for tracking rows.
func (TrackingEventDTO) TableName() string {
	return "shipment_tracking_events"
}

// CorrespondenceDTO represents one outbound-mail audit row. Recipients are
// stored as a JSON array in a text column.
type CorrespondenceDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Recipients string    `gorm:"type:text;not null"`
	Subject    string    `gorm:"type:varchar(512);not null"`
	MailID     string    `gorm:"type:varchar(255)"`
	SentAt     time.Time `gorm:"not null"`
}

// TableName specifies the database table name for correspondence rows.
func (CorrespondenceDTO) TableName() string {
	return "shipment_correspondence"
}

// fromDomain converts a shipment domain aggregate to its database representation.
// Maps all nested collections to their child-table rows.
func fromDomain(aggregate *shipment.Shipment) (ShipmentDTO, error) {
	shipmentID := aggregate.ID().Bytes()

	destinations := make([]DestinationDTO, 0, len(aggregate.Destinations()))
	for _, d := range aggregate.Destinations() {
		destinations = append(destinations, DestinationDTO{
			ShipmentID: shipmentID,
			Consignee:  d.Consignee(),
			Address:    d.Address(),
			City:       d.City(),
		})
	}

	cargo := make([]CargoUnitDTO, 0, len(aggregate.Cargo()))
	for _, c := range aggregate.Cargo() {
		cargo = append(cargo, CargoUnitDTO{
			ShipmentID: shipmentID,
			Produce:    c.Produce(),
			Pallets:    c.Pallets(),
			Kilos:      c.Kilos(),
		})
	}

	documents := make([]DocumentDTO, 0, len(aggregate.Documents()))
	for _, d := range aggregate.Documents() {
		documents = append(documents, documentFromDomain(shipmentID, d))
	}

	tracking := make([]TrackingEventDTO, 0, len(aggregate.TrackingEvents()))
	for _, e := range aggregate.TrackingEvents() {
		tracking = append(tracking, trackingEventFromDomain(shipmentID, e))
	}

	correspondence := make([]CorrespondenceDTO, 0, len(aggregate.Correspondence()))
	for _, r := range aggregate.Correspondence() {
		dto, err := correspondenceFromDomain(shipmentID, r)
		if err != nil {
			return ShipmentDTO{}, err
		}
		correspondence = append(correspondence, dto)
	}

	return ShipmentDTO{
		ID:             shipmentID,
		Folio:          aggregate.Folio(),
		Stage:          aggregate.Stage().String(),
		Version:        aggregate.Version(),
		CreatedAt:      aggregate.CreatedAt(),
		Destinations:   destinations,
		Cargo:          cargo,
		Documents:      documents,
		TrackingEvents: tracking,
		Correspondence: correspondence,
	}, nil
}

func documentFromDomain(shipmentID uuid.UUID, record shipment.DocumentRecord) DocumentDTO {
	return DocumentDTO{
		ShipmentID:  shipmentID,
		DocKey:      string(record.Key()),
		Status:      record.Status().String(),
		StoragePath: record.StoragePath(),
		UploadedAt:  record.UploadedAt(),
	}
}

func trackingEventFromDomain(shipmentID uuid.UUID, event shipment.TrackingEvent) TrackingEventDTO {
	return TrackingEventDTO{
		ShipmentID: shipmentID,
		FromStage:  event.FromStage().String(),
		ToStage:    event.ToStage().String(),
		Actor:      event.Actor(),
		OccurredAt: event.OccurredAt(),
		Note:       event.Note(),
	}
}

func correspondenceFromDomain(shipmentID uuid.UUID, record shipment.CorrespondenceRecord) (CorrespondenceDTO, error) {
	recipients, err := json.Marshal(record.Recipients())
	if err != nil {
		return CorrespondenceDTO{}, err
	}

	return CorrespondenceDTO{
		ShipmentID: shipmentID,
		Recipients: string(recipients),
		Subject:    record.Subject(),
		MailID:     record.MailID(),
		SentAt:     record.SentAt(),
	}, nil
}

// toDomain converts a database DTO to a shipment domain aggregate.
// Reconstructs the complete aggregate including all nested collections using RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	// Stage identifiers in old rows may be legacy aliases; ParseStage maps
	// them onto the canonical stage.
	stage, err := shipment.ParseStage(dto.Stage)
	if err != nil {
		return nil, err
	}

	destinations := make([]shipment.Destination, 0, len(dto.Destinations))
	for _, d := range dto.Destinations {
		destination, dErr := shipment.NewDestination(d.Consignee, d.Address, d.City)
		if dErr != nil {
			return nil, dErr
		}
		destinations = append(destinations, destination)
	}

	cargo := make([]shipment.CargoUnit, 0, len(dto.Cargo))
	for _, c := range dto.Cargo {
		unit, cErr := shipment.NewCargoUnit(c.Produce, c.Pallets, c.Kilos)
		if cErr != nil {
			return nil, cErr
		}
		cargo = append(cargo, unit)
	}

	documents := make([]shipment.DocumentRecord, 0, len(dto.Documents))
	for _, d := range dto.Documents {
		record, dErr := documentToDomain(d)
		if dErr != nil {
			return nil, dErr
		}
		documents = append(documents, record)
	}

	tracking := make([]shipment.TrackingEvent, 0, len(dto.TrackingEvents))
	for _, e := range dto.TrackingEvents {
		event, eErr := trackingEventToDomain(e)
		if eErr != nil {
			return nil, eErr
		}
		tracking = append(tracking, event)
	}

	correspondence := make([]shipment.CorrespondenceRecord, 0, len(dto.Correspondence))
	for _, c := range dto.Correspondence {
		record, cErr := correspondenceToDomain(c)
		if cErr != nil {
			return nil, cErr
		}
		correspondence = append(correspondence, record)
	}

	return shipment.RestoreShipment(
		id,
		dto.Folio,
		stage,
		dto.Version,
		destinations,
		cargo,
		documents,
		tracking,
		correspondence,
		dto.CreatedAt,
	)
}

func documentToDomain(dto DocumentDTO) (shipment.DocumentRecord, error) {
	status, err := parseDocumentStatus(dto.Status)
	if err != nil {
		return shipment.DocumentRecord{}, err
	}

	return shipment.RestoreDocumentRecord(
		shipment.DocumentKey(dto.DocKey), status, dto.StoragePath, dto.UploadedAt,
	)
}

func trackingEventToDomain(dto TrackingEventDTO) (shipment.TrackingEvent, error) {
	fromStage, err := shipment.ParseStage(dto.FromStage)
	if err != nil {
		return shipment.TrackingEvent{}, err
	}
	toStage, err := shipment.ParseStage(dto.ToStage)
	if err != nil {
		return shipment.TrackingEvent{}, err
	}

	return shipment.NewTrackingEvent(fromStage, toStage, dto.Actor, dto.OccurredAt, dto.Note)
}

func correspondenceToDomain(dto CorrespondenceDTO) (shipment.CorrespondenceRecord, error) {
	var recipients []string
	if err := json.Unmarshal([]byte(dto.Recipients), &recipients); err != nil {
		return shipment.CorrespondenceRecord{}, err
	}

	return shipment.NewCorrespondenceRecord(recipients, dto.Subject, dto.MailID, dto.SentAt)
}

func parseDocumentStatus(value string) (shipment.DocumentStatus, error) {
	switch value {
	case shipment.DocumentUploaded.String():
		return shipment.DocumentUploaded, nil
	case shipment.DocumentAbsent.String():
		return shipment.DocumentAbsent, nil
	default:
		return 0, fmt.Errorf("%q is not a valid document status", value)
	}
}
