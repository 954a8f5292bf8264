package shipmentrepo

import (
	"context"
	"errors"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/core/ports"
	"shipments/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment aggregate with all nested collections.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves non-stage field edits of an existing shipment. Stage changes
// must go through UpdateStage so the compare-and-swap applies.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{"folio": dto.Folio})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
	}

	if err = r.replaceDestinations(ctx, dto); err != nil {
		return err
	}
	if err = r.replaceCargo(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStage commits a stage transition guarded by a compare-and-swap on
// the persisted (stage, version) pair. The predicate carries the observed
// values; zero rows affected means another writer got there first. Historic
// rows may still store a legacy stage identifier, so the predicate matches
// every persisted spelling of the observed stage; the write always stores
// the canonical one, normalizing the row in passing.
func (r *GormShipmentRepository) UpdateStage(
	ctx context.Context, id kernel.UUID, from, to shipment.Stage, version int,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ? AND stage IN ? AND version = ?", id.Bytes(), from.PersistedIdentifiers(), version).
		Updates(map[string]any{
			"stage":   to.String(),
			"version": version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
			Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("shipment", id.String())
		}
		return ports.ErrStageConflict
	}

	return nil
}

// AppendTrackingEvent appends one audit row. The log is append-only.
func (r *GormShipmentRepository) AppendTrackingEvent(
	ctx context.Context, id kernel.UUID, event shipment.TrackingEvent,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	dto := trackingEventFromDomain(id.Bytes(), event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// UpsertDocument writes the document record for its key. The composite
// primary key on (shipment_id, doc_key) turns the conflict into an update,
// so there is never a second row for the same pair.
func (r *GormShipmentRepository) UpsertDocument(
	ctx context.Context, id kernel.UUID, record shipment.DocumentRecord,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	dto := documentFromDomain(id.Bytes(), record)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shipment_id"}, {Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "storage_path", "uploaded_at"}),
	}).Create(&dto).Error
}

// RemoveDocument drops the document record for the key, if present.
func (r *GormShipmentRepository) RemoveDocument(
	ctx context.Context, id kernel.UUID, key shipment.DocumentKey,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("shipment_id = ? AND doc_key = ?", id.Bytes(), string(key)).
		Delete(&DocumentDTO{}).Error
}

// AppendCorrespondence notes one outbound mail on the shipment.
func (r *GormShipmentRepository) AppendCorrespondence(
	ctx context.Context, id kernel.UUID, record shipment.CorrespondenceRecord,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	dto, err := correspondenceFromDomain(id.Bytes(), record)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves the full aggregate by ID with every nested collection joined.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every shipment as a full aggregate, newest first.
func (r *GormShipmentRepository) GetAll(ctx context.Context) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	if err := r.preloaded(ctx).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, aggregate)
	}

	return shipments, nil
}

func (r *GormShipmentRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Destinations").
		Preload("Cargo").
		Preload("Documents").
		Preload("TrackingEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at")
		}).
		Preload("Correspondence")
}

func (r *GormShipmentRepository) replaceDestinations(ctx context.Context, dto ShipmentDTO) error {
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", dto.ID).
		Delete(&DestinationDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Destinations) == 0 {
		return nil
	}
	destinations := dto.Destinations
	return r.db.WithContext(ctx).Create(&destinations).Error
}

func (r *GormShipmentRepository) replaceCargo(ctx context.Context, dto ShipmentDTO) error {
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", dto.ID).
		Delete(&CargoUnitDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Cargo) == 0 {
		return nil
	}
	cargo := dto.Cargo
	return r.db.WithContext(ctx).Create(&cargo).Error
}
