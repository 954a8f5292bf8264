package approvalrepo

import (
	"context"
	"errors"

	"shipments/internal/core/domain/model/approval"
	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormApprovalRepository implements ApprovalRepository using GORM.
type GormApprovalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormApprovalRepository creates a new GORM approval request repository.
func NewGormApprovalRepository(db *gorm.DB, tracker aggregateTracker) *GormApprovalRepository {
	return &GormApprovalRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new approval request.
func (r *GormApprovalRepository) Add(ctx context.Context, request *approval.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(request)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

// Update saves a resolved (or otherwise changed) approval request.
func (r *GormApprovalRepository) Update(ctx context.Context, request *approval.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(request)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ApprovalRequestDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("approval request", request.ID().String())
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

// Get retrieves an approval request by ID.
func (r *GormApprovalRepository) Get(ctx context.Context, id kernel.UUID) (*approval.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ApprovalRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("approval request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPending retrieves the pending request for an (actionKey, contextID) pair.
// At most one such row exists; a not-found result means the pair has no
// suspended action awaiting a verdict.
func (r *GormApprovalRepository) GetPending(
	ctx context.Context, actionKey, contextID string,
) (*approval.Request, error) {
	var dto ApprovalRequestDTO
	err := r.db.WithContext(ctx).First(
		&dto,
		"action_key = ? AND context_id = ? AND status = ?",
		actionKey, contextID, approval.StatusPending.String(),
	).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pending approval", actionKey+"/"+contextID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves every request still awaiting a verdict, oldest first.
func (r *GormApprovalRepository) GetAllPending(ctx context.Context) ([]*approval.Request, error) {
	var dtos []ApprovalRequestDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", approval.StatusPending.String()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*approval.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, dErr := toDomain(dto)
		if dErr != nil {
			return nil, dErr
		}
		requests = append(requests, request)
	}

	return requests, nil
}
