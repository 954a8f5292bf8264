// Package approvalrepo provides data transfer objects and mapping functions for
// approval request persistence. Context data — the serialized continuation of the
// suspended action — is stored as a JSON object in a text column so a resolution
// in any process can re-derive the action from the row alone.
package approvalrepo

import (
	"encoding/json"
	"time"

	"shipments/internal/core/domain/model/approval"
	"shipments/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ApprovalRequestDTO represents the database structure for persisting approval requests.
// The partial unique index on (action_key, context_id) for pending rows is what
// enforces at most one pending request per pair at the storage level: of two
// concurrent interceptions for the same pair, the loser's insert fails and is
// coalesced onto the winner's request.
type ApprovalRequestDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActionKey   string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_pending_action_context,where:status = 'pending'"`
	ContextID   string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_pending_action_context,where:status = 'pending'"`
	ContextData string    `gorm:"type:text;not null"`
	Status      string    `gorm:"type:varchar(16);not null;index"`
	RequestedBy string    `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
	ResolvedBy  string    `gorm:"type:varchar(255)"`
	ResolvedAt  *time.Time
}

// TableName specifies the database table name for approval request entities.
func (ApprovalRequestDTO) TableName() string {
	return "approval_requests"
}

// fromDomain converts an approval request aggregate to its database representation.
func fromDomain(request *approval.Request) (ApprovalRequestDTO, error) {
	contextData, err := json.Marshal(request.ContextData())
	if err != nil {
		return ApprovalRequestDTO{}, err
	}

	return ApprovalRequestDTO{
		ID:          request.ID().Bytes(),
		ActionKey:   request.ActionKey(),
		ContextID:   request.ContextID(),
		ContextData: string(contextData),
		Status:      request.Status().String(),
		RequestedBy: request.RequestedBy(),
		CreatedAt:   request.CreatedAt(),
		ResolvedBy:  request.ResolvedBy(),
		ResolvedAt:  request.ResolvedAt(),
	}, nil
}

// toDomain converts a database DTO to an approval request aggregate using RestoreRequest.
func toDomain(dto ApprovalRequestDTO) (*approval.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := approval.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var contextData map[string]string
	if dto.ContextData != "" {
		if err = json.Unmarshal([]byte(dto.ContextData), &contextData); err != nil {
			return nil, err
		}
	}

	return approval.RestoreRequest(
		id,
		dto.ActionKey,
		dto.ContextID,
		contextData,
		status,
		dto.RequestedBy,
		dto.CreatedAt,
		dto.ResolvedBy,
		dto.ResolvedAt,
	)
}
