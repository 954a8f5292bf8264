package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shipments/internal/core/ports"
	"shipments/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDocumentURLQueryHandler resolves a document's stable storage path and
// mints a fresh time-limited access URL for it.
type GetDocumentURLQueryHandler struct {
	db      *gorm.DB
	storage ports.BlobStorage
}

// NewGetDocumentURLQueryHandler creates a handler for document URL queries.
func NewGetDocumentURLQueryHandler(db *gorm.DB, storage ports.BlobStorage) GetDocumentURLQueryHandler {
	return GetDocumentURLQueryHandler{db: db, storage: storage}
}

// Handle looks up the uploaded document record and mints a signed URL valid
// for the query's TTL. A missing or never-uploaded document yields an
// object-not-found error.
func (h GetDocumentURLQueryHandler) Handle(
	ctx context.Context,
	query GetDocumentURLQuery,
) (GetDocumentURLQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDocumentURLQueryResponse{}, err
	}

	var storagePath string
	row := h.db.WithContext(ctx).Raw(`
		SELECT storage_path
		FROM shipment_documents
		WHERE shipment_id = ? AND doc_key = ? AND status = 'uploaded'
	`, query.ShipmentID().String(), string(query.DocumentKey())).Row()

	if err := row.Scan(&storagePath); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDocumentURLQueryResponse{}, errs.NewObjectNotFoundError(
				string(query.DocumentKey()), query.ShipmentID().String(),
			)
		}
		return GetDocumentURLQueryResponse{}, err
	}

	url, err := h.storage.SignedURL(ctx, storagePath, query.TTL())
	if err != nil {
		return GetDocumentURLQueryResponse{}, err
	}

	return GetDocumentURLQueryResponse{
		URL:       url,
		ExpiresAt: time.Now().Add(query.TTL()),
	}, nil
}
