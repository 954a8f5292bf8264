package shipment

import (
	"fmt"
	"time"

	"shipments/internal/pkg/errs"
)

// DocumentStatus represents the upload state of a document record.
type DocumentStatus int

const (
	// DocumentAbsent means no usable upload exists for the key.
	DocumentAbsent DocumentStatus = iota

	// DocumentUploaded means a blob has been stored for the key.
	DocumentUploaded
)

// String returns the persisted identifier of the status.
func (s DocumentStatus) String() string {
	if s == DocumentUploaded {
		return "uploaded"
	}
	return "absent"
}

// Validate checks if the DocumentStatus value is valid.
func (s DocumentStatus) Validate() error {
	if s != DocumentAbsent && s != DocumentUploaded {
		return errs.NewValueIsInvalidErrorWithCause(
			"document status is invalid",
			fmt.Errorf("%d is not a valid document status", s),
		)
	}
	return nil
}

// DocumentRecord tracks the upload state of one document type on a shipment.
// There is never more than one record per (shipment, key) pair: records are
// upserted, not appended. The record stores only a stable storage path —
// access URLs are time-limited and must be minted fresh at read time, never
// persisted here.
type DocumentRecord struct {
	key         DocumentKey
	status      DocumentStatus
	storagePath string
	uploadedAt  time.Time
}

// NewUploadedDocument creates a record for a completed upload.
// The key must be part of some stage checklist and the storage path must
// be non-empty.
func NewUploadedDocument(key DocumentKey, storagePath string, uploadedAt time.Time) (DocumentRecord, error) {
	if !IsKnownDocumentKey(key) {
		return DocumentRecord{}, errs.NewValueIsInvalidErrorWithCause(
			"document key is invalid",
			fmt.Errorf("%q is not part of any stage checklist", key),
		)
	}
	if storagePath == "" {
		return DocumentRecord{}, errs.NewValueIsRequiredError("storage path")
	}
	if uploadedAt.IsZero() {
		return DocumentRecord{}, errs.NewValueIsRequiredError("upload timestamp")
	}

	return DocumentRecord{
		key:         key,
		status:      DocumentUploaded,
		storagePath: storagePath,
		uploadedAt:  uploadedAt,
	}, nil
}

// RestoreDocumentRecord reconstructs a record from persistence.
func RestoreDocumentRecord(
	key DocumentKey, status DocumentStatus, storagePath string, uploadedAt time.Time,
) (DocumentRecord, error) {
	if err := status.Validate(); err != nil {
		return DocumentRecord{}, err
	}
	if !IsKnownDocumentKey(key) {
		return DocumentRecord{}, errs.NewValueIsInvalidErrorWithCause(
			"document key is invalid",
			fmt.Errorf("%q is not part of any stage checklist", key),
		)
	}

	return DocumentRecord{
		key:         key,
		status:      status,
		storagePath: storagePath,
		uploadedAt:  uploadedAt,
	}, nil
}

// Key returns the document type identifier.
func (d DocumentRecord) Key() DocumentKey {
	return d.key
}

// Status returns the upload state of the record.
func (d DocumentRecord) Status() DocumentStatus {
	return d.status
}

// StoragePath returns the stable blob path of the upload.
func (d DocumentRecord) StoragePath() string {
	return d.storagePath
}

// UploadedAt returns when the blob was stored.
func (d DocumentRecord) UploadedAt() time.Time {
	return d.uploadedAt
}

// IsUploaded reports whether the record satisfies its checklist entry.
func (d DocumentRecord) IsUploaded() bool {
	return d.status == DocumentUploaded
}
