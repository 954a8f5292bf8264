package ports

import (
	"context"
	"time"
)

// BlobStorage is the boundary to the document blob store. The core persists
// only stable storage paths; access URLs are time-limited and are minted
// fresh through SignedURL at read time, never cached.
type BlobStorage interface {
	// Put stores the blob under the given path, overwriting any previous
	// content. Upload is an idempotent upsert.
	Put(ctx context.Context, path string, data []byte, contentType string) error

	// Get retrieves the blob content stored under the path.
	Get(ctx context.Context, path string) ([]byte, error)

	// SignedURL mints a fresh time-limited access URL for the path.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)

	// Delete removes the blob. Deletion is best-effort at the call sites:
	// a failed blob delete never blocks removal of the metadata record.
	Delete(ctx context.Context, path string) error
}
