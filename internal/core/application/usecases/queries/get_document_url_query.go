package queries

import (
	"errors"
	"fmt"
	"time"

	"shipments/internal/core/domain/model/kernel"
	"shipments/internal/core/domain/model/shipment"
	"shipments/internal/pkg/guard"
)

var ErrGetDocumentURLQueryIsNotConstructed = errors.New(
	"GetDocumentURLQuery must be created via NewGetDocumentURLQuery constructor",
)

// DefaultDocumentURLTTL is how long a minted document access URL stays valid.
const DefaultDocumentURLTTL = 15 * time.Minute

// GetDocumentURLQuery requests a fresh time-limited access URL for one
// uploaded checklist document. URLs are never stored; every read mints a
// new one from the document's stable storage path.
type GetDocumentURLQuery struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	documentKey shipment.DocumentKey
	ttl         time.Duration

	guard guard.ConstructorGuard
}

// NewGetDocumentURLQuery creates a document URL query. A non-positive ttl
// falls back to DefaultDocumentURLTTL.
func NewGetDocumentURLQuery(
	shipmentID kernel.UUID, documentKey shipment.DocumentKey, ttl time.Duration,
) (GetDocumentURLQuery, error) {
	query := GetDocumentURLQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := shipmentID.Validate(); err != nil {
		return GetDocumentURLQuery{}, err
	}
	if !shipment.IsKnownDocumentKey(documentKey) {
		return GetDocumentURLQuery{}, fmt.Errorf("%q is not part of any stage checklist", documentKey)
	}

	if ttl <= 0 {
		ttl = DefaultDocumentURLTTL
	}

	query.shipmentID = shipmentID
	query.documentKey = documentKey
	query.ttl = ttl
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDocumentURLQuery) Validate() error {
	return q.guard.Validate(ErrGetDocumentURLQueryIsNotConstructed)
}

// ShipmentID returns the owning shipment.
func (q GetDocumentURLQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// DocumentKey returns the checklist key.
func (q GetDocumentURLQuery) DocumentKey() shipment.DocumentKey {
	return q.documentKey
}

// TTL returns the validity window for the minted URL.
func (q GetDocumentURLQuery) TTL() time.Duration {
	return q.ttl
}

// GetDocumentURLQueryResponse carries the freshly minted access URL.
type GetDocumentURLQueryResponse struct {
	URL       string
	ExpiresAt time.Time
}
