package ports

import "context"

// ChangeKind classifies a persistence-layer change notification.
type ChangeKind string

const (
	// ChangeCreated signals a new entity was persisted.
	ChangeCreated ChangeKind = "created"

	// ChangeUpdated signals an existing entity was modified. The event does
	// not say which fields or nested collections changed; consumers re-fetch
	// the full aggregate.
	ChangeUpdated ChangeKind = "updated"

	// ChangeDeleted signals an entity was removed.
	ChangeDeleted ChangeKind = "deleted"
)

// EntityShipment is the entity type carried by shipment change events.
const EntityShipment = "shipment"

// ChangeEvent is the minimal change notification exchanged over the
// publish/subscribe channel: what kind of change happened to which entity.
// It intentionally carries no payload beyond the id.
type ChangeEvent struct {
	Kind       ChangeKind `json:"kind"`
	EntityType string     `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
}

// ChangeHandler processes one change event. Returning an error tells the
// stream the event was not handled; redelivery is up to the transport.
type ChangeHandler func(ctx context.Context, event ChangeEvent) error

// ChangeStream is the subscribing side of the pub/sub primitive. Subscribe
// blocks, invoking the handler for every event of the given entity type
// until the context is cancelled.
type ChangeStream interface {
	Subscribe(ctx context.Context, entityType string, handler ChangeHandler) error
}

// ChangePublisher is the emitting side of the pub/sub primitive. Commands
// publish after a successful commit so other connected clients converge.
type ChangePublisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}
