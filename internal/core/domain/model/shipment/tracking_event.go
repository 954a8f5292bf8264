package shipment

import (
	"time"

	"shipments/internal/pkg/errs"
)

// TrackingEvent is one entry of the append-only audit log of stage
// transitions. Events are ordered by creation time and are never deleted
// or mutated once created.
type TrackingEvent struct {
	fromStage  Stage
	toStage    Stage
	actor      string
	occurredAt time.Time
	note       string
}

// NewTrackingEvent creates an audit entry for a committed stage transition.
// Both stages must be valid and the actor must be named; the note is optional.
func NewTrackingEvent(fromStage, toStage Stage, actor string, occurredAt time.Time, note string) (TrackingEvent, error) {
	if err := fromStage.Validate(); err != nil {
		return TrackingEvent{}, err
	}
	if err := toStage.Validate(); err != nil {
		return TrackingEvent{}, err
	}
	if actor == "" {
		return TrackingEvent{}, errs.NewValueIsRequiredError("actor")
	}
	if occurredAt.IsZero() {
		return TrackingEvent{}, errs.NewValueIsRequiredError("occurrence timestamp")
	}

	return TrackingEvent{
		fromStage:  fromStage,
		toStage:    toStage,
		actor:      actor,
		occurredAt: occurredAt,
		note:       note,
	}, nil
}

// FromStage returns the stage the shipment left.
func (e TrackingEvent) FromStage() Stage {
	return e.fromStage
}

// ToStage returns the stage the shipment entered.
func (e TrackingEvent) ToStage() Stage {
	return e.toStage
}

// Actor returns who committed the transition.
func (e TrackingEvent) Actor() string {
	return e.actor
}

// OccurredAt returns when the transition was committed.
func (e TrackingEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// Note returns the optional free-text annotation.
func (e TrackingEvent) Note() string {
	return e.note
}
