// Package shipment provides the domain model for export shipment lifecycle
// management. It implements the Shipment aggregate root together with the
// value objects that make up its nested collections.
//
// The package includes:
//   - Shipment: the aggregate root owning stage, ledger, and audit log
//   - Stage: a strictly forward, single-step lifecycle state machine
//   - Requirement: the static per-stage mandatory-document checklist
//   - DocumentRecord: per-key upload state, upserted never duplicated
//   - TrackingEvent: the append-only audit record of a stage transition
//   - Destination, CargoUnit, CorrespondenceRecord: nested collections
//
// Key business rules:
//   - Stages follow cooler -> cruce -> transito -> entregado, never skipping
//     or reversing; entregado is terminal
//   - Legacy stage identifiers are mapped to canonical stages in exactly one
//     place (ParseStage), at the persistence boundary
//   - Checklist declaration order is the canonical missing-list order
//   - The aggregate version is the optimistic-concurrency token for stage
//     commits
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package shipment
