// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the shipment system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - StageGate: A domain service that evaluates whether a shipment's document
//     checklist allows it to depart its current stage
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
