package services

import (
	"shipments/internal/core/domain/model/shipment"
)

// GateResult is the outcome of evaluating a stage checklist against a
// shipment's document ledger. It is a control result, not an error: a
// blocked gate is a normal state of the workflow.
type GateResult struct {
	// Satisfied is true iff Missing is empty.
	Satisfied bool

	// Missing lists the required-and-not-uploaded document keys, in
	// checklist declaration order (never alphabetical).
	Missing []shipment.DocumentKey
}

// StageGate is the domain service deciding whether a shipment may leave a
// stage. It is deterministic and side-effect-free: the same shipment and
// stage always produce the same result, and nothing is mutated.
//
// Example usage:
//
//	gate := services.NewStageGate()
//	result, err := gate.Evaluate(s, s.Stage())
//	if err != nil {
//	    return err
//	}
//	if !result.Satisfied {
//	    // result.Missing holds the ordered blocking documents
//	}
type StageGate struct{}

// NewStageGate creates a new StageGate instance.
func NewStageGate() StageGate {
	return StageGate{}
}

// Evaluate checks the shipment's document ledger against the checklist of
// the given stage. A requirement counts as missing when it is marked
// required and its document record is absent or not uploaded. Optional
// requirements never block.
func (g StageGate) Evaluate(s *shipment.Shipment, stage shipment.Stage) (GateResult, error) {
	if err := s.Validate(); err != nil {
		return GateResult{}, err
	}
	if err := stage.Validate(); err != nil {
		return GateResult{}, err
	}

	var missing []shipment.DocumentKey
	for _, requirement := range shipment.RequirementsFor(stage) {
		if !requirement.Required {
			continue
		}
		record, ok := s.Document(requirement.Key)
		if !ok || !record.IsUploaded() {
			missing = append(missing, requirement.Key)
		}
	}

	return GateResult{
		Satisfied: len(missing) == 0,
		Missing:   missing,
	}, nil
}
