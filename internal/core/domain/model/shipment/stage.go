package shipment

import (
	"fmt"

	"shipments/internal/pkg/errs"
)

// Stage represents the lifecycle state of a shipment.
// It implements a strictly forward, single-step state machine:
//
//	Cooler ──> Cruce ──> Transito ──> Entregado
//
// No stage is ever skipped or reversed through the public advance
// operation; Entregado is terminal.
//
// Stage is a value object that validates state transitions and provides
// string representations for persistence and display. Historic rows may
// carry deprecated identifiers; ParseStage consolidates the legacy-alias
// mapping at the persistence boundary so that the rest of the system only
// ever observes canonical values.
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	StageUnknown Stage = iota

	// StageCooler is the initial stage: the load sits in the cooler while
	// export documentation is assembled.
	StageCooler

	// StageCruce covers the border-crossing leg.
	StageCruce

	// StageTransito covers US-side transit to the final consignee.
	StageTransito

	// StageEntregado indicates the shipment has been delivered.
	// This is a terminal stage with no further transitions.
	StageEntregado
)

// getStageStrings returns the canonical string representation per stage.
func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:   "unknown",
		StageCooler:    "cooler",
		StageCruce:     "cruce",
		StageTransito:  "transito",
		StageEntregado: "entregado",
	}
}

// getValidStageStrings returns only valid stages, used for validation.
func getValidStageStrings() map[Stage]string {
	//nolint:exhaustive // StageUnknown is intentionally excluded as it's invalid
	return map[Stage]string{
		StageCooler:    "cooler",
		StageCruce:     "cruce",
		StageTransito:  "transito",
		StageEntregado: "entregado",
	}
}

// getLegacyStageAliases maps deprecated stage identifiers, still present in
// historic rows, onto their canonical stage. This is the single place the
// alias table lives; every parse goes through it.
func getLegacyStageAliases() map[string]Stage {
	return map[string]Stage{
		"documentos":  StageCooler,
		"frontera":    StageCruce,
		"en_transito": StageTransito,
		"cerrado":     StageEntregado,
	}
}

// ParseStage converts a persisted stage identifier to its canonical Stage.
// Canonical identifiers and legacy aliases are both accepted; anything else
// is rejected. All persistence adapters must parse through this function so
// that gating, display, and sequencing observe a single canonical value
// regardless of how the stage was stored historically.
func ParseStage(value string) (Stage, error) {
	for stage, str := range getValidStageStrings() {
		if str == value {
			return stage, nil
		}
	}
	if stage, ok := getLegacyStageAliases()[value]; ok {
		return stage, nil
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause(
		"stage is invalid",
		fmt.Errorf("%q is not a known stage identifier", value),
	)
}

// PersistedIdentifiers returns every identifier the stage may be stored
// under: the canonical string plus any legacy aliases still present in
// historic rows. Predicates that match against the stored stage column must
// accept all of them, or rows written before the alias consolidation would
// never match.
func (s Stage) PersistedIdentifiers() []string {
	identifiers := []string{s.String()}
	for alias, stage := range getLegacyStageAliases() {
		if stage == s {
			identifiers = append(identifiers, alias)
		}
	}
	return identifiers
}

// Validate checks if the Stage value is valid.
// Valid stages are: StageCooler, StageCruce, StageTransito, StageEntregado.
func (s Stage) Validate() error {
	if _, ok := getValidStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid",
			fmt.Errorf("%d is not a valid stage", s),
		)
	}
	return nil
}

// String returns the canonical identifier of the stage.
// Returns "unknown" for invalid values. Implements fmt.Stringer.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the stage is the final lifecycle state.
func (s Stage) IsTerminal() bool {
	return s == StageEntregado
}

// Next returns the stage one position later in the canonical sequence.
// The terminal stage maps to itself, making Next idempotent at the boundary.
// Invalid stages also map to themselves; callers are expected to have
// validated the stage first.
func (s Stage) Next() Stage {
	switch s {
	case StageCooler:
		return StageCruce
	case StageCruce:
		return StageTransito
	case StageTransito:
		return StageEntregado
	default:
		return s
	}
}
