package engine

// Result classifies the outcome of a sync operation. Every value other than
// ResultUpdated and ResultNoChange is a validation rejection: expected,
// non-fatal, and guaranteed to have caused no mutation.
type Result int

const (
	// ResultUpdated indicates the staged model changed and affected stages
	// were resynchronized
	ResultUpdated Result = iota
	// ResultNoChange indicates the operation was a no-op
	ResultNoChange
	// ResultCannotRotate indicates a rotation (or other shape edit) at a
	// stage other than the entity's first stage
	ResultCannotRotate
	// ResultCannotUpgradeChangedPair indicates a paired-segment upgrade was
	// rolled back because the pairing changed under it
	ResultCannotUpgradeChangedPair
	// ResultMaxConnectionsExceeded indicates an observed cable could not be
	// stored because an endpoint is at its degree cap
	ResultMaxConnectionsExceeded
	// ResultIntersectsAnotherEntity indicates a stage-range move into a
	// range already occupied at the same position and category
	ResultIntersectsAnotherEntity
	// ResultCannotMovePastLastStage indicates a first-stage move beyond the
	// entity's last stage
	ResultCannotMovePastLastStage
	// ResultCannotMoveBeforeFirstStage indicates a last-stage move below the
	// entity's first stage
	ResultCannotMoveBeforeFirstStage
)

func (r Result) String() string {
	switch r {
	case ResultUpdated:
		return "updated"
	case ResultNoChange:
		return "no-change"
	case ResultCannotRotate:
		return "cannot-rotate"
	case ResultCannotUpgradeChangedPair:
		return "cannot-upgrade-changed-pair"
	case ResultMaxConnectionsExceeded:
		return "max-connections-exceeded"
	case ResultIntersectsAnotherEntity:
		return "intersects-another-entity"
	case ResultCannotMovePastLastStage:
		return "cannot-move-past-last-stage"
	case ResultCannotMoveBeforeFirstStage:
		return "cannot-move-before-first-stage"
	}
	return "unknown"
}

// Message returns the user-facing description for a validation rejection;
// empty for the non-rejection results
func (r Result) Message() string {
	switch r {
	case ResultCannotRotate:
		return "Only the first stage of an entity can be rotated"
	case ResultCannotUpgradeChangedPair:
		return "Cannot upgrade: the paired segment changed"
	case ResultMaxConnectionsExceeded:
		return "Max connections reached"
	case ResultIntersectsAnotherEntity:
		return "Another entity occupies that stage range"
	case ResultCannotMovePastLastStage:
		return "Cannot move the first stage past the last stage"
	case ResultCannotMoveBeforeFirstStage:
		return "Cannot move the last stage before the first stage"
	}
	return ""
}

// IsRejection reports whether the result is a validation rejection
func (r Result) IsRejection() bool {
	return r != ResultUpdated && r != ResultNoChange
}
