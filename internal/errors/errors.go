// Package errors provides sentinel errors and custom error types for the staged model.
// Use errors.Is() and errors.As() to check for specific error types.
//
// Validation rejections (a rotation at the wrong stage, an intersecting stage
// move) are never errors; they are engine result codes. Anything surfacing
// from this package indicates a structural invariant violation, i.e. a
// programming defect rather than user input.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural invariant violations
var (
	// ErrStageOutOfRange indicates a stage number outside the valid range for an entity or project
	ErrStageOutOfRange = errors.New("stage out of range")

	// ErrEntityNotFound indicates that an entity id is not present in the content store
	ErrEntityNotFound = errors.New("entity not found")

	// ErrSelfConnection indicates an attempt to connect an entity to itself
	ErrSelfConnection = errors.New("entity cannot be connected to itself")

	// ErrAmbiguousPair indicates that more than one candidate partner was found for a paired segment
	ErrAmbiguousPair = errors.New("ambiguous paired segment")
)

// StageOutOfRangeError reports an operation addressed to a stage an entity or
// project does not cover
type StageOutOfRangeError struct {
	Stage      int
	FirstStage int
	LastStage  int // 0 when unbounded
}

func (e *StageOutOfRangeError) Error() string {
	if e.LastStage == 0 {
		return fmt.Sprintf("stage %d out of range [%d, unbounded)", e.Stage, e.FirstStage)
	}
	return fmt.Sprintf("stage %d out of range [%d, %d]", e.Stage, e.FirstStage, e.LastStage)
}

// Is returns true if the target error is ErrStageOutOfRange
func (e *StageOutOfRangeError) Is(target error) bool {
	return target == ErrStageOutOfRange
}

// NewStageOutOfRangeError creates a new StageOutOfRangeError
func NewStageOutOfRangeError(stage, firstStage, lastStage int) *StageOutOfRangeError {
	return &StageOutOfRangeError{Stage: stage, FirstStage: firstStage, LastStage: lastStage}
}

// EntityNotFoundError reports a reference to an entity id missing from the store
type EntityNotFoundError struct {
	EntityID uint64
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d does not exist in the content store", e.EntityID)
}

// Is returns true if the target error is ErrEntityNotFound
func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}

// NewEntityNotFoundError creates a new EntityNotFoundError
func NewEntityNotFoundError(entityID uint64) *EntityNotFoundError {
	return &EntityNotFoundError{EntityID: entityID}
}

// AmbiguousPairError reports that a directional partner search found more
// than one structurally valid candidate
type AmbiguousPairError struct {
	EntityID   uint64
	Candidates int
}

func (e *AmbiguousPairError) Error() string {
	return fmt.Sprintf("entity %d has %d candidate pair partners", e.EntityID, e.Candidates)
}

// Is returns true if the target error is ErrAmbiguousPair
func (e *AmbiguousPairError) Is(target error) bool {
	return target == ErrAmbiguousPair
}

// NewAmbiguousPairError creates a new AmbiguousPairError
func NewAmbiguousPairError(entityID uint64, candidates int) *AmbiguousPairError {
	return &AmbiguousPairError{EntityID: entityID, Candidates: candidates}
}
