// Package entity implements the staged entity store: per-object property
// snapshots that evolve across an ordered sequence of plan stages, stored as
// a base value plus sparse per-stage diffs.
package entity

import (
	"sort"

	"github.com/Moller21/StagedBlueprintPlanning/internal/errors"
)

// ID is the stable identity of a staged entity. IDs are allocated by the
// content store and never reused within a project.
type ID uint64

// NameKey is the property under which an entity's prototype name is stored.
// Upgrades change it via stage diffs like any other property.
const NameKey = "name"

// StagedEntity is one placed object and the full history of its properties
// across stages. The base value is the snapshot at the first stage; later
// stages layer sparse diffs on top of it.
//
// Invariants: stageDiffs keys are strictly greater than firstStage, and
// lastStage (when bounded) is never below firstStage.
type StagedEntity struct {
	id        ID
	position  Position
	direction Direction
	category  string

	firstStage int
	lastStage  int // 0 = unbounded

	baseValue  Value
	stageDiffs map[int]Diff

	settingsRemnant bool
}

// New creates a staged entity that first exists at firstStage with the given
// base snapshot
func New(id ID, pos Position, dir Direction, category string, firstStage int, base Value) (*StagedEntity, error) {
	if firstStage < 1 {
		return nil, errors.NewStageOutOfRangeError(firstStage, 1, 0)
	}
	return &StagedEntity{
		id:         id,
		position:   pos,
		direction:  dir,
		category:   category,
		firstStage: firstStage,
		baseValue:  base.Clone(),
		stageDiffs: make(map[int]Diff),
	}, nil
}

// Restore rebuilds a staged entity from snapshot fields. Used by the project
// snapshot machinery; callers are responsible for field consistency.
func Restore(id ID, pos Position, dir Direction, category string, firstStage, lastStage int, base Value, diffs map[int]Diff, settingsRemnant bool) *StagedEntity {
	e := &StagedEntity{
		id:              id,
		position:        pos,
		direction:       dir,
		category:        category,
		firstStage:      firstStage,
		lastStage:       lastStage,
		baseValue:       base.Clone(),
		stageDiffs:      make(map[int]Diff, len(diffs)),
		settingsRemnant: settingsRemnant,
	}
	for stage, diff := range diffs {
		e.stageDiffs[stage] = diff.Clone()
	}
	return e
}

// ID returns the entity's stable identity
func (e *StagedEntity) ID() ID { return e.id }

// Position returns the entity's plan position
func (e *StagedEntity) Position() Position { return e.position }

// SetPosition is used by the content store when re-indexing; callers outside
// the store must go through Content.ChangePosition
func (e *StagedEntity) SetPosition(pos Position) { e.position = pos }

// Direction returns the entity's stored orientation
func (e *StagedEntity) Direction() Direction { return e.direction }

// SetDirection updates the stored orientation
func (e *StagedEntity) SetDirection(dir Direction) { e.direction = dir }

// Category returns the compatibility class assigned at creation. It is
// stable across upgrades: upgrades stay within one class.
func (e *StagedEntity) Category() string { return e.category }

// Name returns the prototype name at the first stage
func (e *StagedEntity) Name() string {
	name, _ := e.baseValue[NameKey].(string)
	return name
}

// NameAtStage returns the prototype name effective at the given stage
func (e *StagedEntity) NameAtStage(stage int) string {
	value := e.GetValueAtStage(stage)
	name, _ := value[NameKey].(string)
	return name
}

// FirstStage returns the lowest stage at which the entity exists
func (e *StagedEntity) FirstStage() int { return e.firstStage }

// LastStage returns the highest stage at which the entity exists; ok is
// false when the range is unbounded
func (e *StagedEntity) LastStage() (int, bool) {
	return e.lastStage, e.lastStage != 0
}

// SetLastStage sets the upper stage bound; 0 clears it. Range validation
// against other entities is the engine's job.
func (e *StagedEntity) SetLastStage(stage int) error {
	if stage != 0 && stage < e.firstStage {
		return errors.NewStageOutOfRangeError(stage, e.firstStage, 0)
	}
	e.lastStage = stage
	return nil
}

// IsSettingsRemnant reports whether the entity is logically deleted but
// retained to preserve its configuration and connections
func (e *StagedEntity) IsSettingsRemnant() bool { return e.settingsRemnant }

// MakeSettingsRemnant marks the entity as a settings remnant
func (e *StagedEntity) MakeSettingsRemnant() { e.settingsRemnant = true }

// Revive clears the settings-remnant flag
func (e *StagedEntity) Revive() { e.settingsRemnant = false }

// ExistsAtStage reports whether stage lies within [firstStage, lastStage]
func (e *StagedEntity) ExistsAtStage(stage int) bool {
	if stage < e.firstStage {
		return false
	}
	return e.lastStage == 0 || stage <= e.lastStage
}

// HasAnyStageDiff reports whether any stage customizes the base value
func (e *StagedEntity) HasAnyStageDiff() bool { return len(e.stageDiffs) > 0 }

// HasStageDiff reports whether the given stage carries a diff
func (e *StagedEntity) HasStageDiff(stage int) bool {
	_, ok := e.stageDiffs[stage]
	return ok
}

// StageDiffs returns a deep copy of the per-stage diffs, keyed by stage
func (e *StagedEntity) StageDiffs() map[int]Diff {
	out := make(map[int]Diff, len(e.stageDiffs))
	for stage, diff := range e.stageDiffs {
		out[stage] = diff.Clone()
	}
	return out
}

// BaseValue returns a copy of the snapshot at the first stage
func (e *StagedEntity) BaseValue() Value { return e.baseValue.Clone() }

func (e *StagedEntity) sortedDiffStages() []int {
	stages := make([]int, 0, len(e.stageDiffs))
	for stage := range e.stageDiffs {
		stages = append(stages, stage)
	}
	sort.Ints(stages)
	return stages
}

// GetValueAtStage returns the cumulative property value at the given stage,
// or nil for stages below the first stage. The returned value is a fresh
// copy owned by the caller.
func (e *StagedEntity) GetValueAtStage(stage int) Value {
	if stage < e.firstStage {
		return nil
	}
	value := e.baseValue.Clone()
	for _, s := range e.sortedDiffStages() {
		if s > stage {
			break
		}
		value = ApplyDiff(value, e.stageDiffs[s])
	}
	return value
}

// AdjustValueAtStage records whatever delta is needed so the value at the
// given stage equals newValue. It reports whether net content changed, so
// callers can skip resynchronization when nothing did.
func (e *StagedEntity) AdjustValueAtStage(stage int, newValue Value) (bool, error) {
	if stage < e.firstStage {
		return false, errors.NewStageOutOfRangeError(stage, e.firstStage, e.lastStage)
	}
	return e.setValueAtStage(stage, newValue), nil
}

// ApplyDiffAtStage merges delta into the layer at the given stage: directly
// into the base value at the first stage, otherwise into (or as) the stage's
// diff. Reports whether net content changed.
func (e *StagedEntity) ApplyDiffAtStage(stage int, delta Diff) (bool, error) {
	if stage < e.firstStage {
		return false, errors.NewStageOutOfRangeError(stage, e.firstStage, e.lastStage)
	}
	next := ApplyDiff(e.GetValueAtStage(stage), delta)
	return e.setValueAtStage(stage, next), nil
}

// setValueAtStage normalizes storage: the diff at a stage is always the
// delta from the previous stage's cumulative value, and redundant diffs are
// dropped.
func (e *StagedEntity) setValueAtStage(stage int, next Value) bool {
	current := e.GetValueAtStage(stage)
	if current.Equal(next) {
		return false
	}
	if stage == e.firstStage {
		e.baseValue = next.Clone()
		return true
	}
	below := e.GetValueAtStage(stage - 1)
	if diff := ComputeDiff(below, next); diff != nil {
		e.stageDiffs[stage] = diff
	} else {
		delete(e.stageDiffs, stage)
	}
	return true
}

// MoveToStage moves the entity's first stage. Moving up folds all diffs at
// stages up to the new first stage into the base value; moving down keeps
// the base value, so the value formerly at the old first stage is unchanged.
func (e *StagedEntity) MoveToStage(newStage int) error {
	if newStage < 1 {
		return errors.NewStageOutOfRangeError(newStage, 1, e.lastStage)
	}
	if e.lastStage != 0 && newStage > e.lastStage {
		return errors.NewStageOutOfRangeError(newStage, e.firstStage, e.lastStage)
	}
	if newStage > e.firstStage {
		folded := e.GetValueAtStage(newStage)
		for stage := range e.stageDiffs {
			if stage <= newStage {
				delete(e.stageDiffs, stage)
			}
		}
		e.baseValue = folded
	}
	e.firstStage = newStage
	return nil
}

// MoveDownWithValue moves the first stage down to newStage with a caller
// supplied base snapshot. The old base becomes a diff at the old first stage
// recording only the delta from the new base; the delta may be empty.
func (e *StagedEntity) MoveDownWithValue(newStage int, newBase Value) error {
	if newStage < 1 || newStage >= e.firstStage {
		return errors.NewStageOutOfRangeError(newStage, 1, e.firstStage)
	}
	oldBase := e.baseValue
	e.baseValue = newBase.Clone()
	if diff := ComputeDiff(e.baseValue, oldBase); diff != nil {
		e.stageDiffs[e.firstStage] = diff
	}
	e.firstStage = newStage
	return nil
}

// InsertStage renumbers for a stage inserted at the given position: every
// diff key and stage bound >= stage moves up by one
func (e *StagedEntity) InsertStage(stage int) {
	if e.firstStage >= stage {
		e.firstStage++
	}
	if e.lastStage != 0 && e.lastStage >= stage {
		e.lastStage++
	}
	stages := e.sortedDiffStages()
	for i := len(stages) - 1; i >= 0; i-- {
		s := stages[i]
		if s < stage {
			break
		}
		e.stageDiffs[s+1] = e.stageDiffs[s]
		delete(e.stageDiffs, s)
	}
}

// DeleteStage renumbers for a stage removed at the given position: the
// deleted stage's diff is first folded into the preceding stage so values
// at renumbered stages keep their meaning, then every key and bound >= stage
// moves down by one. InsertStage(n) followed by DeleteStage(n) is the
// identity for all unaffected stages. The caller guarantees stage >= 2.
func (e *StagedEntity) DeleteStage(stage int) {
	if diff, ok := e.stageDiffs[stage]; ok {
		delete(e.stageDiffs, stage)
		switch {
		case stage-1 == e.firstStage:
			e.baseValue = ApplyDiff(e.baseValue, diff)
		case stage-1 > e.firstStage:
			e.stageDiffs[stage-1] = MergeDiff(e.stageDiffs[stage-1], diff)
		}
	}
	if e.firstStage >= stage {
		e.firstStage--
	}
	if e.lastStage != 0 && e.lastStage >= stage {
		e.lastStage--
	}
	for _, s := range e.sortedDiffStages() {
		if s <= stage {
			continue
		}
		e.stageDiffs[s-1] = e.stageDiffs[s]
		delete(e.stageDiffs, s)
	}
}

// ResetProp removes a single property override at the given stage, returning
// the property to the value implied by its nearest lower stage. Reports
// whether anything changed.
func (e *StagedEntity) ResetProp(stage int, key string) bool {
	diff, ok := e.stageDiffs[stage]
	if !ok {
		return false
	}
	if _, ok := diff[key]; !ok {
		return false
	}
	delete(diff, key)
	if len(diff) == 0 {
		delete(e.stageDiffs, stage)
	}
	return true
}

// MovePropDown relocates a property override at the given stage to one stage
// lower. Reports whether anything changed.
func (e *StagedEntity) MovePropDown(stage int, key string) bool {
	diff, ok := e.stageDiffs[stage]
	if !ok {
		return false
	}
	prop, ok := diff[key]
	if !ok {
		return false
	}
	if !e.ResetProp(stage, key) {
		return false
	}
	if stage-1 == e.firstStage {
		if IsUnset(prop) {
			delete(e.baseValue, key)
		} else {
			e.baseValue[key] = cloneProp(prop)
		}
		return true
	}
	below := e.stageDiffs[stage-1]
	if below == nil {
		below = Diff{}
		e.stageDiffs[stage-1] = below
	}
	below[key] = prop
	return true
}

// IterateValues returns a lazy iterator over (stage, value) pairs for stages
// in [start, end]. Stages below the first stage yield a nil value. The
// yielded value is a single reused accumulator: callers must treat it as a
// transient read-only view and must not retain it across Next calls.
func (e *StagedEntity) IterateValues(start, end int) *ValueIterator {
	return &ValueIterator{entity: e, start: start, next: start, end: end}
}

// ValueIterator walks an entity's cumulative values stage by stage, reusing
// one accumulator rather than rebuilding from the base at every step
type ValueIterator struct {
	entity *StagedEntity
	start  int
	next   int
	end    int
	acc    Value
}

// Next returns the next (stage, value) pair; ok is false when exhausted
func (it *ValueIterator) Next() (stage int, value Value, ok bool) {
	if it.next > it.end {
		return 0, nil, false
	}
	stage = it.next
	it.next++
	e := it.entity
	if stage < e.firstStage {
		return stage, nil, true
	}
	if it.acc == nil {
		it.acc = e.GetValueAtStage(stage)
		return stage, it.acc, true
	}
	if diff, hasDiff := e.stageDiffs[stage]; hasDiff {
		it.acc = ApplyDiff(it.acc, diff)
	}
	return stage, it.acc, true
}

// Reset restarts the iterator from its start stage
func (it *ValueIterator) Reset() {
	it.next = it.start
	it.acc = nil
}
