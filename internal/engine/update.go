package engine

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/world"
)

// OnEntityPossiblyUpdated handles a value edit observed on the rendered
// instance at a stage. When the observed value differs from the model's
// value at that stage, the delta is recorded as a stage diff and every stage
// from the event stage onward is resynchronized so non-edited stages reflect
// the new cumulative value.
func (e *Engine) OnEntityPossiblyUpdated(ent *entity.StagedEntity, obs world.Observation, stage int, user string) (Result, error) {
	if !ent.ExistsAtStage(stage) {
		// observation for a stage the model does not cover: repair the world
		_ = e.world.Rebuild(ent, stage)
		return ResultNoChange, nil
	}
	changed, err := ent.AdjustValueAtStage(stage, obs.Value)
	if err != nil {
		return ResultNoChange, err
	}
	if !changed {
		return ResultNoChange, nil
	}
	e.splog.Debug("entity %d updated at stage %d by %s", ent.ID(), stage, user)
	e.resyncRange(ent, stage, e.lastRelevantStage(ent))
	return ResultUpdated, nil
}

// ResetProp removes a single property override at a stage and
// resynchronizes the affected span
func (e *Engine) ResetProp(ent *entity.StagedEntity, stage int, key string, user string) Result {
	if !ent.ResetProp(stage, key) {
		return ResultNoChange
	}
	e.splog.Debug("entity %d prop %q reset at stage %d by %s", ent.ID(), key, stage, user)
	e.resyncRange(ent, stage, e.lastRelevantStage(ent))
	return ResultUpdated
}

// MovePropDown relocates a property override one stage lower and
// resynchronizes the affected span
func (e *Engine) MovePropDown(ent *entity.StagedEntity, stage int, key string, user string) Result {
	if !ent.MovePropDown(stage, key) {
		return ResultNoChange
	}
	e.splog.Debug("entity %d prop %q moved down from stage %d by %s", ent.ID(), key, stage, user)
	e.resyncRange(ent, stage-1, e.lastRelevantStage(ent))
	return ResultUpdated
}
