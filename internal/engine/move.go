package engine

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/errors"
)

// TrySetFirstStage moves an entity's first stage. The move is validated
// against the entity's last stage and against other entities occupying the
// same position and category; on success the span between the old and new
// bound is resynchronized so removed or added preview representations stay
// consistent.
func (e *Engine) TrySetFirstStage(ent *entity.StagedEntity, newStage int, user string) (Result, error) {
	result, err := e.trySetFirstStageWith(ent, newStage, nil)
	if err == nil && result == ResultUpdated {
		e.splog.Debug("entity %d first stage set to %d by %s", ent.ID(), newStage, user)
	}
	return result, err
}

// trySetFirstStageWith implements the move; when newBase is non-nil and the
// move goes down, the caller-supplied value becomes the new base snapshot
// (the overbuild path).
func (e *Engine) trySetFirstStageWith(ent *entity.StagedEntity, newStage int, newBase entity.Value) (Result, error) {
	if newStage < 1 || newStage > e.stages.NumStages() {
		return ResultNoChange, errors.NewStageOutOfRangeError(newStage, 1, e.stages.NumStages())
	}
	oldStage := ent.FirstStage()
	if newStage == oldStage {
		return ResultNoChange, nil
	}
	if last, bounded := ent.LastStage(); bounded && newStage > last {
		return ResultCannotMovePastLastStage, nil
	}
	lastStage, _ := ent.LastStage()
	if !e.content.RangeFree(ent.Position(), ent.Category(), newStage, lastStage, ent.ID()) {
		return ResultIntersectsAnotherEntity, nil
	}

	var err error
	if newBase != nil && newStage < oldStage {
		err = ent.MoveDownWithValue(newStage, newBase)
	} else {
		err = ent.MoveToStage(newStage)
	}
	if err != nil {
		return ResultNoChange, err
	}

	from := oldStage
	if newStage < from {
		from = newStage
	}
	e.resyncRange(ent, from, e.lastRelevantStage(ent))
	return ResultUpdated, nil
}

// TrySetLastStage moves an entity's last stage; 0 clears the bound. The new
// coverage is validated against other entities at the same position and
// category, then the span between the old and new effective bound is
// resynchronized.
func (e *Engine) TrySetLastStage(ent *entity.StagedEntity, newStage int, user string) (Result, error) {
	if newStage != 0 && (newStage < 1 || newStage > e.stages.NumStages()) {
		return ResultNoChange, errors.NewStageOutOfRangeError(newStage, 1, e.stages.NumStages())
	}
	oldStage, _ := ent.LastStage()
	if newStage == oldStage {
		return ResultNoChange, nil
	}
	if newStage != 0 && newStage < ent.FirstStage() {
		return ResultCannotMoveBeforeFirstStage, nil
	}
	if !e.content.RangeFree(ent.Position(), ent.Category(), ent.FirstStage(), newStage, ent.ID()) {
		return ResultIntersectsAnotherEntity, nil
	}
	if err := ent.SetLastStage(newStage); err != nil {
		return ResultNoChange, err
	}
	e.splog.Debug("entity %d last stage set to %d by %s", ent.ID(), newStage, user)

	from := effectiveLast(oldStage, e.stages.NumStages())
	to := effectiveLast(newStage, e.stages.NumStages())
	if from > to {
		from, to = to, from
	}
	e.resyncRange(ent, from, to)
	return ResultUpdated, nil
}

func effectiveLast(stage, numStages int) int {
	if stage == 0 {
		return numStages
	}
	return stage
}
