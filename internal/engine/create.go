package engine

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/world"
)

// OnEntityCreated handles an object observed as created at a stage. If no
// compatible staged entity matches, a new one is created from the observed
// value. If a settings remnant matches, it is revived. If the match's first
// stage is above the observed stage (the observation landed "under" an
// existing preview), the first stage is moved down to the observed stage,
// falling back to a rebuild of the rendered instance when the move is
// rejected.
func (e *Engine) OnEntityCreated(obs world.Observation, stage int, user string) (*entity.StagedEntity, Result, error) {
	dir := entity.North
	if obs.Direction != nil {
		dir = *obs.Direction
	}

	existing := e.content.FindCompatibleByProps(obs.Name, obs.Position, obs.Direction, stage)
	if existing == nil {
		ent, err := e.content.NewEntity(obs.Position, dir, stage, obs.Value)
		if err != nil {
			return nil, ResultNoChange, err
		}
		e.splog.Debug("created entity %d (%s) at stage %d by %s", ent.ID(), obs.Name, stage, user)
		e.resyncRange(ent, stage, e.lastRelevantStage(ent))
		return ent, ResultUpdated, nil
	}

	if existing.IsSettingsRemnant() {
		result, err := e.ReviveSettingsRemnant(existing, stage, user)
		return existing, result, err
	}

	if existing.FirstStage() > stage {
		result, err := e.trySetFirstStageWith(existing, stage, obs.Value)
		if err != nil {
			return existing, result, err
		}
		if result.IsRejection() {
			// the observation cannot be trusted; make the world match the model
			_ = e.world.Rebuild(existing, stage)
			return existing, result, nil
		}
		e.splog.Debug("moved entity %d down to stage %d by %s", existing.ID(), stage, user)
		return existing, result, nil
	}

	// already covered by the model at this stage: refresh the render so any
	// drift in the observation is discarded
	_ = e.world.Rebuild(existing, stage)
	return existing, ResultNoChange, nil
}
