package engine

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
)

// OnEntityDeleted handles a deletion observed at a stage. Entities that carry
// stage-specific overrides, or that anchor a connection to an entity built in
// a later stage, are kept as settings remnants so their configuration and
// wiring survive an accidental delete. Everything else is removed from the
// store outright.
func (e *Engine) OnEntityDeleted(ent *entity.StagedEntity, stage int, user string) (Result, error) {
	if ent.IsSettingsRemnant() {
		return ResultNoChange, nil
	}

	if ent.HasAnyStageDiff() || e.hasLaterStageNeighbor(ent) {
		ent.MakeSettingsRemnant()
		e.splog.Debug("entity %d deleted at stage %d by %s, kept as settings remnant", ent.ID(), stage, user)
		e.destroyAllRenders(ent)
		return ResultUpdated, nil
	}

	e.destroyAllRenders(ent)
	if err := e.content.Delete(ent); err != nil {
		return ResultNoChange, err
	}
	e.splog.Debug("entity %d deleted at stage %d by %s", ent.ID(), stage, user)
	return ResultUpdated, nil
}

// hasLaterStageNeighbor reports whether any circuit or cable counterpart of
// the entity first exists at a later stage than the entity itself. Deleting
// the anchor outright would silently drop that future connection.
func (e *Engine) hasLaterStageNeighbor(ent *entity.StagedEntity) bool {
	for _, id := range e.content.Circuit().Neighbors(ent.ID()) {
		if other, ok := e.content.Entity(id); ok && other.FirstStage() > ent.FirstStage() {
			return true
		}
	}
	for _, id := range e.content.Cable().NeighborEntities(ent.ID()) {
		if other, ok := e.content.Entity(id); ok && other.FirstStage() > ent.FirstStage() {
			return true
		}
	}
	return false
}

func (e *Engine) destroyAllRenders(ent *entity.StagedEntity) {
	first := ent.FirstStage()
	last := e.lastRelevantStage(ent)
	for stage := first; stage <= last; stage++ {
		e.world.DestroyRendered(ent, stage)
	}
}

// ReviveSettingsRemnant brings a settings remnant back to life at the given
// stage. The remnant keeps all of its stage overrides; only its first stage
// is realigned to where it was rebuilt.
func (e *Engine) ReviveSettingsRemnant(ent *entity.StagedEntity, stage int, user string) (Result, error) {
	if !ent.IsSettingsRemnant() {
		return ResultNoChange, nil
	}
	ent.Revive()
	if ent.FirstStage() != stage {
		if err := ent.MoveToStage(stage); err != nil {
			ent.MakeSettingsRemnant()
			return ResultNoChange, err
		}
	}
	e.splog.Debug("entity %d revived at stage %d by %s", ent.ID(), stage, user)
	e.resyncRange(ent, ent.FirstStage(), e.lastRelevantStage(ent))
	return ResultUpdated, nil
}
