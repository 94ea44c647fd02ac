package engine

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
)

// TryRotate handles a rotation observed at a stage. Rotation is legal only
// at the entity's first stage (only the earliest representation may change
// orientation); otherwise the rendered instance is reverted to the model and
// ResultCannotRotate is returned.
//
// For paired segments the legality window widens to the first stage of
// either member, and a successful rotation flips both members so the pair
// stays mutually consistent.
func (e *Engine) TryRotate(ent *entity.StagedEntity, stage int, newDir entity.Direction, user string) (Result, error) {
	if e.isPairable(ent) {
		return e.tryRotatePair(ent, stage, user)
	}

	if stage != ent.FirstStage() {
		_ = e.world.Rebuild(ent, stage)
		return ResultCannotRotate, nil
	}
	if newDir == ent.Direction() {
		return ResultNoChange, nil
	}
	ent.SetDirection(newDir)
	e.splog.Debug("entity %d rotated to %s by %s", ent.ID(), newDir, user)
	e.resyncRange(ent, ent.FirstStage(), e.lastRelevantStage(ent))
	return ResultUpdated, nil
}

func (e *Engine) tryRotatePair(ent *entity.StagedEntity, stage int, user string) (Result, error) {
	partner, err := e.findPartner(ent)
	if err != nil {
		_ = e.world.Rebuild(ent, stage)
		return ResultNoChange, err
	}
	if !ent.ExistsAtStage(stage) || !pairEditLegal(ent, partner, stage) {
		_ = e.world.Rebuild(ent, stage)
		if partner != nil {
			_ = e.world.Rebuild(partner, stage)
		}
		return ResultCannotRotate, nil
	}

	if err := flipSegment(ent); err != nil {
		return ResultNoChange, err
	}
	if partner != nil {
		if err := flipSegment(partner); err != nil {
			return ResultNoChange, err
		}
	}
	e.splog.Debug("pair rotated: entity %d (partner %v) by %s", ent.ID(), partnerID(partner), user)

	// primary first, then the dependent partner
	e.resyncRange(ent, ent.FirstStage(), e.lastRelevantStage(ent))
	if partner != nil {
		e.resyncRange(partner, partner.FirstStage(), e.lastRelevantStage(partner))
	}
	return ResultUpdated, nil
}

func partnerID(partner *entity.StagedEntity) any {
	if partner == nil {
		return "none"
	}
	return partner.ID()
}
