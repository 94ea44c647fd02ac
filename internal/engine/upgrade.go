package engine

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
)

// TryUpgrade handles a prototype upgrade observed at a stage. The upgraded
// name must stay within the entity's compatibility class; anything else is
// an external inconsistency repaired by rebuilding from the model.
//
// For paired segments, an upgrade is legal only at the first stage of either
// member and is applied to both members atomically, each at its own first
// stage. If the pairing no longer matches after the edit, both sides are
// rolled back and ResultCannotUpgradeChangedPair is returned.
func (e *Engine) TryUpgrade(ent *entity.StagedEntity, stage int, newName string, user string) (Result, error) {
	if e.protos.Classify(newName) != ent.Category() {
		e.splog.Warn("entity %d: upgrade to %q leaves category %q, rebuilding", ent.ID(), newName, ent.Category())
		_ = e.world.Rebuild(ent, stage)
		return ResultNoChange, nil
	}
	if e.isPairable(ent) {
		return e.tryUpgradePair(ent, stage, newName, user)
	}

	if !ent.ExistsAtStage(stage) {
		_ = e.world.Rebuild(ent, stage)
		return ResultNoChange, nil
	}
	changed, err := ent.ApplyDiffAtStage(stage, entity.Diff{entity.NameKey: newName})
	if err != nil {
		return ResultNoChange, err
	}
	if !changed {
		return ResultNoChange, nil
	}
	e.splog.Debug("entity %d upgraded to %q at stage %d by %s", ent.ID(), newName, stage, user)
	e.resyncRange(ent, stage, e.lastRelevantStage(ent))
	return ResultUpdated, nil
}

func (e *Engine) tryUpgradePair(ent *entity.StagedEntity, stage int, newName string, user string) (Result, error) {
	partner, err := e.findPartner(ent)
	if err != nil {
		_ = e.world.Rebuild(ent, stage)
		return ResultNoChange, err
	}
	if !ent.ExistsAtStage(stage) || !pairEditLegal(ent, partner, stage) {
		_ = e.world.Rebuild(ent, stage)
		return ResultCannotRotate, nil
	}

	changed, restore, err := applyNameAt(ent, newName)
	if err != nil {
		return ResultNoChange, err
	}
	if partner == nil {
		if !changed {
			return ResultNoChange, nil
		}
		e.resyncRange(ent, ent.FirstStage(), e.lastRelevantStage(ent))
		return ResultUpdated, nil
	}

	partnerChanged, partnerRestore, err := applyNameAt(partner, newName)
	if err != nil {
		restore()
		return ResultNoChange, err
	}

	// the edit must not have changed who the partner is
	recheck, recheckErr := e.findPartner(ent)
	if recheckErr != nil || recheck != partner {
		restore()
		partnerRestore()
		_ = e.world.Rebuild(ent, stage)
		_ = e.world.Rebuild(partner, stage)
		return ResultCannotUpgradeChangedPair, nil
	}

	if !changed && !partnerChanged {
		return ResultNoChange, nil
	}
	e.splog.Debug("pair upgraded to %q: entity %d and partner %d by %s", newName, ent.ID(), partner.ID(), user)
	e.resyncRange(ent, ent.FirstStage(), e.lastRelevantStage(ent))
	e.resyncRange(partner, partner.FirstStage(), e.lastRelevantStage(partner))
	return ResultUpdated, nil
}

// OnEntityMarkedForUpgrade handles a world event that may carry both a
// rotation and a name change (fast replace). The rotation is applied first
// and kept even if the upgrade portion is subsequently rejected; only the
// upgrade is rolled back on a pair mismatch.
func (e *Engine) OnEntityMarkedForUpgrade(ent *entity.StagedEntity, stage int, newName string, newDir *entity.Direction, user string) (Result, error) {
	result := ResultNoChange

	if newDir != nil && *newDir != ent.Direction() {
		rotated, err := e.TryRotate(ent, stage, *newDir, user)
		if err != nil {
			return ResultNoChange, err
		}
		if rotated.IsRejection() {
			return rotated, nil
		}
		if rotated == ResultUpdated {
			result = ResultUpdated
		}
	}

	if newName != "" && newName != ent.NameAtStage(stage) {
		upgraded, err := e.TryUpgrade(ent, stage, newName, user)
		if err != nil {
			return result, err
		}
		if upgraded.IsRejection() {
			// the rotation above stays committed
			return upgraded, nil
		}
		if upgraded == ResultUpdated {
			result = ResultUpdated
		}
	}
	return result, nil
}
