package engine

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/errors"
)

// IOKey is the property holding a paired segment's flow end: "input" or
// "output". The two members of a pair always hold opposite ends.
const IOKey = "io"

const (
	ioInput  = "input"
	ioOutput = "output"
)

func ioOf(value entity.Value) string {
	io, _ := value[IOKey].(string)
	return io
}

func oppositeIO(io string) string {
	if io == ioInput {
		return ioOutput
	}
	return ioInput
}

// isPairable reports whether the entity participates in paired-segment
// constraints
func (e *Engine) isPairable(ent *entity.StagedEntity) bool {
	return e.protos.PairSpan(ent.Name()) > 0
}

// findPartner locates the current partner of a paired segment by scanning
// along the segment's flow axis from its position, up to the prototype's
// pair span. Finding more than one structurally valid candidate is an
// ambiguity error, not a choice.
func (e *Engine) findPartner(ent *entity.StagedEntity) (*entity.StagedEntity, error) {
	span := e.protos.PairSpan(ent.Name())
	if span == 0 {
		return nil, nil
	}
	scanDir := ent.Direction()
	if ioOf(ent.BaseValue()) == ioOutput {
		scanDir = scanDir.Opposite()
	}
	io := ioOf(ent.BaseValue())

	var found []*entity.StagedEntity
	for step := 1; step <= span; step++ {
		pos := ent.Position().Shifted(scanDir, step)
		for _, candidate := range e.content.AtPosition(pos) {
			if candidate.IsSettingsRemnant() {
				continue
			}
			if candidate.Category() != ent.Category() {
				continue
			}
			if e.protos.PairSpan(candidate.Name()) == 0 {
				continue
			}
			if candidate.Direction() != ent.Direction() {
				continue
			}
			if ioOf(candidate.BaseValue()) == io {
				continue
			}
			found = append(found, candidate)
		}
	}
	if len(found) > 1 {
		return nil, errors.NewAmbiguousPairError(uint64(ent.ID()), len(found))
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

// pairEditLegal reports whether an edit to a paired segment at the given
// stage is allowed: only at the first stage of either member
func pairEditLegal(ent, partner *entity.StagedEntity, stage int) bool {
	if stage == ent.FirstStage() {
		return true
	}
	return partner != nil && stage == partner.FirstStage()
}

// flipSegment reverses a member's orientation and swaps its flow end
func flipSegment(member *entity.StagedEntity) error {
	member.SetDirection(member.Direction().Opposite())
	base := member.BaseValue()
	base[IOKey] = oppositeIO(ioOf(base))
	_, err := member.AdjustValueAtStage(member.FirstStage(), base)
	return err
}

// applyNameAt sets the prototype name at a member's first stage, returning
// whether it changed and a restore function for rollback
func applyNameAt(member *entity.StagedEntity, newName string) (bool, func(), error) {
	first := member.FirstStage()
	oldName := member.NameAtStage(first)
	changed, err := member.ApplyDiffAtStage(first, entity.Diff{entity.NameKey: newName})
	if err != nil {
		return false, nil, err
	}
	restore := func() {
		_, _ = member.ApplyDiffAtStage(first, entity.Diff{entity.NameKey: oldName})
	}
	return changed, restore, nil
}
