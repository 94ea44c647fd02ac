package content

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/prototypes"
)

// FindCompatibleByProps resolves a world observation to the staged entity it
// represents, or nil when none matches. A candidate must still exist at the
// given stage (lastStage unset or >= stage), match by exact name or shared
// category class, and match direction per its rotation mode. A nil dir means
// "any direction". Among multiple matches the entity with the smallest
// firstStage wins: the earliest-introduced entity takes precedence.
func (c *Content) FindCompatibleByProps(name string, pos entity.Position, dir *entity.Direction, stage int) *entity.StagedEntity {
	category := c.protos.Classify(name)
	var best *entity.StagedEntity
	for _, id := range c.byPosition[pos] {
		e := c.entities[id]
		if last, bounded := e.LastStage(); bounded && last < stage {
			continue
		}
		if e.Name() != name && e.Category() != category {
			continue
		}
		if dir != nil && !c.directionMatches(e, *dir) {
			continue
		}
		if best == nil || e.FirstStage() < best.FirstStage() {
			best = e
		}
	}
	return best
}

// directionMatches applies the rotation-mode rules: any-direction entities
// ignore direction, flippable entities also match their opposite direction
// unless diagonal, everything else matches exactly
func (c *Content) directionMatches(e *entity.StagedEntity, dir entity.Direction) bool {
	switch c.protos.PasteRotatable(e.Name()) {
	case prototypes.RotationAny:
		return true
	case prototypes.RotationFlippable:
		if e.Direction().IsDiagonal() {
			return e.Direction() == dir
		}
		return e.Direction() == dir || e.Direction().Opposite() == dir
	default:
		return e.Direction() == dir
	}
}

// RangeFree reports whether the stage range [firstStage, lastStage] (0 =
// unbounded) is unoccupied at the given position and category, ignoring the
// excluded entity. One authoritative entity per position per stage.
func (c *Content) RangeFree(pos entity.Position, category string, firstStage, lastStage int, exclude entity.ID) bool {
	for _, id := range c.byPosition[pos] {
		if id == exclude {
			continue
		}
		e := c.entities[id]
		if e.Category() != category {
			continue
		}
		otherFirst := e.FirstStage()
		otherLast, bounded := e.LastStage()
		if bounded && otherLast < firstStage {
			continue
		}
		if lastStage != 0 && otherFirst > lastStage {
			continue
		}
		return false
	}
	return true
}
