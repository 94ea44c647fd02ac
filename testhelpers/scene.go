// Package testhelpers provides shared test utilities: a scene system wiring a
// project to an in-memory world adapter, a canned prototype table, and small
// assertion helpers.
package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/output"
	"github.com/Moller21/StagedBlueprintPlanning/internal/project"
	"github.com/Moller21/StagedBlueprintPlanning/internal/prototypes"
	"github.com/Moller21/StagedBlueprintPlanning/internal/world"
)

// Must panics if err is not nil, otherwise returns the value. Useful for test
// setup code where errors should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// TestUser is the user name stamped on scene-driven edits
const TestUser = "test-user"

// Prototypes returns the canned prototype table used across the test suite:
//   - assembler-1/2/3 share the "assembler" category (upgrade targets)
//   - pump is flippable, lamp matches any direction
//   - conduit-input/output pair along their axis up to 5 tiles ("conduit")
//   - power-switch tracks cables per port
func Prototypes() prototypes.Table {
	return prototypes.Table{
		"assembler-1":    {Category: "assembler"},
		"assembler-2":    {Category: "assembler"},
		"assembler-3":    {Category: "assembler"},
		"pump":           {Rotation: prototypes.RotationFlippable},
		"lamp":           {Rotation: prototypes.RotationAny},
		"conduit":        {Category: "conduit", PairSpan: 5},
		"conduit-mk2":    {Category: "conduit", PairSpan: 5},
		"conduit-short":  {Category: "conduit", PairSpan: 1},
		"power-switch":   {MultiPort: true},
		"power-pole":     {},
		"arithmetic-box": {},
	}
}

// Scene wires a fresh project to an in-memory world adapter
type Scene struct {
	T       *testing.T
	Project *project.Project
	World   *world.MemoryWorld
	Protos  prototypes.Table
}

// NewScene creates a scene with the given stage count and the canned
// prototype table. Logging is quiet.
func NewScene(t *testing.T, numStages int) *Scene {
	t.Helper()

	splog := output.NewSplog()
	splog.SetQuiet(true)

	protos := Prototypes()
	adapter := world.NewMemoryWorld()
	proj, err := project.New("test", numStages, protos, adapter, splog)
	require.NoError(t, err)

	return &Scene{
		T:       t,
		Project: proj,
		World:   adapter,
		Protos:  protos,
	}
}

// Place creates an entity through the engine's create path, as if the world
// reported a build at the given stage
func (s *Scene) Place(name string, x, y int, dir entity.Direction, stage int, extra entity.Value) *entity.StagedEntity {
	s.T.Helper()

	value := entity.Value{entity.NameKey: name}
	for key, prop := range extra {
		value[key] = prop
	}
	obs := world.Observation{
		Name:      name,
		Position:  entity.Pos(x, y),
		Direction: entity.DirectionPtr(dir),
		Value:     value,
	}
	ent, result, err := s.Project.Engine().OnEntityCreated(obs, stage, TestUser)
	require.NoError(s.T, err)
	require.NotNil(s.T, ent)
	require.False(s.T, result.IsRejection(), "placement rejected: %v", result)
	return ent
}

// PlaceConduit places one member of a paired segment with the given flow end
// ("input" or "output")
func (s *Scene) PlaceConduit(x, y int, dir entity.Direction, stage int, io string) *entity.StagedEntity {
	s.T.Helper()
	return s.Place("conduit", x, y, dir, stage, entity.Value{"io": io})
}

// ValueAt returns the cumulative value of an entity at a stage
func (s *Scene) ValueAt(ent *entity.StagedEntity, stage int) entity.Value {
	return ent.GetValueAtStage(stage)
}

// RequireRendered asserts that the world holds a render of ent at stage
func (s *Scene) RequireRendered(ent *entity.StagedEntity, stage int) {
	s.T.Helper()
	_, ok := s.World.Rendered(ent.ID(), stage)
	require.True(s.T, ok, "entity %d not rendered at stage %d", ent.ID(), stage)
}

// RequireNotRendered asserts that the world holds no render of ent at stage
func (s *Scene) RequireNotRendered(ent *entity.StagedEntity, stage int) {
	s.T.Helper()
	_, ok := s.World.Rendered(ent.ID(), stage)
	require.False(s.T, ok, "entity %d unexpectedly rendered at stage %d", ent.ID(), stage)
}
