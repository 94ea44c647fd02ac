package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Moller21/StagedBlueprintPlanning/internal/engine"
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/graph"
	"github.com/Moller21/StagedBlueprintPlanning/internal/world"
	"github.com/Moller21/StagedBlueprintPlanning/testhelpers"
)

func TestOnEntityDeleted(t *testing.T) {
	t.Run("an uncustomized entity is removed outright", func(t *testing.T) {
		s := testhelpers.NewScene(t, 3)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, nil)

		result, err := s.Project.Engine().OnEntityDeleted(ent, 1, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultUpdated, result)

		_, ok := s.Project.Content().Entity(ent.ID())
		require.False(t, ok)
		require.Empty(t, s.World.RenderedStages(ent.ID()))
	})

	t.Run("stage overrides keep the entity as a settings remnant", func(t *testing.T) {
		s := testhelpers.NewScene(t, 3)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, nil)
		value := ent.GetValueAtStage(2)
		value["recipe"] = "circuits"
		_, err := s.Project.Engine().OnEntityPossiblyUpdated(ent, world.Observation{Value: value}, 2, testhelpers.TestUser)
		require.NoError(t, err)

		result, err := s.Project.Engine().OnEntityDeleted(ent, 1, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultUpdated, result)

		require.True(t, ent.IsSettingsRemnant())
		_, ok := s.Project.Content().Entity(ent.ID())
		require.True(t, ok, "the remnant stays in the store")
		require.Empty(t, s.World.RenderedStages(ent.ID()), "remnants are not rendered")
	})

	t.Run("a connection to a later-stage entity keeps a remnant", func(t *testing.T) {
		s := testhelpers.NewScene(t, 3)
		anchor := s.Place("power-pole", 0, 0, entity.North, 1, nil)
		later := s.Place("power-pole", 5, 0, entity.North, 3, nil)
		_, err := s.Project.Content().Cable().Add(
			graph.CableTarget{Entity: anchor.ID(), Port: graph.PortDefault},
			graph.CableTarget{Entity: later.ID(), Port: graph.PortDefault},
		)
		require.NoError(t, err)

		result, err := s.Project.Engine().OnEntityDeleted(anchor, 1, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultUpdated, result)
		require.True(t, anchor.IsSettingsRemnant())
	})

	t.Run("deleting a remnant twice is a no-op", func(t *testing.T) {
		s := testhelpers.NewScene(t, 3)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, nil)
		value := ent.GetValueAtStage(2)
		value["recipe"] = "circuits"
		_, err := s.Project.Engine().OnEntityPossiblyUpdated(ent, world.Observation{Value: value}, 2, testhelpers.TestUser)
		require.NoError(t, err)
		_, err = s.Project.Engine().OnEntityDeleted(ent, 1, testhelpers.TestUser)
		require.NoError(t, err)

		result, err := s.Project.Engine().OnEntityDeleted(ent, 1, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultNoChange, result)
	})
}

func TestReviveSettingsRemnant(t *testing.T) {
	t.Run("rebuilding over a remnant revives it with its overrides", func(t *testing.T) {
		s := testhelpers.NewScene(t, 4)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, nil)
		value := ent.GetValueAtStage(3)
		value["recipe"] = "circuits"
		_, err := s.Project.Engine().OnEntityPossiblyUpdated(ent, world.Observation{Value: value}, 3, testhelpers.TestUser)
		require.NoError(t, err)
		_, err = s.Project.Engine().OnEntityDeleted(ent, 1, testhelpers.TestUser)
		require.NoError(t, err)
		require.True(t, ent.IsSettingsRemnant())

		obs := world.Observation{
			Name:      "assembler-1",
			Position:  entity.Pos(0, 0),
			Direction: entity.DirectionPtr(entity.North),
			Value:     entity.Value{entity.NameKey: "assembler-1"},
		}
		revived, result, err := s.Project.Engine().OnEntityCreated(obs, 2, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultUpdated, result)
		require.Same(t, ent, revived)

		require.False(t, ent.IsSettingsRemnant())
		require.Equal(t, 2, ent.FirstStage())
		require.Equal(t, "circuits", ent.GetValueAtStage(3)["recipe"], "the stage override survived deletion")
		s.RequireRendered(ent, 2)
		s.RequireNotRendered(ent, 1)
	})

	t.Run("reviving a live entity is a no-op", func(t *testing.T) {
		s := testhelpers.NewScene(t, 3)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, nil)

		result, err := s.Project.Engine().ReviveSettingsRemnant(ent, 2, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultNoChange, result)
	})
}
