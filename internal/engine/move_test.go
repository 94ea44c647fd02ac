package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Moller21/StagedBlueprintPlanning/internal/engine"
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/errors"
	"github.com/Moller21/StagedBlueprintPlanning/testhelpers"
)

func TestTrySetFirstStage(t *testing.T) {
	t.Run("moving up removes renders below", func(t *testing.T) {
		s := testhelpers.NewScene(t, 4)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, nil)

		result, err := s.Project.Engine().TrySetFirstStage(ent, 3, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultUpdated, result)

		require.Equal(t, 3, ent.FirstStage())
		s.RequireNotRendered(ent, 1)
		s.RequireNotRendered(ent, 2)
		s.RequireRendered(ent, 3)
	})

	t.Run("moving down adds renders", func(t *testing.T) {
		s := testhelpers.NewScene(t, 4)
		ent := s.Place("assembler-1", 0, 0, entity.North, 3, nil)

		result, err := s.Project.Engine().TrySetFirstStage(ent, 1, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultUpdated, result)
		s.RequireRendered(ent, 1)
		s.RequireRendered(ent, 2)
	})

	t.Run("rejects moving past the last stage", func(t *testing.T) {
		s := testhelpers.NewScene(t, 4)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, nil)
		_, err := s.Project.Engine().TrySetLastStage(ent, 2, testhelpers.TestUser)
		require.NoError(t, err)

		result, err := s.Project.Engine().TrySetFirstStage(ent, 3, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultCannotMovePastLastStage, result)
		require.Equal(t, 1, ent.FirstStage())
	})

	t.Run("rejects stages outside the plan", func(t *testing.T) {
		s := testhelpers.NewScene(t, 4)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, nil)

		_, err := s.Project.Engine().TrySetFirstStage(ent, 0, testhelpers.TestUser)
		require.ErrorIs(t, err, errors.ErrStageOutOfRange)
		_, err = s.Project.Engine().TrySetFirstStage(ent, 5, testhelpers.TestUser)
		require.ErrorIs(t, err, errors.ErrStageOutOfRange)
	})

	t.Run("rejects moving into an occupied range", func(t *testing.T) {
		s := testhelpers.NewScene(t, 4)
		older := s.Place("assembler-1", 0, 0, entity.North, 1, nil)
		_, err := s.Project.Engine().TrySetLastStage(older, 2, testhelpers.TestUser)
		require.NoError(t, err)
		newer := s.Place("assembler-1", 0, 0, entity.North, 3, nil)
		require.NotSame(t, older, newer)

		result, err := s.Project.Engine().TrySetFirstStage(newer, 2, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultIntersectsAnotherEntity, result)
		require.Equal(t, 3, newer.FirstStage())
	})
}

func TestTrySetLastStage(t *testing.T) {
	t.Run("bounding removes renders above", func(t *testing.T) {
		s := testhelpers.NewScene(t, 4)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, nil)

		result, err := s.Project.Engine().TrySetLastStage(ent, 2, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultUpdated, result)

		last, bounded := ent.LastStage()
		require.True(t, bounded)
		require.Equal(t, 2, last)
		s.RequireRendered(ent, 2)
		s.RequireNotRendered(ent, 3)
		s.RequireNotRendered(ent, 4)
	})

	t.Run("clearing the bound restores renders", func(t *testing.T) {
		s := testhelpers.NewScene(t, 4)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, nil)
		_, err := s.Project.Engine().TrySetLastStage(ent, 2, testhelpers.TestUser)
		require.NoError(t, err)

		result, err := s.Project.Engine().TrySetLastStage(ent, 0, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultUpdated, result)
		s.RequireRendered(ent, 4)
	})

	t.Run("rejects a bound below the first stage", func(t *testing.T) {
		s := testhelpers.NewScene(t, 4)
		ent := s.Place("assembler-1", 0, 0, entity.North, 2, nil)

		result, err := s.Project.Engine().TrySetLastStage(ent, 1, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultCannotMoveBeforeFirstStage, result)
		_, bounded := ent.LastStage()
		require.False(t, bounded)
	})

	t.Run("rejects extending over another entity", func(t *testing.T) {
		s := testhelpers.NewScene(t, 4)
		older := s.Place("assembler-1", 0, 0, entity.North, 1, nil)
		_, err := s.Project.Engine().TrySetLastStage(older, 2, testhelpers.TestUser)
		require.NoError(t, err)
		s.Place("assembler-1", 0, 0, entity.North, 3, nil)

		result, err := s.Project.Engine().TrySetLastStage(older, 3, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, engine.ResultIntersectsAnotherEntity, result)
	})
}
