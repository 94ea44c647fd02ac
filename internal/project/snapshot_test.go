package project_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/graph"
	"github.com/Moller21/StagedBlueprintPlanning/internal/project"
	"github.com/Moller21/StagedBlueprintPlanning/internal/world"
	"github.com/Moller21/StagedBlueprintPlanning/testhelpers"
)

func TestTakeSnapshot(t *testing.T) {
	t.Run("captures entities, wires and the stage count", func(t *testing.T) {
		s := testhelpers.NewScene(t, 3)
		a := s.Place("power-pole", 0, 0, entity.North, 1, nil)
		b := s.Place("power-pole", 3, 0, entity.North, 2, nil)
		_, err := s.Project.Content().Cable().Add(
			graph.CableTarget{Entity: a.ID(), Port: graph.PortDefault},
			graph.CableTarget{Entity: b.ID(), Port: graph.PortDefault},
		)
		require.NoError(t, err)

		snap := s.Project.TakeSnapshot(project.SnapshotOptions{Label: "before edit"})
		require.Equal(t, "before edit", snap.Label)
		require.Equal(t, 3, snap.NumStages)
		require.Len(t, snap.Entities, 2)
		require.Len(t, snap.Cables, 1)
	})

	t.Run("snapshots serialize to JSON", func(t *testing.T) {
		s := testhelpers.NewScene(t, 3)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, nil)
		value := ent.GetValueAtStage(2)
		value["recipe"] = "circuits"
		_, err := s.Project.Engine().OnEntityPossiblyUpdated(ent, world.Observation{Value: value}, 2, testhelpers.TestUser)
		require.NoError(t, err)

		snap := s.Project.TakeSnapshot(project.SnapshotOptions{Label: "x"})
		data, err := json.Marshal(snap)
		require.NoError(t, err)
		require.Contains(t, string(data), `"num_stages":3`)
	})

	t.Run("the ring evicts oldest past the depth limit", func(t *testing.T) {
		s := testhelpers.NewScene(t, 3)
		s.Project.SetMaxSnapshots(2)

		s.Project.TakeSnapshot(project.SnapshotOptions{Label: "first"})
		s.Project.TakeSnapshot(project.SnapshotOptions{Label: "second"})
		s.Project.TakeSnapshot(project.SnapshotOptions{Label: "third"})

		infos := s.Project.Snapshots()
		require.Len(t, infos, 2)
		require.Equal(t, "third", infos[0].Label, "newest first")
		require.Equal(t, "second", infos[1].Label)
	})
}

func TestRestoreSnapshot(t *testing.T) {
	t.Run("rolls the model back", func(t *testing.T) {
		s := testhelpers.NewScene(t, 3)
		ent := s.Place("assembler-1", 0, 0, entity.North, 1, entity.Value{"recipe": "gears"})
		s.Project.TakeSnapshot(project.SnapshotOptions{Label: "before"})

		value := ent.GetValueAtStage(2)
		value["recipe"] = "circuits"
		_, err := s.Project.Engine().OnEntityPossiblyUpdated(ent, world.Observation{Value: value}, 2, testhelpers.TestUser)
		require.NoError(t, err)
		_, _, err = s.Project.Engine().OnEntityCreated(world.Observation{
			Name:      "pump",
			Position:  entity.Pos(5, 5),
			Direction: entity.DirectionPtr(entity.East),
			Value:     entity.Value{entity.NameKey: "pump"},
		}, 1, testhelpers.TestUser)
		require.NoError(t, err)
		require.Equal(t, 2, s.Project.Content().Len())

		require.NoError(t, s.Project.RestoreSnapshot(0))

		require.Equal(t, 1, s.Project.Content().Len(), "the entity created after the snapshot is gone")
		restored, ok := s.Project.Content().Entity(ent.ID())
		require.True(t, ok)
		require.Equal(t, "gears", restored.GetValueAtStage(2)["recipe"])
		require.False(t, restored.HasAnyStageDiff())

		obs, rendered := s.World.Rendered(ent.ID(), 2)
		require.True(t, rendered)
		require.Equal(t, "gears", obs.Value["recipe"], "the world repainted from the restored model")
	})

	t.Run("restores wires", func(t *testing.T) {
		s := testhelpers.NewScene(t, 3)
		a := s.Place("power-pole", 0, 0, entity.North, 1, nil)
		b := s.Place("power-pole", 3, 0, entity.North, 1, nil)
		_, err := s.Project.Content().Cable().Add(
			graph.CableTarget{Entity: a.ID(), Port: graph.PortDefault},
			graph.CableTarget{Entity: b.ID(), Port: graph.PortDefault},
		)
		require.NoError(t, err)
		_, err = s.Project.Content().Circuit().Add(graph.CircuitConnection{From: a.ID(), To: b.ID(), Wire: graph.RedWire})
		require.NoError(t, err)
		s.Project.TakeSnapshot(project.SnapshotOptions{Label: "wired"})

		require.True(t, s.Project.Content().Cable().Remove(
			graph.CableTarget{Entity: a.ID(), Port: graph.PortDefault},
			graph.CableTarget{Entity: b.ID(), Port: graph.PortDefault},
		))

		require.NoError(t, s.Project.RestoreSnapshot(0))

		require.True(t, s.Project.Content().Cable().HasAnyConnection(a.ID()))
		require.Len(t, s.Project.Content().Circuit().Connections(a.ID()), 1)
	})

	t.Run("rejects an unknown index", func(t *testing.T) {
		s := testhelpers.NewScene(t, 3)
		require.Error(t, s.Project.RestoreSnapshot(0))
	})
}
