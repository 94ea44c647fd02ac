package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Moller21/StagedBlueprintPlanning/internal/errors"
	"github.com/Moller21/StagedBlueprintPlanning/internal/graph"
)

func newCircuitGraph(ids ...uint64) *graph.CircuitGraph {
	g := graph.NewCircuitGraph()
	for _, id := range ids {
		g.AddNode(entityID(id))
	}
	return g
}

func TestCircuitAdd(t *testing.T) {
	t.Run("requires both endpoints registered", func(t *testing.T) {
		g := newCircuitGraph(1)
		_, err := g.Add(graph.CircuitConnection{From: 1, To: 2, Wire: graph.RedWire})
		require.ErrorIs(t, err, errors.ErrEntityNotFound)
	})

	t.Run("rejects self connections", func(t *testing.T) {
		g := newCircuitGraph(1)
		_, err := g.Add(graph.CircuitConnection{From: 1, To: 1, Wire: graph.RedWire})
		require.ErrorIs(t, err, errors.ErrSelfConnection)
	})

	t.Run("stores both directions", func(t *testing.T) {
		g := newCircuitGraph(1, 2)
		added, err := g.Add(graph.CircuitConnection{From: 1, To: 2, FromConnector: 1, ToConnector: 2, Wire: graph.RedWire})
		require.NoError(t, err)
		require.True(t, added)

		require.Len(t, g.Connections(1), 1)
		require.Len(t, g.Connections(2), 1)
		require.Equal(t, []uint64{2}, idsOf(g.Neighbors(1)))
		require.Equal(t, []uint64{1}, idsOf(g.Neighbors(2)))
	})

	t.Run("ignores mirrored duplicates", func(t *testing.T) {
		g := newCircuitGraph(1, 2)
		conn := graph.CircuitConnection{From: 1, To: 2, FromConnector: 1, ToConnector: 2, Wire: graph.GreenWire}
		added, err := g.Add(conn)
		require.NoError(t, err)
		require.True(t, added)

		mirrored := graph.CircuitConnection{From: 2, To: 1, FromConnector: 2, ToConnector: 1, Wire: graph.GreenWire}
		added, err = g.Add(mirrored)
		require.NoError(t, err)
		require.False(t, added)
		require.Len(t, g.All(), 1)
	})

	t.Run("different wires are different connections", func(t *testing.T) {
		g := newCircuitGraph(1, 2)
		red := graph.CircuitConnection{From: 1, To: 2, Wire: graph.RedWire}
		green := graph.CircuitConnection{From: 1, To: 2, Wire: graph.GreenWire}

		added, err := g.Add(red)
		require.NoError(t, err)
		require.True(t, added)
		added, err = g.Add(green)
		require.NoError(t, err)
		require.True(t, added)
		require.Len(t, g.Connections(1), 2)
	})
}

func TestCircuitRemove(t *testing.T) {
	g := newCircuitGraph(1, 2)
	conn := graph.CircuitConnection{From: 1, To: 2, FromConnector: 1, ToConnector: 2, Wire: graph.RedWire}
	_, err := g.Add(conn)
	require.NoError(t, err)

	t.Run("removes under mirrored equality", func(t *testing.T) {
		mirrored := graph.CircuitConnection{From: 2, To: 1, FromConnector: 2, ToConnector: 1, Wire: graph.RedWire}
		require.True(t, g.Remove(mirrored))
		require.Empty(t, g.Connections(1))
		require.Empty(t, g.Connections(2))
	})

	t.Run("reports absent connections", func(t *testing.T) {
		require.False(t, g.Remove(conn))
	})
}

func TestCircuitRemoveNode(t *testing.T) {
	g := newCircuitGraph(1, 2, 3)
	_, err := g.Add(graph.CircuitConnection{From: 1, To: 2, Wire: graph.RedWire})
	require.NoError(t, err)
	_, err = g.Add(graph.CircuitConnection{From: 2, To: 3, Wire: graph.GreenWire})
	require.NoError(t, err)

	g.RemoveNode(2)

	require.False(t, g.HasNode(2))
	require.Empty(t, g.Connections(1))
	require.Empty(t, g.Connections(3))
}

func TestCircuitAll(t *testing.T) {
	g := newCircuitGraph(1, 2, 3)
	_, err := g.Add(graph.CircuitConnection{From: 2, To: 1, Wire: graph.RedWire})
	require.NoError(t, err)
	_, err = g.Add(graph.CircuitConnection{From: 2, To: 3, Wire: graph.RedWire})
	require.NoError(t, err)

	all := g.All()
	require.Len(t, all, 2)
	for _, conn := range all {
		require.LessOrEqual(t, conn.From, conn.To, "records are normalized")
	}
}
