package engine

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/graph"
	"github.com/Moller21/StagedBlueprintPlanning/internal/world"
)

// UpdateWiresFromWorld makes the stored connection graphs match the wires
// observed on an entity's rendered instance at a stage. Cable links go
// through the graph's reconciliation pass; circuit connections are diffed
// directly, removals before additions. When an observed cable could not be
// stored because an endpoint is at its degree cap, the rendered instance is
// rebuilt to drop the extra wire and ResultMaxConnectionsExceeded is
// returned.
func (e *Engine) UpdateWiresFromWorld(ent *entity.StagedEntity, stage int, obs world.Observation, user string) (Result, error) {
	cableReport, err := e.content.Cable().Reconcile(ent.ID(), obs.Cables)
	if err != nil {
		return ResultNoChange, err
	}
	circuitChanged, err := e.reconcileCircuits(ent.ID(), obs.Circuits)
	if err != nil {
		return ResultNoChange, err
	}

	for _, id := range cableReport.Affected {
		if other, ok := e.content.Entity(id); ok {
			e.resyncRange(other, other.FirstStage(), e.lastRelevantStage(other))
		}
	}

	if cableReport.MaxConnectionsHit {
		e.splog.Warn("entity %d: observed wires exceed the connection cap, rebuilding", ent.ID())
		_ = e.world.Rebuild(ent, stage)
		return ResultMaxConnectionsExceeded, nil
	}
	if !cableReport.Changed && !circuitChanged {
		return ResultNoChange, nil
	}
	e.splog.Debug("entity %d wires updated at stage %d by %s", ent.ID(), stage, user)
	return ResultUpdated, nil
}

// reconcileCircuits diffs the observed circuit connections of one entity
// against the stored graph
func (e *Engine) reconcileCircuits(id entity.ID, observed []graph.CircuitConnection) (bool, error) {
	stored := e.content.Circuit().Connections(id)

	changed := false
	for _, conn := range stored {
		if !containsCircuit(observed, conn) {
			if e.content.Circuit().Remove(conn) {
				changed = true
			}
		}
	}
	for _, conn := range observed {
		if !containsCircuit(stored, conn) {
			added, err := e.content.Circuit().Add(conn)
			if err != nil {
				return changed, err
			}
			if added {
				changed = true
			}
		}
	}
	return changed, nil
}

func containsCircuit(conns []graph.CircuitConnection, conn graph.CircuitConnection) bool {
	for _, other := range conns {
		if other.Equals(conn) {
			return true
		}
	}
	return false
}
