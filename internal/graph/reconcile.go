package graph

import (
	"sort"

	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/errors"
)

// ObservedCable is one cable observed on a rendered instance: the port it
// leaves the observed entity on and the target it reaches
type ObservedCable struct {
	OwnPort  CablePort
	Neighbor CableTarget
}

// CableReconcileReport summarizes a reconciliation pass
type CableReconcileReport struct {
	// Changed reports whether any link was added or removed
	Changed bool
	// MaxConnectionsHit reports whether at least one observed link could not
	// be stored because an endpoint was at its degree cap
	MaxConnectionsHit bool
	// Affected lists other entities whose zero-vs-nonzero connection status
	// flipped; their effective default state depends on having any
	// connection at all and they must be resynchronized by the caller
	Affected []entity.ID
}

// Reconcile makes the stored links of one entity match the links observed on
// its rendered instance. Links present in both are kept; stored-but-missing
// links are removed and observed-but-missing links are added, with all
// removals applied before any addition so the degree cap is never exceeded
// transiently.
func (g *CableGraph) Reconcile(id entity.ID, observed []ObservedCable) (CableReconcileReport, error) {
	var report CableReconcileReport
	if !g.HasNode(id) {
		return report, errors.NewEntityNotFoundError(uint64(id))
	}

	observedSet := make(map[[2]CableTarget]struct{}, len(observed))
	for _, cable := range observed {
		own := CableTarget{Entity: id, Port: cable.OwnPort}
		observedSet[[2]CableTarget{own, cable.Neighbor}] = struct{}{}
	}

	var toRemove, toAdd [][2]CableTarget
	stored := make(map[[2]CableTarget]struct{})
	for target, linked := range g.links {
		if target.Entity != id {
			continue
		}
		for other := range linked {
			pair := [2]CableTarget{target, other}
			stored[pair] = struct{}{}
			if _, ok := observedSet[pair]; !ok {
				toRemove = append(toRemove, pair)
			}
		}
	}
	for pair := range observedSet {
		if _, ok := stored[pair]; !ok {
			toAdd = append(toAdd, pair)
		}
	}
	if len(toRemove) == 0 && len(toAdd) == 0 {
		return report, nil
	}

	// record the before-state of every neighbor we are about to touch
	touched := make(map[entity.ID]bool)
	for _, pair := range toRemove {
		touched[pair[1].Entity] = g.HasAnyConnection(pair[1].Entity)
	}
	for _, pair := range toAdd {
		if _, seen := touched[pair[1].Entity]; !seen {
			touched[pair[1].Entity] = g.HasAnyConnection(pair[1].Entity)
		}
	}

	for _, pair := range toRemove {
		if g.Remove(pair[0], pair[1]) {
			report.Changed = true
		}
	}
	for _, pair := range toAdd {
		result, err := g.Add(pair[0], pair[1])
		if err != nil {
			return report, err
		}
		switch result {
		case CableAdded:
			report.Changed = true
		case CableMaxConnections:
			report.MaxConnectionsHit = true
		}
	}

	for neighbor, hadAny := range touched {
		if g.HasAnyConnection(neighbor) != hadAny {
			report.Affected = append(report.Affected, neighbor)
		}
	}
	sort.Slice(report.Affected, func(i, j int) bool { return report.Affected[i] < report.Affected[j] })
	return report, nil
}
