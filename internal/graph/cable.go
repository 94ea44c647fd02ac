package graph

import (
	"sort"

	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/errors"
)

// MaxCableConnections caps the cable degree of a single-port node
const MaxCableConnections = 5

// CablePort distinguishes connection points on multi-port nodes. Single-port
// nodes always use PortDefault.
type CablePort uint8

const (
	PortDefault CablePort = iota
	PortLeft
	PortRight
)

func (p CablePort) String() string {
	switch p {
	case PortDefault:
		return "default"
	case PortLeft:
		return "left"
	case PortRight:
		return "right"
	}
	return "unknown"
}

// CableTarget is one endpoint of a cable: an entity plus the port on it
type CableTarget struct {
	Entity entity.ID
	Port   CablePort
}

// CableAddResult classifies the outcome of adding a cable
type CableAddResult uint8

const (
	// CableAdded indicates the cable was connected
	CableAdded CableAddResult = iota
	// CableAlreadyExists indicates the two targets were already linked
	CableAlreadyExists
	// CableMaxConnections indicates an endpoint is at its degree cap; the
	// graph is left unchanged
	CableMaxConnections
)

// CableGraph is a simple undirected graph of cable links. Single-port nodes
// carry at most MaxCableConnections links; each port of a multi-port node
// holds at most one neighbor, and adding to an occupied port replaces the
// old link.
type CableGraph struct {
	multiPort map[entity.ID]bool
	links     map[CableTarget]map[CableTarget]struct{}
}

// NewCableGraph creates an empty cable graph
func NewCableGraph() *CableGraph {
	return &CableGraph{
		multiPort: make(map[entity.ID]bool),
		links:     make(map[CableTarget]map[CableTarget]struct{}),
	}
}

// AddNode registers an entity as a valid cable endpoint
func (g *CableGraph) AddNode(id entity.ID, multiPort bool) {
	g.multiPort[id] = multiPort
}

// RemoveNode drops an entity and every link touching it, returning the
// entity ids it was linked to
func (g *CableGraph) RemoveNode(id entity.ID) []entity.ID {
	neighbors := make(map[entity.ID]struct{})
	for target, linked := range g.links {
		if target.Entity != id {
			continue
		}
		for other := range linked {
			neighbors[other.Entity] = struct{}{}
			delete(g.links[other], target)
			if len(g.links[other]) == 0 {
				delete(g.links, other)
			}
		}
		delete(g.links, target)
	}
	delete(g.multiPort, id)
	out := make([]entity.ID, 0, len(neighbors))
	for neighbor := range neighbors {
		out = append(out, neighbor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasNode reports whether an entity is registered
func (g *CableGraph) HasNode(id entity.ID) bool {
	_, ok := g.multiPort[id]
	return ok
}

// Degree returns the number of links on one target
func (g *CableGraph) Degree(target CableTarget) int {
	return len(g.links[target])
}

// HasAnyConnection reports whether any port of the entity carries a link.
// Entities whose default behavior depends on being connected at all key off
// this.
func (g *CableGraph) HasAnyConnection(id entity.ID) bool {
	for target, linked := range g.links {
		if target.Entity == id && len(linked) > 0 {
			return true
		}
	}
	return false
}

// Neighbors returns the targets linked to one target, in stable order
func (g *CableGraph) Neighbors(target CableTarget) []CableTarget {
	out := make([]CableTarget, 0, len(g.links[target]))
	for other := range g.links[target] {
		out = append(out, other)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Entity != out[j].Entity {
			return out[i].Entity < out[j].Entity
		}
		return out[i].Port < out[j].Port
	})
	return out
}

// NeighborEntities returns the distinct entities linked to any port of the
// given entity, in ascending id order
func (g *CableGraph) NeighborEntities(id entity.ID) []entity.ID {
	seen := make(map[entity.ID]struct{})
	for target, linked := range g.links {
		if target.Entity != id {
			continue
		}
		for other := range linked {
			seen[other.Entity] = struct{}{}
		}
	}
	out := make([]entity.ID, 0, len(seen))
	for other := range seen {
		out = append(out, other)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// capacityFor checks whether target can accept one more link. For multi-port
// nodes an occupied port is not a failure: the link will be replaced.
func (g *CableGraph) capacityFor(target CableTarget) CableAddResult {
	if g.multiPort[target.Entity] {
		return CableAdded
	}
	if g.Degree(target) >= MaxCableConnections {
		return CableMaxConnections
	}
	return CableAdded
}

// Add links two targets. Both endpoints are validated before any mutation:
// on CableMaxConnections the graph is unchanged rather than partially
// connected.
func (g *CableGraph) Add(a, b CableTarget) (CableAddResult, error) {
	if a.Entity == b.Entity {
		return CableMaxConnections, errors.ErrSelfConnection
	}
	if !g.HasNode(a.Entity) {
		return CableMaxConnections, errors.NewEntityNotFoundError(uint64(a.Entity))
	}
	if !g.HasNode(b.Entity) {
		return CableMaxConnections, errors.NewEntityNotFoundError(uint64(b.Entity))
	}
	if _, linked := g.links[a][b]; linked {
		return CableAlreadyExists, nil
	}
	if g.capacityFor(a) == CableMaxConnections || g.capacityFor(b) == CableMaxConnections {
		return CableMaxConnections, nil
	}
	// each port of a multi-port node holds one neighbor; displace the old one
	g.displaceForPort(a)
	g.displaceForPort(b)
	g.link(a, b)
	return CableAdded, nil
}

func (g *CableGraph) displaceForPort(target CableTarget) {
	if !g.multiPort[target.Entity] {
		return
	}
	for other := range g.links[target] {
		g.unlink(target, other)
	}
}

func (g *CableGraph) link(a, b CableTarget) {
	if g.links[a] == nil {
		g.links[a] = make(map[CableTarget]struct{})
	}
	if g.links[b] == nil {
		g.links[b] = make(map[CableTarget]struct{})
	}
	g.links[a][b] = struct{}{}
	g.links[b][a] = struct{}{}
}

func (g *CableGraph) unlink(a, b CableTarget) {
	delete(g.links[a], b)
	if len(g.links[a]) == 0 {
		delete(g.links, a)
	}
	delete(g.links[b], a)
	if len(g.links[b]) == 0 {
		delete(g.links, b)
	}
}

// Remove unlinks two targets; reports whether a link existed
func (g *CableGraph) Remove(a, b CableTarget) bool {
	if _, linked := g.links[a][b]; !linked {
		return false
	}
	g.unlink(a, b)
	return true
}

// Links returns one record per link, in stable order
func (g *CableGraph) Links() [][2]CableTarget {
	var out [][2]CableTarget
	for a, linked := range g.links {
		for b := range linked {
			if b.Entity < a.Entity || (b.Entity == a.Entity && b.Port < a.Port) {
				continue
			}
			out = append(out, [2]CableTarget{a, b})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0].Entity != out[j][0].Entity {
			return out[i][0].Entity < out[j][0].Entity
		}
		return out[i][1].Entity < out[j][1].Entity
	})
	return out
}
