// Package graph implements the two connection graphs of the staged model:
// the circuit graph (arbitrary multiplicity, mirrored equality) and the
// cable graph (simple undirected, degree capped, per-port slots for
// switch-like nodes). Connections are indexed externally by entity id; the
// entity structs never hold neighbor references.
package graph

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/errors"
)

// WireKind identifies the wire carried by a circuit connection
type WireKind uint8

const (
	RedWire WireKind = iota
	GreenWire
)

func (w WireKind) String() string {
	switch w {
	case RedWire:
		return "red"
	case GreenWire:
		return "green"
	}
	return "unknown"
}

// CircuitConnection joins two entity connector points with a wire. The pair
// is logically undirected: a connection recorded as (A, B) equals the same
// connection recorded as (B, A) with mirrored connector ids.
type CircuitConnection struct {
	From          entity.ID
	To            entity.ID
	FromConnector uint8
	ToConnector   uint8
	Wire          WireKind
}

// Equals compares two connections under mirrored equality
func (c CircuitConnection) Equals(other CircuitConnection) bool {
	if c.Wire != other.Wire {
		return false
	}
	if c.From == other.From && c.To == other.To &&
		c.FromConnector == other.FromConnector && c.ToConnector == other.ToConnector {
		return true
	}
	return c.From == other.To && c.To == other.From &&
		c.FromConnector == other.ToConnector && c.ToConnector == other.FromConnector
}

// mirrored returns the connection with endpoints swapped
func (c CircuitConnection) mirrored() CircuitConnection {
	return CircuitConnection{
		From:          c.To,
		To:            c.From,
		FromConnector: c.ToConnector,
		ToConnector:   c.FromConnector,
		Wire:          c.Wire,
	}
}

// CircuitGraph is a symmetric double index of circuit connections:
// A -> {B: connections} always mirrors B -> {A: connections}.
type CircuitGraph struct {
	nodes map[entity.ID]struct{}
	conns map[entity.ID]map[entity.ID][]CircuitConnection
}

// NewCircuitGraph creates an empty circuit graph
func NewCircuitGraph() *CircuitGraph {
	return &CircuitGraph{
		nodes: make(map[entity.ID]struct{}),
		conns: make(map[entity.ID]map[entity.ID][]CircuitConnection),
	}
}

// AddNode registers an entity as a valid connection endpoint
func (g *CircuitGraph) AddNode(id entity.ID) {
	g.nodes[id] = struct{}{}
}

// RemoveNode drops an entity and every connection touching it
func (g *CircuitGraph) RemoveNode(id entity.ID) {
	for neighbor := range g.conns[id] {
		delete(g.conns[neighbor], id)
		if len(g.conns[neighbor]) == 0 {
			delete(g.conns, neighbor)
		}
	}
	delete(g.conns, id)
	delete(g.nodes, id)
}

// HasNode reports whether an entity is registered
func (g *CircuitGraph) HasNode(id entity.ID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Add inserts a connection into both sides of the index. It reports false
// for duplicates (under mirrored equality) without mutating.
func (g *CircuitGraph) Add(conn CircuitConnection) (bool, error) {
	if !g.HasNode(conn.From) {
		return false, errors.NewEntityNotFoundError(uint64(conn.From))
	}
	if !g.HasNode(conn.To) {
		return false, errors.NewEntityNotFoundError(uint64(conn.To))
	}
	if conn.From == conn.To {
		return false, errors.ErrSelfConnection
	}
	for _, existing := range g.conns[conn.From][conn.To] {
		if existing.Equals(conn) {
			return false, nil
		}
	}
	g.insert(conn.From, conn.To, conn)
	g.insert(conn.To, conn.From, conn.mirrored())
	return true, nil
}

func (g *CircuitGraph) insert(from, to entity.ID, conn CircuitConnection) {
	if g.conns[from] == nil {
		g.conns[from] = make(map[entity.ID][]CircuitConnection)
	}
	g.conns[from][to] = append(g.conns[from][to], conn)
}

// Remove deletes a connection from both sides of the index; reports whether
// it was present
func (g *CircuitGraph) Remove(conn CircuitConnection) bool {
	if !g.remove(conn.From, conn.To, conn) {
		return false
	}
	g.remove(conn.To, conn.From, conn)
	return true
}

func (g *CircuitGraph) remove(from, to entity.ID, conn CircuitConnection) bool {
	list := g.conns[from][to]
	for i, existing := range list {
		if existing.Equals(conn) {
			list = append(list[:i], list[i+1:]...)
			if len(list) == 0 {
				delete(g.conns[from], to)
				if len(g.conns[from]) == 0 {
					delete(g.conns, from)
				}
			} else {
				g.conns[from][to] = list
			}
			return true
		}
	}
	return false
}

// Connections returns every connection recorded for an entity, with the
// entity as the From endpoint
func (g *CircuitGraph) Connections(id entity.ID) []CircuitConnection {
	var out []CircuitConnection
	for _, list := range g.conns[id] {
		out = append(out, list...)
	}
	return out
}

// Neighbors returns the distinct entities connected to id
func (g *CircuitGraph) Neighbors(id entity.ID) []entity.ID {
	out := make([]entity.ID, 0, len(g.conns[id]))
	for neighbor := range g.conns[id] {
		out = append(out, neighbor)
	}
	return out
}

// All returns one record per connection, normalized so From <= To
func (g *CircuitGraph) All() []CircuitConnection {
	var out []CircuitConnection
	for from, byNeighbor := range g.conns {
		for to, list := range byNeighbor {
			if from > to {
				continue
			}
			out = append(out, list...)
		}
	}
	return out
}
