// Package content implements the authoritative staged model store: a flat
// arena of entities keyed by stable id, position buckets holding id lists,
// and the compatibility resolver that maps a world observation to the one
// staged entity it represents. The connection graphs live here too, indexed
// by entity id so entities and connections never reference each other
// directly.
package content

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/errors"
	"github.com/Moller21/StagedBlueprintPlanning/internal/graph"
	"github.com/Moller21/StagedBlueprintPlanning/internal/prototypes"
)

// BoundingBoxMargin is the fixed expansion applied around the occupied area
const BoundingBoxMargin = 2

// Content is the staged model for one plan surface
type Content struct {
	protos prototypes.InfoProvider

	entities   map[entity.ID]*entity.StagedEntity
	byPosition map[entity.Position][]entity.ID
	nextID     entity.ID

	circuit *graph.CircuitGraph
	cable   *graph.CableGraph
}

// New creates an empty content store using the given prototype collaborator
func New(protos prototypes.InfoProvider) *Content {
	return &Content{
		protos:     protos,
		entities:   make(map[entity.ID]*entity.StagedEntity),
		byPosition: make(map[entity.Position][]entity.ID),
		nextID:     1,
		circuit:    graph.NewCircuitGraph(),
		cable:      graph.NewCableGraph(),
	}
}

// Prototypes returns the prototype collaborator the store was built with
func (c *Content) Prototypes() prototypes.InfoProvider { return c.protos }

// Circuit returns the circuit connection graph
func (c *Content) Circuit() *graph.CircuitGraph { return c.circuit }

// Cable returns the cable connection graph
func (c *Content) Cable() *graph.CableGraph { return c.cable }

// NewEntity creates and indexes a staged entity from an observed snapshot.
// The category class is derived from the name via the prototype collaborator.
func (c *Content) NewEntity(pos entity.Position, dir entity.Direction, firstStage int, base entity.Value) (*entity.StagedEntity, error) {
	name, _ := base[entity.NameKey].(string)
	e, err := entity.New(c.nextID, pos, dir, c.protos.Classify(name), firstStage, base)
	if err != nil {
		return nil, err
	}
	c.nextID++
	c.index(e)
	return e, nil
}

// Adopt indexes an entity restored from a snapshot, keeping the id counter
// ahead of every adopted id
func (c *Content) Adopt(e *entity.StagedEntity) {
	if e.ID() >= c.nextID {
		c.nextID = e.ID() + 1
	}
	c.index(e)
}

func (c *Content) index(e *entity.StagedEntity) {
	c.entities[e.ID()] = e
	c.byPosition[e.Position()] = append(c.byPosition[e.Position()], e.ID())
	c.circuit.AddNode(e.ID())
	c.cable.AddNode(e.ID(), c.protos.IsMultiPort(e.Name()))
}

// Entity looks up an entity by id
func (c *Content) Entity(id entity.ID) (*entity.StagedEntity, bool) {
	e, ok := c.entities[id]
	return e, ok
}

// Len returns the number of stored entities
func (c *Content) Len() int { return len(c.entities) }

// AllEntities returns the stored entities in id order
func (c *Content) AllEntities() []*entity.StagedEntity {
	out := make([]*entity.StagedEntity, 0, len(c.entities))
	for id := entity.ID(1); id < c.nextID; id++ {
		if e, ok := c.entities[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// AtPosition returns the entities bucketed at an exact position
func (c *Content) AtPosition(pos entity.Position) []*entity.StagedEntity {
	ids := c.byPosition[pos]
	out := make([]*entity.StagedEntity, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.entities[id])
	}
	return out
}

// Delete removes an entity from the arena, its position bucket, and both
// connection graphs
func (c *Content) Delete(e *entity.StagedEntity) error {
	if _, ok := c.entities[e.ID()]; !ok {
		return errors.NewEntityNotFoundError(uint64(e.ID()))
	}
	c.unbucket(e.Position(), e.ID())
	c.circuit.RemoveNode(e.ID())
	c.cable.RemoveNode(e.ID())
	delete(c.entities, e.ID())
	return nil
}

func (c *Content) unbucket(pos entity.Position, id entity.ID) {
	bucket := c.byPosition[pos]
	for i, existing := range bucket {
		if existing == id {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.byPosition, pos)
	} else {
		c.byPosition[pos] = bucket
	}
}

// ChangePosition re-indexes an entity under a new position. A no-op when the
// position is unchanged.
func (c *Content) ChangePosition(e *entity.StagedEntity, newPos entity.Position) error {
	if _, ok := c.entities[e.ID()]; !ok {
		return errors.NewEntityNotFoundError(uint64(e.ID()))
	}
	if e.Position() == newPos {
		return nil
	}
	c.unbucket(e.Position(), e.ID())
	e.SetPosition(newPos)
	c.byPosition[newPos] = append(c.byPosition[newPos], e.ID())
	return nil
}

// ComputeBoundingBox returns the minimal box covering every entity, expanded
// by BoundingBoxMargin; ok is false when the store is empty
func (c *Content) ComputeBoundingBox() (entity.BoundingBox, bool) {
	if len(c.entities) == 0 {
		return entity.BoundingBox{}, false
	}
	var box entity.BoundingBox
	first := true
	for _, e := range c.entities {
		pos := e.Position()
		if first {
			box = entity.BoundingBox{Min: pos, Max: pos}
			first = false
			continue
		}
		if pos.X < box.Min.X {
			box.Min.X = pos.X
		}
		if pos.Y < box.Min.Y {
			box.Min.Y = pos.Y
		}
		if pos.X > box.Max.X {
			box.Max.X = pos.X
		}
		if pos.Y > box.Max.Y {
			box.Max.Y = pos.Y
		}
	}
	return box.Expand(BoundingBoxMargin), true
}
