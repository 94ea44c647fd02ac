// Package world declares the adapter through which the core drives rendered
// per-stage instances. The core consumes this interface; the host implements
// it. MemoryWorld is an in-memory implementation for tests and demos.
package world

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/graph"
)

// Handle identifies one rendered instance: an entity at a stage
type Handle struct {
	Entity entity.ID
	Stage  int
}

// Observation is the world-observed state of a rendered instance
type Observation struct {
	Name      string
	Position  entity.Position
	Direction *entity.Direction // nil when the shape reads back as "any"
	Value     entity.Value
	Cables    []graph.ObservedCable
	Circuits  []graph.CircuitConnection
}

// Adapter renders staged values into per-stage observable instances
type Adapter interface {
	// RenderOrUpdate creates or refreshes the rendered instance of an
	// entity at a stage so it shows the given value
	RenderOrUpdate(e *entity.StagedEntity, stage int, value entity.Value) (Handle, error)
	// DestroyRendered removes the rendered instance of an entity at a stage
	DestroyRendered(e *entity.StagedEntity, stage int)
	// Observe reads the current world-observed state of a rendered instance
	Observe(h Handle) (Observation, error)
	// Rebuild force-rerenders an entity at a stage from the model,
	// discarding any drift the world may have accumulated
	Rebuild(e *entity.StagedEntity, stage int) error
}
