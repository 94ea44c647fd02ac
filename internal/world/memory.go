package world

import (
	"fmt"
	"sort"

	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
)

// MemoryWorld is an in-memory Adapter that records every rendered instance
// and every call, for tests and the demo CLI
type MemoryWorld struct {
	rendered map[Handle]Observation
	// Calls is the ordered log of adapter invocations, e.g.
	// "render 3@2" or "destroy 3@2"
	Calls []string
	// RebuildCount counts forced rebuilds, the external-inconsistency
	// repair path
	RebuildCount int
}

// NewMemoryWorld creates an empty in-memory world
func NewMemoryWorld() *MemoryWorld {
	return &MemoryWorld{rendered: make(map[Handle]Observation)}
}

// RenderOrUpdate stores the value as the rendered state for (entity, stage)
func (w *MemoryWorld) RenderOrUpdate(e *entity.StagedEntity, stage int, value entity.Value) (Handle, error) {
	h := Handle{Entity: e.ID(), Stage: stage}
	name, _ := value[entity.NameKey].(string)
	w.rendered[h] = Observation{
		Name:      name,
		Position:  e.Position(),
		Direction: entity.DirectionPtr(e.Direction()),
		Value:     value.Clone(),
	}
	w.Calls = append(w.Calls, fmt.Sprintf("render %d@%d", e.ID(), stage))
	return h, nil
}

// DestroyRendered removes the rendered state for (entity, stage)
func (w *MemoryWorld) DestroyRendered(e *entity.StagedEntity, stage int) {
	delete(w.rendered, Handle{Entity: e.ID(), Stage: stage})
	w.Calls = append(w.Calls, fmt.Sprintf("destroy %d@%d", e.ID(), stage))
}

// Observe returns the recorded state for a handle
func (w *MemoryWorld) Observe(h Handle) (Observation, error) {
	obs, ok := w.rendered[h]
	if !ok {
		return Observation{}, fmt.Errorf("no rendered instance for entity %d at stage %d", h.Entity, h.Stage)
	}
	return obs, nil
}

// Rebuild re-renders from the model value at the stage
func (w *MemoryWorld) Rebuild(e *entity.StagedEntity, stage int) error {
	w.RebuildCount++
	w.Calls = append(w.Calls, fmt.Sprintf("rebuild %d@%d", e.ID(), stage))
	value := e.GetValueAtStage(stage)
	h := Handle{Entity: e.ID(), Stage: stage}
	if value == nil || !e.ExistsAtStage(stage) || e.IsSettingsRemnant() {
		delete(w.rendered, h)
		return nil
	}
	name, _ := value[entity.NameKey].(string)
	w.rendered[h] = Observation{
		Name:      name,
		Position:  e.Position(),
		Direction: entity.DirectionPtr(e.Direction()),
		Value:     value,
	}
	return nil
}

// Rendered returns the recorded observation for (entity, stage)
func (w *MemoryWorld) Rendered(id entity.ID, stage int) (Observation, bool) {
	obs, ok := w.rendered[Handle{Entity: id, Stage: stage}]
	return obs, ok
}

// RenderedStages returns the stages at which an entity currently has a
// rendered instance, sorted
func (w *MemoryWorld) RenderedStages(id entity.ID) []int {
	var out []int
	for h := range w.rendered {
		if h.Entity == id {
			out = append(out, h.Stage)
		}
	}
	sort.Ints(out)
	return out
}
