// Package engine implements the stage synchronization engine: the high-level
// create/update/rotate/upgrade/move operations that reconcile edits observed
// on a rendered instance at one stage with the authoritative staged model,
// and drive the world adapter so every stage's rendering stays consistent.
//
// All operations are synchronous and single-threaded. An operation either
// completes in full or restores pre-call state before returning; the primary
// entity is always committed before dependents are resynchronized.
package engine

import (
	"github.com/Moller21/StagedBlueprintPlanning/internal/content"
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/output"
	"github.com/Moller21/StagedBlueprintPlanning/internal/prototypes"
	"github.com/Moller21/StagedBlueprintPlanning/internal/world"
)

// StageCounter reports the current number of stages in the plan
type StageCounter interface {
	NumStages() int
}

// Engine orchestrates staged-model updates against the world adapter
type Engine struct {
	content *content.Content
	world   world.Adapter
	protos  prototypes.InfoProvider
	stages  StageCounter
	splog   *output.Splog
}

// New creates a sync engine over the given store and collaborators
func New(store *content.Content, adapter world.Adapter, protos prototypes.InfoProvider, stages StageCounter, splog *output.Splog) *Engine {
	if splog == nil {
		splog = output.NewSplog()
	}
	return &Engine{
		content: store,
		world:   adapter,
		protos:  protos,
		stages:  stages,
		splog:   splog,
	}
}

// Content returns the underlying store
func (e *Engine) Content() *content.Content { return e.content }

// lastRelevantStage returns the highest stage that can carry a rendered
// instance of ent
func (e *Engine) lastRelevantStage(ent *entity.StagedEntity) int {
	last := e.stages.NumStages()
	if bounded, ok := ent.LastStage(); ok && bounded < last {
		return bounded
	}
	return last
}

// resyncRange makes the rendered instances of ent in [from, to] match the
// model: stages the entity covers are rendered with their cumulative value,
// everything else is destroyed. Render failures fall back to a forced
// rebuild, the best-effort repair for world drift.
func (e *Engine) resyncRange(ent *entity.StagedEntity, from, to int) {
	if from < 1 {
		from = 1
	}
	if max := e.stages.NumStages(); to > max {
		to = max
	}
	it := ent.IterateValues(from, to)
	for {
		stage, value, ok := it.Next()
		if !ok {
			break
		}
		if value == nil || !ent.ExistsAtStage(stage) || ent.IsSettingsRemnant() {
			e.world.DestroyRendered(ent, stage)
			continue
		}
		if _, err := e.world.RenderOrUpdate(ent, stage, value); err != nil {
			e.splog.Warn("render failed for entity %d at stage %d, rebuilding: %v", ent.ID(), stage, err)
			_ = e.world.Rebuild(ent, stage)
		}
	}
}

// resyncAllStages refreshes every stage of ent
func (e *Engine) resyncAllStages(ent *entity.StagedEntity) {
	e.resyncRange(ent, 1, e.stages.NumStages())
}

// ResyncEverything refreshes every stage of every entity. Used after bulk
// model changes such as stage insertion or snapshot restore.
func (e *Engine) ResyncEverything() {
	for _, ent := range e.content.AllEntities() {
		e.resyncAllStages(ent)
	}
}
