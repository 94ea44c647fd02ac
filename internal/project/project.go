// Package project holds the explicit world-state object tying a staged plan
// together: the stage count, the content store, the sync engine over it, and
// the snapshot ring. Nothing in the model is ambient; every collaborator is
// reachable from the Project.
package project

import (
	"fmt"

	"github.com/Moller21/StagedBlueprintPlanning/internal/content"
	"github.com/Moller21/StagedBlueprintPlanning/internal/engine"
	"github.com/Moller21/StagedBlueprintPlanning/internal/errors"
	"github.com/Moller21/StagedBlueprintPlanning/internal/output"
	"github.com/Moller21/StagedBlueprintPlanning/internal/prototypes"
	"github.com/Moller21/StagedBlueprintPlanning/internal/world"
)

// Project is a staged plan: a fixed set of numbered stages over one content
// store, synchronized against one world adapter
type Project struct {
	name      string
	numStages int

	protos  prototypes.InfoProvider
	adapter world.Adapter
	splog   *output.Splog

	content *content.Content
	engine  *engine.Engine

	snapshots    []Snapshot
	maxSnapshots int
}

// New creates a project with numStages empty stages
func New(name string, numStages int, protos prototypes.InfoProvider, adapter world.Adapter, splog *output.Splog) (*Project, error) {
	if numStages < 1 {
		return nil, fmt.Errorf("project needs at least one stage, got %d", numStages)
	}
	if splog == nil {
		splog = output.NewSplog()
	}
	p := &Project{
		name:         name,
		numStages:    numStages,
		protos:       protos,
		adapter:      adapter,
		splog:        splog,
		maxSnapshots: DefaultMaxSnapshots,
	}
	p.content = content.New(protos)
	p.engine = engine.New(p.content, adapter, protos, p, splog)
	return p, nil
}

// Name returns the project name
func (p *Project) Name() string { return p.name }

// NumStages returns the current number of stages
func (p *Project) NumStages() int { return p.numStages }

// Content returns the content store
func (p *Project) Content() *content.Content { return p.content }

// Engine returns the sync engine. Callers must re-fetch it after a snapshot
// restore.
func (p *Project) Engine() *engine.Engine { return p.engine }

// InsertStage inserts an empty stage at the given position, shifting that
// stage and everything above it up by one. Valid positions run from 1 to
// NumStages()+1 (append).
func (p *Project) InsertStage(stage int) error {
	if stage < 1 || stage > p.numStages+1 {
		return errors.NewStageOutOfRangeError(stage, 1, p.numStages+1)
	}
	p.numStages++
	for _, ent := range p.content.AllEntities() {
		ent.InsertStage(stage)
	}
	p.splog.Info("inserted stage %d, %d stages total", stage, p.numStages)
	p.engine.ResyncEverything()
	return nil
}

// DeleteStage removes a stage, folding its per-entity overrides into the
// stage below so cumulative values above the deletion are unchanged. The
// first stage has no stage below it and cannot be deleted, and the last
// remaining stage cannot be deleted either.
func (p *Project) DeleteStage(stage int) error {
	if p.numStages <= 1 {
		return fmt.Errorf("cannot delete the only stage")
	}
	if stage < 2 || stage > p.numStages {
		return errors.NewStageOutOfRangeError(stage, 2, p.numStages)
	}
	for _, ent := range p.content.AllEntities() {
		ent.DeleteStage(stage)
	}
	p.numStages--
	p.splog.Info("deleted stage %d, %d stages total", stage, p.numStages)
	for _, ent := range p.content.AllEntities() {
		// the old top stage no longer exists; drop its renders
		p.adapter.DestroyRendered(ent, p.numStages+1)
	}
	p.engine.ResyncEverything()
	return nil
}
