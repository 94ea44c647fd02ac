package project

import (
	"fmt"
	"time"

	"github.com/Moller21/StagedBlueprintPlanning/internal/content"
	"github.com/Moller21/StagedBlueprintPlanning/internal/engine"
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/graph"
)

// DefaultMaxSnapshots is the number of snapshots kept in the ring
const DefaultMaxSnapshots = 10

// EntityRecord is the serializable form of one staged entity
type EntityRecord struct {
	ID              uint64              `json:"id"`
	X               int                 `json:"x"`
	Y               int                 `json:"y"`
	Direction       uint8               `json:"direction"`
	Category        string              `json:"category"`
	FirstStage      int                 `json:"first_stage"`
	LastStage       int                 `json:"last_stage,omitempty"`
	BaseValue       entity.Value        `json:"base_value"`
	StageDiffs      map[int]entity.Diff `json:"stage_diffs,omitempty"`
	SettingsRemnant bool                `json:"settings_remnant,omitempty"`
}

// Snapshot is a full serializable copy of the project model, taken before a
// destructive operation so an external undo collaborator can roll back
type Snapshot struct {
	Timestamp time.Time                 `json:"timestamp"`
	Label     string                    `json:"label"`
	NumStages int                       `json:"num_stages"`
	Entities  []EntityRecord            `json:"entities"`
	Circuits  []graph.CircuitConnection `json:"circuits,omitempty"`
	Cables    [][2]graph.CableTarget    `json:"cables,omitempty"`
}

// SnapshotOptions labels a snapshot at capture time
type SnapshotOptions struct {
	Label string
}

// SnapshotInfo is display metadata about one stored snapshot
type SnapshotInfo struct {
	Index     int
	Label     string
	Timestamp time.Time
	Entities  int
}

// SetMaxSnapshots changes the ring depth, evicting oldest entries if the
// ring already holds more
func (p *Project) SetMaxSnapshots(n int) {
	if n < 1 {
		n = 1
	}
	p.maxSnapshots = n
	if len(p.snapshots) > n {
		p.snapshots = p.snapshots[len(p.snapshots)-n:]
	}
}

// TakeSnapshot captures the full model state into the ring, evicting the
// oldest snapshot past the depth limit
func (p *Project) TakeSnapshot(opts SnapshotOptions) Snapshot {
	snap := Snapshot{
		Timestamp: time.Now(),
		Label:     opts.Label,
		NumStages: p.numStages,
		Circuits:  p.content.Circuit().All(),
		Cables:    p.content.Cable().Links(),
	}
	for _, ent := range p.content.AllEntities() {
		last, _ := ent.LastStage()
		snap.Entities = append(snap.Entities, EntityRecord{
			ID:              uint64(ent.ID()),
			X:               ent.Position().X,
			Y:               ent.Position().Y,
			Direction:       uint8(ent.Direction()),
			Category:        ent.Category(),
			FirstStage:      ent.FirstStage(),
			LastStage:       last,
			BaseValue:       ent.BaseValue(),
			StageDiffs:      ent.StageDiffs(),
			SettingsRemnant: ent.IsSettingsRemnant(),
		})
	}

	p.snapshots = append(p.snapshots, snap)
	if len(p.snapshots) > p.maxSnapshots {
		p.snapshots = p.snapshots[len(p.snapshots)-p.maxSnapshots:]
	}
	p.splog.Debug("snapshot %q taken: %d entities, %d stages", opts.Label, len(snap.Entities), snap.NumStages)
	return snap
}

// Snapshots lists the stored snapshots, newest first
func (p *Project) Snapshots() []SnapshotInfo {
	out := make([]SnapshotInfo, 0, len(p.snapshots))
	for i := len(p.snapshots) - 1; i >= 0; i-- {
		snap := p.snapshots[i]
		out = append(out, SnapshotInfo{
			Index:     i,
			Label:     snap.Label,
			Timestamp: snap.Timestamp,
			Entities:  len(snap.Entities),
		})
	}
	return out
}

// RestoreSnapshot replaces the whole model with the state of the snapshot at
// the given ring index and rebuilds every rendered stage
func (p *Project) RestoreSnapshot(index int) error {
	if index < 0 || index >= len(p.snapshots) {
		return fmt.Errorf("no snapshot at index %d", index)
	}
	snap := p.snapshots[index]

	// drop every current render; the restored model repaints from scratch
	for _, ent := range p.content.AllEntities() {
		for stage := 1; stage <= p.numStages; stage++ {
			p.adapter.DestroyRendered(ent, stage)
		}
	}

	store := content.New(p.protos)
	for _, rec := range snap.Entities {
		ent := entity.Restore(
			entity.ID(rec.ID),
			entity.Pos(rec.X, rec.Y),
			entity.Direction(rec.Direction),
			rec.Category,
			rec.FirstStage,
			rec.LastStage,
			rec.BaseValue,
			rec.StageDiffs,
			rec.SettingsRemnant,
		)
		store.Adopt(ent)
	}
	for _, conn := range snap.Circuits {
		if _, err := store.Circuit().Add(conn); err != nil {
			return fmt.Errorf("restore circuit connection: %w", err)
		}
	}
	for _, link := range snap.Cables {
		if _, err := store.Cable().Add(link[0], link[1]); err != nil {
			return fmt.Errorf("restore cable link: %w", err)
		}
	}

	p.numStages = snap.NumStages
	p.content = store
	p.engine = engine.New(store, p.adapter, p.protos, p, p.splog)
	p.splog.Info("restored snapshot %q: %d entities, %d stages", snap.Label, len(snap.Entities), snap.NumStages)
	p.engine.ResyncEverything()
	return nil
}
