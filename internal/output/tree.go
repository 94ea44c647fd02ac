package output

import (
	"fmt"
	"strings"

	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
)

// EntityAnnotation holds per-entity display metadata
type EntityAnnotation struct {
	CustomLabel string // Additional text to display after the entity line
}

// TimelineRenderOptions configures rendering behavior
type TimelineRenderOptions struct {
	Reverse bool // Highest stage first
	Colors  bool
	Short   bool // One line per stage, entity counts only
}

// TimelineRenderer renders the per-stage view of a staged model: one section
// per stage listing the entities that exist there, with markers for where an
// entity is introduced, customized, or ends
type TimelineRenderer struct {
	numStages   int
	entities    func() []*entity.StagedEntity
	annotations map[entity.ID]EntityAnnotation
}

// NewTimelineRenderer creates a renderer over the given stage count and
// entity source
func NewTimelineRenderer(numStages int, entities func() []*entity.StagedEntity) *TimelineRenderer {
	return &TimelineRenderer{
		numStages:   numStages,
		entities:    entities,
		annotations: make(map[entity.ID]EntityAnnotation),
	}
}

// SetAnnotation sets the annotation for an entity
func (r *TimelineRenderer) SetAnnotation(id entity.ID, annotation EntityAnnotation) {
	r.annotations[id] = annotation
}

// Render returns the timeline as lines
func (r *TimelineRenderer) Render(opts TimelineRenderOptions) []string {
	var result []string
	for i := 0; i < r.numStages; i++ {
		stage := i + 1
		if opts.Reverse {
			stage = r.numStages - i
		}
		result = append(result, r.renderStage(stage, opts)...)
	}
	return result
}

func (r *TimelineRenderer) renderStage(stage int, opts TimelineRenderOptions) []string {
	all := r.entities()
	var rows []string
	count := 0
	for _, e := range all {
		if !e.ExistsAtStage(stage) || e.IsSettingsRemnant() {
			continue
		}
		count++
		if !opts.Short {
			rows = append(rows, r.renderEntity(e, stage))
		}
	}

	header := fmt.Sprintf("Stage %d", stage)
	if opts.Colors {
		header = StageStyle(stage).Render(header)
	}
	if opts.Short {
		return []string{fmt.Sprintf("%s  (%d entities)", header, count)}
	}
	lines := append([]string{header}, rows...)
	return lines
}

func (r *TimelineRenderer) renderEntity(e *entity.StagedEntity, stage int) string {
	var markers []string
	if stage == e.FirstStage() {
		markers = append(markers, "new")
	}
	if e.HasStageDiff(stage) {
		markers = append(markers, "changed")
	}
	if last, bounded := e.LastStage(); bounded && stage == last {
		markers = append(markers, "last")
	}

	line := fmt.Sprintf("  %s (%d, %d) %s",
		e.NameAtStage(stage), e.Position().X, e.Position().Y, e.Direction())
	if len(markers) > 0 {
		line += "  [" + strings.Join(markers, ", ") + "]"
	}
	if annotation, ok := r.annotations[e.ID()]; ok && annotation.CustomLabel != "" {
		line += " " + annotation.CustomLabel
	}
	return line
}
