package output_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/output"
)

func init() {
	// Force color output for all tests in this file to ensure ANSI escape codes are generated
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func timelineEntities(t *testing.T) func() []*entity.StagedEntity {
	t.Helper()

	assembler, err := entity.New(1, entity.Pos(0, 0), entity.North, "assembler", 1,
		entity.Value{entity.NameKey: "assembler-1", "recipe": "gears"})
	require.NoError(t, err)
	_, err = assembler.AdjustValueAtStage(2, entity.Value{entity.NameKey: "assembler-1", "recipe": "circuits"})
	require.NoError(t, err)

	pump, err := entity.New(2, entity.Pos(3, 0), entity.East, "pump", 2,
		entity.Value{entity.NameKey: "pump"})
	require.NoError(t, err)
	require.NoError(t, pump.SetLastStage(3))

	return func() []*entity.StagedEntity {
		return []*entity.StagedEntity{assembler, pump}
	}
}

func TestTimelineRender(t *testing.T) {
	renderer := output.NewTimelineRenderer(3, timelineEntities(t))

	t.Run("marks introduction, customization and ending", func(t *testing.T) {
		lines := renderer.Render(output.TimelineRenderOptions{})
		joined := strings.Join(lines, "\n")

		require.Contains(t, joined, "Stage 1")
		require.Contains(t, joined, "assembler-1 (0, 0) north  [new]")
		require.Contains(t, joined, "assembler-1 (0, 0) north  [changed]")
		require.Contains(t, joined, "pump (3, 0) east  [new]")
		require.Contains(t, joined, "pump (3, 0) east  [last]")
	})

	t.Run("stage sections appear in order", func(t *testing.T) {
		lines := renderer.Render(output.TimelineRenderOptions{})
		var headers []string
		for _, line := range lines {
			if strings.HasPrefix(line, "Stage ") {
				headers = append(headers, line)
			}
		}
		require.Equal(t, []string{"Stage 1", "Stage 2", "Stage 3"}, headers)
	})

	t.Run("reverse renders highest stage first", func(t *testing.T) {
		lines := renderer.Render(output.TimelineRenderOptions{Reverse: true})
		require.Contains(t, lines[0], "Stage 3")
	})

	t.Run("short mode shows counts only", func(t *testing.T) {
		lines := renderer.Render(output.TimelineRenderOptions{Short: true})
		require.Len(t, lines, 3)
		require.Equal(t, "Stage 1  (1 entities)", lines[0])
		require.Equal(t, "Stage 2  (2 entities)", lines[1])
	})

	t.Run("colored headers carry escape codes", func(t *testing.T) {
		lines := renderer.Render(output.TimelineRenderOptions{Colors: true, Short: true})
		require.Contains(t, lines[0], "\x1b[")
	})

	t.Run("annotations append to the entity line", func(t *testing.T) {
		r := output.NewTimelineRenderer(3, timelineEntities(t))
		r.SetAnnotation(2, output.EntityAnnotation{CustomLabel: "(paired)"})
		joined := strings.Join(r.Render(output.TimelineRenderOptions{}), "\n")
		require.Contains(t, joined, "pump (3, 0) east  [new] (paired)")
	})
}

func TestTimelineSkipsRemnants(t *testing.T) {
	ent, err := entity.New(1, entity.Pos(0, 0), entity.North, "assembler", 1,
		entity.Value{entity.NameKey: "assembler-1"})
	require.NoError(t, err)
	ent.MakeSettingsRemnant()

	renderer := output.NewTimelineRenderer(2, func() []*entity.StagedEntity {
		return []*entity.StagedEntity{ent}
	})
	lines := renderer.Render(output.TimelineRenderOptions{Short: true})
	require.Equal(t, "Stage 1  (0 entities)", lines[0])
}
