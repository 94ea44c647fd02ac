package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Moller21/StagedBlueprintPlanning/internal/config"
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/output"
	"github.com/Moller21/StagedBlueprintPlanning/internal/project"
	"github.com/Moller21/StagedBlueprintPlanning/internal/prototypes"
	"github.com/Moller21/StagedBlueprintPlanning/internal/world"
)

const demoUser = "demo"

// demoPrototypes is the static prototype table the demo plan is built on
func demoPrototypes() prototypes.Table {
	return prototypes.Table{
		"assembler-1":  {Category: "assembler"},
		"assembler-2":  {Category: "assembler"},
		"assembler-3":  {Category: "assembler"},
		"pump":         {Rotation: prototypes.RotationFlippable},
		"lamp":         {Rotation: prototypes.RotationAny},
		"conduit":      {Category: "conduit", PairSpan: 5},
		"conduit-mk2":  {Category: "conduit", PairSpan: 5},
		"power-switch": {MultiPort: true},
		"power-pole":   {},
	}
}

// buildDemoProject assembles a small staged plan against an in-memory world:
// an assembler customized and upgraded over stages, a flippable pump, a
// conduit pair and some wiring.
func buildDemoProject(splog *output.Splog) (*project.Project, error) {
	proj, err := project.New("demo", 4, demoPrototypes(), world.NewMemoryWorld(), splog)
	if err != nil {
		return nil, err
	}
	eng := proj.Engine()

	place := func(name string, x, y int, dir entity.Direction, stage int, extra entity.Value) (*entity.StagedEntity, error) {
		value := entity.Value{entity.NameKey: name}
		for key, prop := range extra {
			value[key] = prop
		}
		ent, result, err := eng.OnEntityCreated(world.Observation{
			Name:      name,
			Position:  entity.Pos(x, y),
			Direction: entity.DirectionPtr(dir),
			Value:     value,
		}, stage, demoUser)
		if err != nil {
			return nil, err
		}
		if result.IsRejection() {
			return nil, fmt.Errorf("placing %s at (%d, %d): %s", name, x, y, result.Message())
		}
		return ent, nil
	}

	assembler, err := place("assembler-1", 0, 0, entity.North, 1, entity.Value{"recipe": "gears"})
	if err != nil {
		return nil, err
	}
	if _, err := place("pump", 3, 0, entity.East, 2, nil); err != nil {
		return nil, err
	}
	if _, err := place("power-pole", 0, 3, entity.North, 1, nil); err != nil {
		return nil, err
	}
	if _, err := place("conduit", 6, 0, entity.North, 1, entity.Value{"io": "input"}); err != nil {
		return nil, err
	}
	if _, err := place("conduit", 6, 3, entity.North, 1, entity.Value{"io": "output"}); err != nil {
		return nil, err
	}

	// stage 3 tweaks the recipe; the override propagates to stage 4
	value := assembler.GetValueAtStage(3)
	value["recipe"] = "circuits"
	if _, err := eng.OnEntityPossiblyUpdated(assembler, world.Observation{Value: value}, 3, demoUser); err != nil {
		return nil, err
	}
	if _, err := eng.TryUpgrade(assembler, 1, "assembler-2", demoUser); err != nil {
		return nil, err
	}

	return proj, nil
}

func newDemoCmd(configPath *string) *cobra.Command {
	var short bool
	var reverse bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build a scripted staged plan and print its timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			splog, err := output.NewSplogWithConfig(cfg.LogFile)
			if err != nil {
				return err
			}
			defer splog.Close()

			proj, err := buildDemoProject(splog)
			if err != nil {
				return err
			}
			proj.SetMaxSnapshots(cfg.MaxSnapshots)

			colors := !cfg.NoColor && output.ColorsEnabled()
			printTimeline(proj, output.TimelineRenderOptions{Colors: colors, Short: short, Reverse: reverse})

			if !isatty.IsTerminal(os.Stdin.Fd()) {
				return nil
			}
			confirmed := false
			prompt := &survey.Confirm{
				Message: "Delete stage 3? Its overrides fold into stage 2.",
			}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				return nil
			}

			proj.TakeSnapshot(project.SnapshotOptions{Label: "delete stage 3"})
			if err := proj.DeleteStage(3); err != nil {
				return err
			}
			splog.Newline()
			printTimeline(proj, output.TimelineRenderOptions{Colors: colors, Short: short, Reverse: reverse})
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "one line per stage")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "highest stage first")
	return cmd
}

func printTimeline(proj *project.Project, opts output.TimelineRenderOptions) {
	renderer := output.NewTimelineRenderer(proj.NumStages(), proj.Content().AllEntities)
	for _, line := range renderer.Render(opts) {
		fmt.Println(line)
	}
}
