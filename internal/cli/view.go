package cli

import (
	"github.com/spf13/cobra"

	"github.com/Moller21/StagedBlueprintPlanning/internal/config"
	"github.com/Moller21/StagedBlueprintPlanning/internal/output"
	"github.com/Moller21/StagedBlueprintPlanning/internal/tui"
)

func newViewCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive stage viewer on the demo plan",
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
			splog.SetQuiet(true)

			proj, err := buildDemoProject(splog)
			if err != nil {
				return err
			}
			return tui.Run(proj.Content(), proj.NumStages())
		},
	}
}
