// Package cli wires the cobra commands of the bpp binary
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Moller21/StagedBlueprintPlanning/internal/config"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "bpp",
		Short: "Staged blueprint planning: versioned entities across build stages",
		Long: `bpp models a blueprint as a sequence of build stages. Each entity exists
from a first stage onward and carries per-stage property overrides; edits
at one stage propagate to every later stage.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFileName, "path to the TOML config file")

	rootCmd.AddCommand(newDemoCmd(&configPath))
	rootCmd.AddCommand(newViewCmd(&configPath))
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bpp %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
