package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "equals-verifier",
		Short: "Inspect the inputs of equality contract verification",
		Long: `equals-verifier inspects the inputs the verifier package reads when it
checks Equal and Hash methods: source directives and settings.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(*cobra.Command, []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	root.AddCommand(newDirectivesCmd(), newSettingsCmd(), newWarningsCmd())

	return root
}
