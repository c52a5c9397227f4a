// Package cmd provides the command-line interface for Vigil. The CLI is a
// thin collaborator over the monitoring core: it drives registry operations,
// renders reports and exports the event log, but holds no state of its own.
package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var noColor bool

// NewRootCmd builds the vigil root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vigil",
		Short: "Emergency-response monitoring core",
		Long: `Vigil tracks people, power-grid failures and short-range peer devices
during an emergency-response operation and broadcasts integrity-checked
state snapshots to connected devices.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized output")

	root.AddCommand(newDemoCmd())
	root.AddCommand(newDigestCmd())
	root.AddCommand(newMetricsCmd())

	return root
}
