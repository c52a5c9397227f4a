package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// dumpMetrics writes every gathered metric family in the prometheus text
// exposition format.
func dumpMetrics(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Dump collected monitoring metrics",
		Long: `Writes all registered counters in the prometheus text exposition
format. Counters reflect this process only; combine with demo --show-metrics
to see a populated set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpMetrics(cmd.OutOrStdout())
		},
	}
}
