package cmd

import (
	"fmt"
	"io"
	"os"

	"vigil/registry"

	"github.com/spf13/cobra"
)

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest [file]",
		Short: "Compute the broadcast digest of a payload",
		Long: `Computes the digest a payload must carry to pass the broadcast
integrity check. Reads the payload from the given file, or from stdin when
no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload []byte
			var err error
			if len(args) == 1 {
				payload, err = os.ReadFile(args[0])
			} else {
				payload, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("reading payload: %w", err)
			}
			if len(payload) == 0 {
				return fmt.Errorf("payload is empty")
			}

			fmt.Fprintln(cmd.OutOrStdout(), registry.ComputeDigest(payload))
			return nil
		},
	}
}
