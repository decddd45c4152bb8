package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/memlab/pkg/display"
)

func init() {
	registerCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No configuration needed to print a version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintf(c.OutOrStdout(), "memlab version %s (built %s, %s)\n", Version, BuildTime, display.Platform())
		},
	})
}
