package cmd

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/go-drift/memlab/pkg/factory"
)

func init() {
	registerCommand(&cobra.Command{
		Use:   "types",
		Short: "List the component types the screen can render",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return writeTypes(c, factory.Default())
		},
	})
}

func writeTypes(c *cobra.Command, r *factory.Registry) error {
	rows := lo.Map(r.Types(), func(t factory.ComponentType, _ int) []string {
		entry, err := r.Lookup(t)
		if err != nil {
			return []string{string(t), "?", ""}
		}
		limit := "-"
		if n := entry.Limit(math.MaxInt); n < math.MaxInt {
			limit = fmt.Sprint(n)
		}
		return []string{string(t), limit, entry.Note()}
	})

	table := newTable(c.OutOrStdout())
	table.Header([]string{"Type", "Max", "Note"})
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	return table.Render()
}
