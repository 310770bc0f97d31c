package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/spf13/cobra"
)

func newInfoCommand(c *cli) *cobra.Command {
	var flags surfaceFlags
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the counts and index width a surface would generate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			requested := flags.params(cmd, c.cfg.Params())
			p := requested.Clamped()
			vertices := p.VertexCount()
			indices := geometry.IndexCount(p.Kind, p.Rings, p.Slices)
			format := p.IndexFormat()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "surface\t%s\n", p)
			if requested != p {
				fmt.Fprintf(tw, "requested\t%s\n", requested)
			}
			fmt.Fprintf(tw, "vertices\t%d\n", vertices)
			fmt.Fprintf(tw, "triangles\t%d\n", indices/3)
			fmt.Fprintf(tw, "indices\t%d (%s)\n", indices, format)
			fmt.Fprintf(tw, "vertex bytes\t%d\n", 2*3*4*vertices)
			fmt.Fprintf(tw, "index bytes\t%d\n", indices*format.Size())
			return tw.Flush()
		},
	}
	flags.register(cmd)
	return cmd
}
