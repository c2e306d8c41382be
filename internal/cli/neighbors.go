package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/panelgrid/internal/engine"
	"github.com/piwi3910/panelgrid/internal/model"
)

// neighborsCommand creates the neighbors command that exports the
// below/right-of graph of an arrangement.
func (c *CLI) neighborsCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "neighbors [file]",
		Short: "Export the neighbor graph of an arrangement",
		Long: `Export the neighbor graph of an arrangement.

An edge a -> b means panel a lies directly below (solid) or right of (dashed)
panel b and the two share at least part of that edge. The graph is written as
Graphviz DOT or rendered to SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = c.config.NeighborFormat
			}
			return c.runNeighbors(cmd.Context(), cmd.OutOrStdout(), args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg (default: from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runNeighbors(ctx context.Context, w io.Writer, path, format, output string) error {
	if format != "dot" && format != "svg" {
		return fmt.Errorf("unsupported format %q (want dot or svg)", format)
	}

	regions, err := c.loadRegions(ctx, path)
	if err != nil {
		return err
	}

	edges := engine.Neighbors(model.Panels(regions))
	dot := engine.NeighborDOT(regions, edges)
	c.Logger.Info("neighbor graph", "regions", len(regions), "edges", len(edges))

	data := []byte(dot)
	if format == "svg" {
		data, err = engine.RenderNeighborSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render neighbor graph: %w", err)
		}
	}

	if err := writeOutput(w, data, output); err != nil {
		return err
	}
	if output != "" {
		printSuccess(w, "Neighbor graph with %d edges", len(edges))
		printFile(w, output)
	}
	return nil
}
