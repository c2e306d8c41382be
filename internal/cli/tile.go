package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/panelgrid/internal/engine"
	"github.com/piwi3910/panelgrid/internal/model"
)

// tileCommand creates the tile command that prints a uniform tiling.
func (c *CLI) tileCommand() *cobra.Command {
	var (
		rows, cols    int
		width, height float64
		output        string
	)

	cmd := &cobra.Command{
		Use:   "tile",
		Short: "Print a uniform tiling of the unit square",
		Long: `Print a uniform tiling of the unit square as a JSON arrangement.

With --rows and --cols the tiling has exactly that shape. Otherwise the
densest tiling the container allows is used. The output can be fed back into
verify, split, absorb and neighbors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var panels []model.Panel
			if rows > 0 || cols > 0 {
				panels = engine.UniformTiling(rows, cols)
			} else {
				panels = engine.TilingFor(c.container(width, height))
			}
			c.Logger.Info("tiled unit square", "panels", len(panels))

			if err := writeArrangement(cmd.OutOrStdout(), model.Regions(panels), output); err != nil {
				return err
			}
			if output != "" {
				printSuccess(cmd.OutOrStdout(), "Tiling with %d panels", len(panels))
				printFile(cmd.OutOrStdout(), output)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "number of rows")
	cmd.Flags().IntVar(&cols, "cols", 0, "number of columns")
	cmd.Flags().Float64Var(&width, "width", 0, "container width (default: from config)")
	cmd.Flags().Float64Var(&height, "height", 0, "container height (default: from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
