package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/panelgrid/internal/grid"
)

// capacityCommand creates the capacity command for inspecting container limits.
func (c *CLI) capacityCommand() *cobra.Command {
	var width, height float64

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show how many rows and columns a container can hold",
		Long: `Show how many rows and columns a container can hold.

Every cell must be at least 320 units on each axis. The dominant axis of the
container allows up to 3 sections and the minor axis up to 2; a square
container counts as landscape. Sizes left at zero come from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size := c.container(width, height)
			c.Logger.Debug("capacity", "width", size.Width, "height", size.Height)
			runCapacity(cmd.OutOrStdout(), size)
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "container width (default: from config)")
	cmd.Flags().Float64Var(&height, "height", 0, "container height (default: from config)")

	return cmd
}

func runCapacity(w io.Writer, size grid.Size) {
	orientation := "landscape"
	if size.IsPortrait() {
		orientation = "portrait"
	}

	printTitle(w, fmt.Sprintf("Container %.0f x %.0f (%s)", size.Width, size.Height, orientation))
	printKeyValue(w, "Rows", strconv.Itoa(grid.MaxRows(size)))
	printKeyValue(w, "Columns", strconv.Itoa(grid.MaxColumns(size)))
	printKeyValue(w, "Min width", fmt.Sprintf("%.3f", grid.SmallestWidthFactor(size.Width)))
	printKeyValue(w, "Min height", fmt.Sprintf("%.3f", grid.SmallestHeightFactor(size.Height)))
}
