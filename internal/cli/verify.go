package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/panelgrid/internal/engine"
)

// verifyCommand creates the verify command that checks a fixture tiles the
// unit square.
func (c *CLI) verifyCommand() *cobra.Command {
	var width, height float64

	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Check that an arrangement covers the unit square exactly",
		Long: `Check that an arrangement covers the unit square exactly.

The fixture is imported (CSV, Excel, DXF, JSON or TOML), then checked for
overlapping panels and for a total area of exactly one. The panels that can
still be split in the container are reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVerify(cmd.Context(), cmd.OutOrStdout(), args[0], width, height)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "container width (default: from config)")
	cmd.Flags().Float64Var(&height, "height", 0, "container height (default: from config)")

	return cmd
}

func (c *CLI) runVerify(ctx context.Context, w io.Writer, path string, width, height float64) error {
	regions, err := c.loadRegions(ctx, path)
	if err != nil {
		return err
	}

	if err := verifyRegions(regions); err != nil {
		var coverageErr *engine.CoverageError
		if errors.As(err, &coverageErr) {
			printError(w, "Arrangement does not tile the unit square (%s check)", coverageErr.Kind)
			for i, r := range regions {
				printDetail(w, "[%d] %s", i, r)
			}
		}
		return fmt.Errorf("verify %s: %w", path, err)
	}

	printSuccess(w, "%d panels cover the unit square", len(regions))
	for i, r := range regions {
		printDetail(w, "[%d] %s", i, r)
	}

	size := c.container(width, height)
	arr := engine.New(size)
	splittable := 0
	for _, r := range regions {
		if arr.CanSplit(r.Panel) {
			splittable++
		}
	}
	if splittable == 0 {
		printWarning(w, "No panel can be split in a %.0f x %.0f container", size.Width, size.Height)
	} else {
		printInfo(w, "%d of %d panels can be split in a %.0f x %.0f container", splittable, len(regions), size.Width, size.Height)
	}
	return nil
}
