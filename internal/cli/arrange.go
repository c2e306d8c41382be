package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/panelgrid/internal/engine"
	"github.com/piwi3910/panelgrid/internal/grid"
)

// splitCommand creates the split command.
func (c *CLI) splitCommand() *cobra.Command {
	var (
		width, height float64
		output        string
	)

	cmd := &cobra.Command{
		Use:   "split [file] [index]",
		Short: "Split one panel of an arrangement into two",
		Long: `Split one panel of an arrangement into two.

Tall panels are split into top and bottom halves, all others into left and
right halves. The split is refused when a half would be smaller than the
minimum panel size of the container. Indices are zero-based.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSteps(cmd.Context(), cmd.OutOrStdout(), args[0],
				[]string{"split:" + args[1]}, c.container(width, height), output)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "container width (default: from config)")
	cmd.Flags().Float64Var(&height, "height", 0, "container height (default: from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// absorbCommand creates the absorb command.
func (c *CLI) absorbCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "absorb [file] [i] [j]",
		Short: "Merge panel j into panel i",
		Long: `Merge panel j into panel i.

The panels must share an origin coordinate and a full edge, and panel j must
be at least as wide (vertical merge) or as tall (horizontal merge) as panel i.
Whatever part of panel j is not absorbed stays behind as a remainder; an empty
remainder is dropped. Indices are zero-based.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSteps(cmd.Context(), cmd.OutOrStdout(), args[0],
				[]string{"absorb:" + args[1] + ":" + args[2]}, c.config.Container(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// applyCommand creates the apply command that runs a sequence of steps.
func (c *CLI) applyCommand() *cobra.Command {
	var (
		width, height float64
		output        string
	)

	cmd := &cobra.Command{
		Use:   "apply [file] [step...]",
		Short: "Apply a sequence of split, absorb, undo and redo steps",
		Long: `Apply a sequence of split, absorb, undo and redo steps.

Steps are written as split:I, absorb:I:J, undo and redo, with zero-based
indices into the arrangement as it stands before the step. Processing stops
at the first step that fails.

Example:
  panelgrid apply full.json split:0 split:1 absorb:1:2 undo`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSteps(cmd.Context(), cmd.OutOrStdout(), args[0], args[1:],
				c.container(width, height), output)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "container width (default: from config)")
	cmd.Flags().Float64Var(&height, "height", 0, "container height (default: from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runSteps(ctx context.Context, w io.Writer, path string, steps []string, size grid.Size, output string) error {
	regions, err := c.loadRegions(ctx, path)
	if err != nil {
		return err
	}

	session := engine.NewSession(size, regions)
	for n, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := applyStep(session, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", n+1, step, err)
		}
		c.Logger.Info("applied step", "step", step, "panels", len(session.Regions()))
	}

	result := session.Regions()
	if err := writeArrangement(w, result, output); err != nil {
		return err
	}
	if output != "" {
		printSuccess(w, "Arrangement with %d panels", len(result))
		printFile(w, output)
	}
	return nil
}

// applyStep parses and runs one step against the session.
func applyStep(s *engine.Session, step string) error {
	fields := strings.Split(step, ":")
	switch {
	case fields[0] == "split" && len(fields) == 2:
		i, err := parseIndex(fields[1])
		if err != nil {
			return err
		}
		return s.Split(i)

	case fields[0] == "absorb" && len(fields) == 3:
		i, err := parseIndex(fields[1])
		if err != nil {
			return err
		}
		j, err := parseIndex(fields[2])
		if err != nil {
			return err
		}
		return s.Absorb(i, j)

	case step == "undo":
		if _, ok := s.Undo(); !ok {
			return fmt.Errorf("nothing to undo")
		}
		return nil

	case step == "redo":
		if _, ok := s.Redo(); !ok {
			return fmt.Errorf("nothing to redo")
		}
		return nil

	default:
		return fmt.Errorf("unknown step %q (want split:I, absorb:I:J, undo or redo)", step)
	}
}
