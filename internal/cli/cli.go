// Package cli implements the panelgrid command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/panelgrid/internal/engine"
	"github.com/piwi3910/panelgrid/internal/grid"
	"github.com/piwi3910/panelgrid/internal/importer"
	"github.com/piwi3910/panelgrid/internal/model"
	"github.com/piwi3910/panelgrid/internal/project"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for the root command and display.
	appName = "panelgrid"

	// recentFixtureLimit is the number of fixtures remembered in the config.
	recentFixtureLimit = 10
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     model.AppConfig
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: model.DefaultAppConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the configuration loaded for the current command.
func (c *CLI) Config() model.AppConfig {
	return c.config
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Panelgrid partitions the unit square into split and absorbable panels",
		Long: `Panelgrid is a diagnostic tool for panel arrangements: non-overlapping
rectangles that tile the unit square on a 1000-line grid. It computes container
capacity, builds uniform tilings, and applies split and absorb steps to
arrangements imported from CSV, Excel, DXF, JSON or TOML fixtures.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", project.DefaultConfigPath(), "config file (TOML or JSON)")

	// Register all subcommands
	root.AddCommand(c.capacityCommand())
	root.AddCommand(c.tileCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.splitCommand())
	root.AddCommand(c.absorbCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.neighborsCommand())
	root.AddCommand(c.configCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

func (c *CLI) loadConfig() error {
	cfg, err := project.LoadAppConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", c.configPath, err)
	}
	c.config = cfg
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}
	c.Logger.Debug("loaded config", "path", c.configPath,
		"container", fmt.Sprintf("%.0fx%.0f", cfg.ContainerWidth, cfg.ContainerHeight))
	return nil
}

// rememberFixture records path in the recent fixture list. Failing to save
// the config never fails the command.
func (c *CLI) rememberFixture(path string) {
	c.config.AddRecentFixture(path, recentFixtureLimit)
	if err := project.SaveAppConfig(c.configPath, c.config); err != nil {
		c.Logger.Debug("could not save recent fixtures", "err", err)
	}
}

// container returns the size given on the command line, falling back to the
// configured container for any axis left at zero.
func (c *CLI) container(width, height float64) grid.Size {
	size := c.config.Container()
	if width > 0 {
		size.Width = width
	}
	if height > 0 {
		size.Height = height
	}
	return size
}

// =============================================================================
// Arrangement Loading
// =============================================================================

// loadRegions imports a fixture and fails on any row error. Importer warnings
// are logged.
func (c *CLI) loadRegions(ctx context.Context, path string) ([]model.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}

	prog := newProgress(c.Logger)
	result := importer.ImportFile(path)
	for _, w := range result.Warnings {
		c.Logger.Warn(w, "file", path)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			c.Logger.Error(e, "file", path)
		}
		return nil, fmt.Errorf("import %s: %d error(s), first: %s", path, len(result.Errors), result.Errors[0])
	}
	prog.done(fmt.Sprintf("Imported %d regions from %s", len(result.Regions), path))

	c.rememberFixture(path)
	return result.Regions, nil
}

// parseIndex parses a zero-based panel index argument.
func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid panel index %q: %w", arg, err)
	}
	return i, nil
}

// writeArrangement prints the arrangement as a JSON document, or writes it to
// output when set.
func writeArrangement(w io.Writer, regions []model.Region, output string) error {
	data, err := importer.MarshalDocument(regions)
	if err != nil {
		return fmt.Errorf("encode arrangement: %w", err)
	}
	return writeOutput(w, data, output)
}

func writeOutput(w io.Writer, data []byte, output string) error {
	if output == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	return nil
}

// verifyRegions checks that the imported regions tile the unit square.
func verifyRegions(regions []model.Region) error {
	return engine.VerifyFullCoverage(model.Panels(regions))
}
