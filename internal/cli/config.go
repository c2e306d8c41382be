package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/panelgrid/internal/model"
	"github.com/piwi3910/panelgrid/internal/project"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the config file",
	}
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configExportCommand())
	cmd.AddCommand(c.configImportCommand())
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printConfig(cmd.OutOrStdout(), c.configPath, c.config)
			return nil
		},
	}
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.configPath); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", c.configPath)
			}
			if err := project.SaveAppConfig(c.configPath, model.DefaultAppConfig()); err != nil {
				return fmt.Errorf("write config %s: %w", c.configPath, err)
			}
			printSuccess(cmd.OutOrStdout(), "Wrote default config")
			printFile(cmd.OutOrStdout(), c.configPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func (c *CLI) configExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the configuration to a portable backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := project.ExportConfig(args[0], c.config); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported config")
			printFile(cmd.OutOrStdout(), args[0])
			return nil
		},
	}
}

func (c *CLI) configImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the configuration with a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportConfig(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(c.configPath, backup.Config); err != nil {
				return fmt.Errorf("write config %s: %w", c.configPath, err)
			}
			c.config = backup.Config
			printSuccess(cmd.OutOrStdout(), "Imported config from backup created %s", backup.CreatedAt)
			printFile(cmd.OutOrStdout(), c.configPath)
			return nil
		},
	}
}

func printConfig(w io.Writer, path string, cfg model.AppConfig) {
	printTitle(w, "Config "+path)
	printKeyValue(w, "Container", fmt.Sprintf("%.0f x %.0f", cfg.ContainerWidth, cfg.ContainerHeight))
	printKeyValue(w, "Verbose", strconv.FormatBool(cfg.Verbose))
	printKeyValue(w, "Neighbors", cfg.NeighborFormat)
	printKeyValue(w, "Recent", strconv.Itoa(len(cfg.RecentFixtures)))
	for _, p := range cfg.RecentFixtures {
		printDetail(w, "%s", p)
	}
}
