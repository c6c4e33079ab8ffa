// Package commands implements the CLI commands for the mason build tool.
package commands

import (
	"context"

	"github.com/masonbuild/mason/internal/app"
	"github.com/masonbuild/mason/internal/build"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for mason.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mason [targets...] [key=value...]",
		Short:         "A workspace build orchestrator",
		Long:          "mason runs declared build, test and release targets across the units of a workspace, strictly in order and failing fast.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.ArbitraryArgs,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (default: discover mason.work.yaml or mason.yaml upward)")
	rootCmd.PersistentFlags().Bool("tui", false, "Render run progress instead of raw step output")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	// Bare invocation behaves like "run": no targets means the declared
	// default target.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.app.Run(cmd.Context(), args, c.options(cmd))
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newTargetsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) options(cmd *cobra.Command) app.RunOptions {
	configPath, _ := cmd.Flags().GetString("config")
	tui, _ := cmd.Flags().GetBool("tui")
	return app.RunOptions{
		ConfigPath: configPath,
		TUI:        tui,
	}
}
