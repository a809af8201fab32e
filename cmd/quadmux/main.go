// Package main is the entry point for quadmux.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/quadmux/internal/app"
	"github.com/dshills/quadmux/internal/config"
	"github.com/dshills/quadmux/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
	flagScript   string
	flagNoWatch  bool
)

// Flags for config
var flagFormat string

var rootCmd = &cobra.Command{
	Use:   "quadmux",
	Short: "Four-window text console multiplexer",
	Long: `quadmux splits an 80x25 text grid into four windows and routes typed
input to the focused one. F1..F4 switch focus, Enter starts a new line and
Ctrl+Q quits.

Examples:
  quadmux                              # Start interactively
  quadmux --config quadmux.toml        # Use a config file (reloaded on change)
  quadmux dump --script demo.lua       # Replay a script and print the grid
  quadmux config --format yaml         # Print the effective configuration`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Replay the input script headlessly and print the grid as text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.New(options(false))
		if err != nil {
			return err
		}
		defer application.Close()

		return application.Dump(cmd.Context(), cmd.OutOrStdout())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := config.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		application, err := app.New(options(false))
		if err != nil {
			return err
		}
		defer application.Close()

		data, err := application.Config().Encode(format)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quadmux %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to configuration file (.toml, .yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagLogLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVarP(&flagScript, "script", "s", "", "Lua input script replayed at startup")
	rootCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload the config file when it changes")

	configCmd.Flags().StringVarP(&flagFormat, "format", "f", "toml", "Output format (toml/yaml)")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// options builds application options from flags. Headless commands log to
// stderr; the interactive UI owns the terminal, so it only logs to a file.
func options(interactive bool) app.Options {
	opts := app.Options{
		ConfigPath: flagConfig,
		LogLevel:   flagLogLevel,
		LogFile:    flagLogFile,
		ScriptPath: flagScript,
		Watch:      interactive && !flagNoWatch,
	}
	if !interactive {
		opts.LogOutput = os.Stderr
	}
	return opts
}

func runInteractive(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(options(true))
	if err != nil {
		return err
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := application.SetBackend(term); err != nil {
		return err
	}

	if err := application.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	return nil
}
