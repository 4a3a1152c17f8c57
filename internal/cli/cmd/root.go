// Package cmd provides the cobra commands of the skiff CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skiff-browser/skiff/internal/build"
	"github.com/skiff-browser/skiff/internal/cli"
)

var (
	app       *cli.App
	buildInfo build.Info

	flagConfig   string
	flagLogLevel string
	flagBackend  string

	rootCmd = &cobra.Command{
		Use:   "skiff [url]",
		Short: "A keyboard-driven browser shell for the terminal",
		Long: `Skiff - a small keyboard-driven browser shell.

One shell, several engines: pages render in WebKitGTK, an attached
Chromium or the built-in text-mode fetcher, while the terminal shows
page state and takes vim-style input.

Features:
  - Single-view browse shell with address bar, find and prompts
  - webkit, chromium (CDP) and lite backends behind one facade
  - Per-domain zoom, persisted across runs
  - Visit log with search
  - Web inspector with a remembered dock position
  - XDG config with live reload

Run 'skiff browse' (or 'skiff <url>') for the shell, or explore the
subcommands for history, config and log management.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return cli.RunShell(shellOptions(args[0]))
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The shell owns its stores and logging; help-like commands
			// need no app at all.
			switch cmd.Name() {
			case "skiff", "browse", "help", "completion", "gen-docs":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.AppOptions{
				ConfigFile: flagConfig,
				LogLevel:   flagLogLevel,
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "engine backend: webkit, chromium, lite")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the app initialized for the current command.
func GetApp() *cli.App {
	return app
}

// SetBuildInfo records build metadata (called from main before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
	rootCmd.Version = info.Version
}

func shellOptions(url string) cli.ShellOptions {
	return cli.ShellOptions{
		URL:        url,
		Backend:    flagBackend,
		ConfigFile: flagConfig,
		LogLevel:   flagLogLevel,
	}
}
