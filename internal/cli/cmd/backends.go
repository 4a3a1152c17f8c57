package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skiff-browser/skiff/internal/cli/styles"
	"github.com/skiff-browser/skiff/internal/engine"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available engine backends",
	Long: `List the engine backends compiled into this binary.

The configured one is marked. Pick another with --backend or the
engine.backend config key.`,
	RunE: runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	configured := string(app.Config.Engine.Backend)
	for _, name := range engine.Backends() {
		if name == configured {
			fmt.Printf("  %s %s\n",
				app.Theme.SuccessStyle.Render(styles.IconCheck),
				app.Theme.Highlight.Render(name))
			continue
		}
		fmt.Printf("    %s\n", app.Theme.Normal.Render(name))
	}
	return nil
}
