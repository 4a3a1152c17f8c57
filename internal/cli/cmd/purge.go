package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skiff-browser/skiff/internal/cli/styles"
)

var purgeForce bool

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete stored browsing data",
	Long: `Delete everything skiff persisted: the visit log, per-domain zoom
levels and saved shell state such as the inspector dock position.

Config and log files stay. Use --force to skip the confirmation.`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)
	purgeCmd.Flags().BoolVarP(&purgeForce, "force", "f", false, "delete without prompting")
}

func runPurge(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if !purgeForce {
		ok, err := confirm(app.Theme, "Delete all history, zoom levels and saved state?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(app.Theme.Subtle.Render("Kept."))
			return nil
		}
	}

	ctx := app.Ctx()
	queries := app.Store.Queries()
	theme := app.Theme

	var firstErr error
	step := func(what string, err error) {
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			fmt.Printf("%s %s: %v\n", theme.ErrorStyle.Render(styles.IconX), what, err)
			return
		}
		fmt.Printf("%s %s\n", theme.SuccessStyle.Render(styles.IconCheck), what)
	}

	step("visit log", queries.DeleteAllVisits(ctx))
	step("zoom levels", queries.DeleteAllZoomLevels(ctx))
	step("shell state", app.State.Clear(ctx))
	return firstErr
}

// confirmShell runs the yes/no dialog as its own program.
type confirmShell struct {
	dialog styles.ConfirmModel
}

func (m confirmShell) Init() tea.Cmd { return nil }

func (m confirmShell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)
	if m.dialog.Done() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m confirmShell) View() string { return m.dialog.View() }

var _ tea.Model = confirmShell{}

// confirm asks message interactively and reports the choice.
func confirm(theme *styles.Theme, message string) (bool, error) {
	final, err := tea.NewProgram(confirmShell{dialog: styles.NewConfirm(theme, message)}).Run()
	if err != nil {
		return false, fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(confirmShell)
	if !ok {
		return false, fmt.Errorf("unexpected model type")
	}
	return m.dialog.Result(), nil
}
