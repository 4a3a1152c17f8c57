package cmd

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/skiff-browser/skiff/internal/cli/styles"
	"github.com/skiff-browser/skiff/internal/storage"
)

var (
	historyJSON bool
	historyMax  int
)

const defaultHistoryMax = 50

var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "List and search visited pages",
	Long: `List the visit log.

With a query, matches URLs and titles and orders by visit count.
Without one, shows the most recent visits.

Examples:
  skiff history                  # Recent visits
  skiff history golang           # Visits matching "golang"
  skiff history --json --max 10  # Machine-readable output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum entries to show")
}

func runHistory(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx := app.Ctx()
	queries := app.Store.Queries()

	var (
		visits []storage.Visit
		err    error
	)
	if len(args) > 0 {
		pattern := sql.NullString{String: "%" + args[0] + "%", Valid: true}
		visits, err = queries.SearchVisits(ctx, pattern, pattern, int64(historyMax))
	} else {
		visits, err = queries.GetRecentVisits(ctx, int64(historyMax))
	}
	if err != nil {
		return fmt.Errorf("load visits: %w", err)
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(visitsJSON(visits))
	}

	if len(visits) == 0 {
		fmt.Println(app.Theme.Subtle.Render("No visits recorded. Run 'skiff browse' to make some."))
		return nil
	}

	for i := range visits {
		fmt.Println(visitLine(app.Theme, &visits[i]))
	}
	return nil
}

// visitEntry is the JSON shape of one visit.
type visitEntry struct {
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	VisitCount  int64     `json:"visit_count"`
	LastVisited time.Time `json:"last_visited"`
}

func visitsJSON(visits []storage.Visit) []visitEntry {
	entries := make([]visitEntry, 0, len(visits))
	for i := range visits {
		entries = append(entries, visitEntry{
			URL:         visits[i].Url,
			Title:       visits[i].Title.String,
			VisitCount:  visits[i].VisitCount,
			LastVisited: visits[i].LastVisited,
		})
	}
	return entries
}

func visitLine(theme *styles.Theme, v *storage.Visit) string {
	title := strings.TrimSpace(v.Title.String)
	if title == "" {
		title = v.Url
	}
	return fmt.Sprintf("  %s %s\n    %s %s",
		theme.VisitBadge(v.VisitCount),
		theme.Normal.Render(title),
		theme.Subtle.Render(v.Url),
		theme.MutedBadge(styles.RelativeTime(v.LastVisited)),
	)
}

var historyClearYes bool

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the whole visit log",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	historyClearCmd.Flags().BoolVarP(&historyClearYes, "yes", "y", false, "skip confirmation prompt")
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if !historyClearYes {
		ok, err := confirm(app.Theme, "Delete the whole visit log?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(app.Theme.Subtle.Render("Kept."))
			return nil
		}
	}

	if err := app.Store.Queries().DeleteAllVisits(app.Ctx()); err != nil {
		return fmt.Errorf("delete visits: %w", err)
	}
	fmt.Printf("%s Visit log cleared\n", app.Theme.SuccessStyle.Render(styles.IconCheck))
	return nil
}
