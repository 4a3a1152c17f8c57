package cmd

import (
	"github.com/spf13/cobra"

	"github.com/skiff-browser/skiff/internal/cli"
)

var browseCmd = &cobra.Command{
	Use:   "browse [url]",
	Short: "Open the interactive browse shell",
	Long: `Open the terminal browse shell.

The argument is anything the address bar accepts: a URL, a local
path, a search term or an engine keyword query like "gh cobra".
Without one the shell starts on a blank page.

Examples:
  skiff browse                        # Start blank
  skiff browse example.com            # Open a site
  skiff browse "w lateen sail"        # Search wikipedia
  skiff browse --backend lite example.com`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command, args []string) error {
	url := ""
	if len(args) > 0 {
		url = args[0]
	}
	return cli.RunShell(shellOptions(url))
}
