package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const docsDirPerm = 0o755

var (
	genDocsOutputDir string
	genDocsFormat    string
)

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Generate documentation from CLI commands",
	Long: `Generate documentation (man pages or markdown) from the command
definitions.

Supported formats:
  man       Unix manual pages (groff format)
  markdown  Markdown files

By default, man pages go to ~/.local/share/man/man1/ so 'man skiff'
finds them right away. Run 'mandb' if it does not.

Examples:
  skiff gen-docs                           # Install man pages
  skiff gen-docs --format markdown         # Generate markdown docs
  skiff gen-docs --output ./man            # Generate to a local directory`,
	RunE: runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)

	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "output directory for generated docs")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", "man", "output format: man, markdown")
}

func runGenDocs(_ *cobra.Command, _ []string) error {
	outputDir := genDocsOutputDir
	if outputDir == "" {
		switch genDocsFormat {
		case "man":
			manDir, err := userManDir()
			if err != nil {
				return fmt.Errorf("resolve man directory: %w", err)
			}
			outputDir = manDir
		case "markdown":
			outputDir = "./docs"
		}
	}

	if err := os.MkdirAll(outputDir, docsDirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// No timestamp footer, keeps regeneration diffs clean.
	rootCmd.DisableAutoGenTag = true

	switch genDocsFormat {
	case "man":
		return generateManPages(outputDir)
	case "markdown":
		return generateMarkdown(outputDir)
	default:
		return fmt.Errorf("unsupported format %q (use: man, markdown)", genDocsFormat)
	}
}

// userManDir returns the per-user man page directory, which is not
// application-scoped like the other XDG paths.
func userManDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "man", "man1"), nil
}

func generateManPages(outputDir string) error {
	now := time.Now()
	header := &doc.GenManHeader{
		Title:   "SKIFF",
		Section: "1",
		Source:  "skiff " + buildInfo.Version,
		Manual:  "Skiff Manual",
		Date:    &now,
	}

	if err := doc.GenManTree(rootCmd, header, outputDir); err != nil {
		return fmt.Errorf("generate man pages: %w", err)
	}

	fmt.Printf("Installed man pages to %s\n", outputDir)
	listGenerated(outputDir, ".1")
	return nil
}

func generateMarkdown(outputDir string) error {
	if err := doc.GenMarkdownTree(rootCmd, outputDir); err != nil {
		return fmt.Errorf("generate markdown docs: %w", err)
	}

	fmt.Printf("Generated markdown docs in %s\n", outputDir)
	listGenerated(outputDir, ".md")
	return nil
}

func listGenerated(outputDir, ext string) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ext {
			fmt.Printf("  - %s\n", e.Name())
		}
	}
}
