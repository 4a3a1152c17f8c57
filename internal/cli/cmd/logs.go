package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/skiff-browser/skiff/internal/cli/styles"
	"github.com/skiff-browser/skiff/internal/config"
	"github.com/skiff-browser/skiff/internal/logging"
)

var (
	logsFollow bool
	logsLines  int
)

const defaultLogsLines = 50

var logsCmd = &cobra.Command{
	Use:   "logs [session]",
	Short: "View session logs",
	Long: `View skiff logs by session.

Without arguments, lists available sessions. With a session ID (or a
partial match), shows that session's log.

Examples:
  skiff logs                  # List sessions
  skiff logs a7b3             # View the session ending in a7b3
  skiff logs -f a7b3          # Follow in real time
  skiff logs -n 100 a7b3      # Last 100 lines`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output in real time")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", defaultLogsLines, "number of lines to show")
}

// SessionInfo describes one session log file.
type SessionInfo struct {
	SessionID string
	ShortID   string
	Path      string
	Size      int64
	ModTime   time.Time
}

func runLogs(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	logDir := sessionLogDir(app.Config)

	if len(args) == 0 {
		return listSessions(logDir, app.Theme)
	}

	session, err := findSession(logDir, args[0])
	if err != nil {
		return err
	}

	if logsFollow {
		return tailSession(session.Path, app.Theme)
	}
	return showSession(session.Path, logsLines, app.Theme)
}

// sessionLogDir resolves where session logs live, honoring the
// logging.dir override.
func sessionLogDir(cfg *config.Config) string {
	if cfg != nil && cfg.Logging.Dir != "" {
		return cfg.Logging.Dir
	}
	dir, err := config.GetLogDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "state", "skiff", "logs")
	}
	return dir
}

func listSessions(logDir string, theme *styles.Theme) error {
	sessions, err := getSessions(logDir)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println(theme.Subtle.Render("No sessions found. Run 'skiff browse' to create logs."))
		return nil
	}

	fmt.Println(theme.Title.Render("Sessions (newest first):"))
	fmt.Println()

	for i := range sessions {
		s := &sessions[i]
		fmt.Printf("  %s  %s  %s\n",
			theme.Highlight.Render(s.ShortID),
			theme.Subtle.Render(s.ModTime.Format("2006-01-02 15:04:05")),
			theme.Subtle.Render(fmt.Sprintf("(%s)", formatSize(s.Size))),
		)
	}

	fmt.Println()
	fmt.Println(theme.Subtle.Render("Use 'skiff logs <id>' to view a session"))
	return nil
}

// getSessions returns all session log files, newest first.
func getSessions(logDir string) ([]SessionInfo, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log directory: %w", err)
	}

	var sessions []SessionInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		sessionID, ok := logging.ParseSessionFilename(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sessions = append(sessions, SessionInfo{
			SessionID: sessionID,
			ShortID:   logging.ShortSessionID(sessionID),
			Path:      filepath.Join(logDir, entry.Name()),
			Size:      info.Size(),
			ModTime:   info.ModTime(),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ModTime.After(sessions[j].ModTime)
	})
	return sessions, nil
}

// findSession finds a session by short ID or partial match.
func findSession(logDir, query string) (*SessionInfo, error) {
	sessions, err := getSessions(logDir)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("no sessions found")
	}

	normalized := strings.ToLower(strings.TrimSpace(query))

	for i := range sessions {
		if strings.EqualFold(sessions[i].ShortID, normalized) {
			return &sessions[i], nil
		}
	}

	var matches []SessionInfo
	for i := range sessions {
		if strings.Contains(strings.ToLower(sessions[i].SessionID), normalized) {
			matches = append(matches, sessions[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no session matching '%s' found", query)
	case 1:
		return &matches[0], nil
	default:
		ids := make([]string, 0, len(matches))
		for i := range matches {
			ids = append(ids, matches[i].ShortID)
		}
		return nil, fmt.Errorf("multiple sessions match '%s': %s", query, strings.Join(ids, ", "))
	}
}

// showSession prints the last N lines of a session log.
func showSession(logPath string, lines int, theme *styles.Theme) (retErr error) {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close log file: %w", closeErr)
		}
	}()

	var allLines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		allLines = append(allLines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	start := 0
	if len(allLines) > lines {
		start = len(allLines) - lines
	}
	for _, line := range allLines[start:] {
		fmt.Println(colorizeLogLine(line, theme))
	}
	return nil
}

// tailSession follows a session log in real time.
func tailSession(logPath string, theme *styles.Theme) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, _ = file.Seek(0, io.SeekEnd)

	fmt.Println(theme.Subtle.Render("Following logs... (Ctrl+C to stop)"))
	fmt.Println()

	reader := bufio.NewReader(file)
	pending := ""
	for {
		chunk, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				pending += chunk
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("read log file: %w", err)
		}

		pending += chunk
		for {
			idx := strings.IndexByte(pending, '\n')
			if idx == -1 {
				break
			}
			fmt.Println(colorizeLogLine(pending[:idx], theme))
			pending = pending[idx+1:]
		}
	}
}

// logEntry is a parsed zerolog JSON line.
type logEntry struct {
	Level   string `json:"level"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

func colorizeLogLine(line string, theme *styles.Theme) string {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err == nil && entry.Level != "" {
		return formatJSONLogLine(entry, theme)
	}

	switch {
	case containsAny(line, "ERR", "error"):
		return theme.ErrorStyle.Render(line)
	case containsAny(line, "WRN", "warn"):
		return theme.WarningStyle.Render(line)
	case containsAny(line, "DBG", "debug"):
		return theme.Subtle.Render(line)
	default:
		return line
	}
}

func formatJSONLogLine(entry logEntry, theme *styles.Theme) string {
	timeStr := entry.Time
	if t, err := time.Parse(time.RFC3339, entry.Time); err == nil {
		timeStr = t.Format("15:04:05")
	}

	var levelStr string
	switch entry.Level {
	case "error":
		levelStr = theme.ErrorStyle.Render("ERR")
	case "warn":
		levelStr = theme.WarningStyle.Render("WRN")
	case "info":
		levelStr = theme.Highlight.Render("INF")
	case "debug":
		levelStr = theme.Subtle.Render("DBG")
	case "trace":
		levelStr = theme.Subtle.Render("TRC")
	default:
		levelStr = entry.Level
	}

	return fmt.Sprintf("%s %s %s", theme.Subtle.Render(timeStr), levelStr, entry.Message)
}

func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, substr := range substrs {
		if strings.Contains(lower, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMG"[exp])
}

var (
	logsClearAll  bool
	logsClearDays int
)

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove old session logs",
	Long: `Remove old session log files.

By default, removes sessions older than --days. Use --all to remove
every session log.`,
	RunE: runLogsClear,
}

func init() {
	logsCmd.AddCommand(logsClearCmd)

	logsClearCmd.Flags().BoolVar(&logsClearAll, "all", false, "remove all session logs")
	logsClearCmd.Flags().IntVar(&logsClearDays, "days", 7, "remove sessions older than this many days")
}

func runLogsClear(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	theme := app.Theme
	sessions, err := getSessions(sessionLogDir(app.Config))
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println(theme.Subtle.Render("No logs to clear"))
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -logsClearDays)
	removed := 0
	for i := range sessions {
		s := &sessions[i]
		if !logsClearAll && !s.ModTime.Before(cutoff) {
			continue
		}

		if err := os.Remove(s.Path); err != nil {
			fmt.Printf("%s %s: %v\n", theme.ErrorStyle.Render(styles.IconX), s.ShortID, err)
			continue
		}
		fmt.Printf("%s %s (%s)\n", theme.SuccessStyle.Render(styles.IconCheck), s.ShortID, formatSize(s.Size))
		removed++
	}

	if removed == 0 {
		fmt.Println(theme.Subtle.Render(fmt.Sprintf("No sessions older than %d days", logsClearDays)))
		return nil
	}
	fmt.Printf("\n%s\n", theme.SuccessStyle.Render(fmt.Sprintf("Cleared %d session(s)", removed)))
	return nil
}
