package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sys/unix"

	"github.com/skiff-browser/skiff/internal/browser"
	"github.com/skiff-browser/skiff/internal/cli/model"
	"github.com/skiff-browser/skiff/internal/cli/styles"
	"github.com/skiff-browser/skiff/internal/config"
	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/logging"
	"github.com/skiff-browser/skiff/internal/messaging"
	"github.com/skiff-browser/skiff/internal/storage"
	"github.com/skiff-browser/skiff/internal/ui/mainloop"
	"github.com/skiff-browser/skiff/internal/urlutil"
)

// ShellOptions configure a browse shell run.
type ShellOptions struct {
	// URL is the page to open on startup, empty for none.
	URL string
	// Backend overrides the configured engine backend.
	Backend string
	// ConfigFile overrides config file discovery.
	ConfigFile string
	// LogLevel overrides the configured log level.
	LogLevel string
}

// RunShell runs the interactive single-tab shell until the user quits.
//
// Two goroutines carry the whole thing: the calling one runs the
// dispatch loop that owns every facade, and a second one runs the
// bubbletea program. They only ever talk through loop.Post in one
// direction and p.Send in the other.
func RunShell(opts ShellOptions) error {
	mgr, cfg, err := loadManagedConfig(opts.ConfigFile)
	if err != nil {
		return err
	}
	if opts.Backend != "" {
		cfg.Engine.Backend = config.Backend(strings.ToLower(opts.Backend))
	}

	level := cfg.Logging.Level
	if env := os.Getenv("SKIFF_LOG_LEVEL"); env != "" {
		level = env
	}
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	logDir := cfg.Logging.Dir
	if logDir == "" {
		if dir, dirErr := config.GetLogDir(); dirErr == nil {
			logDir = dir
		}
	}
	logger, logCleanup, logErr := logging.NewWithFile(logging.Config{
		Level:      logging.ParseLevel(level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
		Dir:        logDir,
	}, logging.FileConfig{Enabled: logDir != "", WriteToStderr: false})
	defer logCleanup()
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "skiff: session log unavailable: %v\n", logErr)
	}
	if logDir != "" {
		logging.SetupCrashHandler(filepath.Join(logDir, "crash"))
	}

	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), logger))
	defer cancel()

	store, st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = st.Close()
		_ = store.Close()
	}()

	recorder := storage.NewRecorder(ctx, store.Queries())
	defer recorder.Close()
	zooms := storage.NewZooms(store.Queries())

	loop := mainloop.New()
	session := browser.NewSession(ctx, loop, sessionOptions(cfg),
		browser.WithStateStore(st),
		browser.WithZoomStore(zooms),
		browser.WithVisitRecorder(recorder),
	)
	tab, err := session.NewTab(ctx)
	if err != nil {
		return fmt.Errorf("create tab: %w", err)
	}
	logger.Debug().Str("backend", tab.Backend()).Msg("Shell starting")

	urlOpts := urlOptions(cfg)
	m := model.NewBrowse(model.BrowseOptions{
		Theme:    styles.NewTheme(),
		Dispatch: loop.Post,
		Tab:      tab,
		Open: func(input string) {
			loop.Post(func() { openInput(tab, input, urlOpts) })
		},
		Incremental: cfg.Search.Incremental,
	})

	// The engines write raw chatter to fd 1 and 2 from C code, which
	// would tear the alternate screen. Hand the program a private copy
	// of the terminal fd, then point both process fds at the logger.
	teaOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if fd, dupErr := unix.Dup(int(os.Stdout.Fd())); dupErr == nil {
		tty := os.NewFile(uintptr(fd), "tty")
		defer tty.Close()
		teaOpts = append(teaOpts, tea.WithOutput(tty))

		capture := logging.NewOutputCapture(logger)
		if capErr := capture.Start(); capErr != nil {
			logger.Warn().Err(capErr).Msg("Output capture unavailable")
		} else {
			defer capture.Stop()
		}
	}
	p := tea.NewProgram(m, teaOpts...)

	if mgr != nil {
		mgr.OnConfigChange(func(next *config.Config) {
			loop.Post(func() {
				log := logging.FromContext(ctx)
				if err := tab.Zoom.Reconfigure(zoomSettings(next)); err != nil {
					log.Warn().Err(err).Msg("Zoom reconfigure failed")
				}
				log.Debug().Msg("Config reloaded")
			})
		})
		if watchErr := mgr.Watch(); watchErr != nil {
			logger.Warn().Err(watchErr).Msg("Config watch unavailable")
		}
	}

	// Wire-up runs as the loop's first task so every hook connects on
	// the loop goroutine. p.Send blocks until the program consumes, so
	// the program must already be running by then; Run below starts
	// pumping the queue only after the tea goroutine is off.
	loop.Post(func() {
		wireShell(p, tab)
		if opts.URL != "" {
			openInput(tab, opts.URL, urlOpts)
		}
	})

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-sigCtx.Done()
		p.Quit()
	}()

	done := make(chan struct{})
	var runErr error
	go func() {
		defer close(done)
		_, runErr = p.Run()
		loop.Post(func() { _ = tab.Close() })
		loop.Quit()
	}()

	loop.Run(ctx)
	<-done

	logger.Debug().Msg("Shell closed")
	if runErr != nil {
		return fmt.Errorf("run shell: %w", runErr)
	}
	return nil
}

// wireShell connects the tab's hooks to the program. Must run on the
// loop goroutine.
func wireShell(p *tea.Program, tab *browser.Tab) {
	push := func() { p.Send(pageState(tab)) }

	events := tab.Events()
	events.LoadStarted.Connect(func(struct{}) { push() })
	events.LoadProgress.Connect(func(int) { push() })
	events.LoadFinished.Connect(func(bool) { push() })
	events.URLChanged.Connect(func(string) { push() })
	events.TitleChanged.Connect(func(string) { push() })

	bridge := tab.Session().Bridge()
	events.NewTabRequested.Connect(func(rawURL string) {
		// Single view: follow the link in place.
		if err := tab.Load(rawURL); err != nil {
			bridge.Warning(err.Error())
		}
	})
	events.RendererTerminated.Connect(func(t engine.Termination) {
		bridge.Error(fmt.Sprintf("Renderer terminated: %s (exit code %d)", t.Status, t.Code))
	})

	tab.LoadStatusChanged.Connect(func(engine.LoadStatus) { push() })
	tab.FullscreenChanged.Connect(func(bool) { push() })
	tab.PinnedChanged.Connect(func(bool) { push() })
	tab.Zoom.FactorChanged.Connect(func(float64) { push() })
	tab.Audio.MutedChanged.Connect(func(bool) { push() })

	tab.Search.MatchChanged.Connect(func(match browser.SearchMatch) {
		p.Send(model.SearchMatchMsg{Current: match.Current, Total: match.Total})
	})
	tab.Search.Cleared.Connect(func(struct{}) {
		p.Send(model.SearchMatchMsg{})
	})

	bridge.Messages.Connect(func(msg messaging.Message) {
		p.Send(model.BridgeMsg{Message: msg})
	})
	bridge.Cleared.Connect(func(struct{}) {
		p.Send(model.BridgeClearedMsg{})
	})
	bridge.Questions.Connect(func(req messaging.AskRequest) {
		req.Question.Completed.Connect(func(struct{}) {
			p.Send(model.QuestionDoneMsg{})
		})
		p.Send(model.QuestionMsg{Question: req.Question})
	})
	bridge.Flush()

	push()
}

func pageState(tab *browser.Tab) model.PageStateMsg {
	return model.PageStateMsg{
		URL:          tab.URL(),
		Title:        tab.Title(),
		Backend:      tab.Backend(),
		Progress:     tab.Progress(),
		Loading:      tab.IsLoading(),
		Status:       tab.LoadStatus(),
		ZoomPercent:  tab.Zoom.Percent(),
		Pinned:       tab.Data.Pinned,
		Muted:        tab.Audio.IsMuted(),
		Fullscreen:   tab.IsFullscreen(),
		CanGoBack:    tab.Hist.CanGoBack(),
		CanGoForward: tab.Hist.CanGoForward(),
	}
}

// openInput resolves address bar input and loads the result. Errors
// land on the bridge so the status line shows them.
func openInput(tab *browser.Tab, input string, opts urlutil.Opts) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}
	bridge := tab.Session().Bridge()
	cwd, _ := os.Getwd()
	u, err := urlutil.FuzzyURL(input, cwd, false, true, false, opts)
	if err != nil {
		bridge.Show(messaging.Message{
			Level:   messaging.LevelError,
			Text:    fmt.Sprintf("Invalid URL %q: %v", input, err),
			Replace: "open",
		})
		return
	}
	if err := tab.Load(u.String()); err != nil {
		bridge.Show(messaging.Message{
			Level:   messaging.LevelError,
			Text:    err.Error(),
			Replace: "open",
		})
	}
}

func sessionOptions(cfg *config.Config) browser.Options {
	eng := engine.DefaultConfig()
	eng.UserAgent = cfg.Engine.UserAgent
	eng.EnableJavaScript = cfg.Content.JavaScript
	eng.AutoLoadImages = cfg.Content.Images
	eng.DefaultFontSize = cfg.Fonts.DefaultSize
	eng.MinimumFontSize = cfg.Fonts.MinimumSize
	eng.Muted = cfg.Content.Mute
	eng.RemoteDebuggingURL = cfg.Engine.RemoteDebuggingURL
	eng.Headless = cfg.Engine.Headless
	if cfg.Engine.FetchTimeout > 0 {
		eng.FetchTimeout = cfg.Engine.FetchTimeout
	}
	if dir, err := config.GetDataDir(); err == nil {
		eng.DataDir = dir
	}
	if dir, err := os.UserCacheDir(); err == nil {
		eng.CacheDir = filepath.Join(dir, "skiff")
	}

	return browser.Options{
		Backend: string(cfg.Engine.Backend),
		Engine:  eng,
		Zoom:    zoomSettings(cfg),
		Search: browser.SearchConfig{
			IgnoreCase:  cfg.Search.IgnoreCase,
			WrapAround:  cfg.Search.WrapAround,
			Incremental: cfg.Search.Incremental,
		},
		FaviconsShow:      cfg.Tabs.FaviconsShow,
		PinnedFrozen:      cfg.Tabs.PinnedFrozen,
		InspectorPosition: cfg.Inspector.DefaultPosition,
	}
}

func zoomSettings(cfg *config.Config) browser.ZoomConfig {
	return browser.ZoomConfig{
		Levels:   cfg.Zoom.Levels,
		Default:  cfg.Zoom.Default,
		TextOnly: cfg.Zoom.TextOnly,
	}
}

func urlOptions(cfg *config.Config) urlutil.Opts {
	return urlutil.Opts{
		AutoSearch:  urlutil.AutoSearch(cfg.URL.AutoSearch),
		Engines:     cfg.URL.SearchEngines,
		OpenBaseURL: cfg.URL.OpenBaseURL,
	}
}
