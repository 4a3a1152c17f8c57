// Package cdp implements the chromium backend by driving a Chrome or
// Chromium instance over the DevTools protocol. The factory spawns a
// headless browser by default and can attach to a running one through
// the remote debugging URL.
package cdp

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"

	"github.com/skiff-browser/skiff/internal/engine"
)

// BackendName is the configuration value selecting this backend.
const BackendName = "chromium"

func init() {
	engine.Register(&factory{})
}

type factory struct {
	mu        sync.Mutex
	allocCtx  context.Context
	allocStop context.CancelFunc
}

func (f *factory) Name() string    { return BackendName }
func (f *factory) Available() bool { return true }

// allocator lazily builds the shared exec or remote allocator all views
// hang off.
func (f *factory) allocator(cfg engine.Config) context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.allocCtx != nil {
		return f.allocCtx
	}

	if cfg.RemoteDebuggingURL != "" {
		f.allocCtx, f.allocStop = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteDebuggingURL)
		return f.allocCtx
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", cfg.Headless),
		chromedp.Flag("mute-audio", cfg.Muted),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	if cfg.DataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.DataDir))
	}
	f.allocCtx, f.allocStop = chromedp.NewExecAllocator(context.Background(), opts...)
	return f.allocCtx
}

func (f *factory) NewView(ctx context.Context, opts engine.Options) (engine.View, error) {
	v, err := newView(ctx, f.allocator(opts.Config), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open chromium tab: %w", err)
	}
	return v, nil
}
