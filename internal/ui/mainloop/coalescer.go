package mainloop

import "sync"

type coalesced struct {
	fn  func()
	gen uint64
}

// Coalescer merges bursts of same-key loop tasks: when several updates
// for one key arrive before the loop gets to them, only the latest runs.
// Used for high-frequency engine events (progress, scroll position)
// feeding the status line.
//
// post is typically Loop.Post, but any serial scheduler works.
type Coalescer struct {
	mu        sync.Mutex
	entries   map[string]*coalesced
	gen       uint64
	post      func(func())
	destroyed bool
}

func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		entries: make(map[string]*coalesced),
		post:    post,
	}
}

func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.gen++
	entry, scheduled := c.entries[key]
	if scheduled {
		entry.fn = fn
		entry.gen = c.gen
		c.mu.Unlock()
		return
	}
	c.entries[key] = &coalesced{fn: fn, gen: c.gen}
	post := c.post
	c.mu.Unlock()

	post(func() { c.flush(key) })
}

func (c *Coalescer) flush(key string) {
	c.mu.Lock()
	entry := c.entries[key]
	delete(c.entries, key)
	destroyed := c.destroyed
	c.mu.Unlock()

	if destroyed || entry == nil {
		return
	}
	entry.fn()
}

func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.entries = make(map[string]*coalesced)
	c.mu.Unlock()
}
