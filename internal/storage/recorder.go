package storage

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/skiff-browser/skiff/internal/logging"
)

const (
	visitQueueSize     = 100
	visitFlushInterval = 100 * time.Millisecond
	visitDedupWindow   = 2 * time.Second
)

type visitRecord struct {
	url    string
	title  string
	visits int64
}

// Recorder accepts completed page loads and persists them to the visit
// log in the background, so recording never blocks navigation. Bursts of
// loads of the same page within a short window collapse into one visit.
type Recorder struct {
	queries Querier
	log     zerolog.Logger

	mu     sync.Mutex
	recent map[string]time.Time // canonical URL -> last accepted record

	queue chan visitRecord
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewRecorder starts the background worker that drains the visit queue.
// Call Close to flush pending records on shutdown.
func NewRecorder(ctx context.Context, queries Querier) *Recorder {
	r := &Recorder{
		queries: queries,
		log:     logging.FromContext(ctx).With().Str("component", "visit-recorder").Logger(),
		recent:  make(map[string]time.Time),
		queue:   make(chan visitRecord, visitQueueSize),
		done:    make(chan struct{}),
	}

	r.wg.Add(1)
	go r.worker()

	return r
}

// Record queues one visit for persistence. Empty and unparseable URLs
// are dropped, and a repeat of the same canonical URL inside the dedup
// window is ignored.
func (r *Recorder) Record(ctx context.Context, url, title string) {
	canonical := CanonicalizeVisitURL(url)
	if canonical == "" {
		return
	}

	now := time.Now()

	r.mu.Lock()
	if last, ok := r.recent[canonical]; ok && now.Sub(last) < visitDedupWindow {
		r.mu.Unlock()
		return
	}
	r.recent[canonical] = now
	r.mu.Unlock()

	// Non-blocking send: navigation must not wait on the database.
	select {
	case r.queue <- visitRecord{url: canonical, title: title, visits: 1}:
	default:
		r.log.Warn().Str("url", canonical).Msg("visit queue full, dropping record")
	}
}

// Close shuts down the background worker and drains any pending records.
func (r *Recorder) Close() {
	close(r.done)
	r.wg.Wait()
}

func (r *Recorder) worker() {
	defer r.wg.Done()

	ticker := time.NewTicker(visitFlushInterval)
	defer ticker.Stop()

	pending := make(map[string]visitRecord)

	absorb := func(rec visitRecord) {
		cur := pending[rec.url]
		cur.url = rec.url
		cur.visits += rec.visits
		if rec.title != "" {
			cur.title = rec.title
		}
		pending[rec.url] = cur
	}

	flush := func() {
		if len(pending) == 0 {
			return
		}
		for _, rec := range pending {
			r.persist(rec)
		}
		clear(pending)
		r.pruneRecent()
	}

	drain := func() {
		for {
			select {
			case rec := <-r.queue:
				absorb(rec)
			default:
				return
			}
		}
	}

	for {
		select {
		case rec := <-r.queue:
			absorb(rec)
		case <-ticker.C:
			flush()
		case <-r.done:
			r.log.Debug().Int("remaining", len(r.queue)).Msg("draining visit queue")
			drain()
			flush()
			r.log.Debug().Msg("visit recorder shutdown complete")
			return
		}
	}
}

// persist runs on the worker goroutine with its own context: records
// accepted before shutdown still land even if the caller's context died.
func (r *Recorder) persist(rec visitRecord) {
	title := sql.NullString{String: rec.title, Valid: rec.title != ""}
	if err := r.queries.AddOrUpdateVisit(context.Background(), rec.url, title, rec.visits); err != nil {
		r.log.Warn().Err(err).Str("url", rec.url).Msg("failed to persist visit")
	}
}

func (r *Recorder) pruneRecent() {
	cutoff := time.Now().Add(-visitDedupWindow)
	r.mu.Lock()
	for url, at := range r.recent {
		if at.Before(cutoff) {
			delete(r.recent, url)
		}
	}
	r.mu.Unlock()
}
