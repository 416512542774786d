package application

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"onepage/internal/domain"
	"onepage/internal/ports"
)

// CachePrefix namespaces media cache keys by source URL.
const CachePrefix = "media:"

// Loader runs the deferred media pipeline: cache lookup, asynchronous
// fetch, data-URI encoding, durable persist, then the fade reveal.
// Emoji placeholders skip the network entirely and only get the timed
// reveal. Failures are logged and leave the element in its pre-load
// state; there is no retry.
type Loader struct {
	cache ports.MediaCache
	fetch ports.Fetcher
	fade  time.Duration
	log   zerolog.Logger

	// sleep is swapped in tests; the default blocks for the fade
	// duration inside the caller's goroutine.
	sleep func(time.Duration)

	// notify fires after every visible state change so the host can
	// re-render. May be nil.
	notify func()
}

// NewLoader wires a loader over the given cache and fetcher.
func NewLoader(cache ports.MediaCache, fetch ports.Fetcher, fade time.Duration, log zerolog.Logger) *Loader {
	return &Loader{
		cache: cache,
		fetch: fetch,
		fade:  fade,
		log:   log,
		sleep: time.Sleep,
	}
}

// Notify registers a callback invoked after each visible state change.
func (l *Loader) Notify(fn func()) { l.notify = fn }

// CacheKey returns the durable key for a source URL.
func CacheKey(source string) string { return CachePrefix + source }

// Load runs the pipeline for one media element. Blocking; callers run
// it from their own goroutine (a tea.Cmd in the TUI).
func (l *Loader) Load(ctx context.Context, m *domain.Media) error {
	if m.Kind == domain.MediaEmoji {
		l.sleep(l.fade)
		m.State = domain.MediaLoaded
		l.changed()
		return nil
	}

	key := CacheKey(m.Source)
	cached, ok, err := l.cache.Get(key)
	if err != nil {
		l.log.Error().Err(err).Str("source", m.Source).Msg("cache lookup failed")
		return fmt.Errorf("%w: %v", ErrCacheFailed, err)
	}
	if ok {
		l.reveal(m, cached)
		return nil
	}

	data, contentType, err := l.fetch.Fetch(ctx, m.Source)
	if err != nil {
		l.log.Error().Err(err).Str("source", m.Source).Msg("media fetch failed")
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	m.State = domain.MediaLoading
	l.changed()
	l.sleep(l.fade)

	uri := DataURI(contentType, data)
	if err := l.cache.Put(key, uri); err != nil {
		// Reveal anyway from the fetched bytes; only the durable copy
		// is lost.
		l.log.Error().Err(err).Str("key", key).Msg("cache persist failed")
	}
	m.Live = uri
	m.State = domain.MediaLoaded
	l.changed()
	return nil
}

// reveal applies the loading state, waits out the fade, then rebinds
// the live source and marks the element loaded.
func (l *Loader) reveal(m *domain.Media, uri string) {
	m.State = domain.MediaLoading
	l.changed()
	l.sleep(l.fade)
	m.Live = uri
	m.State = domain.MediaLoaded
	l.changed()
}

func (l *Loader) changed() {
	if l.notify != nil {
		l.notify()
	}
}

// DataURI encodes a payload as a self-contained data URI suitable for
// direct source assignment and for storage as a string.
func DataURI(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}
