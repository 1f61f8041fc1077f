package scrape

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scoutlabs/nichepulse/internal/cache"
)

// Gateway wraps the external scraping tool behind a cache-aware, typed
// API. Every operation enforces a wall-clock budget on the subprocess
// and normalizes output to the uniform schema.
type Gateway struct {
	runner  Runner
	cache   *cache.Cache
	timeout time.Duration
	calls   atomic.Int64
}

// NewGateway builds a gateway over the given runner and shared cache.
func NewGateway(runner Runner, c *cache.Cache, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gateway{runner: runner, cache: c, timeout: timeout}
}

// CallCount reports how many subprocess invocations have happened.
func (g *Gateway) CallCount() int64 {
	return g.calls.Load()
}

// Search runs a flat search scrape for up to maxResults items of the
// requested type (TypeAll, TypeVideo, TypeChannel).
func (g *Gateway) Search(ctx context.Context, query string, maxResults int, typeFilter string) (*SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 25
	}
	key := cache.Key("ytdlp_search", map[string]interface{}{
		"query": query,
		"max":   maxResults,
		"type":  typeFilter,
	})
	if v, ok := g.cache.Get(key); ok {
		return v.(*SearchResult), nil
	}

	target := fmt.Sprintf("ytsearch%d:%s", maxResults, query)
	records, err := g.invoke(ctx, "--dump-json", "--no-download", "--flat-playlist", target)
	if err != nil {
		return nil, err
	}

	result := normalizeSearch(records, typeFilter)
	g.cache.Set(key, result)
	return result, nil
}

// SearchVideos is a convenience view over Search returning video items.
func (g *Gateway) SearchVideos(ctx context.Context, query string, n int) ([]Item, error) {
	result, err := g.Search(ctx, query, n, TypeVideo)
	if err != nil {
		return nil, err
	}
	return result.Videos(), nil
}

// Channel resolves a channel reference (native id, marked or bare
// handle) and extracts channel-level metadata from its first uploads.
func (g *Gateway) Channel(ctx context.Context, ref string) (*ChannelMeta, error) {
	key := cache.Key("ytdlp_channel", map[string]interface{}{"ref": ref})
	if v, ok := g.cache.Get(key); ok {
		return v.(*ChannelMeta), nil
	}

	target, err := channelTarget(ref)
	if err != nil {
		return nil, err
	}

	records, err := g.invoke(ctx, "--dump-json", "--no-download", "--playlist-items", "1:5", target)
	if err != nil {
		if errors.Is(err, ErrEmpty) {
			return nil, fmt.Errorf("channel %q: %w", ref, ErrChannelUnavailable)
		}
		return nil, err
	}

	first := records[0]
	meta := &ChannelMeta{
		ID:            first.ChannelID,
		Title:         first.Channel,
		Subscribers:   first.ChannelFollowerCount,
		TotalViews:    derefInt64(first.ChannelViewCount),
		URL:           channelURLFor(first.uploaderHandle(), first.ChannelID),
		RecentUploads: len(records),
	}
	if meta.Title == "" {
		meta.Title = first.Uploader
	}
	if meta.ID == "" {
		meta.ID = ref
	}

	g.cache.Set(key, meta)
	return meta, nil
}

// VideoInfo fetches the rich metadata record for a single video URL.
func (g *Gateway) VideoInfo(ctx context.Context, videoURL string) (*VideoInfo, error) {
	key := cache.Key("ytdlp_video", map[string]interface{}{"url": videoURL})
	if v, ok := g.cache.Get(key); ok {
		return v.(*VideoInfo), nil
	}

	records, err := g.invoke(ctx, "--dump-json", "--no-download", "--no-playlist", videoURL)
	if err != nil {
		return nil, err
	}

	info := normalizeVideoInfo(records[0])
	g.cache.Set(key, info)
	return info, nil
}

// invoke runs the subprocess under the gateway's time budget and parses
// its JSON-lines output.
func (g *Gateway) invoke(ctx context.Context, args ...string) ([]rawRecord, error) {
	runCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.calls.Add(1)
	start := time.Now()
	stdout, err := g.runner.Run(runCtx, args...)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("scraper invocation failed")
		return nil, err
	}

	records, err := parseLines(stdout)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("scraper invocation ok")
	return records, nil
}
