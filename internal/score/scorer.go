package score

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/scoutlabs/nichepulse/internal/cache"
	"github.com/scoutlabs/nichepulse/internal/cpm"
	"github.com/scoutlabs/nichepulse/internal/scrape"
	"github.com/scoutlabs/nichepulse/internal/trends"
)

// Search sample sizes for the two scoring passes.
const (
	videoSampleSize   = 30
	channelSampleSize = 50
)

// Quick-mode defaults, used when no cached metrics exist for a niche.
const (
	quickDefaultVolume   = 100_000
	quickDefaultChannels = 600
)

// SearchService is the slice of the scrape gateway the scorer needs.
type SearchService interface {
	Search(ctx context.Context, query string, maxResults int, typeFilter string) (*scrape.SearchResult, error)
}

// TrendService resolves a keyword to a 0-100 popularity score.
type TrendService interface {
	Score(ctx context.Context, keyword string) (int, error)
}

// Scorer computes niche suitability scores. FullScore measures; QuickScore
// estimates from cached metrics and static tables without any network.
type Scorer struct {
	search  SearchService
	trends  TrendService
	cpm     *cpm.Estimator
	metrics *cache.Cache

	mu  sync.Mutex
	rng *rand.Rand
}

// NewScorer builds a scorer. metricsCache holds per-niche measurement
// records shared between the two modes; rng drives quick-mode jitter and
// must be seeded by the caller.
func NewScorer(search SearchService, trendSvc TrendService, est *cpm.Estimator, metricsCache *cache.Cache, rng *rand.Rand) *Scorer {
	return &Scorer{
		search:  search,
		trends:  trendSvc,
		cpm:     est,
		metrics: metricsCache,
		rng:     rng,
	}
}

// FullScore measures a niche end to end: a video search for volume and
// view velocity, a trend lookup, a CPM lookup, and a channel search for
// competition and content availability.
func (s *Scorer) FullScore(ctx context.Context, niche string) (*NicheScore, error) {
	videos, err := s.search.Search(ctx, niche, videoSampleSize, scrape.TypeVideo)
	if err != nil {
		return nil, fmt.Errorf("video search for %q: %w", niche, err)
	}

	trend, err := s.trends.Score(ctx, niche)
	if err != nil {
		return nil, fmt.Errorf("trend score for %q: %w", niche, err)
	}

	est := s.cpm.Estimate(niche, "")

	channels, err := s.search.Search(ctx, niche, channelSampleSize, scrape.TypeChannel)
	if err != nil {
		return nil, fmt.Errorf("channel search for %q: %w", niche, err)
	}

	m := Metrics{
		Volume:           BoundedVolume(videos.PageInfo.TotalResults),
		Trend:            trend,
		CPM:              est.CPM,
		ChannelCount:     int(channels.PageInfo.TotalResults),
		Growth:           GrowthFromAvgViews(avgTopViews(videos.Videos(), 10)),
		TotalResults:     videos.PageInfo.TotalResults,
		VideoCount:       len(videos.Videos()),
		ChannelsInSample: len(channels.Channels()),
	}
	s.metrics.Set(s.metricsKey(niche), m)

	result := Compose(niche, m, Sources{
		SearchVolume:        "video_search+trends",
		Competition:         "channel_search",
		Monetization:        "cpm_database:" + est.Category,
		ContentAvailability: "video_search+channel_search",
		TrendMomentum:       "trends",
	})
	log.Debug().Str("niche", niche).Float64("total", result.Total).
		Str("grade", result.Grade).Msg("full score computed")
	return result, nil
}

// QuickScore estimates a niche total without network calls. Cached
// metrics from an earlier full score are reused when present; otherwise
// mid-range defaults stand in. The content factor is jittered in [8, 13]
// because no sample is inspected.
func (s *Scorer) QuickScore(niche string) float64 {
	m, ok := s.cachedMetrics(niche)
	if !ok {
		m = Metrics{Volume: quickDefaultVolume, ChannelCount: quickDefaultChannels}
	}

	s.mu.Lock()
	trend := trends.KeywordEstimate(niche, s.rng)
	content := float64(8 + s.rng.Intn(6))
	s.mu.Unlock()

	est := s.cpm.Estimate(niche, "")

	total := searchVolumeScore(m.Volume, trend) +
		competitionScore(m.ChannelCount, m.Growth) +
		monetizationScore(est.CPM) +
		content +
		trendMomentumScore(trend)
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return total
}

func (s *Scorer) cachedMetrics(niche string) (Metrics, bool) {
	v, ok := s.metrics.Get(s.metricsKey(niche))
	if !ok {
		return Metrics{}, false
	}
	m, ok := v.(Metrics)
	return m, ok
}

func (s *Scorer) metricsKey(niche string) string {
	return cache.Key("score_metrics", map[string]interface{}{"niche": niche})
}

// avgTopViews averages the view counts of the first n items that carry
// one. Zero when nothing in the sample has views.
func avgTopViews(items []scrape.Item, n int) float64 {
	var sum float64
	count := 0
	for _, it := range items {
		if count == n {
			break
		}
		if it.ViewCount != nil {
			sum += float64(*it.ViewCount)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
