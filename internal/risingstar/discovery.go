package risingstar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scoutlabs/nichepulse/internal/content"
	"github.com/scoutlabs/nichepulse/internal/scrape"
)

// ErrNoResults means the niche search returned nothing to analyze.
var ErrNoResults = errors.New("no_results")

// Discovery tuning.
const (
	DefaultMaxResults  = 50
	DefaultMinDuration = 40 // minutes
	enrichLimit        = 10
	resultLimit        = 10
	minTotalScore      = 50
	enrichDelay        = 200 * time.Millisecond
)

// Gateway is the slice of the scrape gateway discovery uses.
type Gateway interface {
	Search(ctx context.Context, query string, maxResults int, typeFilter string) (*scrape.SearchResult, error)
	VideoInfo(ctx context.Context, videoURL string) (*scrape.VideoInfo, error)
}

// Score is the rising-star decomposition. Viral measures views per
// subscriber, size favors small-but-not-empty channels, activity
// rewards upload cadence within the sample.
type Score struct {
	Viral    float64 `json:"viral"`
	Size     int     `json:"size"`
	Activity int     `json:"activity"`
	Total    float64 `json:"total"`
}

// Channel is one discovered channel with its aggregated sample and
// classification.
type Channel struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Subscribers    int64   `json:"subscribers"`
	TotalViews     int64   `json:"total_views"`
	SampleVideos   int     `json:"sample_videos"`
	LatestUpload   string  `json:"latest_upload,omitempty"`
	AvgDurationMin float64 `json:"avg_duration_minutes"`
	ContentType    string  `json:"content_type"`
	FacelessScore  int     `json:"faceless_score"`
	HasLongVideos  bool    `json:"has_long_videos"`
	Score          Score   `json:"score"`
}

// Summary is the report trailer.
type Summary struct {
	ChannelsAnalyzed   int    `json:"channels_analyzed"`
	FilteredByDuration int    `json:"filtered_by_duration"`
	BestOpportunity    string `json:"best_opportunity,omitempty"`
}

// Report is the full discovery result.
type Report struct {
	Niche    string    `json:"niche"`
	Channels []Channel `json:"channels"`
	Summary  Summary   `json:"summary"`
}

// Discovery finds small channels with disproportionate engagement in a
// niche.
type Discovery struct {
	gateway Gateway
	delay   time.Duration
}

// NewDiscovery builds a discovery service over the gateway. delay
// spaces out enrichment lookups; zero or negative means the default.
func NewDiscovery(gateway Gateway, delay time.Duration) *Discovery {
	if delay <= 0 {
		delay = enrichDelay
	}
	return &Discovery{gateway: gateway, delay: delay}
}

type channelAgg struct {
	id     string
	title  string
	url    string
	videos []scrape.Item
	latest string

	subscribers int64
	totalViews  int64
	avgDuration float64
}

// Discover searches the niche, aggregates results by channel, enriches
// the most prolific channels, and scores the survivors.
// minDurationMinutes of zero disables the long-form filter.
func (d *Discovery) Discover(ctx context.Context, niche string, maxResults, minDurationMinutes int) (*Report, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	result, err := d.gateway.Search(ctx, niche, maxResults, scrape.TypeVideo)
	if err != nil {
		return nil, fmt.Errorf("rising-star search for %q: %w", niche, err)
	}
	items := result.Videos()
	if len(items) == 0 {
		return nil, fmt.Errorf("niche %q: %w", niche, ErrNoResults)
	}

	aggs := aggregate(items)
	if err := d.enrich(ctx, aggs); err != nil {
		return nil, err
	}

	report := &Report{Niche: niche, Summary: Summary{ChannelsAnalyzed: len(aggs)}}
	for _, agg := range aggs {
		ch := d.classify(agg, minDurationMinutes)
		if minDurationMinutes > 0 && !ch.HasLongVideos {
			report.Summary.FilteredByDuration++
			continue
		}
		ch.Score = scoreChannel(ch.Subscribers, ch.TotalViews, ch.SampleVideos)
		if ch.Score.Total < minTotalScore {
			continue
		}
		report.Channels = append(report.Channels, ch)
	}

	sort.Slice(report.Channels, func(i, j int) bool {
		return report.Channels[i].Score.Total > report.Channels[j].Score.Total
	})
	if len(report.Channels) > resultLimit {
		report.Channels = report.Channels[:resultLimit]
	}
	if len(report.Channels) > 0 {
		report.Summary.BestOpportunity = report.Channels[0].Title
	}
	return report, nil
}

// aggregate groups search items by channel, ordered by sample size
// descending.
func aggregate(items []scrape.Item) []*channelAgg {
	byID := make(map[string]*channelAgg)
	var order []*channelAgg
	for _, it := range items {
		id := it.ChannelID
		if id == "" {
			id = it.ChannelTitle
		}
		if id == "" {
			continue
		}
		agg, ok := byID[id]
		if !ok {
			agg = &channelAgg{id: id, title: it.ChannelTitle, url: it.ChannelURL}
			byID[id] = agg
			order = append(order, agg)
		}
		agg.videos = append(agg.videos, it)
		if it.PublishedAt > agg.latest {
			agg.latest = it.PublishedAt
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return len(order[i].videos) > len(order[j].videos)
	})
	return order
}

// enrich fetches detail on one sample video for the top channels,
// pacing requests with a fixed delay. A failed lookup leaves the
// channel unenriched rather than failing discovery.
func (d *Discovery) enrich(ctx context.Context, aggs []*channelAgg) error {
	n := len(aggs)
	if n > enrichLimit {
		n = enrichLimit
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.delay):
			}
		}

		agg := aggs[i]
		videoURL := "https://www.youtube.com/watch?v=" + agg.videos[0].ID
		info, err := d.gateway.VideoInfo(ctx, videoURL)
		if err != nil {
			log.Warn().Err(err).Str("channel", agg.title).Msg("enrichment lookup failed")
			continue
		}

		agg.subscribers = info.ChannelFollowerCount
		agg.totalViews = info.ViewCount * int64(len(agg.videos))
		agg.avgDuration = info.DurationSec / 60
	}
	return nil
}

// classify runs the content analyzer over the aggregated sample.
func (d *Discovery) classify(agg *channelAgg, minDurationMinutes int) Channel {
	in := content.Input{ChannelTitle: agg.title}
	for _, v := range agg.videos {
		in.Videos = append(in.Videos, content.VideoSample{
			Title:       v.Title,
			Description: v.Description,
			DurationSec: agg.avgDuration * 60,
		})
	}
	verdict := content.Analyze(in)

	return Channel{
		ID:             agg.id,
		Title:          agg.title,
		URL:            agg.url,
		Subscribers:    agg.subscribers,
		TotalViews:     agg.totalViews,
		SampleVideos:   len(agg.videos),
		LatestUpload:   agg.latest,
		AvgDurationMin: agg.avgDuration,
		ContentType:    verdict.ContentType,
		FacelessScore:  verdict.FacelessScore,
		HasLongVideos:  agg.avgDuration >= float64(minDurationMinutes),
	}
}

// scoreChannel computes the rising-star decomposition.
func scoreChannel(subscribers, totalViews int64, sampleVideos int) Score {
	viral := 20.0
	if subscribers > 0 {
		viral = float64(totalViews) / float64(subscribers) / 10
		if viral > 40 {
			viral = 40
		}
	}

	var size int
	switch {
	case subscribers == 0:
		size = 25
	case subscribers < 10_000:
		size = 30
	case subscribers < 50_000:
		size = 25
	case subscribers < 100_000:
		size = 20
	default:
		size = 10
	}

	var activity int
	switch {
	case sampleVideos >= 5:
		activity = 30
	case sampleVideos >= 3:
		activity = 25
	case sampleVideos >= 2:
		activity = 20
	default:
		activity = 15
	}

	return Score{
		Viral:    viral,
		Size:     size,
		Activity: activity,
		Total:    viral + float64(size) + float64(activity),
	}
}
