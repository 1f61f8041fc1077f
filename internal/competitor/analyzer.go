package competitor

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/scoutlabs/nichepulse/internal/scrape"
)

// Subscriber tiers.
const (
	TierMicro  = "micro"
	TierSmall  = "small"
	TierMedium = "medium"
	TierLarge  = "large"
)

// Saturation levels by unique-channel count.
const (
	SaturationLow    = "low"
	SaturationMedium = "medium"
	SaturationHigh   = "high"
)

const (
	searchSample = 30
	enrichTop    = 3
	topListSize  = 5
)

// Gateway is the slice of the scrape gateway the analyzer uses.
type Gateway interface {
	Search(ctx context.Context, query string, maxResults int, typeFilter string) (*scrape.SearchResult, error)
	Channel(ctx context.Context, ref string) (*scrape.ChannelMeta, error)
}

// Competitor is one enriched channel in the niche.
type Competitor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Subscribers    int64  `json:"subscribers"`
	SubscriberTier string `json:"subscriber_tier"`
	AvgViews       int64  `json:"avg_views"`
	VideoCount     int    `json:"video_count"`
	Estimated      bool   `json:"estimated"`
}

// Report is the saturation snapshot for a niche.
type Report struct {
	Niche           string         `json:"niche"`
	ChannelCount    int            `json:"channel_count"`
	SaturationLevel string         `json:"saturation_level"`
	SaturationScore int            `json:"saturation_score"`
	TierBreakdown   map[string]int `json:"tier_breakdown"`
	TopCompetitors  []Competitor   `json:"top_competitors"`
}

// Analyzer measures how crowded a niche already is.
type Analyzer struct {
	gateway Gateway
}

// NewAnalyzer builds an analyzer over the gateway.
func NewAnalyzer(gateway Gateway) *Analyzer {
	return &Analyzer{gateway: gateway}
}

type channelViews struct {
	id     string
	title  string
	views  int64
	videos int
}

// Analyze searches the niche, aggregates views by channel, enriches the
// biggest channels with subscriber counts, and grades saturation.
func (a *Analyzer) Analyze(ctx context.Context, niche string) (*Report, error) {
	result, err := a.gateway.Search(ctx, niche, searchSample, scrape.TypeVideo)
	if err != nil {
		return nil, fmt.Errorf("competitor search for %q: %w", niche, err)
	}

	channels := aggregateViews(result.Videos())
	report := &Report{
		Niche:           niche,
		ChannelCount:    len(channels),
		SaturationLevel: saturationLevel(len(channels)),
		SaturationScore: saturationScore(len(channels)),
		TierBreakdown:   map[string]int{},
	}

	n := len(channels)
	if n > enrichTop {
		n = enrichTop
	}
	for _, cv := range channels[:n] {
		comp := a.enrich(ctx, cv)
		report.TierBreakdown[comp.SubscriberTier]++
		report.TopCompetitors = append(report.TopCompetitors, comp)
	}

	sort.Slice(report.TopCompetitors, func(i, j int) bool {
		return report.TopCompetitors[i].Subscribers > report.TopCompetitors[j].Subscribers
	})
	if len(report.TopCompetitors) > topListSize {
		report.TopCompetitors = report.TopCompetitors[:topListSize]
	}
	return report, nil
}

// aggregateViews groups sample videos by channel and sums their views,
// most-viewed channel first.
func aggregateViews(items []scrape.Item) []*channelViews {
	byID := make(map[string]*channelViews)
	var order []*channelViews
	for _, it := range items {
		id := it.ChannelID
		if id == "" {
			id = it.ChannelTitle
		}
		if id == "" {
			continue
		}
		cv, ok := byID[id]
		if !ok {
			cv = &channelViews{id: id, title: it.ChannelTitle}
			byID[id] = cv
			order = append(order, cv)
		}
		cv.videos++
		if it.ViewCount != nil {
			cv.views += *it.ViewCount
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return order[i].views > order[j].views })
	return order
}

// enrich resolves a channel's subscriber count, estimating from view
// volume when the lookup fails.
func (a *Analyzer) enrich(ctx context.Context, cv *channelViews) Competitor {
	comp := Competitor{
		ID:         cv.id,
		Name:       cv.title,
		VideoCount: cv.videos,
	}
	if cv.videos > 0 {
		comp.AvgViews = cv.views / int64(cv.videos)
	}

	meta, err := a.gateway.Channel(ctx, cv.id)
	if err != nil {
		log.Warn().Err(err).Str("channel", cv.title).Msg("channel lookup failed, estimating subscribers")
		comp.Subscribers = estimateSubscribers(cv.views, cv.videos)
		comp.Estimated = true
	} else {
		comp.Subscribers = meta.Subscribers
		if meta.Title != "" {
			comp.Name = meta.Title
		}
	}

	comp.SubscriberTier = subscriberTier(comp.Subscribers)
	return comp
}

// estimateSubscribers guesses a subscriber count from average sample
// views. Bigger channels convert views to subscribers at a lower rate.
func estimateSubscribers(views int64, videos int) int64 {
	if videos == 0 {
		return 0
	}
	avg := float64(views) / float64(videos)
	var k float64
	switch {
	case avg > 500_000:
		k = 0.05
	case avg > 50_000:
		k = 0.08
	case avg > 5_000:
		k = 0.12
	default:
		k = 0.15
	}
	return int64(avg * k)
}

func subscriberTier(subscribers int64) string {
	switch {
	case subscribers < 1_000:
		return TierMicro
	case subscribers < 10_000:
		return TierSmall
	case subscribers < 100_000:
		return TierMedium
	default:
		return TierLarge
	}
}

func saturationLevel(uniqueChannels int) string {
	switch {
	case uniqueChannels < 10:
		return SaturationLow
	case uniqueChannels < 50:
		return SaturationMedium
	default:
		return SaturationHigh
	}
}

// saturationScore scales the unique-channel count to [0, 100]. Fifty
// distinct channels in one sample is treated as full saturation.
func saturationScore(uniqueChannels int) int {
	s := uniqueChannels * 2
	if s > 100 {
		s = 100
	}
	return s
}
