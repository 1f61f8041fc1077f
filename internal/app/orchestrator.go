package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scoutlabs/nichepulse/internal/metrics"
	"github.com/scoutlabs/nichepulse/internal/recommend"
	"github.com/scoutlabs/nichepulse/internal/risingstar"
	"github.com/scoutlabs/nichepulse/internal/score"
)

// Response field names used in the unavailable list.
const (
	sectionScore           = "score"
	sectionRecommendations = "recommendations"
	sectionRisingStars     = "rising_star_channels"
)

// Performance reports per-stage wall-clock spend.
type Performance struct {
	TotalMs           int64 `json:"total_ms"`
	ScoringMs         int64 `json:"scoring_ms"`
	RecommendationsMs int64 `json:"recommendations_ms"`
	RisingStarsMs     int64 `json:"rising_stars_ms"`
}

// Analysis is the combined payload of one niche analysis.
type Analysis struct {
	Niche           string                     `json:"niche"`
	Score           *score.NicheScore          `json:"score,omitempty"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	RisingStars     *risingstar.Report         `json:"rising_star_channels,omitempty"`
	Unavailable     []string                   `json:"unavailable,omitempty"`
	Performance     Performance                `json:"performance"`
}

// ScoreService produces the main niche score.
type ScoreService interface {
	FullScore(ctx context.Context, niche string) (*score.NicheScore, error)
}

// RecommendService ranks niche variations.
type RecommendService interface {
	Recommend(ctx context.Context, niche string, original float64) []recommend.Recommendation
}

// DiscoverService finds rising-star channels.
type DiscoverService interface {
	Discover(ctx context.Context, niche string, maxResults, minDurationMinutes int) (*risingstar.Report, error)
}

// Orchestrator runs the full analysis pipeline: main score, then
// recommendations, then rising-star discovery, all under one deadline.
type Orchestrator struct {
	scorer    ScoreService
	engine    RecommendService
	discovery DiscoverService
	collector *metrics.Collector
	deadline  time.Duration
}

// NewOrchestrator composes the pipeline stages. collector may be nil.
func NewOrchestrator(scorer ScoreService, engine RecommendService, discovery DiscoverService, collector *metrics.Collector, deadline time.Duration) *Orchestrator {
	if deadline <= 0 {
		deadline = 60 * time.Second
	}
	return &Orchestrator{
		scorer:    scorer,
		engine:    engine,
		discovery: discovery,
		collector: collector,
		deadline:  deadline,
	}
}

// Analyze scores the niche and attaches recommendations and rising-star
// channels. A main-score failure is fatal; later stage failures mark
// their section unavailable and the rest of the response stands.
func (o *Orchestrator) Analyze(ctx context.Context, niche string, minDurationMinutes int) (*Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, o.deadline)
	defer cancel()

	started := time.Now()
	result := &Analysis{Niche: niche}

	full, err := o.scorer.FullScore(ctx, niche)
	result.Performance.ScoringMs = time.Since(started).Milliseconds()
	if err != nil {
		log.Error().Err(err).Str("niche", niche).Msg("main niche scoring failed")
		result.Unavailable = []string{sectionScore, sectionRecommendations, sectionRisingStars}
		result.Performance.TotalMs = time.Since(started).Milliseconds()
		return result, err
	}
	result.Score = full

	recStart := time.Now()
	result.Recommendations = o.engine.Recommend(ctx, niche, full.Total)
	result.Performance.RecommendationsMs = time.Since(recStart).Milliseconds()

	starStart := time.Now()
	stars, err := o.discovery.Discover(ctx, niche, risingstar.DefaultMaxResults, minDurationMinutes)
	result.Performance.RisingStarsMs = time.Since(starStart).Milliseconds()
	if err != nil {
		log.Warn().Err(err).Str("niche", niche).Msg("rising-star discovery failed")
		result.Unavailable = append(result.Unavailable, sectionRisingStars)
	} else {
		result.RisingStars = stars
	}

	result.Performance.TotalMs = time.Since(started).Milliseconds()
	if o.collector != nil {
		o.collector.AnalysisCompleted()
	}
	log.Info().Str("niche", niche).
		Float64("total", full.Total).Str("grade", full.Grade).
		Int64("elapsed_ms", result.Performance.TotalMs).
		Msg("analysis complete")
	return result, nil
}
