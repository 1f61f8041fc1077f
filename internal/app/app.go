package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/scoutlabs/nichepulse/internal/cache"
	"github.com/scoutlabs/nichepulse/internal/competitor"
	"github.com/scoutlabs/nichepulse/internal/config"
	"github.com/scoutlabs/nichepulse/internal/cpm"
	"github.com/scoutlabs/nichepulse/internal/metrics"
	"github.com/scoutlabs/nichepulse/internal/recommend"
	"github.com/scoutlabs/nichepulse/internal/risingstar"
	"github.com/scoutlabs/nichepulse/internal/score"
	"github.com/scoutlabs/nichepulse/internal/scrape"
	"github.com/scoutlabs/nichepulse/internal/trends"
)

// App wires the analysis components around one shared cache. Lifecycle
// is init at process start, Close at shutdown.
type App struct {
	Config       config.Config
	Cache        *cache.Cache
	Gateway      *scrape.Gateway
	Trends       *trends.Client
	Scorer       *score.Scorer
	Engine       *recommend.Engine
	Discovery    *risingstar.Discovery
	Competitors  *competitor.Analyzer
	Metrics      *metrics.Collector
	Orchestrator *Orchestrator

	sweepCancel context.CancelFunc
}

// Options overrides external collaborators, mainly for tests.
type Options struct {
	Runner   scrape.Runner
	Provider trends.Provider
	Rand     *rand.Rand
}

// New builds the full component graph from configuration.
func New(cfg config.Config, opts Options) *App {
	runner := opts.Runner
	if runner == nil {
		runner = scrape.NewExecRunner("")
	}
	provider := opts.Provider
	if provider == nil {
		provider = trends.Unavailable()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	shared := cache.New(cfg.Cache.TTL.Std())
	gateway := scrape.NewGateway(runner, shared, cfg.Scraper.Timeout.Std())
	trendClient := trends.NewClient(provider, shared, cfg.Trends.MinInterval.Std(), rng)
	estimator := cpm.NewEstimator(cpm.WithCountry(cfg.Analysis.Country))
	scorer := score.NewScorer(gateway, trendClient, estimator, shared, rng)
	engine := recommend.NewEngine(scorer)
	discovery := risingstar.NewDiscovery(gateway, cfg.Analysis.EnrichDelay.Std())
	competitors := competitor.NewAnalyzer(gateway)
	collector := metrics.NewCollector()

	return &App{
		Config:       cfg,
		Cache:        shared,
		Gateway:      gateway,
		Trends:       trendClient,
		Scorer:       scorer,
		Engine:       engine,
		Discovery:    discovery,
		Competitors:  competitors,
		Metrics:      collector,
		Orchestrator: NewOrchestrator(scorer, engine, discovery, collector, cfg.Analysis.Deadline.Std()),
	}
}

// Start launches background maintenance (the cache sweeper).
func (a *App) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	a.sweepCancel = cancel
	go a.Cache.Start(ctx, a.Config.Cache.SweepInterval.Std())
}

// Close stops background work.
func (a *App) Close() {
	if a.sweepCancel != nil {
		a.sweepCancel()
	}
}

// Stats assembles the stats payload from the live components.
func (a *App) Stats() metrics.Stats {
	return a.Metrics.Snapshot(a.Cache.Stats(), a.Gateway.CallCount(), a.Trends.CallCount())
}
