package trends

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/scoutlabs/nichepulse/internal/cache"
)

// scoreTTL keeps trend scores warm far longer than scrape results; the
// 12-month average moves slowly.
const scoreTTL = 4 * time.Hour

// Provider is the outbound trend-popularity service, treated as a black
// box. Series returns monthly popularity points for the trailing year.
type Provider interface {
	Series(ctx context.Context, keyword string) ([]int, error)
}

// Client wraps a Provider with caching, single-client rate limiting, a
// circuit breaker, and a keyword-heuristic fallback.
type Client struct {
	provider Provider
	cache    *cache.Cache
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	calls    atomic.Int64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewClient builds a trends client. minInterval is the minimum spacing
// between provider calls; rng drives the fallback jitter and must be
// seeded by the caller (fixed seed in tests).
func NewClient(provider Provider, c *cache.Cache, minInterval time.Duration, rng *rand.Rand) *Client {
	if minInterval <= 0 {
		minInterval = time.Second
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "trends",
		Timeout: 2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).
				Str("from", from.String()).Str("to", to.String()).
				Msg("trends breaker state change")
		},
	})
	return &Client{
		provider: provider,
		cache:    c,
		limiter:  rate.NewLimiter(rate.Every(minInterval), 1),
		breaker:  breaker,
		rng:      rng,
	}
}

// CallCount reports how many provider calls have been attempted.
func (c *Client) CallCount() int64 {
	return c.calls.Load()
}

// Score returns the keyword's 12-month average popularity in [0, 100].
// Provider failures never surface; the keyword heuristic covers them.
func (c *Client) Score(ctx context.Context, keyword string) (int, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	key := cache.Key("trends", map[string]interface{}{"keyword": keyword})
	if v, ok := c.cache.Get(key); ok {
		return v.(int), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		// Request deadline expired during the rate-limit sleep.
		return c.fallback(keyword), nil
	}

	c.calls.Add(1)
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.provider.Series(ctx, keyword)
	})
	if err != nil {
		log.Warn().Err(err).Str("keyword", keyword).Msg("trends provider unavailable, using fallback")
		return c.fallback(keyword), nil
	}

	series := result.([]int)
	if len(series) == 0 {
		return c.fallback(keyword), nil
	}

	sum := 0
	for _, v := range series {
		sum += v
	}
	score := clamp(sum/len(series), 0, 100)
	c.cache.SetTTL(key, score, scoreTTL)
	return score, nil
}

// fallback estimates popularity from the keyword table with jitter.
func (c *Client) fallback(keyword string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return KeywordEstimate(keyword, c.rng)
}

// seedScore pairs a substring with a baseline popularity. Order matters:
// the first matching entry wins.
type seedScore struct {
	substr string
	seed   int
}

// keywordSeeds is the fixed fallback table. Scores reflect rough
// relative search interest, not measured data.
var keywordSeeds = []seedScore{
	{"ai", 75},
	{"artificial intelligence", 75},
	{"crypto", 70},
	{"tech", 70},
	{"gaming", 65},
	{"finance", 65},
	{"tutorial", 60},
	{"review", 55},
	{"music", 55},
	{"fitness", 50},
	{"workout", 50},
	{"travel", 50},
	{"asmr", 50},
	{"cooking", 45},
	{"meditation", 45},
	{"history", 45},
	{"diy", 40},
	{"gardening", 35},
}

// KeywordEstimate scores a keyword from the static seed table, adding
// jitter in [-5, +10]. Unmatched keywords get a uniform value in
// [40, 60]. Shared with the quick scorer, which never calls the
// provider.
func KeywordEstimate(keyword string, rng *rand.Rand) int {
	keyword = strings.ToLower(keyword)
	for _, s := range keywordSeeds {
		if strings.Contains(keyword, s.substr) {
			jitter := rng.Intn(16) - 5
			return clamp(s.seed+jitter, 0, 100)
		}
	}
	return 40 + rng.Intn(21)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
