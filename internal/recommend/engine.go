package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scoutlabs/nichepulse/internal/score"
)

// Confidence labels on a recommendation.
const (
	ConfidenceHigh      = "HIGH"
	ConfidenceEstimated = "ESTIMATED"
)

// Phase sizes: how many variants get a cheap screen, how many of those
// are verified with a full score, and how many extra quick entries ride
// along.
const (
	screenSize   = 8
	verifyTop    = 3
	quickTail    = 2
	returnTop    = 5
	verifyBudget = 5 * time.Second
)

// Recommendation is one scored niche variation.
type Recommendation struct {
	Niche      string  `json:"niche"`
	Score      float64 `json:"score"`
	Better     bool    `json:"better"`
	Confidence string  `json:"confidence"`
}

// ScoreService is the slice of the scorer the engine uses.
type ScoreService interface {
	QuickScore(niche string) float64
	FullScore(ctx context.Context, niche string) (*score.NicheScore, error)
}

// Engine ranks niche variations in two phases: a cheap quick-score
// screen over all candidates, then full verification of the leaders.
type Engine struct {
	scorer ScoreService
}

// NewEngine builds an engine over the given scorer.
func NewEngine(scorer ScoreService) *Engine {
	return &Engine{scorer: scorer}
}

type candidate struct {
	niche string
	quick float64
}

// Recommend returns up to five scored variations of niche. original is
// the niche's own total; entries beating it are flagged. Verification
// failures and deadline pressure degrade entries to ESTIMATED instead
// of dropping them.
func (e *Engine) Recommend(ctx context.Context, niche string, original float64) []Recommendation {
	variants := Variants(niche)
	if len(variants) > screenSize {
		variants = variants[:screenSize]
	}
	if len(variants) == 0 {
		return nil
	}

	candidates := make([]candidate, 0, len(variants))
	for _, v := range variants {
		candidates = append(candidates, candidate{niche: v, quick: e.scorer.QuickScore(v)})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].quick > candidates[j].quick })

	var recs []Recommendation
	for i, c := range candidates {
		if i >= verifyTop {
			break
		}
		recs = append(recs, e.verify(ctx, c))
	}
	for i := verifyTop; i < len(candidates) && i < verifyTop+quickTail; i++ {
		recs = append(recs, Recommendation{
			Niche:      candidates[i].niche,
			Score:      candidates[i].quick,
			Confidence: ConfidenceEstimated,
		})
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > returnTop {
		recs = recs[:returnTop]
	}
	for i := range recs {
		recs[i].Better = recs[i].Score > original
	}
	return recs
}

// verify upgrades a candidate with a full score when the deadline
// allows, falling back to its quick score otherwise.
func (e *Engine) verify(ctx context.Context, c candidate) Recommendation {
	if !withinBudget(ctx) {
		return Recommendation{Niche: c.niche, Score: c.quick, Confidence: ConfidenceEstimated}
	}

	full, err := e.scorer.FullScore(ctx, c.niche)
	if err != nil {
		log.Warn().Err(err).Str("niche", c.niche).Msg("full scoring failed, keeping quick estimate")
		return Recommendation{Niche: c.niche, Score: c.quick, Confidence: ConfidenceEstimated}
	}
	return Recommendation{Niche: c.niche, Score: full.Total, Confidence: ConfidenceHigh}
}

func withinBudget(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return true
	}
	return time.Until(deadline) >= verifyBudget
}
