package cpm

import (
	"strings"
	"time"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Match types, in cascade order.
const (
	MatchExactPhrase  = "exact_phrase"
	MatchWordSet      = "word_set"
	MatchFuzzy        = "fuzzy"
	MatchSubstring    = "substring"
	MatchCategoryHint = "category_hint"
	MatchInferred     = "inferred_category"
	MatchDefault      = "default"
)

// fuzzyThreshold is the minimum token-set-ratio score accepted by the
// fuzzy cascade step.
const fuzzyThreshold = 80

// Adjustments records the multipliers applied on top of the base CPM.
type Adjustments struct {
	GeoMultiplier      float64 `json:"geographic_multiplier"`
	SeasonalMultiplier float64 `json:"seasonal_multiplier"`
	Country            string  `json:"country"`
	Month              string  `json:"month"`
}

// Estimate is the full output of a CPM lookup.
type Estimate struct {
	BaseCPM     float64     `json:"base_cpm"`
	CPM         float64     `json:"cpm"`
	RangeLow    float64     `json:"cpm_range_low"`
	RangeHigh   float64     `json:"cpm_range_high"`
	Confidence  float64     `json:"confidence"`
	Source      string      `json:"source"`
	MatchType   string      `json:"match_type"`
	Category    string      `json:"category"`
	TierPoints  int         `json:"tier_points"`
	Adjustments Adjustments `json:"adjustments"`
}

// Estimator maps niche text to a revenue tier through a hierarchy of
// match strategies over the static category database.
type Estimator struct {
	country       string
	geoEnabled    bool
	seasonEnabled bool
	now           func() time.Time
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithCountry sets the audience country for geographic adjustment.
func WithCountry(code string) Option {
	return func(e *Estimator) { e.country = strings.ToUpper(code) }
}

// WithoutGeo disables the geographic multiplier.
func WithoutGeo() Option {
	return func(e *Estimator) { e.geoEnabled = false }
}

// WithoutSeasonal disables the seasonal multiplier.
func WithoutSeasonal() Option {
	return func(e *Estimator) { e.seasonEnabled = false }
}

// WithClock overrides the time source used for the seasonal month.
func WithClock(now func() time.Time) Option {
	return func(e *Estimator) { e.now = now }
}

// NewEstimator builds an estimator with US audience and both
// adjustments enabled.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{
		country:       "US",
		geoEnabled:    true,
		seasonEnabled: true,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate resolves a niche phrase to a CPM estimate. categoryHint is
// an optional broad category supplied by the caller; it is only
// consulted when text matching fails.
func (e *Estimator) Estimate(niche, categoryHint string) Estimate {
	niche = strings.ToLower(strings.TrimSpace(niche))

	cat, matchType, confidence := matchCategory(niche, categoryHint)
	est := Estimate{
		BaseCPM:    cat.AvgCPM,
		RangeLow:   cat.Low,
		RangeHigh:  cat.High,
		Confidence: confidence,
		Source:     cat.Source,
		MatchType:  matchType,
		Category:   cat.Name,
	}
	e.applyAdjustments(&est)
	est.TierPoints = TierPoints(est.CPM)
	return est
}

// applyAdjustments multiplies base CPM and range by the geographic and
// seasonal factors. Disabled factors contribute identity.
func (e *Estimator) applyAdjustments(est *Estimate) {
	geo := 1.0
	if e.geoEnabled {
		var ok bool
		if geo, ok = geoMultipliers[e.country]; !ok {
			geo = geoDefault
		}
	}
	month := e.now().UTC().Month()
	seasonal := 1.0
	if e.seasonEnabled {
		seasonal = seasonalMultipliers[month]
	}

	est.CPM = est.BaseCPM * geo * seasonal
	est.RangeLow *= geo * seasonal
	est.RangeHigh *= geo * seasonal
	est.Adjustments = Adjustments{
		GeoMultiplier:      geo,
		SeasonalMultiplier: seasonal,
		Country:            e.country,
		Month:              month.String(),
	}
}

// matchCategory runs the cascade, stopping at the first strategy that
// yields a category.
func matchCategory(niche, categoryHint string) (Category, string, float64) {
	if cat, matchType, conf, ok := exactMatch(niche); ok {
		return cat, matchType, conf
	}
	if cat, conf, ok := fuzzyMatch(niche); ok {
		return cat, MatchFuzzy, conf
	}
	if cat, ok := substringMatch(niche); ok {
		return cat, MatchSubstring, 0.70
	}
	if cat, ok := hintMatch(categoryHint); ok {
		return cat, MatchCategoryHint, 0.60
	}
	if cat, ok := inferredMatch(niche); ok {
		return cat, MatchInferred, 0.60
	}
	return defaultCategory, MatchDefault, 0.30
}

// exactMatch scores phrase substrings by keyword length and word-set
// subsets by word count; the longest match across the database wins.
func exactMatch(niche string) (Category, string, float64, bool) {
	nicheWords := wordSet(niche)

	var best Category
	bestScore := 0
	bestType := ""
	for _, cat := range categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(niche, kw) {
				if len(kw) > bestScore {
					best, bestScore, bestType = cat, len(kw), MatchExactPhrase
				}
				continue
			}
			kwWords := strings.Fields(kw)
			if len(kwWords) > 1 && isSubset(kwWords, nicheWords) {
				if len(kwWords) > bestScore {
					best, bestScore, bestType = cat, len(kwWords), MatchWordSet
				}
			}
		}
	}
	if bestScore == 0 {
		return Category{}, "", 0, false
	}
	conf := 0.95
	if bestType == MatchWordSet {
		conf = 0.90
	}
	return best, bestType, conf, true
}

// fuzzyMatch accepts the best token-set-ratio across all keywords when
// it clears the threshold.
func fuzzyMatch(niche string) (Category, float64, bool) {
	var best Category
	bestScore := 0
	for _, cat := range categories {
		for _, kw := range cat.Keywords {
			if score := fuzzy.TokenSetRatio(niche, kw); score > bestScore {
				best, bestScore = cat, score
			}
		}
	}
	if bestScore < fuzzyThreshold {
		return Category{}, 0, false
	}
	return best, float64(bestScore) / 100 * 0.85, true
}

// substringMatch catches loose containment either direction, plus any
// keyword word longer than three characters occurring in the niche.
func substringMatch(niche string) (Category, bool) {
	for _, cat := range categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(kw, niche) || strings.Contains(niche, kw) {
				return cat, true
			}
			for _, w := range strings.Fields(kw) {
				if len(w) > 3 && strings.Contains(niche, w) {
					return cat, true
				}
			}
		}
	}
	return Category{}, false
}

// hintMatch resolves a caller-provided category string against the
// parent fallback table, substring either direction.
func hintMatch(hint string) (Category, bool) {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return Category{}, false
	}
	for parent, cat := range parentFallbacks {
		if strings.Contains(hint, parent) || strings.Contains(parent, hint) {
			return cat, true
		}
	}
	return Category{}, false
}

// inferredMatch maps common niche words to a parent category.
func inferredMatch(niche string) (Category, bool) {
	for _, inf := range inferredParents {
		if strings.Contains(niche, inf.word) {
			if cat, ok := parentFallbacks[inf.parent]; ok {
				return cat, true
			}
		}
	}
	return Category{}, false
}

// TierPoints maps an effective CPM to the coarse 3-15 point revenue
// tier reported on every estimate.
func TierPoints(cpm float64) int {
	switch {
	case cpm >= 10:
		return 15
	case cpm >= 6:
		return 12
	case cpm >= 4:
		return 9
	case cpm >= 2:
		return 6
	default:
		return 3
	}
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func isSubset(words []string, set map[string]bool) bool {
	for _, w := range words {
		if !set[w] {
			return false
		}
	}
	return true
}
