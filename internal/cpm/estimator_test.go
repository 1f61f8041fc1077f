package cpm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMay pins the clock to a month with seasonal multiplier 1.0.
func fixedMay() time.Time {
	return time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
}

func newUSEstimator() *Estimator {
	return NewEstimator(WithCountry("US"), WithClock(fixedMay))
}

func TestEstimate_PersonalFinance_HighConfidence(t *testing.T) {
	est := newUSEstimator().Estimate("personal finance tips", "")

	assert.GreaterOrEqual(t, est.Confidence, 0.90)
	assert.GreaterOrEqual(t, est.BaseCPM, 10.0)
	assert.Equal(t, MatchExactPhrase, est.MatchType)
	assert.Contains(t, est.Category, "finance")
}

func TestEstimate_MangaRecap_EntertainmentTier(t *testing.T) {
	est := newUSEstimator().Estimate("manga recap channel", "")

	assert.GreaterOrEqual(t, est.Confidence, 0.70)
	assert.Contains(t, est.Category, "anime")
	assert.Less(t, est.BaseCPM, 10.0, "entertainment tiers sit below finance")
}

func TestEstimate_WordSetMatch(t *testing.T) {
	// Keyword "home workout" words both present, but not adjacent.
	est := newUSEstimator().Estimate("workout routines at home", "")

	assert.GreaterOrEqual(t, est.Confidence, 0.70)
	assert.NotEqual(t, MatchDefault, est.MatchType)
}

func TestEstimate_CategoryHint(t *testing.T) {
	est := newUSEstimator().Estimate("zxqv blorp", "finance")

	assert.Equal(t, MatchCategoryHint, est.MatchType)
	assert.Equal(t, 0.60, est.Confidence)
	assert.Equal(t, "finance (general)", est.Category)
}

func TestEstimate_InferredCategory(t *testing.T) {
	est := newUSEstimator().Estimate("weird ways to make money fast zz", "")

	// "money" infers finance unless an earlier cascade step caught it.
	assert.NotEqual(t, MatchDefault, est.MatchType)
	assert.Greater(t, est.Confidence, 0.30)
}

func TestEstimate_DefaultFallback(t *testing.T) {
	est := newUSEstimator().Estimate("xqzw pvlt njd", "")

	assert.Equal(t, MatchDefault, est.MatchType)
	assert.Equal(t, 0.30, est.Confidence)
	assert.Equal(t, defaultCategory.AvgCPM, est.BaseCPM)
}

func TestEstimate_AdjustmentsMultiply(t *testing.T) {
	november := func() time.Time {
		return time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)
	}
	est := NewEstimator(WithCountry("GB"), WithClock(november)).Estimate("personal finance tips", "")

	geo := geoMultipliers["GB"]
	seasonal := seasonalMultipliers[time.November]
	assert.InDelta(t, est.BaseCPM*geo*seasonal, est.CPM, 1e-9)
	assert.InDelta(t, geo, est.Adjustments.GeoMultiplier, 1e-9)
	assert.InDelta(t, seasonal, est.Adjustments.SeasonalMultiplier, 1e-9)
	assert.Equal(t, "November", est.Adjustments.Month)

	// Range scales in parallel with the point estimate.
	assert.InDelta(t, est.RangeLow/est.CPM, (est.RangeLow/geo/seasonal)/est.BaseCPM, 1e-9)
}

func TestEstimate_UnlistedCountryUsesDefault(t *testing.T) {
	est := NewEstimator(WithCountry("BR"), WithClock(fixedMay)).Estimate("gaming", "")
	assert.InDelta(t, geoDefault, est.Adjustments.GeoMultiplier, 1e-9)
}

func TestEstimate_DisabledAdjustmentsAreIdentity(t *testing.T) {
	est := NewEstimator(WithoutGeo(), WithoutSeasonal(), WithClock(fixedMay)).Estimate("gaming", "")
	assert.InDelta(t, est.BaseCPM, est.CPM, 1e-9)
	assert.InDelta(t, 1.0, est.Adjustments.GeoMultiplier, 1e-9)
	assert.InDelta(t, 1.0, est.Adjustments.SeasonalMultiplier, 1e-9)
}

func TestEstimate_AdjustmentOrderIrrelevant(t *testing.T) {
	// geo*seasonal == seasonal*geo on the same base.
	december := func() time.Time {
		return time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	}
	a := NewEstimator(WithCountry("DE"), WithClock(december)).Estimate("investing", "")
	require.Equal(t, a.CPM, a.BaseCPM*a.Adjustments.GeoMultiplier*a.Adjustments.SeasonalMultiplier)
}

func TestTierPoints(t *testing.T) {
	tests := []struct {
		cpm  float64
		want int
	}{
		{12.0, 15},
		{10.0, 15},
		{8.0, 12},
		{6.0, 12},
		{5.0, 9},
		{4.0, 9},
		{3.0, 6},
		{2.0, 6},
		{1.0, 3},
		{0.0, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierPoints(tt.cpm), "cpm=%v", tt.cpm)
	}
}

func TestEstimate_CarriesTierPoints(t *testing.T) {
	est := newUSEstimator().Estimate("personal finance tips", "")
	assert.Equal(t, TierPoints(est.CPM), est.TierPoints)
	assert.Equal(t, 15, est.TierPoints)

	est = newUSEstimator().Estimate("xqzw pvlt njd", "")
	assert.Equal(t, TierPoints(est.CPM), est.TierPoints)
}

func TestEstimate_FuzzyMatch(t *testing.T) {
	// Close but not exact wording should clear the token-set threshold.
	est := newUSEstimator().Estimate("dropshiping on amazon", "")
	assert.NotEqual(t, MatchDefault, est.MatchType)
}
