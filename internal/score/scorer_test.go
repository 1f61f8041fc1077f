package score

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlabs/nichepulse/internal/cache"
	"github.com/scoutlabs/nichepulse/internal/cpm"
	"github.com/scoutlabs/nichepulse/internal/scrape"
)

func ptr(f float64) *float64 { return &f }

func TestCompose_FixedMetricsRecord(t *testing.T) {
	m := Metrics{
		Volume:           200_000,
		Trend:            80,
		CPM:              8.0,
		ChannelCount:     150,
		Growth:           ptr(0.15),
		TotalResults:     50_000,
		VideoCount:       30,
		ChannelsInSample: 10,
	}
	s := Compose("ai tutorials", m, Sources{})

	assert.InDelta(t, 18.0, s.SearchVolume.Score, 1e-9)
	assert.InDelta(t, 24.5, s.Competition.Score, 1e-9)
	assert.InDelta(t, 13.3333, s.Monetization.Score, 1e-3)
	assert.InDelta(t, 13.0, s.ContentAvailability.Score, 1e-9)
	assert.InDelta(t, 12.0, s.TrendMomentum.Score, 1e-9)
	assert.InDelta(t, 80.8333, s.Total, 1e-3)
	assert.Equal(t, "A-", s.Grade)
}

func TestGrade(t *testing.T) {
	tests := []struct {
		total float64
		want  string
	}{
		{95, "A+"}, {90, "A+"},
		{87, "A"}, {85, "A"},
		{82, "A-"}, {80, "A-"},
		{77, "B+"}, {75, "B+"},
		{72, "B"}, {70, "B"},
		{67, "B-"}, {65, "B-"},
		{62, "C+"}, {60, "C+"},
		{57, "C"}, {55, "C"},
		{54.9, "D"}, {30, "D"}, {0, "D"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.total), "total=%v", tt.total)
	}
}

func TestBoundedVolume(t *testing.T) {
	assert.Equal(t, int64(10_000), BoundedVolume(0))
	assert.Equal(t, int64(10_000), BoundedVolume(100))
	assert.Equal(t, int64(50_000), BoundedVolume(1_000))
	assert.Equal(t, int64(1_500_000), BoundedVolume(50_000))
	assert.Equal(t, int64(1_500_000), BoundedVolume(10_000_000))
}

func TestGrowthFromAvgViews(t *testing.T) {
	assert.Nil(t, GrowthFromAvgViews(0))

	g := GrowthFromAvgViews(150_000)
	require.NotNil(t, g)
	assert.InDelta(t, 0.15, *g, 1e-9)

	g = GrowthFromAvgViews(500)
	require.NotNil(t, g)
	assert.InDelta(t, 0.02, *g, 1e-9, "floor")

	g = GrowthFromAvgViews(5_000_000)
	require.NotNil(t, g)
	assert.InDelta(t, 0.25, *g, 1e-9, "ceiling")
}

func TestCompose_Bounds(t *testing.T) {
	extremes := []Metrics{
		{},
		{Volume: 1_500_000, Trend: 100, CPM: 50, ChannelCount: 1, Growth: ptr(0.25), TotalResults: 50_000, VideoCount: 100, ChannelsInSample: 100},
		{Volume: 10_000, Trend: 0, CPM: 0, ChannelCount: 100_000, TotalResults: 10_000_000},
		{Volume: -5, Trend: -10, CPM: -1, ChannelCount: -3, TotalResults: -1, VideoCount: -1, ChannelsInSample: -1},
	}
	for i, m := range extremes {
		s := Compose("x", m, Sources{})
		factors := []Factor{s.SearchVolume, s.Competition, s.Monetization, s.ContentAvailability, s.TrendMomentum}
		for _, f := range factors {
			assert.GreaterOrEqual(t, f.Score, 0.0, "case %d", i)
			assert.LessOrEqual(t, f.Score, float64(f.Max), "case %d", i)
		}
		assert.GreaterOrEqual(t, s.Total, 0.0, "case %d", i)
		assert.LessOrEqual(t, s.Total, 100.0, "case %d", i)
	}
}

type fakeSearch struct {
	video   *scrape.SearchResult
	channel *scrape.SearchResult
	err     error
	calls   []string
}

func (f *fakeSearch) Search(_ context.Context, _ string, _ int, typeFilter string) (*scrape.SearchResult, error) {
	f.calls = append(f.calls, typeFilter)
	if f.err != nil {
		return nil, f.err
	}
	if typeFilter == scrape.TypeChannel {
		return f.channel, nil
	}
	return f.video, nil
}

type fakeTrends struct{ score int }

func (f *fakeTrends) Score(context.Context, string) (int, error) { return f.score, nil }

func fixedMay() time.Time {
	return time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
}

func searchFixture() *fakeSearch {
	views := int64(150_000)
	video := &scrape.SearchResult{
		Items:    map[string][]scrape.Item{scrape.KindVideo: nil},
		PageInfo: scrape.PageInfo{TotalResults: 50_000},
	}
	for i := 0; i < 30; i++ {
		video.Items[scrape.KindVideo] = append(video.Items[scrape.KindVideo],
			scrape.Item{Kind: scrape.KindVideo, ID: "v", ViewCount: &views})
	}
	channel := &scrape.SearchResult{
		Items:    map[string][]scrape.Item{scrape.KindChannel: make([]scrape.Item, 10)},
		PageInfo: scrape.PageInfo{TotalResults: 150},
	}
	return &fakeSearch{video: video, channel: channel}
}

func newTestScorer(search *fakeSearch) *Scorer {
	est := cpm.NewEstimator(cpm.WithCountry("US"), cpm.WithClock(fixedMay))
	return NewScorer(search, &fakeTrends{score: 80}, est, cache.New(time.Minute), rand.New(rand.NewSource(1)))
}

func TestFullScore(t *testing.T) {
	search := searchFixture()
	s, err := newTestScorer(search).FullScore(context.Background(), "woodworking")
	require.NoError(t, err)

	assert.Equal(t, []string{scrape.TypeVideo, scrape.TypeChannel}, search.calls)

	// totalResults 50k clamps the volume at the ceiling: 15 + 8.
	assert.InDelta(t, 23.0, s.SearchVolume.Score, 1e-9)
	// 150 channels, avg views 150k: 20 + 0.15*30.
	assert.InDelta(t, 24.5, s.Competition.Score, 1e-9)
	assert.Greater(t, s.Monetization.Score, 0.0)
	// 30 videos, 10 channels in sample, 50k results: 5 + 3 + 5.
	assert.InDelta(t, 13.0, s.ContentAvailability.Score, 1e-9)
	assert.InDelta(t, 12.0, s.TrendMomentum.Score, 1e-9)

	sum := s.SearchVolume.Score + s.Competition.Score + s.Monetization.Score +
		s.ContentAvailability.Score + s.TrendMomentum.Score
	assert.InDelta(t, sum, s.Total, 1e-9)
	assert.Equal(t, Grade(s.Total), s.Grade)
	assert.Equal(t, "channel_search", s.Competition.Source)
	assert.Contains(t, s.Monetization.Source, "cpm_database")
}

func TestFullScore_SearchErrorPropagates(t *testing.T) {
	search := &fakeSearch{err: errors.New("boom")}
	_, err := newTestScorer(search).FullScore(context.Background(), "woodworking")
	assert.Error(t, err)
}

func TestQuickScore_DeterministicAndBounded(t *testing.T) {
	a := newTestScorer(searchFixture()).QuickScore("woodworking")
	b := newTestScorer(searchFixture()).QuickScore("woodworking")

	assert.Equal(t, a, b, "same seed, same draws")
	assert.GreaterOrEqual(t, a, 0.0)
	assert.LessOrEqual(t, a, 100.0)
}

func TestQuickScore_UsesCachedMetrics(t *testing.T) {
	fresh := newTestScorer(searchFixture()).QuickScore("woodworking")

	warmed := newTestScorer(searchFixture())
	_, err := warmed.FullScore(context.Background(), "woodworking")
	require.NoError(t, err)
	cached := warmed.QuickScore("woodworking")

	// Cached metrics lift volume (5 -> 15), competition base (12 -> 20)
	// and add growth 0.15*30; the rng draws are identical across the two
	// scorers, so the difference is exact.
	assert.InDelta(t, 22.5, cached-fresh, 1e-9)
}
