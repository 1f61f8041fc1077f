package competitor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlabs/nichepulse/internal/scrape"
)

type fakeGateway struct {
	result    *scrape.SearchResult
	searchErr error
	channels  map[string]*scrape.ChannelMeta
	chanCalls []string
}

func (f *fakeGateway) Search(context.Context, string, int, string) (*scrape.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.result, nil
}

func (f *fakeGateway) Channel(_ context.Context, ref string) (*scrape.ChannelMeta, error) {
	f.chanCalls = append(f.chanCalls, ref)
	meta, ok := f.channels[ref]
	if !ok {
		return nil, scrape.ErrChannelUnavailable
	}
	return meta, nil
}

func viewItem(videoID, channelID, channelTitle string, views int64) scrape.Item {
	return scrape.Item{
		Kind:         scrape.KindVideo,
		ID:           videoID,
		ChannelID:    channelID,
		ChannelTitle: channelTitle,
		ViewCount:    &views,
	}
}

func competitorFixture() *fakeGateway {
	items := []scrape.Item{
		viewItem("a1", "UCalpha", "Alpha", 400_000),
		viewItem("a2", "UCalpha", "Alpha", 200_000),
		viewItem("b1", "UCbeta", "Beta", 300_000),
		viewItem("c1", "UCgamma", "Gamma", 90_000),
		viewItem("d1", "UCdelta", "Delta", 1_000),
	}
	return &fakeGateway{
		result: &scrape.SearchResult{
			Items: map[string][]scrape.Item{scrape.KindVideo: items},
		},
		channels: map[string]*scrape.ChannelMeta{
			"UCalpha": {ID: "UCalpha", Title: "Alpha Official", Subscribers: 250_000},
			"UCbeta":  {ID: "UCbeta", Title: "Beta", Subscribers: 45_000},
		},
	}
}

func TestAnalyze_EnrichesTopChannelsByViews(t *testing.T) {
	gw := competitorFixture()
	report, err := NewAnalyzer(gw).Analyze(context.Background(), "woodworking")
	require.NoError(t, err)

	assert.Equal(t, 4, report.ChannelCount)
	assert.Equal(t, SaturationLow, report.SaturationLevel)
	assert.Equal(t, 8, report.SaturationScore)
	assert.Equal(t, []string{"UCalpha", "UCbeta", "UCgamma"}, gw.chanCalls,
		"top three by aggregated views")

	require.Len(t, report.TopCompetitors, 3)
	top := report.TopCompetitors[0]
	assert.Equal(t, "Alpha Official", top.Name)
	assert.Equal(t, int64(250_000), top.Subscribers)
	assert.Equal(t, TierLarge, top.SubscriberTier)
	assert.Equal(t, int64(300_000), top.AvgViews)
	assert.Equal(t, 2, top.VideoCount)
	assert.False(t, top.Estimated)

	// Sorted by subscribers descending.
	for i := 1; i < len(report.TopCompetitors); i++ {
		assert.GreaterOrEqual(t, report.TopCompetitors[i-1].Subscribers,
			report.TopCompetitors[i].Subscribers)
	}

	assert.Equal(t, map[string]int{TierLarge: 1, TierSmall: 1, TierMedium: 1}, report.TierBreakdown)
}

func TestAnalyze_FailedLookupEstimatesSubscribers(t *testing.T) {
	gw := competitorFixture()
	report, err := NewAnalyzer(gw).Analyze(context.Background(), "woodworking")
	require.NoError(t, err)

	var gamma *Competitor
	for i := range report.TopCompetitors {
		if report.TopCompetitors[i].ID == "UCgamma" {
			gamma = &report.TopCompetitors[i]
		}
	}
	require.NotNil(t, gamma)

	// avg 90k views falls in the 0.08 band.
	assert.True(t, gamma.Estimated)
	assert.Equal(t, int64(7_200), gamma.Subscribers)
	assert.Equal(t, TierSmall, gamma.SubscriberTier)
}

func TestEstimateSubscribers_Bands(t *testing.T) {
	tests := []struct {
		avg  int64
		want int64
	}{
		{1_000_000, 50_000}, // 0.05
		{100_000, 8_000},    // 0.08
		{10_000, 1_200},     // 0.12
		{1_000, 150},        // 0.15
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, estimateSubscribers(tt.avg, 1), "avg=%d", tt.avg)
	}
	assert.Zero(t, estimateSubscribers(1000, 0))
}

func TestSubscriberTier(t *testing.T) {
	assert.Equal(t, TierMicro, subscriberTier(999))
	assert.Equal(t, TierSmall, subscriberTier(1_000))
	assert.Equal(t, TierSmall, subscriberTier(9_999))
	assert.Equal(t, TierMedium, subscriberTier(10_000))
	assert.Equal(t, TierMedium, subscriberTier(99_999))
	assert.Equal(t, TierLarge, subscriberTier(100_000))
}

func TestSaturationLevel(t *testing.T) {
	assert.Equal(t, SaturationLow, saturationLevel(0))
	assert.Equal(t, SaturationLow, saturationLevel(9))
	assert.Equal(t, SaturationMedium, saturationLevel(10))
	assert.Equal(t, SaturationMedium, saturationLevel(49))
	assert.Equal(t, SaturationHigh, saturationLevel(50))
}

func TestAnalyze_HighSaturation(t *testing.T) {
	var items []scrape.Item
	for i := 0; i < 60; i++ {
		id := fmt.Sprintf("UCch%02d", i)
		items = append(items, viewItem(fmt.Sprintf("v%02d", i), id, id, int64(i)))
	}
	gw := &fakeGateway{
		result:   &scrape.SearchResult{Items: map[string][]scrape.Item{scrape.KindVideo: items}},
		channels: map[string]*scrape.ChannelMeta{},
	}
	report, err := NewAnalyzer(gw).Analyze(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, SaturationHigh, report.SaturationLevel)
	assert.Len(t, report.TopCompetitors, 3, "only the top three are enriched")
}

func TestAnalyze_EmptySearch(t *testing.T) {
	gw := &fakeGateway{result: &scrape.SearchResult{Items: map[string][]scrape.Item{}}}
	report, err := NewAnalyzer(gw).Analyze(context.Background(), "nothing here")
	require.NoError(t, err)
	assert.Zero(t, report.ChannelCount)
	assert.Equal(t, SaturationLow, report.SaturationLevel)
	assert.Empty(t, report.TopCompetitors)
}

func TestAnalyze_SearchErrorPropagates(t *testing.T) {
	gw := &fakeGateway{searchErr: errors.New("scraper down")}
	_, err := NewAnalyzer(gw).Analyze(context.Background(), "x")
	assert.Error(t, err)
}
