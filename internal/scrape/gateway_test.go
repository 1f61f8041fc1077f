package scrape

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlabs/nichepulse/internal/cache"
)

// fakeRunner returns canned stdout and records invocations.
type fakeRunner struct {
	stdout []byte
	err    error
	calls  int
	args   [][]string
}

func (f *fakeRunner) Run(_ context.Context, args ...string) ([]byte, error) {
	f.calls++
	f.args = append(f.args, args)
	if f.err != nil {
		return nil, f.err
	}
	return f.stdout, nil
}

const searchStdout = `{"id":"dQw4w9WgXcQ","title":"AI Tutorial #1","description":"Learn AI","channel":"TechChan","channel_id":"UCabcdefghij1234567890AB","uploader_id":"@techchan","view_count":120000,"upload_date":"20240105","playlist_count":48213}
not json at all
{"id":"UCzzzzzzzzzz1234567890CD","title":"Some Channel","channel":"Some Channel","description":"A channel about AI"}
{"id":"abc12345XYZ","title":"AI Tutorial #2","channel":"OtherChan","channel_id":"UCother67890123456789012","view_count":900}`

func newTestGateway(r Runner) (*Gateway, *cache.Cache) {
	c := cache.New(time.Hour)
	return NewGateway(r, c, 30*time.Second), c
}

func TestGateway_Search_NormalizesAndFilters(t *testing.T) {
	runner := &fakeRunner{stdout: []byte(searchStdout)}
	g, _ := newTestGateway(runner)

	result, err := g.Search(context.Background(), "ai tutorials", 50, TypeAll)
	require.NoError(t, err)

	videos := result.Videos()
	require.Len(t, videos, 2, "unparseable line must be dropped")
	assert.Equal(t, "AI Tutorial #1", videos[0].Title)
	assert.Equal(t, "@techchan", videos[0].Handle)
	assert.Equal(t, "https://www.youtube.com/@techchan", videos[0].ChannelURL)
	assert.Equal(t, "2024-01-05T00:00:00Z", videos[0].PublishedAt)
	require.NotNil(t, videos[0].ViewCount)
	assert.Equal(t, int64(120000), *videos[0].ViewCount)

	channels := result.Channels()
	require.Len(t, channels, 1)
	assert.Equal(t, KindChannel, channels[0].Kind)
	assert.Equal(t, "UCzzzzzzzzzz1234567890CD", channels[0].ChannelID)

	assert.Equal(t, int64(48213), result.PageInfo.TotalResults)

	// Every item's kind matches its id shape.
	for kind, items := range result.Items {
		for _, item := range items {
			assert.Equal(t, kind, item.Kind)
			assert.Equal(t, kind == KindChannel, isChannelID(item.ID))
		}
	}
}

func TestGateway_Search_TargetExpression(t *testing.T) {
	runner := &fakeRunner{stdout: []byte(searchStdout)}
	g, _ := newTestGateway(runner)

	_, err := g.Search(context.Background(), "home workout", 30, TypeVideo)
	require.NoError(t, err)

	require.Len(t, runner.args, 1)
	assert.Contains(t, runner.args[0], "ytsearch30:home workout")
	assert.Contains(t, runner.args[0], "--flat-playlist")
	assert.Contains(t, runner.args[0], "--no-download")
}

func TestGateway_Search_CacheHitSkipsSubprocess(t *testing.T) {
	runner := &fakeRunner{stdout: []byte(searchStdout)}
	g, _ := newTestGateway(runner)

	_, err := g.Search(context.Background(), "ai tutorials", 50, TypeVideo)
	require.NoError(t, err)
	_, err = g.Search(context.Background(), "ai tutorials", 50, TypeVideo)
	require.NoError(t, err)

	assert.Equal(t, 1, runner.calls, "second identical search must be served from cache")
	assert.Equal(t, int64(1), g.CallCount())

	// A different query misses.
	_, err = g.Search(context.Background(), "crypto news", 50, TypeVideo)
	require.NoError(t, err)
	assert.Equal(t, 2, runner.calls)
}

func TestGateway_Search_Timeout(t *testing.T) {
	runner := &fakeRunner{err: ErrTimeout}
	g, _ := newTestGateway(runner)

	_, err := g.Search(context.Background(), "ai", 10, TypeAll)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGateway_Search_ToolError(t *testing.T) {
	runner := &fakeRunner{err: &ToolError{Stderr: "ERROR: network unreachable"}}
	g, _ := newTestGateway(runner)

	_, err := g.Search(context.Background(), "ai", 10, TypeAll)
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Contains(t, toolErr.Stderr, "network unreachable")
}

func TestGateway_Search_EmptyOutput(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("garbage\nmore garbage\n")}
	g, _ := newTestGateway(runner)

	_, err := g.Search(context.Background(), "ai", 10, TypeAll)
	assert.ErrorIs(t, err, ErrEmpty)
}

const channelStdout = `{"id":"vid1vid1vid","title":"Upload 1","channel":"Night Facts","channel_id":"UCnight1234567890123456","uploader":"Night Facts","uploader_id":"@nightfacts","channel_follower_count":5400,"channel_view_count":2100000}
{"id":"vid2vid2vid","title":"Upload 2","channel":"Night Facts","channel_id":"UCnight1234567890123456"}`

func TestGateway_Channel_ResolvesReferences(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"native id", "UCnight1234567890123456", "https://www.youtube.com/channel/UCnight1234567890123456"},
		{"marked handle", "@nightfacts", "https://www.youtube.com/@nightfacts"},
		{"bare handle", "nightfacts", "https://www.youtube.com/@nightfacts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{stdout: []byte(channelStdout)}
			g, _ := newTestGateway(runner)

			meta, err := g.Channel(context.Background(), tt.ref)
			require.NoError(t, err)
			require.Len(t, runner.args, 1)
			assert.Contains(t, runner.args[0], tt.want)
			assert.Contains(t, runner.args[0], "--playlist-items")

			assert.Equal(t, "Night Facts", meta.Title)
			assert.Equal(t, int64(5400), meta.Subscribers)
			assert.Equal(t, int64(2100000), meta.TotalViews)
			assert.Equal(t, 2, meta.RecentUploads)
		})
	}
}

func TestGateway_Channel_Unavailable(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("no records here\n")}
	g, _ := newTestGateway(runner)

	_, err := g.Channel(context.Background(), "@ghost")
	assert.ErrorIs(t, err, ErrChannelUnavailable)
}

func TestGateway_Channel_WrappedEmptyError(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("scrape @ghost: %w", ErrEmpty)}
	g, _ := newTestGateway(runner)

	_, err := g.Channel(context.Background(), "@ghost")
	assert.ErrorIs(t, err, ErrChannelUnavailable)
}

func TestGateway_VideoInfo(t *testing.T) {
	stdout := `{"id":"vid1vid1vid","duration":2460,"view_count":88000,"uploader":"Night Facts","uploader_id":"@nightfacts","channel_follower_count":5400,"upload_date":"20240210","description":"A long video"}`
	runner := &fakeRunner{stdout: []byte(stdout)}
	g, _ := newTestGateway(runner)

	info, err := g.VideoInfo(context.Background(), "https://www.youtube.com/watch?v=vid1vid1vid")
	require.NoError(t, err)
	assert.Equal(t, float64(2460), info.DurationSec)
	assert.Equal(t, int64(88000), info.ViewCount)
	assert.Equal(t, int64(5400), info.ChannelFollowerCount)
	assert.Equal(t, "20240210", info.UploadDate)
	assert.Contains(t, runner.args[0], "--no-playlist")
}

func TestGateway_ContextCancellation(t *testing.T) {
	runner := &fakeRunner{err: context.Canceled}
	g, _ := newTestGateway(runner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Search(ctx, "ai", 10, TypeAll)
	assert.True(t, errors.Is(err, context.Canceled) || err != nil)
}
