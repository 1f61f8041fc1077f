package scrape

// Item kinds within a normalized search result.
const (
	KindVideo   = "video"
	KindChannel = "channel"
)

// Search type filters accepted by Gateway.Search.
const (
	TypeAll     = "all"
	TypeVideo   = "video"
	TypeChannel = "channel"
)

// Item is one normalized record from a search scrape.
type Item struct {
	Kind         string `json:"kind"`
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	Handle       string `json:"channelHandle,omitempty"`
	ChannelURL   string `json:"channelUrl"`
	Description  string `json:"description"`
	PublishedAt  string `json:"publishedAt,omitempty"`
	ThumbnailURL string `json:"thumbnail,omitempty"`
	ViewCount    *int64 `json:"viewCount,omitempty"`
}

// PageInfo mirrors the platform's result-count estimate. TotalResults is
// an estimate, never an exact search volume.
type PageInfo struct {
	TotalResults int64 `json:"totalResults"`
}

// SearchResult is the uniform shape every search scrape normalizes to.
type SearchResult struct {
	Items    map[string][]Item `json:"items"`
	PageInfo PageInfo          `json:"pageInfo"`
}

// Videos returns the video items of a search result.
func (r *SearchResult) Videos() []Item {
	return r.Items[KindVideo]
}

// Channels returns the channel items of a search result.
func (r *SearchResult) Channels() []Item {
	return r.Items[KindChannel]
}

// VideoInfo is the rich per-video record used for channel enrichment.
type VideoInfo struct {
	DurationSec          float64 `json:"duration"`
	ViewCount            int64   `json:"viewCount"`
	Uploader             string  `json:"uploader"`
	UploaderID           string  `json:"uploaderId"`
	UploaderURL          string  `json:"uploaderUrl"`
	ChannelFollowerCount int64   `json:"channelFollowerCount"`
	UploadDate           string  `json:"uploadDate"`
	ChannelViewCount     *int64  `json:"channelViewCount,omitempty"`
	Description          string  `json:"description"`
}

// ChannelMeta is channel-level metadata resolved from a channel's
// upload listing.
type ChannelMeta struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Subscribers   int64  `json:"subscribers"`
	TotalViews    int64  `json:"totalViews"`
	URL           string `json:"url"`
	RecentUploads int    `json:"recentUploads"`
}
