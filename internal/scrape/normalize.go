package scrape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// rawRecord is the superset of scraper JSON fields we read. The scraper
// emits one JSON object per stdout line; unknown fields are ignored.
type rawRecord struct {
	ID                   string  `json:"id"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	URL                  string  `json:"url"`
	WebpageURL           string  `json:"webpage_url"`
	Channel              string  `json:"channel"`
	ChannelID            string  `json:"channel_id"`
	ChannelURL           string  `json:"channel_url"`
	Uploader             string  `json:"uploader"`
	UploaderID           string  `json:"uploader_id"`
	UploaderURL          string  `json:"uploader_url"`
	UploadDate           string  `json:"upload_date"`
	Timestamp            int64   `json:"timestamp"`
	ViewCount            *int64  `json:"view_count"`
	Duration             float64 `json:"duration"`
	ChannelFollowerCount int64   `json:"channel_follower_count"`
	ChannelViewCount     *int64  `json:"channel_view_count"`
	Thumbnail            string  `json:"thumbnail"`
	Thumbnails           []struct {
		URL string `json:"url"`
	} `json:"thumbnails"`
	PlaylistCount int `json:"playlist_count"`
}

// parseLines decodes one record per stdout line, dropping lines that do
// not parse. Returns ErrEmpty when nothing parses.
func parseLines(stdout []byte) ([]rawRecord, error) {
	var records []rawRecord
	for _, line := range bytes.Split(stdout, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var rec rawRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			log.Debug().Err(err).Msg("dropping unparseable scraper line")
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	return records, nil
}

// isChannelID reports whether id has the platform's channel-id shape.
func isChannelID(id string) bool {
	return strings.HasPrefix(id, "UC") && len(id) >= 20
}

// channelURLFor builds a canonical channel URL, preferring the uploader
// handle over the opaque channel id.
func channelURLFor(handle, channelID string) string {
	if handle != "" {
		return "https://www.youtube.com/" + normalizeHandle(handle)
	}
	if channelID != "" {
		return "https://www.youtube.com/channel/" + channelID
	}
	return ""
}

// normalizeHandle ensures the leading handle marker is present.
func normalizeHandle(handle string) string {
	if strings.HasPrefix(handle, "@") {
		return handle
	}
	return "@" + handle
}

// uploadDateToISO converts the scraper's YYYYMMDD date to RFC 3339 at
// UTC midnight. The scraper emits no timezone; UTC is assumed.
func uploadDateToISO(yyyymmdd string) string {
	t, err := time.ParseInLocation("20060102", yyyymmdd, time.UTC)
	if err != nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// isoToUploadDate is the inverse of uploadDateToISO.
func isoToUploadDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return ""
	}
	return t.UTC().Format("20060102")
}

// truncateDescription bounds description text carried in search items.
func truncateDescription(s string) string {
	const max = 200
	if len(s) > max {
		return s[:max]
	}
	return s
}

func (r *rawRecord) publishedISO() string {
	if r.UploadDate != "" {
		return uploadDateToISO(r.UploadDate)
	}
	if r.Timestamp > 0 {
		return time.Unix(r.Timestamp, 0).UTC().Format(time.RFC3339)
	}
	return ""
}

func (r *rawRecord) thumbnailURL() string {
	if r.Thumbnail != "" {
		return r.Thumbnail
	}
	if len(r.Thumbnails) > 0 {
		return r.Thumbnails[len(r.Thumbnails)-1].URL
	}
	return ""
}

func (r *rawRecord) uploaderHandle() string {
	if strings.HasPrefix(r.UploaderID, "@") {
		return r.UploaderID
	}
	return ""
}

// normalizeSearch maps raw records to the uniform SearchResult schema.
// The totalResults estimate falls back to the sample size when the
// scraper reports no playlist count.
func normalizeSearch(records []rawRecord, typeFilter string) *SearchResult {
	result := &SearchResult{Items: map[string][]Item{
		KindVideo:   {},
		KindChannel: {},
	}}

	var total int64
	for _, rec := range records {
		if rec.PlaylistCount > 0 && int64(rec.PlaylistCount) > total {
			total = int64(rec.PlaylistCount)
		}

		item := normalizeItem(rec)
		if typeFilter != TypeAll && typeFilter != "" && item.Kind != typeFilter {
			continue
		}
		result.Items[item.Kind] = append(result.Items[item.Kind], item)
	}

	if total == 0 {
		total = int64(len(result.Items[KindVideo]) + len(result.Items[KindChannel]))
	}
	result.PageInfo.TotalResults = total
	return result
}

func normalizeItem(rec rawRecord) Item {
	kind := KindVideo
	if isChannelID(rec.ID) {
		kind = KindChannel
	}

	channelID := rec.ChannelID
	if channelID == "" && kind == KindChannel {
		channelID = rec.ID
	}
	channelTitle := rec.Channel
	if channelTitle == "" {
		channelTitle = rec.Uploader
	}

	handle := rec.uploaderHandle()
	return Item{
		Kind:         kind,
		ID:           rec.ID,
		Title:        rec.Title,
		ChannelID:    channelID,
		ChannelTitle: channelTitle,
		Handle:       handle,
		ChannelURL:   channelURLFor(handle, channelID),
		Description:  truncateDescription(rec.Description),
		PublishedAt:  rec.publishedISO(),
		ThumbnailURL: rec.thumbnailURL(),
		ViewCount:    rec.ViewCount,
	}
}

func normalizeVideoInfo(rec rawRecord) *VideoInfo {
	return &VideoInfo{
		DurationSec:          rec.Duration,
		ViewCount:            derefInt64(rec.ViewCount),
		Uploader:             rec.Uploader,
		UploaderID:           rec.UploaderID,
		UploaderURL:          rec.UploaderURL,
		ChannelFollowerCount: rec.ChannelFollowerCount,
		UploadDate:           rec.UploadDate,
		ChannelViewCount:     rec.ChannelViewCount,
		Description:          rec.Description,
	}
}

// channelTarget resolves a channel reference, which may be a native id,
// a marked handle, or a bare handle, to a scrapeable URL.
func channelTarget(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty channel reference: %w", ErrChannelUnavailable)
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	if isChannelID(ref) {
		return "https://www.youtube.com/channel/" + ref, nil
	}
	return "https://www.youtube.com/" + normalizeHandle(ref), nil
}

func derefInt64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
