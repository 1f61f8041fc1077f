package scrape

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout indicates the scraper subprocess exceeded its wall-clock
	// budget and was killed.
	ErrTimeout = errors.New("scraper_timeout")

	// ErrEmpty indicates the scraper exited cleanly but produced no
	// parseable records.
	ErrEmpty = errors.New("scraper_empty")

	// ErrChannelUnavailable indicates a channel id could not be resolved
	// to any metadata.
	ErrChannelUnavailable = errors.New("channel_unavailable")
)

// ToolError carries a short stderr excerpt from a failed scraper run.
// The excerpt stays internal; HTTP responses never include it.
type ToolError struct {
	Stderr string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("scraper_error: %s", e.Stderr)
}

// excerpt truncates stderr output to a loggable size.
func excerpt(stderr string) string {
	const max = 200
	if len(stderr) > max {
		return stderr[:max]
	}
	return stderr
}
