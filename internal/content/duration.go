package content

import (
	"regexp"
	"strconv"
	"strings"
)

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration accepts an ISO-8601 duration ("PT1H2M3S") or a whole
// number of seconds and returns seconds. Unparseable input yields 0.
func ParseDuration(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	if m := isoDurationRe.FindStringSubmatch(strings.ToUpper(raw)); m != nil {
		h, _ := strconv.Atoi(zeroIfEmpty(m[1]))
		min, _ := strconv.Atoi(zeroIfEmpty(m[2]))
		s, _ := strconv.Atoi(zeroIfEmpty(m[3]))
		return float64(h*3600 + min*60 + s)
	}

	if secs, err := strconv.ParseFloat(raw, 64); err == nil && secs >= 0 {
		return secs
	}
	return 0
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
