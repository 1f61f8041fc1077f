package content

import (
	"sort"
	"strings"
)

// Content types a channel can be classified as.
const (
	TypeFacelessVoiceover = "faceless_voiceover"
	TypeCompilation       = "compilation"
	TypeScreenRecording   = "screen_recording"
	TypeTutorial          = "tutorial"
	TypePossiblyFaceless  = "possibly_faceless"
	TypeUnknown           = "unknown"
)

// maxSampleVideos bounds how many recent videos feed the analysis.
const maxSampleVideos = 10

// VideoSample is the per-video metadata the analyzer reads. Duration
// may arrive as numeric seconds or as a raw string ("PT15M", "630");
// DurationSec wins when both are set, and zero with an empty raw value
// means no duration data.
type VideoSample struct {
	Title       string
	Description string
	DurationSec float64
	DurationRaw string
}

func (v VideoSample) durationSeconds() float64 {
	if v.DurationSec > 0 {
		return v.DurationSec
	}
	return ParseDuration(v.DurationRaw)
}

// Input is the channel metadata under analysis. The analyzer is a pure
// function of this input; no network, no models.
type Input struct {
	ChannelTitle       string
	ChannelDescription string
	Videos             []VideoSample
}

// Verdict is the classification result.
type Verdict struct {
	FacelessScore  int      `json:"faceless_score"`
	ContentType    string   `json:"content_type"`
	CopyIndicators []string `json:"copy_indicators"`
}

// facelessKeywords is the fixed signal vocabulary. Matches anywhere in
// titles or descriptions count.
var facelessKeywords = []string{
	"faceless", "no commentary", "voice over", "voiceover", "narration",
	"text to speech", "tts", "ai voice", "compilation", "top 10", "top 5",
	"best of", "fails", "moments", "asmr", "relaxing", "meditation",
	"ambient", "screen recording", "screen capture", "gameplay only",
	"tutorial", "how to", "explained", "facts", "stories", "reddit",
}

// Sub-vocabularies used to pick the final content type.
var (
	compilationWords = []string{"compilation", "top 10", "top 5", "best of", "fails", "moments"}
	screenWords      = []string{"screen recording", "screen capture", "gameplay only", "no commentary"}
	tutorialWords    = []string{"tutorial", "how to", "explained", "guide"}
	voiceoverWords   = []string{"voice over", "voiceover", "narration", "text to speech", "tts", "ai voice", "reddit", "stories", "facts"}
)

// signal weights; they sum to 1.
const (
	weightChannelTitle = 0.20
	weightChannelDesc  = 0.25
	weightVideoText    = 0.35
	weightFrequency    = 0.10
	weightDuration     = 0.10
)

// Analyze classifies a channel's content style from metadata alone.
func Analyze(in Input) Verdict {
	videos := in.Videos
	if len(videos) > maxSampleVideos {
		videos = videos[:maxSampleVideos]
	}

	titleScore, titleHits := keywordScore(in.ChannelTitle)
	descScore, descHits := keywordScore(in.ChannelDescription)
	videoScore, videoHits := videoTextScore(videos)
	freqScore := uploadFrequencyScore(len(videos))
	durScore := durationPatternScore(videos)

	total := weightChannelTitle*float64(titleScore) +
		weightChannelDesc*float64(descScore) +
		weightVideoText*float64(videoScore) +
		weightFrequency*float64(freqScore) +
		weightDuration*float64(durScore)

	indicators := dedupe(append(append(titleHits, descHits...), videoHits...))
	return Verdict{
		FacelessScore:  int(total),
		ContentType:    classify(indicators, int(total)),
		CopyIndicators: indicators,
	}
}

// keywordScore counts faceless-keyword occurrences in one text field,
// 15 points each, capped at 100.
func keywordScore(text string) (int, []string) {
	text = strings.ToLower(text)
	count := 0
	var hits []string
	for _, kw := range facelessKeywords {
		if strings.Contains(text, kw) {
			count++
			hits = append(hits, kw)
		}
	}
	score := count * 15
	if score > 100 {
		score = 100
	}
	return score, hits
}

// videoTextScore measures what fraction of sampled videos carry at
// least one faceless keyword in title or description.
func videoTextScore(videos []VideoSample) (int, []string) {
	if len(videos) == 0 {
		return 0, nil
	}
	matched := 0
	var hits []string
	for _, v := range videos {
		text := strings.ToLower(v.Title + " " + v.Description)
		found := false
		for _, kw := range facelessKeywords {
			if strings.Contains(text, kw) {
				hits = append(hits, kw)
				found = true
			}
		}
		if found {
			matched++
		}
	}
	return matched * 100 / len(videos), hits
}

// uploadFrequencyScore approximates uploads per week from the sample
// size over a nominal four-week window.
func uploadFrequencyScore(sampleCount int) int {
	perWeek := float64(sampleCount) / 4
	switch {
	case perWeek > 7:
		return 80
	case perWeek >= 3:
		return 60
	case perWeek >= 1:
		return 30
	default:
		return 10
	}
}

// durationPatternScore favors the 5-20 minute band typical of
// voiceover and compilation output. Zero when no duration data exists.
func durationPatternScore(videos []VideoSample) int {
	var sum float64
	n := 0
	for _, v := range videos {
		if secs := v.durationSeconds(); secs > 0 {
			sum += secs
			n++
		}
	}
	if n == 0 {
		return 0
	}
	avgMin := sum / float64(n) / 60
	switch {
	case avgMin >= 5 && avgMin <= 20:
		return 70
	case avgMin >= 3 && avgMin <= 25:
		return 50
	default:
		return 20
	}
}

// classify picks the content type from indicator counts against the
// sub-vocabularies, falling back to score thresholds.
func classify(indicators []string, totalScore int) string {
	counts := func(vocab []string) int {
		n := 0
		for _, ind := range indicators {
			for _, w := range vocab {
				if ind == w {
					n++
					break
				}
			}
		}
		return n
	}

	compilation := counts(compilationWords)
	screen := counts(screenWords)
	tutorial := counts(tutorialWords)
	voiceover := counts(voiceoverWords)

	switch {
	case compilation >= 2:
		return TypeCompilation
	case tutorial >= 1:
		return TypeTutorial
	case screen >= 1:
		return TypeScreenRecording
	case voiceover >= 1:
		return TypeFacelessVoiceover
	case totalScore >= 60:
		return TypeFacelessVoiceover
	case totalScore >= 30 || len(indicators) > 0:
		return TypePossiblyFaceless
	default:
		return TypeUnknown
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
