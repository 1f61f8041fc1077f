package score

// Factor maxima for the five-way decomposition.
const (
	MaxSearchVolume        = 25
	MaxCompetition         = 25
	MaxMonetization        = 20
	MaxContentAvailability = 15
	MaxTrendMomentum       = 15
)

// Volume clamp bounds. totalResults is a coarse platform estimate, so
// the derived volume is kept inside a sane band.
const (
	volumeFloor   = 10_000
	volumeCeiling = 1_500_000
)

// Metrics is the raw measurement record a score is computed from.
// Growth is nil when no view data was observed.
type Metrics struct {
	Volume           int64    `json:"volume"`
	Trend            int      `json:"trend"`
	CPM              float64  `json:"cpm"`
	ChannelCount     int      `json:"channel_count"`
	Growth           *float64 `json:"growth,omitempty"`
	TotalResults     int64    `json:"total_results"`
	VideoCount       int      `json:"video_count"`
	ChannelsInSample int      `json:"channels_in_sample"`
}

// Factor is one scored component with its ceiling and provenance.
type Factor struct {
	Score  float64 `json:"score"`
	Max    int     `json:"max"`
	Source string  `json:"source"`
}

// NicheScore is the full five-factor breakdown.
type NicheScore struct {
	Niche               string  `json:"niche"`
	SearchVolume        Factor  `json:"search_volume"`
	Competition         Factor  `json:"competition"`
	Monetization        Factor  `json:"monetization"`
	ContentAvailability Factor  `json:"content_availability"`
	TrendMomentum       Factor  `json:"trend_momentum"`
	Total               float64 `json:"total"`
	Grade               string  `json:"grade"`
}

// Sources carries per-factor provenance strings into Compose.
type Sources struct {
	SearchVolume        string
	Competition         string
	Monetization        string
	ContentAvailability string
	TrendMomentum       string
}

// BoundedVolume derives a search-volume estimate from the platform's
// result-count estimate.
func BoundedVolume(totalResults int64) int64 {
	v := totalResults * 50
	if v < volumeFloor {
		return volumeFloor
	}
	if v > volumeCeiling {
		return volumeCeiling
	}
	return v
}

// GrowthFromAvgViews converts an average top-video view count into the
// view-velocity proxy in [0.02, 0.25]. Nil when no views were observed.
func GrowthFromAvgViews(avgViews float64) *float64 {
	if avgViews <= 0 {
		return nil
	}
	g := avgViews / 1_000_000
	if g < 0.02 {
		g = 0.02
	}
	if g > 0.25 {
		g = 0.25
	}
	return &g
}

func searchVolumeScore(volume int64, trend int) float64 {
	base := float64(volume) / 100_000 * 5
	if base > 15 {
		base = 15
	}
	return base + float64(trend)/100*10
}

func competitionScore(channelCount int, growth *float64) float64 {
	var base float64
	switch {
	case channelCount < 200:
		base = 20
	case channelCount < 500:
		base = 16
	case channelCount < 1000:
		base = 12
	default:
		base = 8
	}
	if growth != nil {
		base += *growth * 30
	}
	if base > MaxCompetition {
		base = MaxCompetition
	}
	return base
}

func monetizationScore(cpm float64) float64 {
	v := cpm / 12 * 20
	if v > MaxMonetization {
		return MaxMonetization
	}
	if v < 0 {
		return 0
	}
	return v
}

func contentAvailabilityScore(videoCount, channelsInSample int, totalResults int64) float64 {
	var abundance int
	switch {
	case videoCount < 10:
		abundance = 2
	case videoCount < 20:
		abundance = 3
	case videoCount < 30:
		abundance = 4
	case videoCount < 40:
		abundance = 5
	default:
		abundance = 6
	}

	var diversity int
	switch {
	case channelsInSample < 5:
		diversity = 1
	case channelsInSample < 10:
		diversity = 2
	case channelsInSample < 15:
		diversity = 3
	default:
		diversity = 4
	}

	// Mid-band result counts leave the most room: tiny pools have
	// nothing to make, huge ones are picked over.
	var saturation int
	switch {
	case totalResults <= 1_000:
		saturation = 2
	case totalResults <= 100_000:
		saturation = 5
	case totalResults <= 1_000_000:
		saturation = 4
	default:
		saturation = 2
	}

	return float64(abundance + diversity + saturation)
}

func trendMomentumScore(trend int) float64 {
	return float64(trend) / 100 * 15
}

// Compose assembles a NicheScore from a metrics record.
func Compose(niche string, m Metrics, src Sources) *NicheScore {
	s := &NicheScore{
		Niche:               niche,
		SearchVolume:        Factor{Score: searchVolumeScore(m.Volume, m.Trend), Max: MaxSearchVolume, Source: src.SearchVolume},
		Competition:         Factor{Score: competitionScore(m.ChannelCount, m.Growth), Max: MaxCompetition, Source: src.Competition},
		Monetization:        Factor{Score: monetizationScore(m.CPM), Max: MaxMonetization, Source: src.Monetization},
		ContentAvailability: Factor{Score: contentAvailabilityScore(m.VideoCount, m.ChannelsInSample, m.TotalResults), Max: MaxContentAvailability, Source: src.ContentAvailability},
		TrendMomentum:       Factor{Score: trendMomentumScore(m.Trend), Max: MaxTrendMomentum, Source: src.TrendMomentum},
	}
	s.Total = s.SearchVolume.Score + s.Competition.Score + s.Monetization.Score +
		s.ContentAvailability.Score + s.TrendMomentum.Score
	if s.Total > 100 {
		s.Total = 100
	}
	if s.Total < 0 {
		s.Total = 0
	}
	s.Grade = Grade(s.Total)
	return s
}

// Grade maps a total to its letter grade.
func Grade(total float64) string {
	switch {
	case total >= 90:
		return "A+"
	case total >= 85:
		return "A"
	case total >= 80:
		return "A-"
	case total >= 75:
		return "B+"
	case total >= 70:
		return "B"
	case total >= 65:
		return "B-"
	case total >= 60:
		return "C+"
	case total >= 55:
		return "C"
	default:
		return "D"
	}
}
