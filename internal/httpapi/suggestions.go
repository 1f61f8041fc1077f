package httpapi

import (
	"math/rand"
	"sort"
)

const (
	suggestionCategories = 4
	nichesPerCategory    = 3
)

// suggestionSeed is the static idea list behind the suggestions
// endpoint. Categories and phrasing mirror the CPM database so scored
// follow-ups land on known ground.
var suggestionSeed = map[string][]string{
	"Technology": {
		"ai tools explained", "coding tutorials", "smart home setups",
		"linux for beginners", "cybersecurity basics",
	},
	"Finance": {
		"personal finance tips", "dividend investing", "crypto explained",
		"budgeting for beginners", "side hustle ideas",
	},
	"Health & Fitness": {
		"home workout routines", "meal prep guides", "yoga for beginners",
		"running training plans", "sleep science",
	},
	"Education": {
		"history documentaries", "science explained", "language learning",
		"math tutorials", "study techniques",
	},
	"Entertainment": {
		"movie breakdowns", "anime recaps", "celebrity news analysis",
		"reaction compilations", "mystery stories",
	},
	"Lifestyle": {
		"minimalism", "van life", "productivity systems",
		"home organization", "travel on a budget",
	},
	"Gaming": {
		"indie game reviews", "speedrun analysis", "gaming history",
		"strategy guides", "retro gaming",
	},
	"Food": {
		"easy weeknight dinners", "baking basics", "street food tours",
		"fermentation at home", "budget cooking",
	},
}

// Suggestion is one category with a handful of starter niches.
type Suggestion struct {
	Category string   `json:"category"`
	Niches   []string `json:"niches"`
}

// pickSuggestions draws four random categories with three niches each.
func pickSuggestions(rng *rand.Rand) []Suggestion {
	categories := make([]string, 0, len(suggestionSeed))
	for c := range suggestionSeed {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	rng.Shuffle(len(categories), func(i, j int) {
		categories[i], categories[j] = categories[j], categories[i]
	})
	if len(categories) > suggestionCategories {
		categories = categories[:suggestionCategories]
	}

	picks := make([]Suggestion, 0, len(categories))
	for _, c := range categories {
		niches := append([]string(nil), suggestionSeed[c]...)
		rng.Shuffle(len(niches), func(i, j int) {
			niches[i], niches[j] = niches[j], niches[i]
		})
		if len(niches) > nichesPerCategory {
			niches = niches[:nichesPerCategory]
		}
		picks = append(picks, Suggestion{Category: c, Niches: niches})
	}
	return picks
}
