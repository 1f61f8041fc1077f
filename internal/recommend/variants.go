package recommend

import (
	"strings"
)

// maxVariants caps how many candidate phrases one niche expands into.
const maxVariants = 12

// synonyms is the fixed substitution table. Keys and replacements are
// matched at word granularity.
var synonyms = map[string][]string{
	"tutorial":  {"guide", "how to", "lesson", "course"},
	"tutorials": {"guides", "lessons", "courses"},
	"ai":        {"artificial intelligence", "machine learning", "chatgpt"},
	"crypto":    {"cryptocurrency", "bitcoin"},
	"review":    {"comparison", "breakdown"},
	"reviews":   {"comparisons", "breakdowns"},
	"workout":   {"exercise", "fitness training"},
	"tips":      {"tricks", "hacks", "secrets"},
	"money":     {"income", "wealth"},
	"beginner":  {"starter", "newbie"},
	"cooking":   {"recipes", "meal prep"},
	"gaming":    {"gameplay", "video games"},
}

// decorations are content-type suffixes appended to the cleaned base.
// "how to" goes in front instead.
var decorations = []string{
	"reviews", "tutorial", "guide", "tips", "for beginners",
	"analysis", "explained", "2024", "how to",
}

// fillerWords are stripped when building the cleaned base.
var fillerWords = map[string]bool{
	"channel":  true,
	"channels": true,
	"video":    true,
	"videos":   true,
	"youtube":  true,
	"content":  true,
	"niche":    true,
	"the":      true,
	"a":        true,
}

// Variants derives up to maxVariants related niche phrases from
// synonym substitution and content-type decoration. Output order is
// deterministic but carries no ranking meaning.
func Variants(niche string) []string {
	niche = strings.ToLower(strings.TrimSpace(niche))
	if niche == "" {
		return nil
	}

	seen := map[string]bool{niche: true}
	var out []string
	emit := func(v string) {
		v = strings.Join(strings.Fields(v), " ")
		if len(v) < 4 || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	words := strings.Fields(niche)
	for i, w := range words {
		subs, ok := synonyms[w]
		if !ok {
			continue
		}
		for _, sub := range subs {
			replaced := make([]string, len(words))
			copy(replaced, words)
			replaced[i] = sub
			emit(strings.Join(replaced, " "))
		}
	}

	base := cleanedBase(words)
	for _, dec := range decorations {
		if strings.Contains(base, dec) {
			continue
		}
		if dec == "how to" {
			emit(dec + " " + base)
		} else {
			emit(base + " " + dec)
		}
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

// cleanedBase drops filler words so decorations read naturally.
func cleanedBase(words []string) string {
	var kept []string
	for _, w := range words {
		if !fillerWords[w] {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return strings.Join(words, " ")
	}
	return strings.Join(kept, " ")
}
