package answer

import "strings"

const (
	relevantTake = 2
	fallbackTake = 1
)

var defaultKeywords = []string{
	"currently", "title", "role", "current", "today", "now", "is", "latest", "update", "position",
}

// KeywordSet holds the lowercase words used to judge snippet relevance.
type KeywordSet struct {
	words []string
}

// DefaultKeywords returns the built-in keyword set.
func DefaultKeywords() KeywordSet {
	return NewKeywordSet(nil)
}

// NewKeywordSet returns the built-in keywords followed by extra, lowercased.
func NewKeywordSet(extra []string) KeywordSet {
	words := clone(defaultKeywords)
	for _, w := range extra {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			words = append(words, w)
		}
	}
	return KeywordSet{words: words}
}

// Words returns a copy of the keywords.
func (k KeywordSet) Words() []string { return clone(k.words) }

// Matches reports whether the lowercased snippet contains any keyword.
func (k KeywordSet) Matches(snippet string) bool {
	lower := strings.ToLower(snippet)
	for _, w := range k.words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// RankAndReduce reduces search snippets to a single answer string.
// Keyword-relevant snippets win (first two, joined by a space); otherwise the
// first snippet is used as-is. An empty input yields an empty string.
func (k KeywordSet) RankAndReduce(snippets []string) string {
	if len(snippets) == 0 {
		return ""
	}

	var relevant []string
	for _, s := range snippets {
		if k.Matches(s) {
			relevant = append(relevant, s)
		}
	}

	if len(relevant) > 0 {
		return strings.TrimSpace(strings.Join(relevant[:min(relevantTake, len(relevant))], " "))
	}
	return strings.TrimSpace(strings.Join(snippets[:min(fallbackTake, len(snippets))], " "))
}
