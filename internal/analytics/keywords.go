package analytics

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hireai/waitlist-manager/internal/entity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	minKeywordLen = 4
	topKeywords   = 20
)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "that", "have", "for", "not", "with", "you", "this", "but",
		"his", "from", "they", "will", "would", "there", "their", "what", "about",
		"which", "when", "make", "like", "time", "just", "know", "people", "into",
		"year", "good", "some", "could", "them", "see", "other", "than", "then",
		"now", "look", "only", "come", "its", "over", "think", "also", "back",
		"after", "use", "two", "how", "our", "work", "first", "well", "way", "even",
		"new", "want", "because", "any", "these", "give", "day", "most", "us",
	} {
		stopwords[w] = struct{}{}
	}
}

// tokenize lowercases text and splits it on runs of anything that is not a
// letter or a digit.
func tokenize(text string) []string {
	lower := cases.Lower(language.Und).String(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func keep(word string) bool {
	if utf8.RuneCountInString(word) < minKeywordLen {
		return false
	}
	_, stop := stopwords[word]
	return !stop
}

// Keywords counts pain point words across all entries and returns the most
// frequent ones, ties broken lexically.
func Keywords(entries []entity.WaitlistEntry) entity.PainPointSummary {
	counts := map[string]int{}
	for _, e := range entries {
		for _, w := range tokenize(e.PainPoints) {
			if keep(w) {
				counts[w]++
			}
		}
	}

	words := make([]entity.WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, entity.WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if len(words) > topKeywords {
		words = words[:topKeywords]
	}

	return entity.PainPointSummary{
		TotalEntries: len(entries),
		TopWords:     words,
	}
}
