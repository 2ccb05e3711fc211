package content

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	hashtagPattern     = regexp.MustCompile(`#\w+`)
	punctuationPattern = regexp.MustCompile(`[^\w\s]`)
	leadingNumber      = regexp.MustCompile(`^-?\d+(\.\d+)?`)
)

// WordCount is a single entry in a word-frequency ranking.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ParseMetric converts a human-readable engagement count into an integer.
// A "k" suffix scales the leading number by 1,000 and an "m" suffix by
// 1,000,000, case-insensitively ("12.3k" -> 12300, "2M" -> 2000000).
// Anything without a leading number parses to 0.
func ParseMetric(metric string) int {
	s := strings.ToLower(strings.TrimSpace(metric))
	if s == "" {
		return 0
	}

	if strings.Contains(s, "k") {
		return int(math.Round(leadingFloat(s) * 1000))
	}
	if strings.Contains(s, "m") {
		return int(math.Round(leadingFloat(s) * 1000000))
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		// Accept trailing junk after the number, e.g. "45 likes".
		return int(leadingFloat(s))
	}
	return n
}

// leadingFloat parses the numeric prefix of s, or 0 if there is none.
func leadingFloat(s string) float64 {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

// ExtractHashtags returns every #word token in text, folded to lower case,
// in order of appearance.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllString(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m))
	}
	return tags
}

// TopWords returns the limit most frequent words of length > 3 in text,
// after lowercasing and stripping punctuation. Ties are broken by first
// occurrence, so the ranking is stable for repeated input.
func TopWords(text string, limit int) []WordCount {
	cleaned := punctuationPattern.ReplaceAllString(strings.ToLower(text), "")

	type entry struct {
		word  string
		count int
		first int
	}
	counts := make(map[string]*entry)
	var order []*entry

	for i, word := range strings.Fields(cleaned) {
		if len(word) <= 3 {
			continue
		}
		e, ok := counts[word]
		if !ok {
			e = &entry{word: word, first: i}
			counts[word] = e
			order = append(order, e)
		}
		e.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	result := make([]WordCount, 0, len(order))
	for _, e := range order {
		result = append(result, WordCount{Word: e.word, Count: e.count})
	}
	return result
}

// CountWords reports the number of whitespace-separated tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// truncate returns s cut to at most limit characters (runes).
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
