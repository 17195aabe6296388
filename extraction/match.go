package extraction

import (
	"strings"
	"unicode"
)

// perKeywordHitCap bounds how many occurrences of a single keyword count
// toward a document's match strength, so one repeated term cannot saturate
// the score on its own.
const perKeywordHitCap = 5

// docMatch summarizes how strongly one document matched a keyword set.
type docMatch struct {
	distinct   int
	total      int
	matched    []string
	firstIndex int
}

// matchDocument scans content for the given keywords. Single-word keywords
// match on word boundaries; multi-word phrases match as substrings. All
// matching is case-insensitive.
func matchDocument(content string, keywords []string) docMatch {
	m := docMatch{firstIndex: -1}
	if content == "" {
		return m
	}

	lower := strings.ToLower(content)
	for _, kw := range keywords {
		count, first := countOccurrences(lower, strings.ToLower(kw))
		if count == 0 {
			continue
		}
		if count > perKeywordHitCap {
			count = perKeywordHitCap
		}
		m.distinct++
		m.total += count
		m.matched = append(m.matched, kw)
		if m.firstIndex < 0 || first < m.firstIndex {
			m.firstIndex = first
		}
	}
	return m
}

// countOccurrences counts keyword occurrences in lowered text and returns
// the count and the byte index of the first occurrence (-1 when none).
// Single-token keywords require word boundaries on both sides.
func countOccurrences(lower, keyword string) (int, int) {
	if keyword == "" {
		return 0, -1
	}
	boundary := !strings.ContainsAny(keyword, " -/")

	count := 0
	first := -1
	for start := 0; ; {
		idx := strings.Index(lower[start:], keyword)
		if idx < 0 {
			break
		}
		abs := start + idx
		if !boundary || isWordBoundary(lower, abs, len(keyword)) {
			count++
			if first < 0 {
				first = abs
			}
		}
		start = abs + 1
	}
	return count, first
}

// isWordBoundary reports whether the match at [idx, idx+length) is delimited
// by non-letter, non-digit runes on both sides.
func isWordBoundary(s string, idx, length int) bool {
	if idx > 0 {
		before := rune(s[idx-1])
		if unicode.IsLetter(before) || unicode.IsDigit(before) {
			return false
		}
	}
	end := idx + length
	if end < len(s) {
		after := rune(s[end])
		if unicode.IsLetter(after) || unicode.IsDigit(after) {
			return false
		}
	}
	return true
}

// confidenceFor converts match strength into a confidence value. Distinct
// keyword coverage dominates; repeated hits add a smaller bonus. The result
// is monotone in both inputs and clamped to [0, 1].
func confidenceFor(m docMatch) float64 {
	if m.distinct == 0 {
		return 0
	}
	total := m.total
	if total > 10 {
		total = 10
	}
	conf := 0.2*float64(m.distinct) + 0.05*float64(total)
	if conf > 1 {
		conf = 1
	}
	return conf
}

// excerptAround extracts a window of text surrounding the match at idx,
// trimmed to rune boundaries and whitespace, with ellipses marking cuts.
func excerptAround(content string, idx int) string {
	const before, after = 80, 160

	if idx < 0 || idx >= len(content) {
		return ""
	}

	start := idx - before
	if start < 0 {
		start = 0
	}
	end := idx + after
	if end > len(content) {
		end = len(content)
	}

	// Back off to rune boundaries so the window never splits a code point.
	for start > 0 && !isRuneStart(content[start]) {
		start--
	}
	for end < len(content) && !isRuneStart(content[end]) {
		end++
	}

	excerpt := strings.TrimSpace(content[start:end])
	if start > 0 {
		excerpt = "…" + excerpt
	}
	if end < len(content) {
		excerpt += "…"
	}
	return excerpt
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
