// Package filter provides pure token matching for the incremental filters.
// All functions are simple: strings in, ranges out. No side effects.
package filter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Range is a matched span of a haystack, as byte offsets [Start, End).
type Range struct {
	Start int
	End   int
}

// Segment is a piece of rendered text, either matched or plain.
type Segment struct {
	Text    string
	Matched bool
}

// Tokenize lowercases text and splits it on whitespace.
// An empty or blank filter yields an empty slice.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	if fields == nil {
		return []string{}
	}
	return fields
}

// FindSequentialMatches finds each token in haystack, in order and without
// overlap: every search starts where the previous match ended.
//
// Tokens are trimmed and blank ones ignored. An empty token list trivially
// matches and returns an empty, non-nil slice. If any token is missing, it
// returns nil.
func FindSequentialMatches(haystack string, tokens []string) []Range {
	ranges := make([]Range, 0, len(tokens))
	if len(tokens) == 0 {
		return ranges
	}

	folded := fold(haystack)
	from := 0
	for _, token := range tokens {
		needle := []rune(strings.ToLower(strings.TrimSpace(token)))
		if len(needle) == 0 {
			continue
		}
		at := indexRunes(folded, needle, from)
		if at < 0 {
			return nil
		}
		end := at + len(needle)
		ranges = append(ranges, Range{Start: folded[at].offset, End: endOffset(folded, end, len(haystack))})
		from = end
	}
	return ranges
}

// Matches reports whether every token appears in haystack in order.
func Matches(haystack string, tokens []string) bool {
	return FindSequentialMatches(haystack, tokens) != nil
}

// MatchesAny reports whether any of the haystacks matches the tokens.
func MatchesAny(haystacks []string, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	for _, h := range haystacks {
		if Matches(h, tokens) {
			return true
		}
	}
	return false
}

// Segments splits text into plain and matched pieces. Ranges must be
// sorted and non-overlapping, as FindSequentialMatches returns them.
// Ranges reaching past the end of text are clipped.
func Segments(text string, ranges []Range) []Segment {
	if len(ranges) == 0 {
		if text == "" {
			return nil
		}
		return []Segment{{Text: text}}
	}

	var segments []Segment
	cursor := 0
	for _, r := range ranges {
		start, end := clip(r.Start, len(text)), clip(r.End, len(text))
		if start < cursor || start >= end {
			continue
		}
		if start > cursor {
			segments = append(segments, Segment{Text: text[cursor:start]})
		}
		segments = append(segments, Segment{Text: text[start:end], Matched: true})
		cursor = end
	}
	if cursor < len(text) {
		segments = append(segments, Segment{Text: text[cursor:]})
	}
	return segments
}

type foldedRune struct {
	r      rune
	offset int
}

// fold lowercases s rune by rune, remembering each rune's byte offset so
// matches map back onto the original string.
func fold(s string) []foldedRune {
	out := make([]foldedRune, 0, utf8.RuneCountInString(s))
	for i, r := range s {
		out = append(out, foldedRune{r: unicode.ToLower(r), offset: i})
	}
	return out
}

func indexRunes(hay []foldedRune, needle []rune, from int) int {
	for i := from; i+len(needle) <= len(hay); i++ {
		match := true
		for j, r := range needle {
			if hay[i+j].r != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func endOffset(hay []foldedRune, idx, total int) int {
	if idx >= len(hay) {
		return total
	}
	return hay[idx].offset
}

func clip(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
