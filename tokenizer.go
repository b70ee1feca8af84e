package datefmt

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Tokenize splits pattern into token and literal segments. At every position the
// longest vocabulary entry that matches wins; unmatched runes accumulate into a
// single literal segment until the next token starts.
func Tokenize(pattern string, vocabulary []string) []Segment {
	return tokenize(pattern, orderVocabulary(vocabulary))
}

// orderVocabulary sorts tokens longest first, ties broken lexicographically,
// and drops empty or duplicate entries.
func orderVocabulary(vocabulary []string) []string {
	seen := make(map[string]struct{}, len(vocabulary))
	ordered := make([]string, 0, len(vocabulary))
	for _, token := range vocabulary {
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		ordered = append(ordered, token)
	}

	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})
	return ordered
}

// tokenize expects vocabulary already ordered by orderVocabulary.
func tokenize(pattern string, vocabulary []string) []Segment {
	if pattern == "" {
		return nil
	}

	segments := make([]Segment, 0, 8)
	literalStart := -1

	flushLiteral := func(end int) {
		if literalStart < 0 {
			return
		}
		segments = append(segments, Segment{Kind: SegmentLiteral, Value: pattern[literalStart:end]})
		literalStart = -1
	}

	for pos := 0; pos < len(pattern); {
		rest := pattern[pos:]

		matched := ""
		for _, token := range vocabulary {
			if strings.HasPrefix(rest, token) {
				matched = token
				break
			}
		}

		if matched != "" {
			flushLiteral(pos)
			segments = append(segments, Segment{Kind: SegmentToken, Value: matched})
			pos += len(matched)
			continue
		}

		if literalStart < 0 {
			literalStart = pos
		}
		_, size := utf8.DecodeRuneInString(rest)
		pos += size
	}

	flushLiteral(len(pattern))
	return segments
}
