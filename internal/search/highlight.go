package search

import "regexp"

// Span is a fragment of highlighted text.
type Span struct {
	Text  string
	Match bool
}

// Highlight splits text around case-insensitive literal occurrences of term. Matched
// fragments keep their original casing and empty fragments are dropped.
func Highlight(text, term string) []Span {
	if term == "" {
		return []Span{{Text: text}}
	}

	pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	locs := pattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Span{{Text: text}}
	}

	spans := make([]Span, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			spans = append(spans, Span{Text: text[prev:loc[0]]})
		}
		spans = append(spans, Span{Text: text[loc[0]:loc[1]], Match: true})
		prev = loc[1]
	}
	if prev < len(text) {
		spans = append(spans, Span{Text: text[prev:]})
	}
	return spans
}
