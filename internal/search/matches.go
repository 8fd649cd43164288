package search

import (
	"strings"

	"github.com/charlesng35/codeshelf/internal/models"
)

// LineMatch describes one code line containing the search term.
type LineMatch struct {
	// Line is 1-based.
	Line    int
	Content string
	Before  string
	After   string
	// Count is the number of non-overlapping occurrences of the term on the line.
	Count int
}

// CodeMatches returns a record for every line of code containing term, in line order.
// Context lines are reported as-is even when they match too.
func CodeMatches(code, term string) []LineMatch {
	if term == "" {
		return nil
	}

	needle := strings.ToLower(term)
	lines := strings.Split(code, "\n")

	var matches []LineMatch
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, needle) {
			continue
		}

		match := LineMatch{
			Line:    i + 1,
			Content: strings.TrimSpace(line),
			Count:   strings.Count(lower, needle),
		}
		if i > 0 {
			match.Before = strings.TrimSpace(lines[i-1])
		}
		if i+1 < len(lines) {
			match.After = strings.TrimSpace(lines[i+1])
		}
		matches = append(matches, match)
	}
	return matches
}

// Metadata records which snippet fields outside the code contain the term.
type Metadata struct {
	Title       bool
	Description bool
	Category    bool
	Language    bool
	Tags        []string
}

// Count is the number of matching fields, counting each matching tag once.
func (m Metadata) Count() int {
	n := len(m.Tags)
	for _, hit := range []bool{m.Title, m.Description, m.Category, m.Language} {
		if hit {
			n++
		}
	}
	return n
}

// MetadataMatches reports the metadata fields of snippet that contain term.
func MetadataMatches(snippet models.Snippet, term string) Metadata {
	if term == "" {
		return Metadata{}
	}

	needle := strings.ToLower(term)
	has := func(s string) bool { return strings.Contains(strings.ToLower(s), needle) }

	meta := Metadata{
		Title:       has(snippet.Title),
		Description: snippet.Description != nil && has(*snippet.Description),
		Category:    has(snippet.Category.Name),
		Language:    has(snippet.Language),
	}
	for _, tag := range snippet.Tags {
		if has(tag.Name) {
			meta.Tags = append(meta.Tags, tag.Name)
		}
	}
	return meta
}
