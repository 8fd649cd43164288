package search

import "github.com/charlesng35/codeshelf/internal/models"

// Stats summarises a filtered result set.
type Stats struct {
	Snippets   int
	Matches    int
	Languages  int
	Categories int
}

// Summarize computes result statistics for the filtered snippets. Matches sums the per-line
// code occurrence counts plus one per matching metadata field and tag.
func Summarize(filtered []models.Snippet, term string) Stats {
	stats := Stats{Snippets: len(filtered)}
	languages := make(map[string]struct{})
	categories := make(map[string]struct{})

	for _, snippet := range filtered {
		languages[snippet.Language] = struct{}{}
		categories[snippet.Category.Name] = struct{}{}

		if term == "" {
			continue
		}
		for _, match := range CodeMatches(snippet.Code, term) {
			stats.Matches += match.Count
		}
		stats.Matches += MetadataMatches(snippet, term).Count()
	}

	stats.Languages = len(languages)
	stats.Categories = len(categories)
	return stats
}
