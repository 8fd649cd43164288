package maintenance

import (
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/charlesng35/codeshelf/internal/models"
)

// Strategy decides which snippet of a duplicate group survives.
type Strategy string

const (
	// StrategyQuality keeps the highest scoring snippet, then the earliest.
	StrategyQuality Strategy = "quality"
	// StrategyEarliest keeps the earliest created snippet.
	StrategyEarliest Strategy = "earliest"
)

// ParseStrategy maps a configuration value to a Strategy, defaulting to StrategyQuality.
func ParseStrategy(value string) Strategy {
	if Strategy(strings.ToLower(strings.TrimSpace(value))) == StrategyEarliest {
		return StrategyEarliest
	}
	return StrategyQuality
}

// QualityScore rates a snippet body. Complete HTML documents that pull Tailwind from the CDN
// and actually use its classes score highest.
func QualityScore(code string) int {
	score := 0
	if strings.Contains(code, "<!DOCTYPE html") || strings.Contains(code, "<html") {
		score += 3
	}
	if strings.Contains(code, "cdn.tailwindcss.com") {
		score += 2
	}
	if strings.Contains(code, `class="`) && strings.Contains(code, "bg-") {
		score++
	}
	if n := textLength(code); n >= 100 && n <= 2000 {
		score++
	}
	return score
}

// textLength counts characters the way browser editors do: one per UTF-16 code unit, so a
// CJK character counts once and a character outside the BMP counts twice.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// DuplicateGroup lists snippets sharing a trimmed title and the one to keep.
type DuplicateGroup struct {
	Title  string
	Keep   models.Snippet
	Remove []models.Snippet
}

// RemoveIDs returns the ids of the snippets scheduled for removal.
func (g DuplicateGroup) RemoveIDs() []uint {
	ids := make([]uint, 0, len(g.Remove))
	for _, s := range g.Remove {
		ids = append(ids, s.ID)
	}
	return ids
}

// PlanDuplicates groups snippets by trimmed title and picks a keeper for every group with more
// than one member. Groups are returned in order of first appearance.
func PlanDuplicates(snippets []models.Snippet, strategy Strategy) []DuplicateGroup {
	byTitle := make(map[string][]models.Snippet)
	var order []string
	for _, snippet := range snippets {
		title := strings.TrimSpace(snippet.Title)
		if _, seen := byTitle[title]; !seen {
			order = append(order, title)
		}
		byTitle[title] = append(byTitle[title], snippet)
	}

	var groups []DuplicateGroup
	for _, title := range order {
		members := byTitle[title]
		if len(members) < 2 {
			continue
		}

		ranked := make([]models.Snippet, len(members))
		copy(ranked, members)
		sort.SliceStable(ranked, func(i, j int) bool {
			return outranks(ranked[i], ranked[j], strategy)
		})

		groups = append(groups, DuplicateGroup{
			Title:  title,
			Keep:   ranked[0],
			Remove: ranked[1:],
		})
	}
	return groups
}

func outranks(a, b models.Snippet, strategy Strategy) bool {
	if strategy == StrategyQuality {
		if sa, sb := QualityScore(a.Code), QualityScore(b.Code); sa != sb {
			return sa > sb
		}
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
