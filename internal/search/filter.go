// Package search implements the client-side snippet search: filtering, per-line code matches,
// highlight spans and result statistics. Every function is pure and total.
package search

import (
	"strconv"
	"strings"

	"github.com/charlesng35/codeshelf/internal/models"
)

// Criteria narrows a snippet list. An empty field disables its filter.
type Criteria struct {
	// Term is matched case-insensitively against title, description, code and tag names.
	Term string
	// Language is a case-insensitive substring of the snippet language.
	Language string
	// Category is a numeric category id. A value that is not a positive integer matches nothing.
	Category string
}

// Active reports whether any criterion is set.
func (c Criteria) Active() bool {
	return c.Term != "" || c.Language != "" || strings.TrimSpace(c.Category) != ""
}

// Filter returns the snippets satisfying every active criterion, in source order. With no
// active criterion the input is returned unchanged.
func Filter(snippets []models.Snippet, criteria Criteria) []models.Snippet {
	if !criteria.Active() {
		return snippets
	}

	term := strings.ToLower(criteria.Term)
	language := strings.ToLower(criteria.Language)
	categoryID, filterCategory, categoryValid := parseCategory(criteria.Category)
	if filterCategory && !categoryValid {
		return []models.Snippet{}
	}

	out := make([]models.Snippet, 0, len(snippets))
	for _, snippet := range snippets {
		if term != "" && !containsTerm(snippet, term) {
			continue
		}
		if language != "" && !strings.Contains(strings.ToLower(snippet.Language), language) {
			continue
		}
		if filterCategory && snippet.CategoryID != categoryID {
			continue
		}
		out = append(out, snippet)
	}
	return out
}

// containsTerm expects term to be lower case already.
func containsTerm(snippet models.Snippet, term string) bool {
	if strings.Contains(strings.ToLower(snippet.Title), term) {
		return true
	}
	if snippet.Description != nil && strings.Contains(strings.ToLower(*snippet.Description), term) {
		return true
	}
	if strings.Contains(strings.ToLower(snippet.Code), term) {
		return true
	}
	for _, tag := range snippet.Tags {
		if strings.Contains(strings.ToLower(tag.Name), term) {
			return true
		}
	}
	return false
}

func parseCategory(raw string) (id uint, set bool, valid bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, false
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, true, false
	}
	return uint(value), true, true
}
