package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/charlesng35/codeshelf/internal/models"
	"github.com/charlesng35/codeshelf/internal/search"
)

// snippetItem adapts a snippet to the list component.
type snippetItem struct {
	snippet models.Snippet
	matches int
}

func (i snippetItem) FilterValue() string { return i.snippet.Title }

func newItems(snippets []models.Snippet, term string) []list.Item {
	items := make([]list.Item, 0, len(snippets))
	for _, snippet := range snippets {
		count := 0
		if term != "" {
			for _, match := range search.CodeMatches(snippet.Code, term) {
				count += match.Count
			}
			count += search.MetadataMatches(snippet, term).Count()
		}
		items = append(items, snippetItem{snippet: snippet, matches: count})
	}
	return items
}

// itemDelegate renders a result row: the highlighted title with its match count and a muted
// language/category line.
type itemDelegate struct {
	styles Styles
	term   func() string
}

func (d itemDelegate) Height() int                             { return 2 }
func (d itemDelegate) Spacing() int                            { return 1 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(snippetItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = d.styles.Selected.Render("> ")
	}

	title := HighlightText(d.styles, item.snippet.Title, d.term())
	if item.matches > 0 {
		title += d.styles.Muted.Render(fmt.Sprintf(" (%d)", item.matches))
	}
	sub := d.styles.Muted.Render(strings.TrimSpace(item.snippet.Language + " · " + item.snippet.Category.Name))

	fmt.Fprint(w, lipgloss.JoinVertical(lipgloss.Left, cursor+title, "  "+sub))
}

// HighlightText renders text with every occurrence of term in the match style.
func HighlightText(styles Styles, text, term string) string {
	var b strings.Builder
	for _, span := range search.Highlight(text, term) {
		if span.Match {
			b.WriteString(styles.Match.Render(span.Text))
			continue
		}
		b.WriteString(span.Text)
	}
	return b.String()
}
