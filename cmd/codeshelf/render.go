package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/charlesng35/codeshelf/internal/models"
	"github.com/charlesng35/codeshelf/internal/tui"
)

const defaultWrap = 100

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or defaultWrap when it is not a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 20 {
			return width
		}
	}
	return defaultWrap
}

// useColor resolves the --color flag against the output.
func useColor(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(w)
	}
}

// outputStyles returns the browser palette, or unstyled output when colour is off.
func outputStyles(color bool) tui.Styles {
	if color {
		return tui.DefaultStyles()
	}
	plain := lipgloss.NewStyle()
	return tui.Styles{
		Header: plain, Label: plain, Muted: plain, Match: plain, Selected: plain,
		Error: plain, Pane: plain, Focused: plain,
		LineNo: plain.Width(5).Align(lipgloss.Right),
	}
}

// snippetMarkdown renders a snippet as a markdown document with a fenced code block.
func snippetMarkdown(snippet models.Snippet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", snippet.Title)
	if desc := snippet.DescriptionText(); desc != "" {
		fmt.Fprintf(&b, "%s\n\n", desc)
	}
	fmt.Fprintf(&b, "- **ID:** %d\n", snippet.ID)
	fmt.Fprintf(&b, "- **Language:** %s\n", snippet.Language)
	fmt.Fprintf(&b, "- **Category:** %s\n", snippet.Category.Name)
	if tags := snippet.TagNames(); len(tags) > 0 {
		fmt.Fprintf(&b, "- **Tags:** %s\n", strings.Join(tags, ", "))
	}
	if !snippet.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "- **Updated:** %s\n", snippet.UpdatedAt.Format("2006-01-02 15:04"))
	}

	fence := "```"
	for strings.Contains(snippet.Code, fence) {
		fence += "`"
	}
	fmt.Fprintf(&b, "\n%s%s\n%s\n%s\n", fence, snippet.Language, strings.TrimRight(snippet.Code, "\n"), fence)
	return b.String()
}

// renderMarkdown styles markdown for the terminal, or returns it unchanged without colour.
func renderMarkdown(markdown string, color bool, width int) (string, error) {
	if !color {
		return markdown, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(markdown)
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}
