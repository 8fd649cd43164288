// Package tui implements the interactive snippet browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/charlesng35/codeshelf/internal/browser"
	"github.com/charlesng35/codeshelf/internal/models"
	"github.com/charlesng35/codeshelf/internal/search"
)

type focusArea int

const (
	focusSearch focusArea = iota
	focusLanguage
	focusCategory
	focusList
	focusCount
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirmDelete
)

// refreshedMsg reports the outcome of a background refresh.
type refreshedMsg struct {
	err error
}

// mutatedMsg reports the outcome of a create, update or delete. The state has already
// re-fetched on success.
type mutatedMsg struct {
	err error
}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx    context.Context
	state  *browser.State
	styles Styles

	inputs   [3]textinput.Model
	list     list.Model
	viewport viewport.Model
	focus    focusArea
	loading  bool

	mode    mode
	form    snippetForm
	pending models.Snippet

	width  int
	height int
}

// New builds a browser model over state. Data is loaded by the command returned from Init.
func New(ctx context.Context, state *browser.State) Model {
	styles := DefaultStyles()

	term := textinput.New()
	term.Prompt = "search: "
	term.Placeholder = "title, description, code or tag"
	term.Focus()

	language := textinput.New()
	language.Prompt = "language: "
	language.Placeholder = "any"

	category := textinput.New()
	category.Prompt = "category id: "
	category.Placeholder = "any"
	category.CharLimit = 10

	delegate := itemDelegate{styles: styles, term: func() string { return state.Criteria().Term }}
	results := list.New(nil, delegate, 0, 0)
	results.SetShowTitle(false)
	results.SetShowHelp(false)
	results.SetShowStatusBar(false)
	results.SetFilteringEnabled(false)

	return Model{
		ctx:      ctx,
		state:    state,
		styles:   styles,
		inputs:   [3]textinput.Model{term, language, category},
		list:     results,
		viewport: viewport.New(0, 0),
		loading:  true,
	}
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	state, ctx := m.state, m.ctx
	return func() tea.Msg {
		return refreshedMsg{err: state.Refresh(ctx)}
	}
}

// Update handles input and refresh results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		m.syncResults()
		return m, nil

	case refreshedMsg:
		m.loading = false
		m.syncResults()
		return m, nil

	case mutatedMsg:
		m.loading = false
		if msg.err == nil {
			m.mode = modeBrowse
		}
		m.syncResults()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}

		switch msg.String() {
		case "tab":
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + focusCount - 1) % focusCount)
			return m, nil
		case "esc":
			if m.state.Err() != "" {
				m.state.ClearError()
				return m, nil
			}
		case "ctrl+r":
			m.loading = true
			return m, m.refresh()
		}

		if m.focus == focusList {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "r":
				m.loading = true
				return m, m.refresh()
			case "x":
				m.state.ClearError()
				return m, nil
			case "n":
				m.openForm(nil)
				return m, textinput.Blink
			case "e":
				if selected, ok := m.Selected(); ok {
					m.openForm(&selected)
					return m, textinput.Blink
				}
				return m, nil
			case "d":
				if selected, ok := m.Selected(); ok {
					m.pending = selected
					m.mode = modeConfirmDelete
				}
				return m, nil
			case "pgdown", "pgup", "J", "K":
				var cmd tea.Cmd
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			m.syncDetail()
			return m, cmd
		}

		idx := int(m.focus)
		before := m.inputs[idx].Value()
		var cmd tea.Cmd
		m.inputs[idx], cmd = m.inputs[idx].Update(msg)
		cmds = append(cmds, cmd)
		if m.inputs[idx].Value() != before {
			m.applyCriteria()
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) openForm(snippet *models.Snippet) {
	m.form = newSnippetForm(snippet)
	m.form.setSize(m.width, m.height)
	m.mode = modeForm
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "ctrl+s":
		categoryID, tagIDs, err := m.form.resolve(m.state.Categories(), m.state.Tags())
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form.err = ""
		m.loading = true
		state, ctx := m.state, m.ctx
		if m.form.id == 0 {
			input := m.form.createInput(categoryID, tagIDs)
			return m, func() tea.Msg { return mutatedMsg{err: state.Create(ctx, input)} }
		}
		id, input := m.form.id, m.form.updateInput(categoryID, tagIDs)
		return m, func() tea.Msg { return mutatedMsg{err: state.Update(ctx, id, input)} }
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeBrowse
		m.loading = true
		state, ctx, id := m.state, m.ctx, m.pending.ID
		return m, func() tea.Msg { return mutatedMsg{err: state.Delete(ctx, id)} }
	case "n", "N", "esc":
		m.mode = modeBrowse
	}
	return m, nil
}

func (m *Model) setFocus(focus focusArea) {
	m.focus = focus
	for i := range m.inputs {
		if focusArea(i) == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) applyCriteria() {
	m.state.SetCriteria(search.Criteria{
		Term:     m.inputs[focusSearch].Value(),
		Language: m.inputs[focusLanguage].Value(),
		Category: m.inputs[focusCategory].Value(),
	})
	m.syncResults()
}

// syncResults rebuilds the list from the filtered snippets.
func (m *Model) syncResults() {
	term := m.state.Criteria().Term
	m.list.SetItems(newItems(m.state.Filtered(), term))
	m.syncDetail()
}

func (m *Model) syncDetail() {
	item, ok := m.list.SelectedItem().(snippetItem)
	if !ok {
		m.viewport.SetContent(m.styles.Muted.Render("No snippet selected."))
		return
	}
	m.viewport.SetContent(m.renderDetail(item.snippet))
	m.viewport.GotoTop()
}

func (m *Model) setSize(w, h int) {
	m.width = w
	m.height = h

	// header(1) + inputs(3) + summary(1) + footer(1) + banner(1) + borders(2)
	paneH := h - 9
	if paneH < 3 {
		paneH = 3
	}
	listW := w * 2 / 5
	detailW := w - listW

	m.list.SetSize(max(listW-4, 10), paneH)
	m.viewport.Width = max(detailW-4, 10)
	m.viewport.Height = paneH
	if m.mode == modeForm {
		m.form.setSize(w, h)
	}
}

// Selected returns the highlighted snippet, if any.
func (m Model) Selected() (models.Snippet, bool) {
	item, ok := m.list.SelectedItem().(snippetItem)
	return item.snippet, ok
}

func (m Model) renderDetail(snippet models.Snippet) string {
	term := m.state.Criteria().Term
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(HighlightText(m.styles, snippet.Title, term)))
	b.WriteString("\n")
	meta := fmt.Sprintf("#%d · %s · %s", snippet.ID, snippet.Language, snippet.Category.Name)
	if tags := snippet.TagNames(); len(tags) > 0 {
		meta += " · " + strings.Join(tags, ", ")
	}
	b.WriteString(m.styles.Muted.Render(meta))
	b.WriteString("\n")
	if desc := snippet.DescriptionText(); desc != "" {
		b.WriteString(HighlightText(m.styles, desc, term))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if term == "" {
		for i, line := range strings.Split(snippet.Code, "\n") {
			b.WriteString(m.styles.LineNo.Render(fmt.Sprint(i + 1)))
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		return b.String()
	}

	matched := search.MetadataMatches(snippet, term)
	if fields := matchedFields(matched); len(fields) > 0 {
		b.WriteString(m.styles.Label.Render("Matches in: "))
		b.WriteString(strings.Join(fields, ", "))
		b.WriteString("\n\n")
	}

	lines := search.CodeMatches(snippet.Code, term)
	if len(lines) == 0 {
		b.WriteString(m.styles.Muted.Render("No matches in code."))
		return b.String()
	}
	for _, match := range lines {
		if match.Before != "" {
			b.WriteString(m.styles.LineNo.Render(fmt.Sprint(match.Line - 1)))
			b.WriteString("  " + m.styles.Muted.Render(match.Before) + "\n")
		}
		b.WriteString(m.styles.LineNo.Render(fmt.Sprint(match.Line)))
		b.WriteString("  " + HighlightText(m.styles, match.Content, term) + "\n")
		if match.After != "" {
			b.WriteString(m.styles.LineNo.Render(fmt.Sprint(match.Line + 1)))
			b.WriteString("  " + m.styles.Muted.Render(match.After) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func matchedFields(meta search.Metadata) []string {
	var fields []string
	if meta.Title {
		fields = append(fields, "title")
	}
	if meta.Description {
		fields = append(fields, "description")
	}
	if meta.Category {
		fields = append(fields, "category")
	}
	if meta.Language {
		fields = append(fields, "language")
	}
	for _, tag := range meta.Tags {
		fields = append(fields, "tag "+tag)
	}
	return fields
}

// View renders the browser.
func (m Model) View() string {
	sections := []string{m.styles.Header.Render("codeshelf")}

	if msg := m.state.Err(); msg != "" {
		sections = append(sections, m.styles.Error.Render("error: "+msg)+m.styles.Muted.Render("  esc/x to dismiss"))
	}

	switch m.mode {
	case modeForm:
		sections = append(sections, m.form.view(m.styles))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	case modeConfirmDelete:
		sections = append(sections, m.styles.Error.Render(
			fmt.Sprintf("Delete snippet #%d %q? y/n", m.pending.ID, m.pending.Title)))
	}

	for _, input := range m.inputs {
		sections = append(sections, input.View())
	}

	stats := m.state.Stats()
	summary := fmt.Sprintf("%d snippets · %d languages · %d categories", stats.Snippets, stats.Languages, stats.Categories)
	if m.state.Criteria().Term != "" {
		summary += fmt.Sprintf(" · %d matches", stats.Matches)
	}
	if m.loading {
		summary += " · loading…"
	}
	sections = append(sections, m.styles.Muted.Render(summary))

	listStyle, detailStyle := m.styles.Pane, m.styles.Pane
	if m.focus == focusList {
		listStyle = m.styles.Focused
	}
	listBody := m.list.View()
	if len(m.list.Items()) == 0 {
		listBody = m.styles.Muted.Render("No snippets match.")
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Width(m.list.Width()).Render(listBody),
		detailStyle.Width(m.viewport.Width).Render(m.viewport.View()),
	)
	sections = append(sections, panes)
	sections = append(sections, m.styles.Muted.Render("tab: focus · n: new · e: edit · d: delete · r: refresh · q: quit · pgup/pgdown: scroll"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Run starts the browser on the terminal and blocks until the user quits.
func Run(ctx context.Context, state *browser.State) error {
	program := tea.NewProgram(New(ctx, state), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
