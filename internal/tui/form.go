package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/charlesng35/codeshelf/internal/client"
	"github.com/charlesng35/codeshelf/internal/models"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldLanguage
	fieldCategory
	fieldTags
	fieldCode
	fieldCount
)

// snippetForm edits every snippet field. id is zero for a new snippet.
type snippetForm struct {
	id          uint
	description bool // the edited snippet had a description

	inputs [fieldCode]textinput.Model
	code   textarea.Model
	focus  int
	err    string
}

func newSnippetForm(snippet *models.Snippet) snippetForm {
	prompts := [fieldCode]string{"title: ", "description: ", "language: ", "category: ", "tags: "}
	placeholders := [fieldCode]string{"", "optional", "go, sql, typescript…", "name or id", "comma separated names"}

	var f snippetForm
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = prompts[i]
		in.Placeholder = placeholders[i]
		f.inputs[i] = in
	}
	f.code = textarea.New()
	f.code.Placeholder = "code"
	f.code.ShowLineNumbers = true
	f.code.CharLimit = 0
	f.code.MaxHeight = 0

	if snippet != nil {
		f.id = snippet.ID
		f.description = snippet.Description != nil
		f.inputs[fieldTitle].SetValue(snippet.Title)
		f.inputs[fieldDescription].SetValue(snippet.DescriptionText())
		f.inputs[fieldLanguage].SetValue(snippet.Language)
		f.inputs[fieldCategory].SetValue(snippet.Category.Name)
		if snippet.Category.Name == "" {
			f.inputs[fieldCategory].SetValue(strconv.FormatUint(uint64(snippet.CategoryID), 10))
		}
		f.inputs[fieldTags].SetValue(strings.Join(snippet.TagNames(), ", "))
		f.code.SetValue(snippet.Code)
	}
	f.setFocus(fieldTitle)
	return f
}

func (f *snippetForm) setFocus(field int) {
	f.focus = field
	for i := range f.inputs {
		if i == field {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	if field == fieldCode {
		f.code.Focus()
	} else {
		f.code.Blur()
	}
}

func (f *snippetForm) setSize(width, height int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(width-20, 10)
	}
	f.code.SetWidth(max(width-4, 20))
	f.code.SetHeight(max(height-14, 3))
}

func (f snippetForm) update(msg tea.Msg) (snippetForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			f.setFocus((f.focus + 1) % fieldCount)
			return f, nil
		case "shift+tab":
			f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			return f, nil
		}
	}

	var cmd tea.Cmd
	if f.focus == fieldCode {
		f.code, cmd = f.code.Update(msg)
	} else {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return f, cmd
}

func (f snippetForm) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

// resolve checks the required fields and maps the category and tag names to ids.
func (f snippetForm) resolve(categories []models.Category, tags []models.Tag) (categoryID uint, tagIDs []uint, err error) {
	switch {
	case f.value(fieldTitle) == "":
		return 0, nil, fmt.Errorf("title is required")
	case f.value(fieldLanguage) == "":
		return 0, nil, fmt.Errorf("language is required")
	case strings.TrimSpace(f.code.Value()) == "":
		return 0, nil, fmt.Errorf("code is required")
	case f.value(fieldCategory) == "":
		return 0, nil, fmt.Errorf("category is required")
	}

	raw := f.value(fieldCategory)
	for _, category := range categories {
		if strings.EqualFold(category.Name, raw) || strconv.FormatUint(uint64(category.ID), 10) == raw {
			categoryID = category.ID
			break
		}
	}
	if categoryID == 0 {
		return 0, nil, fmt.Errorf("unknown category %q", raw)
	}

	tagIDs = []uint{}
	for _, name := range strings.Split(f.value(fieldTags), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		found := false
		for _, tag := range tags {
			if strings.EqualFold(tag.Name, name) {
				tagIDs = append(tagIDs, tag.ID)
				found = true
				break
			}
		}
		if !found {
			return 0, nil, fmt.Errorf("unknown tag %q", name)
		}
	}
	return categoryID, tagIDs, nil
}

func (f snippetForm) createInput(categoryID uint, tagIDs []uint) client.CreateSnippet {
	input := client.CreateSnippet{
		Title:      f.value(fieldTitle),
		Language:   f.value(fieldLanguage),
		Code:       f.code.Value(),
		CategoryID: categoryID,
		TagIDs:     tagIDs,
	}
	if desc := f.value(fieldDescription); desc != "" {
		input.Description = &desc
	}
	return input
}

// updateInput sends every field. A description emptied in the form is cleared on the store.
func (f snippetForm) updateInput(categoryID uint, tagIDs []uint) client.UpdateSnippet {
	title, language, code := f.value(fieldTitle), f.value(fieldLanguage), f.code.Value()
	input := client.UpdateSnippet{
		Title:      &title,
		Language:   &language,
		Code:       &code,
		CategoryID: &categoryID,
		TagIDs:     &tagIDs,
	}
	switch desc := f.value(fieldDescription); {
	case desc != "":
		input.Description = &desc
	case f.description:
		input.ClearDescription = true
	}
	return input
}

func (f snippetForm) view(styles Styles) string {
	heading := "New snippet"
	if f.id != 0 {
		heading = fmt.Sprintf("Edit snippet #%d", f.id)
	}
	lines := []string{styles.Header.Render(heading)}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, f.code.View())
	if f.err != "" {
		lines = append(lines, styles.Error.Render(f.err))
	}
	lines = append(lines, styles.Muted.Render("tab: next field · ctrl+s: save · esc: cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
