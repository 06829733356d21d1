package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with wordiz styling and an optional
// verdict mark after the field.
type TextInput struct {
	Model    textinput.Model
	MaxWidth int
	judged   bool
	correct  bool
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
		ti.SetWidth(maxWidth)
	}

	return TextInput{
		Model:    ti,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Input is ignored while blurred.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if !t.Model.Focused() {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.judged {
		if t.correct {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

// Reset clears the value and the verdict mark.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.judged = false
}

// Mark shows a verdict after the field.
func (t *TextInput) Mark(correct bool) {
	t.judged = true
	t.correct = correct
}

// Focus enables input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur disables input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Unmark removes the verdict mark.
func (t *TextInput) Unmark() {
	t.judged = false
}
