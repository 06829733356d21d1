package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/theme"
	"github.com/abhisek/wordiz/internal/words"
)

func (s *PracticeScreen) View(width, height int) string {
	st := s.engine.State()

	var b strings.Builder
	b.WriteString(s.renderInfoLine(st, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(s.renderWord(st, width))
	b.WriteString("\n\n")

	if st.Err != nil {
		b.WriteString(centered(width).Foreground(theme.Error).
			Render(fmt.Sprintf("Error: %v", st.Err)))
		b.WriteString("\n\n")
	}

	b.WriteString(s.renderStats(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderHistory(width))

	return b.String()
}

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderInfoLine shows the library, the mode tabs and the session score.
func (s *PracticeScreen) renderInfoLine(st sess.State, width int) string {
	lib := s.library
	if words.IsAllScope(lib) {
		lib = "All libraries"
	}
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + lib)

	var tabs []string
	for _, m := range sess.Modes {
		if m == st.Mode {
			tabs = append(tabs, theme.Selected.Render("["+m.Label()+"]"))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(m.Label()))
		}
	}
	sum := s.engine.Summary()
	right := strings.Join(tabs, " ") + "   " +
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %d/%d", sum.Correct, sum.Answered))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

// renderWord draws the prompt for the current phase and mode.
func (s *PracticeScreen) renderWord(st sess.State, width int) string {
	c := centered(width)

	if !st.HasWord {
		if st.Notice == sess.NoticeLibraryEmpty {
			return c.Foreground(theme.Accent).Render("This library has no words yet.") + "\n" +
				c.Foreground(theme.TextDim).Render("Import one with: wordiz import FILE")
		}
		return c.Foreground(theme.TextDim).Render("Picking a word...")
	}

	w := st.Word
	var lines []string

	switch st.Mode {
	case sess.ModeFollow:
		lines = append(lines,
			c.Render(renderMarked(w.Headword, st.Input)),
			c.Inherit(theme.Meaning).Render(w.Meaning),
		)
	case sess.ModeDictation:
		lines = append(lines,
			c.Inherit(theme.Meaning).Bold(true).Render(w.Meaning),
			c.Foreground(theme.TextDim).Render(blanks(w.Headword)),
		)
	case sess.ModeReview:
		lines = append(lines, c.Inherit(theme.Headword).Render(w.Headword))
		if st.Revealed || st.Phase != sess.PhasePresenting {
			lines = append(lines, c.Inherit(theme.Meaning).Render(w.Meaning))
		} else {
			lines = append(lines, c.Foreground(theme.TextDim).Italic(true).Render("Space to reveal the meaning"))
		}
	}

	switch st.Phase {
	case sess.PhaseRevealPause:
		lines = append(lines, "",
			c.Inherit(theme.Incorrect).Render("Not quite"),
			c.Foreground(theme.Text).Render("Answer: "+theme.Headword.Render(w.Headword)),
			c.Foreground(theme.TextDim).Render("Press Enter to continue"),
		)
	case sess.PhaseJudging:
		if st.Pending != nil && st.Pending.Correct {
			lines = append(lines, "", c.Inherit(theme.Correct).Render("Correct!"))
		}
	}

	if st.Mode != sess.ModeReview {
		lines = append(lines, "", c.Render("Answer: "+s.input.View()))
	}
	return strings.Join(lines, "\n")
}

// renderMarked colors each headword rune by the typed input.
func renderMarked(headword, input string) string {
	runes := []rune(headword)
	marks := sess.MarkInput(headword, input)
	var b strings.Builder
	for i, r := range runes {
		style := theme.CharPending
		switch marks[i] {
		case sess.CharRight:
			style = theme.CharRight
		case sess.CharWrong:
			style = theme.CharWrong
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// blanks hints the headword length in dictation mode. Spaces stay visible.
func blanks(headword string) string {
	var parts []string
	for _, r := range headword {
		if r == ' ' {
			parts = append(parts, " ")
			continue
		}
		parts = append(parts, "_")
	}
	return strings.Join(parts, " ")
}

func (s *PracticeScreen) renderStats(width int) string {
	if s.overview == nil {
		return ""
	}
	ov := s.overview
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	today := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		dim.Render("Today"), val.Render(fmt.Sprintf("%d", ov.Today.Total)),
		dim.Render("Accuracy"), val.Render(fmt.Sprintf("%d%%", ov.Today.Accuracy)),
		dim.Render("Speed"), val.Render(fmt.Sprintf("%d wpm", ov.Speed)),
		dim.Render("Best"), val.Render(fmt.Sprintf("%d", ov.BestSpeed)),
	)
	mastery := fmt.Sprintf("%s %s  %s %s  %s %s",
		dim.Render("Seen"), val.Render(fmt.Sprintf("%d/%d", ov.Mastery.Seen, ov.Mastery.TotalImported)),
		dim.Render("Mastered"), val.Render(fmt.Sprintf("%d", ov.Mastery.Mastered)),
		dim.Render("Coverage"), val.Render(fmt.Sprintf("%d%%", ov.Mastery.Coverage)),
	)
	goal := components.NewProgressBar(
		fmt.Sprintf("Daily goal %d/%d", ov.Today.Total, ov.Goal), ov.GoalPct, true, min(width-8, 60)).View()

	return strings.Join([]string{
		lipgloss.PlaceHorizontal(width, lipgloss.Center, today),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, mastery),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, goal),
	}, "\n")
}

func (s *PracticeScreen) renderHistory(width int) string {
	hist := s.engine.History()
	if len(hist) == 0 {
		return ""
	}
	var lines []string
	for _, h := range hist {
		mark := theme.Correct.Render("✓")
		if !h.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		lines = append(lines, fmt.Sprintf("%s %-20s %s", mark, h.Word.Headword,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Word.Meaning)))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}
