package libraries

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
	"github.com/abhisek/wordiz/internal/words"
)

// SearchLimit caps the number of search results shown.
const SearchLimit = 50

type librariesLoadedMsg struct {
	Libraries []store.LibrarySummary
	Err       error
}

type searchDoneMsg struct {
	Query   string
	Results []store.SearchResult
	Err     error
}

type deletedMsg struct {
	Name string
	Err  error
}

// LibrariesScreen lists imported libraries and searches their words.
type LibrariesScreen struct {
	svc       screen.Services
	libraries []store.LibrarySummary
	selected  int
	loaded    bool
	errMsg    string

	searching bool
	search    components.TextInput
	query     string
	results   []store.SearchResult

	confirmDelete bool
}

var _ screen.Screen = (*LibrariesScreen)(nil)
var _ screen.KeyHintProvider = (*LibrariesScreen)(nil)
var _ screen.BackHandler = (*LibrariesScreen)(nil)
var _ screen.Focusable = (*LibrariesScreen)(nil)

// New creates a new LibrariesScreen.
func New(svc screen.Services) *LibrariesScreen {
	search := components.NewTextInput("Search words...", 40)
	search.Blur()
	return &LibrariesScreen{svc: svc, search: search}
}

func (s *LibrariesScreen) Init() tea.Cmd {
	return s.load()
}

func (s *LibrariesScreen) Title() string {
	return "Libraries"
}

func (s *LibrariesScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Search"},
			{Key: "Esc", Description: "Close"},
		}
	}
	if s.confirmDelete {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Practice"},
		{Key: "A", Description: "All"},
		{Key: "/", Description: "Search"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

// Focus reloads the list, which may have changed while covered.
func (s *LibrariesScreen) Focus() tea.Cmd {
	return s.load()
}

func (s *LibrariesScreen) Blur() {}

// Back closes the search before leaving the screen.
func (s *LibrariesScreen) Back() tea.Cmd {
	if s.searching || s.query != "" {
		s.closeSearch()
		return nil
	}
	if s.confirmDelete {
		s.confirmDelete = false
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *LibrariesScreen) closeSearch() {
	s.searching = false
	s.query = ""
	s.results = nil
	s.search.Reset()
	s.search.Blur()
}

func (s *LibrariesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case librariesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.libraries = msg.Libraries
		s.selected = min(s.selected, max(len(s.libraries)-1, 0))
		return s, nil

	case searchDoneMsg:
		if msg.Query != s.query {
			return s, nil
		}
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.results = msg.Results
		return s, nil

	case deletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.load()

	case tea.KeyPressMsg:
		if s.searching {
			return s, s.handleSearchKey(msg)
		}
		if s.confirmDelete {
			s.confirmDelete = false
			if msg.String() == "y" {
				return s, s.deleteSelected()
			}
			return s, nil
		}
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *LibrariesScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.libraries)-1 {
			s.selected++
		}
	case "enter":
		if len(s.libraries) == 0 {
			return nil
		}
		return s.practice(s.libraries[s.selected].Name)
	case "a":
		return s.practice(words.ScopeAll)
	case "d":
		if len(s.libraries) > 0 {
			s.confirmDelete = true
		}
	case "/":
		s.searching = true
		return s.search.Focus()
	}
	return nil
}

func (s *LibrariesScreen) handleSearchKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "enter" {
		s.searching = false
		s.search.Blur()
		s.query = strings.TrimSpace(s.search.Value())
		if s.query == "" {
			s.results = nil
			return nil
		}
		return s.runSearch(s.query)
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	return cmd
}

func (s *LibrariesScreen) practice(name string) tea.Cmd {
	next := practice.New(s.svc, name, s.svc.Config.Mode)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *LibrariesScreen) load() tea.Cmd {
	repo := s.svc.Libraries
	return func() tea.Msg {
		libs, err := repo.Summaries(context.Background())
		return librariesLoadedMsg{Libraries: libs, Err: err}
	}
}

func (s *LibrariesScreen) runSearch(query string) tea.Cmd {
	repo := s.svc.Libraries
	return func() tea.Msg {
		res, err := repo.Search(context.Background(), query, SearchLimit)
		return searchDoneMsg{Query: query, Results: res, Err: err}
	}
}

func (s *LibrariesScreen) deleteSelected() tea.Cmd {
	if s.selected >= len(s.libraries) {
		return nil
	}
	name := s.libraries[s.selected].Name
	repo := s.svc.Libraries
	log := s.svc.Log()
	return func() tea.Msg {
		err := repo.Delete(context.Background(), name)
		if err == nil {
			log.Printf("deleted library %q", name)
		}
		return deletedMsg{Name: name, Err: err}
	}
}

func (s *LibrariesScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading libraries...")
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.searching || s.query != "" {
		b.WriteString(center.Render("Search: " + s.search.View()))
		b.WriteString("\n\n")
	}

	if s.query != "" {
		b.WriteString(s.renderResults(width))
	} else {
		b.WriteString(s.renderLibraries(width))
	}

	if s.confirmDelete && s.selected < len(s.libraries) {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("Delete %q and its words? (y/n)", s.libraries[s.selected].Name)))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Error).Render("Error: " + s.errMsg))
	}
	return b.String()
}

func (s *LibrariesScreen) renderLibraries(width int) string {
	if len(s.libraries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No libraries yet. Import one with: wordiz import FILE")
	}

	var b strings.Builder
	total := 0
	for i, lib := range s.libraries {
		total += lib.WordCount
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%-24s %5d words   imported %s",
			prefix, lib.Name, lib.WordCount, lib.ImportedAt.Format("Jan 02, 2006"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d libraries, %d words", len(s.libraries), total)))
	return b.String()
}

func (s *LibrariesScreen) renderResults(width int) string {
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("No words match %q", s.query))
	}
	var b strings.Builder
	for _, r := range s.results {
		line := fmt.Sprintf("%s  %s  %s",
			theme.Headword.Render(r.Word.Headword),
			theme.Meaning.Render(r.Word.Meaning),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("("+r.Library+")"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}
