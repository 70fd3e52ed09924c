package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
	"github.com/GoncaloNogueira1/filmhub/internal/tui/styles"
)

// Spinner frames for loading animation
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const scrollIndicatorLines = 2

// MovieList is a scrollable, filterable movie list. Filtering is local
// over the already-loaded slice; it never triggers a fetch.
type MovieList struct {
	movies []domain.Movie
	saved  func(movieID int64) bool // watchlist membership probe, may be nil

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width  int
	height int

	title string

	loading      bool
	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into movies
}

// NewMovieList creates an empty list with the given header title.
func NewMovieList(title string) *MovieList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &MovieList{title: title, filterInput: ti}
}

// SetMovies replaces the backing slice, keeping the cursor in range so an
// append (infinite scroll) doesn't jump the selection.
func (l *MovieList) SetMovies(movies []domain.Movie) {
	l.movies = movies
	if l.filterActive {
		l.applyFilter()
	}
	if count := l.ItemCount(); l.cursor >= count {
		l.cursor = max(0, count-1)
	}
	l.ensureVisible()
}

// SetSavedProbe installs the watchlist membership check used to render
// the saved marker next to titles.
func (l *MovieList) SetSavedProbe(probe func(movieID int64) bool) {
	l.saved = probe
}

// SetTitle replaces the header title.
func (l *MovieList) SetTitle(title string) { l.title = title }

// SetLoading toggles the loading spinner.
func (l *MovieList) SetLoading(loading bool) { l.loading = loading }

// SetSpinnerFrame advances the loading animation.
func (l *MovieList) SetSpinnerFrame(frame int) { l.spinnerFrame = frame }

// SetSize fixes the rendered dimensions.
func (l *MovieList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.maxVisible = max(1, height-scrollIndicatorLines-2)
	l.ensureVisible()
}

// Filtering reports whether the filter input is capturing keystrokes.
func (l *MovieList) Filtering() bool {
	return l.filterActive && l.filterInput.Focused()
}

// StartFilter opens the filter input.
func (l *MovieList) StartFilter() tea.Cmd {
	l.filterActive = true
	return l.filterInput.Focus()
}

// ClearFilter drops the filter and shows all loaded movies again.
func (l *MovieList) ClearFilter() {
	l.filterActive = false
	l.filterInput.Blur()
	l.filterInput.SetValue("")
	l.filteredIdx = nil
	l.cursor = 0
	l.offset = 0
}

// Update handles navigation and filter keystrokes.
func (l *MovieList) Update(msg tea.Msg) tea.Cmd {
	if l.Filtering() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				l.ClearFilter()
				return nil
			case "enter":
				// Accept filter, blur input to allow navigation
				l.filterInput.Blur()
				return nil
			case "backspace":
				if l.filterInput.Value() == "" {
					l.ClearFilter()
					return nil
				}
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return cmd
	}

	count := l.ItemCount()
	if count == 0 {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if l.cursor < count-1 {
				l.cursor++
				l.ensureVisible()
			}
		case "k", "up":
			if l.cursor > 0 {
				l.cursor--
				l.ensureVisible()
			}
		case "g", "home":
			l.cursor = 0
			l.offset = 0
		case "G", "end":
			l.cursor = count - 1
			l.ensureVisible()
		case "ctrl+d":
			l.cursor = min(count-1, l.cursor+l.maxVisible/2)
			l.ensureVisible()
		case "ctrl+u":
			l.cursor = max(0, l.cursor-l.maxVisible/2)
			l.ensureVisible()
		}
	}
	return nil
}

// Selected returns the movie under the cursor.
func (l *MovieList) Selected() (domain.Movie, bool) {
	idx, ok := l.selectedIndex()
	if !ok {
		return domain.Movie{}, false
	}
	return l.movies[idx], true
}

// NearEnd reports whether the cursor is within threshold rows of the last
// loaded item; the browse view uses it to trigger the next page fetch.
// A filtered list never asks for more: the filter scopes what is loaded.
func (l *MovieList) NearEnd(threshold int) bool {
	if l.filterActive || len(l.movies) == 0 {
		return false
	}
	return l.cursor >= len(l.movies)-threshold
}

// ItemCount returns the number of visible items (after filtering).
func (l *MovieList) ItemCount() int {
	if l.filterActive {
		return len(l.filteredIdx)
	}
	return len(l.movies)
}

func (l *MovieList) selectedIndex() (int, bool) {
	if l.filterActive {
		if l.cursor < 0 || l.cursor >= len(l.filteredIdx) {
			return 0, false
		}
		return l.filteredIdx[l.cursor], true
	}
	if l.cursor < 0 || l.cursor >= len(l.movies) {
		return 0, false
	}
	return l.cursor, true
}

func (l *MovieList) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(l.filterInput.Value()))
	if query == "" {
		l.filteredIdx = nil
		l.cursor = 0
		l.offset = 0
		return
	}

	lowerTitles := make([]string, len(l.movies))
	for i, m := range l.movies {
		lowerTitles[i] = strings.ToLower(m.Title)
	}

	matches := fuzzy.Find(query, lowerTitles)
	l.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = match.Index
	}

	l.cursor = 0
	l.offset = 0
}

func (l *MovieList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// View renders the list.
func (l *MovieList) View() string {
	var b strings.Builder

	header := l.title
	if l.loading {
		header += " " + spinnerFrames[l.spinnerFrame%len(spinnerFrames)]
	}
	b.WriteString(styles.TitleStyle.Render(header))
	b.WriteString("\n")

	if l.filterActive {
		b.WriteString(l.filterInput.View())
		b.WriteString("\n")
	}

	count := l.ItemCount()
	if count == 0 {
		if l.loading {
			b.WriteString(styles.DimStyle.Render("  loading..."))
		} else if l.filterActive {
			b.WriteString(styles.DimStyle.Render("  no matches"))
		} else {
			b.WriteString(styles.DimStyle.Render("  nothing here yet"))
		}
		return b.String()
	}

	if l.offset > 0 {
		b.WriteString(styles.DimStyle.Render("  ↑ more"))
	}
	b.WriteString("\n")

	end := min(count, l.offset+l.maxVisible)
	for row := l.offset; row < end; row++ {
		idx := row
		if l.filterActive {
			idx = l.filteredIdx[row]
		}
		b.WriteString(l.renderItem(l.movies[idx], row == l.cursor))
		b.WriteString("\n")
	}

	if end < count {
		b.WriteString(styles.DimStyle.Render("  ↓ more"))
	}

	return b.String()
}

func (l *MovieList) renderItem(movie domain.Movie, selected bool) string {
	marker := "  "
	if l.saved != nil && l.saved(movie.ID) {
		marker = styles.SavedStar + " "
	}

	// Truncate the plain title before styling; cutting a styled string
	// can split an escape sequence and bleed styling into later rows.
	score := ""
	if s := movie.FormattedScore(); s != "-" {
		score = "  " + s
	}
	width := max(10, l.width-6)
	title := truncate(movie.DisplayTitle(), max(1, width-lipgloss.Width(score)))

	line := title
	if score != "" {
		line += styles.DimStyle.Render(score)
	}

	if selected {
		return marker + styles.SelectedItemStyle.Render(line)
	}
	return marker + styles.NormalItemStyle.Render(line)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
