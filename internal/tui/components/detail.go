package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
	"github.com/GoncaloNogueira1/filmhub/internal/tui/styles"
)

// Detail renders the full record for one movie, with rating context.
type Detail struct {
	movie     domain.Movie
	summary   *domain.RatingSummary
	ownRating *domain.Rating
	saved     bool

	width  int
	height int
}

// NewDetail creates an empty detail pane.
func NewDetail() *Detail {
	return &Detail{}
}

// SetMovie installs the movie and its rating context.
func (d *Detail) SetMovie(movie domain.Movie, summary *domain.RatingSummary, own *domain.Rating) {
	d.movie = movie
	d.summary = summary
	d.ownRating = own
}

// SetSaved toggles the watchlist marker.
func (d *Detail) SetSaved(saved bool) { d.saved = saved }

// SetOwnRating replaces just the user's rating after a submit.
func (d *Detail) SetOwnRating(rating *domain.Rating) { d.ownRating = rating }

// Movie returns the movie currently shown.
func (d *Detail) Movie() domain.Movie { return d.movie }

// SetSize fixes the rendered dimensions.
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the pane.
func (d *Detail) View() string {
	var b strings.Builder

	title := d.movie.DisplayTitle()
	if d.saved {
		title = styles.SavedStar + " " + title
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	if genres := d.movie.GenreLine(); genres != "" {
		b.WriteString(styles.SubtitleStyle.Render(genres))
		b.WriteString("\n")
	}
	if score := d.movie.FormattedScore(); score != "-" {
		b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("TMDB %s", score)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if d.movie.Overview != "" {
		b.WriteString(wrap(d.movie.Overview, max(20, d.width-4)))
		b.WriteString("\n\n")
	}

	if d.summary != nil && d.summary.Count > 0 {
		b.WriteString(styles.SubtitleStyle.Render(
			fmt.Sprintf("Viewers: %.1f/5 across %d ratings", d.summary.Average, d.summary.Count)))
		b.WriteString("\n")
	}
	if d.ownRating != nil {
		b.WriteString(styles.AccentStyle.Render(
			fmt.Sprintf("Your rating: %s", stars(d.ownRating.Score))))
		if d.ownRating.Comment != "" {
			b.WriteString(styles.DimStyle.Render("  " + d.ownRating.Comment))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(styles.DimStyle.Render("Not rated yet · press 1-5 to rate"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("w toggle watchlist · 1-5 rate · esc back"))

	return b.String()
}

func stars(score int) string {
	return strings.Repeat("★", score) + strings.Repeat("☆", 5-score)
}

// wrap folds text at word boundaries to the given width.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		wlen := lipgloss.Width(word)
		if i > 0 {
			if lineLen+1+wlen > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += wlen
	}
	return b.String()
}
