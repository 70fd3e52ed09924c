package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

func TestRenderItemTruncatesTitleNotEscapeSequences(t *testing.T) {
	l := NewMovieList("Movies")
	l.SetSize(30, 20)

	movie := domain.Movie{
		ID:          1,
		Title:       "An Exceptionally Long Movie Title That Cannot Fit",
		ReleaseYear: 2021,
		VoteAverage: 7.8,
	}

	rendered := l.renderItem(movie, false)

	// Visible width stays inside the column: marker (2) + item padding
	// (2) + the line budget of width-6.
	assert.LessOrEqual(t, lipgloss.Width(rendered), 30-2)

	// The styled score survives intact; only the plain title was cut.
	assert.Contains(t, rendered, "7.8")
	assert.Contains(t, rendered, "…")
}

func TestRenderItemShortTitleUntruncated(t *testing.T) {
	l := NewMovieList("Movies")
	l.SetSize(60, 20)

	movie := domain.Movie{ID: 2, Title: "Dune", ReleaseYear: 2021, VoteAverage: 8.1}
	rendered := l.renderItem(movie, true)

	assert.Contains(t, rendered, "Dune (2021)")
	assert.Contains(t, rendered, "8.1")
	assert.NotContains(t, rendered, "…")
}

func TestTruncateLeavesShortStringsAlone(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	out := truncate("a somewhat longer line", 10)
	assert.Equal(t, 10, lipgloss.Width(out))
	assert.True(t, strings.HasSuffix(out, "…"))
}
