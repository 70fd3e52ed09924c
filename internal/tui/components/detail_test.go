package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

func TestDetailUnratedHintMatchesSeparatorConvention(t *testing.T) {
	d := NewDetail()
	d.SetSize(80, 24)
	d.SetMovie(domain.Movie{ID: 1, Title: "Dune", ReleaseYear: 2021}, nil, nil)

	view := d.View()
	assert.Contains(t, view, "Not rated yet · press 1-5 to rate")
	assert.NotContains(t, view, "—")
}

func TestDetailShowsOwnRatingStars(t *testing.T) {
	d := NewDetail()
	d.SetSize(80, 24)
	d.SetMovie(domain.Movie{ID: 1, Title: "Dune", ReleaseYear: 2021}, nil, nil)
	d.SetOwnRating(&domain.Rating{MovieID: 1, Score: 3})

	view := d.View()
	assert.Contains(t, view, "★★★☆☆")
	assert.NotContains(t, view, "Not rated yet")
}
