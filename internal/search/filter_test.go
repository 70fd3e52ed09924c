package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

func titled(titles ...string) []domain.Movie {
	movies := make([]domain.Movie, len(titles))
	for i, t := range titles {
		movies[i] = domain.Movie{ID: int64(i + 1), Title: t}
	}
	return movies
}

func titlesOf(movies []domain.Movie) []string {
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	return titles
}

func TestFilterEmptyQueryReturnsInput(t *testing.T) {
	movies := titled("Dune", "Alien")
	assert.Equal(t, movies, Filter("", movies))
	assert.Equal(t, movies, Filter("   ", movies))
}

func TestFilterRanksExactBeforePrefixBeforeSubstring(t *testing.T) {
	movies := titled("Dune: Part Two", "The Dune Documentary", "Dune")

	got := Filter("dune", movies)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Dune", "Dune: Part Two", "The Dune Documentary"}, titlesOf(got))
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	movies := titled("BLADE RUNNER", "blade runner 2049")

	got := Filter("Blade", movies)
	assert.Len(t, got, 2)
}

func TestFilterMatchesScatteredCharacters(t *testing.T) {
	movies := titled("The Grand Budapest Hotel", "Heat")

	got := Filter("gbh", movies)
	require.Len(t, got, 1)
	assert.Equal(t, "The Grand Budapest Hotel", got[0].Title)
}

func TestFilterDropsNonMatches(t *testing.T) {
	movies := titled("Dune", "Alien", "Heat")

	got := Filter("zzzz", movies)
	assert.Empty(t, got)
}
