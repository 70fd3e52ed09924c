package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

// Filter narrows a loaded movie slice to fuzzy matches of query, best
// matches first. It never touches the network; the catalog store owns
// server-side search, this only refines what is already on screen.
func Filter(query string, movies []domain.Movie) []domain.Movie {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return movies
	}

	type rankedMovie struct {
		movie domain.Movie
		score int
	}

	ranked := make([]rankedMovie, 0, len(movies))
	for _, movie := range movies {
		score, ok := matchScore(strings.ToLower(movie.Title), query)
		if !ok {
			continue
		}
		ranked = append(ranked, rankedMovie{movie: movie, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.Movie, len(ranked))
	for i, r := range ranked {
		results[i] = r.movie
	}
	return results
}

// matchScore scores a title against the query; lower is better.
func matchScore(title, query string) (int, bool) {
	if title == query {
		return 0, true
	}
	if strings.HasPrefix(title, query) {
		return 10, true
	}
	if idx := strings.Index(title, query); idx >= 0 {
		return 50 + idx, true
	}
	if fuzzy.MatchFold(query, title) {
		return 100 + fuzzy.RankMatchFold(query, title), true
	}
	return 0, false
}
