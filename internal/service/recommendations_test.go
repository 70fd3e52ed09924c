package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

type fakeRecsRepo struct {
	lastLimit int
	set       *domain.RecommendationSet
	err       error
}

func (f *fakeRecsRepo) Recommendations(ctx context.Context, limit int) (*domain.RecommendationSet, error) {
	f.lastLimit = limit
	return f.set, f.err
}

func TestRecommendationsDefaultsLimit(t *testing.T) {
	repo := &fakeRecsRepo{set: &domain.RecommendationSet{Strategy: "popularity"}}
	svc := NewRecommendationsService(repo, nil)

	_, err := svc.Recommendations(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultRecommendationLimit, repo.lastLimit)
}

func TestRecommendationsForwardsExplicitLimit(t *testing.T) {
	repo := &fakeRecsRepo{set: &domain.RecommendationSet{
		Movies:   []domain.Movie{{ID: 1, Title: "Dune"}},
		Strategy: "content_based",
		Count:    1,
	}}
	svc := NewRecommendationsService(repo, nil)

	set, err := svc.Recommendations(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastLimit)
	assert.Equal(t, "content_based", set.Strategy)
	require.Len(t, set.Movies, 1)
}
