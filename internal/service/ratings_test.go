package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

type fakeRatingsRepo struct {
	rateFn      func(ctx context.Context, movieID int64, score int, comment string) (*domain.Rating, error)
	ownRatingFn func(ctx context.Context, movieID int64) (*domain.Rating, error)
	summaryFn   func(ctx context.Context, movieID int64) (*domain.RatingSummary, error)

	rateCalls int
}

func (f *fakeRatingsRepo) Rate(ctx context.Context, movieID int64, score int, comment string) (*domain.Rating, error) {
	f.rateCalls++
	return f.rateFn(ctx, movieID, score, comment)
}

func (f *fakeRatingsRepo) OwnRating(ctx context.Context, movieID int64) (*domain.Rating, error) {
	return f.ownRatingFn(ctx, movieID)
}

func (f *fakeRatingsRepo) Summary(ctx context.Context, movieID int64) (*domain.RatingSummary, error) {
	return f.summaryFn(ctx, movieID)
}

func TestRateRejectsOutOfRangeScoreLocally(t *testing.T) {
	repo := &fakeRatingsRepo{}
	svc := NewRatingsService(repo, nil)

	for _, score := range []int{0, -1, 6, 100} {
		_, err := svc.Rate(context.Background(), 1, score, "")
		require.Error(t, err)
	}
	assert.Equal(t, 0, repo.rateCalls)
}

func TestRateForwardsValidScore(t *testing.T) {
	repo := &fakeRatingsRepo{rateFn: func(ctx context.Context, movieID int64, score int, comment string) (*domain.Rating, error) {
		return &domain.Rating{MovieID: movieID, Score: score, Comment: comment}, nil
	}}
	svc := NewRatingsService(repo, nil)

	rating, err := svc.Rate(context.Background(), 7, 4, "solid")
	require.NoError(t, err)
	assert.Equal(t, int64(7), rating.MovieID)
	assert.Equal(t, 4, rating.Score)
	assert.Equal(t, "solid", rating.Comment)
}

func TestOwnRatingAbsorbsNotFound(t *testing.T) {
	repo := &fakeRatingsRepo{ownRatingFn: func(ctx context.Context, movieID int64) (*domain.Rating, error) {
		return nil, domain.ErrNotFound
	}}
	svc := NewRatingsService(repo, nil)

	rating, err := svc.OwnRating(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, rating)
}

func TestOwnRatingPropagatesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeRatingsRepo{ownRatingFn: func(ctx context.Context, movieID int64) (*domain.Rating, error) {
		return nil, boom
	}}
	svc := NewRatingsService(repo, nil)

	_, err := svc.OwnRating(context.Background(), 7)
	require.ErrorIs(t, err, boom)
}

func TestSummaryPassesThrough(t *testing.T) {
	repo := &fakeRatingsRepo{summaryFn: func(ctx context.Context, movieID int64) (*domain.RatingSummary, error) {
		return &domain.RatingSummary{MovieID: movieID, Average: 4.2, Count: 11}, nil
	}}
	svc := NewRatingsService(repo, nil)

	summary, err := svc.Summary(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 4.2, summary.Average)
	assert.Equal(t, 11, summary.Count)
}
