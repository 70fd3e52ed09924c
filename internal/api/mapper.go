package api

import "github.com/GoncaloNogueira1/filmhub/internal/domain"

func mapMovie(dto movieDTO) domain.Movie {
	return domain.Movie{
		ID:          dto.ID,
		TMDBID:      dto.TMDBID,
		Title:       dto.Title,
		Overview:    dto.Overview,
		ReleaseYear: dto.ReleaseYear,
		PosterURL:   dto.PosterURL,
		BackdropURL: dto.BackdropURL,
		Genres:      dto.Genres,
		VoteAverage: dto.VoteAverage,
		Popularity:  dto.Popularity,
		RatingCount: dto.RatingCount,
	}
}

func mapMovies(dtos []movieDTO) []domain.Movie {
	movies := make([]domain.Movie, len(dtos))
	for i, dto := range dtos {
		movies[i] = mapMovie(dto)
	}
	return movies
}

func mapProfile(dto profileDTO) domain.Profile {
	return domain.Profile{
		ID:                 dto.ID,
		Email:              dto.Email,
		Username:           dto.Username,
		FirstName:          dto.FirstName,
		LastName:           dto.LastName,
		Age:                dto.Age,
		Bio:                dto.Bio,
		FavoriteGenres:     dto.FavoriteGenres,
		EmailNotifications: dto.EmailNotifications,
	}
}

func mapWatchlistEntry(dto watchlistEntryDTO) domain.WatchlistEntry {
	return domain.WatchlistEntry{
		ID:      dto.ID,
		MovieID: dto.Movie.ID,
		Movie:   mapMovie(dto.Movie),
		AddedAt: dto.AddedAt,
	}
}

func mapWatchlistEntries(dtos []watchlistEntryDTO) []domain.WatchlistEntry {
	entries := make([]domain.WatchlistEntry, len(dtos))
	for i, dto := range dtos {
		entries[i] = mapWatchlistEntry(dto)
	}
	return entries
}

func mapRating(movieID int64, dto ratingDTO) domain.Rating {
	return domain.Rating{
		MovieID:   movieID,
		Score:     dto.Score,
		Comment:   dto.Comment,
		UpdatedAt: dto.UpdatedAt,
	}
}
