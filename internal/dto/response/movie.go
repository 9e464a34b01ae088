package response

import (
	"showtime-booking/internal/data/entity"
)

type MovieResponse struct {
	ID          int64   `json:"id"`
	MovieName   string  `json:"movie_name"`
	Duration    int     `json:"duration"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"release_date"`
	Genre       string  `json:"genre"`
	Language    string  `json:"language"`
	PosterURL   *string `json:"poster_url,omitempty"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		MovieName:   movie.MovieName,
		Duration:    movie.Duration,
		Rating:      movie.Rating,
		ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
		Genre:       string(movie.Genre),
		Language:    string(movie.Language),
		PosterURL:   movie.PosterURL,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	result := make([]MovieResponse, len(movies))
	for i, m := range movies {
		result[i] = MovieToResponse(m)
	}
	return result
}
