package request

type MovieRequest struct {
	MovieName   string  `json:"movie_name" validate:"required,max=255"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=10"`
	ReleaseDate string  `json:"release_date" validate:"required,datetime=2006-01-02"`
	Genre       string  `json:"genre" validate:"required,oneof=ACTION ANIMATION COMEDY DRAMA HISTORICAL ROMANTIC SOCIAL SPORTS THRILLER WAR"`
	Language    string  `json:"language" validate:"required,oneof=ENGLISH HINDI MARATHI TAMIL TELUGU KANNADA MALAYALAM"`
	PosterURL   *string `json:"poster_url,omitempty" validate:"omitempty,url"`
}
