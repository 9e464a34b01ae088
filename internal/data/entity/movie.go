package entity

import (
	"time"
)

type Genre string

const (
	GenreAction     Genre = "ACTION"
	GenreAnimation  Genre = "ANIMATION"
	GenreComedy     Genre = "COMEDY"
	GenreDrama      Genre = "DRAMA"
	GenreHistorical Genre = "HISTORICAL"
	GenreRomantic   Genre = "ROMANTIC"
	GenreSocial     Genre = "SOCIAL"
	GenreSports     Genre = "SPORTS"
	GenreThriller   Genre = "THRILLER"
	GenreWar        Genre = "WAR"
)

type Language string

const (
	LanguageEnglish   Language = "ENGLISH"
	LanguageHindi     Language = "HINDI"
	LanguageMarathi   Language = "MARATHI"
	LanguageTamil     Language = "TAMIL"
	LanguageTelugu    Language = "TELUGU"
	LanguageKannada   Language = "KANNADA"
	LanguageMalayalam Language = "MALAYALAM"
)

type Movie struct {
	Base
	MovieName   string    `db:"movie_name"`
	Duration    int       `db:"duration"` // minutes
	Rating      float64   `db:"rating"`
	ReleaseDate time.Time `db:"release_date"`
	Genre       Genre     `db:"genre"`
	Language    Language  `db:"language"`
	PosterURL   *string   `db:"poster_url"`
}
