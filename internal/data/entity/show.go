package entity

import (
	"time"
)

// Show references its movie and theater by id only.
type Show struct {
	Base
	MovieID   int64     `db:"movie_id"`
	TheaterID int64     `db:"theater_id"`
	ShowDate  time.Time `db:"show_date"`
	StartTime string    `db:"start_time"` // HH:mm:ss
}
