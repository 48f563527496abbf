package model

import "time"

type Show struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ShowDate is one scheduled performance of a show. StartTime and EndTime
// are absolute UTC instants; invariant StartTime < EndTime.
type ShowDate struct {
	ID        int       `db:"id" json:"id"`
	ShowID    int       `db:"show_id" json:"show_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ShowInterval is an intermission, stored as a minute offset and duration
// relative to a performance's start. Intervals of one show never overlap.
type ShowInterval struct {
	ID              int `db:"id" json:"id"`
	ShowID          int `db:"show_id" json:"show_id"`
	StartMinutes    int `db:"start_minutes" json:"start_minutes"`
	DurationMinutes int `db:"duration_minutes" json:"duration_minutes"`
}
