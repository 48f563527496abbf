package model

import "time"

// Shift is a work slot tied to one performance. Arrive/depart are
// absolute instants and may cross midnight relative to the performance
// date.
type Shift struct {
	ID         int       `db:"id" json:"id"`
	ShowDateID int       `db:"show_date_id" json:"show_date_id"`
	Role       string    `db:"role" json:"role"`
	ArriveTime time.Time `db:"arrive_time" json:"arrive_time"`
	DepartTime time.Time `db:"depart_time" json:"depart_time"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type Participant struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone"`
	Approved  bool      `db:"approved" json:"approved"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
