package model

import "time"

// Read-only rows shaped for the report renderers. The store fetches
// these; internal/pdf formats them.

// AssignedShift is one participant on one shift of one performance.
type AssignedShift struct {
	ParticipantName string    `db:"participant_name"`
	Role            string    `db:"role"`
	ArriveTime      time.Time `db:"arrive_time"`
	DepartTime      time.Time `db:"depart_time"`
}

// UnfilledShiftRow is a shift with zero assigned participants.
type UnfilledShiftRow struct {
	ShiftID    int       `db:"shift_id"`
	ShowDateID int       `db:"show_date_id"`
	ShowName   string    `db:"show_name"`
	Date       time.Time `db:"date"` // performance start instant
	Role       string    `db:"role"`
	ArriveTime time.Time `db:"arrive_time"`
	DepartTime time.Time `db:"depart_time"`
}

// VolunteerShiftRow is one of a participant's own assignments joined out
// to its show and performance.
type VolunteerShiftRow struct {
	ShiftID    int       `db:"shift_id"`
	ShowDateID int       `db:"show_date_id"`
	ShowName   string    `db:"show_name"`
	Date       time.Time `db:"date"`
	Role       string    `db:"role"`
	ArriveTime time.Time `db:"arrive_time"`
	DepartTime time.Time `db:"depart_time"`
}
