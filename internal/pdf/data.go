// Package pdf renders the three schedule documents: the per-performance
// run sheet, the per-volunteer schedule, and the unfilled-shift reports.
// Renderers are pure: callers fetch rows, shape them into the structs
// below, and get a finished document back. Nothing here touches the
// database, logs, or keeps state between calls.
package pdf

import "time"

// RunSheetData is the snapshot for one performance.
type RunSheetData struct {
	ShowName         string
	Date             string // Adelaide "YYYY-MM-DD"
	PerformanceStart string // Adelaide "HH:MM"
	PerformanceEnd   string
	Participants     []RunSheetParticipant
	Intervals        []IntervalBlock
	UnfilledShifts   []UnfilledShift // future unfilled shifts for the same show
}

type RunSheetParticipant struct {
	Name   string
	Role   string
	Arrive string // Adelaide "HH:MM"
	Depart string // may be earlier than Arrive when the shift crosses midnight
}

// IntervalBlock is an intermission, as minutes relative to the
// performance start.
type IntervalBlock struct {
	StartMinutes    int
	DurationMinutes int
}

// UnfilledShift is one shift with nobody assigned.
type UnfilledShift struct {
	ShiftID    int
	ShowDateID int
	ShowName   string
	Date       string // Adelaide "YYYY-MM-DD"
	Role       string
	Arrive     string
	Depart     string
}

// ScheduleData is the snapshot for one volunteer's personal schedule.
type ScheduleData struct {
	VolunteerName string
	SiteURL       string
	Shifts        []ScheduleShift
}

type ScheduleShift struct {
	Date     time.Time // performance date at Adelaide midnight
	ShowName string
	Role     string
	Arrive   string
	Depart   string
	NextDay  bool // depart falls on the next Adelaide calendar day
}

// VolunteerInterval is an existing commitment used to filter outstanding
// shifts offered to a volunteer.
type VolunteerInterval struct {
	ShowDateID int
	Date       string // Adelaide "YYYY-MM-DD"
	Start      int    // minutes after Adelaide midnight
	End        int
}
