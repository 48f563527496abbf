// Package reports composes store fetches with the pure renderers in
// internal/pdf. Route handlers and the email worker both call through
// here, so fetch-then-render stays in one place and every failure comes
// back with a "... PDF generation failed" prefix for the caller to
// surface.
package reports

import (
	"fmt"

	"github.com/callboard-app/callboard/internal/adelaide"
	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/model"
	"github.com/callboard-app/callboard/internal/pdf"
)

// RunSheet fetches one performance's snapshot and renders the backstage
// time grid.
func RunSheet(store db.Store, showDateID int) ([]byte, error) {
	date, err := store.GetShowDate(showDateID)
	if err != nil {
		return nil, fmt.Errorf("run sheet PDF generation failed: %w", err)
	}
	show, err := store.GetShow(date.ShowID)
	if err != nil {
		return nil, fmt.Errorf("run sheet PDF generation failed: %w", err)
	}
	assignments, err := store.AssignmentsForShowDate(showDateID)
	if err != nil {
		return nil, fmt.Errorf("run sheet PDF generation failed: %w", err)
	}
	intervals, err := store.ListShowIntervals(show.ID)
	if err != nil {
		return nil, fmt.Errorf("run sheet PDF generation failed: %w", err)
	}
	unfilled, err := store.UnfilledShiftsForShow(show.ID, date.StartTime)
	if err != nil {
		return nil, fmt.Errorf("run sheet PDF generation failed: %w", err)
	}

	data := pdf.RunSheetData{
		ShowName:         show.Name,
		Date:             adelaide.WallDate(date.StartTime),
		PerformanceStart: adelaide.WallTime(date.StartTime),
		PerformanceEnd:   adelaide.WallTime(date.EndTime),
		UnfilledShifts:   shapeUnfilled(unfilled),
	}
	for _, a := range assignments {
		data.Participants = append(data.Participants, pdf.RunSheetParticipant{
			Name:   a.ParticipantName,
			Role:   a.Role,
			Arrive: adelaide.WallTime(a.ArriveTime),
			Depart: adelaide.WallTime(a.DepartTime),
		})
	}
	for _, iv := range intervals {
		data.Intervals = append(data.Intervals, pdf.IntervalBlock{
			StartMinutes:    iv.StartMinutes,
			DurationMinutes: iv.DurationMinutes,
		})
	}

	out, err := pdf.RenderRunSheet(data)
	if err != nil {
		return nil, fmt.Errorf("run sheet PDF generation failed: %w", err)
	}
	return out, nil
}

// VolunteerSchedule renders one volunteer's personal schedule from the
// start of the current Adelaide month onward.
func VolunteerSchedule(store db.Store, participantID int, siteURL string) ([]byte, error) {
	p, err := store.GetParticipantByID(participantID)
	if err != nil {
		return nil, fmt.Errorf("volunteer schedule PDF generation failed: %w", err)
	}
	rows, err := store.ShiftsForParticipant(participantID, adelaide.StartOfCurrentMonth())
	if err != nil {
		return nil, fmt.Errorf("volunteer schedule PDF generation failed: %w", err)
	}

	data := pdf.ScheduleData{VolunteerName: p.Name, SiteURL: siteURL}
	for _, r := range rows {
		data.Shifts = append(data.Shifts, pdf.ScheduleShift{
			Date:     adelaide.DayStart(r.Date),
			ShowName: r.ShowName,
			Role:     r.Role,
			Arrive:   adelaide.WallTime(r.ArriveTime),
			Depart:   adelaide.WallTime(r.DepartTime),
			NextDay:  !adelaide.SameLocalDay(r.ArriveTime, r.DepartTime),
		})
	}

	out, err := pdf.RenderVolunteerSchedule(data)
	if err != nil {
		return nil, fmt.Errorf("volunteer schedule PDF generation failed: %w", err)
	}
	return out, nil
}

// Unfilled renders the full all-unfilled report with its stat boxes.
func Unfilled(store db.Store) ([]byte, error) {
	rows, err := store.UnfilledShifts(adelaide.Now())
	if err != nil {
		return nil, fmt.Errorf("unfilled shifts PDF generation failed: %w", err)
	}
	out, err := pdf.RenderUnfilledReport(shapeUnfilled(rows))
	if err != nil {
		return nil, fmt.Errorf("unfilled shifts PDF generation failed: %w", err)
	}
	return out, nil
}

// Outstanding renders the next-N digest of shifts still needing someone.
func Outstanding(store db.Store, limit int) ([]byte, error) {
	rows, err := store.UnfilledShifts(adelaide.Now())
	if err != nil {
		return nil, fmt.Errorf("outstanding shifts PDF generation failed: %w", err)
	}
	out, err := pdf.RenderOutstandingDigest(shapeUnfilled(rows), limit)
	if err != nil {
		return nil, fmt.Errorf("outstanding shifts PDF generation failed: %w", err)
	}
	return out, nil
}

// OutstandingForVolunteer renders the digest with every shift removed
// that would double-book the volunteer.
func OutstandingForVolunteer(store db.Store, participantID, limit int) ([]byte, error) {
	rows, err := store.UnfilledShifts(adelaide.Now())
	if err != nil {
		return nil, fmt.Errorf("outstanding shifts PDF generation failed: %w", err)
	}
	own, err := store.ShiftsForParticipant(participantID, adelaide.StartOfCurrentMonth())
	if err != nil {
		return nil, fmt.Errorf("outstanding shifts PDF generation failed: %w", err)
	}

	eligible := pdf.EligibleOutstanding(shapeUnfilled(rows), VolunteerIntervals(own))
	out, err := pdf.RenderOutstandingDigest(eligible, limit)
	if err != nil {
		return nil, fmt.Errorf("outstanding shifts PDF generation failed: %w", err)
	}
	return out, nil
}

// OpenShifts lists the upcoming unfilled shifts a volunteer could take
// without clashing with an assignment they already hold.
func OpenShifts(store db.Store, participantID int) ([]model.UnfilledShiftRow, error) {
	rows, err := store.UnfilledShifts(adelaide.Now())
	if err != nil {
		return nil, err
	}
	own, err := store.ShiftsForParticipant(participantID, adelaide.StartOfCurrentMonth())
	if err != nil {
		return nil, err
	}

	eligible := pdf.EligibleOutstanding(shapeUnfilled(rows), VolunteerIntervals(own))
	keep := make(map[int]struct{}, len(eligible))
	for _, e := range eligible {
		keep[e.ShiftID] = struct{}{}
	}
	out := make([]model.UnfilledShiftRow, 0, len(eligible))
	for _, r := range rows {
		if _, ok := keep[r.ShiftID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// VolunteerIntervals shapes a volunteer's assignments for the
// double-booking checks shared by the digest and the signup endpoint.
func VolunteerIntervals(rows []model.VolunteerShiftRow) []pdf.VolunteerInterval {
	out := make([]pdf.VolunteerInterval, 0, len(rows))
	for _, r := range rows {
		start, okS := adelaide.MinuteOfDay(adelaide.WallTime(r.ArriveTime))
		end, okE := adelaide.MinuteOfDay(adelaide.WallTime(r.DepartTime))
		if okS && okE && end <= start {
			end += 24 * 60
		}
		out = append(out, pdf.VolunteerInterval{
			ShowDateID: r.ShowDateID,
			Date:       adelaide.WallDate(r.ArriveTime),
			Start:      start,
			End:        end,
		})
	}
	return out
}

func shapeUnfilled(rows []model.UnfilledShiftRow) []pdf.UnfilledShift {
	out := make([]pdf.UnfilledShift, 0, len(rows))
	for _, r := range rows {
		out = append(out, pdf.UnfilledShift{
			ShiftID:    r.ShiftID,
			ShowDateID: r.ShowDateID,
			ShowName:   r.ShowName,
			Date:       adelaide.WallDate(r.Date),
			Role:       r.Role,
			Arrive:     adelaide.WallTime(r.ArriveTime),
			Depart:     adelaide.WallTime(r.DepartTime),
		})
	}
	return out
}
