package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/model"
)

// Report fetches. These return UTC instants; all wall-clock formatting
// happens in Go through internal/adelaide, never in SQL.

// AssignmentsForShowDate returns every (participant, shift) pair for one
// performance, the run sheet's row source.
func (s *pgStore) AssignmentsForShowDate(showDateID int) ([]model.AssignedShift, error) {
	var out []model.AssignedShift
	const q = `
	SELECT p.name AS participant_name, sh.role, sh.arrive_time, sh.depart_time
	  FROM shift_assignments a
	  JOIN shifts sh ON sh.id = a.shift_id
	  JOIN participants p ON p.id = a.participant_id
	 WHERE sh.show_date_id = $1
	 ORDER BY p.name, sh.arrive_time;`
	if err := s.db.Select(&out, q, showDateID); err != nil {
		log.Error().Err(err).Int("show_date_id", showDateID).Msg("AssignmentsForShowDate failed")
		return nil, err
	}
	return out, nil
}

// UnfilledShiftsForShow returns this show's future shifts with nobody
// assigned, for the run sheet's trailing block.
func (s *pgStore) UnfilledShiftsForShow(showID int, after time.Time) ([]model.UnfilledShiftRow, error) {
	var out []model.UnfilledShiftRow
	const q = `
	SELECT sh.id AS shift_id, d.id AS show_date_id, w.name AS show_name,
	       d.start_time AS date, sh.role, sh.arrive_time, sh.depart_time
	  FROM shifts sh
	  JOIN show_dates d ON d.id = sh.show_date_id
	  JOIN shows w ON w.id = d.show_id
	 WHERE w.id = $1
	   AND d.start_time >= $2
	   AND NOT EXISTS (SELECT 1 FROM shift_assignments a WHERE a.shift_id = sh.id)
	 ORDER BY d.start_time, sh.arrive_time;`
	if err := s.db.Select(&out, q, showID, after); err != nil {
		log.Error().Err(err).Int("show_id", showID).Msg("UnfilledShiftsForShow failed")
		return nil, err
	}
	return out, nil
}

// UnfilledShifts returns every shift after the cutoff with zero assigned
// participants, across all shows.
func (s *pgStore) UnfilledShifts(after time.Time) ([]model.UnfilledShiftRow, error) {
	var out []model.UnfilledShiftRow
	const q = `
	SELECT sh.id AS shift_id, d.id AS show_date_id, w.name AS show_name,
	       d.start_time AS date, sh.role, sh.arrive_time, sh.depart_time
	  FROM shifts sh
	  JOIN show_dates d ON d.id = sh.show_date_id
	  JOIN shows w ON w.id = d.show_id
	 WHERE d.start_time >= $1
	   AND NOT EXISTS (SELECT 1 FROM shift_assignments a WHERE a.shift_id = sh.id)
	 ORDER BY d.start_time, sh.arrive_time;`
	if err := s.db.Select(&out, q, after); err != nil {
		log.Error().Err(err).Msg("UnfilledShifts failed")
		return nil, err
	}
	return out, nil
}

// ShiftsForParticipant returns one volunteer's assignments from the
// cutoff onward.
func (s *pgStore) ShiftsForParticipant(participantID int, after time.Time) ([]model.VolunteerShiftRow, error) {
	var out []model.VolunteerShiftRow
	const q = `
	SELECT sh.id AS shift_id, d.id AS show_date_id, w.name AS show_name,
	       d.start_time AS date, sh.role, sh.arrive_time, sh.depart_time
	  FROM shift_assignments a
	  JOIN shifts sh ON sh.id = a.shift_id
	  JOIN show_dates d ON d.id = sh.show_date_id
	  JOIN shows w ON w.id = d.show_id
	 WHERE a.participant_id = $1
	   AND d.start_time >= $2
	 ORDER BY d.start_time, sh.arrive_time;`
	if err := s.db.Select(&out, q, participantID, after); err != nil {
		log.Error().Err(err).Int("participant_id", participantID).Msg("ShiftsForParticipant failed")
		return nil, err
	}
	return out, nil
}
