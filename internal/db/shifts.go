package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/model"
)

func (s *pgStore) CreateShift(showDateID int, role string, arrive, depart time.Time) (model.Shift, error) {
	var sh model.Shift
	const q = `
	INSERT INTO shifts (show_date_id, role, arrive_time, depart_time, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING id, show_date_id, role, arrive_time, depart_time, created_at, updated_at;`
	if err := s.db.Get(&sh, q, showDateID, role, arrive, depart); err != nil {
		log.Error().Err(err).Int("show_date_id", showDateID).Msg("CreateShift failed")
		return model.Shift{}, err
	}
	return sh, nil
}

func (s *pgStore) GetShift(id int) (model.Shift, error) {
	var sh model.Shift
	const q = `
	SELECT id, show_date_id, role, arrive_time, depart_time, created_at, updated_at
	  FROM shifts WHERE id = $1;`
	err := s.db.Get(&sh, q, id)
	if err != nil {
		log.Error().Err(err).Int("shift_id", id).Msg("GetShift failed")
	}
	return sh, err
}

func (s *pgStore) ListShiftsForShowDate(showDateID int) ([]model.Shift, error) {
	var out []model.Shift
	const q = `
	SELECT id, show_date_id, role, arrive_time, depart_time, created_at, updated_at
	  FROM shifts
	 WHERE show_date_id = $1
	 ORDER BY arrive_time, role;`
	if err := s.db.Select(&out, q, showDateID); err != nil {
		log.Error().Err(err).Int("show_date_id", showDateID).Msg("ListShiftsForShowDate failed")
		return nil, err
	}
	return out, nil
}

// ListShiftsForShow returns every shift across all performances of one
// show; the bulk time-group update walks this list.
func (s *pgStore) ListShiftsForShow(showID int) ([]model.Shift, error) {
	var out []model.Shift
	const q = `
	SELECT sh.id, sh.show_date_id, sh.role, sh.arrive_time, sh.depart_time, sh.created_at, sh.updated_at
	  FROM shifts sh
	  JOIN show_dates d ON d.id = sh.show_date_id
	 WHERE d.show_id = $1
	 ORDER BY sh.arrive_time;`
	if err := s.db.Select(&out, q, showID); err != nil {
		log.Error().Err(err).Int("show_id", showID).Msg("ListShiftsForShow failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) UpdateShiftTimes(id int, arrive, depart time.Time) error {
	_, err := s.db.Exec(`
	UPDATE shifts SET arrive_time = $2, depart_time = $3, updated_at = now()
	WHERE id = $1;`, id, arrive, depart)
	if err != nil {
		log.Error().Err(err).Int("shift_id", id).Msg("UpdateShiftTimes failed")
	}
	return err
}

func (s *pgStore) UpdateShift(id int, role string, arrive, depart time.Time) error {
	_, err := s.db.Exec(`
	UPDATE shifts SET role = $2, arrive_time = $3, depart_time = $4, updated_at = now()
	WHERE id = $1;`, id, role, arrive, depart)
	if err != nil {
		log.Error().Err(err).Int("shift_id", id).Msg("UpdateShift failed")
	}
	return err
}

func (s *pgStore) DeleteShift(id int) error {
	_, err := s.db.Exec(`DELETE FROM shifts WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("shift_id", id).Msg("DeleteShift failed")
	}
	return err
}

func (s *pgStore) AssignParticipantToShift(shiftID, participantID int) error {
	_, err := s.db.Exec(`
	INSERT INTO shift_assignments (shift_id, participant_id)
	VALUES ($1, $2)
	ON CONFLICT DO NOTHING;`, shiftID, participantID)
	if err != nil {
		log.Error().Err(err).Int("shift_id", shiftID).Int("participant_id", participantID).Msg("AssignParticipantToShift failed")
	}
	return err
}

func (s *pgStore) UnassignParticipantFromShift(shiftID, participantID int) error {
	_, err := s.db.Exec(`
	DELETE FROM shift_assignments WHERE shift_id = $1 AND participant_id = $2;`, shiftID, participantID)
	if err != nil {
		log.Error().Err(err).Int("shift_id", shiftID).Int("participant_id", participantID).Msg("UnassignParticipantFromShift failed")
	}
	return err
}
