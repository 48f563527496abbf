package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/model"
)

func (s *pgStore) CreateParticipant(name, email string, phone *string) (model.Participant, error) {
	var p model.Participant
	const q = `
	INSERT INTO participants (name, email, phone, approved, created_at, updated_at)
	VALUES ($1, $2, $3, false, now(), now())
	RETURNING id, name, email, phone, approved, created_at, updated_at;`
	if err := s.db.Get(&p, q, name, email, phone); err != nil {
		log.Error().Err(err).Msg("CreateParticipant failed")
		return model.Participant{}, err
	}
	return p, nil
}

// GetParticipantByID returns nil, sql.ErrNoRows when no participant
// matches.
func (s *pgStore) GetParticipantByID(id int) (*model.Participant, error) {
	var p model.Participant
	const q = `
	SELECT id, name, email, phone, approved, created_at, updated_at
	  FROM participants WHERE id = $1;`
	if err := s.db.Get(&p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("participant_id", id).Msg("GetParticipantByID failed")
		return nil, err
	}
	return &p, nil
}

// GetParticipantByEmail matches case-insensitively; magic-link requests
// arrive with whatever casing the volunteer typed.
func (s *pgStore) GetParticipantByEmail(email string) (*model.Participant, error) {
	var p model.Participant
	const q = `
	SELECT id, name, email, phone, approved, created_at, updated_at
	  FROM participants WHERE lower(email) = lower($1);`
	if err := s.db.Get(&p, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("GetParticipantByEmail failed")
		return nil, err
	}
	return &p, nil
}

func (s *pgStore) ListParticipants() ([]model.Participant, error) {
	var out []model.Participant
	const q = `
	SELECT id, name, email, phone, approved, created_at, updated_at
	  FROM participants ORDER BY name;`
	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListParticipants failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) ListApprovedParticipants() ([]model.Participant, error) {
	var out []model.Participant
	const q = `
	SELECT id, name, email, phone, approved, created_at, updated_at
	  FROM participants WHERE approved ORDER BY name;`
	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListApprovedParticipants failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) SetParticipantApproved(id int, approved bool) error {
	_, err := s.db.Exec(`
	UPDATE participants SET approved = $2, updated_at = now() WHERE id = $1;`, id, approved)
	if err != nil {
		log.Error().Err(err).Int("participant_id", id).Msg("SetParticipantApproved failed")
	}
	return err
}

func (s *pgStore) DeleteParticipant(id int) error {
	_, err := s.db.Exec(`DELETE FROM participants WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("participant_id", id).Msg("DeleteParticipant failed")
	}
	return err
}
