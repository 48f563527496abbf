package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/model"
)

func (s *pgStore) CreateShow(name string) (model.Show, error) {
	var sh model.Show
	const q = `
	INSERT INTO shows (name, created_at, updated_at)
	VALUES ($1, now(), now())
	RETURNING id, name, created_at, updated_at;`
	if err := s.db.Get(&sh, q, name); err != nil {
		log.Error().Err(err).Msg("CreateShow failed")
		return model.Show{}, err
	}
	return sh, nil
}

func (s *pgStore) ListShows() ([]model.Show, error) {
	var out []model.Show
	const q = `SELECT id, name, created_at, updated_at FROM shows ORDER BY name;`
	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListShows failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) GetShow(id int) (model.Show, error) {
	var sh model.Show
	err := s.db.Get(&sh, `SELECT id, name, created_at, updated_at FROM shows WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("show_id", id).Msg("GetShow failed")
	}
	return sh, err
}

func (s *pgStore) UpdateShow(id int, name string) error {
	_, err := s.db.Exec(`UPDATE shows SET name = $2, updated_at = now() WHERE id = $1;`, id, name)
	if err != nil {
		log.Error().Err(err).Int("show_id", id).Msg("UpdateShow failed")
	}
	return err
}

func (s *pgStore) DeleteShow(id int) error {
	_, err := s.db.Exec(`DELETE FROM shows WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("show_id", id).Msg("DeleteShow failed")
	}
	return err
}

func (s *pgStore) CreateShowDate(showID int, start, end time.Time) (model.ShowDate, error) {
	var d model.ShowDate
	const q = `
	INSERT INTO show_dates (show_id, start_time, end_time, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id, show_id, start_time, end_time, created_at, updated_at;`
	if err := s.db.Get(&d, q, showID, start, end); err != nil {
		log.Error().Err(err).Int("show_id", showID).Msg("CreateShowDate failed")
		return model.ShowDate{}, err
	}
	return d, nil
}

func (s *pgStore) ListShowDates(showID int) ([]model.ShowDate, error) {
	var out []model.ShowDate
	const q = `
	SELECT id, show_id, start_time, end_time, created_at, updated_at
	  FROM show_dates
	 WHERE show_id = $1
	 ORDER BY start_time;`
	if err := s.db.Select(&out, q, showID); err != nil {
		log.Error().Err(err).Int("show_id", showID).Msg("ListShowDates failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) GetShowDate(id int) (model.ShowDate, error) {
	var d model.ShowDate
	const q = `
	SELECT id, show_id, start_time, end_time, created_at, updated_at
	  FROM show_dates WHERE id = $1;`
	err := s.db.Get(&d, q, id)
	if err != nil {
		log.Error().Err(err).Int("show_date_id", id).Msg("GetShowDate failed")
	}
	return d, err
}

func (s *pgStore) DeleteShowDate(id int) error {
	_, err := s.db.Exec(`DELETE FROM show_dates WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("show_date_id", id).Msg("DeleteShowDate failed")
	}
	return err
}

func (s *pgStore) CreateShowInterval(showID, startMinutes, durationMinutes int) (model.ShowInterval, error) {
	var iv model.ShowInterval
	const q = `
	INSERT INTO show_intervals (show_id, start_minutes, duration_minutes)
	VALUES ($1, $2, $3)
	RETURNING id, show_id, start_minutes, duration_minutes;`
	if err := s.db.Get(&iv, q, showID, startMinutes, durationMinutes); err != nil {
		log.Error().Err(err).Int("show_id", showID).Msg("CreateShowInterval failed")
		return model.ShowInterval{}, err
	}
	return iv, nil
}

func (s *pgStore) ListShowIntervals(showID int) ([]model.ShowInterval, error) {
	var out []model.ShowInterval
	const q = `
	SELECT id, show_id, start_minutes, duration_minutes
	  FROM show_intervals
	 WHERE show_id = $1
	 ORDER BY start_minutes;`
	if err := s.db.Select(&out, q, showID); err != nil {
		log.Error().Err(err).Int("show_id", showID).Msg("ListShowIntervals failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) DeleteShowInterval(id int) error {
	_, err := s.db.Exec(`DELETE FROM show_intervals WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("interval_id", id).Msg("DeleteShowInterval failed")
	}
	return err
}
