package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/model"
)

// CreateAdmin inserts a new admin account and returns its ID.
func (s *pgStore) CreateAdmin(email, hashedPassword string, name *string) (int, error) {
	query := `
	INSERT INTO admins (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;
	`
	var newID int
	err := s.db.QueryRow(query, email, hashedPassword, name).Scan(&newID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create admin")
		return 0, err
	}
	return newID, nil
}

// GetAdminByEmail returns nil, sql.ErrNoRows when no account matches.
func (s *pgStore) GetAdminByEmail(email string) (*model.Admin, error) {
	var a model.Admin
	query := `
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM admins
	WHERE email = $1;
	`
	err := s.db.Get(&a, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get admin by email")
		return nil, err
	}
	return &a, nil
}

func (s *pgStore) GetAdminByID(id int) (*model.Admin, error) {
	var a model.Admin
	query := `
	SELECT id, email, hashed_password, name, created_at, updated_at
	FROM admins
	WHERE id = $1;
	`
	err := s.db.Get(&a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get admin by id")
		return nil, err
	}
	return &a, nil
}

// UpdateAdminProfile updates email and name and bumps updated_at.
// Returns an error when no rows were affected.
func (s *pgStore) UpdateAdminProfile(id int, email string, name *string) error {
	query := `
	UPDATE admins
	SET email = $2,
	name = $3,
	updated_at = now()
	WHERE id = $1;
	`
	res, err := s.db.Exec(query, id, email, name)
	if err != nil {
		log.Error().Err(err).Msg("failed to update admin profile")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("no such admin")
	}
	return nil
}
