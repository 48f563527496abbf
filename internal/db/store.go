package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/callboard-app/callboard/internal/model"
)

// Store is the single database surface handed to the API layer and the
// email worker. Holding it behind an interface keeps endpoint tests off
// a live Postgres.
type Store interface {
	// admins
	CreateAdmin(email, hashedPassword string, name *string) (int, error)
	GetAdminByEmail(email string) (*model.Admin, error)
	GetAdminByID(id int) (*model.Admin, error)
	UpdateAdminProfile(id int, email string, name *string) error

	// shows and performances
	CreateShow(name string) (model.Show, error)
	ListShows() ([]model.Show, error)
	GetShow(id int) (model.Show, error)
	UpdateShow(id int, name string) error
	DeleteShow(id int) error
	CreateShowDate(showID int, start, end time.Time) (model.ShowDate, error)
	ListShowDates(showID int) ([]model.ShowDate, error)
	GetShowDate(id int) (model.ShowDate, error)
	DeleteShowDate(id int) error
	CreateShowInterval(showID, startMinutes, durationMinutes int) (model.ShowInterval, error)
	ListShowIntervals(showID int) ([]model.ShowInterval, error)
	DeleteShowInterval(id int) error

	// shifts and assignments
	CreateShift(showDateID int, role string, arrive, depart time.Time) (model.Shift, error)
	GetShift(id int) (model.Shift, error)
	ListShiftsForShowDate(showDateID int) ([]model.Shift, error)
	ListShiftsForShow(showID int) ([]model.Shift, error)
	UpdateShiftTimes(id int, arrive, depart time.Time) error
	UpdateShift(id int, role string, arrive, depart time.Time) error
	DeleteShift(id int) error
	AssignParticipantToShift(shiftID, participantID int) error
	UnassignParticipantFromShift(shiftID, participantID int) error

	// participants
	CreateParticipant(name, email string, phone *string) (model.Participant, error)
	GetParticipantByID(id int) (*model.Participant, error)
	GetParticipantByEmail(email string) (*model.Participant, error)
	ListParticipants() ([]model.Participant, error)
	SetParticipantApproved(id int, approved bool) error
	DeleteParticipant(id int) error

	// report fetches: read-only row sets shaped for internal/pdf
	AssignmentsForShowDate(showDateID int) ([]model.AssignedShift, error)
	UnfilledShiftsForShow(showID int, after time.Time) ([]model.UnfilledShiftRow, error)
	UnfilledShifts(after time.Time) ([]model.UnfilledShiftRow, error)
	ShiftsForParticipant(participantID int, after time.Time) ([]model.VolunteerShiftRow, error)
	ListApprovedParticipants() ([]model.Participant, error)
}

type pgStore struct {
	db *sqlx.DB
}

var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	return &pgStore{db: database}
}
