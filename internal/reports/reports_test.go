package reports

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callboard-app/callboard/internal/adelaide"
	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/model"
)

var errDown = errors.New("connection refused")

type stubStore struct {
	db.Store
	failDates bool
}

func (s *stubStore) GetShowDate(id int) (model.ShowDate, error) {
	if s.failDates {
		return model.ShowDate{}, errDown
	}
	start, _ := adelaide.Combine("2026-11-20", "19:30")
	end, _ := adelaide.Combine("2026-11-20", "22:00")
	return model.ShowDate{ID: id, ShowID: 5, StartTime: start, EndTime: end}, nil
}

func (s *stubStore) GetShow(id int) (model.Show, error) {
	return model.Show{ID: id, Name: "The Tempest"}, nil
}

func (s *stubStore) AssignmentsForShowDate(showDateID int) ([]model.AssignedShift, error) {
	arrive, _ := adelaide.Combine("2026-11-20", "18:00")
	depart, _ := adelaide.Combine("2026-11-20", "22:30")
	return []model.AssignedShift{
		{ParticipantName: "Alice Adams", Role: "Front of House", ArriveTime: arrive, DepartTime: depart},
	}, nil
}

func (s *stubStore) ListShowIntervals(showID int) ([]model.ShowInterval, error) {
	return []model.ShowInterval{{ID: 1, ShowID: showID, StartMinutes: 75, DurationMinutes: 20}}, nil
}

func (s *stubStore) UnfilledShiftsForShow(showID int, after time.Time) ([]model.UnfilledShiftRow, error) {
	return nil, nil
}

func TestRunSheet_RendersPDF(t *testing.T) {
	out, err := RunSheet(&stubStore{}, 10)
	require.NoError(t, err)
	assert.True(t, len(out) > 500)
	assert.Equal(t, "%PDF-", string(out[:5]))
}

// Every failure in the fetch-render pipeline surfaces with the report
// name so callers can log one line and move on.
func TestRunSheet_WrapsErrors(t *testing.T) {
	_, err := RunSheet(&stubStore{failDates: true}, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run sheet PDF generation failed:")
	assert.ErrorIs(t, err, errDown)
}
