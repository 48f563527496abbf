package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callboard-app/callboard/internal/adelaide"
	"github.com/callboard-app/callboard/internal/http/api"
	"github.com/callboard-app/callboard/internal/http/middleware"
	"github.com/callboard-app/callboard/internal/model"
)

// shiftStubStore adds the shift and report fetches on top of the
// participant lookups in stubStore.
type shiftStubStore struct {
	stubStore
	shifts     map[int]model.Shift
	unfilled   []model.UnfilledShiftRow
	own        []model.VolunteerShiftRow
	assigned   [][2]int
	unassigned [][2]int
}

func (s *shiftStubStore) GetShift(id int) (model.Shift, error) {
	sh, ok := s.shifts[id]
	if !ok {
		return model.Shift{}, assert.AnError
	}
	return sh, nil
}

func (s *shiftStubStore) UnfilledShifts(after time.Time) ([]model.UnfilledShiftRow, error) {
	return s.unfilled, nil
}

func (s *shiftStubStore) ShiftsForParticipant(participantID int, after time.Time) ([]model.VolunteerShiftRow, error) {
	return s.own, nil
}

func (s *shiftStubStore) AssignParticipantToShift(shiftID, participantID int) error {
	s.assigned = append(s.assigned, [2]int{shiftID, participantID})
	return nil
}

func (s *shiftStubStore) UnassignParticipantFromShift(shiftID, participantID int) error {
	s.unassigned = append(s.unassigned, [2]int{shiftID, participantID})
	return nil
}

func mustCombine(t *testing.T, date, hhmm string) time.Time {
	t.Helper()
	out, err := adelaide.Combine(date, hhmm)
	require.NoError(t, err)
	return out
}

func shiftTestRig(t *testing.T) (*gin.Engine, *shiftStubStore, string) {
	gin.SetMode(gin.TestMode)

	store := &shiftStubStore{
		stubStore: stubStore{participants: map[int]model.Participant{
			1: {ID: 1, Name: "Alice Adams", Email: "alice@example.com", Approved: true},
		}},
		shifts: map[int]model.Shift{},
	}

	// Alice already works Front of House on the evening of 20 Nov.
	store.own = []model.VolunteerShiftRow{{
		ShiftID:    50,
		ShowDateID: 10,
		ShowName:   "The Tempest",
		Date:       mustCombine(t, "2026-11-20", "19:00"),
		Role:       "Front of House",
		ArriveTime: mustCombine(t, "2026-11-20", "18:00"),
		DepartTime: mustCombine(t, "2026-11-20", "22:30"),
	}}

	rows := []struct {
		shiftID    int
		showDateID int
		date       string
		arrive     string
		depart     string
		role       string
	}{
		// same performance as Alice's shift: excluded as her backup
		{101, 10, "2026-11-20", "22:00", "23:30", "Lockup"},
		// different performance, same evening, clashing span
		{102, 11, "2026-11-20", "17:00", "19:00", "Box Office"},
		// the next night: free to take
		{103, 12, "2026-11-21", "18:00", "22:00", "Usher"},
	}
	for _, r := range rows {
		arrive := mustCombine(t, r.date, r.arrive)
		depart := mustCombine(t, r.date, r.depart)
		store.shifts[r.shiftID] = model.Shift{
			ID:         r.shiftID,
			ShowDateID: r.showDateID,
			Role:       r.role,
			ArriveTime: arrive,
			DepartTime: depart,
		}
		store.unfilled = append(store.unfilled, model.UnfilledShiftRow{
			ShiftID:    r.shiftID,
			ShowDateID: r.showDateID,
			ShowName:   "The Tempest",
			Date:       mustCombine(t, r.date, "19:00"),
			Role:       r.role,
			ArriveTime: arrive,
			DepartTime: depart,
		})
	}

	router := gin.New()
	api.MountGroup(router, api.GroupConfig{
		Prefix:    "/api/volunteer",
		Auth:      middleware.AudienceVolunteer,
		SecretKey: testSecret,
		Store:     store,
	},
		ShiftModule(store, "https://callboard.example.com"),
	)

	token, err := middleware.GenerateJWT(1, middleware.AudienceVolunteer, testSecret)
	require.NoError(t, err)
	return router, store, token
}

func doAuthed(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMyShifts(t *testing.T) {
	router, _, token := shiftTestRig(t)

	w := doAuthed(router, http.MethodGet, "/api/volunteer/me/shifts", token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []struct {
		ShiftID  int    `json:"shift_id"`
		ShowName string `json:"show_name"`
		Date     string `json:"date"`
		Arrive   string `json:"arrive"`
		Depart   string `json:"depart"`
		NextDay  bool   `json:"next_day"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, 50, resp[0].ShiftID)
	assert.Equal(t, "2026-11-20", resp[0].Date)
	assert.Equal(t, "18:00", resp[0].Arrive)
	assert.Equal(t, "22:30", resp[0].Depart)
	assert.False(t, resp[0].NextDay)
}

func TestMyShifts_RejectsMissingToken(t *testing.T) {
	router, _, _ := shiftTestRig(t)

	req := httptest.NewRequest(http.MethodGet, "/api/volunteer/me/shifts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Open shifts must exclude anything on a performance the volunteer
// already works (they are its backup) and anything whose span clashes
// with an existing assignment on the same day.
func TestOpenShifts_FiltersConflicts(t *testing.T) {
	router, _, token := shiftTestRig(t)

	w := doAuthed(router, http.MethodGet, "/api/volunteer/open_shifts", token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []struct {
		ShiftID int    `json:"shift_id"`
		Role    string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, 103, resp[0].ShiftID)
	assert.Equal(t, "Usher", resp[0].Role)
}

func TestSignup_OpenShift(t *testing.T) {
	router, store, token := shiftTestRig(t)

	w := doAuthed(router, http.MethodPost, "/api/volunteer/shifts/103/signup", token)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.assigned, 1)
	assert.Equal(t, [2]int{103, 1}, store.assigned[0])
}

func TestSignup_RejectsClash(t *testing.T) {
	router, store, token := shiftTestRig(t)

	for _, id := range []string{"101", "102"} {
		w := doAuthed(router, http.MethodPost, "/api/volunteer/shifts/"+id+"/signup", token)
		assert.Equal(t, http.StatusConflict, w.Code, id)
	}
	assert.Empty(t, store.assigned)
}

func TestWithdraw(t *testing.T) {
	router, store, token := shiftTestRig(t)

	w := doAuthed(router, http.MethodDelete, "/api/volunteer/shifts/50/signup", token)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.unassigned, 1)
	assert.Equal(t, [2]int{50, 1}, store.unassigned[0])
}
