package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callboard-app/callboard/internal/adelaide"
	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/http/api"
	"github.com/callboard-app/callboard/internal/http/middleware"
	"github.com/callboard-app/callboard/internal/model"
)

const testSecret = "test-secret"

// stubStore overrides only what the handlers under test touch.
type stubStore struct {
	db.Store
	admins  map[int]model.Admin
	shifts  map[int]model.Shift
	dates   map[int]model.ShowDate
	updates map[int][2]time.Time
}

func (s *stubStore) GetAdminByID(id int) (*model.Admin, error) {
	a, ok := s.admins[id]
	if !ok {
		return nil, assert.AnError
	}
	return &a, nil
}

func (s *stubStore) GetShift(id int) (model.Shift, error) {
	sh, ok := s.shifts[id]
	if !ok {
		return model.Shift{}, assert.AnError
	}
	return sh, nil
}

func (s *stubStore) GetShowDate(id int) (model.ShowDate, error) {
	d, ok := s.dates[id]
	if !ok {
		return model.ShowDate{}, assert.AnError
	}
	return d, nil
}

func (s *stubStore) ListShiftsForShow(showID int) ([]model.Shift, error) {
	var out []model.Shift
	for _, sh := range s.shifts {
		if d, ok := s.dates[sh.ShowDateID]; ok && d.ShowID == showID {
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubStore) UpdateShiftTimes(id int, arrive, depart time.Time) error {
	s.updates[id] = [2]time.Time{arrive, depart}
	return nil
}

func mustCombine(t *testing.T, date, hhmm string) time.Time {
	t.Helper()
	out, err := adelaide.Combine(date, hhmm)
	require.NoError(t, err)
	return out
}

// The season straddles the October daylight-saving change. Shifts 1 and
// 2 share the 18:00 to 22:30 wall-time group; shift 3 starts later.
func bulkTestRig(t *testing.T) (*gin.Engine, *stubStore, string) {
	gin.SetMode(gin.TestMode)

	store := &stubStore{
		admins:  map[int]model.Admin{1: {ID: 1, Email: "admin@example.com"}},
		shifts:  map[int]model.Shift{},
		dates:   map[int]model.ShowDate{},
		updates: map[int][2]time.Time{},
	}

	perf := []struct {
		dateID int
		date   string
	}{
		{10, "2026-10-01"}, // ACST, before the change
		{11, "2026-10-10"}, // ACDT, after the change
	}
	for i, p := range perf {
		store.dates[p.dateID] = model.ShowDate{
			ID:        p.dateID,
			ShowID:    5,
			StartTime: mustCombine(t, p.date, "19:30"),
			EndTime:   mustCombine(t, p.date, "22:00"),
		}
		store.shifts[i+1] = model.Shift{
			ID:         i + 1,
			ShowDateID: p.dateID,
			Role:       "Front of House",
			ArriveTime: mustCombine(t, p.date, "18:00"),
			DepartTime: mustCombine(t, p.date, "22:30"),
		}
	}
	store.shifts[3] = model.Shift{
		ID:         3,
		ShowDateID: 10,
		Role:       "Lockup",
		ArriveTime: mustCombine(t, "2026-10-01", "19:00"),
		DepartTime: mustCombine(t, "2026-10-01", "23:00"),
	}

	router := gin.New()
	api.MountGroup(router, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      middleware.AudienceAdmin,
		SecretKey: testSecret,
		Store:     store,
	},
		ShiftModule(store),
	)

	token, err := middleware.GenerateJWT(1, middleware.AudienceAdmin, testSecret)
	require.NoError(t, err)
	return router, store, token
}

func postBulk(router *gin.Engine, token string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/shifts/1/bulk_times", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBulkTimes_UpdatesWallTimeGroupAcrossDST(t *testing.T) {
	router, store, token := bulkTestRig(t)

	w := postBulk(router, token, gin.H{"arrive": "17:30", "depart": "23:00"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Updated int `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Updated)

	// each performance keeps its own date and lands on the new wall
	// times, on both sides of the daylight-saving change
	require.Contains(t, store.updates, 1)
	require.Contains(t, store.updates, 2)
	assert.True(t, store.updates[1][0].Equal(mustCombine(t, "2026-10-01", "17:30")))
	assert.True(t, store.updates[2][0].Equal(mustCombine(t, "2026-10-10", "17:30")))
	assert.NotEqual(t,
		store.updates[1][0].UTC().Hour(),
		store.updates[2][0].UTC().Hour(),
		"UTC instants should differ across the DST change")

	// the 19:00 shift is not part of the group
	assert.NotContains(t, store.updates, 3)
}

func TestBulkTimes_DepartPastMidnight(t *testing.T) {
	router, store, token := bulkTestRig(t)

	w := postBulk(router, token, gin.H{"arrive": "18:00", "depart": "00:30"})
	require.Equal(t, http.StatusOK, w.Code)

	require.Contains(t, store.updates, 1)
	depart := store.updates[1][1]
	assert.True(t, depart.Equal(mustCombine(t, "2026-10-02", "00:30")))
}

func TestBulkTimes_RejectsBadTime(t *testing.T) {
	router, store, token := bulkTestRig(t)

	w := postBulk(router, token, gin.H{"arrive": "late", "depart": "23:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.updates)
}
