package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callboard-app/callboard/internal/adelaide"
)

// TestStoreIntegration runs the store against a disposable Postgres.
// Set TEST_DATABASE_URL to enable it.
func TestStoreIntegration(t *testing.T) {
	if err := InitTestDB("../../migrations"); err != nil {
		t.Skipf("skipping store integration test: %v", err)
	}
	store := TestStore

	t.Run("Admin Management", func(t *testing.T) {
		adminID, err := store.CreateAdmin("admin@example.com", "hashedpassword", nil)
		require.NoError(t, err)
		assert.Greater(t, adminID, 0)

		admin, err := store.GetAdminByEmail("admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", admin.Email)

		name := "Stage Manager"
		err = store.UpdateAdminProfile(adminID, "sm@example.com", &name)
		assert.NoError(t, err)
	})

	t.Run("Shows and Performances", func(t *testing.T) {
		show, err := store.CreateShow("The Tempest")
		require.NoError(t, err)
		assert.Equal(t, "The Tempest", show.Name)

		start, err := adelaide.Combine("2026-11-20", "19:30")
		require.NoError(t, err)
		end, err := adelaide.Combine("2026-11-20", "22:00")
		require.NoError(t, err)

		date, err := store.CreateShowDate(show.ID, start, end)
		require.NoError(t, err)
		assert.True(t, date.StartTime.Equal(start))

		iv, err := store.CreateShowInterval(show.ID, 75, 20)
		require.NoError(t, err)
		assert.Equal(t, 75, iv.StartMinutes)

		dates, err := store.ListShowDates(show.ID)
		require.NoError(t, err)
		assert.Len(t, dates, 1)
	})

	t.Run("Shifts and Assignments", func(t *testing.T) {
		show, err := store.CreateShow("Macbeth")
		require.NoError(t, err)
		start, _ := adelaide.Combine("2026-11-21", "19:30")
		end, _ := adelaide.Combine("2026-11-21", "22:00")
		date, err := store.CreateShowDate(show.ID, start, end)
		require.NoError(t, err)

		arrive, _ := adelaide.Combine("2026-11-21", "18:00")
		depart, _ := adelaide.Combine("2026-11-21", "22:30")
		shift, err := store.CreateShift(date.ID, "Front of House", arrive, depart)
		require.NoError(t, err)

		p, err := store.CreateParticipant("Alice Adams", "alice@example.com", nil)
		require.NoError(t, err)
		require.NoError(t, store.SetParticipantApproved(p.ID, true))

		// before assignment the shift is unfilled
		unfilled, err := store.UnfilledShifts(start.Add(-24 * time.Hour))
		require.NoError(t, err)
		found := false
		for _, u := range unfilled {
			if u.ShiftID == shift.ID {
				found = true
			}
		}
		assert.True(t, found)

		require.NoError(t, store.AssignParticipantToShift(shift.ID, p.ID))

		rows, err := store.AssignmentsForShowDate(date.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Alice Adams", rows[0].ParticipantName)

		own, err := store.ShiftsForParticipant(p.ID, start.Add(-24*time.Hour))
		require.NoError(t, err)
		require.Len(t, own, 1)
		assert.Equal(t, shift.ID, own[0].ShiftID)

		// assigned shifts drop out of the unfilled set
		unfilled, err = store.UnfilledShifts(start.Add(-24 * time.Hour))
		require.NoError(t, err)
		for _, u := range unfilled {
			assert.NotEqual(t, shift.ID, u.ShiftID)
		}

		require.NoError(t, store.UnassignParticipantFromShift(shift.ID, p.ID))
	})
}
