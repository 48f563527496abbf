package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callboard-app/callboard/internal/adelaide"
)

func TestBuildVolunteerScheduleFiltersAndSorts(t *testing.T) {
	first := adelaide.StartOfCurrentMonth()
	lastMonth := first.AddDate(0, 0, -5)
	thisMonth := first.AddDate(0, 0, 3)
	nextMonth := first.AddDate(0, 1, 10)

	layout := BuildVolunteerSchedule(ScheduleData{
		VolunteerName: "Alice",
		Shifts: []ScheduleShift{
			{Date: nextMonth, ShowName: "B", Arrive: "18:00", Depart: "22:00"},
			{Date: lastMonth, ShowName: "Old", Arrive: "18:00", Depart: "22:00"},
			{Date: thisMonth, ShowName: "A2", Arrive: "19:00", Depart: "22:00"},
			{Date: thisMonth, ShowName: "A1", Arrive: "14:00", Depart: "17:00"},
		},
	})

	// historical shifts are dropped; remaining rows sort by date then
	// arrival time
	require.Len(t, layout.Rows, 3)
	assert.Equal(t, "A1", layout.Rows[0].ShowName)
	assert.Equal(t, "A2", layout.Rows[1].ShowName)
	assert.Equal(t, "B", layout.Rows[2].ShowName)
	assert.Empty(t, layout.Placeholder)
}

func TestBuildVolunteerScheduleMonths(t *testing.T) {
	first := adelaide.StartOfCurrentMonth()
	layout := BuildVolunteerSchedule(ScheduleData{
		VolunteerName: "Alice",
		Shifts: []ScheduleShift{
			{Date: first.AddDate(0, 0, 3), Arrive: "18:00", Depart: "22:00"},
			{Date: first.AddDate(0, 2, 5), Arrive: "18:00", Depart: "22:00"},
		},
	})
	// one grid per month that has a shift; the empty month between is
	// not rendered
	require.Len(t, layout.Months, 2)
	assert.Equal(t, first.Month(), layout.Months[0].Month)
	assert.Equal(t, first.AddDate(0, 2, 0).Month(), layout.Months[1].Month)
}

func TestBuildVolunteerScheduleEmpty(t *testing.T) {
	layout := BuildVolunteerSchedule(ScheduleData{VolunteerName: "Alice"})
	assert.Equal(t, "No shifts assigned", layout.Placeholder)
	assert.Empty(t, layout.Months)

	out, err := RenderVolunteerSchedule(ScheduleData{VolunteerName: "Alice"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestBuildVolunteerScheduleFooter(t *testing.T) {
	layout := BuildVolunteerSchedule(ScheduleData{
		VolunteerName: "Alice",
		SiteURL:       "https://roster.example.org",
	})
	assert.Equal(t, "Manage your shifts at https://roster.example.org", layout.FooterLeft)
	assert.Contains(t, layout.FooterRight, "Printed: ")
}

func TestBuildMonthGridMondayFirst(t *testing.T) {
	// March 2026 starts on a Sunday, so the first week leads with six
	// February days
	grid := buildMonthGrid(2026, time.March, map[int][]string{14: {"18:00-22:00", "23:00-23:45"}})

	require.NotEmpty(t, grid.Weeks)
	assert.Equal(t, "March 2026", grid.Label)
	firstWeek := grid.Weeks[0]
	require.Len(t, firstWeek, 7)
	for i := 0; i < 6; i++ {
		assert.False(t, firstWeek[i].InMonth)
	}
	assert.Equal(t, 23, firstWeek[0].Day) // Mon 23 Feb
	assert.True(t, firstWeek[6].InMonth)
	assert.Equal(t, 1, firstWeek[6].Day)

	// every week is a full Monday-to-Sunday run
	for _, week := range grid.Weeks {
		assert.Len(t, week, 7)
	}

	// Sat 14 Mar carries its shift times
	week3 := grid.Weeks[2]
	sat := week3[5]
	assert.Equal(t, 14, sat.Day)
	assert.True(t, sat.HasShift)
	assert.Equal(t, []string{"18:00-22:00", "23:00-23:45"}, sat.Times)
}

func TestBuildMonthGridJune2026(t *testing.T) {
	// June 2026 starts on a Monday: no leading pad at all
	grid := buildMonthGrid(2026, time.June, nil)
	assert.True(t, grid.Weeks[0][0].InMonth)
	assert.Equal(t, 1, grid.Weeks[0][0].Day)
	// 30 days from Monday gives five weeks with a trailing pad
	require.Len(t, grid.Weeks, 5)
	last := grid.Weeks[4]
	assert.False(t, last[6].InMonth)
}

func TestScheduleNextDaySuffixRendered(t *testing.T) {
	first := adelaide.StartOfCurrentMonth()
	out, err := RenderVolunteerSchedule(ScheduleData{
		VolunteerName: "Nina",
		Shifts: []ScheduleShift{
			{Date: first.AddDate(0, 0, 6), ShowName: "Late Show", Arrive: "23:30", Depart: "00:30", NextDay: true},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
