package pdf

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRunSheet() RunSheetData {
	return RunSheetData{
		ShowName:         "The Tempest",
		Date:             "2026-03-14",
		PerformanceStart: "19:30",
		PerformanceEnd:   "22:00",
		Participants: []RunSheetParticipant{
			{Name: "Bob", Role: "Bar", Arrive: "19:00", Depart: "23:00"},
			{Name: "Alice", Role: "Front of House", Arrive: "18:00", Depart: "22:00"},
			{Name: "Alice", Role: "Bar", Arrive: "21:00", Depart: "23:30"},
		},
		Intervals: []IntervalBlock{{StartMinutes: 60, DurationMinutes: 20}},
		UnfilledShifts: []UnfilledShift{
			{ShowName: "The Tempest", Date: "2026-03-21", Role: "Usher", Arrive: "18:30", Depart: "22:30"},
			{ShowName: "The Tempest", Date: "2026-03-21", Role: "Bar", Arrive: "18:00", Depart: "23:00"},
		},
	}
}

func TestBuildRunSheetRowsSortedAndFlagged(t *testing.T) {
	layout := BuildRunSheet(sampleRunSheet())

	require.Len(t, layout.Rows, 3)
	assert.Equal(t, "Alice", layout.Rows[0].Name)
	assert.Equal(t, "Alice", layout.Rows[1].Name)
	assert.Equal(t, "Bob", layout.Rows[2].Name)

	// Alice holds 18:00-22:00 and 21:00-23:30, which intersect
	assert.True(t, layout.Rows[0].Flagged)
	assert.True(t, layout.Rows[1].Flagged)
	assert.False(t, layout.Rows[2].Flagged)
	assert.True(t, layout.Legend)
	assert.Empty(t, layout.Placeholder)
}

func TestBuildRunSheetWindowFromParticipants(t *testing.T) {
	layout := BuildRunSheet(sampleRunSheet())
	// earliest arrive 18:00 minus 30, latest depart 23:30 plus 30
	assert.Equal(t, 17*60+30, layout.Window.StartMin)
	assert.Equal(t, 24*60, layout.Window.EndMin)
}

func TestBuildRunSheetIntervalBand(t *testing.T) {
	layout := BuildRunSheet(sampleRunSheet())
	require.Len(t, layout.Intervals, 1)
	// performance 19:30 + 60 minutes in, for 20 minutes
	assert.Equal(t, Range{20*60 + 30, 20*60 + 50}, layout.Intervals[0])
	assert.Equal(t, layout.Intervals[0], layout.IntervalBand)
}

func TestBuildRunSheetNoParticipants(t *testing.T) {
	layout := BuildRunSheet(RunSheetData{ShowName: "Empty House", Date: "2026-03-14"})
	assert.Equal(t, "No staff assigned for this performance.", layout.Placeholder)
	assert.Empty(t, layout.Pages)

	out, err := RenderRunSheet(RunSheetData{ShowName: "Empty House", Date: "2026-03-14"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestBuildRunSheetMidnightCrossing(t *testing.T) {
	layout := BuildRunSheet(RunSheetData{
		ShowName: "Late Show",
		Date:     "2026-03-14",
		Participants: []RunSheetParticipant{
			{Name: "Nina", Arrive: "23:30", Depart: "00:30"},
		},
	})
	require.Len(t, layout.Rows, 1)
	assert.Equal(t, Range{23*60 + 30, 24*60 + 30}, layout.Rows[0].Bar)
	// the window clips at midnight
	assert.Equal(t, 24*60, layout.Window.EndMin)
}

func TestBuildRunSheetUnparseableTimesStillListed(t *testing.T) {
	layout := BuildRunSheet(RunSheetData{
		ShowName: "Odd Data",
		Date:     "2026-03-14",
		Participants: []RunSheetParticipant{
			{Name: "Pat", Arrive: "soonish", Depart: "latish"},
		},
	})
	require.Len(t, layout.Rows, 1)
	// no bar, but the row and its literal text survive
	assert.Equal(t, 0, layout.Rows[0].Bar.Duration())
	assert.Equal(t, "soonish", layout.Rows[0].Arrive)
}

func TestBuildRunSheetPagination(t *testing.T) {
	d := RunSheetData{ShowName: "Big Cast", Date: "2026-03-14", PerformanceStart: "19:30", PerformanceEnd: "22:00"}
	for i := 0; i < rsRowsPerPage*2+3; i++ {
		d.Participants = append(d.Participants, RunSheetParticipant{
			Name:   fmt.Sprintf("Person %02d", i),
			Arrive: "19:00",
			Depart: "22:30",
		})
	}
	layout := BuildRunSheet(d)
	require.Len(t, layout.Pages, 3)
	assert.Len(t, layout.Pages[0], rsRowsPerPage)
	assert.Len(t, layout.Pages[2], 3)
}

func TestBuildRunSheetStructurallyIdempotent(t *testing.T) {
	d := sampleRunSheet()
	assert.Equal(t, BuildRunSheet(d), BuildRunSheet(d))
}

func TestRenderRunSheetSmoke(t *testing.T) {
	out, err := RenderRunSheet(sampleRunSheet())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 1000)
}

func TestGroupUnfilled(t *testing.T) {
	groups := groupUnfilled([]UnfilledShift{
		{Date: "2026-03-21", Role: "Usher", Arrive: "18:30", Depart: "22:30"},
		{Date: "2026-03-14", Role: "Bar", Arrive: "18:00", Depart: "23:00"},
		{Date: "2026-03-21", Role: "Bar", Arrive: "18:00", Depart: "23:00"},
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "Sat 14 Mar 2026", groups[0].Date)
	assert.Equal(t, "Sat 21 Mar 2026", groups[1].Date)
	// within a date, earlier arrivals first
	assert.Equal(t, []string{"Bar 18:00-23:00", "Usher 18:30-22:30"}, groups[1].Items)
}

func TestSpanMinutes(t *testing.T) {
	assert.Equal(t, Range{18 * 60, 22 * 60}, spanMinutes("18:00", "22:00"))
	assert.Equal(t, Range{23*60 + 30, 24*60 + 30}, spanMinutes("23:30", "00:30"))
	assert.Equal(t, 0, spanMinutes("18:00", "eventually").Duration())
}
