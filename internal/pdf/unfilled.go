package pdf

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"github.com/callboard-app/callboard/internal/adelaide"
)

const allFilledHeading = "All Shifts Filled!"

type unfilledStats struct {
	TotalShifts   int
	ShowsAffected int
	DatesAffected int
}

type unfilledLayout struct {
	Title       string
	Stats       unfilledStats
	Groups      []unfilledGroup
	Rows        []UnfilledShift
	Placeholder string
}

func statsFor(shifts []UnfilledShift) unfilledStats {
	shows := make(map[string]struct{})
	dates := make(map[string]struct{})
	for _, s := range shifts {
		shows[s.ShowName] = struct{}{}
		dates[s.Date] = struct{}{}
	}
	return unfilledStats{
		TotalShifts:   len(shifts),
		ShowsAffected: len(shows),
		DatesAffected: len(dates),
	}
}

// BuildUnfilledReport shapes the full all-unfilled report: aggregate stat
// boxes plus a date-grouped detail table.
func BuildUnfilledReport(shifts []UnfilledShift) unfilledLayout {
	layout := unfilledLayout{
		Title:  "Unfilled Shifts Report",
		Stats:  statsFor(shifts),
		Groups: groupUnfilledDetail(shifts),
	}
	if len(shifts) == 0 {
		layout.Placeholder = allFilledHeading
	}
	return layout
}

// BuildOutstandingDigest shapes the next-N digest used for last-minute
// recruiting emails. limit <= 0 means no cap.
func BuildOutstandingDigest(shifts []UnfilledShift, limit int) unfilledLayout {
	sorted := sortUnfilled(shifts)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	layout := unfilledLayout{
		Title: "Outstanding Shifts",
		Rows:  sorted,
	}
	if len(sorted) == 0 {
		layout.Placeholder = allFilledHeading
	}
	return layout
}

// EligibleOutstanding drops candidate shifts that would double-book the
// volunteer: any candidate whose time range intersects one of their
// existing assignments on the same date, or that belongs to a performance
// they already work (the backup check for rows with unparseable times).
func EligibleOutstanding(candidates []UnfilledShift, existing []VolunteerInterval) []UnfilledShift {
	var out []UnfilledShift
	for _, c := range candidates {
		span := spanMinutes(c.Arrive, c.Depart)
		conflicted := false
		for _, e := range existing {
			if e.ShowDateID == c.ShowDateID {
				conflicted = true
				break
			}
			if e.Date == c.Date && span.Start < e.End && span.End > e.Start && span.Duration() > 0 {
				conflicted = true
				break
			}
		}
		if !conflicted {
			out = append(out, c)
		}
	}
	return out
}

// RenderUnfilledReport produces the full unfilled-shifts report.
func RenderUnfilledReport(shifts []UnfilledShift) ([]byte, error) {
	layout := BuildUnfilledReport(shifts)

	doc := newPortraitReport(layout.Title)
	doc.AddPage()
	doc.SetY(14)
	doc.SetFont("Helvetica", "B", 15)
	doc.CellFormat(0, 9, layout.Title, "", 1, "L", false, 0, "")
	doc.Ln(2)

	if layout.Placeholder != "" {
		drawAllFilled(doc, layout.Placeholder)
		return reportBytes(doc)
	}

	drawStatBoxes(doc, layout.Stats)
	doc.Ln(6)
	for _, g := range layout.Groups {
		if doc.GetY()+12 > vsBottomY {
			doc.AddPage()
			doc.SetY(14)
		}
		doc.SetFont("Helvetica", "B", 10)
		doc.SetX(vsMarginX)
		doc.CellFormat(0, 6, g.Date, "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		for _, item := range g.Items {
			if doc.GetY()+6 > vsBottomY {
				doc.AddPage()
				doc.SetY(14)
			}
			doc.SetX(vsMarginX + 4)
			doc.CellFormat(0, 5.5, item, "", 1, "L", false, 0, "")
		}
		doc.Ln(1.5)
	}
	return reportBytes(doc)
}

// RenderOutstandingDigest produces the compact next-N listing.
func RenderOutstandingDigest(shifts []UnfilledShift, limit int) ([]byte, error) {
	layout := BuildOutstandingDigest(shifts, limit)

	doc := newPortraitReport(layout.Title)
	doc.AddPage()
	doc.SetY(14)
	doc.SetFont("Helvetica", "B", 15)
	doc.CellFormat(0, 9, layout.Title, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 6, "Shifts still needing a volunteer, soonest first.", "", 1, "L", false, 0, "")
	doc.Ln(2)

	if layout.Placeholder != "" {
		drawAllFilled(doc, layout.Placeholder)
		return reportBytes(doc)
	}

	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(235, 235, 235)
	doc.SetX(vsMarginX)
	doc.CellFormat(38, vsRowH, "Date", "1", 0, "L", true, 0, "")
	doc.CellFormat(62, vsRowH, "Show", "1", 0, "L", true, 0, "")
	doc.CellFormat(44, vsRowH, "Role", "1", 0, "L", true, 0, "")
	doc.CellFormat(42, vsRowH, "Time", "1", 1, "L", true, 0, "")
	doc.SetFont("Helvetica", "", 9)
	for _, s := range layout.Rows {
		if doc.GetY()+vsRowH > vsBottomY {
			doc.AddPage()
			doc.SetY(14)
		}
		doc.SetX(vsMarginX)
		doc.CellFormat(38, vsRowH, friendlyISODate(s.Date), "1", 0, "L", false, 0, "")
		doc.CellFormat(62, vsRowH, s.ShowName, "1", 0, "L", false, 0, "")
		doc.CellFormat(44, vsRowH, s.Role, "1", 0, "L", false, 0, "")
		doc.CellFormat(42, vsRowH, adelaide.CleanTime(s.Arrive)+" - "+adelaide.CleanTime(s.Depart), "1", 1, "L", false, 0, "")
	}
	return reportBytes(doc)
}

func newPortraitReport(title string) *gofpdf.Fpdf {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.SetAutoPageBreak(false, 0)
	stamp := adelaide.WallDateTime(adelaide.Now())
	doc.SetFooterFunc(func() {
		doc.SetY(-13)
		doc.SetFont("Helvetica", "I", 7)
		doc.SetTextColor(120, 120, 120)
		doc.CellFormat(0, 5, "Generated "+stamp+" (Adelaide time)", "", 0, "C", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	})
	return doc
}

func reportBytes(doc *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("report output: %w", err)
	}
	return buf.Bytes(), nil
}

func drawAllFilled(doc *gofpdf.Fpdf, heading string) {
	doc.Ln(8)
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 12, heading, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, "Every shift currently has at least one volunteer assigned.", "", 1, "C", false, 0, "")
}

func drawStatBoxes(doc *gofpdf.Fpdf, stats unfilledStats) {
	boxes := []struct {
		value   int
		caption string
	}{
		{stats.TotalShifts, "unfilled shifts"},
		{stats.ShowsAffected, "shows affected"},
		{stats.DatesAffected, "performance dates"},
	}
	const boxW, boxH, gap = 58.0, 24.0, 6.0
	x := vsMarginX
	y := doc.GetY()
	for _, b := range boxes {
		doc.SetFillColor(245, 245, 245)
		doc.Rect(x, y, boxW, boxH, "FD")
		doc.SetFont("Helvetica", "B", 18)
		doc.SetXY(x, y+4)
		doc.CellFormat(boxW, 9, fmt.Sprintf("%d", b.value), "", 1, "C", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.SetXY(x, y+14)
		doc.CellFormat(boxW, 5, b.caption, "", 0, "C", false, 0, "")
		x += boxW + gap
	}
	doc.SetY(y + boxH)
}

func sortUnfilled(shifts []UnfilledShift) []UnfilledShift {
	sorted := make([]UnfilledShift, len(shifts))
	copy(sorted, shifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Arrive < sorted[j].Arrive
	})
	return sorted
}

// groupUnfilledDetail groups by date with one "Show / Role Time" line per
// shift, for the full report's detail table.
func groupUnfilledDetail(shifts []UnfilledShift) []unfilledGroup {
	var groups []unfilledGroup
	for _, s := range sortUnfilled(shifts) {
		label := friendlyISODate(s.Date)
		item := fmt.Sprintf("%s  -  %s, %s-%s", s.ShowName, s.Role, adelaide.CleanTime(s.Arrive), adelaide.CleanTime(s.Depart))
		if n := len(groups); n > 0 && groups[n-1].Date == label {
			groups[n-1].Items = append(groups[n-1].Items, item)
			continue
		}
		groups = append(groups, unfilledGroup{Date: label, Items: []string{item}})
	}
	return groups
}
