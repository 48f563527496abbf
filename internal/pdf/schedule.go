package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/callboard-app/callboard/internal/adelaide"
)

const noShiftsPlaceholder = "No shifts assigned"

// portrait A4 in mm
const (
	vsPageW   = 210.0
	vsMarginX = 12.0
	vsBottomY = 272.0
	vsRowH    = 7.0
)

type monthGrid struct {
	Year  int
	Month time.Month
	Label string
	Weeks [][]dayCell
}

type dayCell struct {
	Day      int
	InMonth  bool
	HasShift bool
	Times    []string
}

type scheduleLayout struct {
	Title       string
	Rows        []ScheduleShift
	Months      []monthGrid
	FooterLeft  string
	FooterRight string
	Placeholder string
}

// BuildVolunteerSchedule filters the volunteer's shifts to the current
// Adelaide month onward and shapes the table rows plus one calendar grid
// per month that still has a shift in it.
func BuildVolunteerSchedule(d ScheduleData) scheduleLayout {
	now := adelaide.Now()
	layout := scheduleLayout{
		Title:       "Volunteer Schedule - " + d.VolunteerName,
		FooterRight: "Printed: " + adelaide.WallDate(now) + " " + adelaide.WallTime(now),
	}
	if d.SiteURL != "" {
		layout.FooterLeft = "Manage your shifts at " + d.SiteURL
	}

	cutoff := adelaide.StartOfCurrentMonth()
	rows := make([]ScheduleShift, 0, len(d.Shifts))
	for _, s := range d.Shifts {
		if s.Date.Before(cutoff) {
			continue
		}
		s.Arrive = adelaide.CleanTime(s.Arrive)
		s.Depart = adelaide.CleanTime(s.Depart)
		rows = append(rows, s)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].Arrive < rows[j].Arrive
	})
	layout.Rows = rows

	if len(rows) == 0 {
		layout.Placeholder = noShiftsPlaceholder
		return layout
	}

	type ym struct {
		year  int
		month time.Month
	}
	times := make(map[ym]map[int][]string)
	var order []ym
	for _, s := range rows {
		local := s.Date.In(adelaide.Location())
		key := ym{local.Year(), local.Month()}
		if _, ok := times[key]; !ok {
			times[key] = make(map[int][]string)
			order = append(order, key)
		}
		label := s.Arrive + "-" + s.Depart
		times[key][local.Day()] = append(times[key][local.Day()], label)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		return order[i].month < order[j].month
	})
	for _, key := range order {
		layout.Months = append(layout.Months, buildMonthGrid(key.year, key.month, times[key]))
	}
	return layout
}

// buildMonthGrid lays one month out Monday-first, padding the leading and
// trailing weeks with out-of-month days.
func buildMonthGrid(year int, month time.Month, shiftTimes map[int][]string) monthGrid {
	loc := adelaide.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	grid := monthGrid{Year: year, Month: month, Label: first.Format("January 2006")}

	// Monday-first column index for the 1st of the month
	lead := (int(first.Weekday()) + 6) % 7
	daysInMonth := first.AddDate(0, 1, -1).Day()
	prevLast := first.AddDate(0, 0, -1).Day()

	var cells []dayCell
	for i := 0; i < lead; i++ {
		cells = append(cells, dayCell{Day: prevLast - lead + 1 + i})
	}
	for day := 1; day <= daysInMonth; day++ {
		cell := dayCell{Day: day, InMonth: true}
		if ts, ok := shiftTimes[day]; ok {
			cell.HasShift = true
			cell.Times = ts
		}
		cells = append(cells, cell)
	}
	for next := 1; len(cells)%7 != 0; next++ {
		cells = append(cells, dayCell{Day: next})
	}
	for i := 0; i < len(cells); i += 7 {
		grid.Weeks = append(grid.Weeks, cells[i:i+7])
	}
	return grid
}

// RenderVolunteerSchedule produces the personal schedule document: a
// shift table followed by monthly calendar pages, two months per page.
func RenderVolunteerSchedule(d ScheduleData) ([]byte, error) {
	layout := BuildVolunteerSchedule(d)

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(layout.Title, true)
	doc.SetAutoPageBreak(false, 0)
	doc.SetFooterFunc(func() {
		doc.SetY(-13)
		doc.SetFont("Helvetica", "I", 7)
		doc.SetTextColor(120, 120, 120)
		doc.CellFormat((vsPageW-2*vsMarginX)/2, 5, layout.FooterLeft, "", 0, "L", false, 0, "")
		doc.CellFormat((vsPageW-2*vsMarginX)/2, 5, layout.FooterRight, "", 0, "R", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	})

	doc.AddPage()
	doc.SetY(12)
	doc.SetFont("Helvetica", "B", 15)
	doc.CellFormat(0, 9, layout.Title, "", 1, "L", false, 0, "")
	doc.Ln(2)

	if layout.Placeholder != "" {
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 10, layout.Placeholder, "", 1, "L", false, 0, "")
	} else {
		drawScheduleTable(doc, layout.Rows)
		for i, month := range layout.Months {
			if i%2 == 0 {
				doc.AddPage()
				doc.SetY(14)
			} else {
				doc.SetY(150)
			}
			drawMonthGrid(doc, month)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("volunteer schedule output: %w", err)
	}
	return buf.Bytes(), nil
}

func drawScheduleTableHeader(doc *gofpdf.Fpdf) {
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(235, 235, 235)
	doc.SetX(vsMarginX)
	doc.CellFormat(38, vsRowH, "Date", "1", 0, "L", true, 0, "")
	doc.CellFormat(62, vsRowH, "Show", "1", 0, "L", true, 0, "")
	doc.CellFormat(44, vsRowH, "Role", "1", 0, "L", true, 0, "")
	doc.CellFormat(42, vsRowH, "Time", "1", 1, "L", true, 0, "")
}

func drawScheduleTable(doc *gofpdf.Fpdf, rows []ScheduleShift) {
	drawScheduleTableHeader(doc)
	doc.SetFont("Helvetica", "", 9)
	for _, s := range rows {
		if doc.GetY()+vsRowH > vsBottomY {
			doc.AddPage()
			doc.SetY(14)
			drawScheduleTableHeader(doc)
			doc.SetFont("Helvetica", "", 9)
		}
		timeLabel := s.Arrive + " - " + s.Depart
		if s.NextDay {
			timeLabel += " (+1d)"
		}
		doc.SetX(vsMarginX)
		doc.CellFormat(38, vsRowH, adelaide.FriendlyDate(s.Date), "1", 0, "L", false, 0, "")
		doc.CellFormat(62, vsRowH, s.ShowName, "1", 0, "L", false, 0, "")
		doc.CellFormat(44, vsRowH, s.Role, "1", 0, "L", false, 0, "")
		doc.CellFormat(42, vsRowH, timeLabel, "1", 1, "L", false, 0, "")
	}
}

func drawMonthGrid(doc *gofpdf.Fpdf, month monthGrid) {
	const cellW = 26.5
	const cellH = 17.0

	doc.SetFont("Helvetica", "B", 12)
	doc.SetX(vsMarginX)
	doc.CellFormat(0, 8, month.Label, "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(235, 235, 235)
	doc.SetX(vsMarginX)
	for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		doc.CellFormat(cellW, 6, day, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	for _, week := range month.Weeks {
		y := doc.GetY()
		for i, cell := range week {
			x := vsMarginX + float64(i)*cellW
			if !cell.InMonth {
				doc.SetFillColor(225, 225, 225)
				doc.Rect(x, y, cellW, cellH, "F")
			}
			if cell.HasShift {
				doc.SetLineWidth(0.8)
			} else {
				doc.SetLineWidth(0.2)
			}
			doc.Rect(x, y, cellW, cellH, "D")
			doc.SetLineWidth(0.2)

			style := ""
			if cell.HasShift {
				style = "B"
			}
			doc.SetFont("Helvetica", style, 8)
			if !cell.InMonth {
				doc.SetTextColor(150, 150, 150)
			}
			doc.SetXY(x+1.5, y+1)
			doc.CellFormat(cellW-3, 4, fmt.Sprintf("%d", cell.Day), "", 0, "L", false, 0, "")
			doc.SetTextColor(0, 0, 0)

			doc.SetFont("Helvetica", "", 6.5)
			for t, label := range cell.Times {
				doc.SetXY(x+1.5, y+5.5+float64(t)*3.2)
				doc.CellFormat(cellW-3, 3, label, "", 0, "L", false, 0, "")
			}
		}
		doc.SetY(y + cellH)
	}
}
