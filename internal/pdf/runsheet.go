package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/callboard-app/callboard/internal/adelaide"
)

const noStaffPlaceholder = "No staff assigned for this performance."

// page geometry, landscape A4 in mm
const (
	rsPageW       = 297.0
	rsPageH       = 210.0
	rsMarginX     = 10.0
	rsNameColW    = 50.0
	rsRowH        = 8.0
	rsHeaderH     = 6.0
	rsBottomY     = 190.0
	rsRowsPerPage = 16
)

// minimum width of the combined interval band before the INTERVAL label
// is drawn, in mm
const intervalLabelMinW = 3.0

type runSheetRow struct {
	Name    string
	Role    string
	Arrive  string
	Depart  string
	Bar     Range
	Flagged bool
}

type unfilledGroup struct {
	Date  string
	Items []string
}

// runSheetLayout is everything RenderRunSheet draws, computed up front so
// tests can assert on structure without decoding a PDF.
type runSheetLayout struct {
	Title        string
	Subtitle     string
	Window       Window
	Rows         []runSheetRow
	Pages        [][]runSheetRow
	Performance  Range
	Intervals    []Range
	IntervalBand Range
	Placeholder  string
	Legend       bool
	Unfilled     []unfilledGroup
}

// BuildRunSheet shapes the performance snapshot into a drawable layout.
func BuildRunSheet(d RunSheetData) runSheetLayout {
	layout := runSheetLayout{
		Title:    d.ShowName + " - Run Sheet",
		Subtitle: friendlyISODate(d.Date),
	}
	if d.PerformanceStart != "" {
		layout.Subtitle += "  |  Performance " + adelaide.CleanTime(d.PerformanceStart) + " - " + adelaide.CleanTime(d.PerformanceEnd)
	}

	rows := make([]runSheetRow, 0, len(d.Participants))
	bars := make([]Range, 0, len(d.Participants))
	intervals := make([]PersonInterval, 0, len(d.Participants))
	for _, p := range d.Participants {
		row := runSheetRow{
			Name:   p.Name,
			Role:   p.Role,
			Arrive: adelaide.CleanTime(p.Arrive),
			Depart: adelaide.CleanTime(p.Depart),
			Bar:    spanMinutes(p.Arrive, p.Depart),
		}
		rows = append(rows, row)
		if row.Bar.Duration() > 0 {
			bars = append(bars, row.Bar)
			intervals = append(intervals, PersonInterval{Name: p.Name, Start: row.Bar.Start, End: row.Bar.End})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})

	flagged := DoubleBooked(intervals)
	for i := range rows {
		if _, ok := flagged[rows[i].Name]; ok {
			rows[i].Flagged = true
			layout.Legend = true
		}
	}
	layout.Rows = rows

	if len(rows) == 0 {
		layout.Placeholder = noStaffPlaceholder
	} else {
		for i := 0; i < len(rows); i += rsRowsPerPage {
			end := i + rsRowsPerPage
			if end > len(rows) {
				end = len(rows)
			}
			layout.Pages = append(layout.Pages, rows[i:end])
		}
	}

	layout.Window = WindowFor(bars)
	layout.Performance = spanMinutes(d.PerformanceStart, d.PerformanceEnd)
	if layout.Performance.Duration() > 0 {
		band := Range{}
		for _, iv := range d.Intervals {
			if iv.DurationMinutes <= 0 {
				continue
			}
			r := Range{
				Start: layout.Performance.Start + iv.StartMinutes,
				End:   layout.Performance.Start + iv.StartMinutes + iv.DurationMinutes,
			}
			layout.Intervals = append(layout.Intervals, r)
			if band.Duration() <= 0 {
				band = r
			} else {
				if r.Start < band.Start {
					band.Start = r.Start
				}
				if r.End > band.End {
					band.End = r.End
				}
			}
		}
		layout.IntervalBand = band
	}

	layout.Unfilled = groupUnfilled(d.UnfilledShifts)
	return layout
}

// RenderRunSheet produces the landscape time-grid document for one
// performance.
func RenderRunSheet(d RunSheetData) ([]byte, error) {
	layout := BuildRunSheet(d)

	doc := gofpdf.New("L", "mm", "A4", "")
	doc.SetTitle(layout.Title, true)
	doc.SetAutoPageBreak(false, 0)

	stamp := adelaide.WallDateTime(adelaide.Now())
	doc.SetFooterFunc(func() {
		doc.SetY(-14)
		doc.SetFont("Helvetica", "I", 7)
		doc.SetTextColor(120, 120, 120)
		doc.CellFormat(0, 5, "Generated "+stamp+" (Adelaide time)", "", 0, "C", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	})
	doc.AddPage()
	drawRunSheetTitle(doc, layout)

	if layout.Placeholder != "" {
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 10, layout.Placeholder, "", 1, "L", false, 0, "")
	} else {
		for i, page := range layout.Pages {
			if i > 0 {
				doc.AddPage()
				drawRunSheetTitle(doc, layout)
			}
			drawRunSheetGrid(doc, layout, page)
		}
		if layout.Legend {
			doc.Ln(2)
			doc.SetFont("Helvetica", "I", 8)
			doc.CellFormat(0, 5, "(!) volunteer has overlapping shifts for this performance", "", 1, "L", false, 0, "")
		}
	}

	drawUnfilledBlock(doc, layout.Unfilled)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("run sheet output: %w", err)
	}
	return buf.Bytes(), nil
}

func drawRunSheetTitle(doc *gofpdf.Fpdf, layout runSheetLayout) {
	doc.SetY(10)
	doc.SetFont("Helvetica", "B", 15)
	doc.CellFormat(0, 8, layout.Title, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, layout.Subtitle, "", 1, "L", false, 0, "")
	doc.Ln(2)
}

func drawRunSheetGrid(doc *gofpdf.Fpdf, layout runSheetLayout, rows []runSheetRow) {
	cols := layout.Window.Columns()
	gridX := rsMarginX + rsNameColW
	gridW := rsPageW - 2*rsMarginX - rsNameColW
	colW := gridW / float64(cols)

	xFor := func(minute int) float64 {
		return gridX + float64(minute-layout.Window.StartMin)/SlotMinutes*colW
	}

	// slot header
	headerY := doc.GetY()
	doc.SetFont("Helvetica", "", 5.5)
	doc.SetFillColor(245, 245, 245)
	doc.SetXY(rsMarginX, headerY)
	doc.CellFormat(rsNameColW, rsHeaderH, "", "1", 0, "L", true, 0, "")
	for _, label := range layout.Window.SlotLabels() {
		doc.CellFormat(colW, rsHeaderH, label, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	gridTop := headerY + rsHeaderH
	gridBottom := gridTop + float64(len(rows))*rsRowH

	// full-height bands behind the rows: light for the performance
	// window, darker for each interval
	if perf, ok := clip(layout.Performance, layout.Window); ok {
		doc.SetFillColor(235, 235, 235)
		doc.Rect(xFor(perf.Start), gridTop, xFor(perf.End)-xFor(perf.Start), gridBottom-gridTop, "F")
	}
	for _, iv := range layout.Intervals {
		if r, ok := clip(iv, layout.Window); ok {
			doc.SetFillColor(205, 205, 205)
			doc.Rect(xFor(r.Start), gridTop, xFor(r.End)-xFor(r.Start), gridBottom-gridTop, "F")
		}
	}
	if band, ok := clip(layout.IntervalBand, layout.Window); ok {
		if w := xFor(band.End) - xFor(band.Start); w >= intervalLabelMinW {
			doc.SetFont("Helvetica", "B", 6)
			doc.SetXY(xFor(band.Start), gridTop+(gridBottom-gridTop)/2-2)
			doc.CellFormat(w, 4, "INTERVAL", "", 0, "C", false, 0, "")
		}
	}

	for i, row := range rows {
		y := gridTop + float64(i)*rsRowH

		name := row.Name
		if row.Flagged {
			name = "(!) " + name
		}
		if row.Role != "" {
			name += " - " + row.Role
		}
		doc.SetFont("Helvetica", "", 8)
		doc.SetXY(rsMarginX, y)
		doc.CellFormat(rsNameColW, rsRowH, name, "1", 0, "L", false, 0, "")

		// column cells, with the shift bar drawn proportionally from
		// per-slot overlap so partial slots get partial fills
		doc.SetFillColor(110, 110, 110)
		for c := 0; c < cols; c++ {
			slotStart := layout.Window.StartMin + c*SlotMinutes
			cellX := gridX + float64(c)*colW
			doc.Rect(cellX, y, colW, rsRowH, "D")
			if off, dur := SlotOverlap(slotStart, row.Bar); dur > 0 {
				barX := cellX + float64(off)/SlotMinutes*colW
				barW := float64(dur) / SlotMinutes * colW
				doc.Rect(barX, y+1.5, barW, rsRowH-3, "F")
			}
		}

		// literal times at the bar edges
		if bar, ok := clip(row.Bar, layout.Window); ok {
			doc.SetFont("Helvetica", "B", 5.5)
			doc.SetTextColor(255, 255, 255)
			doc.SetXY(xFor(bar.Start)+0.5, y+rsRowH/2-1.5)
			doc.CellFormat(10, 3, row.Arrive, "", 0, "L", false, 0, "")
			doc.SetXY(xFor(bar.End)-10.5, y+rsRowH/2-1.5)
			doc.CellFormat(10, 3, row.Depart, "", 0, "R", false, 0, "")
			doc.SetTextColor(0, 0, 0)
		}
	}

	doc.SetY(gridBottom)
}

func drawUnfilledBlock(doc *gofpdf.Fpdf, groups []unfilledGroup) {
	if len(groups) == 0 {
		return
	}
	ensureSpace(doc, 14)
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(0, 6, "Unfilled shifts - upcoming performances", "", 1, "L", false, 0, "")
	for _, g := range groups {
		ensureSpace(doc, 11)
		doc.SetFont("Helvetica", "B", 8.5)
		doc.CellFormat(0, 5, g.Date, "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 8.5)
		doc.SetX(rsMarginX + 4)
		doc.MultiCell(rsPageW-2*rsMarginX-4, 4.5, strings.Join(g.Items, ";  "), "", "L", false)
	}
}

func ensureSpace(doc *gofpdf.Fpdf, h float64) {
	if doc.GetY()+h > rsBottomY {
		doc.AddPage()
		doc.SetY(10)
	}
}

// groupUnfilled orders shifts by date then arrival and collapses them
// into one text group per date.
func groupUnfilled(shifts []UnfilledShift) []unfilledGroup {
	sorted := make([]UnfilledShift, len(shifts))
	copy(sorted, shifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Arrive < sorted[j].Arrive
	})

	var groups []unfilledGroup
	for _, s := range sorted {
		label := friendlyISODate(s.Date)
		item := fmt.Sprintf("%s %s-%s", s.Role, adelaide.CleanTime(s.Arrive), adelaide.CleanTime(s.Depart))
		if n := len(groups); n > 0 && groups[n-1].Date == label {
			groups[n-1].Items = append(groups[n-1].Items, item)
			continue
		}
		groups = append(groups, unfilledGroup{Date: label, Items: []string{item}})
	}
	return groups
}

// spanMinutes parses "HH:MM" start/end into a Range, pushing the end past
// midnight when it reads earlier than the start. Unparseable input yields
// an empty range; the literal strings still appear on the document.
func spanMinutes(start, end string) Range {
	s, ok := adelaide.MinuteOfDay(adelaide.CleanTime(start))
	if !ok {
		return Range{}
	}
	e, ok := adelaide.MinuteOfDay(adelaide.CleanTime(end))
	if !ok {
		return Range{}
	}
	if e <= s {
		e += 24 * 60
	}
	return Range{Start: s, End: e}
}

// friendlyISODate turns "2026-03-14" into "Sat 14 Mar 2026", echoing
// anything it cannot parse.
func friendlyISODate(date string) string {
	t, err := time.ParseInLocation("2006-01-02", date, adelaide.Location())
	if err != nil {
		return date
	}
	return adelaide.FriendlyDate(t)
}
