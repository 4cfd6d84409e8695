package render

import (
	"fmt"
	"strconv"

	"github.com/kozaktomas/photo-calendar/internal/calendar"
	"github.com/kozaktomas/photo-calendar/internal/layout"
	"github.com/kozaktomas/photo-calendar/internal/pagesize"
)

// fiveBySevenTopMarginPt shifts the grid down on 5x7 pages so the text
// area clears the trim edge; photo slots are unaffected.
const fiveBySevenTopMarginPt = 0.25 * 72

// renderGrid draws the month calendar into the layout's grid region:
// shaded header with centered month label and weekday abbreviations, an
// optional leading ISO-week column, separator lines, day numbers,
// holiday highlights, and word-wrapped event text.
func (e *Engine) renderGrid(st *exportState, lay *layout.Def, year, month0 int) {
	pdf := st.pdf
	p := st.p
	g := lay.Grid

	topMargin := 0.0
	if p.Calendar.PageSize == pagesize.Key5x7 {
		topMargin = fiveBySevenTopMarginPt
	}

	gx := g.X * st.ptW
	gw := g.W * st.ptW
	gridTop := g.Y*st.ptH + topMargin
	gridBottom := (g.Y + g.H) * st.ptH
	gh := gridBottom - gridTop
	cellH := gh / 7 // header row + 6 weeks

	weekColW := 0.0
	if p.Calendar.ShowWeekNumbers {
		weekColW = gw / 15
	}
	dayAreaX := gx + weekColW
	cellW := (gw - weekColW) / 7

	// Header fill extends up into the 5x7 top margin so the shading
	// covers the gap above the header instead of week one.
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(gx, g.Y*st.ptH, gw, cellH+topMargin, "F")
	if weekColW > 0 {
		pdf.SetFillColor(235, 235, 235)
		pdf.Rect(gx, g.Y*st.ptH, weekColW, cellH+topMargin, "F")
	}

	monthLabel := fmt.Sprintf("%s %d", monthNames[month0], year)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(st.family, "", 16)
	labelW := pdf.GetStringWidth(st.tr(monthLabel))
	pdf.Text(gx+(gw-labelW)/2, gridTop+18, st.tr(monthLabel))

	pdf.SetFont(st.family, "", 10)
	for i, label := range weekdayLabels {
		pdf.Text(dayAreaX+float64(i)*cellW+4, gridTop+cellH-8, label)
	}
	if weekColW > 0 {
		pdf.SetFont(st.family, "", 8)
		pdf.Text(gx+3, gridTop+cellH-8, "Wk")
	}

	pdf.SetDrawColor(204, 204, 204)
	pdf.SetLineWidth(0.5)
	// Horizontal rules for every row boundary except the header's top
	// edge, which stays open on purpose.
	for r := 0; r <= 6; r++ {
		y := gridBottom - float64(r)*cellH
		pdf.Line(gx, y, gx+gw, y)
	}
	// Vertical rules only in the day area; the header has none.
	headerBottom := gridTop + cellH
	for c := 0; c <= 7; c++ {
		x := dayAreaX + float64(c)*cellW
		pdf.Line(x, headerBottom, x, gridBottom)
	}
	if weekColW > 0 {
		pdf.Line(gx, headerBottom, gx, gridBottom)
	}

	grid := calendar.MonthGrid(year, month0)
	monthPrefix := fmt.Sprintf("%04d-%02d-", year, month0+1)
	for w := range grid.Weeks {
		cellTop := gridTop + float64(w+1)*cellH

		if weekColW > 0 {
			for _, cell := range grid.Weeks[w] {
				if cell.InMonth {
					pdf.SetFont(st.family, "", 8)
					pdf.SetTextColor(0, 0, 0)
					pdf.Text(gx+3, cellTop+12, strconv.Itoa(calendar.ISOWeek(cell.Date)))
					break
				}
			}
		}

		for d, cell := range grid.Weeks[w] {
			if !cell.InMonth {
				continue
			}
			cx := dayAreaX + float64(d)*cellW
			dateISO := fmt.Sprintf("%s%02d", monthPrefix, cell.Day)

			pdf.SetFont(st.family, "", 10)
			pdf.SetTextColor(0, 0, 0)
			pdf.Text(cx+4, cellTop+14, strconv.Itoa(cell.Day))
			if _, isHoliday := st.holidays[dateISO]; isHoliday {
				// Highlight behind the day number; redraw the number
				// for contrast.
				pdf.SetFillColor(255, 235, 191)
				pdf.Rect(cx+1, cellTop+1, cellW-2, cellH-2, "F")
				pdf.Text(cx+4, cellTop+14, strconv.Itoa(cell.Day))
			}

			e.renderCellEvents(st, dateISO, cx, cellTop, cellW, cellH)
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

const (
	eventTextSize     = 9.0
	eventLineHeight   = 10.0
	maxLinesPerEvent  = 2
	maxEventsPerCell  = 2
	eventTextPadding  = 8.0
	eventFirstLineOff = 28.0
)

// renderCellEvents draws up to two events for a date, each word-wrapped
// to at most two lines, stopping once the cell's vertical budget runs
// out.
func (e *Engine) renderCellEvents(st *exportState, dateISO string, cx, cellTop, cellW, cellH float64) {
	pdf := st.pdf

	var count, lineIdx int
	pdf.SetFont(st.family, "", eventTextSize)
	measure := func(s string) float64 { return pdf.GetStringWidth(st.tr(s)) }

	for _, ev := range st.p.Events {
		if !ev.Visible || ev.DateISO != dateISO {
			continue
		}
		if count >= maxEventsPerCell {
			break
		}
		count++

		r, g, b := ParseHexColor(ev.Color)
		pdf.SetTextColor(r, g, b)
		lines := WrapText(ev.Text, cellW-eventTextPadding, measure)
		if len(lines) > maxLinesPerEvent {
			lines = lines[:maxLinesPerEvent]
		}
		for _, line := range lines {
			baseline := cellTop + eventFirstLineOff + float64(lineIdx)*eventLineHeight
			if baseline >= cellTop+cellH-2 {
				break
			}
			pdf.Text(cx+4, baseline, st.tr(line))
			lineIdx++
		}
	}
	pdf.SetTextColor(0, 0, 0)
}
