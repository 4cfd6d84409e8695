package render

import (
	"fmt"
	"strconv"

	"github.com/kozaktomas/photo-calendar/internal/calendar"
)

// renderOverview draws the optional yearly overview page: 12 miniature
// month grids in a 4×3 arrangement, each with a weekday header and day
// numbers. Holidays get a subtle highlight; events and photos are not
// rendered at this scale.
func (e *Engine) renderOverview(st *exportState) {
	p := st.p
	pdf := st.pdf
	st.addPage()

	page := &ReportPage{PageNumber: st.report.nextPageNumber(), Kind: "overview"}

	const (
		rows, cols = 3, 4
		margin     = 36.0
		gap        = 14.0
		titleSize  = 9.0
		daySize    = 5.5
	)
	W, H := st.ptW, st.ptH
	areaW := W - 2*margin
	areaH := H - 2*margin
	miniW := (areaW - gap*(cols-1)) / cols
	miniH := (areaH - gap*(rows-1)) / rows

	weekdayInitials := [7]string{"S", "M", "T", "W", "T", "F", "S"}

	for m := 0; m < p.Calendar.Months && m < rows*cols; m++ {
		r, c := m/cols, m%cols
		x := margin + float64(c)*(miniW+gap)
		y := margin + float64(r)*(miniH+gap)
		year, month0 := p.MonthAt(m)

		// Title row, weekday row, then 6 week rows.
		rowH := miniH / 8
		cellW := miniW / 7

		title := fmt.Sprintf("%s %d", monthNames[month0], year)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(st.family, "", titleSize)
		titleW := pdf.GetStringWidth(st.tr(title))
		pdf.Text(x+(miniW-titleW)/2, y+rowH-2, st.tr(title))

		pdf.SetFont(st.family, "", daySize)
		for d, initial := range weekdayInitials {
			dw := pdf.GetStringWidth(initial)
			pdf.Text(x+float64(d)*cellW+(cellW-dw)/2, y+2*rowH-2, initial)
		}

		grid := calendar.MonthGrid(year, month0)
		monthPrefix := fmt.Sprintf("%04d-%02d-", year, month0+1)
		for w := range grid.Weeks {
			for d, cell := range grid.Weeks[w] {
				if !cell.InMonth {
					continue
				}
				cx := x + float64(d)*cellW
				cy := y + float64(w+2)*rowH
				dateISO := fmt.Sprintf("%s%02d", monthPrefix, cell.Day)
				if _, isHoliday := st.holidays[dateISO]; isHoliday {
					pdf.SetFillColor(250, 242, 225)
					pdf.Rect(cx, cy+2-rowH, cellW, rowH, "F")
				}
				label := strconv.Itoa(cell.Day)
				lw := pdf.GetStringWidth(label)
				pdf.Text(cx+(cellW-lw)/2, cy, label)
			}
		}
	}

	pdf.SetTextColor(0, 0, 0)
	st.report.Pages = append(st.report.Pages, *page)
}
