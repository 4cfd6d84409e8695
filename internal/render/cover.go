package render

import (
	"fmt"
	"math"

	"github.com/kozaktomas/photo-calendar/internal/project"
)

const (
	coverMargin  = 36.0
	coverGridGap = 6.0
	coverInfoPt  = 20.0
)

// renderCover draws the optional cover page: a large composited photo or
// a grid of month-representative photos over ~90% of the page, with a
// bottom info band showing the calendar's span.
func (e *Engine) renderCover(st *exportState) error {
	p := st.p
	pdf := st.pdf
	st.addPage()

	W, H := st.ptW, st.ptH
	infoH := H * 0.10
	photoH := H - infoH

	page := &ReportPage{PageNumber: st.report.nextPageNumber(), Kind: "cover"}

	style := p.Calendar.CoverStyle
	if style == "" {
		style = project.CoverLargePhoto
	}
	if style == project.CoverLargePhoto {
		e.renderCoverLargePhoto(st, page, W, photoH)
	} else {
		e.renderCoverGrid(st, page, W, H, photoH)
	}

	// Info band with the span label centered.
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(0, H-infoH, W, infoH, "F")

	endOffset := p.Calendar.StartMonth + p.Calendar.Months - 1
	endYear, endMonth0 := p.Calendar.StartYear+endOffset/12, endOffset%12
	label := fmt.Sprintf("%s %d — %s %d",
		monthNames[p.Calendar.StartMonth], p.Calendar.StartYear,
		monthNames[endMonth0], endYear)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(st.family, "", coverInfoPt)
	labelW := pdf.GetStringWidth(st.tr(label))
	pdf.Text((W-labelW)/2, H-(infoH-coverInfoPt)/2, st.tr(label))

	st.report.Pages = append(st.report.Pages, *page)
	return nil
}

// renderCoverLargePhoto composites a single cover photo over the photo
// band, or an outlined placeholder when none is available.
func (e *Engine) renderCoverLargePhoto(st *exportState, page *ReportPage, W, photoH float64) {
	pdf := st.pdf

	cover := resolveCoverPhoto(st.p)
	var res imageResult
	if cover != nil {
		res = st.images[cover.ID]
	}
	if cover == nil || res.img == nil {
		pdf.SetDrawColor(102, 153, 230)
		pdf.SetLineWidth(1)
		pdf.Rect(0, 0, W, photoH, "D")
		return
	}

	scale := e.ExportDPI / 72
	cw := maxInt(1, int(math.Round(W*scale)))
	ch := maxInt(1, int(math.Round(photoH*scale)))
	canvas := compositeSlot(res.img, cw, ch, st.p.Calendar.CoverTransform)
	embedCanvas(st, "cover", canvas)
	pdf.ImageOptions("cover", 0, 0, W, photoH, false, pngImageOptions(), 0, "")

	dpi := effectiveDPI(res.img, cw, ch, W, st.p.Calendar.CoverTransform)
	page.Photos = append(page.Photos, ReportPhoto{
		PhotoID:      cover.ID,
		SlotID:       "cover",
		EffectiveDPI: dpi,
		LowRes:       dpi > 0 && dpi < lowResDPIThreshold,
	})
}

// renderCoverGrid tiles up to 12 month-representative photos (the first
// assigned photo of each month, in month order) into a 4×3 grid. Blank
// cells become outlined placeholders.
func (e *Engine) renderCoverGrid(st *exportState, page *ReportPage, W, H, photoH float64) {
	pdf := st.pdf
	p := st.p

	const rows, cols = 3, 4
	areaW := W - 2*coverMargin
	areaH := photoH - 2*coverMargin
	cellW := (areaW - coverGridGap*(cols-1)) / cols
	cellH := (areaH - coverGridGap*(rows-1)) / rows

	// One representative photo id per month, blank when unassigned.
	reps := make([]string, 0, rows*cols)
	for i := 0; i < p.Calendar.Months && i < rows*cols; i++ {
		id := ""
		for _, s := range p.MonthData[i].Slots {
			if s.PhotoID != "" {
				id = s.PhotoID
				break
			}
		}
		reps = append(reps, id)
	}

	scale := e.ExportDPI / 72
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			x := coverMargin + float64(c)*(cellW+coverGridGap)
			y := coverMargin + float64(r)*(cellH+coverGridGap)

			var res imageResult
			id := ""
			if idx < len(reps) {
				id = reps[idx]
			}
			if id != "" {
				res = st.images[id]
			}
			if res.img == nil {
				pdf.SetDrawColor(204, 204, 204)
				pdf.SetLineWidth(0.5)
				pdf.Rect(x, y, cellW, cellH, "D")
				continue
			}

			cw := maxInt(1, int(math.Round(cellW*scale)))
			ch := maxInt(1, int(math.Round(cellH*scale)))
			canvas := compositeSlot(res.img, cw, ch, project.IdentityTransform())
			name := fmt.Sprintf("cover-grid-%d", idx)
			embedCanvas(st, name, canvas)
			pdf.ImageOptions(name, x, y, cellW, cellH, false, pngImageOptions(), 0, "")

			page.Photos = append(page.Photos, ReportPhoto{PhotoID: id, SlotID: name})
		}
	}
}
