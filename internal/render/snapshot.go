package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/kozaktomas/photo-calendar/internal/layout"
	"github.com/kozaktomas/photo-calendar/internal/pagesize"
	"github.com/kozaktomas/photo-calendar/internal/project"
)

const snapshotLabelSize = 24.0

// SnapshotFilename returns the download name for a month snapshot,
// calendar-YYYY-MM.png for the month at the given offset.
func SnapshotFilename(p *project.Project, monthIndex int) string {
	year, month0 := p.MonthAt(monthIndex)
	return fmt.Sprintf("calendar-%04d-%02d.png", year, month0+1)
}

// ExportMonthPNG renders a single month's photo arrangement to w as a
// PNG at the engine's export resolution. The raster shares the PDF
// path's compositing, so the two exports cannot drift apart. Slots
// without a usable photo get an outlined placeholder.
func (e *Engine) ExportMonthPNG(ctx context.Context, proj *project.Project, monthIndex int, w io.Writer) error {
	p := proj.Clone()
	if monthIndex < 0 || monthIndex >= p.Calendar.Months {
		return fmt.Errorf("month index %d out of range [0, %d)", monthIndex, p.Calendar.Months)
	}

	px, err := pagesize.ComputePixelSize(p.Calendar.PageSize, p.Calendar.Orientation, e.ExportDPI)
	if err != nil {
		return err
	}
	lay, err := layout.Effective(p.Calendar.LayoutPerMonth[monthIndex], p.Calendar.SplitDirection)
	if err != nil {
		return fmt.Errorf("month %d: %w", monthIndex, err)
	}

	images := e.prefetch(ctx, p)
	monthPage := &p.MonthData[monthIndex]
	for _, slot := range lay.Slots {
		a, ok := monthPage.SlotAssignment(slot.ID)
		if !ok || a.PhotoID == "" {
			continue
		}
		if res, loaded := images[a.PhotoID]; loaded && res.err != nil {
			if e.Policy == PolicyAbort {
				return fmt.Errorf("failed to load photo %s: %w", a.PhotoID, res.err)
			}
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, px.Width, px.Height))
	stddraw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, stddraw.Src)

	for _, slot := range lay.Slots {
		sx := int(math.Round(slot.Rect.X * float64(px.Width)))
		sy := int(math.Round(slot.Rect.Y * float64(px.Height)))
		sw := maxInt(1, int(math.Round(slot.Rect.W*float64(px.Width))))
		sh := maxInt(1, int(math.Round(slot.Rect.H*float64(px.Height))))
		target := image.Rect(sx, sy, sx+sw, sy+sh)

		assignment, ok := monthPage.SlotAssignment(slot.ID)
		var res imageResult
		if ok && assignment.PhotoID != "" {
			res = images[assignment.PhotoID]
		}
		if res.img == nil {
			outlineRect(canvas, target, color.RGBA{R: 0x4d, G: 0x80, B: 0xe5, A: 255}, 2)
			continue
		}

		slotCanvas := compositeSlot(res.img, sw, sh, assignment.Transform)
		stddraw.Draw(canvas, target, slotCanvas, image.Point{}, stddraw.Over)
	}

	year, month0 := p.MonthAt(monthIndex)
	label := fmt.Sprintf("%s %d", monthNames[month0], year)
	if err := drawSnapshotLabel(canvas, label); err != nil {
		return err
	}

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// drawSnapshotLabel draws the month label centered near the top edge.
func drawSnapshotLabel(canvas *image.RGBA, label string) error {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse label font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    snapshotLabelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to build label face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.Black,
		Face: face,
	}
	labelW := d.MeasureString(label).Round()
	d.Dot = fixed.P((canvas.Bounds().Dx()-labelW)/2, 32)
	d.DrawString(label)
	return nil
}

// outlineRect strokes the inside edge of r with the given color and
// line width in pixels.
func outlineRect(dst *image.RGBA, r image.Rectangle, c color.RGBA, width int) {
	src := image.NewUniform(c)
	top := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width)
	bottom := image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y)
	left := image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y)
	right := image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y)
	for _, edge := range []image.Rectangle{top, bottom, left, right} {
		stddraw.Draw(dst, edge, src, image.Point{}, stddraw.Src)
	}
}
