// Package render turns a project snapshot into a paginated PDF document
// or a single-month PNG, reproducing the interactive preview's geometry.
//
// All layout math runs in document points (72 per inch, top-left origin,
// Y growing downward) while photos are composited on raster canvases at
// a separate export resolution, so printed output is not limited by
// preview resolution.
package render

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/kozaktomas/photo-calendar/internal/holiday"
	"github.com/kozaktomas/photo-calendar/internal/layout"
	"github.com/kozaktomas/photo-calendar/internal/pagesize"
	"github.com/kozaktomas/photo-calendar/internal/project"
)

// ImagePolicy decides what a failed photo load does to an export.
type ImagePolicy string

const (
	// PolicyPlaceholder renders the slot as an outlined placeholder and
	// records a warning in the export report.
	PolicyPlaceholder ImagePolicy = "placeholder"
	// PolicyAbort fails the whole export on the first broken photo.
	PolicyAbort ImagePolicy = "abort"
)

// PDFFilename is the fixed download name of a document export.
const PDFFilename = "calendar.pdf"

const lowResDPIThreshold = 200.0

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Engine renders projects. The zero value is not usable; construct with
// New. An Engine holds no per-export state and is safe for reuse.
type Engine struct {
	Loader    Loader
	FontDir   string
	ExportDPI float64
	Policy    ImagePolicy
}

// New returns an engine with the default export resolution and the
// degrade-to-placeholder image policy.
func New(loader Loader, fontDir string) *Engine {
	return &Engine{
		Loader:    loader,
		FontDir:   fontDir,
		ExportDPI: pagesize.DefaultExportDPI,
		Policy:    PolicyPlaceholder,
	}
}

// exportState carries everything one PDF export needs between pages.
type exportState struct {
	pdf      *gofpdf.Fpdf
	family   string              // font family name to pass to SetFont
	tr       func(string) string // UTF-8 to font encoding, identity for embedded fonts
	p        *project.Project
	ptW, ptH float64 // page size in document points
	pxW, pxH int     // page size in export pixels
	images   map[string]imageResult
	holidays map[string]string
	report   *Report
}

// ExportPDF renders the project to w: optional cover page, optional
// yearly overview page, then one page per month. onProgress, if non-nil,
// is called once per finished page with a strictly increasing fraction
// whose final value is exactly 1.0. The project is cloned up front, so
// concurrent edits cannot affect an in-flight export.
func (e *Engine) ExportPDF(ctx context.Context, proj *project.Project, w io.Writer, onProgress func(float64)) (*Report, error) {
	p := proj.Clone()

	pt, err := pagesize.ComputePixelSize(p.Calendar.PageSize, p.Calendar.Orientation, pagesize.DocumentPPI)
	if err != nil {
		return nil, err
	}
	px, err := pagesize.ComputePixelSize(p.Calendar.PageSize, p.Calendar.Orientation, e.ExportDPI)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(pt.Width), Ht: float64(pt.Height)},
	})
	pdf.SetAutoPageBreak(false, 0)

	st := &exportState{
		pdf:      pdf,
		p:        p,
		ptW:      float64(pt.Width),
		ptH:      float64(pt.Height),
		pxW:      px.Width,
		pxH:      px.Height,
		holidays: map[string]string{},
		report:   &Report{},
	}
	st.family, st.tr = e.embedFont(pdf, p.Calendar.FontFamily)

	if p.Calendar.ShowHolidays {
		st.holidays = holiday.CollectMap(p.Calendar.StartMonth, p.Calendar.StartYear, p.Calendar.Months)
	}

	st.images = e.prefetch(ctx, p)
	for id, res := range st.images {
		if res.err != nil {
			if e.Policy == PolicyAbort {
				return nil, fmt.Errorf("failed to load photo %s: %w", id, res.err)
			}
			st.report.Warnf("photo %s failed to load, rendered as placeholder: %v", id, res.err)
		}
	}

	totalPages := p.Calendar.Months
	if p.Calendar.IncludeCoverPage {
		totalPages++
	}
	if p.Calendar.IncludeYearlyOverview {
		totalPages++
	}
	pagesDone := 0
	pageDone := func() {
		pagesDone++
		if onProgress != nil {
			onProgress(float64(pagesDone) / float64(totalPages))
		}
	}

	if p.Calendar.IncludeCoverPage {
		if err := e.renderCover(st); err != nil {
			return nil, err
		}
		pageDone()
	}
	if p.Calendar.IncludeYearlyOverview {
		e.renderOverview(st)
		pageDone()
	}
	for m := 0; m < p.Calendar.Months; m++ {
		if err := e.renderMonthPage(st, m); err != nil {
			return nil, err
		}
		pageDone()
	}

	if pdf.Err() {
		return nil, fmt.Errorf("pdf assembly failed: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	st.report.PageCount = pagesDone
	st.report.finish()
	return st.report, nil
}

// addPage opens a new page at the project's exact point size.
func (st *exportState) addPage() {
	st.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: st.ptW, Ht: st.ptH})
}

// renderMonthPage draws one month: photo slots per the effective layout,
// then the calendar grid with day numbers, holidays, and events.
func (e *Engine) renderMonthPage(st *exportState, m int) error {
	p := st.p
	lay, err := layout.Effective(p.Calendar.LayoutPerMonth[m], p.Calendar.SplitDirection)
	if err != nil {
		return fmt.Errorf("month %d: %w", m, err)
	}

	st.addPage()
	year, month0 := p.MonthAt(m)
	page := &ReportPage{
		PageNumber: st.report.nextPageNumber(),
		Kind:       "month",
		Month:      m,
		Layout:     lay.ID,
	}

	monthPage := &p.MonthData[m]
	for _, slot := range lay.Slots {
		e.renderSlot(st, page, monthPage, m, slot)
	}

	e.renderGrid(st, lay, year, month0)

	st.report.Pages = append(st.report.Pages, *page)
	return nil
}

// renderSlot composites one photo slot or draws its placeholder outline.
func (e *Engine) renderSlot(st *exportState, page *ReportPage, monthPage *project.MonthPage, m int, slot layout.Slot) {
	pdf := st.pdf
	x := slot.Rect.X * st.ptW
	y := slot.Rect.Y * st.ptH
	spw := slot.Rect.W * st.ptW
	sph := slot.Rect.H * st.ptH

	placeholder := func() {
		pdf.SetDrawColor(77, 128, 230)
		pdf.SetLineWidth(1)
		pdf.Rect(x, y, spw, sph, "D")
	}

	assignment, ok := monthPage.SlotAssignment(slot.ID)
	if !ok || assignment.PhotoID == "" {
		placeholder()
		return
	}
	res, loaded := st.images[assignment.PhotoID]
	if !loaded || res.img == nil {
		placeholder()
		return
	}

	pixW := maxInt(1, int(math.Round(slot.Rect.W*float64(st.pxW))))
	pixH := maxInt(1, int(math.Round(slot.Rect.H*float64(st.pxH))))
	canvas := compositeSlot(res.img, pixW, pixH, assignment.Transform)

	name := fmt.Sprintf("month%02d-%s", m, slot.ID)
	embedCanvas(st, name, canvas)
	pdf.ImageOptions(name, x, y, spw, sph, false, pngImageOptions(), 0, "")

	dpi := effectiveDPI(res.img, pixW, pixH, spw, assignment.Transform)
	page.Photos = append(page.Photos, ReportPhoto{
		PhotoID:      assignment.PhotoID,
		SlotID:       slot.ID,
		EffectiveDPI: dpi,
		LowRes:       dpi > 0 && dpi < lowResDPIThreshold,
	})
}

// effectiveDPI estimates how many source pixels land per output inch for
// a composited slot. Zooming in spends source pixels, so the user scale
// divides the result.
func effectiveDPI(img imageLike, pixW, pixH int, slotPointW float64, t project.Transform) float64 {
	iw := img.Bounds().Dx()
	ih := img.Bounds().Dy()
	if iw == 0 || ih == 0 || slotPointW <= 0 {
		return 0
	}
	s := coverScale(iw, ih, pixW, pixH) * clampedScale(t)
	if s <= 0 {
		return 0
	}
	dpi := 72 * (float64(pixW) / slotPointW) / s
	return math.Round(dpi*10) / 10
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
