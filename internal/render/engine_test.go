package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/kozaktomas/photo-calendar/internal/project"
)

// mapLoader serves images from memory; photos absent from the map fail
// to load.
type mapLoader map[string]image.Image

func (l mapLoader) Load(_ context.Context, photo project.Photo) (image.Image, error) {
	img, ok := l[photo.ID]
	if !ok {
		return nil, fmt.Errorf("no image for %s", photo.ID)
	}
	return img, nil
}

func testEngine(loader Loader) *Engine {
	e := New(loader, "testdata/fonts")
	e.ExportDPI = 96 // keep test canvases small
	return e
}

func testProject() *project.Project {
	p := project.New()
	p.Calendar.StartYear = 2025
	return p
}

func TestExportPDFPageCount(t *testing.T) {
	e := testEngine(mapLoader{})
	p := testProject()
	p.Calendar.IncludeCoverPage = true
	p.Calendar.IncludeYearlyOverview = true

	var buf bytes.Buffer
	report, err := e.ExportPDF(context.Background(), p, &buf, nil)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if report.PageCount != 14 {
		t.Errorf("expected 14 pages (cover + overview + 12 months), got %d", report.PageCount)
	}
	if len(report.Pages) != 14 {
		t.Fatalf("expected 14 page reports, got %d", len(report.Pages))
	}
	if report.Pages[0].Kind != "cover" || report.Pages[1].Kind != "overview" {
		t.Errorf("unexpected leading page kinds: %s, %s", report.Pages[0].Kind, report.Pages[1].Kind)
	}
	for i, page := range report.Pages[2:] {
		if page.Kind != "month" || page.Month != i {
			t.Errorf("page %d: expected month %d, got kind=%s month=%d", i+2, i, page.Kind, page.Month)
		}
		if page.Layout != "single-top" {
			t.Errorf("page %d: expected layout single-top, got %s", i+2, page.Layout)
		}
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestExportPDFProgress(t *testing.T) {
	e := testEngine(mapLoader{})
	p := testProject()

	var fractions []float64
	var buf bytes.Buffer
	if _, err := e.ExportPDF(context.Background(), p, &buf, func(f float64) {
		fractions = append(fractions, f)
	}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if len(fractions) != 12 {
		t.Fatalf("expected 12 progress calls, got %d", len(fractions))
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] <= fractions[i-1] {
			t.Errorf("progress not strictly increasing at %d: %f then %f",
				i, fractions[i-1], fractions[i])
		}
	}
	if fractions[len(fractions)-1] != 1.0 {
		t.Errorf("final progress should be exactly 1.0, got %f", fractions[len(fractions)-1])
	}
}

func TestExportPDFWithPhotos(t *testing.T) {
	img := solidImage(64, 48, color.RGBA{R: 10, G: 120, B: 30, A: 255})
	e := testEngine(mapLoader{"ph1": img})

	p := testProject()
	p.Photos = append(p.Photos, project.Photo{ID: "ph1", Name: "a.jpg", PreviewPath: "mem"})
	p.MonthData[0].Slots[0].PhotoID = "ph1"

	var buf bytes.Buffer
	report, err := e.ExportPDF(context.Background(), p, &buf, nil)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if report.PhotoCount != 1 {
		t.Errorf("expected 1 placed photo, got %d", report.PhotoCount)
	}
	placed := report.Pages[0].Photos
	if len(placed) != 1 || placed[0].PhotoID != "ph1" || placed[0].SlotID != "main" {
		t.Fatalf("unexpected placement report: %+v", placed)
	}
	if placed[0].EffectiveDPI <= 0 {
		t.Errorf("expected a positive effective dpi, got %f", placed[0].EffectiveDPI)
	}
	if !placed[0].LowRes {
		t.Error("a 64px photo across half a page should be flagged low-res")
	}
	if len(report.Warnings) == 0 {
		t.Error("low-res placement should produce a warning")
	}
}

func TestExportPDFPlaceholderPolicy(t *testing.T) {
	e := testEngine(mapLoader{}) // every load fails

	p := testProject()
	p.Photos = append(p.Photos, project.Photo{ID: "ph1", Name: "a.jpg", PreviewPath: "mem"})
	p.MonthData[0].Slots[0].PhotoID = "ph1"

	var buf bytes.Buffer
	report, err := e.ExportPDF(context.Background(), p, &buf, nil)
	if err != nil {
		t.Fatalf("placeholder policy should not fail the export: %v", err)
	}
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "ph1") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning naming the broken photo, got %v", report.Warnings)
	}
	if report.PhotoCount != 0 {
		t.Errorf("broken photo should not count as placed, got %d", report.PhotoCount)
	}
}

func TestExportPDFAbortPolicy(t *testing.T) {
	e := testEngine(mapLoader{})
	e.Policy = PolicyAbort

	p := testProject()
	p.Photos = append(p.Photos, project.Photo{ID: "ph1", Name: "a.jpg", PreviewPath: "mem"})
	p.MonthData[0].Slots[0].PhotoID = "ph1"

	var buf bytes.Buffer
	if _, err := e.ExportPDF(context.Background(), p, &buf, nil); err == nil {
		t.Error("abort policy should fail the export on a broken photo")
	}
}

func TestExportPDFRendersEvents(t *testing.T) {
	e := testEngine(mapLoader{})

	base := testProject()
	base.Calendar.Months = 1
	base.Calendar.LayoutPerMonth = base.Calendar.LayoutPerMonth[:1]
	base.MonthData = base.MonthData[:1]

	longText := "Quarterly planning session at the lakeside venue with the whole extended team"
	visible := base.Clone()
	visible.Events = []project.Event{
		{ID: "e1", DateISO: "2025-01-15", Text: longText, Color: "#cc3300", Visible: true},
		{ID: "e2", DateISO: "2025-01-15", Text: "never drawn", Visible: false},
	}
	hidden := base.Clone()
	hidden.Events = []project.Event{
		{ID: "e1", DateISO: "2025-01-15", Text: longText, Color: "#cc3300", Visible: false},
		{ID: "e2", DateISO: "2025-01-15", Text: "never drawn", Visible: false},
	}

	var visibleBuf, hiddenBuf bytes.Buffer
	if _, err := e.ExportPDF(context.Background(), visible, &visibleBuf, nil); err != nil {
		t.Fatalf("export with a visible event failed: %v", err)
	}
	if _, err := e.ExportPDF(context.Background(), hidden, &hiddenBuf, nil); err != nil {
		t.Fatalf("export with hidden events failed: %v", err)
	}

	// A drawn event adds text operations to the page stream; hidden
	// events must add nothing.
	if visibleBuf.Len() <= hiddenBuf.Len() {
		t.Errorf("visible event left no trace in the output: %d bytes vs %d with every event hidden",
			visibleBuf.Len(), hiddenBuf.Len())
	}
}

func TestRenderCellEventsResetsTextColor(t *testing.T) {
	e := testEngine(mapLoader{})
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: 612, Ht: 792},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: 612, Ht: 792})

	p := testProject()
	p.Events = append(p.Events, project.Event{
		ID: "e1", DateISO: "2025-01-15", Text: "Dentist", Color: "#cc3300", Visible: true,
	})

	st := &exportState{pdf: pdf, p: p, report: &Report{}}
	st.family, st.tr = e.embedFont(pdf, p.Calendar.FontFamily)

	e.renderCellEvents(st, "2025-01-15", 10, 100, 80, 90)

	if r, g, b := pdf.GetTextColor(); r != 0 || g != 0 || b != 0 {
		t.Errorf("text color not restored to black after a colored event: (%d,%d,%d)", r, g, b)
	}
	if pdf.Err() {
		t.Fatalf("pdf error after drawing events: %v", pdf.Error())
	}
}

func TestExportPDFUnknownPageSize(t *testing.T) {
	e := testEngine(mapLoader{})
	p := testProject()
	p.Calendar.PageSize = "Tabloid"

	var buf bytes.Buffer
	if _, err := e.ExportPDF(context.Background(), p, &buf, nil); err == nil {
		t.Error("expected error for unknown page size")
	}
}

func TestExportPDFDoesNotMutateInput(t *testing.T) {
	e := testEngine(mapLoader{})
	p := testProject()
	p.Calendar.ShowHolidays = true
	before := len(p.Events)

	var buf bytes.Buffer
	if _, err := e.ExportPDF(context.Background(), p, &buf, nil); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(p.Events) != before {
		t.Error("export mutated the caller's project")
	}
}

func TestExportPDFLayoutVariants(t *testing.T) {
	e := testEngine(mapLoader{})
	p := testProject()
	p.Calendar.Months = 2
	p.Calendar.LayoutPerMonth = []string{"dual-split", "triple-strip"}
	p.Calendar.SplitDirection = "lr"
	p.MonthData = p.MonthData[:2]

	var buf bytes.Buffer
	report, err := e.ExportPDF(context.Background(), p, &buf, nil)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if report.Pages[0].Layout != "dual-split-lr" {
		t.Errorf("expected dual-split-lr under lr split, got %s", report.Pages[0].Layout)
	}
	if report.Pages[1].Layout != "triple-strip-lr" {
		t.Errorf("expected triple-strip-lr under lr split, got %s", report.Pages[1].Layout)
	}
}

func TestExportPDFUnknownLayout(t *testing.T) {
	e := testEngine(mapLoader{})
	p := testProject()
	p.Calendar.LayoutPerMonth[5] = "penta-grid"

	var buf bytes.Buffer
	_, err := e.ExportPDF(context.Background(), p, &buf, nil)
	if err == nil {
		t.Fatal("expected error for unknown layout id")
	}
	if !strings.Contains(err.Error(), "month 5") {
		t.Errorf("error should name the offending month: %v", err)
	}
}
