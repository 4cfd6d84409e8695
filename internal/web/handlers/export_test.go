package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/photo-calendar/internal/config"
)

func testExportHandler(t *testing.T) (*ExportHandler, *ProjectsHandler) {
	t.Helper()
	st := testStore(t)
	cfg := &config.Config{
		Export: config.ExportConfig{DPI: 96, ImagePolicy: "placeholder"},
	}
	return NewExportHandler(cfg, st), NewProjectsHandler(st, 0)
}

func TestExportPDFEndpoint(t *testing.T) {
	h, projects := testExportHandler(t)

	recorder := httptest.NewRecorder()
	projects.Create(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/projects", nil))
	id := projectIDFromResponse(t, recorder)

	recorder = httptest.NewRecorder()
	req := requestWithChiParams(
		httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+id+"/export/pdf", nil),
		map[string]string{"id": id},
	)
	h.PDF(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", ct)
	}
	if cd := recorder.Header().Get("Content-Disposition"); cd != `attachment; filename="calendar.pdf"` {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if !bytes.HasPrefix(recorder.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF document")
	}
}

func TestExportPNGEndpoint(t *testing.T) {
	h, projects := testExportHandler(t)

	recorder := httptest.NewRecorder()
	projects.Create(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/projects", nil))
	id := projectIDFromResponse(t, recorder)

	recorder = httptest.NewRecorder()
	req := requestWithChiParams(
		httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+id+"/export/png/0", nil),
		map[string]string{"id": id, "month": "0"},
	)
	h.MonthPNG(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %s", ct)
	}
	// PNG signature.
	if !bytes.HasPrefix(recorder.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("body is not a PNG image")
	}
}

func TestExportPNGBadMonth(t *testing.T) {
	h, projects := testExportHandler(t)

	recorder := httptest.NewRecorder()
	projects.Create(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/projects", nil))
	id := projectIDFromResponse(t, recorder)

	recorder = httptest.NewRecorder()
	req := requestWithChiParams(
		httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+id+"/export/png/40", nil),
		map[string]string{"id": id, "month": "40"},
	)
	h.MonthPNG(recorder, req)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an out-of-range month, got %d", recorder.Code)
	}
}

func TestExportMissingProject(t *testing.T) {
	h, _ := testExportHandler(t)

	recorder := httptest.NewRecorder()
	req := requestWithChiParams(
		httptest.NewRequest(http.MethodPost, "/api/v1/projects/nope/export/pdf", nil),
		map[string]string{"id": "nope"},
	)
	h.PDF(recorder, req)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", recorder.Code)
	}
}
