package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-calendar/internal/config"
	"github.com/kozaktomas/photo-calendar/internal/project"
	"github.com/kozaktomas/photo-calendar/internal/render"
	"github.com/kozaktomas/photo-calendar/internal/store"
)

// ExportHandler runs PDF and PNG exports. Output is buffered before the
// first response byte so a failed export can still return a JSON error.
type ExportHandler struct {
	store  *store.Store
	engine *render.Engine
}

func NewExportHandler(cfg *config.Config, st *store.Store) *ExportHandler {
	engine := render.New(render.FileLoader{}, cfg.Export.FontDir)
	engine.ExportDPI = cfg.Export.DPI
	if cfg.Export.ImagePolicy == string(render.PolicyAbort) {
		engine.Policy = render.PolicyAbort
	}
	return &ExportHandler{store: st, engine: engine}
}

func (h *ExportHandler) loadProject(w http.ResponseWriter, r *http.Request) *project.Project {
	id := chi.URLParam(r, "id")
	p, err := h.store.LoadProject(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load project")
		return nil
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return nil
	}
	return p
}

// PDF renders the full document and streams it as an attachment. Export
// warnings are surfaced in the X-Export-Warnings header.
func (h *ExportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	p := h.loadProject(w, r)
	if p == nil {
		return
	}

	var buf bytes.Buffer
	report, err := h.engine.ExportPDF(r.Context(), p, &buf, nil)
	if err != nil {
		log.Printf("WARNING: pdf export of project %s failed: %v", sanitizeForLog(p.ID), err)
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.PDFFilename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Export-Warnings", strconv.Itoa(len(report.Warnings)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// MonthPNG renders one month's photo arrangement as a PNG attachment.
func (h *ExportHandler) MonthPNG(w http.ResponseWriter, r *http.Request) {
	p := h.loadProject(w, r)
	if p == nil {
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid month index")
		return
	}

	var buf bytes.Buffer
	if err := h.engine.ExportMonthPNG(r.Context(), p, month, &buf); err != nil {
		log.Printf("WARNING: png export of project %s failed: %v", sanitizeForLog(p.ID), err)
		respondError(w, http.StatusBadRequest, "export failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.SnapshotFilename(p, month)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
