package handlers

import (
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-calendar/internal/project"
	"github.com/kozaktomas/photo-calendar/internal/store"
)

// ProjectsHandler serves project CRUD. Updates are persisted through a
// per-project debouncer so rapid editor traffic coalesces into a single
// disk write per quiet period.
type ProjectsHandler struct {
	store     *store.Store
	saveDelay time.Duration

	mu       sync.Mutex
	latest   map[string]*project.Project
	debounce map[string]*store.Debouncer
}

// NewProjectsHandler creates a projects handler with the given autosave
// debounce window.
func NewProjectsHandler(st *store.Store, saveDelay time.Duration) *ProjectsHandler {
	return &ProjectsHandler{
		store:     st,
		saveDelay: saveDelay,
		latest:    map[string]*project.Project{},
		debounce:  map[string]*store.Debouncer{},
	}
}

// List returns the ids of all stored projects.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.store.ListProjects()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"projects": ids})
}

// Create makes a fresh default project and persists it immediately.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := project.New()
	p.SyncHolidayEvents()
	if err := h.store.SaveProject(p); err != nil {
		log.Printf("WARNING: failed to save new project: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to save project")
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// Get returns a stored project by id.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.loadCurrent(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// Update replaces the project document. The write is debounced; the
// response reflects the accepted in-memory state.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	p, err := project.Decode(body)
	if err != nil {
		log.Printf("WARNING: rejected project update for %s: %v", sanitizeForLog(id), err)
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if p.ID != id {
		respondError(w, http.StatusBadRequest, "project id mismatch")
		return
	}
	p.SyncHolidayEvents()

	h.mu.Lock()
	h.latest[id] = p
	d, ok := h.debounce[id]
	if !ok {
		d = store.NewDebouncer(h.saveDelay, func() { h.persist(id) })
		h.debounce[id] = d
	}
	h.mu.Unlock()
	d.Trigger()

	respondJSON(w, http.StatusOK, p)
}

// FlushOne forces the pending save of one project to disk.
func (h *ProjectsHandler) FlushOne(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.mu.Lock()
	d := h.debounce[id]
	h.mu.Unlock()
	if d != nil {
		d.Flush()
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "flushed"})
}

// Flush forces all pending saves to disk. Called on server shutdown.
func (h *ProjectsHandler) Flush() {
	h.mu.Lock()
	pending := make([]*store.Debouncer, 0, len(h.debounce))
	for _, d := range h.debounce {
		pending = append(pending, d)
	}
	h.mu.Unlock()
	for _, d := range pending {
		d.Flush()
	}
}

// loadCurrent prefers the unsaved in-memory state over the disk copy so
// readers always see the latest accepted update.
func (h *ProjectsHandler) loadCurrent(id string) (*project.Project, error) {
	h.mu.Lock()
	p := h.latest[id]
	h.mu.Unlock()
	if p != nil {
		return p, nil
	}
	return h.store.LoadProject(id)
}

func (h *ProjectsHandler) persist(id string) {
	h.mu.Lock()
	p := h.latest[id]
	h.mu.Unlock()
	if p == nil {
		return
	}
	if err := h.store.SaveProject(p); err != nil {
		log.Printf("WARNING: failed to save project %s: %v", sanitizeForLog(id), err)
	}
}
