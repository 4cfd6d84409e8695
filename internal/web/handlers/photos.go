package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kozaktomas/photo-calendar/internal/project"
	"github.com/kozaktomas/photo-calendar/internal/store"
)

// maxUploadBytes caps a single photo upload at 64 MB.
const maxUploadBytes = 64 << 20

// PhotosHandler manages the photo pools of a project: uploads into blob
// storage, downloads for previews, and deletion with slot cleanup.
type PhotosHandler struct {
	store *store.Store
}

func NewPhotosHandler(st *store.Store) *PhotosHandler {
	return &PhotosHandler{store: st}
}

// Upload accepts a multipart "file" field and adds the photo to the
// project's main pool, or the cover pool when ?pool=cover.
func (h *PhotosHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.store.LoadProject(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	photoID := uuid.New().String()
	ref, err := h.store.SavePhotoBlob(photoID, file)
	if err != nil {
		log.Printf("WARNING: failed to store upload %s: %v", sanitizeForLog(header.Filename), err)
		respondError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	photo := project.Photo{
		ID:      photoID,
		Name:    header.Filename,
		BlobRef: ref,
	}
	if r.URL.Query().Get("pool") == "cover" {
		p.CoverPhotos = append(p.CoverPhotos, photo)
	} else {
		p.Photos = append(p.Photos, photo)
	}

	if err := h.store.SaveProject(p); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save project")
		return
	}
	respondJSON(w, http.StatusCreated, photo)
}

// Download streams a photo blob back, for editor previews.
func (h *PhotosHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	photoID := chi.URLParam(r, "photoId")

	p, err := h.store.LoadProject(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	photo, ok := p.PhotoByID(photoID)
	if !ok {
		photo, ok = p.CoverPhotoByID(photoID)
	}
	if !ok || photo.BlobRef == "" {
		respondError(w, http.StatusNotFound, "photo not found")
		return
	}
	http.ServeFile(w, r, h.store.BlobPath(photo.BlobRef))
}

// Delete removes a photo from both pools, clears any slot assignments
// that referenced it, and deletes the blob.
func (h *PhotosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	photoID := chi.URLParam(r, "photoId")

	p, err := h.store.LoadProject(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	ref := ""
	removed := false
	p.Photos, ref, removed = removePhoto(p.Photos, photoID, ref, removed)
	p.CoverPhotos, ref, removed = removePhoto(p.CoverPhotos, photoID, ref, removed)
	if !removed {
		respondError(w, http.StatusNotFound, "photo not found")
		return
	}

	for mi := range p.MonthData {
		for si := range p.MonthData[mi].Slots {
			if p.MonthData[mi].Slots[si].PhotoID == photoID {
				p.MonthData[mi].Slots[si].PhotoID = ""
				p.MonthData[mi].Slots[si].Transform = project.IdentityTransform()
			}
		}
	}
	if p.Calendar.CoverPhotoID == photoID {
		p.Calendar.CoverPhotoID = ""
	}

	if ref != "" {
		if err := h.store.DeletePhotoBlob(ref); err != nil {
			log.Printf("WARNING: failed to delete blob %s: %v", sanitizeForLog(ref), err)
		}
	}
	if err := h.store.SaveProject(p); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save project")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func removePhoto(photos []project.Photo, photoID, ref string, removed bool) ([]project.Photo, string, bool) {
	out := photos[:0]
	for _, ph := range photos {
		if ph.ID == photoID {
			removed = true
			if ref == "" {
				ref = ph.BlobRef
			}
			continue
		}
		out = append(out, ph)
	}
	return out, ref, removed
}
