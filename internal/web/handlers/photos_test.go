package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/photo-calendar/internal/project"
	"github.com/kozaktomas/photo-calendar/internal/store"
)

func multipartUpload(t *testing.T, url, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func setupProject(t *testing.T, st *store.Store) *project.Project {
	t.Helper()
	p := project.New()
	if err := st.SaveProject(p); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPhotoUpload(t *testing.T) {
	st := testStore(t)
	h := NewPhotosHandler(st)
	p := setupProject(t, st)

	req := multipartUpload(t, "/api/v1/projects/"+p.ID+"/photos", "beach.jpg", []byte("jpeg bytes"))
	req = requestWithChiParams(req, map[string]string{"id": p.ID})
	recorder := httptest.NewRecorder()
	h.Upload(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var photo project.Photo
	if err := json.Unmarshal(recorder.Body.Bytes(), &photo); err != nil {
		t.Fatal(err)
	}
	if photo.Name != "beach.jpg" || photo.ID == "" {
		t.Errorf("unexpected photo record: %+v", photo)
	}

	loaded, err := st.LoadProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Photos) != 1 || loaded.Photos[0].ID != photo.ID {
		t.Errorf("photo not added to the main pool: %+v", loaded.Photos)
	}
	if loaded.Photos[0].PreviewPath == "" {
		t.Error("stored photo should resolve to a blob path on load")
	}
}

func TestPhotoUploadToCoverPool(t *testing.T) {
	st := testStore(t)
	h := NewPhotosHandler(st)
	p := setupProject(t, st)

	req := multipartUpload(t, "/api/v1/projects/"+p.ID+"/photos?pool=cover", "cover.jpg", []byte("x"))
	req = requestWithChiParams(req, map[string]string{"id": p.ID})
	recorder := httptest.NewRecorder()
	h.Upload(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", recorder.Code)
	}
	loaded, err := st.LoadProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.CoverPhotos) != 1 {
		t.Errorf("expected 1 cover photo, got %d", len(loaded.CoverPhotos))
	}
	if len(loaded.Photos) != 0 {
		t.Errorf("main pool should be untouched, got %d", len(loaded.Photos))
	}
}

func TestPhotoUploadMissingFile(t *testing.T) {
	st := testStore(t)
	h := NewPhotosHandler(st)
	p := setupProject(t, st)

	req := requestWithChiParams(
		httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+p.ID+"/photos", nil),
		map[string]string{"id": p.ID},
	)
	recorder := httptest.NewRecorder()
	h.Upload(recorder, req)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a file field, got %d", recorder.Code)
	}
}

func TestPhotoDeleteClearsAssignments(t *testing.T) {
	st := testStore(t)
	h := NewPhotosHandler(st)
	p := setupProject(t, st)

	// Upload, then assign the photo to a slot and as cover.
	req := multipartUpload(t, "/api/v1/projects/"+p.ID+"/photos", "a.jpg", []byte("x"))
	req = requestWithChiParams(req, map[string]string{"id": p.ID})
	recorder := httptest.NewRecorder()
	h.Upload(recorder, req)
	var photo project.Photo
	if err := json.Unmarshal(recorder.Body.Bytes(), &photo); err != nil {
		t.Fatal(err)
	}

	loaded, err := st.LoadProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	loaded.MonthData[0].Slots[0].PhotoID = photo.ID
	loaded.Calendar.CoverPhotoID = photo.ID
	if err := st.SaveProject(loaded); err != nil {
		t.Fatal(err)
	}

	req = requestWithChiParams(
		httptest.NewRequest(http.MethodDelete, "/api/v1/projects/"+p.ID+"/photos/"+photo.ID, nil),
		map[string]string{"id": p.ID, "photoId": photo.ID},
	)
	recorder = httptest.NewRecorder()
	h.Delete(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	after, err := st.LoadProject(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Photos) != 0 {
		t.Errorf("photo still in pool: %+v", after.Photos)
	}
	if after.MonthData[0].Slots[0].PhotoID != "" {
		t.Error("slot assignment should be cleared")
	}
	if after.Calendar.CoverPhotoID != "" {
		t.Error("cover selection should be cleared")
	}
}

func TestPhotoDeleteMissing(t *testing.T) {
	st := testStore(t)
	h := NewPhotosHandler(st)
	p := setupProject(t, st)

	req := requestWithChiParams(
		httptest.NewRequest(http.MethodDelete, "/api/v1/projects/"+p.ID+"/photos/nope", nil),
		map[string]string{"id": p.ID, "photoId": "nope"},
	)
	recorder := httptest.NewRecorder()
	h.Delete(recorder, req)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown photo, got %d", recorder.Code)
	}
}
