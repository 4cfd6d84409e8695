// Package store persists projects and photo blobs on the local
// filesystem. The tool is offline and single-user; a project is a JSON
// document and photos are opaque blob files next to it.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kozaktomas/photo-calendar/internal/project"
)

// Store is a directory-backed project store.
type Store struct {
	dir string
}

const blobDirName = "blobs"

// New opens (creating if needed) a store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, blobDirName), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) projectPath(id string) string {
	return filepath.Join(s.dir, "project-"+id+".json")
}

// SaveProject writes the whole project atomically and bumps UpdatedAt.
func (s *Store) SaveProject(p *project.Project) error {
	p.Meta.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	tmp := s.projectPath(p.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	if err := os.Rename(tmp, s.projectPath(p.ID)); err != nil {
		return fmt.Errorf("failed to replace project file: %w", err)
	}
	return nil
}

// LoadProject reads and migrates a stored project. A missing project is
// (nil, nil), not an error.
func (s *Store) LoadProject(id string) (*project.Project, error) {
	data, err := os.ReadFile(s.projectPath(id))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}
	p, err := project.Decode(data)
	if err != nil {
		return nil, err
	}
	s.attachPreviewPaths(p)
	return p, nil
}

// ListProjects returns the ids of all stored projects.
func (s *Store) ListProjects() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list data directory: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "project-") && strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, "project-"), ".json"))
		}
	}
	return ids, nil
}

// SavePhotoBlob stores photo bytes and returns the storage ref.
func (s *Store) SavePhotoBlob(photoID string, r io.Reader) (string, error) {
	ref := filepath.Join(blobDirName, photoID)
	f, err := os.OpenFile(filepath.Join(s.dir, ref), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	return ref, nil
}

// DeletePhotoBlob removes a stored blob. Deleting a missing blob is not
// an error.
func (s *Store) DeletePhotoBlob(ref string) error {
	err := os.Remove(filepath.Join(s.dir, ref))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// BlobPath resolves a storage ref to an absolute filesystem path.
func (s *Store) BlobPath(ref string) string {
	return filepath.Join(s.dir, ref)
}

// attachPreviewPaths fills the transient PreviewPath of every photo that
// has a stored blob, so the render engine can resolve it.
func (s *Store) attachPreviewPaths(p *project.Project) {
	for i := range p.Photos {
		if p.Photos[i].BlobRef != "" {
			p.Photos[i].PreviewPath = s.BlobPath(p.Photos[i].BlobRef)
		}
	}
	for i := range p.CoverPhotos {
		if p.CoverPhotos[i].BlobRef != "" {
			p.CoverPhotos[i].PreviewPath = s.BlobPath(p.CoverPhotos[i].BlobRef)
		}
	}
}
