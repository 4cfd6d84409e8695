package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"math"
	"net/http"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/jung-kurt/gofpdf"

	"github.com/kozaktomas/photo-calendar/internal/project"
)

// Loader resolves a photo record to a decoded image.
type Loader interface {
	Load(ctx context.Context, photo project.Photo) (image.Image, error)
}

// FileLoader loads photos from their PreviewPath on the local
// filesystem.
type FileLoader struct{}

// Load decodes the image behind the photo's preview path.
func (FileLoader) Load(_ context.Context, photo project.Photo) (image.Image, error) {
	if photo.PreviewPath == "" {
		return nil, fmt.Errorf("photo %s has no preview", photo.ID)
	}
	f, err := os.Open(photo.PreviewPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}
	return img, nil
}

// HTTPLoader fetches photos whose PreviewPath is a URL.
type HTTPLoader struct {
	Client *http.Client
}

// Load fetches and decodes the image behind the photo's preview URL.
func (l HTTPLoader) Load(ctx context.Context, photo project.Photo) (image.Image, error) {
	if photo.PreviewPath == "" {
		return nil, fmt.Errorf("photo %s has no preview", photo.ID)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photo.PreviewPath, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch photo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch photo: status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}
	return img, nil
}

type imageResult struct {
	img image.Image
	err error
}

// imageLike is the subset of image.Image the geometry helpers need.
type imageLike interface {
	Bounds() image.Rectangle
}

const loadConcurrency = 5

// prefetch loads every photo referenced by slots or the cover up front
// with a bounded worker pool. Page generation itself then runs without
// suspension points between drawing calls.
func (e *Engine) prefetch(ctx context.Context, p *project.Project) map[string]imageResult {
	photos := make(map[string]project.Photo)
	add := func(ph *project.Photo, ok bool) {
		if ok && ph != nil {
			photos[ph.ID] = *ph
		}
	}
	for mi := range p.MonthData {
		for _, s := range p.MonthData[mi].Slots {
			if s.PhotoID != "" {
				ph, ok := p.PhotoByID(s.PhotoID)
				add(ph, ok)
			}
		}
	}
	if p.Calendar.IncludeCoverPage {
		if cover := resolveCoverPhoto(p); cover != nil {
			photos[cover.ID] = *cover
		}
	}

	results := make(map[string]imageResult, len(photos))
	var mu sync.Mutex

	jobs := make(chan project.Photo, len(photos))
	for _, ph := range photos {
		jobs <- ph
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < loadConcurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ph := range jobs {
				if ctx.Err() != nil {
					return
				}
				img, err := e.Loader.Load(ctx, ph)
				if err != nil {
					log.Printf("WARNING: failed to load photo %s: %v", ph.ID, err)
				}
				mu.Lock()
				results[ph.ID] = imageResult{img: img, err: err}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return results
}

// coverScale returns the scale that makes a w×h image fully cover a
// cw×ch canvas regardless of aspect ratio (overflow is clipped).
func coverScale(w, h, cw, ch int) float64 {
	return math.Max(float64(cw)/float64(w), float64(ch)/float64(h))
}

// clampedScale guards against zero-valued transforms from hand-edited
// project files.
func clampedScale(t project.Transform) float64 {
	if t.Scale <= 0 {
		return 1
	}
	return project.ClampScale(t.Scale)
}

// compositeSlot renders a photo onto a transparent w×h canvas: cover
// scale times the user zoom, translation in slot-normalized units from
// the canvas center, rotation about the center, image drawn centered.
// This is the single transform implementation shared by the PDF and PNG
// paths, so both outputs match the preview.
func compositeSlot(img image.Image, w, h int, t project.Transform) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	b := img.Bounds()
	iw, ih := b.Dx(), b.Dy()
	if iw == 0 || ih == 0 {
		return dst
	}

	s := coverScale(iw, ih, w, h) * clampedScale(t)
	tx := t.TranslateX * float64(w)
	ty := t.TranslateY * float64(h)
	rad := t.RotationDegrees * math.Pi / 180
	sin, cos := math.Sincos(rad)

	// Row-major affine: dst = A*src + offset, equivalent to
	// translate(center+pan) · rotate · scale · translate(-imageCenter).
	a := s * cos
	bb := -s * sin
	d := s * sin
	ee := s * cos
	cx := float64(w)/2 + tx
	cy := float64(h)/2 + ty
	c := cx - (a*float64(iw)/2 + bb*float64(ih)/2) - (a*float64(b.Min.X) + bb*float64(b.Min.Y))
	f := cy - (d*float64(iw)/2 + ee*float64(ih)/2) - (d*float64(b.Min.X) + ee*float64(b.Min.Y))

	draw.CatmullRom.Transform(dst, f64.Aff3{a, bb, c, d, ee, f}, img, b, draw.Over, nil)
	return dst
}

// pngImageOptions returns the gofpdf options for embedding composited
// slot canvases.
func pngImageOptions() gofpdf.ImageOptions {
	return gofpdf.ImageOptions{ImageType: "PNG"}
}

// embedCanvas encodes a canvas to PNG and registers it with the
// document under name. An empty encoding is replaced by a transparent
// 1×1 pixel and reported, never silently embedded as zero bytes.
func embedCanvas(st *exportState, name string, canvas *image.RGBA) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil || buf.Len() == 0 {
		st.report.Warnf("slot raster %s produced no image data, substituted blank pixel", name)
		buf.Reset()
		blank := image.NewRGBA(image.Rect(0, 0, 1, 1))
		blank.SetRGBA(0, 0, color.RGBA{})
		if err := png.Encode(&buf, blank); err != nil {
			// A 1x1 RGBA encode cannot fail; guard anyway.
			return
		}
	}
	st.pdf.RegisterImageOptionsReader(name, pngImageOptions(), &buf)
}

// resolveCoverPhoto picks the cover photo: the configured id looked up
// in the cover pool then the main pool, falling back to the first
// available cover photo, then the first available project photo.
func resolveCoverPhoto(p *project.Project) *project.Photo {
	if id := p.Calendar.CoverPhotoID; id != "" {
		if ph, ok := p.CoverPhotoByID(id); ok {
			return ph
		}
		if ph, ok := p.PhotoByID(id); ok {
			return ph
		}
	}
	for i := range p.CoverPhotos {
		if p.CoverPhotos[i].PreviewPath != "" {
			return &p.CoverPhotos[i]
		}
	}
	for i := range p.Photos {
		if p.Photos[i].PreviewPath != "" {
			return &p.Photos[i]
		}
	}
	return nil
}
