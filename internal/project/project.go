// Package project defines the calendar project aggregate: settings,
// photos, per-month slot assignments, and events. The render engine
// treats a Project as a read-only snapshot.
package project

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kozaktomas/photo-calendar/internal/layout"
	"github.com/kozaktomas/photo-calendar/internal/pagesize"
)

// Transform bounds, matching the editor's pan/zoom limits.
const (
	MinScale = 0.1
	MaxScale = 5.0
)

// Transform is the user-controlled scale/translate/rotate of a photo
// within its slot. Translations are normalized to slot dimensions
// (1 = 100% of the slot width or height) and unbounded.
type Transform struct {
	Scale           float64 `json:"scale"`
	TranslateX      float64 `json:"translateX"`
	TranslateY      float64 `json:"translateY"`
	RotationDegrees float64 `json:"rotationDegrees"`
}

// IdentityTransform returns the neutral transform.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// TransformDelta carries partial updates from the UI layer. Nil fields
// leave the current value untouched.
type TransformDelta struct {
	Scale           *float64 `json:"scale,omitempty"`
	TranslateX      *float64 `json:"translateX,omitempty"`
	TranslateY      *float64 `json:"translateY,omitempty"`
	RotationDegrees *float64 `json:"rotationDegrees,omitempty"`
}

// Apply merges a delta into the transform, clamping scale to
// [MinScale, MaxScale] and normalizing rotation into [0, 360).
func (t *Transform) Apply(delta TransformDelta) {
	if delta.Scale != nil {
		t.Scale = ClampScale(*delta.Scale)
	}
	if delta.TranslateX != nil {
		t.TranslateX = *delta.TranslateX
	}
	if delta.TranslateY != nil {
		t.TranslateY = *delta.TranslateY
	}
	if delta.RotationDegrees != nil {
		t.RotationDegrees = NormalizeRotation(*delta.RotationDegrees)
	}
}

// ClampScale bounds a zoom factor to [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	return math.Min(MaxScale, math.Max(MinScale, s))
}

// NormalizeRotation wraps a degree value into [0, 360).
func NormalizeRotation(deg float64) float64 {
	return math.Mod(math.Mod(deg, 360)+360, 360)
}

// MonthSlot assigns a photo (optionally) and a transform to one of the
// layout's slots.
type MonthSlot struct {
	SlotID    string    `json:"slotId"`
	PhotoID   string    `json:"photoId,omitempty"`
	Transform Transform `json:"transform"`
}

// MonthPage holds the slot assignments for one month offset.
type MonthPage struct {
	Index   int         `json:"index"`
	Slots   []MonthSlot `json:"slots"`
	Caption string      `json:"caption,omitempty"`
}

// Photo is a record in the project photo pool. PreviewPath points at a
// resolvable image (a blob store path or URL) and is not persisted.
type Photo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BlobRef     string `json:"originalBlobRef,omitempty"`
	PreviewPath string `json:"-"`
}

// Event annotates a calendar date. System marks auto-generated entries
// (e.g. synced holidays) so they can be told apart from user events.
type Event struct {
	ID      string `json:"id"`
	DateISO string `json:"dateISO"`
	Text    string `json:"text"`
	Color   string `json:"color,omitempty"`
	Visible bool   `json:"visible"`
	System  string `json:"system,omitempty"`
}

// SystemHoliday tags events generated from the holiday resolver.
const SystemHoliday = "holiday"

// CoverStyle selects the cover page composition.
type CoverStyle string

const (
	CoverLargePhoto CoverStyle = "large-photo"
	CoverGrid       CoverStyle = "grid"
)

// CalendarSettings configures the whole calendar.
type CalendarSettings struct {
	StartMonth            int                   `json:"startMonth"` // 0-11
	StartYear             int                   `json:"startYear"`
	Months                int                   `json:"months"`
	LayoutPerMonth        []string              `json:"layoutStylePerMonth"`
	PageSize              pagesize.Key          `json:"pageSize"`
	Orientation           pagesize.Orientation  `json:"orientation"`
	SplitDirection        layout.SplitDirection `json:"splitDirection"`
	ShowWeekNumbers       bool                  `json:"showWeekNumbers"`
	ShowHolidays          bool                  `json:"showCommonHolidays"`
	IncludeYearlyOverview bool                  `json:"includeYearlyOverview"`
	IncludeCoverPage      bool                  `json:"includeCoverPage"`
	CoverStyle            CoverStyle            `json:"coverStyle"`
	CoverPhotoID          string                `json:"coverPhotoId,omitempty"`
	CoverTransform        Transform             `json:"coverTransform"`
	FontFamily            string                `json:"fontFamily"`
}

// Meta carries lifecycle bookkeeping for a persisted project.
type Meta struct {
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	SchemaVersion int       `json:"schemaVersion"`
}

// Project is the root aggregate, persisted as a whole.
type Project struct {
	ID          string           `json:"id"`
	Meta        Meta             `json:"meta"`
	Calendar    CalendarSettings `json:"calendar"`
	Photos      []Photo          `json:"photos"`
	CoverPhotos []Photo          `json:"coverPhotos"`
	MonthData   []MonthPage      `json:"monthData"`
	Events      []Event          `json:"events"`
}

// DefaultLayoutID is assigned to every month of a fresh project.
const DefaultLayoutID = "single-top"

// DefaultMonths is the month count of a fresh project.
const DefaultMonths = 12

// New returns a project with default settings: current year, Letter
// portrait, top/bottom split, single-top layout on every month.
func New() *Project {
	now := time.Now().UTC()
	layouts := make([]string, DefaultMonths)
	months := make([]MonthPage, DefaultMonths)
	for i := 0; i < DefaultMonths; i++ {
		layouts[i] = DefaultLayoutID
		months[i] = MonthPage{
			Index: i,
			Slots: []MonthSlot{{SlotID: "main", Transform: IdentityTransform()}},
		}
	}
	return &Project{
		ID: uuid.NewString(),
		Meta: Meta{
			CreatedAt:     now,
			UpdatedAt:     now,
			SchemaVersion: CurrentSchemaVersion,
		},
		Calendar: CalendarSettings{
			StartMonth:     0,
			StartYear:      now.Year(),
			Months:         DefaultMonths,
			LayoutPerMonth: layouts,
			PageSize:       pagesize.KeyLetter,
			Orientation:    pagesize.Portrait,
			SplitDirection: layout.SplitTopBottom,
			CoverStyle:     CoverLargePhoto,
			CoverTransform: IdentityTransform(),
			FontFamily:     "Inter",
		},
		Photos:      []Photo{},
		CoverPhotos: []Photo{},
		MonthData:   months,
		Events:      []Event{},
	}
}

// PhotoByID searches the main photo pool.
func (p *Project) PhotoByID(id string) (*Photo, bool) {
	for i := range p.Photos {
		if p.Photos[i].ID == id {
			return &p.Photos[i], true
		}
	}
	return nil, false
}

// CoverPhotoByID searches the cover photo pool.
func (p *Project) CoverPhotoByID(id string) (*Photo, bool) {
	for i := range p.CoverPhotos {
		if p.CoverPhotos[i].ID == id {
			return &p.CoverPhotos[i], true
		}
	}
	return nil, false
}

// SlotAssignment finds a month's assignment for a slot id.
func (mp *MonthPage) SlotAssignment(slotID string) (*MonthSlot, bool) {
	for i := range mp.Slots {
		if mp.Slots[i].SlotID == slotID {
			return &mp.Slots[i], true
		}
	}
	return nil, false
}

// MonthAt resolves a month offset to its real (year, 0-based month),
// handling spans that cross year boundaries.
func (p *Project) MonthAt(offset int) (year, month0 int) {
	total := p.Calendar.StartMonth + offset
	return p.Calendar.StartYear + total/12, total % 12
}

// Clone returns a deep copy. The render engine clones its input at call
// time so concurrent edits cannot race an in-flight export.
func (p *Project) Clone() *Project {
	c := *p
	c.Calendar.LayoutPerMonth = append([]string(nil), p.Calendar.LayoutPerMonth...)
	c.Photos = append([]Photo(nil), p.Photos...)
	c.CoverPhotos = append([]Photo(nil), p.CoverPhotos...)
	c.Events = append([]Event(nil), p.Events...)
	c.MonthData = make([]MonthPage, len(p.MonthData))
	for i, mp := range p.MonthData {
		cp := mp
		cp.Slots = append([]MonthSlot(nil), mp.Slots...)
		c.MonthData[i] = cp
	}
	return &c
}
