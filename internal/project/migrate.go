package project

import (
	"encoding/json"
	"fmt"

	"github.com/kozaktomas/photo-calendar/internal/layout"
	"github.com/kozaktomas/photo-calendar/internal/pagesize"
)

// CurrentSchemaVersion is the version stamped on newly created and fully
// migrated projects.
const CurrentSchemaVersion = 2

// legacyLayoutIDs maps layout ids retired from earlier schema versions
// to their current equivalents.
var legacyLayoutIDs = map[string]string{
	"single":          "single-top",
	"single-photo":    "single-top",
	"two-up":          "dual-split",
	"dual-split-lr":   "dual-split",
	"triple-strip-lr": "triple-strip",
	"quad-grid-lr":    "quad-grid",
	"single-left":     "single-top",
}

// A migration upgrades a project from exactly one schema version to the
// next. Migrations run in order until CurrentSchemaVersion is reached;
// ad-hoc patching outside this chain is not allowed.
type migration struct {
	from  int
	apply func(*Project)
}

var migrations = []migration{
	{from: 0, apply: migrateV0},
	{from: 1, apply: migrateV1},
}

// migrateV0 stamps the schema version, rewrites deprecated layout ids,
// and pads month data to the configured month count.
func migrateV0(p *Project) {
	for i, id := range p.Calendar.LayoutPerMonth {
		if mapped, ok := legacyLayoutIDs[id]; ok {
			p.Calendar.LayoutPerMonth[i] = mapped
		}
	}
	if p.Calendar.Months < 1 {
		p.Calendar.Months = DefaultMonths
	}
	if p.Calendar.SplitDirection == "" {
		p.Calendar.SplitDirection = layout.SplitTopBottom
	}
	for len(p.Calendar.LayoutPerMonth) < p.Calendar.Months {
		p.Calendar.LayoutPerMonth = append(p.Calendar.LayoutPerMonth, DefaultLayoutID)
	}
	for len(p.MonthData) < p.Calendar.Months {
		p.MonthData = append(p.MonthData, MonthPage{
			Index: len(p.MonthData),
			Slots: []MonthSlot{{SlotID: "main", Transform: IdentityTransform()}},
		})
	}
	for i := range p.MonthData {
		for j := range p.MonthData[i].Slots {
			if p.MonthData[i].Slots[j].Transform.Scale == 0 {
				p.MonthData[i].Slots[j].Transform = IdentityTransform()
			}
		}
	}
}

// migrateV1 adds the cover configuration introduced with schema v2.
func migrateV1(p *Project) {
	if p.Calendar.CoverStyle == "" {
		p.Calendar.CoverStyle = CoverLargePhoto
	}
	if p.Calendar.CoverTransform.Scale == 0 {
		p.Calendar.CoverTransform = IdentityTransform()
	}
	if p.CoverPhotos == nil {
		p.CoverPhotos = []Photo{}
	}
}

// Decode unmarshals a persisted project and migrates it to the current
// schema version.
func Decode(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}
	if err := Migrate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Migrate upgrades a decoded project in place through the ordered
// migration chain and validates the resulting configuration.
func Migrate(p *Project) error {
	if p.Meta.SchemaVersion > CurrentSchemaVersion {
		return fmt.Errorf("project schema version %d is newer than supported version %d",
			p.Meta.SchemaVersion, CurrentSchemaVersion)
	}
	for _, m := range migrations {
		if p.Meta.SchemaVersion == m.from {
			m.apply(p)
			p.Meta.SchemaVersion = m.from + 1
		}
	}
	return p.validate()
}

// validate rejects configurations the render engine would refuse anyway,
// so corruption surfaces at load time rather than mid-export.
func (p *Project) validate() error {
	if p.Calendar.Months < 1 {
		return fmt.Errorf("calendar must span at least one month, got %d", p.Calendar.Months)
	}
	if !pagesize.Valid(p.Calendar.PageSize) {
		return fmt.Errorf("unknown page size %q", p.Calendar.PageSize)
	}
	// A file stamped with the current version skips the padding
	// migrations, so the per-month arrays must be checked here or the
	// engine indexes past them.
	if len(p.Calendar.LayoutPerMonth) < p.Calendar.Months {
		return fmt.Errorf("calendar spans %d months but has %d layout assignments",
			p.Calendar.Months, len(p.Calendar.LayoutPerMonth))
	}
	if len(p.MonthData) < p.Calendar.Months {
		return fmt.Errorf("calendar spans %d months but has %d month pages",
			p.Calendar.Months, len(p.MonthData))
	}
	for i, id := range p.Calendar.LayoutPerMonth {
		if _, ok := layout.ByID(id); !ok {
			return fmt.Errorf("month %d references unknown layout %q", i, id)
		}
	}
	return nil
}
