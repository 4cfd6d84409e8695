package project

import (
	"sort"

	"github.com/google/uuid"

	"github.com/kozaktomas/photo-calendar/internal/holiday"
)

// SyncHolidayEvents rebuilds the system-tagged holiday events from the
// resolver for the project's current span. User events are untouched.
// Calling it twice in a row is a no-op apart from regenerated ids.
func (p *Project) SyncHolidayEvents() {
	kept := p.Events[:0]
	for _, e := range p.Events {
		if e.System != SystemHoliday {
			kept = append(kept, e)
		}
	}
	p.Events = kept

	if !p.Calendar.ShowHolidays {
		return
	}

	m := holiday.CollectMap(p.Calendar.StartMonth, p.Calendar.StartYear, p.Calendar.Months)
	dates := make([]string, 0, len(m))
	for iso := range m {
		dates = append(dates, iso)
	}
	sort.Strings(dates)
	for _, iso := range dates {
		p.Events = append(p.Events, Event{
			ID:      uuid.NewString(),
			DateISO: iso,
			Text:    m[iso],
			Visible: true,
			System:  SystemHoliday,
		})
	}
}
