package render

import "fmt"

// Report summarizes a finished export: what was rendered on every page
// and anything the user should double-check before printing.
type Report struct {
	PageCount  int          `json:"pageCount"`
	PhotoCount int          `json:"photoCount"`
	Pages      []ReportPage `json:"pages"`
	Warnings   []string     `json:"warnings,omitempty"`
}

// ReportPage describes one rendered page. Month is the zero-based month
// offset and only meaningful when Kind is "month".
type ReportPage struct {
	PageNumber int           `json:"pageNumber"`
	Kind       string        `json:"kind"` // "cover", "overview" or "month"
	Month      int           `json:"month,omitempty"`
	Layout     string        `json:"layout,omitempty"`
	Photos     []ReportPhoto `json:"photos,omitempty"`
}

// ReportPhoto records where a photo landed and its estimated print
// resolution. EffectiveDPI is 0 when it could not be computed.
type ReportPhoto struct {
	PhotoID      string  `json:"photoId"`
	SlotID       string  `json:"slotId"`
	EffectiveDPI float64 `json:"effectiveDpi,omitempty"`
	LowRes       bool    `json:"lowRes,omitempty"`
}

func (r *Report) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) nextPageNumber() int {
	return len(r.Pages) + 1
}

// finish derives the aggregate fields and adds one warning per low
// resolution placement.
func (r *Report) finish() {
	for _, page := range r.Pages {
		r.PhotoCount += len(page.Photos)
		for _, ph := range page.Photos {
			if ph.LowRes {
				r.Warnf("photo %s in slot %s prints at %.1f DPI, below %.0f",
					ph.PhotoID, ph.SlotID, ph.EffectiveDPI, lowResDPIThreshold)
			}
		}
	}
}
