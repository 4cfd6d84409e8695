// Package holiday resolves fixed-date and nth-weekday holiday rules over
// a span of months.
package holiday

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

type rule struct {
	Name    string `yaml:"name"`
	Month   int    `yaml:"month"`   // 1-based
	Day     int    `yaml:"day"`     // fixed rules only
	Weekday int    `yaml:"weekday"` // floating rules, 0=Sunday
	Nth     int    `yaml:"nth"`     // floating rules, n>=1 or -1 for last
}

type ruleFile struct {
	Holidays []rule `yaml:"holidays"`
}

var rules []rule

func init() {
	var rf ruleFile
	if err := yaml.Unmarshal(rulesYAML, &rf); err != nil {
		// Embedded file, cannot fail in practice.
		panic("failed to unmarshal embedded rules.yaml: " + err.Error())
	}
	rules = rf.Holidays
}

// NthWeekdayOfMonth returns the nth occurrence (n >= 1) of a weekday
// (0=Sunday) within a 0-based month.
func NthWeekdayOfMonth(year, month0, weekday, nth int) time.Time {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	offset := (7 + weekday - int(first.Weekday())) % 7
	day := 1 + offset + (nth-1)*7
	return time.Date(year, time.Month(month0+1), day, 0, 0, 0, 0, time.UTC)
}

// LastWeekdayOfMonth returns the last occurrence of a weekday (0=Sunday)
// within a 0-based month.
func LastWeekdayOfMonth(year, month0, weekday int) time.Time {
	last := time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC)
	back := (7 + int(last.Weekday()) - weekday) % 7
	return time.Date(year, time.Month(month0+1), last.Day()-back, 0, 0, 0, 0, time.UTC)
}

// ForYear computes all holiday dates of one calendar year, keyed by ISO
// date (YYYY-MM-DD).
func ForYear(year int) map[string]string {
	m := make(map[string]string, len(rules))
	for _, r := range rules {
		var d time.Time
		switch {
		case r.Day > 0:
			d = time.Date(year, time.Month(r.Month), r.Day, 0, 0, 0, 0, time.UTC)
		case r.Nth == -1:
			d = LastWeekdayOfMonth(year, r.Month-1, r.Weekday)
		default:
			d = NthWeekdayOfMonth(year, r.Month-1, r.Weekday, r.Nth)
		}
		m[isoDate(d)] = r.Name
	}
	return m
}

// CollectMap computes holidays for every calendar year touched by the
// span starting at (startYear, startMonth0) and lasting months months,
// filtered to dates within the span inclusive. The result is fully
// determined by its inputs.
func CollectMap(startMonth0, startYear, months int) map[string]string {
	endOffset := startMonth0 + months - 1
	endYear := startYear + endOffset/12

	all := make(map[string]string)
	for y := startYear; y <= endYear; y++ {
		for iso, name := range ForYear(y) {
			all[iso] = name
		}
	}

	spanStart := time.Date(startYear, time.Month(startMonth0+1), 1, 0, 0, 0, 0, time.UTC)
	spanEnd := time.Date(startYear, time.Month(startMonth0+1+months), 0, 0, 0, 0, 0, time.UTC)

	filtered := make(map[string]string, len(all))
	for iso, name := range all {
		d, err := time.ParseInLocation("2006-01-02", iso, time.UTC)
		if err != nil {
			continue
		}
		if !d.Before(spanStart) && !d.After(spanEnd) {
			filtered[iso] = name
		}
	}
	return filtered
}

func isoDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}
