// Package schedule manages named time-of-day bands used to label meals.
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/faizmokh/sugarlog/internal/record"
)

// Band is a named same-day window. Start and End are HH:MM strings.
type Band struct {
	Name  string
	Start string
	End   string
}

// Overlap reports two bands whose windows intersect or touch.
type Overlap struct {
	Earlier Band
	Later   Band
}

func (o Overlap) String() string {
	return fmt.Sprintf("%q (%s-%s) overlaps %q (%s-%s)",
		o.Earlier.Name, o.Earlier.Start, o.Earlier.End,
		o.Later.Name, o.Later.Start, o.Later.End)
}

// Report is the outcome of a successful validation: the normalized bands
// sorted by start time and any overlap warnings.
type Report struct {
	Bands    []Band
	Overlaps []Overlap
}

// Defaults returns the five bands seeded into a new store.
func Defaults() []Band {
	return []Band{
		{Name: "desayuno", Start: "06:00", End: "10:00"},
		{Name: "almuerzo", Start: "10:01", End: "13:00"},
		{Name: "comida", Start: "13:01", End: "16:00"},
		{Name: "merienda", Start: "16:01", End: "19:00"},
		{Name: "cena", Start: "19:01", End: "23:59"},
	}
}

// NormalizeName trims and lower-cases a band name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Match returns the first band, in start order, whose window contains clock
// (inclusive on both ends).
func Match(bands []Band, clock string) (Band, bool) {
	at, err := minutes(clock)
	if err != nil {
		return Band{}, false
	}
	sorted := append([]Band(nil), bands...)
	sortByStart(sorted)
	for _, b := range sorted {
		start, err1 := minutes(b.Start)
		end, err2 := minutes(b.End)
		if err1 != nil || err2 != nil {
			continue
		}
		if start <= at && at <= end {
			return b, true
		}
	}
	return Band{}, false
}

func minutes(clock string) (int, error) {
	t, err := time.Parse(record.TimeLayout, strings.TrimSpace(clock))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func sortByStart(bands []Band) {
	sort.SliceStable(bands, func(i, j int) bool {
		a, _ := minutes(bands[i].Start)
		b, _ := minutes(bands[j].Start)
		if a != b {
			return a < b
		}
		return bands[i].Name < bands[j].Name
	})
}
