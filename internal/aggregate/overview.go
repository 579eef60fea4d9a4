package aggregate

import (
	"sort"
	"strings"

	"github.com/faizmokh/sugarlog/internal/record"
)

// History describes the span of a record set.
type History struct {
	Records int
	Days    int
	First   string
	Last    string
}

// PerDay returns the average number of records per logged day.
func (h History) PerDay() float64 {
	if h.Days == 0 {
		return 0
	}
	return float64(h.Records) / float64(h.Days)
}

// Overview counts records and distinct days and reports the first and last
// date seen.
func Overview(records []record.Record) History {
	h := History{Records: len(records)}
	seen := make(map[string]struct{})
	for _, r := range records {
		if _, ok := seen[r.Date]; !ok {
			seen[r.Date] = struct{}{}
			h.Days++
		}
		if h.First == "" || r.Date < h.First {
			h.First = r.Date
		}
		if r.Date > h.Last {
			h.Last = r.Date
		}
	}
	return h
}

// RecentNames returns distinct meal names, most recently logged first. Names
// are compared case-insensitively; the most recent spelling wins. Records
// sharing a timestamp count later insertions as more recent. A limit of
// zero or less returns every name.
func RecentNames(records []record.Record, limit int) []string {
	ordered := make([]record.Record, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		ordered = append(ordered, records[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.After(ordered[j].Timestamp)
	})

	seen := make(map[string]struct{})
	var names []string
	for _, r := range ordered {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
		if limit > 0 && len(names) == limit {
			break
		}
	}
	return names
}
