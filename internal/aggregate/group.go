// Package aggregate derives per-day groupings, statistics and status buckets
// from a snapshot of records. Every function is pure; callers pass the
// records they want summarized.
package aggregate

import (
	"sort"

	"github.com/faizmokh/sugarlog/internal/record"
)

// Day is every record logged on one calendar date.
type Day struct {
	Date    string
	Records []record.Record
}

// Stats returns the pooled statistics of the day.
func (d Day) Stats() Stats {
	return DayStatistics(d.Records)
}

// GroupByDate partitions records by date. Days are ordered most recent first
// and records within a day by time ascending; records sharing a time keep
// their input order.
func GroupByDate(records []record.Record) []Day {
	index := make(map[string]int)
	var days []Day
	for _, r := range records {
		i, ok := index[r.Date]
		if !ok {
			i = len(days)
			index[r.Date] = i
			days = append(days, Day{Date: r.Date})
		}
		days[i].Records = append(days[i].Records, r)
	}

	for i := range days {
		recs := days[i].Records
		sort.SliceStable(recs, func(a, b int) bool {
			return recs[a].Time < recs[b].Time
		})
	}
	sort.Slice(days, func(a, b int) bool {
		return days[a].Date > days[b].Date
	})
	return days
}
