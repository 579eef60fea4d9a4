// Package render formats records and statistics as single lines of text for
// the command output and the review session.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/faizmokh/sugarlog/internal/aggregate"
	"github.com/faizmokh/sugarlog/internal/export"
	"github.com/faizmokh/sugarlog/internal/record"
)

// StatusFunc renders the status label of a record.
type StatusFunc func(aggregate.Status) string

// Bracketed renders a status as "[High]".
func Bracketed(s aggregate.Status) string {
	return "[" + s.String() + "]"
}

// Number formats a reading without trailing zeros.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Readings describes the glucose values of r, with the change between the
// paired readings when both are present.
func Readings(r record.Record) string {
	var parts []string
	if r.SugarBefore != nil {
		parts = append(parts, "before "+Number(*r.SugarBefore))
	}
	if r.SugarAfter != nil {
		parts = append(parts, "after "+Number(*r.SugarAfter))
	}
	if delta, ok := r.Delta(); ok {
		sign := "+"
		if delta < 0 {
			sign = ""
		}
		parts = append(parts, "("+sign+Number(delta)+")")
	}
	if len(parts) == 0 && r.LegacySugarLevel != nil {
		parts = append(parts, "level "+Number(*r.LegacySugarLevel)+" (legacy)")
	}
	if len(parts) == 0 {
		return "no readings"
	}
	return strings.Join(parts, " ")
}

// Record renders "HH:MM Name | readings [Status] | foods". status may be nil,
// in which case Bracketed is used.
func Record(r record.Record, status StatusFunc) string {
	if status == nil {
		status = Bracketed
	}

	var builder strings.Builder
	builder.Grow(64 + len(r.Name))

	builder.WriteString(r.Time)
	builder.WriteString(" ")
	builder.WriteString(r.Name)
	builder.WriteString(" | ")
	builder.WriteString(Readings(r))

	if s := aggregate.RecordStatus(r); s != aggregate.StatusUnknown {
		builder.WriteString(" ")
		builder.WriteString(status(s))
	}
	if len(r.Foods) > 0 {
		builder.WriteString(" | ")
		builder.WriteString(strings.Join(r.Foods, export.FoodSeparator))
	}
	return builder.String()
}

// Stats renders pooled statistics on one line.
func Stats(s aggregate.Stats) string {
	if s.Empty() {
		return "no readings"
	}
	return fmt.Sprintf("avg %.1f | min %s | max %s | %d reading%s",
		s.Average, Number(s.Min), Number(s.Max), s.Count, Plural(s.Count))
}

// Plural returns "s" unless count is one.
func Plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
