// Package record defines the meal/glucose record, its invariants and its
// on-disk representation.
package record

import (
	"encoding/json"
	"time"
)

const (
	// DateLayout is the calendar-day format stored in Record.Date.
	DateLayout = "2006-01-02"
	// TimeLayout is the 24h clock format stored in Record.Time.
	TimeLayout = "15:04"

	// MinSugar and MaxSugar bound an accepted mg/dL reading.
	MinSugar = 0
	MaxSugar = 1000
)

// Record is one meal event with optional paired glucose readings.
type Record struct {
	// ID identifies the record within a session. It is assigned by the store
	// and never persisted.
	ID string

	Date      string
	Time      string
	Timestamp time.Time

	Name        string
	SugarBefore *float64
	SugarAfter  *float64
	// LegacySugarLevel is only present on records written before readings were
	// split into before/after.
	LegacySugarLevel *float64

	Foods      []string
	PhotoPath  string
	DateSource DateSource

	// Extra holds keys this version does not know about, written back verbatim.
	Extra map[string]json.RawMessage

	// timestampLayout is the naive layout Timestamp was read with, if any, so
	// the record is written back the way it was found.
	timestampLayout string
	// legacyNull is set when the stored legacy level was an explicit null.
	legacyNull      bool
}

// DateSource records where Date, Time and Timestamp came from.
type DateSource uint8

const (
	// DateSourceUnspecified marks legacy records written without provenance.
	DateSourceUnspecified DateSource = iota
	// DateSourceMetadata marks a capture time read from image metadata.
	DateSourceMetadata
	// DateSourceCurrentTime marks the wall-clock fallback.
	DateSourceCurrentTime
)

const (
	sourceMetadataTag    = "EXIF"
	sourceCurrentTimeTag = "Actual"
)

// String returns the on-disk tag for the source.
func (s DateSource) String() string {
	switch s {
	case DateSourceMetadata:
		return sourceMetadataTag
	case DateSourceCurrentTime:
		return sourceCurrentTimeTag
	default:
		return ""
	}
}

// ParseDateSource maps an on-disk tag back to a DateSource. Unknown tags map
// to DateSourceUnspecified.
func ParseDateSource(tag string) DateSource {
	switch tag {
	case sourceMetadataTag:
		return DateSourceMetadata
	case sourceCurrentTimeTag:
		return DateSourceCurrentTime
	default:
		return DateSourceUnspecified
	}
}

// Float returns a pointer to v, for building optional readings.
func Float(v float64) *float64 {
	return &v
}

// Clone returns a deep copy so snapshots never share slices or maps with the store.
func (r Record) Clone() Record {
	out := r
	if r.Foods != nil {
		out.Foods = append([]string(nil), r.Foods...)
	}
	out.SugarBefore = cloneFloat(r.SugarBefore)
	out.SugarAfter = cloneFloat(r.SugarAfter)
	out.LegacySugarLevel = cloneFloat(r.LegacySugarLevel)
	if r.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
