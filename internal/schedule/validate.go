package schedule

import (
	"fmt"

	"github.com/faizmokh/sugarlog/internal/record"
)

// Validate checks every band and reports the first violation as a
// *record.ValidationError. On success the returned report carries the bands,
// normalized and sorted by start, plus overlap warnings. Bands whose end is
// at or after the next band's start count as overlapping, so touching
// boundaries are reported too. Overlaps never fail validation.
func Validate(bands []Band) (Report, error) {
	seen := make(map[string]bool, len(bands))
	normalized := make([]Band, 0, len(bands))

	for _, b := range bands {
		name := NormalizeName(b.Name)
		if name == "" {
			return Report{}, &record.ValidationError{Field: "name", Reason: "band name must not be empty"}
		}
		if seen[name] {
			return Report{}, &record.ValidationError{Field: "name", Reason: fmt.Sprintf("band %q is already in use", name)}
		}

		start, err := minutes(b.Start)
		if err != nil {
			return Report{}, &record.ValidationError{Field: "start", Reason: fmt.Sprintf("band %q: %q is not HH:MM", name, b.Start)}
		}
		end, err := minutes(b.End)
		if err != nil {
			return Report{}, &record.ValidationError{Field: "end", Reason: fmt.Sprintf("band %q: %q is not HH:MM", name, b.End)}
		}
		if start >= end {
			return Report{}, &record.ValidationError{Field: "end", Reason: fmt.Sprintf("band %q must start before it ends", name)}
		}

		seen[name] = true
		normalized = append(normalized, Band{Name: name, Start: clock(start), End: clock(end)})
	}

	sortByStart(normalized)

	var overlaps []Overlap
	for i := 0; i+1 < len(normalized); i++ {
		earlierEnd, _ := minutes(normalized[i].End)
		laterStart, _ := minutes(normalized[i+1].Start)
		if earlierEnd >= laterStart {
			overlaps = append(overlaps, Overlap{Earlier: normalized[i], Later: normalized[i+1]})
		}
	}

	return Report{Bands: normalized, Overlaps: overlaps}, nil
}

// Upsert returns bands with b added, replacing any band of the same name.
func Upsert(bands []Band, b Band) []Band {
	name := NormalizeName(b.Name)
	out := make([]Band, 0, len(bands)+1)
	for _, existing := range bands {
		if NormalizeName(existing.Name) == name {
			continue
		}
		out = append(out, existing)
	}
	return append(out, b)
}

// Remove returns bands without the named band. ok is false when no band had
// that name.
func Remove(bands []Band, name string) (out []Band, ok bool) {
	name = NormalizeName(name)
	out = make([]Band, 0, len(bands))
	for _, b := range bands {
		if NormalizeName(b.Name) == name {
			ok = true
			continue
		}
		out = append(out, b)
	}
	return out, ok
}

func clock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
