package aggregate

import "github.com/faizmokh/sugarlog/internal/record"

// Status buckets a mg/dL reading.
type Status uint8

const (
	// StatusUnknown is used for records without any reading.
	StatusUnknown Status = iota
	StatusLow
	StatusNormal
	StatusHigh
	StatusVeryHigh
)

// Range limits in mg/dL. Normal and High are inclusive of their upper bound.
const (
	LowBelow   = 70
	NormalUpTo = 140
	HighUpTo   = 200
)

// Classify returns the bucket of a single reading.
func Classify(v float64) Status {
	switch {
	case v < LowBelow:
		return StatusLow
	case v <= NormalUpTo:
		return StatusNormal
	case v <= HighUpTo:
		return StatusHigh
	default:
		return StatusVeryHigh
	}
}

// RecordStatus classifies a record by its highest reading.
func RecordStatus(r record.Record) Status {
	peak, ok := r.Peak()
	if !ok {
		return StatusUnknown
	}
	return Classify(peak)
}

func (s Status) String() string {
	switch s {
	case StatusLow:
		return "Low"
	case StatusNormal:
		return "Normal"
	case StatusHigh:
		return "High"
	case StatusVeryHigh:
		return "VeryHigh"
	default:
		return ""
	}
}

// Color returns the RGB hex colour (without '#') used to highlight the status.
func (s Status) Color() string {
	switch s {
	case StatusLow:
		return "FF6B6B"
	case StatusNormal:
		return "51CF66"
	case StatusHigh:
		return "FFD43B"
	case StatusVeryHigh:
		return "C92A2A"
	default:
		return "CCCCCC"
	}
}
