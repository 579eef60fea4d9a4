package record

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Validate checks the invariants a record must satisfy before it is appended
// and reports the first one violated.
func Validate(r Record) error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid(FieldName, "must not be empty")
	}
	if r.SugarBefore == nil && r.SugarAfter == nil {
		return invalid(FieldSugar, "at least one of before or after is required")
	}
	if len(r.Foods) == 0 {
		return invalid(FieldFoods, "at least one food is required")
	}
	for i, food := range r.Foods {
		if strings.TrimSpace(food) == "" {
			return invalid(FieldFoods, fmt.Sprintf("entry %d is empty", i+1))
		}
	}
	if err := checkReading(FieldSugarBefore, r.SugarBefore); err != nil {
		return err
	}
	if err := checkReading(FieldSugarAfter, r.SugarAfter); err != nil {
		return err
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return invalid(FieldDate, fmt.Sprintf("%q is not YYYY-MM-DD", r.Date))
	}
	if _, err := time.Parse(TimeLayout, r.Time); err != nil {
		return invalid(FieldTime, fmt.Sprintf("%q is not HH:MM", r.Time))
	}
	if r.Timestamp.IsZero() {
		return invalid(FieldTimestamp, "must be set")
	}
	if r.DateSource != DateSourceMetadata && r.DateSource != DateSourceCurrentTime {
		return invalid(FieldDateSource, "must be metadata or current time")
	}
	return nil
}

func checkReading(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || *v < MinSugar || *v > MaxSugar {
		return invalid(field, fmt.Sprintf("must be between %d and %d mg/dL", MinSugar, MaxSugar))
	}
	return nil
}
