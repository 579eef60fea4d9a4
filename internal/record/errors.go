package record

import "fmt"

// Field names reported by ValidationError.
const (
	FieldName        = "name"
	FieldSugar       = "sugar"
	FieldSugarBefore = "sugarBefore"
	FieldSugarAfter  = "sugarAfter"
	FieldFoods       = "foods"
	FieldDate        = "date"
	FieldTime        = "time"
	FieldTimestamp   = "timestamp"
	FieldDateSource  = "dateSource"
)

// ValidationError names the first invariant a record (or schedule band)
// violates. Nothing is persisted when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
