package record

// Readings merges the glucose values of a record into one list: the before
// and after readings when present, otherwise the legacy single reading.
func (r Record) Readings() []float64 {
	values := make([]float64, 0, 2)
	if r.SugarBefore != nil {
		values = append(values, *r.SugarBefore)
	}
	if r.SugarAfter != nil {
		values = append(values, *r.SugarAfter)
	}
	if len(values) == 0 && r.LegacySugarLevel != nil {
		values = append(values, *r.LegacySugarLevel)
	}
	return values
}

// Peak returns the highest reading of the record. ok is false for a record
// without any reading.
func (r Record) Peak() (peak float64, ok bool) {
	for i, v := range r.Readings() {
		if i == 0 || v > peak {
			peak = v
		}
		ok = true
	}
	return peak, ok
}

// Delta returns after minus before when both readings are present.
func (r Record) Delta() (float64, bool) {
	if r.SugarBefore == nil || r.SugarAfter == nil {
		return 0, false
	}
	return *r.SugarAfter - *r.SugarBefore, true
}
