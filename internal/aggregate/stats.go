package aggregate

import "github.com/faizmokh/sugarlog/internal/record"

// Stats summarizes a pooled sample of readings. A zero Count means there was
// no data; the other fields are then zero as well.
type Stats struct {
	Count   int
	Average float64
	Min     float64
	Max     float64
}

// Empty reports whether the sample had no readings.
func (s Stats) Empty() bool {
	return s.Count == 0
}

// Pool collects every reading of every record into one sample.
func Pool(records []record.Record) []float64 {
	var values []float64
	for _, r := range records {
		values = append(values, r.Readings()...)
	}
	return values
}

// DayStatistics pools the readings of records and returns count, average,
// min and max over them.
func DayStatistics(records []record.Record) Stats {
	return statsOf(Pool(records))
}

func statsOf(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	s := Stats{Count: len(values), Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Average = sum / float64(len(values))
	return s
}

// Summary is the pooled statistics of a record set plus the distribution of
// its readings over the low, normal and high ranges. High includes every
// reading above the normal range.
type Summary struct {
	Stats

	Low    int
	Normal int
	High   int
}

// Summarize pools the readings of records and buckets each one.
func Summarize(records []record.Record) Summary {
	values := Pool(records)
	s := Summary{Stats: statsOf(values)}
	for _, v := range values {
		switch Classify(v) {
		case StatusLow:
			s.Low++
		case StatusNormal:
			s.Normal++
		default:
			s.High++
		}
	}
	return s
}

// Percent returns the share of pooled readings in a bucket count. An empty
// pool yields zero for every bucket.
func (s Summary) Percent(count int) float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(count) / float64(s.Count) * 100
}
