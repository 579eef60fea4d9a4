package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizmokh/sugarlog/internal/record"
)

func rec(date, clock string, before, after *float64) record.Record {
	ts, _ := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	return record.Record{
		Date:        date,
		Time:        clock,
		Timestamp:   ts,
		Name:        "Comida",
		SugarBefore: before,
		SugarAfter:  after,
		Foods:       []string{"Arroz"},
	}
}

func TestDayStatisticsPoolsReadings(t *testing.T) {
	day := []record.Record{
		rec("2024-03-01", "08:00", record.Float(90), record.Float(150)),
		rec("2024-03-01", "13:00", record.Float(110), nil),
		rec("2024-03-01", "20:00", nil, record.Float(95)),
	}

	got := DayStatistics(day)
	assert.Equal(t, 4, got.Count)
	assert.InDelta(t, 111.25, got.Average, 1e-9)
	assert.Equal(t, 90.0, got.Min)
	assert.Equal(t, 150.0, got.Max)
}

func TestDayStatisticsLegacyOnlyWhenNoPair(t *testing.T) {
	legacy := rec("2023-11-20", "21:05", nil, nil)
	legacy.LegacySugarLevel = record.Float(210)

	mixed := rec("2023-11-20", "22:00", record.Float(100), nil)
	mixed.LegacySugarLevel = record.Float(500)

	got := DayStatistics([]record.Record{legacy, mixed})
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 210.0, got.Max)
	assert.Equal(t, 100.0, got.Min)
}

func TestDayStatisticsEmpty(t *testing.T) {
	got := DayStatistics(nil)
	assert.True(t, got.Empty())
	assert.Equal(t, Stats{}, got)
}

func TestGroupByDateOrdering(t *testing.T) {
	records := []record.Record{
		rec("2024-03-01", "20:00", record.Float(100), nil),
		rec("2024-03-03", "09:00", record.Float(100), nil),
		rec("2024-03-01", "08:00", record.Float(100), nil),
		rec("2024-03-02", "12:00", record.Float(100), nil),
		rec("2024-03-01", "08:00", record.Float(120), nil),
	}

	days := GroupByDate(records)
	require.Len(t, days, 3)
	assert.Equal(t, []string{"2024-03-03", "2024-03-02", "2024-03-01"},
		[]string{days[0].Date, days[1].Date, days[2].Date})

	first := days[2].Records
	require.Len(t, first, 3)
	assert.Equal(t, "08:00", first[0].Time)
	assert.Equal(t, 100.0, *first[0].SugarBefore)
	assert.Equal(t, "08:00", first[1].Time)
	assert.Equal(t, 120.0, *first[1].SugarBefore)
	assert.Equal(t, "20:00", first[2].Time)
}

func TestGroupByDateCountsMatchTotal(t *testing.T) {
	var records []record.Record
	for i := 0; i < 40; i++ {
		date := time.Date(2024, 1, 1+i%7, 0, 0, 0, 0, time.Local).Format("2006-01-02")
		clock := time.Date(2024, 1, 1, i%24, i%60, 0, 0, time.Local).Format("15:04")
		records = append(records, rec(date, clock, record.Float(float64(60+i)), nil))
	}

	total := 0
	for _, day := range GroupByDate(records) {
		total += len(day.Records)
	}
	if total != len(records) {
		t.Fatalf("grouped count = %d, want %d", total, len(records))
	}
	assert.Empty(t, GroupByDate(nil))
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		value float64
		want  Status
	}{
		{0, StatusLow},
		{69.9, StatusLow},
		{70, StatusNormal},
		{140, StatusNormal},
		{141, StatusHigh},
		{200, StatusHigh},
		{200.5, StatusVeryHigh},
		{1000, StatusVeryHigh},
	}
	for _, tc := range cases {
		if got := Classify(tc.value); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestRecordStatusUsesPeak(t *testing.T) {
	assert.Equal(t, StatusVeryHigh, RecordStatus(rec("2024-03-01", "08:00", record.Float(90), record.Float(230))))
	assert.Equal(t, StatusNormal, RecordStatus(rec("2024-03-01", "08:00", record.Float(65), record.Float(100))))
	assert.Equal(t, StatusUnknown, RecordStatus(rec("2024-03-01", "08:00", nil, nil)))
	assert.Equal(t, "", StatusUnknown.String())
	assert.Equal(t, "VeryHigh", StatusVeryHigh.String())
}

func TestSummarizeDistribution(t *testing.T) {
	records := []record.Record{
		rec("2024-03-01", "08:00", record.Float(60), record.Float(150)),
		rec("2024-03-01", "13:00", record.Float(110), record.Float(250)),
	}

	s := Summarize(records)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 1, s.Low)
	assert.Equal(t, 1, s.Normal)
	assert.Equal(t, 2, s.High)
	assert.InDelta(t, 100, s.Percent(s.Low)+s.Percent(s.Normal)+s.Percent(s.High), 1e-9)
	assert.InDelta(t, 50, s.Percent(s.High), 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.Empty())
	assert.Zero(t, s.Percent(s.Normal))
}

func TestOverview(t *testing.T) {
	h := Overview([]record.Record{
		rec("2024-03-02", "08:00", record.Float(100), nil),
		rec("2024-03-01", "08:00", record.Float(100), nil),
		rec("2024-03-02", "13:00", record.Float(100), nil),
	})
	assert.Equal(t, History{Records: 3, Days: 2, First: "2024-03-01", Last: "2024-03-02"}, h)
	assert.InDelta(t, 1.5, h.PerDay(), 1e-9)
	assert.Zero(t, Overview(nil).PerDay())
}

func TestRecentNames(t *testing.T) {
	a := rec("2024-03-01", "08:00", record.Float(100), nil)
	a.Name = "Desayuno"
	b := rec("2024-03-02", "13:00", record.Float(100), nil)
	b.Name = "Comida"
	c := rec("2024-03-03", "08:00", record.Float(100), nil)
	c.Name = "desayuno "
	d := rec("2024-03-01", "20:00", record.Float(100), nil)
	d.Name = "Cena"

	got := RecentNames([]record.Record{a, b, c, d}, 0)
	assert.Equal(t, []string{"desayuno", "Comida", "Cena"}, got)
	assert.Equal(t, []string{"desayuno", "Comida"}, RecentNames([]record.Record{a, b, c, d}, 2))
}
