package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekMonday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
	}{
		{name: "monday itself", in: testMonday},
		{name: "midweek", in: testMonday.AddDate(0, 0, 2)},
		{name: "saturday", in: testMonday.AddDate(0, 0, 5)},
		{name: "sunday belongs to the preceding monday", in: testMonday.AddDate(0, 0, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, testMonday, WeekMonday(tt.in))
		})
	}
}

func TestWeekBounds(t *testing.T) {
	require.Equal(t, testMonday.AddDate(0, 0, 3), WeekThursday(testMonday.AddDate(0, 0, 1)))
	require.Equal(t, testMonday.AddDate(0, 0, 6), WeekSunday(testMonday.AddDate(0, 0, 4)))
}

func TestOccurrenceInWeek(t *testing.T) {
	wednesday := testMonday.AddDate(0, 0, 2)

	require.Equal(t, testMonday, OccurrenceInWeek(wednesday, time.Monday))
	require.Equal(t, testMonday.AddDate(0, 0, 3), OccurrenceInWeek(wednesday, time.Thursday))
	require.Equal(t, testMonday.AddDate(0, 0, 6), OccurrenceInWeek(wednesday, time.Sunday))
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 3, 2, 17, 45, 12, 999, time.FixedZone("KST", 9*3600))

	out := DateOnly(in)

	require.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), out)
}
