package service

import "time"

// DateOnly truncates t to midnight UTC. All schedule days are stored and
// compared in this normalized form.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekMonday returns the Monday of the week containing t. Weeks run
// Monday through Sunday.
func WeekMonday(t time.Time) time.Time {
	d := DateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekThursday returns the Thursday of the week containing t, the last day
// the generator produces slots for.
func WeekThursday(t time.Time) time.Time {
	return WeekMonday(t).AddDate(0, 0, 3)
}

// WeekSunday returns the Sunday closing the week containing t.
func WeekSunday(t time.Time) time.Time {
	return WeekMonday(t).AddDate(0, 0, 6)
}

// OccurrenceInWeek returns the date in t's week that falls on weekday.
func OccurrenceInWeek(t time.Time, weekday time.Weekday) time.Time {
	offset := (int(weekday) + 6) % 7
	return WeekMonday(t).AddDate(0, 0, offset)
}
