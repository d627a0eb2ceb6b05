package analytics

import (
	"fmt"
	"time"
)

// Window is an inclusive reporting window.
type Window struct {
	From time.Time
	To   time.Time
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// WeekStart returns 00:00 UTC on the Monday of t's ISO week.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthStart returns 00:00 UTC on the first day of t's calendar month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// QuarterStart returns 00:00 UTC on the first day of t's calendar quarter.
func QuarterStart(t time.Time) time.Time {
	t = t.UTC()
	month := time.Month((int(t.Month())-1)/3*3 + 1)
	return time.Date(t.Year(), month, 1, 0, 0, 0, 0, time.UTC)
}

// LastWeeks returns the n ISO weeks ending with the week containing now,
// oldest first. Each window is inclusive; event timestamps are second
// resolution so closing one second before the next week is safe.
func LastWeeks(now time.Time, n int) []Window {
	windows := make([]Window, 0, n)
	start := WeekStart(now).AddDate(0, 0, -7*(n-1))
	for i := 0; i < n; i++ {
		next := start.AddDate(0, 0, 7)
		windows = append(windows, Window{From: start, To: next.Add(-time.Second)})
		start = next
	}
	return windows
}

// LastMonths returns the n calendar months ending with the month containing
// now, oldest first.
func LastMonths(now time.Time, n int) []Window {
	windows := make([]Window, 0, n)
	start := MonthStart(now).AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		next := start.AddDate(0, 1, 0)
		windows = append(windows, Window{From: start, To: next.Add(-time.Second)})
		start = next
	}
	return windows
}

// LastQuarters returns the n calendar quarters ending with the quarter
// containing now, oldest first.
func LastQuarters(now time.Time, n int) []Window {
	windows := make([]Window, 0, n)
	start := QuarterStart(now).AddDate(0, -3*(n-1), 0)
	for i := 0; i < n; i++ {
		next := start.AddDate(0, 3, 0)
		windows = append(windows, Window{From: start, To: next.Add(-time.Second)})
		start = next
	}
	return windows
}

// WeekLabel formats a window start as an ISO week label, e.g. "2026-W35".
func WeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthLabel formats a window start as "2026-08".
func MonthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// QuarterLabel formats a window start as "2026-Q3".
func QuarterLabel(t time.Time) string {
	return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
}
