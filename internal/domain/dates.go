package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight value.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

// DateOf returns the calendar date of t as observed in loc, as UTC midnight.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TruncateDate drops the clock part of t, keeping its calendar date.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InclusiveDays counts calendar days from start to end, both included.
// It returns 0 when end precedes start.
func InclusiveDays(start, end time.Time) int {
	s, e := TruncateDate(start), TruncateDate(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// RangesOverlap reports whether the closed date ranges [aStart,aEnd] and [bStart,bEnd] intersect.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !TruncateDate(aStart).After(TruncateDate(bEnd)) && !TruncateDate(bStart).After(TruncateDate(aEnd))
}

// OverlapDays counts the days [aStart,aEnd] shares with [bStart,bEnd], both ends included.
func OverlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	start, end := TruncateDate(aStart), TruncateDate(aEnd)
	if b := TruncateDate(bStart); b.After(start) {
		start = b
	}
	if b := TruncateDate(bEnd); b.Before(end) {
		end = b
	}
	return InclusiveDays(start, end)
}

// MonthBounds returns the first and last calendar day of the month containing t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
