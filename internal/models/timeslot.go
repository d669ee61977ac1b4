package models

import "strings"

// Timeslot is one schedulable period in the weekly grid. Times are stored as
// HH:MM strings; two slots are adjacent when they share a day and one's end
// time equals the other's start time.
type Timeslot struct {
	ID        int64  `db:"id" json:"id"`
	Day       string `db:"day" json:"day"`
	StartTime string `db:"start_time" json:"startTime"`
	EndTime   string `db:"end_time" json:"endTime"`
	Period    string `db:"period" json:"period"`
}

// Before orders timeslots by (day, start time).
func (t Timeslot) Before(other Timeslot) bool {
	if t.Day != other.Day {
		return t.Day < other.Day
	}
	return t.StartTime < other.StartTime
}

// AdjacentTo reports whether other immediately follows t on the same day.
func (t Timeslot) AdjacentTo(other Timeslot) bool {
	return strings.EqualFold(t.Day, other.Day) && t.EndTime == other.StartTime
}
