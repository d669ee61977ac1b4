package models

import "strings"

// Faculty is a teaching staff member eligible to take lectures.
type Faculty struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	PreferredDays string `db:"preferred_days" json:"preferredDays"`
}

// PreferredDayList splits the stored comma-separated day names. An empty
// preference means the faculty member can be scheduled on any day.
func (f Faculty) PreferredDayList() []string {
	if strings.TrimSpace(f.PreferredDays) == "" {
		return nil
	}
	parts := strings.Split(f.PreferredDays, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			days = append(days, trimmed)
		}
	}
	return days
}
