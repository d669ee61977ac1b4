package scheduler

import (
	"strings"

	"github.com/campus-dev/timetable-api/internal/models"
)

// availableSlots returns candidate timeslots for one faculty member and the
// involved sections, ordered so slots on the faculty's preferred days come
// first while each tier keeps chronological order. When the weekly frequency
// is above one, days already holding a session for any of the quota keys are
// excluded so sessions spread across distinct days.
func (e *Engine) availableSlots(fac models.Faculty, sections []models.Section, keys []string, frequency int, led *ledger) []models.Timeslot {
	preferredDays := fac.PreferredDayList()
	var preferred, other []models.Timeslot

slots:
	for _, ts := range e.timeslots {
		if !led.free(facultyResource, fac.ID, ts.ID) {
			continue
		}
		for _, s := range sections {
			if !led.free(sectionResource, s.ID, ts.ID) {
				continue slots
			}
		}
		if frequency > 1 {
			for _, key := range keys {
				if led.dayUsed(key, ts.Day) {
					continue slots
				}
			}
		}
		if isPreferredDay(preferredDays, ts.Day) {
			preferred = append(preferred, ts)
		} else {
			other = append(other, ts)
		}
	}
	return append(preferred, other...)
}

func isPreferredDay(preferred []string, day string) bool {
	if len(preferred) == 0 {
		return true
	}
	for _, d := range preferred {
		if strings.EqualFold(d, day) {
			return true
		}
	}
	return false
}

// findConsecutive locates the first run of duration candidate slots that are
// still free for the faculty and every section and pairwise adjacent on the
// same day. First fit, not best fit; returns nil when no run qualifies.
func findConsecutive(candidates []models.Timeslot, duration int, facultyID int64, sectionIDs []int64, led *ledger) []models.Timeslot {
	if duration <= 1 {
		for _, ts := range candidates {
			if slotFree(ts, facultyID, sectionIDs, led) {
				return []models.Timeslot{ts}
			}
		}
		return nil
	}
	for i := 0; i+duration <= len(candidates); i++ {
		run := candidates[i : i+duration]
		if runQualifies(run, facultyID, sectionIDs, led) {
			return run
		}
	}
	return nil
}

func runQualifies(run []models.Timeslot, facultyID int64, sectionIDs []int64, led *ledger) bool {
	for j, ts := range run {
		if !slotFree(ts, facultyID, sectionIDs, led) {
			return false
		}
		if j < len(run)-1 && !ts.AdjacentTo(run[j+1]) {
			return false
		}
	}
	return true
}

func slotFree(ts models.Timeslot, facultyID int64, sectionIDs []int64, led *ledger) bool {
	if !led.free(facultyResource, facultyID, ts.ID) {
		return false
	}
	for _, id := range sectionIDs {
		if !led.free(sectionResource, id, ts.ID) {
			return false
		}
	}
	return true
}
