package scheduler

import "github.com/campus-dev/timetable-api/internal/models"

// findPartner searches the combine window around the current section for a
// sibling that still owes lectures for the same subject and has not already
// been paired away. The search stays local: sections far apart in the id
// ordering are never combined, even when otherwise compatible.
func (e *Engine) findPartner(current models.Section, subject string, st *runState) *models.Section {
	idx := -1
	for i := range e.sections {
		if e.sections[i].ID == current.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	for offset := -e.combineWindow; offset <= e.combineWindow; offset++ {
		if offset == 0 {
			continue
		}
		pos := idx + offset
		if pos < 0 || pos >= len(e.sections) {
			continue
		}
		sibling := e.sections[pos]
		key := quotaKey(subject, sibling.ID)
		if st.paired[key] {
			continue
		}
		if st.remaining[key] > 0 {
			return &sibling
		}
	}
	return nil
}
