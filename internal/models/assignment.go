package models

import (
	"time"

	"github.com/lib/pq"
)

// Assignment is one persisted lecture placement: a (faculty, room, timeslot)
// triple covering one or two sections. Multi-hour lectures persist one row per
// occupied timeslot.
type Assignment struct {
	ID          int64         `db:"id" json:"id"`
	SubjectName string        `db:"subject_name" json:"subjectName"`
	FacultyID   int64         `db:"faculty_id" json:"facultyId"`
	RoomID      int64         `db:"room_id" json:"roomId"`
	TimeslotID  int64         `db:"timeslot_id" json:"timeslotId"`
	SectionIDs  pq.Int64Array `db:"section_ids" json:"sectionIds"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
}

// Combined reports whether the assignment covers more than one section.
func (a Assignment) Combined() bool {
	return len(a.SectionIDs) > 1
}
