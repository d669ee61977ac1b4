package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/campus-dev/timetable-api/internal/models"
	"github.com/campus-dev/timetable-api/internal/scheduler"
)

// FlexInt accepts a JSON number or a numeric string. Values that cannot be
// parsed decode to zero instead of failing the whole payload; downstream
// validation turns the zero into a per-row skip.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

// FacultyIDList accepts a scalar or a list, with each element a number or a
// numeric string. Unparseable elements are kept verbatim in Invalid so the
// generator can report them without dropping the rest of the row.
type FacultyIDList struct {
	IDs     []int64
	Invalid []string
}

func (l *FacultyIDList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.IDs = nil
	l.Invalid = nil
	switch v := raw.(type) {
	case nil:
	case []any:
		for _, item := range v {
			l.append(item)
		}
	default:
		l.append(v)
	}
	return nil
}

func (l *FacultyIDList) append(item any) {
	switch v := item.(type) {
	case float64:
		l.IDs = append(l.IDs, int64(v))
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			l.Invalid = append(l.Invalid, v)
			return
		}
		l.IDs = append(l.IDs, id)
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			l.Invalid = append(l.Invalid, v.String())
			return
		}
		l.IDs = append(l.IDs, id)
	default:
		l.Invalid = append(l.Invalid, fmt.Sprintf("%v", v))
	}
}

// LectureRequest is one demand row of the generation payload. Each row is one
// weekly lecture unit; repeating a (subjectName, sectionId) pair raises that
// pair's quota.
type LectureRequest struct {
	SubjectName string        `json:"subjectName"`
	SectionID   FlexInt       `json:"sectionId"`
	Duration    FlexInt       `json:"duration"`
	Frequency   FlexInt       `json:"frequency"`
	FacultyIDs  FacultyIDList `json:"facultyIds"`
}

// TimetableFaculty is the faculty projection embedded in timetable entries.
type TimetableFaculty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TimetableRoom is the room projection embedded in timetable entries.
type TimetableRoom struct {
	ID         int64  `json:"id"`
	RoomNumber string `json:"roomNumber"`
	RoomType   string `json:"roomType"`
	Capacity   int    `json:"capacity"`
}

// TimetableSlot is the timeslot projection embedded in timetable entries.
type TimetableSlot struct {
	ID        int64  `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Period    string `json:"period,omitempty"`
}

// TimetableSection is the section projection embedded in timetable entries.
type TimetableSection struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	StudentCount int    `json:"studentCount"`
}

// TimetableEntry is one persisted assignment joined with its reference rows.
// Combined lectures carry both sections.
type TimetableEntry struct {
	ID          int64              `json:"id"`
	SubjectName string             `json:"subjectName"`
	Faculty     TimetableFaculty   `json:"faculty"`
	Room        TimetableRoom      `json:"room"`
	Timeslot    TimetableSlot      `json:"timeslot"`
	Sections    []TimetableSection `json:"sections"`
	Combined    bool               `json:"combined"`
}

// GenerateTimetableResponse returns the produced timetable together with
// every slot the generator could not fulfil.
type GenerateTimetableResponse struct {
	Timetable    []TimetableEntry `json:"timetable"`
	SkippedSlots []scheduler.Skip `json:"skippedSlots"`
	Passes       int              `json:"passes"`
}

// ReferenceDataResponse bundles the collections the scheduling UI needs to
// build a generation payload.
type ReferenceDataResponse struct {
	Faculty   []models.Faculty  `json:"faculty"`
	Rooms     []models.Room     `json:"rooms"`
	Sections  []models.Section  `json:"sections"`
	Timeslots []models.Timeslot `json:"timeslots"`
}
