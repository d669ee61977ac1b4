package scheduler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-dev/timetable-api/internal/models"
)

func noShuffle(keys []string) {}

func morningSlots(days ...string) []models.Timeslot {
	var out []models.Timeslot
	id := int64(1)
	for _, d := range days {
		out = append(out, models.Timeslot{ID: id, Day: d, StartTime: "09:00", EndTime: "10:00", Period: "P1"})
		id++
	}
	return out
}

// doubleSlots builds two adjacent morning slots per day.
func doubleSlots(days ...string) []models.Timeslot {
	var out []models.Timeslot
	id := int64(1)
	for _, d := range days {
		out = append(out,
			models.Timeslot{ID: id, Day: d, StartTime: "09:00", EndTime: "10:00", Period: "P1"},
			models.Timeslot{ID: id + 1, Day: d, StartTime: "10:00", EndTime: "11:00", Period: "P2"},
		)
		id += 2
	}
	return out
}

func TestRunSingleLectureLandsOnPreferredDay(t *testing.T) {
	ref := Reference{
		Faculty:   []models.Faculty{{ID: 1, Name: "Dr. Rao", PreferredDays: "Monday"}},
		Rooms:     []models.Room{{ID: 1, RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 40}},
		Sections:  []models.Section{{ID: 1, Name: "A", StudentCount: 30}},
		Timeslots: morningSlots("Monday", "Tuesday", "Wednesday", "Thursday", "Friday"),
	}
	engine := New(ref, WithShuffle(noShuffle))

	result := engine.Run(context.Background(), []Request{
		{Subject: "Math", SectionID: 1, Duration: 1, Frequency: 1, FacultyIDs: []int64{1}},
	})

	require.Len(t, result.Timetable, 1)
	assert.Empty(t, result.Skipped)

	placed := result.Timetable[0]
	assert.Equal(t, int64(1), placed.FacultyID)
	assert.Equal(t, int64(1), placed.RoomID)
	assert.Equal(t, []int64{1}, placed.SectionIDs)

	slot := slotByID(t, ref.Timeslots, placed.TimeslotID)
	assert.Equal(t, "Monday", slot.Day)
}

func TestRunFrequencyTwoSpreadsAcrossDays(t *testing.T) {
	ref := Reference{
		Faculty:   []models.Faculty{{ID: 1, Name: "Dr. Rao", PreferredDays: "Monday"}},
		Rooms:     []models.Room{{ID: 1, RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 40}},
		Sections:  []models.Section{{ID: 1, Name: "A", StudentCount: 30}},
		Timeslots: morningSlots("Monday", "Tuesday"),
	}
	engine := New(ref, WithShuffle(noShuffle))

	result := engine.Run(context.Background(), []Request{
		{Subject: "Math", SectionID: 1, Duration: 1, Frequency: 2, FacultyIDs: []int64{1}},
		{Subject: "Math", SectionID: 1, Duration: 1, Frequency: 2, FacultyIDs: []int64{1}},
	})

	require.Len(t, result.Timetable, 2)
	days := map[string]bool{}
	for _, placed := range result.Timetable {
		days[slotByID(t, ref.Timeslots, placed.TimeslotID).Day] = true
	}
	assert.Len(t, days, 2, "sessions of a frequency-2 quota must land on distinct days")
}

func TestRunCombinesAdjacentSectionsIntoHall(t *testing.T) {
	ref := Reference{
		Faculty: []models.Faculty{{ID: 1, Name: "Dr. Rao"}},
		Rooms:   []models.Room{{ID: 1, RoomNumber: "LT-1", RoomType: models.RoomTypeHall, Capacity: 200}},
		Sections: []models.Section{
			{ID: 1, Name: "A", StudentCount: 80},
			{ID: 2, Name: "B", StudentCount: 90},
		},
		Timeslots: doubleSlots("Monday", "Tuesday"),
	}
	engine := New(ref, WithShuffle(noShuffle))

	result := engine.Run(context.Background(), []Request{
		{Subject: "Physics", SectionID: 1, Duration: 2, Frequency: 1, FacultyIDs: []int64{1}},
		{Subject: "Physics", SectionID: 2, Duration: 2, Frequency: 1, FacultyIDs: []int64{1}},
	})

	require.Len(t, result.Timetable, 2, "a single combined two-hour lecture fulfills both quotas")
	assert.Empty(t, result.Skipped)

	first := slotByID(t, ref.Timeslots, result.Timetable[0].TimeslotID)
	second := slotByID(t, ref.Timeslots, result.Timetable[1].TimeslotID)
	assert.True(t, first.AdjacentTo(second), "combined lecture must span consecutive slots")
	for _, placed := range result.Timetable {
		assert.ElementsMatch(t, []int64{1, 2}, placed.SectionIDs)
		assert.Equal(t, int64(1), placed.RoomID)
	}
}

func TestRunCapacityBlockFallsBackToIndividual(t *testing.T) {
	ref := Reference{
		Faculty: []models.Faculty{{ID: 1, Name: "Dr. Rao"}},
		Rooms: []models.Room{
			{ID: 1, RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 120},
			{ID: 2, RoomNumber: "LT-1", RoomType: models.RoomTypeHall, Capacity: 200},
		},
		Sections: []models.Section{
			{ID: 1, Name: "A", StudentCount: 80},
			{ID: 2, Name: "B", StudentCount: 110},
		},
		Timeslots: doubleSlots("Monday", "Tuesday", "Wednesday"),
	}
	engine := New(ref, WithShuffle(noShuffle))

	result := engine.Run(context.Background(), []Request{
		{Subject: "Physics", SectionID: 1, Duration: 2, Frequency: 1, FacultyIDs: []int64{1}},
		{Subject: "Physics", SectionID: 2, Duration: 2, Frequency: 1, FacultyIDs: []int64{1}},
	})

	require.Len(t, result.Timetable, 4, "both sections scheduled individually as two-hour lectures")
	for _, placed := range result.Timetable {
		assert.Len(t, placed.SectionIDs, 1, "sections summing past the cap must never be combined")
	}
	assert.True(t, hasSkipCode(result.Skipped, SkipCombinedCapacity))
}

func TestRunNoEligibleFacultyZeroesQuota(t *testing.T) {
	ref := Reference{
		Faculty:   []models.Faculty{{ID: 1, Name: "Dr. Rao"}},
		Rooms:     []models.Room{{ID: 1, RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 40}},
		Sections:  []models.Section{{ID: 1, Name: "A", StudentCount: 30}},
		Timeslots: morningSlots("Monday"),
	}
	engine := New(ref, WithShuffle(noShuffle))

	result := engine.Run(context.Background(), []Request{
		{Subject: "Math", SectionID: 1, Duration: 1, Frequency: 1, FacultyIDs: []int64{99}},
	})

	assert.Empty(t, result.Timetable)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, SkipNoEligibleFaculty, result.Skipped[0].Code)
}

func TestRunSectionNotFoundZeroesQuota(t *testing.T) {
	ref := Reference{
		Faculty:   []models.Faculty{{ID: 1, Name: "Dr. Rao"}},
		Rooms:     []models.Room{{ID: 1, RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 40}},
		Sections:  []models.Section{{ID: 1, Name: "A", StudentCount: 30}},
		Timeslots: morningSlots("Monday"),
	}
	engine := New(ref, WithShuffle(noShuffle))

	result := engine.Run(context.Background(), []Request{
		{Subject: "Math", SectionID: 42, Duration: 1, Frequency: 1, FacultyIDs: []int64{1}},
	})

	assert.Empty(t, result.Timetable)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, SkipSectionNotFound, result.Skipped[0].Code)
	assert.Equal(t, int64(42), result.Skipped[0].SectionID)
}

func TestRunExhaustionReportsLeftoverUnits(t *testing.T) {
	ref := Reference{
		Faculty:   []models.Faculty{{ID: 1, Name: "Dr. Rao"}},
		Rooms:     []models.Room{{ID: 1, RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 40}},
		Sections:  []models.Section{{ID: 1, Name: "A", StudentCount: 30}},
		Timeslots: morningSlots("Monday", "Tuesday"),
	}
	engine := New(ref, WithShuffle(noShuffle))

	reqs := make([]Request, 5)
	for i := range reqs {
		reqs[i] = Request{Subject: "Math", SectionID: 1, Duration: 1, Frequency: 1, FacultyIDs: []int64{1}}
	}
	result := engine.Run(context.Background(), reqs)

	assert.Len(t, result.Timetable, 2, "only two slots exist for this faculty-section pair")

	var leftover int
	for _, skip := range result.Skipped {
		if skip.Code == SkipPassLimitReached {
			leftover += skip.Remaining
		}
	}
	assert.Equal(t, 3, leftover)
	assert.Equal(t, len(reqs), len(result.Timetable)+leftover, "assigned plus reported leftover must equal requested units")
}

func TestRunInvariantsHoldUnderRandomizedOrder(t *testing.T) {
	ref := Reference{
		Faculty: []models.Faculty{
			{ID: 1, Name: "Dr. Rao", PreferredDays: "Monday,Wednesday"},
			{ID: 2, Name: "Dr. Iyer"},
			{ID: 3, Name: "Dr. Bose", PreferredDays: "Friday"},
		},
		Rooms: []models.Room{
			{ID: 1, RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 60},
			{ID: 2, RoomNumber: "102", RoomType: models.RoomTypeClassroom, Capacity: 60},
			{ID: 3, RoomNumber: "LT-1", RoomType: models.RoomTypeHall, Capacity: 180},
		},
		Sections: []models.Section{
			{ID: 1, Name: "A", StudentCount: 55},
			{ID: 2, Name: "B", StudentCount: 50},
			{ID: 3, Name: "C", StudentCount: 48},
			{ID: 4, Name: "D", StudentCount: 52},
		},
		Timeslots: doubleSlots("Monday", "Tuesday", "Wednesday", "Thursday", "Friday"),
	}

	var reqs []Request
	for _, sectionID := range []int64{1, 2, 3, 4} {
		reqs = append(reqs,
			Request{Subject: "Math", SectionID: sectionID, Duration: 1, Frequency: 2, FacultyIDs: []int64{1, 2}},
			Request{Subject: "Math", SectionID: sectionID, Duration: 1, Frequency: 2, FacultyIDs: []int64{1, 2}},
			Request{Subject: "Physics", SectionID: sectionID, Duration: 2, Frequency: 1, FacultyIDs: []int64{2, 3}},
		)
	}

	for seed := int64(1); seed <= 4; seed++ {
		engine := New(ref, WithSeed(seed))
		result := engine.Run(context.Background(), reqs)
		assertNoConflicts(t, result.Timetable)
		assertDaySpread(t, ref, result.Timetable, "Math", 2)
		for _, placed := range result.Timetable {
			if len(placed.SectionIDs) == 2 {
				total := 0
				for _, id := range placed.SectionIDs {
					total += sectionByID(t, ref.Sections, id).StudentCount
				}
				assert.LessOrEqual(t, total, MaxCombinedStudents)
			}
		}
	}
}

func TestRunIsDeterministicWithFixedSeed(t *testing.T) {
	ref := Reference{
		Faculty: []models.Faculty{{ID: 1, Name: "Dr. Rao"}, {ID: 2, Name: "Dr. Iyer"}},
		Rooms: []models.Room{
			{ID: 1, RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 60},
		},
		Sections: []models.Section{
			{ID: 1, Name: "A", StudentCount: 40},
			{ID: 2, Name: "B", StudentCount: 45},
		},
		Timeslots: morningSlots("Monday", "Tuesday", "Wednesday"),
	}
	reqs := []Request{
		{Subject: "Math", SectionID: 1, Duration: 1, Frequency: 1, FacultyIDs: []int64{1, 2}},
		{Subject: "Math", SectionID: 2, Duration: 1, Frequency: 1, FacultyIDs: []int64{1, 2}},
		{Subject: "History", SectionID: 1, Duration: 1, Frequency: 1, FacultyIDs: []int64{2}},
	}

	first := New(ref, WithSeed(7)).Run(context.Background(), reqs)
	second := New(ref, WithSeed(7)).Run(context.Background(), reqs)
	assert.Equal(t, first.Timetable, second.Timetable)
	assert.Equal(t, first.Skipped, second.Skipped)
}

func TestRunRotatesFacultyAcrossSubjectPool(t *testing.T) {
	ref := Reference{
		Faculty: []models.Faculty{{ID: 1, Name: "Dr. Rao"}, {ID: 2, Name: "Dr. Iyer"}},
		Rooms: []models.Room{
			{ID: 1, RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 60},
			{ID: 2, RoomNumber: "102", RoomType: models.RoomTypeClassroom, Capacity: 60},
		},
		Sections: []models.Section{
			{ID: 1, Name: "A", StudentCount: 40},
			{ID: 2, Name: "B", StudentCount: 45},
		},
		Timeslots: morningSlots("Monday", "Tuesday", "Wednesday", "Thursday"),
	}
	engine := New(ref, WithShuffle(noShuffle))

	result := engine.Run(context.Background(), []Request{
		{Subject: "Math", SectionID: 1, Duration: 1, Frequency: 1, FacultyIDs: []int64{1, 2}},
		{Subject: "Math", SectionID: 2, Duration: 1, Frequency: 1, FacultyIDs: []int64{1, 2}},
	})

	require.Len(t, result.Timetable, 2)
	used := map[int64]bool{}
	for _, placed := range result.Timetable {
		used[placed.FacultyID] = true
	}
	assert.Len(t, used, 2, "round-robin cursor should hand the second quota to the other faculty")
}

func TestRunPersistsThroughSink(t *testing.T) {
	ref := Reference{
		Faculty:   []models.Faculty{{ID: 1, Name: "Dr. Rao"}},
		Rooms:     []models.Room{{ID: 1, RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 40}},
		Sections:  []models.Section{{ID: 1, Name: "A", StudentCount: 30}},
		Timeslots: morningSlots("Monday", "Tuesday"),
	}
	var persisted []Placement
	engine := New(ref, WithShuffle(noShuffle), WithSink(func(ctx context.Context, p Placement) error {
		persisted = append(persisted, p)
		return nil
	}))

	result := engine.Run(context.Background(), []Request{
		{Subject: "Math", SectionID: 1, Duration: 1, Frequency: 1, FacultyIDs: []int64{1}},
	})

	assert.Equal(t, result.Timetable, persisted)
}

func TestRunSinkErrorDoesNotAbortRun(t *testing.T) {
	ref := Reference{
		Faculty:   []models.Faculty{{ID: 1, Name: "Dr. Rao"}},
		Rooms:     []models.Room{{ID: 1, RoomNumber: "101", RoomType: models.RoomTypeClassroom, Capacity: 40}},
		Sections:  []models.Section{{ID: 1, Name: "A", StudentCount: 30}},
		Timeslots: morningSlots("Monday", "Tuesday"),
	}
	engine := New(ref, WithShuffle(noShuffle), WithSink(func(ctx context.Context, p Placement) error {
		return fmt.Errorf("store unavailable")
	}))

	result := engine.Run(context.Background(), []Request{
		{Subject: "Math", SectionID: 1, Duration: 1, Frequency: 1, FacultyIDs: []int64{1}},
		{Subject: "Math", SectionID: 1, Duration: 1, Frequency: 1, FacultyIDs: []int64{1}},
	})

	assert.Len(t, result.Timetable, 2)
}

// --- helpers ---

func slotByID(t *testing.T, slots []models.Timeslot, id int64) models.Timeslot {
	t.Helper()
	for _, ts := range slots {
		if ts.ID == id {
			return ts
		}
	}
	t.Fatalf("timeslot %d not found", id)
	return models.Timeslot{}
}

func sectionByID(t *testing.T, sections []models.Section, id int64) models.Section {
	t.Helper()
	for _, s := range sections {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("section %d not found", id)
	return models.Section{}
}

func hasSkipCode(skips []Skip, code string) bool {
	for _, s := range skips {
		if s.Code == code {
			return true
		}
	}
	return false
}

func assertNoConflicts(t *testing.T, placements []Placement) {
	t.Helper()
	facultySlots := map[string]bool{}
	roomSlots := map[string]bool{}
	sectionSlots := map[string]bool{}
	for _, p := range placements {
		fk := fmt.Sprintf("%d|%d", p.FacultyID, p.TimeslotID)
		assert.False(t, facultySlots[fk], "faculty double-booked at %s", fk)
		facultySlots[fk] = true

		rk := fmt.Sprintf("%d|%d", p.RoomID, p.TimeslotID)
		assert.False(t, roomSlots[rk], "room double-booked at %s", rk)
		roomSlots[rk] = true

		for _, sectionID := range p.SectionIDs {
			sk := fmt.Sprintf("%d|%d", sectionID, p.TimeslotID)
			assert.False(t, sectionSlots[sk], "section double-booked at %s", sk)
			sectionSlots[sk] = true
		}
	}
}

func assertDaySpread(t *testing.T, ref Reference, placements []Placement, subject string, frequency int) {
	t.Helper()
	if frequency <= 1 {
		return
	}
	days := map[string]map[string]bool{}
	for _, p := range placements {
		if p.Subject != subject {
			continue
		}
		day := slotByID(t, ref.Timeslots, p.TimeslotID).Day
		for _, sectionID := range p.SectionIDs {
			key := fmt.Sprintf("%s|%d", subject, sectionID)
			if days[key] == nil {
				days[key] = map[string]bool{}
			}
			assert.False(t, days[key][day], "quota %s scheduled twice on %s", key, day)
			days[key][day] = true
		}
	}
}
