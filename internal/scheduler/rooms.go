package scheduler

import (
	"sort"

	"github.com/campus-dev/timetable-api/internal/models"
)

// pickRoom finds the first room with enough seats that is free across the
// whole run, trying classrooms before halls. The sort is stable so rooms of
// the same type keep their reference order.
func pickRoom(rooms []models.Room, needed int, run []models.Timeslot, led *ledger) *models.Room {
	candidates := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Capacity >= needed {
			candidates = append(candidates, r)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RoomType == models.RoomTypeClassroom && candidates[j].RoomType == models.RoomTypeHall
	})
	return firstFreeRoom(candidates, run, led)
}

// pickRoomOfType scans only rooms of the given type with sufficient capacity.
func pickRoomOfType(rooms []models.Room, roomType string, needed int, run []models.Timeslot, led *ledger) *models.Room {
	candidates := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.RoomType == roomType && r.Capacity >= needed {
			candidates = append(candidates, r)
		}
	}
	return firstFreeRoom(candidates, run, led)
}

func firstFreeRoom(candidates []models.Room, run []models.Timeslot, led *ledger) *models.Room {
	for i := range candidates {
		if roomFreeForRun(candidates[i].ID, run, led) {
			return &candidates[i]
		}
	}
	return nil
}

func roomFreeForRun(roomID int64, run []models.Timeslot, led *ledger) bool {
	for _, ts := range run {
		if !led.free(roomResource, roomID, ts.ID) {
			return false
		}
	}
	return true
}
