package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-dev/timetable-api/internal/models"
)

func TestReferenceServiceLoadsAllCollections(t *testing.T) {
	svc := NewReferenceService(
		&stubFacultyRepo{items: []models.Faculty{{ID: 1, Name: "Dr. Rao"}}},
		&stubRoomRepo{items: []models.Room{{ID: 1, RoomNumber: "101"}}},
		&stubSectionRepo{items: []models.Section{{ID: 1, Name: "CSE-A"}}},
		&stubTimeslotRepo{items: []models.Timeslot{{ID: 1, Day: "Monday"}}},
		nil,
		0,
		nil,
	)

	resp, err := svc.GetReferenceData(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Faculty, 1)
	assert.Len(t, resp.Rooms, 1)
	assert.Len(t, resp.Sections, 1)
	assert.Len(t, resp.Timeslots, 1)
}

func TestReferenceServicePropagatesListErrors(t *testing.T) {
	svc := NewReferenceService(
		&stubFacultyRepo{err: assert.AnError},
		&stubRoomRepo{},
		&stubSectionRepo{},
		&stubTimeslotRepo{},
		nil,
		0,
		nil,
	)

	_, err := svc.GetReferenceData(context.Background())
	require.Error(t, err)
}
