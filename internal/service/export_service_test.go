package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-dev/timetable-api/internal/dto"
	appErrors "github.com/campus-dev/timetable-api/pkg/errors"
)

type stubTimetableProvider struct {
	entries []dto.TimetableEntry
	err     error
}

func (s *stubTimetableProvider) GetTimetable(ctx context.Context) ([]dto.TimetableEntry, error) {
	return s.entries, s.err
}

func exportFixtureEntries() []dto.TimetableEntry {
	return []dto.TimetableEntry{
		{
			SubjectName: "Math",
			Faculty:     dto.TimetableFaculty{ID: 1, Name: "Dr. Rao"},
			Room:        dto.TimetableRoom{ID: 1, RoomNumber: "101"},
			Timeslot:    dto.TimetableSlot{Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
			Sections: []dto.TimetableSection{
				{ID: 1, Name: "CSE-A"},
				{ID: 2, Name: "CSE-B"},
			},
			Combined: true,
		},
	}
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(&stubTimetableProvider{entries: exportFixtureEntries()}, nil)

	file, err := svc.Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "timetable.csv", file.Filename)

	body := string(file.Content)
	assert.True(t, strings.HasPrefix(body, "Day,Start,End,Subject,Faculty,Room,Sections"))
	assert.Contains(t, body, "Monday,09:00,10:00,Math,Dr. Rao,101,CSE-A + CSE-B")
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(&stubTimetableProvider{entries: exportFixtureEntries()}, nil)

	file, err := svc.Export(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.NotEmpty(t, file.Content)
}

func TestExportServiceDefaultsToCSV(t *testing.T) {
	svc := NewExportService(&stubTimetableProvider{entries: nil}, nil)

	file, err := svc.Export(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "timetable.csv", file.Filename)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&stubTimetableProvider{}, nil)

	_, err := svc.Export(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
