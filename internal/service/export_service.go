package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/campus-dev/timetable-api/internal/dto"
	appErrors "github.com/campus-dev/timetable-api/pkg/errors"
	"github.com/campus-dev/timetable-api/pkg/export"
)

// Export formats supported by the timetable export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type timetableProvider interface {
	GetTimetable(ctx context.Context) ([]dto.TimetableEntry, error)
}

// ExportFile is a rendered export ready to stream to the client.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the persisted timetable as CSV or PDF.
type ExportService struct {
	timetable timetableProvider
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(timetable timetableProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		timetable: timetable,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// Export renders the current timetable in the requested format.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	entries, err := s.timetable.GetTimetable(ctx)
	if err != nil {
		return nil, err
	}
	data := buildDataset(entries)

	switch strings.ToLower(format) {
	case ExportFormatCSV, "":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportFile{Content: content, ContentType: "text/csv", Filename: "timetable.csv"}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(data, "Weekly Timetable")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportFile{Content: content, ContentType: "application/pdf", Filename: "timetable.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func buildDataset(entries []dto.TimetableEntry) export.Dataset {
	headers := []string{"Day", "Start", "End", "Subject", "Faculty", "Room", "Sections"}
	rows := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		names := make([]string, 0, len(e.Sections))
		for _, sec := range e.Sections {
			names = append(names, sec.Name)
		}
		rows = append(rows, map[string]string{
			"Day":      e.Timeslot.Day,
			"Start":    e.Timeslot.StartTime,
			"End":      e.Timeslot.EndTime,
			"Subject":  e.SubjectName,
			"Faculty":  e.Faculty.Name,
			"Room":     e.Room.RoomNumber,
			"Sections": strings.Join(names, " + "),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
