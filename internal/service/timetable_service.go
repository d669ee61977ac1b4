package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-dev/timetable-api/internal/dto"
	"github.com/campus-dev/timetable-api/internal/models"
	"github.com/campus-dev/timetable-api/internal/scheduler"
	"github.com/campus-dev/timetable-api/pkg/config"
	appErrors "github.com/campus-dev/timetable-api/pkg/errors"
)

type facultyLister interface {
	List(ctx context.Context) ([]models.Faculty, error)
}

type roomLister interface {
	List(ctx context.Context) ([]models.Room, error)
}

type sectionLister interface {
	List(ctx context.Context) ([]models.Section, error)
}

type timeslotLister interface {
	List(ctx context.Context) ([]models.Timeslot, error)
}

type assignmentStore interface {
	DeleteAll(ctx context.Context) error
	Create(ctx context.Context, a *models.Assignment) error
	List(ctx context.Context) ([]models.Assignment, error)
}

// TimetableService runs timetable generation and serves the persisted result.
type TimetableService struct {
	faculty     facultyLister
	rooms       roomLister
	sections    sectionLister
	timeslots   timeslotLister
	assignments assignmentStore
	validator   *validator.Validate
	metrics     *MetricsService
	logger      *zap.Logger
	cfg         config.GeneratorConfig
}

// NewTimetableService constructs a TimetableService.
func NewTimetableService(
	faculty facultyLister,
	rooms roomLister,
	sections sectionLister,
	timeslots timeslotLister,
	assignments assignmentStore,
	validate *validator.Validate,
	metrics *MetricsService,
	logger *zap.Logger,
	cfg config.GeneratorConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		faculty:     faculty,
		rooms:       rooms,
		sections:    sections,
		timeslots:   timeslots,
		assignments: assignments,
		validator:   validate,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
	}
}

// normalizedRow is the validated shape of one demand row.
type normalizedRow struct {
	Subject   string `validate:"required"`
	SectionID int64  `validate:"required,min=1"`
}

type referenceSet struct {
	ref         scheduler.Reference
	facByID     map[int64]models.Faculty
	roomByID    map[int64]models.Room
	sectionByID map[int64]models.Section
	slotByID    map[int64]models.Timeslot
}

// Generate wipes the previous timetable and builds a new one from the given
// demand rows. Placements are persisted as the engine produces them; the
// response reflects only rows that actually reached the store.
func (s *TimetableService) Generate(ctx context.Context, rows []dto.LectureRequest) (*dto.GenerateTimetableResponse, error) {
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptyPayload, "no lecture requests provided")
	}

	ref, err := s.loadReference(ctx)
	if err != nil {
		return nil, err
	}

	reqs, preSkips := s.normalize(rows)

	if err := s.assignments.DeleteAll(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear previous timetable")
	}

	var created []models.Assignment
	sink := func(ctx context.Context, p scheduler.Placement) error {
		a := &models.Assignment{
			SubjectName: p.Subject,
			FacultyID:   p.FacultyID,
			RoomID:      p.RoomID,
			TimeslotID:  p.TimeslotID,
			SectionIDs:  p.SectionIDs,
		}
		if err := s.assignments.Create(ctx, a); err != nil {
			return err
		}
		created = append(created, *a)
		return nil
	}

	opts := []scheduler.Option{
		scheduler.WithSink(sink),
		scheduler.WithLogger(s.logger),
	}
	if s.cfg.MaxPasses > 0 {
		opts = append(opts, scheduler.WithMaxPasses(s.cfg.MaxPasses))
	}
	if s.cfg.CombineWindow > 0 {
		opts = append(opts, scheduler.WithCombineWindow(s.cfg.CombineWindow))
	}
	if s.cfg.RandomSeed != 0 {
		opts = append(opts, scheduler.WithSeed(s.cfg.RandomSeed))
	}

	engine := scheduler.New(ref.ref, opts...)

	start := time.Now()
	result := engine.Run(ctx, reqs)
	skips := append(preSkips, result.Skipped...)
	s.metrics.ObserveGenerationRun(time.Since(start), result.Passes, len(created), len(skips))

	s.logger.Info("timetable generated",
		zap.Int("requested_rows", len(rows)),
		zap.Int("assignments", len(created)),
		zap.Int("skipped", len(skips)),
		zap.Int("passes", result.Passes),
	)

	return &dto.GenerateTimetableResponse{
		Timetable:    buildEntries(created, ref),
		SkippedSlots: skips,
		Passes:       result.Passes,
	}, nil
}

// GetTimetable returns the persisted timetable joined with reference data.
func (s *TimetableService) GetTimetable(ctx context.Context) ([]dto.TimetableEntry, error) {
	ref, err := s.loadReference(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	return buildEntries(assignments, ref), nil
}

// normalize converts raw demand rows into engine requests. Unusable rows and
// malformed faculty ids become skip entries instead of request errors, so one
// bad row never sinks the batch.
func (s *TimetableService) normalize(rows []dto.LectureRequest) ([]scheduler.Request, []scheduler.Skip) {
	var reqs []scheduler.Request
	var skips []scheduler.Skip
	for _, row := range rows {
		for _, token := range row.FacultyIDs.Invalid {
			skips = append(skips, scheduler.Skip{
				Code:      scheduler.SkipInvalidFacultyID,
				Subject:   row.SubjectName,
				SectionID: int64(row.SectionID),
				Reason:    fmt.Sprintf("Invalid faculty ID format: %q. Skipping.", token),
			})
		}

		nr := normalizedRow{
			Subject:   strings.TrimSpace(row.SubjectName),
			SectionID: int64(row.SectionID),
		}
		if err := s.validator.Struct(nr); err != nil {
			skips = append(skips, scheduler.Skip{
				Code:      scheduler.SkipMissingSubjectMetadata,
				Subject:   row.SubjectName,
				SectionID: int64(row.SectionID),
				Reason:    "Missing subject metadata. Skipping.",
			})
			continue
		}

		reqs = append(reqs, scheduler.Request{
			Subject:    nr.Subject,
			SectionID:  nr.SectionID,
			Duration:   int(row.Duration),
			Frequency:  int(row.Frequency),
			FacultyIDs: row.FacultyIDs.IDs,
		})
	}
	return reqs, skips
}

func (s *TimetableService) loadReference(ctx context.Context) (*referenceSet, error) {
	faculty, err := s.faculty.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	sections, err := s.sections.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sections")
	}
	timeslots, err := s.timeslots.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeslots")
	}

	set := &referenceSet{
		ref: scheduler.Reference{
			Faculty:   faculty,
			Rooms:     rooms,
			Sections:  sections,
			Timeslots: timeslots,
		},
		facByID:     make(map[int64]models.Faculty, len(faculty)),
		roomByID:    make(map[int64]models.Room, len(rooms)),
		sectionByID: make(map[int64]models.Section, len(sections)),
		slotByID:    make(map[int64]models.Timeslot, len(timeslots)),
	}
	for _, f := range faculty {
		set.facByID[f.ID] = f
	}
	for _, r := range rooms {
		set.roomByID[r.ID] = r
	}
	for _, sec := range sections {
		set.sectionByID[sec.ID] = sec
	}
	for _, ts := range timeslots {
		set.slotByID[ts.ID] = ts
	}
	return set, nil
}

func buildEntries(assignments []models.Assignment, ref *referenceSet) []dto.TimetableEntry {
	entries := make([]dto.TimetableEntry, 0, len(assignments))
	for _, a := range assignments {
		entry := dto.TimetableEntry{
			ID:          a.ID,
			SubjectName: a.SubjectName,
			Combined:    a.Combined(),
			Faculty:     dto.TimetableFaculty{ID: a.FacultyID},
			Room:        dto.TimetableRoom{ID: a.RoomID},
			Timeslot:    dto.TimetableSlot{ID: a.TimeslotID},
		}
		if fac, ok := ref.facByID[a.FacultyID]; ok {
			entry.Faculty.Name = fac.Name
		}
		if room, ok := ref.roomByID[a.RoomID]; ok {
			entry.Room = dto.TimetableRoom{ID: room.ID, RoomNumber: room.RoomNumber, RoomType: room.RoomType, Capacity: room.Capacity}
		}
		if slot, ok := ref.slotByID[a.TimeslotID]; ok {
			entry.Timeslot = dto.TimetableSlot{ID: slot.ID, Day: slot.Day, StartTime: slot.StartTime, EndTime: slot.EndTime, Period: slot.Period}
		}
		for _, id := range a.SectionIDs {
			section := dto.TimetableSection{ID: id}
			if sec, ok := ref.sectionByID[id]; ok {
				section.Name = sec.Name
				section.StudentCount = sec.StudentCount
			}
			entry.Sections = append(entry.Sections, section)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Timeslot, entries[j].Timeslot
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}
