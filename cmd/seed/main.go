package main

import (
	"context"
	"embed"
	"log"

	"github.com/gocarina/gocsv"

	"github.com/campus-dev/timetable-api/internal/models"
	"github.com/campus-dev/timetable-api/internal/repository"
	"github.com/campus-dev/timetable-api/pkg/config"
	"github.com/campus-dev/timetable-api/pkg/database"
	"github.com/campus-dev/timetable-api/pkg/logger"
)

//go:embed data/*.csv
var seedFS embed.FS

type facultyRow struct {
	Name          string `csv:"name"`
	PreferredDays string `csv:"preferred_days"`
}

type roomRow struct {
	RoomNumber string `csv:"room_number"`
	RoomType   string `csv:"room_type"`
	Capacity   int    `csv:"capacity"`
}

type sectionRow struct {
	Name         string `csv:"name"`
	StudentCount int    `csv:"student_count"`
}

type timeslotRow struct {
	Day       string `csv:"day"`
	StartTime string `csv:"start_time"`
	EndTime   string `csv:"end_time"`
	Period    string `csv:"period"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx := context.Background()
	sugar := logr.Sugar()

	// Reference tables are replaced wholesale; assignments reference them and
	// go first.
	for _, table := range []string{"assignments", "faculty", "rooms", "sections", "timeslots"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			sugar.Fatalw("failed to clear table", "table", table, "error", err)
		}
	}

	facultyRepo := repository.NewFacultyRepository(db)
	var facultyRows []facultyRow
	mustLoad("data/faculty.csv", &facultyRows)
	for _, row := range facultyRows {
		fac := &models.Faculty{Name: row.Name, PreferredDays: row.PreferredDays}
		if err := facultyRepo.Create(ctx, fac); err != nil {
			sugar.Fatalw("failed to seed faculty", "name", row.Name, "error", err)
		}
	}
	sugar.Infow("seeded faculty", "count", len(facultyRows))

	roomRepo := repository.NewRoomRepository(db)
	var roomRows []roomRow
	mustLoad("data/rooms.csv", &roomRows)
	for _, row := range roomRows {
		room := &models.Room{RoomNumber: row.RoomNumber, RoomType: row.RoomType, Capacity: row.Capacity}
		if err := roomRepo.Create(ctx, room); err != nil {
			sugar.Fatalw("failed to seed room", "room", row.RoomNumber, "error", err)
		}
	}
	sugar.Infow("seeded rooms", "count", len(roomRows))

	sectionRepo := repository.NewSectionRepository(db)
	var sectionRows []sectionRow
	mustLoad("data/sections.csv", &sectionRows)
	for _, row := range sectionRows {
		section := &models.Section{Name: row.Name, StudentCount: row.StudentCount}
		if err := sectionRepo.Create(ctx, section); err != nil {
			sugar.Fatalw("failed to seed section", "section", row.Name, "error", err)
		}
	}
	sugar.Infow("seeded sections", "count", len(sectionRows))

	timeslotRepo := repository.NewTimeslotRepository(db)
	var timeslotRows []timeslotRow
	mustLoad("data/timeslots.csv", &timeslotRows)
	for _, row := range timeslotRows {
		slot := &models.Timeslot{Day: row.Day, StartTime: row.StartTime, EndTime: row.EndTime, Period: row.Period}
		if err := timeslotRepo.Create(ctx, slot); err != nil {
			sugar.Fatalw("failed to seed timeslot", "day", row.Day, "start", row.StartTime, "error", err)
		}
	}
	sugar.Infow("seeded timeslots", "count", len(timeslotRows))
}

func mustLoad(name string, out interface{}) {
	data, err := seedFS.ReadFile(name)
	if err != nil {
		log.Fatalf("failed to read seed file %s: %v", name, err)
	}
	if err := gocsv.UnmarshalBytes(data, out); err != nil {
		log.Fatalf("failed to parse seed file %s: %v", name, err)
	}
}
