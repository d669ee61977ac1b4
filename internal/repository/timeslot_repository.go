package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campus-dev/timetable-api/internal/models"
)

// TimeslotRepository manages persistence for the weekly timeslot grid.
type TimeslotRepository struct {
	db *sqlx.DB
}

// NewTimeslotRepository constructs a TimeslotRepository.
func NewTimeslotRepository(db *sqlx.DB) *TimeslotRepository {
	return &TimeslotRepository{db: db}
}

// List returns all timeslots ordered chronologically within each day.
func (r *TimeslotRepository) List(ctx context.Context) ([]models.Timeslot, error) {
	const query = `SELECT id, day, start_time, end_time, period FROM timeslots ORDER BY day, start_time`
	var slots []models.Timeslot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list timeslots: %w", err)
	}
	return slots, nil
}

// Create inserts a timeslot record.
func (r *TimeslotRepository) Create(ctx context.Context, slot *models.Timeslot) error {
	const query = `INSERT INTO timeslots (day, start_time, end_time, period) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &slot.ID, query, slot.Day, slot.StartTime, slot.EndTime, slot.Period); err != nil {
		return fmt.Errorf("create timeslot: %w", err)
	}
	return nil
}
