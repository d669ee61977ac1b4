package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campus-dev/timetable-api/internal/models"
)

// AssignmentRepository manages persistence for generated timetable
// assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// DeleteAll wipes the previous timetable. Every generation run starts from a
// clean table.
func (r *AssignmentRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments`); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}
	return nil
}

// Create inserts one assignment row and fills in its generated id.
func (r *AssignmentRepository) Create(ctx context.Context, a *models.Assignment) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO assignments (subject_name, faculty_id, room_id, timeslot_id, section_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.GetContext(ctx, &a.ID, query,
		a.SubjectName, a.FacultyID, a.RoomID, a.TimeslotID, pq.Array(a.SectionIDs), a.CreatedAt,
	); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// List returns the persisted timetable ordered by timeslot then id.
func (r *AssignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	const query = `SELECT id, subject_name, faculty_id, room_id, timeslot_id, section_ids, created_at
		FROM assignments ORDER BY timeslot_id, id`
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}
