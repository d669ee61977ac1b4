package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campus-dev/timetable-api/internal/models"
)

// FacultyRepository manages persistence for faculty members.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository constructs a FacultyRepository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// List returns all faculty ordered by id. The order matters: the generator's
// round-robin rotation walks faculty in this order.
func (r *FacultyRepository) List(ctx context.Context) ([]models.Faculty, error) {
	const query = `SELECT id, name, preferred_days FROM faculty ORDER BY id`
	var faculty []models.Faculty
	if err := r.db.SelectContext(ctx, &faculty, query); err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	return faculty, nil
}

// FindByID fetches a faculty member by id.
func (r *FacultyRepository) FindByID(ctx context.Context, id int64) (*models.Faculty, error) {
	const query = `SELECT id, name, preferred_days FROM faculty WHERE id = $1`
	var fac models.Faculty
	if err := r.db.GetContext(ctx, &fac, query, id); err != nil {
		return nil, err
	}
	return &fac, nil
}

// Create inserts a faculty record.
func (r *FacultyRepository) Create(ctx context.Context, fac *models.Faculty) error {
	const query = `INSERT INTO faculty (name, preferred_days) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &fac.ID, query, fac.Name, fac.PreferredDays); err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	return nil
}
