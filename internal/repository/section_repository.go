package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campus-dev/timetable-api/internal/models"
)

// SectionRepository manages persistence for student sections.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository constructs a SectionRepository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// List returns all sections ordered by id, the ordering the combiner's
// locality window is defined over.
func (r *SectionRepository) List(ctx context.Context) ([]models.Section, error) {
	const query = `SELECT id, name, student_count FROM sections ORDER BY id`
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// Create inserts a section record.
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	const query = `INSERT INTO sections (name, student_count) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &section.ID, query, section.Name, section.StudentCount); err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	return nil
}
