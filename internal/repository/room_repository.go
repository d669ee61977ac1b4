package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campus-dev/timetable-api/internal/models"
)

// RoomRepository manages persistence for rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs a RoomRepository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns all rooms ordered by id.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	const query = `SELECT id, room_number, room_type, capacity FROM rooms ORDER BY id`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// Create inserts a room record.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	const query = `INSERT INTO rooms (room_number, room_type, capacity) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.GetContext(ctx, &room.ID, query, room.RoomNumber, room.RoomType, room.Capacity); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}
