package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/repository"
)

// RoomRepository implements repository.RoomRepository for PostgreSQL
type RoomRepository struct {
	db Executor
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db Executor) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a new room availability row.
func (r *RoomRepository) Create(ctx context.Context, room *entity.Room) error {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}

	query := `
		INSERT INTO rooms (id, hospital_id, name, opening_time, closing_time, capabilities, scheduling_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		room.ID, room.HospitalID, room.Name, room.OpeningTime, room.ClosingTime,
		pq.Array(room.Capabilities), room.SchedulingDate, room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// GetByID retrieves a room by ID.
func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	room := &entity.Room{}

	query := `
		SELECT id, hospital_id, name, opening_time, closing_time, capabilities, scheduling_date, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&room.ID, &room.HospitalID, &room.Name, &room.OpeningTime, &room.ClosingTime,
		pq.Array(&room.Capabilities), &room.SchedulingDate, &room.CreatedAt, &room.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Room", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

// GetByHospitalAndDate retrieves all rooms available for a hospital on a scheduling date.
func (r *RoomRepository) GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.Room, error) {
	query := `
		SELECT id, hospital_id, name, opening_time, closing_time, capabilities, scheduling_date, created_at, updated_at
		FROM rooms
		WHERE hospital_id = $1 AND scheduling_date = $2
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, hospitalID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		room := &entity.Room{}
		if err := rows.Scan(
			&room.ID, &room.HospitalID, &room.Name, &room.OpeningTime, &room.ClosingTime,
			pq.Array(&room.Capabilities), &room.SchedulingDate, &room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// Update updates a room's daily availability.
func (r *RoomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET name = $2, opening_time = $3, closing_time = $4, capabilities = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		room.ID, room.Name, room.OpeningTime, room.ClosingTime, pq.Array(room.Capabilities), room.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Room", ResourceID: room.ID.String()}
	}

	return nil
}

// Delete removes a room's daily availability row.
func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Room", ResourceID: id.String()}
	}

	return nil
}

// Count returns the total number of rooms.
func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}
