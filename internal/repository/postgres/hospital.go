package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/repository"
)

// HospitalRepository implements repository.HospitalRepository for PostgreSQL
type HospitalRepository struct {
	db Executor
}

// NewHospitalRepository creates a new HospitalRepository
func NewHospitalRepository(db Executor) *HospitalRepository {
	return &HospitalRepository{db: db}
}

// Create inserts a new hospital
func (r *HospitalRepository) Create(ctx context.Context, hospital *entity.Hospital) error {
	if hospital.ID == uuid.Nil {
		hospital.ID = uuid.New()
	}

	query := `
		INSERT INTO hospitals (id, name, code, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		hospital.ID, hospital.Name, hospital.Code, hospital.Location, hospital.CreatedAt, hospital.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}

// GetByID retrieves a hospital by ID
func (r *HospitalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Hospital, error) {
	hospital := &entity.Hospital{}

	query := `SELECT id, name, code, location, created_at, updated_at FROM hospitals WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&hospital.ID, &hospital.Name, &hospital.Code, &hospital.Location, &hospital.CreatedAt, &hospital.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Hospital", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}

	return hospital, nil
}

// GetAll retrieves every hospital.
func (r *HospitalRepository) GetAll(ctx context.Context) ([]*entity.Hospital, error) {
	query := `SELECT id, name, code, location, created_at, updated_at FROM hospitals ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query hospitals: %w", err)
	}
	defer rows.Close()

	var hospitals []*entity.Hospital
	for rows.Next() {
		h := &entity.Hospital{}
		if err := rows.Scan(&h.ID, &h.Name, &h.Code, &h.Location, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hospital: %w", err)
		}
		hospitals = append(hospitals, h)
	}

	return hospitals, rows.Err()
}

// Update updates a hospital's details.
func (r *HospitalRepository) Update(ctx context.Context, hospital *entity.Hospital) error {
	query := `
		UPDATE hospitals SET name = $2, code = $3, location = $4, updated_at = $5 WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, hospital.ID, hospital.Name, hospital.Code, hospital.Location, hospital.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update hospital: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Hospital", ResourceID: hospital.ID.String()}
	}

	return nil
}

// Delete removes a hospital.
func (r *HospitalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hospitals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hospital: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Hospital", ResourceID: id.String()}
	}

	return nil
}

// Count returns the total number of hospitals.
func (r *HospitalRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hospitals`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count hospitals: %w", err)
	}
	return count, nil
}
