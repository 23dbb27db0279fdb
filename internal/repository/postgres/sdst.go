package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/schedcu/orsched/internal/entity"
)

// SDSTRepository implements repository.SDSTRepository for PostgreSQL. A
// hospital's setup-time matrix is small and dense enough to load wholesale
// rather than row-by-row, mirroring how surgery_types are loaded.
type SDSTRepository struct {
	db Executor
}

// NewSDSTRepository creates a new SDSTRepository
func NewSDSTRepository(db Executor) *SDSTRepository {
	return &SDSTRepository{db: db}
}

// Upsert inserts or replaces the setup-time entry for a (from, to) type pair.
func (r *SDSTRepository) Upsert(ctx context.Context, entry *entity.SDSTEntry) error {
	query := `
		INSERT INTO sdst_matrix (hospital_id, from_type, to_type, minutes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (hospital_id, from_type, to_type)
		DO UPDATE SET minutes = EXCLUDED.minutes
	`

	_, err := r.db.ExecContext(ctx, query, entry.HospitalID, entry.FromType, entry.ToType, entry.Minutes)
	if err != nil {
		return fmt.Errorf("failed to upsert SDST entry: %w", err)
	}
	return nil
}

// GetByHospital retrieves the full setup-time matrix for a hospital.
func (r *SDSTRepository) GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.SDSTEntry, error) {
	query := `
		SELECT hospital_id, from_type, to_type, minutes
		FROM sdst_matrix
		WHERE hospital_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query SDST matrix: %w", err)
	}
	defer rows.Close()

	var entries []*entity.SDSTEntry
	for rows.Next() {
		e := &entity.SDSTEntry{}
		if err := rows.Scan(&e.HospitalID, &e.FromType, &e.ToType, &e.Minutes); err != nil {
			return nil, fmt.Errorf("failed to scan SDST entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// DeleteByHospital clears a hospital's setup-time matrix, used before a full re-import.
func (r *SDSTRepository) DeleteByHospital(ctx context.Context, hospitalID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sdst_matrix WHERE hospital_id = $1`, hospitalID)
	if err != nil {
		return fmt.Errorf("failed to delete SDST matrix: %w", err)
	}
	return nil
}

// SurgeryTypeRepository implements repository.SurgeryTypeRepository for PostgreSQL.
type SurgeryTypeRepository struct {
	db Executor
}

// NewSurgeryTypeRepository creates a new SurgeryTypeRepository
func NewSurgeryTypeRepository(db Executor) *SurgeryTypeRepository {
	return &SurgeryTypeRepository{db: db}
}

// Create inserts a new surgery type into a hospital's catalog.
func (r *SurgeryTypeRepository) Create(ctx context.Context, st *entity.SurgeryType) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO surgery_types (id, hospital_id, code, label) VALUES ($1, $2, $3, $4)`,
		st.ID, st.HospitalID, st.Code, st.Label,
	)
	if err != nil {
		return fmt.Errorf("failed to create surgery type: %w", err)
	}
	return nil
}

// GetByID retrieves a surgery type by ID.
func (r *SurgeryTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SurgeryType, error) {
	st := &entity.SurgeryType{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, hospital_id, code, label FROM surgery_types WHERE id = $1`, id,
	).Scan(&st.ID, &st.HospitalID, &st.Code, &st.Label)
	if err != nil {
		return nil, fmt.Errorf("failed to get surgery type: %w", err)
	}
	return st, nil
}

// GetByHospital retrieves the full surgery type catalog for a hospital.
func (r *SurgeryTypeRepository) GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.SurgeryType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, hospital_id, code, label FROM surgery_types WHERE hospital_id = $1 ORDER BY code ASC`, hospitalID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query surgery types: %w", err)
	}
	defer rows.Close()

	var types []*entity.SurgeryType
	for rows.Next() {
		st := &entity.SurgeryType{}
		if err := rows.Scan(&st.ID, &st.HospitalID, &st.Code, &st.Label); err != nil {
			return nil, fmt.Errorf("failed to scan surgery type: %w", err)
		}
		types = append(types, st)
	}
	return types, rows.Err()
}

// GetByCode looks up a surgery type by its hospital-scoped code.
func (r *SurgeryTypeRepository) GetByCode(ctx context.Context, hospitalID uuid.UUID, code string) (*entity.SurgeryType, error) {
	st := &entity.SurgeryType{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, hospital_id, code, label FROM surgery_types WHERE hospital_id = $1 AND code = $2`,
		hospitalID, code,
	).Scan(&st.ID, &st.HospitalID, &st.Code, &st.Label)
	if err != nil {
		return nil, fmt.Errorf("failed to get surgery type by code: %w", err)
	}
	return st, nil
}

// Update updates a surgery type's label.
func (r *SurgeryTypeRepository) Update(ctx context.Context, st *entity.SurgeryType) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE surgery_types SET code = $2, label = $3 WHERE id = $1`, st.ID, st.Code, st.Label,
	)
	if err != nil {
		return fmt.Errorf("failed to update surgery type: %w", err)
	}
	return nil
}

// Delete removes a surgery type from the catalog.
func (r *SurgeryTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM surgery_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete surgery type: %w", err)
	}
	return nil
}
