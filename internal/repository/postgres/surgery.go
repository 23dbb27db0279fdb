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

// SurgeryRepository implements repository.SurgeryRepository for PostgreSQL
type SurgeryRepository struct {
	db Executor
}

// NewSurgeryRepository creates a new SurgeryRepository
func NewSurgeryRepository(db Executor) *SurgeryRepository {
	return &SurgeryRepository{db: db}
}

// Create inserts a new pending surgery
func (r *SurgeryRepository) Create(ctx context.Context, s *entity.Surgery) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	query := `
		INSERT INTO surgeries
		(id, hospital_id, type_id, duration_minutes, surgeon_id, required_equipment, urgency,
		 earliest_start, latest_finish, urgency_deadline, scheduling_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.HospitalID, s.TypeID, s.DurationMinutes, s.SurgeonID,
		pq.Array(s.RequiredEquipment), s.Urgency,
		s.EarliestStart, s.LatestFinish, s.UrgencyDeadline,
		s.SchedulingDate, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create surgery: %w", err)
	}
	return nil
}

// CreateBatch inserts multiple surgeries in one transaction, as the
// case-list importer does. When r.db is already a *sql.Tx (this
// repository was obtained from an open Transaction), the insert just
// joins that transaction instead of opening a nested one.
func (r *SurgeryRepository) CreateBatch(ctx context.Context, surgeries []*entity.Surgery) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return r.insertBatch(ctx, r.db, surgeries)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch insert: %w", err)
	}
	defer tx.Rollback()

	if err := r.insertBatch(ctx, tx, surgeries); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SurgeryRepository) insertBatch(ctx context.Context, exec Executor, surgeries []*entity.Surgery) error {
	stmt, err := exec.PrepareContext(ctx, `
		INSERT INTO surgeries
		(id, hospital_id, type_id, duration_minutes, surgeon_id, required_equipment, urgency,
		 earliest_start, latest_finish, urgency_deadline, scheduling_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range surgeries {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		if _, err := stmt.ExecContext(ctx,
			s.ID, s.HospitalID, s.TypeID, s.DurationMinutes, s.SurgeonID,
			pq.Array(s.RequiredEquipment), s.Urgency,
			s.EarliestStart, s.LatestFinish, s.UrgencyDeadline,
			s.SchedulingDate, s.CreatedAt, s.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert surgery %s: %w", s.ID, err)
		}
	}

	return nil
}

// GetByID retrieves a pending surgery by ID
func (r *SurgeryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Surgery, error) {
	s := &entity.Surgery{}

	query := `
		SELECT id, hospital_id, type_id, duration_minutes, surgeon_id, required_equipment, urgency,
		       earliest_start, latest_finish, urgency_deadline, scheduling_date, created_at, updated_at, deleted_at
		FROM surgeries
		WHERE id = $1 AND deleted_at IS NULL
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.HospitalID, &s.TypeID, &s.DurationMinutes, &s.SurgeonID,
		pq.Array(&s.RequiredEquipment), &s.Urgency,
		&s.EarliestStart, &s.LatestFinish, &s.UrgencyDeadline,
		&s.SchedulingDate, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Surgery", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get surgery: %w", err)
	}

	return s, nil
}

// GetByHospitalAndDate retrieves all pending surgeries for a hospital's scheduling date.
func (r *SurgeryRepository) GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.Surgery, error) {
	query := `
		SELECT id, hospital_id, type_id, duration_minutes, surgeon_id, required_equipment, urgency,
		       earliest_start, latest_finish, urgency_deadline, scheduling_date, created_at, updated_at, deleted_at
		FROM surgeries
		WHERE hospital_id = $1 AND scheduling_date = $2 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, hospitalID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query surgeries: %w", err)
	}
	defer rows.Close()

	var surgeries []*entity.Surgery
	for rows.Next() {
		s := &entity.Surgery{}
		if err := rows.Scan(
			&s.ID, &s.HospitalID, &s.TypeID, &s.DurationMinutes, &s.SurgeonID,
			pq.Array(&s.RequiredEquipment), &s.Urgency,
			&s.EarliestStart, &s.LatestFinish, &s.UrgencyDeadline,
			&s.SchedulingDate, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan surgery: %w", err)
		}
		surgeries = append(surgeries, s)
	}

	return surgeries, rows.Err()
}

// Update updates an existing surgery.
func (r *SurgeryRepository) Update(ctx context.Context, s *entity.Surgery) error {
	query := `
		UPDATE surgeries
		SET type_id = $2, duration_minutes = $3, surgeon_id = $4, required_equipment = $5,
		    urgency = $6, earliest_start = $7, latest_finish = $8, urgency_deadline = $9,
		    updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		s.ID, s.TypeID, s.DurationMinutes, s.SurgeonID, pq.Array(s.RequiredEquipment),
		s.Urgency, s.EarliestStart, s.LatestFinish, s.UrgencyDeadline, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update surgery: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Surgery", ResourceID: s.ID.String()}
	}

	return nil
}

// Delete marks a surgery as deleted.
func (r *SurgeryRepository) Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error {
	query := `
		UPDATE surgeries
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete surgery: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Surgery", ResourceID: id.String()}
	}

	return nil
}

// Count returns the count of active surgeries.
func (r *SurgeryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM surgeries WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count surgeries: %w", err)
	}
	return count, nil
}
