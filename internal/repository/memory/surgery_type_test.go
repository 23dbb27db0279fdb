package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/repository"
)

func TestSurgeryTypeRepository_CreateAndGetByCode(t *testing.T) {
	repo := NewSurgeryTypeRepository()
	ctx := context.Background()
	hospitalID := uuid.New()

	st := &entity.SurgeryType{ID: uuid.New(), HospitalID: hospitalID, Code: "ortho", Label: "Orthopedic"}
	require.NoError(t, repo.Create(ctx, st))

	retrieved, err := repo.GetByCode(ctx, hospitalID, "ortho")
	require.NoError(t, err)
	assert.Equal(t, "Orthopedic", retrieved.Label)
}

func TestSurgeryTypeRepository_GetByHospital(t *testing.T) {
	repo := NewSurgeryTypeRepository()
	ctx := context.Background()
	hospitalA := uuid.New()
	hospitalB := uuid.New()

	repo.Create(ctx, &entity.SurgeryType{ID: uuid.New(), HospitalID: hospitalA, Code: "ortho"})
	repo.Create(ctx, &entity.SurgeryType{ID: uuid.New(), HospitalID: hospitalA, Code: "neuro"})
	repo.Create(ctx, &entity.SurgeryType{ID: uuid.New(), HospitalID: hospitalB, Code: "ortho"})

	result, err := repo.GetByHospital(ctx, hospitalA)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestSurgeryTypeRepository_Delete(t *testing.T) {
	repo := NewSurgeryTypeRepository()
	ctx := context.Background()
	st := &entity.SurgeryType{ID: uuid.New(), HospitalID: uuid.New(), Code: "ortho"}
	repo.Create(ctx, st)

	require.NoError(t, repo.Delete(ctx, st.ID))

	_, err := repo.GetByID(ctx, st.ID)
	assert.True(t, repository.IsNotFound(err))
}

func TestSDSTRepository_UpsertAndGetByHospital(t *testing.T) {
	repo := NewSDSTRepository()
	ctx := context.Background()
	hospitalID := uuid.New()

	entry := &entity.SDSTEntry{HospitalID: hospitalID, FromType: "ortho", ToType: "neuro", Minutes: 30}
	require.NoError(t, repo.Upsert(ctx, entry))

	result, err := repo.GetByHospital(ctx, hospitalID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 30, result[0].Minutes)
}

func TestSDSTRepository_UpsertReplacesExisting(t *testing.T) {
	repo := NewSDSTRepository()
	ctx := context.Background()
	hospitalID := uuid.New()

	repo.Upsert(ctx, &entity.SDSTEntry{HospitalID: hospitalID, FromType: "ortho", ToType: "neuro", Minutes: 30})
	repo.Upsert(ctx, &entity.SDSTEntry{HospitalID: hospitalID, FromType: "ortho", ToType: "neuro", Minutes: 45})

	result, err := repo.GetByHospital(ctx, hospitalID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 45, result[0].Minutes)
}

func TestSDSTRepository_DeleteByHospital(t *testing.T) {
	repo := NewSDSTRepository()
	ctx := context.Background()
	hospitalID := uuid.New()

	repo.Upsert(ctx, &entity.SDSTEntry{HospitalID: hospitalID, FromType: "ortho", ToType: "neuro", Minutes: 30})
	repo.Upsert(ctx, &entity.SDSTEntry{HospitalID: hospitalID, FromType: "neuro", ToType: "ortho", Minutes: 20})

	require.NoError(t, repo.DeleteByHospital(ctx, hospitalID))

	result, err := repo.GetByHospital(ctx, hospitalID)
	require.NoError(t, err)
	assert.Empty(t, result)
}
