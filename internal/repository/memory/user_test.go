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

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "admin@example.com", Role: entity.UserRoleAdmin}
	require.NoError(t, repo.Create(ctx, user))

	retrieved, err := repo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleAdmin, retrieved.Role)
}

func TestUserRepository_GetByHospital(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	hospitalID := uuid.New()
	other := uuid.New()

	repo.Create(ctx, &entity.User{ID: uuid.New(), HospitalID: &hospitalID})
	repo.Create(ctx, &entity.User{ID: uuid.New(), HospitalID: &hospitalID})
	repo.Create(ctx, &entity.User{ID: uuid.New(), HospitalID: &other})

	result, err := repo.GetByHospital(ctx, hospitalID)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestUserRepository_GetByRole(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	repo.Create(ctx, &entity.User{ID: uuid.New(), Role: entity.UserRoleScheduler})
	repo.Create(ctx, &entity.User{ID: uuid.New(), Role: entity.UserRoleViewer})

	result, err := repo.GetByRole(ctx, entity.UserRoleScheduler)
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestUserRepository_SoftDelete(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	user := &entity.User{ID: uuid.New()}
	repo.Create(ctx, user)

	require.NoError(t, repo.Delete(ctx, user.ID, uuid.New()))

	_, err := repo.GetByID(ctx, user.ID)
	assert.True(t, repository.IsNotFound(err))
}
