package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"car-damage-bot/internal/domain/entity"
	"car-damage-bot/internal/infrastructure/storage"
)

func TestUserService_BeginCheckAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetCarType(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.AwaitCarType(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingCarType, user.State)

	user, err = svc.SetCarType(ctx, 2, 20, "  Toyota Fortuner SUV ")
	require.NoError(t, err)
	require.Equal(t, "Toyota Fortuner SUV", user.CarType)
	require.Equal(t, entity.StateMainMenu, user.State)

	stored, err := svc.Get(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, "Toyota Fortuner SUV", stored.CarType)
}
