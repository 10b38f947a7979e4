package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/culinary-compass/backend/internal/database"
	"github.com/culinary-compass/backend/internal/errs"
	"github.com/culinary-compass/backend/internal/mocks"
	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/service"
	"github.com/culinary-compass/backend/internal/testhelpers"
	"github.com/culinary-compass/backend/internal/types"
)

func TestHistoryServiceSave(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("derives bmi", func(t *testing.T) {
		store := &mocks.MockHistoryStore{}
		store.On("Create", mock.Anything, mock.MatchedBy(func(e *model.HistoryEntry) bool {
			return e.UserID == userID && e.BMI == 22.86 && e.Name == "Asha"
		})).Return(nil)

		entry, err := service.NewHistoryService(store).Save(ctx, userID, &types.SaveHistoryRequest{
			Name:         "Asha",
			Weight:       70,
			Height:       1.75,
			Deficiencies: []string{"iron"},
		})
		require.NoError(t, err)
		assert.Equal(t, service.BMICategory(22.86), entry.BMICategory)
		assert.Equal(t, model.JSONBStringArray{"iron"}, entry.Deficiencies)
		store.AssertExpectations(t)
	})

	t.Run("keeps supplied bmi", func(t *testing.T) {
		store := &mocks.MockHistoryStore{}
		store.On("Create", mock.Anything, mock.Anything).Return(nil)

		bmi := 31.0
		entry, err := service.NewHistoryService(store).Save(ctx, userID, &types.SaveHistoryRequest{
			Name: "Ravi", Weight: 90, Height: 1.8, BMI: &bmi, BMICategory: "custom",
		})
		require.NoError(t, err)
		assert.Equal(t, 31.0, entry.BMI)
		assert.Equal(t, "custom", entry.BMICategory)
	})

	t.Run("invalid measurements", func(t *testing.T) {
		store := &mocks.MockHistoryStore{}
		_, err := service.NewHistoryService(store).Save(ctx, userID, &types.SaveHistoryRequest{Name: "x", Weight: 70})
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mocks.MockHistoryStore{}
		store.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))
		_, err := service.NewHistoryService(store).Save(ctx, userID, &types.SaveHistoryRequest{Name: "x", Weight: 70, Height: 1.7})
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestHistoryServiceListWithRepository(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewHistoryService(database.NewHistoryRepository(db))
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Save(ctx, userID, &types.SaveHistoryRequest{Name: "Asha", Weight: 55, Height: 1.6})
	require.NoError(t, err)

	entries, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 21.48, entries[0].BMI)

	entries, err = svc.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
