package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/culinary-compass/backend/internal/mocks"
	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/service"
	"github.com/culinary-compass/backend/internal/testhelpers"
	"github.com/culinary-compass/backend/internal/types"
)

func TestCatalogLoadsOnce(t *testing.T) {
	source := &mocks.MockDatasetSource{}
	source.On("LoadFoods", mock.Anything).Return(testhelpers.Foods(), nil).Once()
	source.On("LoadRecipes", mock.Anything, testhelpers.FixtureModel).Return(testhelpers.Recipes(), nil).Once()

	catalog := service.NewCatalog(source, testhelpers.FixtureModel)

	var wg sync.WaitGroup
	snaps := make([]*service.Snapshot, 16)
	for i := range snaps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := catalog.Snapshot(context.Background())
			assert.NoError(t, err)
			snaps[i] = snap
		}(i)
	}
	wg.Wait()

	for _, snap := range snaps {
		assert.Same(t, snaps[0], snap)
	}
	assert.Len(t, snaps[0].Foods, 8)
	assert.Len(t, snaps[0].Recipes, 8)
	assert.Len(t, snaps[0].VegRecipes, 5)
	assert.Equal(t, testhelpers.FixtureDimensions, snaps[0].Ingredients.Dimensions())
	source.AssertExpectations(t)
}

func TestCatalogRemembersLoadError(t *testing.T) {
	source := &mocks.MockDatasetSource{}
	source.On("LoadFoods", mock.Anything).Return(nil, errors.New("connection reset")).Once()
	source.On("LoadRecipes", mock.Anything, mock.Anything).Return(testhelpers.Recipes(), nil).Maybe()

	catalog := service.NewCatalog(source, testhelpers.FixtureModel)

	_, err := catalog.Snapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	_, again := catalog.Snapshot(context.Background())
	assert.Equal(t, err, again)
	source.AssertNumberOfCalls(t, "LoadFoods", 1)
}

func TestCatalogIgnoresCallerCancellation(t *testing.T) {
	source := &mocks.MockDatasetSource{}
	source.On("LoadFoods", mock.Anything).Return(testhelpers.Foods(), nil)
	source.On("LoadRecipes", mock.Anything, testhelpers.FixtureModel).Return(testhelpers.Recipes(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := service.NewCatalog(source, testhelpers.FixtureModel).Snapshot(ctx)
	require.NoError(t, err)
	assert.NotNil(t, snap)
}

func TestNewSnapshotRejectsInvalidRecords(t *testing.T) {
	recipes := testhelpers.Recipes()
	recipes[3].DietaryCategory = "Vegan"
	_, err := service.NewSnapshot(testhelpers.Foods(), recipes)
	assert.Error(t, err)

	foods := testhelpers.Foods()
	foods[0].MainCategory = ""
	_, err = service.NewSnapshot(foods, testhelpers.Recipes())
	assert.Error(t, err)
}

func TestSnapshotRecipesFor(t *testing.T) {
	snap := testhelpers.Snapshot()

	veg, vegIdx := snap.RecipesFor(types.PreferenceVeg)
	assert.Len(t, veg, 5)
	assert.Equal(t, 5, vegIdx.Len())
	for _, r := range veg {
		assert.Equal(t, model.DietVeg, r.DietaryCategory)
	}

	for _, pref := range []types.DietaryPreference{types.PreferenceNonVeg, types.PreferenceAny} {
		all, idx := snap.RecipesFor(pref)
		assert.Len(t, all, 8)
		assert.Equal(t, 8, idx.Len())
	}
}
