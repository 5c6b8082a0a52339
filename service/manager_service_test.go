package service

import (
	"context"
	"testing"
	"time"

	"featuretoggle/test"
	"featuretoggle/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExpiration = 10 * time.Minute

var listBounds = Bounds{Default: 10, Min: 1, Max: 100}

func newManagerFixture() (FeatureManager, *test.MemoryFeatureRepository, *test.MemoryCache) {
	repo := test.NewMemoryFeatureRepository()
	memCache := test.NewMemoryCache()
	manager := NewFeatureManager(repo, memCache, testExpiration, listBounds, test.GetTestLogger())
	return manager, repo, memCache
}

func createFeature(t *testing.T, manager FeatureManager, name string, active bool) FeatureResponse {
	t.Helper()
	response, err := manager.CreateFeature(context.Background(), validator.FeatureRequest{
		Name:   name,
		Active: active,
	})
	require.NoError(t, err)
	return response
}

func TestFeatureManager_CreateFeature(t *testing.T) {
	manager, _, _ := newManagerFixture()

	t.Run("derives the slug from the name", func(t *testing.T) {
		response, err := manager.CreateFeature(context.Background(), validator.FeatureRequest{
			Name:        "New Checkout",
			Description: "New checkout experience",
			Tags:        []string{"Checkout", "  Experiment ", "checkout"},
			Active:      true,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, response.ID)
		assert.Equal(t, "new-checkout", response.Feature)
		assert.Equal(t, "New Checkout", response.Name)
		assert.Equal(t, []string{"#checkout", "#experiment"}, response.Tags)
		assert.True(t, response.Active)
	})

	t.Run("duplicate slug is a conflict", func(t *testing.T) {
		_, err := manager.CreateFeature(context.Background(), validator.FeatureRequest{
			Name: "New Checkout",
		})
		assert.ErrorIs(t, err, ErrFeatureAlreadyExists)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		_, err := manager.CreateFeature(context.Background(), validator.FeatureRequest{
			Name: "",
		})
		assert.Error(t, err)
	})
}

func TestFeatureManager_GetFeature(t *testing.T) {
	t.Run("populates the object cache on first read", func(t *testing.T) {
		manager, _, memCache := newManagerFixture()
		created := createFeature(t, manager, "Dark Mode", true)

		id := uuid.MustParse(created.ID)
		response, err := manager.GetFeature(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, created, response)

		cached, err := memCache.Get(context.Background(), "feature:"+created.ID)
		require.NoError(t, err)
		assert.Contains(t, cached, "dark-mode")
	})

	t.Run("serves the cached entry on later reads", func(t *testing.T) {
		manager, repo, _ := newManagerFixture()
		created := createFeature(t, manager, "Beta Dashboard", false)
		id := uuid.MustParse(created.ID)

		_, err := manager.GetFeature(context.Background(), id)
		require.NoError(t, err)

		// Mutate the store behind the cache; the cached entry stays
		// authoritative until it expires.
		stored, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		stored.Name = "Renamed Behind Cache"
		_, err = repo.ReplaceFields(context.Background(), stored)
		require.NoError(t, err)

		response, err := manager.GetFeature(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Beta Dashboard", response.Name)
	})

	t.Run("unknown id yields the empty shape, not an error", func(t *testing.T) {
		manager, _, memCache := newManagerFixture()

		response, err := manager.GetFeature(context.Background(), uuid.New())

		require.NoError(t, err)
		assert.Equal(t, FeatureResponse{}, response)
		assert.Zero(t, memCache.Len(), "a miss must not populate the cache")
	})
}

func TestFeatureManager_GetFeatures(t *testing.T) {
	manager, _, _ := newManagerFixture()
	createFeature(t, manager, "Notifications", true)
	createFeature(t, manager, "Export CSV", false)

	responses, err := manager.GetFeatures(context.Background())

	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "notifications", responses[0].Feature)
	assert.Equal(t, "export-csv", responses[1].Feature)
}

func TestFeatureManager_GetPagedFeatures(t *testing.T) {
	manager, _, _ := newManagerFixture()
	for i := 0; i < 13; i++ {
		createFeature(t, manager, "Feature "+string(rune('A'+i)), i%2 == 0)
	}

	t.Run("middle page of thirteen records", func(t *testing.T) {
		query := NewFeatureQuery(Bounds{Default: 6, Min: 1, Max: 6})
		query.SetPage(2)

		response, err := manager.GetPagedFeatures(context.Background(), query)

		require.NoError(t, err)
		assert.Len(t, response.Items, 6)
		assert.Equal(t, int64(13), response.TotalRecords)
		assert.Equal(t, 3, response.TotalPages)
		assert.Equal(t, 2, response.Page)
		assert.Equal(t, 6, response.Quantity)
		require.NotNil(t, response.PreviousPage)
		assert.Equal(t, 1, *response.PreviousPage)
		require.NotNil(t, response.NextPage)
		assert.Equal(t, 3, *response.NextPage)
	})

	t.Run("last page is short and has no next", func(t *testing.T) {
		query := NewFeatureQuery(Bounds{Default: 6, Min: 1, Max: 6})
		query.SetPage(3)

		response, err := manager.GetPagedFeatures(context.Background(), query)

		require.NoError(t, err)
		assert.Len(t, response.Items, 1)
		assert.Nil(t, response.NextPage)
	})

	t.Run("filter and search apply as a conjunction", func(t *testing.T) {
		query := NewFeatureQuery(Bounds{Default: 6, Min: 1, Max: 6})
		query.SetFilter("active")
		query.SetSearch("feature a")

		response, err := manager.GetPagedFeatures(context.Background(), query)

		require.NoError(t, err)
		require.Len(t, response.Items, 1)
		assert.Equal(t, "Feature A", response.Items[0].Name)
		assert.True(t, response.Items[0].Active)
	})
}

func TestFeatureManager_GetPagedFeaturesByStatus(t *testing.T) {
	manager, _, _ := newManagerFixture()
	for i := 0; i < 12; i++ {
		createFeature(t, manager, "Toggle "+string(rune('A'+i)), i < 8)
	}

	t.Run("defaults to ten per page", func(t *testing.T) {
		response, err := manager.GetPagedFeaturesByStatus(context.Background(), validator.PaginationRequest{})

		require.NoError(t, err)
		assert.Len(t, response.Items, 10)
		assert.Equal(t, 10, response.Quantity)
		assert.Equal(t, int64(12), response.TotalRecords)
	})

	t.Run("only active narrows the listing", func(t *testing.T) {
		response, err := manager.GetPagedFeaturesByStatus(context.Background(), validator.PaginationRequest{
			OnlyActive: true,
		})

		require.NoError(t, err)
		assert.Len(t, response.Items, 8)
		assert.Equal(t, int64(8), response.TotalRecords)
	})
}

func TestFeatureManager_UpdateFeature(t *testing.T) {
	t.Run("blank name keeps the stored value", func(t *testing.T) {
		manager, _, _ := newManagerFixture()
		created, err := manager.CreateFeature(context.Background(), validator.FeatureRequest{
			Name:        "Payment Gateway",
			Description: "Old Desc",
			Tags:        []string{"payment"},
			Active:      true,
		})
		require.NoError(t, err)

		response, err := manager.UpdateFeature(context.Background(), uuid.MustParse(created.ID), validator.FeatureRequest{
			Name:        "",
			Description: "New Desc",
			Tags:        []string{},
			Active:      false,
		})

		require.NoError(t, err)
		assert.Equal(t, "Payment Gateway", response.Name)
		assert.Equal(t, "New Desc", response.Description)
		assert.Empty(t, response.Tags)
		assert.False(t, response.Active)
		// The slug never changes after creation.
		assert.Equal(t, "payment-gateway", response.Feature)
	})

	t.Run("incoming tags are normalized", func(t *testing.T) {
		manager, _, _ := newManagerFixture()
		created := createFeature(t, manager, "Audit Logs", true)

		response, err := manager.UpdateFeature(context.Background(), uuid.MustParse(created.ID), validator.FeatureRequest{
			Tags: []string{"Security", "security", "Logs"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"#security", "#logs"}, response.Tags)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		manager, _, _ := newManagerFixture()

		_, err := manager.UpdateFeature(context.Background(), uuid.New(), validator.FeatureRequest{
			Description: "does not matter",
		})

		assert.ErrorIs(t, err, ErrFeatureNotFound)
	})
}

func TestFeatureManager_DeleteFeature(t *testing.T) {
	t.Run("returns the deleted record", func(t *testing.T) {
		manager, repo, _ := newManagerFixture()
		created := createFeature(t, manager, "API Access", false)

		response, err := manager.DeleteFeature(context.Background(), uuid.MustParse(created.ID))

		require.NoError(t, err)
		assert.Equal(t, created, response)

		total, err := repo.CountFiltered(context.Background(), "all", "")
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("unknown id yields the empty shape, not an error", func(t *testing.T) {
		manager, _, _ := newManagerFixture()

		response, err := manager.DeleteFeature(context.Background(), uuid.New())

		require.NoError(t, err)
		assert.Equal(t, FeatureResponse{}, response)
	})
}
