package test

import (
	"context"
	"testing"

	"featuretoggle/entity"
	"featuretoggle/repository"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepository_InsertAndGet(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Close()
	tdb.CleanTables(t)

	repo := repository.NewFeatureRepository(tdb.DB)
	ctx := context.Background()

	inserted, err := repo.Insert(ctx, &entity.Feature{
		Feature:     "dark-mode",
		Name:        "Dark Mode",
		Description: "Dark theme",
		Tags:        pq.StringArray{"#ui"},
		Active:      true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, inserted.ID)
	assert.False(t, inserted.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dark Mode", byID.Name)
	assert.Equal(t, pq.StringArray{"#ui"}, byID.Tags)

	bySlug, err := repo.GetBySlug(ctx, "dark-mode")
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, bySlug.ID)

	// The slug carries the uniqueness constraint.
	_, err = repo.Insert(ctx, &entity.Feature{
		Feature: "dark-mode",
		Name:    "Dark Mode",
	})
	assert.ErrorIs(t, err, repository.ErrFeatureAlreadyExists)
}

func TestPostgresRepository_FilterAndPaginate(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Close()
	tdb.CleanTables(t)

	repo := repository.NewFeatureRepository(tdb.DB)
	ctx := context.Background()

	names := []string{
		"User Registration", "Dark Mode", "Beta Dashboard",
		"Notifications", "Audit Logs", "API Access", "Webhooks",
	}
	for i, name := range names {
		_, err := repo.Insert(ctx, &entity.Feature{
			Feature: entity.Slug(name),
			Name:    name,
			Active:  i%2 == 0,
		})
		require.NoError(t, err)
	}

	total, err := repo.CountFiltered(ctx, entity.FilterAll, "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)

	actives, err := repo.CountFiltered(ctx, entity.FilterActive, "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), actives)

	page, err := repo.ListFiltered(ctx, entity.FilterAll, "", 2, 3)
	require.NoError(t, err)
	assert.Len(t, page, 3)

	// Case-insensitive search composes with the status filter.
	matched, err := repo.ListFiltered(ctx, entity.FilterActive, "dash", 1, 10)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Beta Dashboard", matched[0].Name)

	agg, err := repo.AggregateStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, agg.TotalActives)
	assert.Equal(t, 3, agg.TotalInactives)
	assert.Equal(t, 7, agg.TotalFeatures)
}

func TestPostgresRepository_ReplaceAndDelete(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Close()
	tdb.CleanTables(t)

	repo := repository.NewFeatureRepository(tdb.DB)
	ctx := context.Background()

	inserted, err := repo.Insert(ctx, &entity.Feature{
		Feature: "dark-mode",
		Name:    "Dark Mode",
		Active:  false,
	})
	require.NoError(t, err)

	inserted.Description = "Dark theme"
	inserted.Tags = pq.StringArray{"#ui", "#theme"}
	inserted.Active = true
	updated, err := repo.ReplaceFields(ctx, inserted)
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Equal(t, pq.StringArray{"#ui", "#theme"}, updated.Tags)
	assert.False(t, updated.UpdatedAt.IsZero())

	deleted, err := repo.Delete(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, deleted.ID)

	_, err = repo.GetByID(ctx, inserted.ID)
	assert.ErrorIs(t, err, repository.ErrFeatureNotFound)

	_, err = repo.Delete(ctx, inserted.ID)
	assert.ErrorIs(t, err, repository.ErrFeatureNotFound)
}
