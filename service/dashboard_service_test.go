package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"featuretoggle/apperror"
	"featuretoggle/repository"
	"featuretoggle/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureDashboard_GetDashboard(t *testing.T) {
	t.Run("aggregates active and inactive counts", func(t *testing.T) {
		repo := test.NewMemoryFeatureRepository()
		for i := 0; i < 10; i++ {
			insertFeature(t, repo, fmt.Sprintf("Feature %d", i), i < 6)
		}
		dashboard := NewFeatureDashboard(repo, test.GetTestLogger())

		response, err := dashboard.GetDashboard(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 6, response.TotalActives)
		assert.Equal(t, 4, response.TotalInactives)
		assert.Equal(t, 10, response.TotalFeatures)
	})

	t.Run("empty collection aggregates to zeroes", func(t *testing.T) {
		dashboard := NewFeatureDashboard(test.NewMemoryFeatureRepository(), test.GetTestLogger())

		response, err := dashboard.GetDashboard(context.Background())

		require.NoError(t, err)
		assert.Equal(t, DashboardResponse{}, response)
	})

	t.Run("persistence failure surfaces as a fatal envelope", func(t *testing.T) {
		cause := errors.New("connection reset")
		dashboard := NewFeatureDashboard(&failingRepository{err: cause}, test.GetTestLogger())

		_, err := dashboard.GetDashboard(context.Background())

		require.Error(t, err)
		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.TypeFatal, appErr.Type)
		assert.Equal(t, "Feature Dashboard", appErr.Title)
		assert.ErrorIs(t, err, cause)
	})
}

// failingRepository fails AggregateStatus and is otherwise unused.
type failingRepository struct {
	repository.FeatureRepository
	err error
}

func (r *failingRepository) AggregateStatus(context.Context) (repository.StatusAggregate, error) {
	return repository.StatusAggregate{}, r.err
}
