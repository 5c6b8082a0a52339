package service

import (
	"context"

	"featuretoggle/apperror"
	"featuretoggle/pkg/logger"
	"featuretoggle/repository"
)

// FeatureDashboard derives aggregate counts from the persistence layer.
// Always live; no caching.
type FeatureDashboard interface {
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}

type featureDashboard struct {
	repo   repository.FeatureRepository
	logger *logger.Logger
}

func NewFeatureDashboard(repo repository.FeatureRepository, log *logger.Logger) FeatureDashboard {
	return &featureDashboard{repo: repo, logger: log}
}

func (s *featureDashboard) GetDashboard(ctx context.Context) (DashboardResponse, error) {
	agg, err := s.repo.AggregateStatus(ctx)
	if err != nil {
		s.logger.Errorw("Failed to aggregate feature status", "error", err)
		return DashboardResponse{}, apperror.Fatal("Feature Dashboard", "Error on get feature dashboard.").Wrap(err)
	}

	return DashboardResponse{
		TotalActives:   agg.TotalActives,
		TotalInactives: agg.TotalInactives,
		TotalFeatures:  agg.TotalFeatures,
	}, nil
}
