package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"featuretoggle/cache"
	"featuretoggle/pkg/logger"
	"featuretoggle/repository"
)

// FeatureToggle serves boolean state lookups and flips for a feature addressed
// by its slug. Reads are cache-aside against the slug key space; flips always
// consult the store first.
type FeatureToggle interface {
	GetToggle(ctx context.Context, slug string) (bool, error)
	PutToggle(ctx context.Context, slug string) (bool, error)
}

type featureToggle struct {
	repo       repository.FeatureRepository
	cache      cache.Cache
	expiration time.Duration
	logger     *logger.Logger
}

func NewFeatureToggle(repo repository.FeatureRepository, c cache.Cache, expiration time.Duration, log *logger.Logger) FeatureToggle {
	return &featureToggle{
		repo:       repo,
		cache:      c,
		expiration: expiration,
		logger:     log,
	}
}

// GetToggle returns a feature's active state. A cached value is authoritative
// for the request. On a miss the store is consulted and the cache populated.
// An unknown slug reads as false and leaves no cache entry behind. A cache
// failure is not a miss and propagates to the caller.
func (s *featureToggle) GetToggle(ctx context.Context, slug string) (bool, error) {
	cached, err := s.cache.Get(ctx, slug)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Errorw("Failed to read toggle cache", "error", err, "feature", slug)
		return false, fmt.Errorf("failed to read toggle cache: %w", err)
	}
	if err == nil && cached != "" {
		active, parseErr := strconv.ParseBool(cached)
		if parseErr == nil {
			return active, nil
		}
		s.logger.Warnw("Discarding unparsable cached toggle", "feature", slug, "value", cached)
	}

	feature, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrFeatureNotFound) {
			return false, nil
		}
		s.logger.Errorw("Failed to get feature for toggle", "error", err, "feature", slug)
		return false, fmt.Errorf("failed to get feature for toggle: %w", err)
	}

	if err := s.cache.Set(ctx, slug, strconv.FormatBool(feature.Active), s.expiration); err != nil {
		s.logger.Errorw("Failed to write toggle cache", "error", err, "feature", slug)
		return false, err
	}

	return feature.Active, nil
}

// PutToggle inverts a feature's active state, persists it and rewrites the
// cache entry, returning the new state. An unknown slug returns false with no
// side effects.
func (s *featureToggle) PutToggle(ctx context.Context, slug string) (bool, error) {
	feature, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrFeatureNotFound) {
			return false, nil
		}
		s.logger.Errorw("Failed to get feature for flip", "error", err, "feature", slug)
		return false, fmt.Errorf("failed to get feature for flip: %w", err)
	}

	feature.Active = !feature.Active

	updated, err := s.repo.ReplaceFields(ctx, feature)
	if err != nil {
		s.logger.Errorw("Failed to persist toggle flip", "error", err, "feature", slug)
		return false, fmt.Errorf("failed to persist toggle flip: %w", err)
	}

	if err := s.cache.Set(ctx, slug, strconv.FormatBool(updated.Active), s.expiration); err != nil {
		s.logger.Errorw("Failed to write toggle cache after flip", "error", err, "feature", slug)
		return false, err
	}

	s.logger.Infow("Feature toggled", "feature", slug, "active", updated.Active)
	return updated.Active, nil
}
