package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"featuretoggle/cache"
	"featuretoggle/entity"
	"featuretoggle/pkg/logger"
	"featuretoggle/repository"
	"featuretoggle/validator"

	"github.com/google/uuid"
)

var (
	ErrFeatureNotFound      = errors.New("feature not found")
	ErrFeatureAlreadyExists = errors.New("feature already exists")
)

// objectCachePrefix keeps the id-keyed object cache in a separate key space
// from the slug-keyed toggle cache.
const objectCachePrefix = "feature:"

// FeatureManager orchestrates the feature CRUD use cases.
type FeatureManager interface {
	CreateFeature(ctx context.Context, req validator.FeatureRequest) (FeatureResponse, error)
	GetFeature(ctx context.Context, id uuid.UUID) (FeatureResponse, error)
	GetFeatures(ctx context.Context) ([]FeatureResponse, error)
	GetPagedFeatures(ctx context.Context, query *FeatureQuery) (*PaginationResponse, error)
	GetPagedFeaturesByStatus(ctx context.Context, req validator.PaginationRequest) (*PaginationResponse, error)
	UpdateFeature(ctx context.Context, id uuid.UUID, req validator.FeatureRequest) (FeatureResponse, error)
	DeleteFeature(ctx context.Context, id uuid.UUID) (FeatureResponse, error)
}

type featureManager struct {
	repo       repository.FeatureRepository
	cache      cache.Cache
	expiration time.Duration
	listBounds Bounds
	logger     *logger.Logger
}

func NewFeatureManager(repo repository.FeatureRepository, c cache.Cache, expiration time.Duration, listBounds Bounds, log *logger.Logger) FeatureManager {
	return &featureManager{
		repo:       repo,
		cache:      c,
		expiration: expiration,
		listBounds: listBounds,
		logger:     log,
	}
}

func (s *featureManager) CreateFeature(ctx context.Context, req validator.FeatureRequest) (FeatureResponse, error) {
	if err := validator.ValidateFeatureRequest(req); err != nil {
		s.logger.Warnw("Invalid feature creation request", "error", err)
		return FeatureResponse{}, err
	}

	feature := &entity.Feature{
		Feature:     entity.Slug(req.Name),
		Name:        req.Name,
		Description: req.Description,
		Tags:        entity.NormalizeTags(req.Tags),
		Active:      req.Active,
	}

	created, err := s.repo.Insert(ctx, feature)
	if err != nil {
		if errors.Is(err, repository.ErrFeatureAlreadyExists) {
			s.logger.Warnw("Duplicate feature slug on create", "feature", feature.Feature)
			return FeatureResponse{}, ErrFeatureAlreadyExists
		}
		s.logger.Errorw("Failed to create feature", "error", err, "name", req.Name)
		return FeatureResponse{}, fmt.Errorf("failed to create feature: %w", err)
	}

	s.logger.Infow("Feature created", "id", created.ID, "feature", created.Feature)
	return toFeatureResponse(created), nil
}

// GetFeature is a cache-aside read keyed by id. A miss in the store returns
// the empty response shape rather than an error; the cache is only populated
// for features that exist.
func (s *featureManager) GetFeature(ctx context.Context, id uuid.UUID) (FeatureResponse, error) {
	key := objectCachePrefix + id.String()

	cached, err := s.cache.Get(ctx, key)
	if err == nil && cached != "" {
		var response FeatureResponse
		if err := json.Unmarshal([]byte(cached), &response); err == nil {
			return response, nil
		}
		s.logger.Warnw("Discarding undecodable cached feature", "key", key)
	} else if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		return FeatureResponse{}, fmt.Errorf("failed to read feature cache: %w", err)
	}

	feature, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFeatureNotFound) {
			return FeatureResponse{}, nil
		}
		s.logger.Errorw("Failed to get feature", "error", err, "id", id)
		return FeatureResponse{}, fmt.Errorf("failed to get feature: %w", err)
	}

	response := toFeatureResponse(feature)
	encoded, err := json.Marshal(response)
	if err != nil {
		return FeatureResponse{}, fmt.Errorf("failed to encode feature for cache: %w", err)
	}
	if err := s.cache.Set(ctx, key, string(encoded), s.expiration); err != nil {
		return FeatureResponse{}, err
	}

	return response, nil
}

// GetFeatures returns the unfiltered, uncached full listing. Administrative
// use only; paged queries go through GetPagedFeatures.
func (s *featureManager) GetFeatures(ctx context.Context) ([]FeatureResponse, error) {
	features, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Errorw("Failed to list features", "error", err)
		return nil, fmt.Errorf("failed to list features: %w", err)
	}
	return toFeatureResponses(features), nil
}

func (s *featureManager) GetPagedFeatures(ctx context.Context, query *FeatureQuery) (*PaginationResponse, error) {
	features, err := s.repo.ListFiltered(ctx, query.Filter(), query.Search(), query.Page(), query.Quantity())
	if err != nil {
		s.logger.Errorw("Failed to list paged features", "error", err, "filter", query.Filter(), "page", query.Page())
		return nil, fmt.Errorf("failed to list paged features: %w", err)
	}

	totalRecords, err := s.repo.CountFiltered(ctx, query.Filter(), query.Search())
	if err != nil {
		s.logger.Errorw("Failed to count features", "error", err, "filter", query.Filter())
		return nil, fmt.Errorf("failed to count features: %w", err)
	}

	totalPages, previousPage, nextPage := query.PageMetadata(totalRecords)

	return &PaginationResponse{
		Items:        toFeatureResponses(features),
		TotalRecords: totalRecords,
		TotalPages:   totalPages,
		Page:         query.Page(),
		Quantity:     query.Quantity(),
		PreviousPage: previousPage,
		NextPage:     nextPage,
	}, nil
}

/// GetPagedFeaturesByStatus is the general listing path: an active-only switch
// instead of the filter enum, with its own configured quantity range.
func (s *featureManager) GetPagedFeaturesByStatus(ctx context.Context, req validator.PaginationRequest) (*PaginationResponse, error) {
	query := NewFeatureQuery(s.listBounds)
	if req.OnlyActive {
		query.SetFilter(string(entity.FilterActive))
	}
	query.SetPage(req.Page)
	query.SetQuantity(req.Quantity)

	return s.GetPagedFeatures(ctx, query)
}

// UpdateFeature replaces a feature's mutable fields. A blank incoming name or
// description keeps the stored value; tags and active are always replaced by
/// the request, even when empty. Neither cache key space is invalidated here:
// stale entries age out within one expiration window.
func (s *featureManager) UpdateFeature(ctx context.Context, id uuid.UUID, req validator.FeatureRequest) (FeatureResponse, error) {
	if err := validator.ValidateFeatureUpdateRequest(req); err != nil {
		s.logger.Warnw("Invalid feature update request", "error", err, "id", id)
		return FeatureResponse{}, err
	}

	feature, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFeatureNotFound) {
			return FeatureResponse{}, ErrFeatureNotFound
		}
		s.logger.Errorw("Failed to load feature for update", "error", err, "id", id)
		return FeatureResponse{}, fmt.Errorf("failed to load feature for update: %w", err)
	}

	if req.Name != "" {
		feature.Name = req.Name
	}
	if req.Description != "" {
		feature.Description = req.Description
	}
	feature.Tags = entity.NormalizeTags(req.Tags)
	feature.Active = req.Active

	updated, err := s.repo.ReplaceFields(ctx, feature)
	if err != nil {
		s.logger.Errorw("Failed to update feature", "error", err, "id", id)
		return FeatureResponse{}, fmt.Errorf("failed to update feature: %w", err)
	}

	s.logger.Infow("Feature updated", "id", updated.ID, "feature", updated.Feature)
	return toFeatureResponse(updated), nil
}

// DeleteFeature removes a feature and returns its last state, or the empty
// response shape when the id is unknown. Cache entries for the feature are
// left to expire.
func (s *featureManager) DeleteFeature(ctx context.Context, id uuid.UUID) (FeatureResponse, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFeatureNotFound) {
			return FeatureResponse{}, nil
		}
		s.logger.Errorw("Failed to delete feature", "error", err, "id", id)
		return FeatureResponse{}, fmt.Errorf("failed to delete feature: %w", err)
	}

	s.logger.Infow("Feature deleted", "id", deleted.ID, "feature", deleted.Feature)
	return toFeatureResponse(deleted), nil
}
