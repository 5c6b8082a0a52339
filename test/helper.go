package test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"featuretoggle/cache"
	"featuretoggle/entity"
	"featuretoggle/migrations"
	"featuretoggle/pkg/logger"
	"featuretoggle/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

// GetTestLogger creates a test logger
func GetTestLogger() *logger.Logger {
	log, err := logger.New("debug", "development")
	if err != nil {
		panic(fmt.Sprintf("Failed to create test logger: %v", err))
	}
	return log
}

// MemoryFeatureRepository is a mutex-guarded in-memory stand-in for the
// Postgres repository: an ordered map keyed by id with a secondary index on
// slug, updated in place.
type MemoryFeatureRepository struct {
	mu       sync.Mutex
	features map[uuid.UUID]*entity.Feature
	bySlug   map[string]uuid.UUID
	order    []uuid.UUID
}

func NewMemoryFeatureRepository() *MemoryFeatureRepository {
	return &MemoryFeatureRepository{
		features: make(map[uuid.UUID]*entity.Feature),
		bySlug:   make(map[string]uuid.UUID),
	}
}

func (r *MemoryFeatureRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	feature, ok := r.features[id]
	if !ok {
		return nil, repository.ErrFeatureNotFound
	}
	copied := *feature
	return &copied, nil
}

func (r *MemoryFeatureRepository) GetBySlug(_ context.Context, slug string) (*entity.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.bySlug[slug]
	if !ok {
		return nil, repository.ErrFeatureNotFound
	}
	copied := *r.features[id]
	return &copied, nil
}

func (r *MemoryFeatureRepository) ListAll(_ context.Context) ([]*entity.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	features := make([]*entity.Feature, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.features[id]
		features = append(features, &copied)
	}
	return features, nil
}

func matches(feature *entity.Feature, filter entity.FeatureFilter, search string) bool {
	switch filter {
	case entity.FilterActive:
		if !feature.Active {
			return false
		}
	case entity.FilterInactive:
		if feature.Active {
			return false
		}
	}
	if search != "" && !strings.Contains(strings.ToLower(feature.Name), strings.ToLower(search)) {
		return false
	}
	return true
}

func (r *MemoryFeatureRepository) ListFiltered(_ context.Context, filter entity.FeatureFilter, search string, page, quantity int) ([]*entity.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Feature
	for _, id := range r.order {
		if matches(r.features[id], filter, search) {
			copied := *r.features[id]
			matched = append(matched, &copied)
		}
	}

	skip := (page - 1) * quantity
	if skip >= len(matched) {
		return nil, nil
	}
	end := skip + quantity
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], nil
}

func (r *MemoryFeatureRepository) CountFiltered(_ context.Context, filter entity.FeatureFilter, search string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, id := range r.order {
		if matches(r.features[id], filter, search) {
			total++
		}
	}
	return total, nil
}

func (r *MemoryFeatureRepository) Insert(_ context.Context, feature *entity.Feature) (*entity.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bySlug[feature.Feature]; exists {
		return nil, repository.ErrFeatureAlreadyExists
	}

	feature.ID = uuid.New()
	now := time.Now().UTC()
	feature.CreatedAt = now
	feature.UpdatedAt = now

	stored := *feature
	r.features[feature.ID] = &stored
	r.bySlug[feature.Feature] = feature.ID
	r.order = append(r.order, feature.ID)
	return feature, nil
}

func (r *MemoryFeatureRepository) ReplaceFields(_ context.Context, feature *entity.Feature) (*entity.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.features[feature.ID]
	if !ok {
		return nil, repository.ErrFeatureNotFound
	}

	stored.Feature = feature.Feature
	stored.Name = feature.Name
	stored.Description = feature.Description
	stored.Tags = feature.Tags
	stored.Active = feature.Active
	stored.UpdatedAt = time.Now().UTC()

	copied := *stored
	return &copied, nil
}

func (r *MemoryFeatureRepository) Delete(_ context.Context, id uuid.UUID) (*entity.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	feature, ok := r.features[id]
	if !ok {
		return nil, repository.ErrFeatureNotFound
	}

	delete(r.features, id)
	delete(r.bySlug, feature.Feature)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return feature, nil
}

func (r *MemoryFeatureRepository) AggregateStatus(_ context.Context) (repository.StatusAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var agg repository.StatusAggregate
	for _, feature := range r.features {
		if feature.Active {
			agg.TotalActives++
		} else {
			agg.TotalInactives++
		}
	}
	agg.TotalFeatures = agg.TotalActives + agg.TotalInactives
	return agg, nil
}

type memoryCacheEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a mutex-guarded in-memory stand-in for the Redis cache with
// TTL bookkeeping.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryCacheEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryCacheEntry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return "", cache.ErrCacheMiss
	}
	return entry.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := memoryCacheEntry{value: value}
	if expiration > 0 {
		entry.expiresAt = time.Now().Add(expiration)
	}
	c.entries[key] = entry
	return nil
}

func (c *MemoryCache) Remove(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Len reports the number of live entries, for asserting that an operation did
// not populate the cache.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// FailingCache returns the configured error from every operation, for
// asserting that cache outages propagate instead of reading as "inactive".
type FailingCache struct {
	Err error
}

func (c *FailingCache) Get(context.Context, string) (string, error) {
	return "", c.Err
}

func (c *FailingCache) Set(context.Context, string, string, time.Duration) error {
	return c.Err
}

func (c *FailingCache) Remove(context.Context, string) error {
	return c.Err
}

// TestDB wraps a live test database connection. Tests using it skip when the
// backing Postgres is unreachable.
type TestDB struct {
	DB *sqlx.DB
}

// SetupTestDB connects to the test database and runs migrations, skipping the
// calling test when no database is available.
func SetupTestDB(t *testing.T) *TestDB {
	host := getEnvOrDefault("TEST_DB_HOST", "localhost")
	port := getEnvOrDefault("TEST_DB_PORT", "5432")
	user := getEnvOrDefault("TEST_DB_USER", "featuretoggle")
	password := getEnvOrDefault("TEST_DB_PASSWORD", "featuretoggle")
	dbName := getEnvOrDefault("TEST_DB_NAME", "featuretoggle_test")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbName)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		t.Skipf("Skipping: test database unavailable: %v", err)
	}

	// Run migrations - check multiple possible paths
	migrationPaths := []string{"./migrations", "../migrations", "/app/migrations"}
	for _, path := range migrationPaths {
		err = migrations.RunMigrations(db.DB, path)
		if err == nil {
			break
		}
	}
	require.NoError(t, err, "Failed to run test migrations")

	return &TestDB{DB: db}
}

// Close closes the test database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// CleanTables removes all data from tables (for test isolation)
func (tdb *TestDB) CleanTables(t *testing.T) {
	_, err := tdb.DB.Exec("TRUNCATE TABLE features")
	require.NoError(t, err, "Failed to clean test tables")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
