package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// FeatureFilter restricts listing and counting operations by active state.
type FeatureFilter string

const (
	FilterAll      FeatureFilter = "all"
	FilterActive   FeatureFilter = "active"
	FilterInactive FeatureFilter = "inactive"
)

// Feature is a named boolean toggle. The slug (Feature field) is derived from
// the name at creation time, is unique across all features, and is the external
// addressing key for toggle operations. It never changes after creation.
type Feature struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Feature     string         `json:"feature" db:"feature"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description" db:"description"`
	Tags        pq.StringArray `json:"tags" db:"tags"`
	Active      bool           `json:"active" db:"active"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// Slug derives the addressing key for a feature name: lower-cased, with
// spaces replaced by hyphens.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// NormalizeTags lower-cases, hyphenates and "#"-prefixes each tag, dropping
// duplicates. Order follows the first occurrence in the input.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		t := "#" + Slug(strings.TrimSpace(tag))
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		normalized = append(normalized, t)
	}
	return normalized
}
