package repository

import (
	"context"
	"fmt"

	"featuretoggle/entity"
)

// SeedFeatures inserts a small set of sample features when the collection is
// empty. Meant for local development and demo environments; call it explicitly
// from wiring code, never from a constructor.
func SeedFeatures(ctx context.Context, repo FeatureRepository) error {
	existing, err := repo.CountFiltered(ctx, entity.FilterAll, "")
	if err != nil {
		return fmt.Errorf("failed to check for existing features: %w", err)
	}
	if existing > 0 {
		return nil
	}

	seeds := []struct {
		name        string
		description string
		tags        []string
		active      bool
	}{
		{"User Registration", "Enable new user registrations.", []string{"user", "auth"}, true},
		{"Two Factor Authentication", "Require 2FA for login.", []string{"security", "auth"}, false},
		{"Dark Mode", "Allow users to switch between light and dark themes.", []string{"ui", "theme"}, true},
		{"Beta Dashboard", "Enable new dashboard layout for beta users.", []string{"dashboard", "beta"}, false},
		{"Notifications", "Enable in-app notifications.", []string{"notifications", "user"}, true},
		{"Export Data as CSV", "Allow users to export data in CSV format.", []string{"export", "data"}, true},
		{"AI Recommendations", "Show AI-based recommendations to users.", []string{"ai", "recommendations"}, false},
		{"Payment Gateway", "Enable online payments using multiple providers.", []string{"payment", "ecommerce"}, true},
		{"Audit Logs", "Track all user and system activities.", []string{"logs", "security"}, true},
		{"API Access", "Allow external applications to access via API keys.", []string{"api", "integration"}, false},
	}

	for _, seed := range seeds {
		feature := &entity.Feature{
			Feature:     entity.Slug(seed.name),
			Name:        seed.name,
			Description: seed.description,
			Tags:        entity.NormalizeTags(seed.tags),
			Active:      seed.active,
		}
		if _, err := repo.Insert(ctx, feature); err != nil {
			return fmt.Errorf("failed to seed feature %q: %w", seed.name, err)
		}
	}
	return nil
}
