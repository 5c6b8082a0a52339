package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	t.Run("lower-cases and hyphenates spaces", func(t *testing.T) {
		assert.Equal(t, "new-checkout", Slug("New Checkout"))
	})

	t.Run("keeps already normalized names", func(t *testing.T) {
		assert.Equal(t, "dark-mode", Slug("dark-mode"))
	})

	t.Run("multiple spaces each become a hyphen", func(t *testing.T) {
		assert.Equal(t, "a--b", Slug("A  B"))
	})
}

func TestNormalizeTags(t *testing.T) {
	t.Run("lower-cases, trims, prefixes and de-duplicates", func(t *testing.T) {
		tags := NormalizeTags([]string{"Checkout", "  Experiment ", "checkout"})
		assert.Equal(t, []string{"#checkout", "#experiment"}, tags)
	})

	t.Run("order follows first occurrence", func(t *testing.T) {
		tags := NormalizeTags([]string{"beta", "UI", "Beta", "ui", "theme"})
		assert.Equal(t, []string{"#beta", "#ui", "#theme"}, tags)
	})

	t.Run("inner spaces become hyphens", func(t *testing.T) {
		tags := NormalizeTags([]string{"Release 2025"})
		assert.Equal(t, []string{"#release-2025"}, tags)
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		assert.Empty(t, NormalizeTags(nil))
	})
}
