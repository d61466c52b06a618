package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antojo/antojo/pkg/types"
)

func TestDefaultCatalogLoads(t *testing.T) {
	dishes := Default()
	require.NotEmpty(t, dishes)

	for _, d := range dishes {
		assert.NoError(t, d.Validate())
		assert.Contains(t, d.ExperienceTags, "delivery_dining")
	}
}

func TestLoadRejectsEmptyAndInvalid(t *testing.T) {
	_, err := Load([]byte(`[]`))
	assert.ErrorIs(t, err, types.ErrEmptyCatalog)

	_, err = Load([]byte(`[{"id": "", "dish_name": "sin id"}]`))
	assert.ErrorIs(t, err, types.ErrMissingDishID)

	_, err = Load([]byte(`{not json`))
	assert.Error(t, err)
}

func TestIntentAugmentation(t *testing.T) {
	byID := make(map[string]types.Dish)
	for _, d := range Default() {
		byID[d.ID] = d
	}

	// High-rated sushi earns the date tags and keeps its declared ones.
	roll := byID["sushi-salmon-queso"]
	assert.Contains(t, roll.ExperienceTags, "romantic_evening")
	assert.Contains(t, roll.ExperienceTags, "date_night")
	assert.Contains(t, roll.ExperienceTags, "top_rated")
	assert.Contains(t, roll.ExperienceTags, "romantic")

	// Cheap and fast: budget plus express.
	emp := byID["emp-criolla"]
	assert.Contains(t, emp.ExperienceTags, "budget_friendly")
	assert.Contains(t, emp.ExperienceTags, "express_delivery")
	assert.Contains(t, emp.ExperienceTags, "quick_lunch")
	assert.Contains(t, emp.ExperienceTags, "friends_gathering")
	assert.NotContains(t, emp.ExperienceTags, "romantic_evening")

	// Healthy via health tags even without a health category.
	sopa := byID["sopa-calabaza"]
	assert.Contains(t, sopa.ExperienceTags, "healthy_choice")

	flan := byID["post-flan"]
	assert.Contains(t, flan.ExperienceTags, "sweet_treat")
}

func TestRestaurantNamesDistinctSorted(t *testing.T) {
	names := RestaurantNames(Default())
	require.NotEmpty(t, names)

	seen := make(map[string]bool)
	for i, n := range names {
		assert.False(t, seen[n], "duplicate name %q", n)
		seen[n] = true
		if i > 0 {
			assert.Less(t, names[i-1], n)
		}
	}
	assert.Contains(t, names, "Don Satoshi Wok")
	assert.Contains(t, names, "Sushi Nakama")
}
