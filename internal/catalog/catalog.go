// Package catalog loads the dish catalog and precomputes the numeric
// statistics the filter and ranking engines read. Both the dish slice and
// the Index are built once and treated as read-only afterwards.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/antojo/antojo/pkg/types"
)

//go:embed data/catalog.json
var defaultCatalogJSON []byte

// Load parses catalog JSON, validates every dish and augments each one with
// derived intent tags.
func Load(data []byte) ([]types.Dish, error) {
	var dishes []types.Dish
	if err := json.Unmarshal(data, &dishes); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(dishes) == 0 {
		return nil, types.ErrEmptyCatalog
	}
	for i := range dishes {
		if err := dishes[i].Validate(); err != nil {
			return nil, fmt.Errorf("dish %d (%s): %w", i, dishes[i].ID, err)
		}
		augmentIntentTags(&dishes[i])
	}
	return dishes, nil
}

// Default returns the built-in catalog shipped with the engine.
func Default() []types.Dish {
	dishes, err := Load(defaultCatalogJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return dishes
}

// RestaurantNames returns the distinct restaurant names of the catalog,
// sorted. The query builder matches these against the raw text.
func RestaurantNames(dishes []types.Dish) []string {
	seen := make(map[string]struct{})
	var names []string
	for i := range dishes {
		name := dishes[i].Restaurant.Name
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
