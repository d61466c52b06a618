package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/dictionaries.json
var defaultDictionaryJSON []byte

// Dictionary is the immutable synonym configuration consumed once by the
// Lexicon at construction. Keys are canonical tokens, values the synonym
// phrases that map to them.
type Dictionary struct {
	Categories    map[string][]string `json:"categories"`
	Ingredients   map[string][]string `json:"ingredients"`
	Diets         map[string][]string `json:"diets"`
	Allergens     map[string][]string `json:"allergens"`
	Health        map[string][]string `json:"health"`
	MealMoments   map[string][]string `json:"meal_moments"`
	Neighborhoods []string            `json:"neighborhoods"`
	Cuisines      []string            `json:"cuisines"`
}

// LoadDictionary parses dictionary configuration from JSON.
func LoadDictionary(data []byte) (Dictionary, error) {
	var d Dictionary
	if err := json.Unmarshal(data, &d); err != nil {
		return Dictionary{}, fmt.Errorf("parse dictionary: %w", err)
	}
	return d, nil
}

// Default returns the built-in Spanish dictionary shipped with the engine.
func Default() Dictionary {
	d, err := LoadDictionary(defaultDictionaryJSON)
	if err != nil {
		// The embedded data is validated by tests; failing here means a
		// corrupted build.
		panic(fmt.Sprintf("embedded dictionary is invalid: %v", err))
	}
	return d
}
