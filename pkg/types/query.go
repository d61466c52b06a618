package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PriceLimit is a price ceiling expressed either as a literal amount or as a
// percentile label such as "p35". The zero value means "no limit".
type PriceLimit struct {
	Amount float64
	Label  string
}

// PriceAmount returns a literal price limit.
func PriceAmount(v float64) *PriceLimit { return &PriceLimit{Amount: v} }

// PricePercentile returns a percentile-label price limit.
func PricePercentile(label string) *PriceLimit { return &PriceLimit{Label: label} }

// IsPercentile reports whether the limit is a percentile label.
func (p *PriceLimit) IsPercentile() bool { return p != nil && p.Label != "" }

// PercentileFraction parses the label into a fraction in [0,1].
// Malformed labels report ok=false, which callers treat as "no limit".
func (p *PriceLimit) PercentileFraction() (float64, bool) {
	if p == nil || !strings.HasPrefix(p.Label, "p") {
		return 0, false
	}
	n, err := strconv.Atoi(p.Label[1:])
	if err != nil {
		return 0, false
	}
	return float64(n) / 100.0, true
}

func (p *PriceLimit) String() string {
	if p == nil {
		return ""
	}
	if p.Label != "" {
		return p.Label
	}
	return strconv.FormatFloat(p.Amount, 'f', -1, 64)
}

// MarshalJSON encodes the limit as a bare number or a "pNN" string, matching
// the remote parser's representation.
func (p PriceLimit) MarshalJSON() ([]byte, error) {
	if p.Label != "" {
		return json.Marshal(p.Label)
	}
	return json.Marshal(p.Amount)
}

// UnmarshalJSON accepts a number, a "pNN" string, or null.
func (p *PriceLimit) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*p = PriceLimit{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*p = PriceLimit{Label: label}
		return nil
	}
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return fmt.Errorf("price_max: %w", err)
	}
	*p = PriceLimit{Amount: amount}
	return nil
}

// Filters are the hard constraints of a query. Every field is always present;
// list fields default to empty, scalars to unset, AvailableOnly to true.
type Filters struct {
	CategoryAny        []string    `json:"category_any"`
	MealMomentsAny     []string    `json:"meal_moments_any"`
	NeighborhoodAny    []string    `json:"neighborhood_any"`
	CuisinesAny        []string    `json:"cuisines_any"`
	RestaurantAny      []string    `json:"restaurant_any"`
	IngredientsInclude []string    `json:"ingredients_include"`
	IngredientsExclude []string    `json:"ingredients_exclude"`
	DietMust           []string    `json:"diet_must"`
	AllergensExclude   []string    `json:"allergens_exclude"`
	HealthAny          []string    `json:"health_any"`
	ExperienceTagsAny  []string    `json:"experience_tags_any"`
	PriceMax           *PriceLimit `json:"price_max"`
	ETAMax             *int        `json:"eta_max"`
	RatingMin          *float64    `json:"rating_min"`
	AvailableOnly      bool        `json:"available_only"`
}

// NewFilters returns a Filters value with every list present and the
// documented defaults applied.
func NewFilters() Filters {
	return Filters{
		CategoryAny:        []string{},
		MealMomentsAny:     []string{},
		NeighborhoodAny:    []string{},
		CuisinesAny:        []string{},
		RestaurantAny:      []string{},
		IngredientsInclude: []string{},
		IngredientsExclude: []string{},
		DietMust:           []string{},
		AllergensExclude:   []string{},
		HealthAny:          []string{},
		ExperienceTagsAny:  []string{},
		AvailableOnly:      true,
	}
}

// RankingOverrides adjust scoring without touching hard filters.
type RankingOverrides struct {
	BoostTags    []string           `json:"boost_tags"`
	PenalizeTags []string           `json:"penalize_tags"`
	Weights      map[string]float64 `json:"weights"`
}

// Metadata carries engine bookkeeping that travels with the query.
type Metadata struct {
	// RestaurantHits are catalog restaurant names detected verbatim in the
	// query text; they earn a score bonus during ranking.
	RestaurantHits []string `json:"restaurant_hits,omitempty"`
	// AutoConstraints names numeric filter fields that were added by a
	// scenario rather than by an explicit user phrase. Only these are
	// eligible for automatic relaxation when a search comes back empty.
	AutoConstraints []string `json:"auto_constraints,omitempty"`
	// RemoteNotes records remote-service status annotations.
	RemoteNotes []string `json:"remote_notes,omitempty"`
}

// Query is the structured form of a free-text food request.
type Query struct {
	Text             string             `json:"q"`
	Filters          Filters            `json:"filters"`
	Hints            []string           `json:"hints"`
	Weights          map[string]float64 `json:"weights"`
	RankingOverrides RankingOverrides   `json:"ranking_overrides"`
	AdvisorSummary   string             `json:"advisor_summary,omitempty"`
	ScenarioTags     []string           `json:"scenario_tags"`
	Metadata         Metadata           `json:"metadata"`
}

// NewQuery returns a Query for the given text with defaulted filters.
func NewQuery(text string) Query {
	return Query{
		Text:    text,
		Filters: NewFilters(),
		Hints:   []string{},
		Weights: map[string]float64{},
		RankingOverrides: RankingOverrides{
			BoostTags:    []string{},
			PenalizeTags: []string{},
			Weights:      map[string]float64{},
		},
		ScenarioTags: []string{},
	}
}
