package types

// Restaurant holds the restaurant block embedded in every dish.
type Restaurant struct {
	Name         string  `json:"name"`
	Neighborhood string  `json:"neighborhood"`
	Cuisine      string  `json:"cuisines"`
	Rating       float64 `json:"rating"`
	ETAMin       int     `json:"eta_min"`
}

// Dish is a single catalog entry. The catalog is loaded once at startup and
// treated as read-only afterwards.
type Dish struct {
	ID             string          `json:"id"`
	Name           string          `json:"dish_name"`
	Description    string          `json:"description"`
	Categories     []string        `json:"categories"`
	Synonyms       []string        `json:"synonyms"`
	Ingredients    []string        `json:"ingredients"`
	Allergens      []string        `json:"allergens"`
	DietFlags      map[string]bool `json:"diet_flags"`
	HealthTags     []string        `json:"health_tags"`
	ExperienceTags []string        `json:"experience_tags"`
	MealMoments    []string        `json:"meal_moments"`
	PriceARS       int             `json:"price_ars"`
	Popularity     int             `json:"popularity"`
	DiscountPct    int             `json:"discount_pct"`
	DeliveryFee    int             `json:"delivery_fee"`
	DeliveryETAMin int             `json:"delivery_eta_min"`
	Restaurant     Restaurant      `json:"restaurant"`
	Available      bool            `json:"available"`
}

// EffectiveETA returns the delivery estimate used for ETA filtering: the
// faster of the dish-level estimate and the restaurant-level one. The
// catalog schema has no way to say "instant": a dish-level value of 0 is
// the JSON zero value for an absent delivery_eta_min, so it means "not
// set" and the restaurant estimate applies.
func (d *Dish) EffectiveETA() int {
	if d.DeliveryETAMin > 0 && d.DeliveryETAMin < d.Restaurant.ETAMin {
		return d.DeliveryETAMin
	}
	return d.Restaurant.ETAMin
}

// Validate checks the minimal invariants the engine relies on.
func (d *Dish) Validate() error {
	if d.ID == "" {
		return ErrMissingDishID
	}
	if d.Name == "" {
		return ErrMissingDishName
	}
	if d.Restaurant.Rating < 0 || d.Restaurant.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
