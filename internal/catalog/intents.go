package catalog

import (
	"sort"

	"github.com/antojo/antojo/internal/textnorm"
	"github.com/antojo/antojo/pkg/types"
)

var (
	romanticCategories = map[string]bool{"pasta": true, "sushi": true, "parrilla": true, "wok": true, "postres": true}
	friendsCategories  = map[string]bool{"pizza": true, "hamburguesas": true, "tacos": true, "sandwiches": true, "empanadas": true}
	familyCategories   = map[string]bool{"parrilla": true, "pasta": true, "sopas": true, "bowls": true}
	healthCategories   = map[string]bool{"ensaladas": true, "bowls": true, "wok": true}

	romanticCuisines = map[string]bool{"italiana": true, "sushi": true, "parrilla": true}
)

const (
	budgetPriceCeiling = 6000
	expressETACeiling  = 25
	topRatedFloor      = 4.7
	romanticRatingMin  = 4.4
)

// augmentIntentTags derives experience tags from a dish's categories, rating,
// price and delivery speed so scenario boosts have something to latch onto
// even when the source data carries no explicit tags.
func augmentIntentTags(d *types.Dish) {
	tags := make(map[string]struct{}, len(d.ExperienceTags)+8)
	for _, t := range d.ExperienceTags {
		tags[t] = struct{}{}
	}
	tags["delivery_dining"] = struct{}{}

	categories := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		categories[textnorm.Basic(c)] = true
	}
	cuisine := textnorm.Basic(d.Restaurant.Cuisine)

	healthTags := make(map[string]bool, len(d.HealthTags))
	for _, h := range d.HealthTags {
		healthTags[textnorm.Basic(h)] = true
	}

	if d.Restaurant.Rating >= romanticRatingMin && (intersects(categories, romanticCategories) || romanticCuisines[cuisine]) {
		tags["romantic_evening"] = struct{}{}
		tags["date_night"] = struct{}{}
	}
	if intersects(categories, friendsCategories) {
		tags["friends_gathering"] = struct{}{}
		tags["movie_night"] = struct{}{}
	}
	if intersects(categories, familyCategories) {
		tags["family_sharing"] = struct{}{}
	}
	if intersects(categories, healthCategories) || healthTags["no_fry"] || healthTags["low_sodium"] {
		tags["healthy_choice"] = struct{}{}
	}
	if d.PriceARS <= budgetPriceCeiling {
		tags["budget_friendly"] = struct{}{}
	}
	if d.Restaurant.ETAMin <= expressETACeiling {
		tags["express_delivery"] = struct{}{}
		tags["quick_lunch"] = struct{}{}
	}
	if d.Restaurant.Rating >= topRatedFloor {
		tags["top_rated"] = struct{}{}
	}
	if categories["postres"] {
		tags["sweet_treat"] = struct{}{}
	}

	out := make([]string, 0, len(tags))
	for t := range tags {
		out = append(out, t)
	}
	sort.Strings(out)
	d.ExperienceTags = out
}

func intersects(set map[string]bool, other map[string]bool) bool {
	for k := range set {
		if other[k] {
			return true
		}
	}
	return false
}
