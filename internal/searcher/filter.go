package searcher

import (
	"fmt"

	"github.com/antojo/antojo/internal/textnorm"
	"github.com/antojo/antojo/pkg/types"
)

// applyFilters checks every hard predicate, short-circuiting on the first
// failure with a human-readable reason. The price ceiling arrives already
// resolved so relaxation reruns stay cheap.
func (e *Engine) applyFilters(entry *dishEntry, f *types.Filters, priceCeil float64, priceOK bool) (bool, []string) {
	d := entry.dish

	if f.AvailableOnly && !d.Available {
		return false, []string{"No disponible"}
	}
	if len(f.MealMomentsAny) > 0 && !anyIn(f.MealMomentsAny, d.MealMoments) {
		return false, []string{fmt.Sprintf("Meal moment no coincide %v", f.MealMomentsAny)}
	}
	if len(f.CategoryAny) > 0 && !anyIn(f.CategoryAny, d.Categories) {
		return false, []string{fmt.Sprintf("Categoria no coincide %v", f.CategoryAny)}
	}
	if len(f.NeighborhoodAny) > 0 && !contains(f.NeighborhoodAny, d.Restaurant.Neighborhood) {
		return false, []string{fmt.Sprintf("Barrio no coincide %v", f.NeighborhoodAny)}
	}
	if len(f.CuisinesAny) > 0 && !contains(f.CuisinesAny, d.Restaurant.Cuisine) {
		return false, []string{fmt.Sprintf("Cocina no coincide %v", f.CuisinesAny)}
	}
	if len(f.RestaurantAny) > 0 && !contains(f.RestaurantAny, d.Restaurant.Name) {
		return false, []string{fmt.Sprintf("Restaurante no coincide %v", f.RestaurantAny)}
	}
	if len(f.ExperienceTagsAny) > 0 && !anyIn(f.ExperienceTagsAny, d.ExperienceTags) {
		return false, []string{fmt.Sprintf("No coincide intención %v", f.ExperienceTagsAny)}
	}
	for _, ing := range f.IngredientsInclude {
		if !e.dishHasIngredient(entry, ing) {
			return false, []string{"Falta ingrediente requerido"}
		}
	}
	for _, ing := range f.IngredientsExclude {
		if e.dishHasIngredient(entry, ing) {
			return false, []string{"Contiene ingrediente excluido"}
		}
	}
	if len(f.DietMust) > 0 {
		for _, flag := range f.DietMust {
			if !d.DietFlags[flag] {
				return false, []string{fmt.Sprintf("No cumple dietas requeridas %v", f.DietMust)}
			}
		}
	}
	if len(f.AllergensExclude) > 0 && anyIn(f.AllergensExclude, d.Allergens) {
		return false, []string{fmt.Sprintf("Contiene alergenos excluidos %v", f.AllergensExclude)}
	}
	if len(f.HealthAny) > 0 && !anyIn(f.HealthAny, d.HealthTags) {
		return false, []string{fmt.Sprintf("No coincide salud %v", f.HealthAny)}
	}
	if priceOK && float64(d.PriceARS) > priceCeil {
		return false, []string{"Precio mayor a limite"}
	}
	if f.ETAMax != nil && d.EffectiveETA() > *f.ETAMax {
		return false, []string{"ETA mayor a limite"}
	}
	if f.RatingMin != nil && d.Restaurant.Rating < *f.RatingMin {
		return false, []string{"Rating menor a minimo"}
	}
	return true, nil
}

// dishHasIngredient resolves a requested token against the dish's expanded
// ingredient set: the normalized token itself, its canonical form, or the
// verbatim string. Equivalence is always synonym-based, never plain string
// equality against the declared list.
func (e *Engine) dishHasIngredient(entry *dishEntry, ing string) bool {
	norm := textnorm.Basic(ing)
	if _, ok := entry.ingredients[norm]; ok {
		return true
	}
	if canonical, ok := e.lex.CanonicalIngredient(ing); ok {
		if _, hit := entry.ingredients[canonical]; hit {
			return true
		}
	}
	_, ok := entry.ingredients[ing]
	return ok
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func anyIn(want []string, have []string) bool {
	for _, w := range want {
		if contains(have, w) {
			return true
		}
	}
	return false
}
