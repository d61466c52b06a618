package searcher

import (
	"context"
	"fmt"

	"github.com/antojo/antojo/pkg/types"
)

// relax retries an empty search with advisory constraints removed one at a
// time: scenario-added numeric bounds first (rating, then ETA, then price —
// only fields named in metadata.auto_constraints), then the suggested health
// and experience tag lists. Explicit user constraints are never dropped.
// Every removal is recorded in the plan so the caller can explain why the
// results are broader than asked.
func (e *Engine) relax(ctx context.Context, q types.Query, last *types.SearchResponse) (*types.SearchResponse, error) {
	auto := make(map[string]bool, len(q.Metadata.AutoConstraints))
	for _, f := range q.Metadata.AutoConstraints {
		auto[f] = true
	}

	var relaxations []string
	rerun := func() (*types.SearchResponse, error) {
		resp, err := e.runSingle(ctx, q)
		if err != nil {
			return nil, err
		}
		resp.Plan.RelaxedFilters = append([]string{}, relaxations...)
		return resp, nil
	}

	steps := []func() (bool, string){
		func() (bool, string) {
			if q.Filters.RatingMin == nil || !auto["rating_min"] {
				return false, ""
			}
			prev := *q.Filters.RatingMin
			q.Filters.RatingMin = nil
			return true, fmt.Sprintf("Se quitó el mínimo de rating sugerido (%g).", prev)
		},
		func() (bool, string) {
			if q.Filters.ETAMax == nil || !auto["eta_max"] {
				return false, ""
			}
			prev := *q.Filters.ETAMax
			q.Filters.ETAMax = nil
			return true, fmt.Sprintf("Se quitó el tope de entrega sugerido (%d).", prev)
		},
		func() (bool, string) {
			if q.Filters.PriceMax == nil || !auto["price_max"] {
				return false, ""
			}
			prev := q.Filters.PriceMax.String()
			q.Filters.PriceMax = nil
			return true, fmt.Sprintf("Se quitó el tope de precio sugerido (%s).", prev)
		},
		func() (bool, string) {
			if len(q.Filters.HealthAny) == 0 {
				return false, ""
			}
			prev := q.Filters.HealthAny
			q.Filters.HealthAny = []string{}
			return true, fmt.Sprintf("Se ignoraron los requisitos de salud sugeridos: %v.", prev)
		},
		func() (bool, string) {
			if len(q.Filters.ExperienceTagsAny) == 0 {
				return false, ""
			}
			prev := q.Filters.ExperienceTagsAny
			q.Filters.ExperienceTagsAny = []string{}
			return true, fmt.Sprintf("Se ignoraron los tags de intención sugeridos: %v.", prev)
		},
	}

	result := last
	for _, step := range steps {
		applied, note := step()
		if !applied {
			continue
		}
		relaxations = append(relaxations, note)
		resp, err := rerun()
		if err != nil {
			return nil, err
		}
		result = resp
		if len(resp.Results) > 0 {
			return resp, nil
		}
	}
	return result, nil
}
