// Package searcher evaluates structured queries against the dish catalog:
// hard filtering with human-readable rejection reasons, weighted multi-factor
// ranking, and automatic relaxation of advisory constraints when a search
// comes back empty.
package searcher

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"runtime"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/antojo/antojo/internal/catalog"
	"github.com/antojo/antojo/internal/lexicon"
	"github.com/antojo/antojo/internal/textnorm"
	"github.com/antojo/antojo/pkg/types"
)

// baseWeights is the default scoring weight table. Query-level weights
// override it, ranking_overrides.weights override both.
var baseWeights = map[string]float64{
	"rating": 0.25,
	"price":  0.2,
	"eta":    0.1,
	"pop":    0.1,
	"dist":   0.1,
	"lex":    0.1,
	"promo":  0.1,
	"fee":    0.05,
}

const planExplain = "Se aplicaron filtros duros y luego orden ponderado. Boosts y penalizaciones consideradas."

// dishEntry is a catalog dish with the derived lookups the filter and score
// passes read on every evaluation.
type dishEntry struct {
	dish *types.Dish

	// expanded ingredient equivalence set (raw tokens plus canonical hits)
	ingredients map[string]struct{}
	// tag union: health tags, categories, experience tags, lowercase cuisine
	tags map[string]struct{}
	// word tokens of name, description, synonyms, ingredients and restaurant
	words map[string]struct{}
	// basic-normalized restaurant name for mention detection
	restNorm string
}

// Engine evaluates queries against a fixed catalog. Construct with New;
// safe for concurrent use.
type Engine struct {
	entries []dishEntry
	idx     *catalog.Index
	lex     *lexicon.Lexicon
	cache   *lru.Cache[[32]byte, *types.SearchResponse]
}

// New builds an Engine over the catalog. Ingredient expansion and tag unions
// are precomputed per dish so each query evaluation is allocation-light.
func New(dishes []types.Dish, idx *catalog.Index, lex *lexicon.Lexicon) (*Engine, error) {
	if len(dishes) == 0 {
		return nil, types.ErrEmptyCatalog
	}
	cache, err := lru.New[[32]byte, *types.SearchResponse](512)
	if err != nil {
		// only fails on a non-positive size
		panic(fmt.Sprintf("create query cache: %v", err))
	}

	e := &Engine{
		entries: make([]dishEntry, len(dishes)),
		idx:     idx,
		lex:     lex,
		cache:   cache,
	}
	for i := range dishes {
		d := &dishes[i]
		e.entries[i] = dishEntry{
			dish:        d,
			ingredients: lex.ExpandIngredients(d.Ingredients),
			tags:        tagUnion(d),
			words:       dishWords(d),
			restNorm:    textnorm.Basic(d.Restaurant.Name),
		}
	}
	return e, nil
}

// Search evaluates a query and returns ranked results plus the search plan.
// When nothing passes the hard filters, advisory constraints are relaxed one
// at a time until something does or nothing is left to relax.
func (e *Engine) Search(ctx context.Context, q types.Query) (*types.SearchResponse, error) {
	key, keyed := cacheKey(q)
	if keyed {
		if resp, ok := e.cache.Get(key); ok {
			return resp, nil
		}
	}

	resp, err := e.runSingle(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		resp, err = e.relax(ctx, q, resp)
		if err != nil {
			return nil, err
		}
	}

	if keyed {
		e.cache.Add(key, resp)
	}
	return resp, nil
}

// runSingle applies filters and ranking once, with no relaxation.
func (e *Engine) runSingle(ctx context.Context, q types.Query) (*types.SearchResponse, error) {
	priceCeil, priceOK := e.idx.ResolvePrice(q.Filters.PriceMax)

	type verdict struct {
		pass    bool
		reasons []string
		score   float64
	}
	verdicts := make([]verdict, len(e.entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range e.entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry := &e.entries[i]
			ok, why := e.applyFilters(entry, &q.Filters, priceCeil, priceOK)
			if !ok {
				verdicts[i] = verdict{pass: false, reasons: why}
				return nil
			}
			score, reasons := e.computeScore(entry, &q)
			verdicts[i] = verdict{pass: true, score: score, reasons: reasons}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]types.SearchResult, 0, len(e.entries))
	rejected := make([]types.RejectedDish, 0, len(e.entries))
	for i := range verdicts {
		if verdicts[i].pass {
			results = append(results, types.SearchResult{
				Item:    *e.entries[i].dish,
				Score:   verdicts[i].score,
				Reasons: verdicts[i].reasons,
			})
		} else {
			rejected = append(rejected, types.RejectedDish{
				ID:      e.entries[i].dish.ID,
				Reasons: verdicts[i].reasons,
			})
		}
	}
	// Stable sort keeps catalog order as the tie-break.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if len(rejected) > 10 {
		rejected = rejected[:10]
	}
	plan := types.SearchPlan{
		HardFilters:    q.Filters,
		RankingWeights: effectiveWeights(&q),
		Explain:        planExplain,
		RejectedSample: rejected,
		AdvisorSummary: q.AdvisorSummary,
		ScenarioTags:   q.ScenarioTags,
		RemoteNotes:    q.Metadata.RemoteNotes,
	}
	return &types.SearchResponse{Results: results, Plan: plan}, nil
}

// effectiveWeights resolves the weight table for a query: base, then
// query-level weights, then ranking overrides.
func effectiveWeights(q *types.Query) map[string]float64 {
	weights := make(map[string]float64, len(baseWeights))
	for k, v := range baseWeights {
		weights[k] = v
	}
	for k, v := range q.Weights {
		weights[k] = v
	}
	for k, v := range q.RankingOverrides.Weights {
		weights[k] = v
	}
	return weights
}

// cacheKey hashes the canonical JSON encoding of the query. Map keys encode
// sorted, so equal queries always collide.
func cacheKey(q types.Query) ([32]byte, bool) {
	data, err := json.Marshal(q)
	if err != nil {
		return [32]byte{}, false
	}
	return sha256.Sum256(data), true
}

func tagUnion(d *types.Dish) map[string]struct{} {
	tags := make(map[string]struct{}, len(d.HealthTags)+len(d.Categories)+len(d.ExperienceTags)+1)
	for _, t := range d.HealthTags {
		tags[t] = struct{}{}
	}
	for _, t := range d.Categories {
		tags[t] = struct{}{}
	}
	for _, t := range d.ExperienceTags {
		tags[t] = struct{}{}
	}
	tags[textnorm.Basic(d.Restaurant.Cuisine)] = struct{}{}
	return tags
}

func dishWords(d *types.Dish) map[string]struct{} {
	words := make(map[string]struct{})
	add := func(s string) {
		for _, w := range textnorm.Words(s) {
			words[w] = struct{}{}
		}
	}
	add(d.Name)
	add(d.Description)
	for _, s := range d.Synonyms {
		add(s)
	}
	for _, s := range d.Ingredients {
		add(s)
	}
	add(d.Restaurant.Name)
	return words
}
