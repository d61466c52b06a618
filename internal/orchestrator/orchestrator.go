// Package orchestrator decides, per call, whether parse and search run
// against the remote interpretation service or the local pipeline, and
// degrades to local execution when the remote misbehaves.
package orchestrator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/antojo/antojo/internal/parser"
	"github.com/antojo/antojo/internal/remote"
	"github.com/antojo/antojo/internal/searcher"
	"github.com/antojo/antojo/pkg/types"
)

const (
	noteParseFallback  = "Intérprete remoto no disponible; se usó el parser local."
	noteSearchFallback = "Búsqueda remota no disponible; se usó el motor local."
)

// RemoteService is the remote parse/search contract. *remote.Client
// implements it.
type RemoteService interface {
	Parse(ctx context.Context, text string) (*types.ParseResult, error)
	Search(ctx context.Context, q types.Query) (*types.SearchResponse, error)
}

// Orchestrator routes parse and search calls. A nil remote service means
// the local pipeline always runs.
type Orchestrator struct {
	builder *parser.Builder
	engine  *searcher.Engine
	remote  RemoteService
	breaker *remote.Breaker
	log     zerolog.Logger
}

// New wires an Orchestrator.
func New(builder *parser.Builder, engine *searcher.Engine, svc RemoteService, breaker *remote.Breaker, log zerolog.Logger) *Orchestrator {
	if breaker == nil {
		breaker = remote.NewBreaker()
	}
	return &Orchestrator{
		builder: builder,
		engine:  engine,
		remote:  svc,
		breaker: breaker,
		log:     log,
	}
}

// Parse interprets text, remotely when possible. It never fails: any remote
// problem degrades to the local parser with a fallback notice in the plan.
func (o *Orchestrator) Parse(ctx context.Context, text string) types.ParseResult {
	if o.remote != nil && o.breaker.Available() {
		res, err := o.remote.Parse(ctx, text)
		if err == nil {
			o.breaker.MarkSuccess()
			return *res
		}
		if remote.Trips(err) {
			o.breaker.MarkFailure()
		}
		o.log.Warn().Err(err).Str("op", "parse").Msg("remote unavailable, using local pipeline")
	}

	res := o.builder.Parse(text)
	if o.remote != nil {
		res.Plan = append(res.Plan, noteParseFallback)
		res.Query.Metadata.RemoteNotes = append(res.Query.Metadata.RemoteNotes, noteParseFallback)
	}
	return res
}

// Search evaluates a query, remotely when possible, locally otherwise. No
// retry happens within a single call after the fallback decision.
func (o *Orchestrator) Search(ctx context.Context, q types.Query) (*types.SearchResponse, error) {
	if o.remote != nil {
		if o.breaker.Available() {
			resp, err := o.remote.Search(ctx, q)
			if err == nil {
				o.breaker.MarkSuccess()
				return resp, nil
			}
			if remote.Trips(err) {
				o.breaker.MarkFailure()
			}
			o.log.Warn().Err(err).Str("op", "search").Msg("remote unavailable, using local pipeline")
		}
		q.Metadata.RemoteNotes = append(q.Metadata.RemoteNotes, noteSearchFallback)
	}
	return o.engine.Search(ctx, q)
}

// Interpret runs the full text-to-results pipeline: parse, then search.
func (o *Orchestrator) Interpret(ctx context.Context, text string) (types.ParseResult, *types.SearchResponse, error) {
	parsed := o.Parse(ctx, text)
	resp, err := o.Search(ctx, parsed.Query)
	if err != nil {
		return parsed, nil, err
	}
	return parsed, resp, nil
}

// RemoteAvailable reports the current advisory breaker state.
func (o *Orchestrator) RemoteAvailable() bool {
	return o.remote != nil && o.breaker.Available()
}
