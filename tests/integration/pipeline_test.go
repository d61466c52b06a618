package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/antojo/antojo/internal/catalog"
	"github.com/antojo/antojo/internal/lexicon"
	"github.com/antojo/antojo/internal/orchestrator"
	"github.com/antojo/antojo/internal/parser"
	"github.com/antojo/antojo/internal/remote"
	"github.com/antojo/antojo/internal/searcher"
	"github.com/antojo/antojo/pkg/types"
)

// PipelineTestSuite exercises parse and search end to end over the
// embedded catalog.
type PipelineTestSuite struct {
	suite.Suite
	builder *parser.Builder
	engine  *searcher.Engine
	orch    *orchestrator.Orchestrator
}

func (s *PipelineTestSuite) SetupSuite() {
	dishes := catalog.Default()
	idx, err := catalog.NewIndex(dishes)
	s.Require().NoError(err)
	lex := lexicon.MustDefault()
	s.engine, err = searcher.New(dishes, idx, lex)
	s.Require().NoError(err)
	s.builder = parser.New(lex, idx, catalog.RestaurantNames(dishes))
	s.orch = orchestrator.New(s.builder, s.engine, nil, nil, zerolog.Nop())
}

func (s *PipelineTestSuite) search(text string) (types.ParseResult, *types.SearchResponse) {
	parsed, resp, err := s.orch.Interpret(context.Background(), text)
	s.Require().NoError(err)
	return parsed, resp
}

func (s *PipelineTestSuite) TestVeganGlutenFreeSushi() {
	parsed, resp := s.search("sushi vegano sin gluten")

	s.Contains(parsed.Query.Filters.CategoryAny, "sushi")
	s.Contains(parsed.Query.Filters.DietMust, "vegan")
	s.Contains(parsed.Query.Filters.DietMust, "gluten_free")

	s.Require().Len(resp.Results, 1)
	s.Equal("sushi-veggie-roll", resp.Results[0].Item.ID)
}

func (s *PipelineTestSuite) TestCheapRequestUsesPercentileCeiling() {
	parsed, resp := s.search("algo barato")

	s.Require().NotNil(parsed.Query.Filters.PriceMax)
	s.Equal("p35", parsed.Query.Filters.PriceMax.Label)

	dishes := catalog.Default()
	idx, err := catalog.NewIndex(dishes)
	s.Require().NoError(err)
	ceiling := idx.PriceAtPercentile(0.35)

	s.Require().NotEmpty(resp.Results)
	for _, r := range resp.Results {
		s.LessOrEqual(r.Item.PriceARS, ceiling)
	}
}

func (s *PipelineTestSuite) TestRomanticDateScenario() {
	parsed, resp := s.search("una cita romantica")

	s.Require().NotNil(parsed.Query.Filters.RatingMin)
	s.InDelta(4.4, *parsed.Query.Filters.RatingMin, 1e-9)
	s.Contains(parsed.Query.Metadata.AutoConstraints, "rating_min")
	s.Contains(parsed.Query.ScenarioTags, "romantic_date")

	s.Require().NotEmpty(resp.Results)
	for _, r := range resp.Results {
		s.GreaterOrEqual(r.Item.Restaurant.Rating, 4.4)
	}
}

func (s *PipelineTestSuite) TestExclusionNeverMatchesPositively() {
	parsed, _ := s.search("pizza sin cebolla ni ajo")

	s.Contains(parsed.Query.Filters.CategoryAny, "pizza")
	s.Contains(parsed.Query.Filters.IngredientsExclude, "cebolla")
	s.Contains(parsed.Query.Filters.IngredientsExclude, "ajo")
	s.NotContains(parsed.Query.Filters.IngredientsInclude, "cebolla")
	s.NotContains(parsed.Query.Filters.IngredientsInclude, "ajo")
}

func (s *PipelineTestSuite) TestDeterministicRepetition() {
	first, respA := s.search("milanesa abundante en palermo")
	second, respB := s.search("milanesa abundante en palermo")

	s.Equal(first.Plan, second.Plan)
	s.Require().Len(respB.Results, len(respA.Results))
	for i := range respA.Results {
		s.Equal(respA.Results[i].Item.ID, respB.Results[i].Item.ID)
		s.Equal(respA.Results[i].Score, respB.Results[i].Score)
	}
}

func (s *PipelineTestSuite) TestRemoteTimeoutFallsBackToLocalResults() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, 20*time.Millisecond)
	orch := orchestrator.New(s.builder, s.engine, client, remote.NewBreaker(), zerolog.Nop())

	const text = "sushi vegano sin gluten"
	parsed, resp, err := orch.Interpret(context.Background(), text)
	s.Require().NoError(err)

	s.NotEmpty(parsed.Query.Metadata.RemoteNotes, "fallback must be annotated")
	s.NotEmpty(resp.Plan.RemoteNotes)

	s.Require().Len(resp.Results, 1)
	s.Equal("sushi-veggie-roll", resp.Results[0].Item.ID)
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}
