package types

// SearchResult pairs a surviving dish with its score and the labeled
// sub-score reasons that produced it.
type SearchResult struct {
	Item    Dish     `json:"item"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// RejectedDish records why a dish failed the hard filters. Up to ten of
// these are kept per search for debugging.
type RejectedDish struct {
	ID      string   `json:"id"`
	Reasons []string `json:"why"`
}

// SearchPlan is the explain object returned with every search.
type SearchPlan struct {
	HardFilters    Filters            `json:"hard_filters"`
	RankingWeights map[string]float64 `json:"ranking_weights"`
	Explain        string             `json:"explain"`
	RejectedSample []RejectedDish     `json:"rejected_sample"`
	RelaxedFilters []string           `json:"relaxed_filters,omitempty"`
	AdvisorSummary string             `json:"advisor_summary,omitempty"`
	ScenarioTags   []string           `json:"scenario_tags,omitempty"`
	RemoteNotes    []string           `json:"remote_notes,omitempty"`
}

// SearchResponse is the result set plus its plan.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Plan    SearchPlan     `json:"plan"`
}

// ParseResult is a structured query plus the ordered extraction trace that
// produced it.
type ParseResult struct {
	Query Query    `json:"query"`
	Plan  []string `json:"plan"`
}
