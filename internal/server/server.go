// Package server exposes the parse/search pipeline over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/antojo/antojo/internal/orchestrator"
	"github.com/antojo/antojo/pkg/types"
)

const requestTimeout = 15 * time.Second

// Server handles the HTTP API.
type Server struct {
	orch   *orchestrator.Orchestrator
	dishes []types.Dish
	log    zerolog.Logger
}

// New builds a Server over an orchestrator and the catalog it serves.
func New(orch *orchestrator.Orchestrator, dishes []types.Dish, log zerolog.Logger) *Server {
	return &Server{orch: orch, dishes: dishes, log: log}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", s.handleHealth)
	r.Get("/catalog", s.handleCatalog)
	r.Post("/parse", s.handleParse)
	r.Post("/search", s.handleSearch)

	return r
}

type parseRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "falta el campo text")
		return
	}
	res := s.orch.Parse(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, res)
}

// searchRequest accepts a fully parsed query, free text to interpret, or
// bare filters to evaluate directly. Query and filters stay raw so partial
// objects can be decoded over defaulted values; a bare zero-value decode
// would silently drop available_only=true.
type searchRequest struct {
	Query   json.RawMessage `json:"query"`
	Text    string          `json:"text"`
	Filters json.RawMessage `json:"filters"`
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}

	var q types.Query
	switch {
	case present(req.Query):
		q = types.NewQuery("")
		if err := json.Unmarshal(req.Query, &q); err != nil {
			writeError(w, http.StatusBadRequest, "query inválida")
			return
		}
	case req.Text != "":
		q = s.orch.Parse(r.Context(), req.Text).Query
	case present(req.Filters):
		q = types.NewQuery("")
		if err := json.Unmarshal(req.Filters, &q.Filters); err != nil {
			writeError(w, http.StatusBadRequest, "filters inválidos")
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "se requiere query, text o filters")
		return
	}

	resp, err := s.orch.Search(r.Context(), q)
	if err != nil {
		s.log.Error().Err(err).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "error interno de búsqueda")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type catalogResponse struct {
	Count  int          `json:"count"`
	Dishes []types.Dish `json:"dishes"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{Count: len(s.dishes), Dishes: s.dishes})
}

type healthResponse struct {
	Status          string `json:"status"`
	Dishes          int    `json:"dishes"`
	RemoteAvailable bool   `json:"remote_available"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		Dishes:          len(s.dishes),
		RemoteAvailable: s.orch.RemoteAvailable(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
