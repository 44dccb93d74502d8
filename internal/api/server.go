// Package api exposes the aggregator and pipeline over a thin HTTP surface.
// Handlers only decode requests, delegate to the core, and encode results;
// no aggregation or matching logic lives here.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/tamilstream/tamilstream/internal/config"
	"github.com/tamilstream/tamilstream/internal/models"
	"github.com/tamilstream/tamilstream/internal/pipeline"
	"github.com/tamilstream/tamilstream/internal/provider"
)

// Server wires the HTTP routes to the core.
type Server struct {
	aggregator *provider.Aggregator
	pipeline   *pipeline.Pipeline
	batchOpts  pipeline.BatchOptions
	logger     zerolog.Logger
}

// NewServer builds the HTTP server for the given core components.
func NewServer(cfg *config.Config, aggregator *provider.Aggregator, p *pipeline.Pipeline) *http.Server {
	s := &Server{
		aggregator: aggregator,
		pipeline:   p,
		batchOpts: pipeline.BatchOptions{
			Concurrency: cfg.Pipeline.Concurrency,
			Limit:       cfg.Pipeline.Limit,
		},
		logger: config.GetLogger(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/search", s.handleSearch)
	r.Get("/latest", s.handleLatest)
	r.Get("/webseries/latest", s.handleWebSeriesLatest)
	r.Get("/details", s.handleDetails)
	r.Get("/providers", s.handleProviders)
	r.Post("/providers/{id}/reset", s.handleProviderReset)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler: r,
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch fans the query out across providers and pipes every hit
// through the pipeline in one bounded batch.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing query parameter q"})
		return
	}

	items := s.aggregator.SearchAll(r.Context(), query)
	result := s.pipeline.ProcessBatch(r.Context(), items, "", s.batchOpts)

	s.logger.Debug().Str("query", query).Int("items", len(result.Items)).Msg("Search completed")
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	byProvider := s.aggregator.LatestAll(r.Context())

	results := make(map[string]pipeline.BatchResult, len(byProvider))
	for providerID, items := range byProvider {
		result := s.pipeline.ProcessBatch(r.Context(), items, providerID, s.batchOpts)
		results[providerID] = s.backfillListing(r.Context(), providerID, result)
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleWebSeriesLatest(w http.ResponseWriter, r *http.Request) {
	byProvider := s.aggregator.LatestWebSeries(r.Context())

	results := make(map[string]pipeline.BatchResult, len(byProvider))
	for providerID, items := range byProvider {
		result := s.pipeline.ProcessBatch(r.Context(), items, providerID, s.batchOpts)
		results[providerID] = s.backfillListing(r.Context(), providerID, result)
	}
	writeJSON(w, http.StatusOK, results)
}

// backfillListing runs the pipeline's quick enrichment over a listing batch:
// items still missing a poster or rating get a search-only catalog pass, with
// the provider's quick-poster scrape as the last fallback.
func (s *Server) backfillListing(ctx context.Context, providerID string, result pipeline.BatchResult) pipeline.BatchResult {
	for i := range result.Items {
		outcome := s.pipeline.QuickEnrich(ctx, result.Items[i], func(ctx context.Context, itemURL string) (string, error) {
			return s.aggregator.QuickPoster(ctx, itemURL, providerID)
		})
		if outcome.Updated {
			result.Items[i] = outcome.Item
		}
	}
	return result
}

// handleDetails scrapes one detail page, unifies it, and enriches it with the
// catalog's extended record when a match lands.
func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	itemURL := r.URL.Query().Get("url")
	if itemURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing query parameter url"})
		return
	}
	providerID := r.URL.Query().Get("provider")

	// The aggregator resolves the owning provider when the param is omitted;
	// its id is what the unified record's source must carry.
	details, resolvedID := s.aggregator.DetailsFrom(r.Context(), itemURL, providerID)
	if details == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no provider could resolve the url"})
		return
	}

	item := models.ScrapedItem{
		Title:     details.Title,
		URL:       itemURL,
		PosterURL: details.PosterURL,
		Source:    resolvedID,
	}
	record := s.pipeline.Process(r.Context(), item, details.Links)
	record.Overview = firstNonEmpty(record.Overview, details.Overview)
	record = s.pipeline.EnrichWithDetails(r.Context(), record)

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.aggregator.Registry().Snapshot())
}

func (s *Server) handleProviderReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.aggregator.Registry().ResetErrors(id) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown provider " + id})
		return
	}
	health, _ := s.aggregator.Registry().Health(id)
	writeJSON(w, http.StatusOK, health)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
