// Package pipeline turns raw scraped items into unified, catalog-reconciled
// content records: normalization, classification, ordered-fallback catalog
// matching, confidence scoring, and enrichment. Items are processed one at a
// time or in bounded batches; catalog failures are absorbed into the item's
// match status and never propagate to the caller.
package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamilstream/tamilstream/internal/classify"
	"github.com/tamilstream/tamilstream/internal/config"
	"github.com/tamilstream/tamilstream/internal/match"
	"github.com/tamilstream/tamilstream/internal/metrics"
	"github.com/tamilstream/tamilstream/internal/models"
	"github.com/tamilstream/tamilstream/internal/normalizer"
	"github.com/tamilstream/tamilstream/internal/store"
	"github.com/tamilstream/tamilstream/internal/tmdb"
)

const (
	defaultConcurrency = 5
	defaultLimit       = 50
)

// placeholderMarkers identify poster URLs that are site placeholders rather
// than real artwork.
var placeholderMarkers = []string{"placeholder", "noimage", "no-image", "no-poster", "default.jpg"}

// Options configures a Pipeline.
type Options struct {
	// GateMatches applies the reliability threshold when accepting a catalog
	// candidate: sub-threshold candidates are demoted to Pending. Off by
	// default; the raw score is recorded under Matched either way.
	GateMatches bool

	// IsDubbedSource reports whether a provider id is a dubbing-only source,
	// which forces the TamilDubbed language variant. Nil means no source is.
	IsDubbedSource func(providerID string) bool
}

// BatchOptions bounds a batch run.
type BatchOptions struct {
	// Concurrency is the chunk size: items within a chunk run in parallel,
	// chunks run strictly one after another to cap concurrent catalog calls.
	Concurrency int

	// Limit truncates the input before processing.
	Limit int
}

// BatchResult is the outcome of a batch run.
type BatchResult struct {
	Items   []models.UnifiedContent `json:"items"`
	Matched int                     `json:"matched"`
	Pending int                     `json:"pending"`
	Failed  int                     `json:"failed"`
}

// EnrichOutcome reports a best-effort enrichment. Enrichment never fails the
// item: failures are carried here as an optional reason instead.
type EnrichOutcome struct {
	Item          models.UnifiedContent
	Updated       bool
	FailureReason string
}

// Pipeline orchestrates per-item processing. The catalog client and store are
// injected; the pipeline owns no transport.
type Pipeline struct {
	catalog tmdb.Client
	store   store.ContentStore
	opts    Options
	logger  zerolog.Logger
}

// New creates a pipeline over the given catalog client and store. A nil store
// behaves like an always-missing cache.
func New(catalog tmdb.Client, contentStore store.ContentStore, opts Options) *Pipeline {
	if contentStore == nil {
		contentStore = store.NopStore{}
	}
	return &Pipeline{
		catalog: catalog,
		store:   contentStore,
		opts:    opts,
		logger:  config.GetLogger(),
	}
}

// Process builds a unified record from one raw item: normalize, classify,
// match against the catalog through the fallback chain, and score the match.
// links may carry resolution entries from a prior detail scrape; they
// participate in classification. Catalog errors mark the item Failed and the
// partial record is still returned.
func (p *Pipeline) Process(ctx context.Context, item models.ScrapedItem, links []models.ResolutionLink) models.UnifiedContent {
	now := time.Now()
	record := models.UnifiedContent{
		Title:       item.Title,
		URL:         item.URL,
		Source:      item.Source,
		PosterURL:   item.PosterURL,
		MatchStatus: models.MatchPending,
		Links:       links,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	record.NormalizedTitle = normalizer.NormalizeTitle(item.Title)
	record.Kind = classify.Kind(item.Title, item.URL, links)
	record.Language = classify.LanguageOf(item.Title, p.isDubbedSource(item.Source))

	record.Year = item.Year
	if record.Year == 0 {
		record.Year = normalizer.ExtractYear(item.Title)
	}

	// A previously unified record for the same normalized title short-circuits
	// the catalog round trip.
	if cached, found, err := p.store.FindByNormalizedTitle(ctx, record.NormalizedTitle); err == nil && found && cached.MatchStatus == models.MatchMatched {
		p.logger.Debug().Str("title", record.NormalizedTitle).Int("catalog_id", cached.CatalogID).Msg("Reusing stored catalog match")
		p.copyCandidateFields(&record, &models.MatchCandidate{
			ID:       cached.CatalogID,
			Title:    cached.Title,
			Overview: cached.Overview,
			Rating:   cached.Rating,
			GenreIDs: cached.GenreIDs,
		})
		record.PosterURL = preferNonEmpty(cached.PosterURL, record.PosterURL)
		record.BackdropURL = cached.BackdropURL
		record.MatchStatus = models.MatchMatched
		record.ConfidenceScore = cached.ConfidenceScore
		metrics.PipelineItemsTotal.WithLabelValues(record.MatchStatus.String()).Inc()
		return record
	}

	candidate, err := p.matchCatalog(ctx, &record)
	if err != nil {
		p.logger.Warn().Err(err).Str("title", record.NormalizedTitle).Msg("Catalog lookup failed")
		record.MatchStatus = models.MatchFailed
		metrics.PipelineItemsTotal.WithLabelValues(record.MatchStatus.String()).Inc()
		return record
	}

	if candidate != nil {
		confidence := match.CalculateConfidence(record.NormalizedTitle, candidate.Title, candidate, record.Year)
		if p.opts.GateMatches && !match.IsReliableMatch(confidence, p.matchType(&record, candidate)) {
			p.logger.Debug().
				Str("title", record.NormalizedTitle).
				Str("candidate", candidate.Title).
				Int("confidence", confidence).
				Msg("Candidate below reliability threshold, leaving pending")
		} else {
			record.MatchStatus = models.MatchMatched
			record.ConfidenceScore = confidence
			p.copyCandidateFields(&record, candidate)
		}
	}
	// No candidate leaves the record Pending: NotFound is reserved for a
	// follow-up path that exhausts all retries.

	metrics.PipelineItemsTotal.WithLabelValues(record.MatchStatus.String()).Inc()
	return record
}

// matchCatalog walks the ordered fallback chain, stopping at the first
// non-empty result: primary locale with year, secondary locale with year,
// then both locales again without the year when one was supplied.
func (p *Pipeline) matchCatalog(ctx context.Context, record *models.UnifiedContent) (*models.MatchCandidate, error) {
	type attempt struct {
		locale string
		year   int
	}

	attempts := []attempt{
		{tmdb.LocalePrimary, record.Year},
		{tmdb.LocaleSecondary, record.Year},
	}
	if record.Year != 0 {
		attempts = append(attempts,
			attempt{tmdb.LocalePrimary, 0},
			attempt{tmdb.LocaleSecondary, 0},
		)
	}

	kind := record.Kind.CatalogType()
	for _, a := range attempts {
		candidate, err := p.catalog.Search(ctx, record.NormalizedTitle, record.Kind, a.year, a.locale)
		if err != nil {
			metrics.CatalogLookupsTotal.WithLabelValues(kind, "error").Inc()
			return nil, err
		}
		if candidate != nil {
			metrics.CatalogLookupsTotal.WithLabelValues(kind, "hit").Inc()
			return candidate, nil
		}
		metrics.CatalogLookupsTotal.WithLabelValues(kind, "miss").Inc()
	}

	return nil, nil
}

// matchType picks the reliability-threshold context for a candidate.
func (p *Pipeline) matchType(record *models.UnifiedContent, candidate *models.MatchCandidate) match.Type {
	if normalizer.NormalizeForComparison(record.NormalizedTitle) == normalizer.NormalizeForComparison(candidate.Title) {
		return match.TypeExact
	}
	if record.Year != 0 && candidate.Year() != 0 {
		return match.TypeYear
	}
	return match.TypeFuzzy
}

// copyCandidateFields merges catalog candidate values onto the record,
// preferring candidate values over scraped ones.
func (p *Pipeline) copyCandidateFields(record *models.UnifiedContent, candidate *models.MatchCandidate) {
	record.CatalogID = candidate.ID
	record.Title = preferNonEmpty(candidate.Title, record.Title)
	record.Overview = preferNonEmpty(candidate.Overview, record.Overview)
	if candidate.PosterPath != "" {
		record.PosterURL = p.catalog.PosterURL(candidate.PosterPath)
	}
	if candidate.BackdropPath != "" {
		record.BackdropURL = p.catalog.BackdropURL(candidate.BackdropPath)
	}
	if candidate.Rating != 0 {
		record.Rating = candidate.Rating
	}
	if year := candidate.Year(); year != 0 {
		record.Year = year
	}
	if len(candidate.GenreIDs) > 0 {
		record.GenreIDs = candidate.GenreIDs
	}
	record.UpdatedAt = time.Now()
}

// ProcessBatch processes up to opts.Limit items in sequential chunks of
// opts.Concurrency: full parallelism inside a chunk, none across chunks, so
// concurrent catalog calls stay bounded. Progress is logged per chunk.
func (p *Pipeline) ProcessBatch(ctx context.Context, items []models.ScrapedItem, providerID string, opts BatchOptions) BatchResult {
	start := time.Now()

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if len(items) > limit {
		items = items[:limit]
	}

	processed := make([]models.UnifiedContent, len(items))
	for chunkStart := 0; chunkStart < len(items); chunkStart += concurrency {
		chunkEnd := chunkStart + concurrency
		if chunkEnd > len(items) {
			chunkEnd = len(items)
		}

		var wg sync.WaitGroup
		wg.Add(chunkEnd - chunkStart)
		for i := chunkStart; i < chunkEnd; i++ {
			i := i
			go func() {
				defer wg.Done()
				item := items[i]
				if item.Source == "" {
					item.Source = providerID
				}
				processed[i] = p.Process(ctx, item, nil)
			}()
		}
		wg.Wait()

		p.logger.Info().
			Str("provider", providerID).
			Int("processed", chunkEnd).
			Int("total", len(items)).
			Msg("Batch progress")
	}

	result := BatchResult{Items: processed}
	for i := range processed {
		switch processed[i].MatchStatus {
		case models.MatchMatched:
			result.Matched++
		case models.MatchFailed:
			result.Failed++
		default:
			result.Pending++
		}
	}

	metrics.PipelineBatchDuration.Observe(time.Since(start).Seconds())
	p.logger.Info().
		Str("provider", providerID).
		Int("items", len(processed)).
		Int("matched", result.Matched).
		Int("pending", result.Pending).
		Int("failed", result.Failed).
		Dur("duration", time.Since(start)).
		Msg("Batch complete")

	return result
}

// EnrichWithDetails merges the catalog's extended record (runtime, genre
// names, cast, director, trailer, companies) onto a copy of the item. A fetch
// failure returns the item unchanged; no-op when the item carries no catalog id.
func (p *Pipeline) EnrichWithDetails(ctx context.Context, item models.UnifiedContent) models.UnifiedContent {
	if item.CatalogID == 0 {
		return item
	}

	details, err := p.catalog.GetDetails(ctx, item.CatalogID, item.Kind)
	if err != nil || details == nil {
		if err != nil {
			p.logger.Warn().Err(err).Int("catalog_id", item.CatalogID).Msg("Details fetch failed, returning item unchanged")
		}
		return item
	}

	enriched := item
	if details.Runtime != 0 {
		enriched.Runtime = details.Runtime
	}
	if len(details.Genres) > 0 {
		enriched.Genres = details.Genres
	}
	if len(details.Cast) > 0 {
		enriched.Cast = details.Cast
	}
	if details.Director != "" {
		enriched.Director = details.Director
	}
	if details.TrailerKey != "" {
		enriched.TrailerKey = details.TrailerKey
	}
	if len(details.Companies) > 0 {
		enriched.Companies = details.Companies
	}
	enriched.UpdatedAt = time.Now()
	return enriched
}

// QuickEnrich is the fast path for listing views: backfill poster and rating
// with a search-only catalog match, falling back to the caller-supplied
// page-scrape function for the poster. Best-effort throughout; failures are
// reported in the outcome, never as errors.
func (p *Pipeline) QuickEnrich(ctx context.Context, item models.UnifiedContent, fallbackPoster func(ctx context.Context, url string) (string, error)) EnrichOutcome {
	if hasUsablePoster(item.PosterURL) && item.Rating > 0 {
		return EnrichOutcome{Item: item}
	}

	outcome := EnrichOutcome{Item: item}

	for _, locale := range []string{tmdb.LocalePrimary, tmdb.LocaleSecondary} {
		candidate, err := p.catalog.Search(ctx, item.NormalizedTitle, item.Kind, item.Year, locale)
		if err != nil {
			outcome.FailureReason = err.Error()
			break
		}
		if candidate == nil {
			continue
		}
		if candidate.PosterPath != "" && !hasUsablePoster(outcome.Item.PosterURL) {
			outcome.Item.PosterURL = p.catalog.PosterURL(candidate.PosterPath)
			outcome.Updated = true
		}
		if candidate.Rating != 0 && outcome.Item.Rating == 0 {
			outcome.Item.Rating = candidate.Rating
			outcome.Updated = true
		}
		break
	}

	if !hasUsablePoster(outcome.Item.PosterURL) && fallbackPoster != nil {
		poster, err := fallbackPoster(ctx, item.URL)
		if err != nil {
			outcome.FailureReason = err.Error()
		} else if poster != "" {
			outcome.Item.PosterURL = poster
			outcome.Updated = true
		}
	}

	if outcome.Updated {
		outcome.Item.UpdatedAt = time.Now()
	}
	return outcome
}

func (p *Pipeline) isDubbedSource(providerID string) bool {
	return p.opts.IsDubbedSource != nil && p.opts.IsDubbedSource(providerID)
}

func hasUsablePoster(posterURL string) bool {
	if posterURL == "" {
		return false
	}
	lower := strings.ToLower(posterURL)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

func preferNonEmpty(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}
