package provider

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tamilstream/tamilstream/internal/apperrors"
	"github.com/tamilstream/tamilstream/internal/config"
	"github.com/tamilstream/tamilstream/internal/metrics"
	"github.com/tamilstream/tamilstream/internal/models"
)

// knownSiteHints maps URL substrings to provider ids, as a last-resort
// resolution heuristic when neither host matching nor id substring matching
// identifies the owning provider.
var knownSiteHints = map[string]string{
	"tamilmv":       "tamilmv",
	"tamilblasters": "tamilmv",
	"tamilyogi":     "tamilyogi",
}

// Aggregator fans queries out across the registry's queryable providers with
// per-provider failure isolation: a failing provider records an error against
// its own health and contributes an empty result set, never a propagated
// error.
type Aggregator struct {
	registry *Registry
	logger   zerolog.Logger
}

// NewAggregator creates an aggregator over the given registry
func NewAggregator(registry *Registry) *Aggregator {
	return &Aggregator{
		registry: registry,
		logger:   config.GetLogger(),
	}
}

// Registry exposes the underlying registry for health operations
func (a *Aggregator) Registry() *Registry {
	return a.registry
}

// SearchAll issues the query to every queryable provider concurrently, waits
// for all of them to settle, and returns the concatenated results
// deduplicated by URL (first occurrence wins). Result order is the insertion
// order of first-seen URLs in completion order; no provider ordering is
// guaranteed.
func (a *Aggregator) SearchAll(ctx context.Context, query string) []models.ScrapedItem {
	return a.fanOutMerged(ctx, "search", func(ctx context.Context, p Provider) ([]models.ScrapedItem, error) {
		return p.Search(ctx, query)
	})
}

// LatestAll fetches the latest listings from every queryable provider
// concurrently and returns them keyed by provider id, with no cross-provider
// merge or dedup. Failure isolation is identical to SearchAll.
func (a *Aggregator) LatestAll(ctx context.Context) map[string][]models.ScrapedItem {
	return a.fanOutKeyed(ctx, "latest", func(ctx context.Context, p Provider) ([]models.ScrapedItem, error) {
		return p.GetLatest(ctx)
	})
}

// LatestWebSeries fetches dedicated web-series listings from every queryable
// provider that implements the optional WebSeriesLister capability, keyed by
// provider id.
func (a *Aggregator) LatestWebSeries(ctx context.Context) map[string][]models.ScrapedItem {
	var listers []Provider
	for _, p := range a.registry.QueryableProviders() {
		if _, ok := p.(WebSeriesLister); ok {
			listers = append(listers, p)
		}
	}
	return a.fanOutKeyedOver(ctx, listers, "webseries_latest", func(ctx context.Context, p Provider) ([]models.ScrapedItem, error) {
		return p.(WebSeriesLister).GetWebSeriesLatest(ctx)
	})
}

// DetailsFrom scrapes an item's detail page. When providerID is empty it is
// resolved from the URL: first by host against each provider's base address,
// then by id substring, then by known-site hints. The second return value is
// the id of the provider that served the page, so callers can attribute the
// result even when they passed an empty id. Returns nil when no provider
// resolves or the provider's own lookup fails.
func (a *Aggregator) DetailsFrom(ctx context.Context, itemURL, providerID string) (*models.ContentDetails, string) {
	if providerID == "" {
		providerID = a.resolveProvider(itemURL)
	}
	if providerID == "" {
		a.logger.Debug().Str("url", itemURL).Msg("No provider resolved for URL")
		return nil, ""
	}

	p, ok := a.registry.Get(providerID)
	if !ok {
		a.logger.Debug().Str("provider", providerID).Msg("Unknown provider id for details")
		return nil, ""
	}

	details, err := p.ScrapeDetails(ctx, itemURL)
	if err != nil {
		a.recordFailure(providerID, "details", err)
		return nil, providerID
	}

	a.recordSuccess(providerID, "details")
	return details, providerID
}

// QuickPoster fetches just the poster URL for an item page from the provider
// that serves it, when that provider implements the optional
// QuickPosterFetcher capability. Returns "" when the provider does not
// resolve or lacks the capability.
func (a *Aggregator) QuickPoster(ctx context.Context, itemURL, providerID string) (string, error) {
	if providerID == "" {
		providerID = a.resolveProvider(itemURL)
	}

	p, ok := a.registry.Get(providerID)
	if !ok {
		return "", nil
	}
	fetcher, ok := p.(QuickPosterFetcher)
	if !ok {
		return "", nil
	}

	poster, err := fetcher.GetQuickPoster(ctx, itemURL)
	if err != nil {
		return "", a.recordFailure(providerID, "quick_poster", err)
	}

	a.recordSuccess(providerID, "quick_poster")
	return poster, nil
}

// resolveProvider maps a URL to a registered provider id. A structured-parse
// failure of a candidate base address is treated as non-matching, never as a
// resolution failure.
func (a *Aggregator) resolveProvider(itemURL string) string {
	parsed, err := url.Parse(itemURL)
	host := ""
	if err == nil {
		host = strings.ToLower(parsed.Hostname())
	}

	statuses := a.registry.Snapshot()

	if host != "" {
		for _, s := range statuses {
			base, err := url.Parse(s.Descriptor.BaseURL)
			if err != nil || base.Hostname() == "" {
				continue
			}
			if strings.EqualFold(base.Hostname(), host) {
				return s.Descriptor.ID
			}
		}
	}

	lowerURL := strings.ToLower(itemURL)
	for _, s := range statuses {
		if strings.Contains(lowerURL, strings.ToLower(s.Descriptor.ID)) {
			return s.Descriptor.ID
		}
	}

	for hint, id := range knownSiteHints {
		if strings.Contains(lowerURL, hint) {
			if _, registered := a.registry.Get(id); registered {
				return id
			}
		}
	}

	return ""
}

// fanOutMerged runs op against all queryable providers in parallel, waits for
// every task to settle, and merges the results with URL dedup.
func (a *Aggregator) fanOutMerged(ctx context.Context, op string, call func(context.Context, Provider) ([]models.ScrapedItem, error)) []models.ScrapedItem {
	providers := a.registry.QueryableProviders()

	var mu sync.Mutex
	var collected []models.ScrapedItem

	var wg sync.WaitGroup
	wg.Add(len(providers))
	for _, p := range providers {
		p := p
		go func() {
			defer wg.Done()
			items := a.callProvider(ctx, p, op, call)
			mu.Lock()
			collected = append(collected, items...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	return dedupByURL(collected)
}

// fanOutKeyed runs op against all queryable providers in parallel and keys
// the results by provider id, no cross-provider merge.
func (a *Aggregator) fanOutKeyed(ctx context.Context, op string, call func(context.Context, Provider) ([]models.ScrapedItem, error)) map[string][]models.ScrapedItem {
	return a.fanOutKeyedOver(ctx, a.registry.QueryableProviders(), op, call)
}

func (a *Aggregator) fanOutKeyedOver(ctx context.Context, providers []Provider, op string, call func(context.Context, Provider) ([]models.ScrapedItem, error)) map[string][]models.ScrapedItem {
	var mu sync.Mutex
	results := make(map[string][]models.ScrapedItem, len(providers))

	var wg sync.WaitGroup
	wg.Add(len(providers))
	for _, p := range providers {
		p := p
		go func() {
			defer wg.Done()
			items := a.callProvider(ctx, p, op, call)
			mu.Lock()
			results[p.Descriptor().ID] = items
			mu.Unlock()
		}()
	}
	wg.Wait()

	return results
}

// callProvider invokes one provider's operation, tags the items with the
// provider id, and records the outcome against its health. Errors become
// empty result sets.
func (a *Aggregator) callProvider(ctx context.Context, p Provider, op string, call func(context.Context, Provider) ([]models.ScrapedItem, error)) []models.ScrapedItem {
	id := p.Descriptor().ID

	items, err := call(ctx, p)
	if err != nil {
		a.recordFailure(id, op, err)
		return nil
	}

	a.recordSuccess(id, op)
	metrics.ProviderItemsScrapedTotal.WithLabelValues(id).Add(float64(len(items)))

	for i := range items {
		items[i].Source = id
	}
	return items
}

// recordFailure wraps the raw provider error in a ProviderCallError so the
// health record and logs carry the provider and operation, and returns the
// wrapped error for callers that surface it.
func (a *Aggregator) recordFailure(id, op string, err error) error {
	callErr := apperrors.NewProviderCallError(id, op, err)
	a.logger.Warn().Err(callErr).Str("provider", id).Str("operation", op).Msg("Provider call failed")
	a.registry.RecordError(id, callErr)
	metrics.ProviderCallsTotal.WithLabelValues(id, op, "error").Inc()
	return callErr
}

func (a *Aggregator) recordSuccess(id, op string) {
	a.registry.RecordSuccess(id)
	metrics.ProviderCallsTotal.WithLabelValues(id, op, "success").Inc()
}

// dedupByURL keeps the first occurrence of each URL, preserving insertion
// order of first-seen URLs.
func dedupByURL(items []models.ScrapedItem) []models.ScrapedItem {
	seen := make(map[string]struct{}, len(items))
	deduped := make([]models.ScrapedItem, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.URL]; dup {
			continue
		}
		seen[item.URL] = struct{}{}
		deduped = append(deduped, item)
	}
	return deduped
}
