// Package provider defines the contract every content source implements and
// the registry/aggregator that manage a fleet of them: registration, health
// tracking, and cross-provider fan-out with failure isolation.
package provider

import (
	"context"

	"github.com/tamilstream/tamilstream/internal/models"
)

// Provider is the capability contract implemented by each content source.
// The core depends only on this interface, never on a concrete site.
type Provider interface {
	// Descriptor returns the static identity and capability metadata for
	// this source. Must report at least one content kind and one language.
	Descriptor() models.ProviderDescriptor

	// Search returns listing items matching the query.
	Search(ctx context.Context, query string) ([]models.ScrapedItem, error)

	// GetLatest returns the most recently listed items.
	GetLatest(ctx context.Context) ([]models.ScrapedItem, error)

	// ScrapeDetails fetches and parses a single item's detail page.
	ScrapeDetails(ctx context.Context, url string) (*models.ContentDetails, error)
}

// HealthChecker is an optional capability: providers that can cheaply probe
// their upstream implement it. Providers without it are assumed healthy.
type HealthChecker interface {
	IsHealthy(ctx context.Context) (bool, error)
}

// QuickPosterFetcher is an optional capability: extract a poster URL from a
// detail page without a full detail scrape.
type QuickPosterFetcher interface {
	GetQuickPoster(ctx context.Context, url string) (string, error)
}

// WebSeriesLister is an optional capability: sources with a dedicated
// web-series section expose its latest listings separately.
type WebSeriesLister interface {
	GetWebSeriesLatest(ctx context.Context) ([]models.ScrapedItem, error)
}
