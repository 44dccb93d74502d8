// Package tamilmv implements the provider contract for the 1TamilMV forum.
// Listings are forum topics; the title line carries year, quality, and
// language tags that the pipeline strips during normalization.
package tamilmv

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/tamilstream/tamilstream/internal/config"
	"github.com/tamilstream/tamilstream/internal/models"
	"github.com/tamilstream/tamilstream/internal/scrape"
)

const providerID = "tamilmv"

// Provider scrapes the 1TamilMV forum.
type Provider struct {
	client  *scrape.Client
	baseURL string
	enabled bool
	logger  zerolog.Logger
}

// New creates the tamilmv provider from config.
func New(cfg *config.Config, client *scrape.Client) *Provider {
	providerCfg := cfg.Providers[providerID]
	baseURL := providerCfg.BaseURL
	if baseURL == "" {
		baseURL = "https://www.1tamilmv.com"
	}
	return &Provider{
		client:  client,
		baseURL: baseURL,
		enabled: providerCfg.Enabled,
		logger:  config.GetLogger(),
	}
}

// Descriptor implements provider.Provider.
func (p *Provider) Descriptor() models.ProviderDescriptor {
	return models.ProviderDescriptor{
		ID:   providerID,
		Name: "1TamilMV",
		Kinds: []models.ContentKind{
			models.KindMovie,
			models.KindSeries,
			models.KindWebSeries,
		},
		Languages: []models.Language{
			models.LanguageTamil,
			models.LanguageTelugu,
			models.LanguageHindi,
			models.LanguageMalayalam,
			models.LanguageKannada,
			models.LanguageEnglish,
		},
		BaseURL:  p.baseURL,
		Priority: 10,
		Enabled:  p.enabled,
	}
}

// Search implements provider.Provider.
func (p *Provider) Search(ctx context.Context, query string) ([]models.ScrapedItem, error) {
	searchURL := fmt.Sprintf("%s/index.php?/search/&q=%s&type=forums_topic", p.baseURL, url.QueryEscape(query))
	return p.fetchListing(ctx, searchURL)
}

// GetLatest implements provider.Provider.
func (p *Provider) GetLatest(ctx context.Context) ([]models.ScrapedItem, error) {
	return p.fetchListing(ctx, p.baseURL+"/index.php?/discover/")
}

// GetWebSeriesLatest implements the optional provider.WebSeriesLister
// capability using the forum's dedicated web-series section.
func (p *Provider) GetWebSeriesLatest(ctx context.Context) ([]models.ScrapedItem, error) {
	return p.fetchListing(ctx, p.baseURL+"/index.php?/forums/forum/57-web-series/")
}

// ScrapeDetails implements provider.Provider.
func (p *Provider) ScrapeDetails(ctx context.Context, itemURL string) (*models.ContentDetails, error) {
	reader, closer, err := p.client.FetchPage(ctx, itemURL)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return parseDetails(reader)
}

// GetQuickPoster implements the optional provider.QuickPosterFetcher
// capability by reading the topic's og:image meta tag.
func (p *Provider) GetQuickPoster(ctx context.Context, itemURL string) (string, error) {
	reader, closer, err := p.client.FetchPage(ctx, itemURL)
	if err != nil {
		return "", err
	}
	defer closer.Close()

	return parseQuickPoster(reader)
}

// IsHealthy implements the optional provider.HealthChecker capability with a
// cheap fetch of the forum index.
func (p *Provider) IsHealthy(ctx context.Context) (bool, error) {
	_, closer, err := p.client.FetchPage(ctx, p.baseURL)
	if err != nil {
		return false, err
	}
	closer.Close()
	return true, nil
}

func (p *Provider) fetchListing(ctx context.Context, listingURL string) ([]models.ScrapedItem, error) {
	reader, closer, err := p.client.FetchPage(ctx, listingURL)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	items, err := parseListing(reader, p.baseURL)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().Str("url", listingURL).Int("items", len(items)).Msg("Parsed tamilmv listing")
	return items, nil
}
