// Package tamilyogi implements the provider contract for TamilYogi, a
// blog-style catalog of Tamil-dubbed movies. The source is dubbing-only, so
// the pipeline classifies everything from it as TamilDubbed.
package tamilyogi

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/tamilstream/tamilstream/internal/config"
	"github.com/tamilstream/tamilstream/internal/models"
	"github.com/tamilstream/tamilstream/internal/normalizer"
	"github.com/tamilstream/tamilstream/internal/scrape"
)

const providerID = "tamilyogi"

// Provider scrapes the TamilYogi blog listing.
type Provider struct {
	client  *scrape.Client
	baseURL string
	enabled bool
	logger  zerolog.Logger
}

// New creates the tamilyogi provider from config.
func New(cfg *config.Config, client *scrape.Client) *Provider {
	providerCfg := cfg.Providers[providerID]
	baseURL := providerCfg.BaseURL
	if baseURL == "" {
		baseURL = "https://tamilyogi.fm"
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
		ID:        providerID,
		Name:      "TamilYogi",
		Kinds:     []models.ContentKind{models.KindMovie},
		Languages: []models.Language{models.LanguageTamilDubbed},
		BaseURL:   p.baseURL,
		Priority:  5,
		Enabled:   p.enabled,
	}
}

// Search implements provider.Provider.
func (p *Provider) Search(ctx context.Context, query string) ([]models.ScrapedItem, error) {
	return p.fetchListing(ctx, fmt.Sprintf("%s/?s=%s", p.baseURL, url.QueryEscape(query)))
}

// GetLatest implements provider.Provider.
func (p *Provider) GetLatest(ctx context.Context) ([]models.ScrapedItem, error) {
	return p.fetchListing(ctx, p.baseURL+"/category/tamil-dubbed-movies/")
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

func (p *Provider) fetchListing(ctx context.Context, listingURL string) ([]models.ScrapedItem, error) {
	reader, closer, err := p.client.FetchPage(ctx, listingURL)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	items, err := parseListing(reader)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().Str("url", listingURL).Int("items", len(items)).Msg("Parsed tamilyogi listing")
	return items, nil
}

// parseListing extracts movie entries from the blog's post grid.
func parseListing(body io.Reader) ([]models.ScrapedItem, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var items []models.ScrapedItem
	doc.Find("ul.loop-content li, article.post").Each(func(_ int, entry *goquery.Selection) {
		link := entry.Find("a").First()
		href, exists := link.Attr("href")
		if !exists {
			return
		}

		title := strings.TrimSpace(link.AttrOr("title", ""))
		if title == "" {
			title = strings.TrimSpace(entry.Find("h2, .entry-title").First().Text())
		}
		if title == "" {
			return
		}

		item := models.ScrapedItem{
			Title:  title,
			URL:    href,
			Year:   normalizer.ExtractYear(title),
			Source: providerID,
		}
		if poster, exists := entry.Find("img").First().Attr("src"); exists {
			item.PosterURL = strings.TrimSpace(poster)
		}

		items = append(items, item)
	})

	return items, nil
}

// parseDetails extracts title, poster, synopsis, and embedded player links
// from a movie page.
func parseDetails(body io.Reader) (*models.ContentDetails, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	details := &models.ContentDetails{
		Title:    strings.TrimSpace(doc.Find("h1.entry-title").First().Text()),
		Overview: strings.TrimSpace(doc.Find("div.entry-content p").First().Text()),
	}

	if poster, exists := doc.Find(`meta[property="og:image"]`).First().Attr("content"); exists {
		details.PosterURL = strings.TrimSpace(poster)
	}

	doc.Find("div.entry-content iframe").Each(func(i int, frame *goquery.Selection) {
		src, exists := frame.Attr("src")
		if !exists {
			return
		}
		details.Links = append(details.Links, models.ResolutionLink{
			Label: fmt.Sprintf("player %d", i+1),
			URL:   src,
		})
	})

	return details, nil
}
