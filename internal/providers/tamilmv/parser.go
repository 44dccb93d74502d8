package tamilmv

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tamilstream/tamilstream/internal/models"
	"github.com/tamilstream/tamilstream/internal/normalizer"
)

// qualityRe pulls the first quality label out of a topic title,
// e.g. "[1080p HQ HDRip]" or "720p".
var qualityRe = regexp.MustCompile(`(?i)\b(2160p|4k|1080p|720p|480p|360p)\b`)

// parseListing extracts items from a forum topic listing. Topic links live in
// the title cell of each row; duplicates from "latest poster" links are
// filtered by keeping only links that carry the topic title attribute.
func parseListing(body io.Reader, baseURL string) ([]models.ScrapedItem, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var items []models.ScrapedItem
	doc.Find("span.ipsType_break a, h4.ipsDataItem_title a").Each(func(_ int, link *goquery.Selection) {
		href, exists := link.Attr("href")
		if !exists {
			return
		}

		title := strings.TrimSpace(link.Text())
		if title == "" {
			title = strings.TrimSpace(link.AttrOr("title", ""))
		}
		if title == "" {
			return
		}

		items = append(items, models.ScrapedItem{
			Title:   title,
			URL:     absoluteURL(baseURL, href),
			Year:    normalizer.ExtractYear(title),
			Quality: qualityRe.FindString(title),
			Source:  providerID,
		})
	})

	return items, nil
}

// parseDetails extracts the topic's first post: title, poster image, and the
// magnet/download anchors grouped as resolution links.
func parseDetails(body io.Reader) (*models.ContentDetails, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	details := &models.ContentDetails{
		Title: strings.TrimSpace(doc.Find("h1.ipsType_pageTitle").First().Text()),
	}

	if poster, exists := doc.Find(`meta[property="og:image"]`).First().Attr("content"); exists {
		details.PosterURL = strings.TrimSpace(poster)
	}
	if details.PosterURL == "" {
		if src, exists := doc.Find("div.ipsType_richText img").First().Attr("src"); exists {
			details.PosterURL = strings.TrimSpace(src)
		}
	}

	doc.Find(`div.ipsType_richText a[href^="magnet:"], div.ipsType_richText a[data-fileext="torrent"]`).Each(func(_ int, link *goquery.Selection) {
		href, exists := link.Attr("href")
		if !exists {
			return
		}
		label := strings.TrimSpace(link.Text())
		if label == "" {
			label = qualityRe.FindString(href)
		}
		details.Links = append(details.Links, models.ResolutionLink{
			Label: label,
			URL:   href,
		})
	})

	return details, nil
}

// parseQuickPoster reads only the og:image meta tag.
func parseQuickPoster(body io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	poster, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content")
	return strings.TrimSpace(poster), nil
}

func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(href, "/")
}
