package models

import "time"

// ScrapedItem is the raw output of a provider call. Immutable once returned;
// the URL is unique per item within a provider and drives deduplication.
type ScrapedItem struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Year      int    `json:"year,omitempty"`
	PosterURL string `json:"posterUrl,omitempty"`
	Quality   string `json:"quality,omitempty"`
	Source    string `json:"source"`
}

// ResolutionLink is a single download/stream entry scraped from a detail page
type ResolutionLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// CastMember is one cast entry merged from the catalog's extended details
type CastMember struct {
	Name       string `json:"name"`
	Character  string `json:"character,omitempty"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// ContentDetails is the result of scraping a provider's detail page
type ContentDetails struct {
	Title     string           `json:"title"`
	PosterURL string           `json:"posterUrl,omitempty"`
	Overview  string           `json:"overview,omitempty"`
	Links     []ResolutionLink `json:"links,omitempty"`
}

// UnifiedContent is the pipeline's normalized, provider-agnostic output
// record. Created once per raw item; a later enrichment call may fill in
// extended catalog fields on a copy.
type UnifiedContent struct {
	Title           string           `json:"title"`
	URL             string           `json:"url"`
	Source          string           `json:"source"`
	Kind            ContentKind      `json:"kind"`
	Language        Language         `json:"language"`
	NormalizedTitle string           `json:"normalizedTitle"`
	Year            int              `json:"year,omitempty"`
	CatalogID       int              `json:"catalogId,omitempty"`
	MatchStatus     MatchStatus      `json:"matchStatus"`
	ConfidenceScore int              `json:"confidenceScore"`
	PosterURL       string           `json:"posterUrl,omitempty"`
	BackdropURL     string           `json:"backdropUrl,omitempty"`
	Rating          float64          `json:"rating,omitempty"`
	Overview        string           `json:"overview,omitempty"`
	GenreIDs        []int            `json:"genreIds,omitempty"`
	Genres          []string         `json:"genres,omitempty"`
	Runtime         int              `json:"runtime,omitempty"`
	Cast            []CastMember     `json:"cast,omitempty"`
	Director        string           `json:"director,omitempty"`
	TrailerKey      string           `json:"trailerKey,omitempty"`
	Companies       []string         `json:"companies,omitempty"`
	Links           []ResolutionLink `json:"links,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}
