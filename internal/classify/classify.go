// Package classify derives a content kind and language variant for a scraped
// item from its title, URL, and download-link labels. Pure functions; the
// pattern tables encode the conventions of the source-site domain.
package classify

import (
	"regexp"
	"strings"

	"github.com/tamilstream/tamilstream/internal/models"
)

var (
	// Episode-style naming: "Season 2", "S02E05", "Episode 7", "Part 2 of 5", "Day 3".
	seriesPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bseason\s*\d+`),
		regexp.MustCompile(`(?i)\bs\d{1,2}\s*e\d{1,3}\b`),
		regexp.MustCompile(`(?i)\bepisode\s*\d+`),
		regexp.MustCompile(`(?i)\bep\s*\d+\b`),
		regexp.MustCompile(`(?i)\bpart\s*\d+\s*of\s*\d+`),
		regexp.MustCompile(`(?i)\bday\s*\d+\b`),
	}

	// URL path segments that mark a dedicated web-series section.
	webSeriesSegments = []string{"/webseries", "/web-series", "/web_series", "/wseries"}
)

// languageKeywords maps title keywords to language variants, checked in order.
// First match wins.
var languageKeywords = []struct {
	keyword  string
	language models.Language
}{
	{"tamil", models.LanguageTamil},
	{"telugu", models.LanguageTelugu},
	{"hindi", models.LanguageHindi},
	{"malayalam", models.LanguageMalayalam},
	{"kannada", models.LanguageKannada},
	{"english", models.LanguageEnglish},
}

// Kind classifies a scraped item as Series, WebSeries, or Movie.
//
// A textual episode pattern in the title forces Series. A dedicated
// web-series URL segment yields WebSeries unless an episode pattern already
// forced Series. An episode-like label among the download links also forces
// Series. Everything else is a Movie.
func Kind(title, url string, links []models.ResolutionLink) models.ContentKind {
	if matchesSeriesPattern(title) || matchesSeriesPattern(url) {
		return models.KindSeries
	}

	for _, link := range links {
		if matchesSeriesPattern(link.Label) {
			return models.KindSeries
		}
	}

	lowerURL := strings.ToLower(url)
	for _, segment := range webSeriesSegments {
		if strings.Contains(lowerURL, segment) {
			return models.KindWebSeries
		}
	}

	return models.KindMovie
}

func matchesSeriesPattern(s string) bool {
	for _, re := range seriesPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// LanguageOf classifies the language variant of a scraped item.
//
// "dubbed" in the title, or the item originating from a known dubbing-only
// source, yields TamilDubbed. Otherwise the first keyword hit from the
// language table wins. The default is Tamil, the baseline assumption for
// this source domain.
func LanguageOf(title string, dubbedOnlySource bool) models.Language {
	lower := strings.ToLower(title)

	if dubbedOnlySource || strings.Contains(lower, "dubbed") {
		return models.LanguageTamilDubbed
	}

	for _, entry := range languageKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.language
		}
	}

	return models.LanguageTamil
}
