// Package normalizer provides pure string transforms used to clean scraped
// titles before classification and catalog matching. No I/O.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Bracketed tags: [1080p], (2023), {Tamil + Telugu}, [HQ HDRip] etc.
	bracketedTagRe = regexp.MustCompile(`[\[({][^\])}]*[\])}]`)

	// Free-standing release noise that sites append outside brackets.
	releaseNoiseRe = regexp.MustCompile(`(?i)\b(720p|1080p|2160p|4k|hdrip|hq|dvdscr|predvd|web[- ]?dl|webrip|bluray|brrip|x264|x265|hevc|esub(s)?|untouched|proper|uncut|org(inal)?)\b`)

	// Trailing standalone year, e.g. "Jawan 2023".
	trailingYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	whitespaceRe = regexp.MustCompile(`\s+`)

	// NFD + strip combining marks + NFC folds diacritics to their base runes.
	diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeTitle cleans a scraped title for storage and catalog queries:
// bracketed quality/year/language tags and free-standing release noise are
// stripped, whitespace collapsed, and the result case-folded. Idempotent.
func NormalizeTitle(title string) string {
	s := bracketedTagRe.ReplaceAllString(title, " ")
	// Separators become spaces before the noise pass: "Tamil_HDRip" hides the
	// HDRip token behind a word boundary otherwise.
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, ".", " ")
	s = releaseNoiseRe.ReplaceAllString(s, " ")
	// Keep the year when it is all that's left: "1917" and "2012" are titles,
	// not release tags.
	if stripped := trailingYearRe.ReplaceAllString(s, " "); strings.TrimSpace(stripped) != "" {
		s = stripped
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeForComparison reduces a string to its comparable core: case-folded,
// diacritics and punctuation stripped, whitespace collapsed. Used by the
// confidence engine so that "Léo!" and "leo" compare equal. Idempotent.
func NormalizeForComparison(s string) string {
	if folded, _, err := transform.String(diacriticStripper, s); err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Punctuation and symbols are dropped entirely.
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

// ExtractYear pulls the first plausible release year (1900–2099) out of a raw
// scraped title. Returns 0 when none is present.
func ExtractYear(title string) int {
	match := trailingYearRe.FindString(title)
	if match == "" {
		return 0
	}
	year := 0
	for _, r := range match {
		year = year*10 + int(r-'0')
	}
	return year
}
