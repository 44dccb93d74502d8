// Package match scores how trustworthy a catalog candidate is for a scraped
// title. Pure, stateless functions; no I/O.
package match

import (
	"math"

	"github.com/tamilstream/tamilstream/internal/models"
	"github.com/tamilstream/tamilstream/internal/normalizer"
)

// Type is the context a confidence score was produced under. The reliability
// threshold differs by type.
type Type string

const (
	TypeExact Type = "exact"
	TypeFuzzy Type = "fuzzy"
	TypeYear  Type = "year"
)

// Quality is the presentation band for a confidence score. Display only; it
// never gates matching decisions.
type Quality string

const (
	QualityExcellent  Quality = "excellent"
	QualityGood       Quality = "good"
	QualityFair       Quality = "fair"
	QualityPoor       Quality = "poor"
	QualityUnreliable Quality = "unreliable"
)

// SimilarityRatio computes 1 - editDistance/maxLen over the two strings after
// comparison normalization. Equal-after-normalization strings score 1; either
// string empty after normalization scores 0.
func SimilarityRatio(a, b string) float64 {
	na := normalizer.NormalizeForComparison(a)
	nb := normalizer.NormalizeForComparison(b)

	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	ra, rb := []rune(na), []rune(nb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	return 1 - float64(editDistance(ra, rb))/float64(maxLen)
}

// editDistance is the classic single-character insert/delete/substitute edit
// distance, each operation cost 1. Two-row dynamic programming.
func editDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minOf(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// CalculateConfidence scores a catalog candidate against a scraped title,
// returning an integer clamped to [0,100]. Additive components:
//
//   - title similarity, up to 60 points
//   - year agreement, up to 20 points (only when both years are known)
//   - catalog popularity, up to 10 points
//   - vote-count reliability, up to 10 points
//   - +10 bonus for exact equality after comparison normalization
//
// scrapedYear 0 means the year is unknown.
func CalculateConfidence(scrapedTitle, catalogTitle string, candidate *models.MatchCandidate, scrapedYear int) int {
	score := int(math.Round(SimilarityRatio(scrapedTitle, catalogTitle) * 60))

	if scrapedYear != 0 && candidate != nil {
		if candidateYear := candidate.Year(); candidateYear != 0 {
			switch diff := absInt(scrapedYear - candidateYear); diff {
			case 0:
				score += 20
			case 1:
				score += 15
			case 2:
				score += 10
			}
		}
	}

	if candidate != nil {
		switch {
		case candidate.Popularity > 100:
			score += 10
		case candidate.Popularity > 50:
			score += 7
		case candidate.Popularity > 10:
			score += 5
		case candidate.Popularity > 0:
			score += 2
		}

		switch {
		case candidate.VoteCount > 1000:
			score += 10
		case candidate.VoteCount > 100:
			score += 7
		case candidate.VoteCount > 10:
			score += 4
		}
	}

	if normalizer.NormalizeForComparison(scrapedTitle) == normalizer.NormalizeForComparison(catalogTitle) &&
		normalizer.NormalizeForComparison(scrapedTitle) != "" {
		score += 10
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// IsReliableMatch reports whether a confidence score clears the threshold for
// the given match type. Below-threshold matches must be discarded by the
// caller, not surfaced as low-confidence hits.
func IsReliableMatch(confidence int, matchType Type) bool {
	switch matchType {
	case TypeExact:
		return confidence >= 50
	case TypeYear:
		return confidence >= 70
	default:
		return confidence >= 60
	}
}

// MatchQuality bands a confidence score for display
func MatchQuality(confidence int) Quality {
	switch {
	case confidence >= 90:
		return QualityExcellent
	case confidence >= 75:
		return QualityGood
	case confidence >= 60:
		return QualityFair
	case confidence >= 40:
		return QualityPoor
	default:
		return QualityUnreliable
	}
}
