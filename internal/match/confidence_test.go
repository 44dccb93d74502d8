package match

import (
	"testing"

	"github.com/tamilstream/tamilstream/internal/models"
)

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "Jawan", "Jawan", 1},
		{"identical after normalization", "Léo!", "leo", 1},
		{"empty a", "", "Jawan", 0},
		{"empty b", "Jawan", "", 0},
		{"punctuation only", "!!!", "Jawan", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimilarityRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("SimilarityRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityRatio_CloseTitles(t *testing.T) {
	got := SimilarityRatio("Jawan", "Jawaan")
	if got <= 0.7 || got >= 1 {
		t.Errorf("SimilarityRatio(Jawan, Jawaan) = %v, want in (0.7, 1)", got)
	}
}

func TestCalculateConfidence_PerfectMatch(t *testing.T) {
	candidate := &models.MatchCandidate{Popularity: 150, VoteCount: 2000}

	got := CalculateConfidence("Jawan", "Jawan", candidate, 0)
	if got < 90 {
		t.Errorf("CalculateConfidence perfect match = %d, want >= 90", got)
	}
}

func TestCalculateConfidence_Mismatch(t *testing.T) {
	got := CalculateConfidence("Jawan 2023", "Leo", &models.MatchCandidate{}, 0)
	if got >= 30 {
		t.Errorf("CalculateConfidence mismatch = %d, want < 30", got)
	}
}

func TestCalculateConfidence_YearAgreement(t *testing.T) {
	tests := []struct {
		name        string
		scrapedYear int
		releaseDate string
		wantBonus   int
	}{
		{"exact", 2023, "2023-09-07", 20},
		{"off by one", 2023, "2022-09-07", 15},
		{"off by two", 2023, "2021-09-07", 10},
		{"off by three", 2023, "2020-09-07", 0},
		{"unknown scraped year", 0, "2023-09-07", 0},
		{"unknown candidate year", 2023, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := CalculateConfidence("Vikram", "Vikram", &models.MatchCandidate{}, 0)
			candidate := &models.MatchCandidate{ReleaseDate: tt.releaseDate}
			got := CalculateConfidence("Vikram", "Vikram", candidate, tt.scrapedYear)
			if got-base != tt.wantBonus {
				t.Errorf("year bonus = %d, want %d", got-base, tt.wantBonus)
			}
		})
	}
}

func TestCalculateConfidence_PopularityBands(t *testing.T) {
	tests := []struct {
		popularity float64
		wantBonus  int
	}{
		{150, 10},
		{60, 7},
		{20, 5},
		{1, 2},
		{0, 0},
	}

	for _, tt := range tests {
		base := CalculateConfidence("Vikram", "Vikram", &models.MatchCandidate{}, 0)
		got := CalculateConfidence("Vikram", "Vikram", &models.MatchCandidate{Popularity: tt.popularity}, 0)
		if got-base != tt.wantBonus {
			t.Errorf("popularity %v bonus = %d, want %d", tt.popularity, got-base, tt.wantBonus)
		}
	}
}

func TestCalculateConfidence_VoteCountBands(t *testing.T) {
	tests := []struct {
		votes     int
		wantBonus int
	}{
		{2000, 10},
		{500, 7},
		{50, 4},
		{5, 0},
	}

	for _, tt := range tests {
		base := CalculateConfidence("Vikram", "Vikram", &models.MatchCandidate{}, 0)
		got := CalculateConfidence("Vikram", "Vikram", &models.MatchCandidate{VoteCount: tt.votes}, 0)
		if got-base != tt.wantBonus {
			t.Errorf("votes %d bonus = %d, want %d", tt.votes, got-base, tt.wantBonus)
		}
	}
}

func TestCalculateConfidence_ClampedTo100(t *testing.T) {
	candidate := &models.MatchCandidate{
		ReleaseDate: "2023-09-07",
		Popularity:  500,
		VoteCount:   5000,
	}
	got := CalculateConfidence("Jawan", "Jawan", candidate, 2023)
	if got != 100 {
		t.Errorf("CalculateConfidence = %d, want clamped to 100", got)
	}
}

func TestCalculateConfidence_NilCandidate(t *testing.T) {
	got := CalculateConfidence("Jawan", "Jawan", nil, 2023)
	// 60 similarity + 10 exact bonus, no candidate signals.
	if got != 70 {
		t.Errorf("CalculateConfidence(nil candidate) = %d, want 70", got)
	}
}

func TestIsReliableMatch_ThresholdByType(t *testing.T) {
	if !IsReliableMatch(55, TypeExact) {
		t.Error("IsReliableMatch(55, exact) = false, want true")
	}
	if IsReliableMatch(55, TypeYear) {
		t.Error("IsReliableMatch(55, year) = true, want false")
	}
	if IsReliableMatch(55, TypeFuzzy) {
		t.Error("IsReliableMatch(55, fuzzy) = true, want false")
	}
	if !IsReliableMatch(60, TypeFuzzy) {
		t.Error("IsReliableMatch(60, fuzzy) = false, want true")
	}
	if !IsReliableMatch(70, TypeYear) {
		t.Error("IsReliableMatch(70, year) = false, want true")
	}
}

func TestMatchQuality(t *testing.T) {
	tests := []struct {
		confidence int
		want       Quality
	}{
		{95, QualityExcellent},
		{90, QualityExcellent},
		{80, QualityGood},
		{65, QualityFair},
		{45, QualityPoor},
		{30, QualityUnreliable},
	}

	for _, tt := range tests {
		if got := MatchQuality(tt.confidence); got != tt.want {
			t.Errorf("MatchQuality(%d) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}
