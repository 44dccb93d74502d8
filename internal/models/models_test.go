package models

import "testing"

func TestContentKindCatalogType(t *testing.T) {
	tests := []struct {
		kind ContentKind
		want string
	}{
		{KindMovie, "movie"},
		{KindSeries, "tv"},
		{KindWebSeries, "movie"},
		{KindUnknown, "movie"},
	}

	for _, tt := range tests {
		if got := tt.kind.CatalogType(); got != tt.want {
			t.Errorf("%s.CatalogType() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseContentKind(t *testing.T) {
	tests := []struct {
		in   string
		want ContentKind
	}{
		{"movie", KindMovie},
		{"Series", KindSeries},
		{"web-series", KindWebSeries},
		{"webseries", KindWebSeries},
		{"garbage", KindUnknown},
	}

	for _, tt := range tests {
		if got := ParseContentKind(tt.in); got != tt.want {
			t.Errorf("ParseContentKind(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMatchCandidateYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2023-09-07", 2023},
		{"1975-01-01", 1975},
		{"", 0},
		{"20", 0},
		{"soon", 0},
	}

	for _, tt := range tests {
		c := MatchCandidate{ReleaseDate: tt.date}
		if got := c.Year(); got != tt.want {
			t.Errorf("Year(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}
