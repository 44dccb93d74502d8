package models

// MatchCandidate is one search result from the external metadata catalog.
// Read-only within the core; path fragments are resolved to full URLs by the
// catalog client's URL builders.
type MatchCandidate struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"originalTitle,omitempty"`
	ReleaseDate   string  `json:"releaseDate,omitempty"` // "2006-01-02"
	Overview      string  `json:"overview,omitempty"`
	PosterPath    string  `json:"posterPath,omitempty"`
	BackdropPath  string  `json:"backdropPath,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	VoteCount     int     `json:"voteCount,omitempty"`
	Popularity    float64 `json:"popularity,omitempty"`
	GenreIDs      []int   `json:"genreIds,omitempty"`
}

// Year extracts the release year from the candidate's release date.
// Returns 0 when the date is absent or malformed.
func (c *MatchCandidate) Year() int {
	if len(c.ReleaseDate) < 4 {
		return 0
	}
	year := 0
	for _, r := range c.ReleaseDate[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}

// ExtendedDetails is the catalog's full record for a single title
type ExtendedDetails struct {
	ID         int          `json:"id"`
	Title      string       `json:"title"`
	Runtime    int          `json:"runtime,omitempty"`
	Genres     []string     `json:"genres,omitempty"`
	Cast       []CastMember `json:"cast,omitempty"`
	Director   string       `json:"director,omitempty"`
	TrailerKey string       `json:"trailerKey,omitempty"`
	Companies  []string     `json:"companies,omitempty"`
}
