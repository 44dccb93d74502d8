package tmdb

// Wire types for the TMDB v3 JSON API. Movie and TV payloads differ in field
// names (title/name, release_date/first_air_date); both sets are declared and
// the decoder picks whichever is populated.

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	OriginalTitle    string  `json:"original_title"`
	OriginalName     string  `json:"original_name"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int   `json:"genre_ids"`
}

func (r *searchResult) title() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

func (r *searchResult) originalTitle() string {
	if r.OriginalTitle != "" {
		return r.OriginalTitle
	}
	return r.OriginalName
}

func (r *searchResult) releaseDate() string {
	if r.ReleaseDate != "" {
		return r.ReleaseDate
	}
	return r.FirstAirDate
}

type detailsResponse struct {
	ID                  int            `json:"id"`
	Title               string         `json:"title"`
	Name                string         `json:"name"`
	Runtime             int            `json:"runtime"`
	EpisodeRunTime      []int          `json:"episode_run_time"`
	Genres              []genreEntry   `json:"genres"`
	ProductionCompanies []companyEntry `json:"production_companies"`
	Credits             creditsEntry   `json:"credits"`
	Videos              videosEntry    `json:"videos"`
}

type genreEntry struct {
	Name string `json:"name"`
}

type companyEntry struct {
	Name string `json:"name"`
}

type creditsEntry struct {
	Cast []castEntry `json:"cast"`
	Crew []crewEntry `json:"crew"`
}

type castEntry struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type crewEntry struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type videosEntry struct {
	Results []videoEntry `json:"results"`
}

type videoEntry struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}
