// Package tmdb implements the narrow catalog-client contract the core
// consumes: search, extended details, recommendations, and pure asset URL
// builders over the TMDB v3 JSON API. Calls are rate limited to respect the
// upstream quota, retried on transient failures, and search responses are
// cached.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tamilstream/tamilstream/internal/apperrors"
	"github.com/tamilstream/tamilstream/internal/cache"
	"github.com/tamilstream/tamilstream/internal/config"
	"github.com/tamilstream/tamilstream/internal/models"
)

// Locale chain used by the pipeline's fallback matching.
const (
	LocalePrimary   = "ta-IN"
	LocaleSecondary = "en-US"
)

const (
	imageBaseURL    = "https://image.tmdb.org/t/p"
	posterSize      = "w500"
	backdropSize    = "w780"
	profileSize     = "w185"
	youtubeWatchURL = "https://www.youtube.com/watch?v="
)

// Client is the catalog contract consumed by the pipeline. The core never
// depends on the concrete HTTP client below, only on this interface.
type Client interface {
	// Search returns the best candidate for the normalized title, or nil
	// when the catalog has no usable result. year 0 means unknown.
	Search(ctx context.Context, title string, kind models.ContentKind, year int, locale string) (*models.MatchCandidate, error)

	// GetDetails returns the catalog's extended record for an id, or nil
	// when the catalog has none.
	GetDetails(ctx context.Context, catalogID int, kind models.ContentKind) (*models.ExtendedDetails, error)

	// GetRecommendations returns related candidates for an id.
	GetRecommendations(ctx context.Context, catalogID int, kind models.ContentKind, locale string) ([]models.MatchCandidate, error)

	// Pure asset URL builders over catalog path fragments.
	PosterURL(path string) string
	BackdropURL(path string) string
	ProfileURL(path string) string
	TrailerURL(key string) string
}

// maxCastEntries bounds how many cast members are merged from extended details.
const maxCastEntries = 10

// HTTPClient implements Client over the TMDB v3 API.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	retry      retrypolicy.RetryPolicy[*http.Response]
	cache      cache.Cache
	logger     zerolog.Logger
}

// NewHTTPClient builds a TMDB client from config. responseCache may be nil to
// disable caching (tests do this).
func NewHTTPClient(cfg *config.Config, httpClient *http.Client, responseCache cache.Cache) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	perSecond := cfg.TMDB.RatePerSecond
	if perSecond <= 0 {
		perSecond = 4
	}
	burst := cfg.TMDB.Burst
	if burst <= 0 {
		burst = int(perSecond)
	}

	retry := retrypolicy.Builder[*http.Response]().
		WithBackoff(500*time.Millisecond, 5*time.Second).
		WithMaxRetries(3).
		Build()

	return &HTTPClient{
		httpClient: httpClient,
		baseURL:    cfg.TMDB.BaseURL,
		apiKey:     cfg.TMDB.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(perSecond), burst),
		retry:      retry,
		cache:      responseCache,
		logger:     config.GetLogger(),
	}
}

// Search queries /search/movie or /search/tv and returns the first result.
func (c *HTTPClient) Search(ctx context.Context, title string, kind models.ContentKind, year int, locale string) (*models.MatchCandidate, error) {
	cacheKey := fmt.Sprintf("search:%s:%s:%d:%s", kind.CatalogType(), locale, year, title)
	if c.cache != nil {
		if raw, hit := c.cache.Get(cacheKey); hit {
			var cached *models.MatchCandidate
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	params := url.Values{}
	params.Set("query", title)
	params.Set("language", locale)
	params.Set("include_adult", "false")
	if year != 0 {
		if kind == models.KindSeries {
			params.Set("first_air_date_year", strconv.Itoa(year))
		} else {
			params.Set("year", strconv.Itoa(year))
		}
	}

	var payload searchResponse
	if err := c.getJSON(ctx, "/search/"+kind.CatalogType(), params, &payload); err != nil {
		return nil, apperrors.NewCatalogLookupError(title, kind.CatalogType(), err)
	}

	var candidate *models.MatchCandidate
	if len(payload.Results) > 0 {
		candidate = toCandidate(&payload.Results[0])
	}

	if c.cache != nil {
		if raw, err := json.Marshal(candidate); err == nil {
			c.cache.Set(cacheKey, raw)
		}
	}
	return candidate, nil
}

// GetDetails fetches /movie/{id} or /tv/{id} with credits and videos appended.
func (c *HTTPClient) GetDetails(ctx context.Context, catalogID int, kind models.ContentKind) (*models.ExtendedDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos")
	params.Set("language", LocaleSecondary)

	var payload detailsResponse
	path := fmt.Sprintf("/%s/%d", kind.CatalogType(), catalogID)
	if err := c.getJSON(ctx, path, params, &payload); err != nil {
		return nil, apperrors.NewCatalogLookupError(strconv.Itoa(catalogID), kind.CatalogType(), err)
	}
	if payload.ID == 0 {
		return nil, nil
	}

	details := &models.ExtendedDetails{
		ID:      payload.ID,
		Title:   payload.Title,
		Runtime: payload.Runtime,
	}
	if details.Title == "" {
		details.Title = payload.Name
	}
	if details.Runtime == 0 && len(payload.EpisodeRunTime) > 0 {
		details.Runtime = payload.EpisodeRunTime[0]
	}

	for _, g := range payload.Genres {
		details.Genres = append(details.Genres, g.Name)
	}
	for _, company := range payload.ProductionCompanies {
		details.Companies = append(details.Companies, company.Name)
	}

	for i, member := range payload.Credits.Cast {
		if i >= maxCastEntries {
			break
		}
		details.Cast = append(details.Cast, models.CastMember{
			Name:       member.Name,
			Character:  member.Character,
			ProfileURL: c.ProfileURL(member.ProfilePath),
		})
	}
	for _, member := range payload.Credits.Crew {
		if member.Job == "Director" {
			details.Director = member.Name
			break
		}
	}
	for _, video := range payload.Videos.Results {
		if video.Site == "YouTube" && video.Type == "Trailer" {
			details.TrailerKey = video.Key
			break
		}
	}

	return details, nil
}

// GetRecommendations fetches /{kind}/{id}/recommendations.
func (c *HTTPClient) GetRecommendations(ctx context.Context, catalogID int, kind models.ContentKind, locale string) ([]models.MatchCandidate, error) {
	params := url.Values{}
	params.Set("language", locale)

	var payload searchResponse
	path := fmt.Sprintf("/%s/%d/recommendations", kind.CatalogType(), catalogID)
	if err := c.getJSON(ctx, path, params, &payload); err != nil {
		return nil, apperrors.NewCatalogLookupError(strconv.Itoa(catalogID), kind.CatalogType(), err)
	}

	candidates := make([]models.MatchCandidate, 0, len(payload.Results))
	for i := range payload.Results {
		candidates = append(candidates, *toCandidate(&payload.Results[i]))
	}
	return candidates, nil
}

// PosterURL resolves a poster path fragment to a full image URL.
func (c *HTTPClient) PosterURL(path string) string {
	return imageURL(posterSize, path)
}

// BackdropURL resolves a backdrop path fragment to a full image URL.
func (c *HTTPClient) BackdropURL(path string) string {
	return imageURL(backdropSize, path)
}

// ProfileURL resolves a cast profile path fragment to a full image URL.
func (c *HTTPClient) ProfileURL(path string) string {
	return imageURL(profileSize, path)
}

// TrailerURL resolves a trailer key to a watchable URL.
func (c *HTTPClient) TrailerURL(key string) string {
	if key == "" {
		return ""
	}
	return youtubeWatchURL + key
}

func imageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + "/" + size + path
}

// getJSON performs a rate-limited, retried GET against the API and decodes
// the JSON body into out. Transient statuses (429, 5xx) surface as errors so
// the retry policy re-attempts them.
func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	requestURL := c.baseURL + path + "?" + params.Encode()

	resp, err := failsafe.Get(func() (*http.Response, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("transient status %d from %s", resp.StatusCode, path)
		}
		return resp, nil
	}, c.retry)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Absent record: decode target stays zero-valued.
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func toCandidate(r *searchResult) *models.MatchCandidate {
	return &models.MatchCandidate{
		ID:            r.ID,
		Title:         r.title(),
		OriginalTitle: r.originalTitle(),
		ReleaseDate:   r.releaseDate(),
		Overview:      r.Overview,
		PosterPath:    r.PosterPath,
		BackdropPath:  r.BackdropPath,
		Rating:        r.VoteAverage,
		VoteCount:     r.VoteCount,
		Popularity:    r.Popularity,
		GenreIDs:      r.GenreIDs,
	}
}
