package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tamilstream/tamilstream/internal/config"
	"github.com/tamilstream/tamilstream/internal/models"
	"github.com/tamilstream/tamilstream/internal/pipeline"
	"github.com/tamilstream/tamilstream/internal/provider"
)

// stubProvider serves one canned listing for every operation.
type stubProvider struct {
	id    string
	items []models.ScrapedItem
}

func (s *stubProvider) Descriptor() models.ProviderDescriptor {
	return models.ProviderDescriptor{
		ID:        s.id,
		Name:      s.id,
		Kinds:     []models.ContentKind{models.KindMovie},
		Languages: []models.Language{models.LanguageTamil},
		BaseURL:   "https://" + s.id + ".example.com",
		Enabled:   true,
	}
}

func (s *stubProvider) Search(context.Context, string) ([]models.ScrapedItem, error) {
	return s.items, nil
}

func (s *stubProvider) GetLatest(context.Context) ([]models.ScrapedItem, error) {
	return s.items, nil
}

func (s *stubProvider) ScrapeDetails(_ context.Context, url string) (*models.ContentDetails, error) {
	return &models.ContentDetails{
		Title:    "Jawan (2023) 1080p",
		Overview: "Scraped synopsis.",
		Links:    []models.ResolutionLink{{Label: "1080p", URL: "magnet:?xt=a"}},
	}, nil
}

// missCatalog is a catalog client that never finds anything.
type missCatalog struct{}

func (missCatalog) Search(context.Context, string, models.ContentKind, int, string) (*models.MatchCandidate, error) {
	return nil, nil
}

func (missCatalog) GetDetails(context.Context, int, models.ContentKind) (*models.ExtendedDetails, error) {
	return nil, nil
}

func (missCatalog) GetRecommendations(context.Context, int, models.ContentKind, string) ([]models.MatchCandidate, error) {
	return nil, nil
}

func (missCatalog) PosterURL(string) string   { return "" }
func (missCatalog) BackdropURL(string) string { return "" }
func (missCatalog) ProfileURL(string) string  { return "" }
func (missCatalog) TrailerURL(string) string  { return "" }

func testServer(t *testing.T) (*httptest.Server, *provider.Registry) {
	t.Helper()

	registry := provider.NewRegistry()
	stub := &stubProvider{
		id: "stub",
		items: []models.ScrapedItem{
			{Title: "Jawan (2023) 1080p", URL: "https://stub.example.com/t/1", Source: "stub"},
		},
	}
	if err := registry.Register(stub); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cfg := &config.Config{}
	cfg.Pipeline.Concurrency = 2
	cfg.Pipeline.Limit = 10

	aggregator := provider.NewAggregator(registry)
	p := pipeline.New(missCatalog{}, nil, pipeline.Options{})

	srv := httptest.NewServer(NewServer(cfg, aggregator, p).Handler)
	t.Cleanup(srv.Close)
	return srv, registry
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t)

	var body map[string]string
	status := getJSON(t, srv.URL+"/healthz", &body)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if diff := cmp.Diff(map[string]string{"status": "ok"}, body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch(t *testing.T) {
	srv, _ := testServer(t)

	var result pipeline.BatchResult
	status := getJSON(t, srv.URL+"/search?q=jawan", &result)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(result.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(result.Items))
	}

	item := result.Items[0]
	if item.NormalizedTitle != "jawan" {
		t.Errorf("NormalizedTitle = %q, want jawan", item.NormalizedTitle)
	}
	if item.MatchStatus != models.MatchPending {
		t.Errorf("MatchStatus = %s, want pending with an empty catalog", item.MatchStatus)
	}
	if item.Source != "stub" {
		t.Errorf("Source = %q, want stub", item.Source)
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	srv, _ := testServer(t)

	var body map[string]string
	if status := getJSON(t, srv.URL+"/search", &body); status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestLatest(t *testing.T) {
	srv, _ := testServer(t)

	var results map[string]pipeline.BatchResult
	if status := getJSON(t, srv.URL+"/latest", &results); status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(results["stub"].Items) != 1 {
		t.Errorf("stub items = %d, want 1", len(results["stub"].Items))
	}
}

func TestDetails(t *testing.T) {
	srv, _ := testServer(t)

	var record models.UnifiedContent
	status := getJSON(t, srv.URL+"/details?url=https://stub.example.com/t/1&provider=stub", &record)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if record.Title != "Jawan (2023) 1080p" {
		t.Errorf("Title = %q", record.Title)
	}
	if record.Overview != "Scraped synopsis." {
		t.Errorf("Overview = %q, want scraped synopsis carried over", record.Overview)
	}
	if len(record.Links) != 1 {
		t.Errorf("links = %d, want 1", len(record.Links))
	}
}

func TestDetails_ResolvedProviderTagsSource(t *testing.T) {
	srv, _ := testServer(t)

	// No provider param: the URL's host resolves the owning provider, and the
	// record's source must name it all the same.
	var record models.UnifiedContent
	status := getJSON(t, srv.URL+"/details?url=https://stub.example.com/t/1", &record)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if record.Source != "stub" {
		t.Errorf("Source = %q, want stub", record.Source)
	}
}

func TestDetails_MissingURL(t *testing.T) {
	srv, _ := testServer(t)

	var body map[string]string
	if status := getJSON(t, srv.URL+"/details", &body); status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestDetails_UnresolvableURL(t *testing.T) {
	srv, _ := testServer(t)

	var body map[string]string
	if status := getJSON(t, srv.URL+"/details?url=https://nowhere.example.org/x", &body); status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestProviders(t *testing.T) {
	srv, _ := testServer(t)

	var statuses []provider.ProviderStatus
	if status := getJSON(t, srv.URL+"/providers", &statuses); status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(statuses) != 1 || statuses[0].Descriptor.ID != "stub" {
		t.Errorf("statuses = %+v", statuses)
	}
	if statuses[0].Health.Status != models.HealthActive {
		t.Errorf("health = %s, want active", statuses[0].Health.Status)
	}
}

func TestProviderReset(t *testing.T) {
	srv, registry := testServer(t)
	registry.Disable("stub", "operator action")

	resp, err := http.Post(srv.URL+"/providers/stub/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("POST reset: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var health models.ProviderHealth
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != models.HealthActive {
		t.Errorf("health = %s, want active after reset", health.Status)
	}
}

func TestProviderReset_Unknown(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Post(srv.URL+"/providers/ghost/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("POST reset: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
