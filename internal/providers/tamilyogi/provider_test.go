package tamilyogi

import (
	"strings"
	"testing"
)

const listingHTML = `
<html><body>
<ul class="loop-content">
  <li>
    <a href="https://tamilyogi.fm/oppenheimer-2023/" title="Oppenheimer (2023) Tamil Dubbed HD">
      <img src="https://tamilyogi.fm/wp-content/oppenheimer.jpg">
    </a>
  </li>
  <li>
    <a href="https://tamilyogi.fm/dune-2024/">
      <h2>Dune Part Two (2024) Tamil Dubbed</h2>
    </a>
  </li>
  <li>
    <a href="https://tamilyogi.fm/blank/"></a>
  </li>
</ul>
</body></html>`

func TestParseListing(t *testing.T) {
	items, err := parseListing(strings.NewReader(listingHTML))
	if err != nil {
		t.Fatalf("parseListing: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (titleless entries skipped)", len(items))
	}

	first := items[0]
	if first.Title != "Oppenheimer (2023) Tamil Dubbed HD" {
		t.Errorf("Title = %q, want title attribute", first.Title)
	}
	if first.URL != "https://tamilyogi.fm/oppenheimer-2023/" {
		t.Errorf("URL = %q", first.URL)
	}
	if first.Year != 2023 {
		t.Errorf("Year = %d, want 2023", first.Year)
	}
	if first.PosterURL != "https://tamilyogi.fm/wp-content/oppenheimer.jpg" {
		t.Errorf("PosterURL = %q", first.PosterURL)
	}
	if first.Source != providerID {
		t.Errorf("Source = %q, want %s", first.Source, providerID)
	}

	// Second entry has no title attribute; the heading text is used instead.
	if items[1].Title != "Dune Part Two (2024) Tamil Dubbed" {
		t.Errorf("Title = %q, want heading text fallback", items[1].Title)
	}
}

const detailsHTML = `
<html><head>
<meta property="og:image" content="https://tamilyogi.fm/wp-content/oppenheimer-full.jpg">
</head><body>
<h1 class="entry-title">Oppenheimer (2023) Tamil Dubbed Movie</h1>
<div class="entry-content">
  <p>The story of J. Robert Oppenheimer and the atomic bomb.</p>
  <iframe src="https://player.example.com/embed/abc"></iframe>
  <iframe src="https://mirror.example.com/embed/def"></iframe>
</div>
</body></html>`

func TestParseDetails(t *testing.T) {
	details, err := parseDetails(strings.NewReader(detailsHTML))
	if err != nil {
		t.Fatalf("parseDetails: %v", err)
	}

	if details.Title != "Oppenheimer (2023) Tamil Dubbed Movie" {
		t.Errorf("Title = %q", details.Title)
	}
	if !strings.HasPrefix(details.Overview, "The story of") {
		t.Errorf("Overview = %q", details.Overview)
	}
	if details.PosterURL != "https://tamilyogi.fm/wp-content/oppenheimer-full.jpg" {
		t.Errorf("PosterURL = %q", details.PosterURL)
	}

	if len(details.Links) != 2 {
		t.Fatalf("links = %d, want 2 players", len(details.Links))
	}
	if details.Links[0].Label != "player 1" || details.Links[0].URL != "https://player.example.com/embed/abc" {
		t.Errorf("links[0] = %+v", details.Links[0])
	}
	if details.Links[1].Label != "player 2" {
		t.Errorf("links[1] label = %q", details.Links[1].Label)
	}
}

func TestParseDetails_EmptyPage(t *testing.T) {
	details, err := parseDetails(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("parseDetails: %v", err)
	}
	if details.Title != "" || len(details.Links) != 0 {
		t.Errorf("details = %+v, want empty", details)
	}
}
