package tamilmv

import (
	"strings"
	"testing"
)

const listingHTML = `
<html><body>
<ol class="ipsDataList">
  <li class="ipsDataItem">
    <h4 class="ipsDataItem_title">
      <span class="ipsType_break">
        <a href="/forums/topic/12345-jawan-2023-tamil-1080p/">Jawan (2023) [Tamil] 1080p HQ HDRip - 2.5GB</a>
      </span>
    </h4>
  </li>
  <li class="ipsDataItem">
    <h4 class="ipsDataItem_title">
      <span class="ipsType_break">
        <a href="https://www.1tamilmv.com/forums/topic/12346-leo-2023/">Leo (2023) [Tamil] 720p HDRip</a>
      </span>
    </h4>
  </li>
  <li class="ipsDataItem">
    <h4 class="ipsDataItem_title">
      <span class="ipsType_break">
        <a href="/forums/topic/12347-empty/">   </a>
      </span>
    </h4>
  </li>
</ol>
</body></html>`

func TestParseListing(t *testing.T) {
	items, err := parseListing(strings.NewReader(listingHTML), "https://www.1tamilmv.com")
	if err != nil {
		t.Fatalf("parseListing: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (titleless links skipped)", len(items))
	}

	first := items[0]
	if first.Title != "Jawan (2023) [Tamil] 1080p HQ HDRip - 2.5GB" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.URL != "https://www.1tamilmv.com/forums/topic/12345-jawan-2023-tamil-1080p/" {
		t.Errorf("relative href not resolved: %q", first.URL)
	}
	if first.Year != 2023 {
		t.Errorf("Year = %d, want 2023", first.Year)
	}
	if first.Quality != "1080p" {
		t.Errorf("Quality = %q, want 1080p", first.Quality)
	}
	if first.Source != providerID {
		t.Errorf("Source = %q, want %s", first.Source, providerID)
	}

	if items[1].URL != "https://www.1tamilmv.com/forums/topic/12346-leo-2023/" {
		t.Errorf("absolute href rewritten: %q", items[1].URL)
	}
	if items[1].Quality != "720p" {
		t.Errorf("Quality = %q, want 720p", items[1].Quality)
	}
}

func TestParseListing_Empty(t *testing.T) {
	items, err := parseListing(strings.NewReader("<html><body></body></html>"), "https://x")
	if err != nil {
		t.Fatalf("parseListing: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %d, want 0", len(items))
	}
}

const detailsHTML = `
<html><head>
<meta property="og:image" content="https://img.1tamilmv.com/jawan-poster.jpg">
</head><body>
<h1 class="ipsType_pageTitle">Jawan (2023) [Tamil] 1080p HQ HDRip</h1>
<div class="ipsType_richText">
  <img src="https://img.1tamilmv.com/inline.jpg">
  <a href="magnet:?xt=urn:btih:aaa&dn=Jawan.1080p">Jawan 1080p HQ HDRip</a>
  <a href="magnet:?xt=urn:btih:bbb&dn=Jawan.720p">Jawan 720p HDRip</a>
  <a href="/applications/core/interface/file/attachment.php?id=1" data-fileext="torrent">Jawan.2023.720p.torrent</a>
  <a href="/forums/topic/other">unrelated link</a>
</div>
</body></html>`

func TestParseDetails(t *testing.T) {
	details, err := parseDetails(strings.NewReader(detailsHTML))
	if err != nil {
		t.Fatalf("parseDetails: %v", err)
	}

	if details.Title != "Jawan (2023) [Tamil] 1080p HQ HDRip" {
		t.Errorf("Title = %q", details.Title)
	}
	if details.PosterURL != "https://img.1tamilmv.com/jawan-poster.jpg" {
		t.Errorf("PosterURL = %q, want og:image", details.PosterURL)
	}

	if len(details.Links) != 3 {
		t.Fatalf("links = %d, want 2 magnets + 1 torrent", len(details.Links))
	}
	if !strings.HasPrefix(details.Links[0].URL, "magnet:") {
		t.Errorf("links[0] = %q, want magnet", details.Links[0].URL)
	}
	if details.Links[0].Label != "Jawan 1080p HQ HDRip" {
		t.Errorf("links[0] label = %q", details.Links[0].Label)
	}
}

func TestParseDetails_PosterFallsBackToInlineImage(t *testing.T) {
	html := `
<html><body>
<h1 class="ipsType_pageTitle">Leo (2023)</h1>
<div class="ipsType_richText"><img src="https://img.1tamilmv.com/leo.jpg"></div>
</body></html>`

	details, err := parseDetails(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parseDetails: %v", err)
	}
	if details.PosterURL != "https://img.1tamilmv.com/leo.jpg" {
		t.Errorf("PosterURL = %q, want inline image fallback", details.PosterURL)
	}
}

func TestParseQuickPoster(t *testing.T) {
	poster, err := parseQuickPoster(strings.NewReader(detailsHTML))
	if err != nil {
		t.Fatalf("parseQuickPoster: %v", err)
	}
	if poster != "https://img.1tamilmv.com/jawan-poster.jpg" {
		t.Errorf("poster = %q", poster)
	}

	poster, err = parseQuickPoster(strings.NewReader("<html></html>"))
	if err != nil {
		t.Fatalf("parseQuickPoster on empty page: %v", err)
	}
	if poster != "" {
		t.Errorf("poster = %q, want empty", poster)
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base string
		href string
		want string
	}{
		{"https://x.com", "/topic/1", "https://x.com/topic/1"},
		{"https://x.com/", "topic/1", "https://x.com/topic/1"},
		{"https://x.com", "https://y.com/topic/1", "https://y.com/topic/1"},
	}

	for _, tt := range tests {
		if got := absoluteURL(tt.base, tt.href); got != tt.want {
			t.Errorf("absoluteURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}
