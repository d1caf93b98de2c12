package fetch

import (
	"slices"
	"strings"
	"testing"
)

// TestParserParse verifies title extraction and link classification on
// a representative documentation page.
func TestParserParse(t *testing.T) {
	t.Parallel()

	page := `<html>
<head><title>Getting Started | Example Docs</title></head>
<body>
<a href="/docs/install">Install</a>
<a href="guide/usage">Usage</a>
<a href="https://docs.example.com/api">API</a>
<a href="https://sub.example.com/extra">Subdomain</a>
<a href="https://other.org/away">Away</a>
<a href="#section">Anchor</a>
<a href="mailto:team@example.com">Mail</a>
<a href="javascript:void(0)">JS</a>
<a href="/docs/install">Install again</a>
</body></html>`

	p, err := NewParser("https://docs.example.com/docs/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := p.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Title != "Getting Started | Example Docs" {
		t.Errorf("unexpected title: %q", result.Title)
	}

	wantInternal := []string{
		"https://docs.example.com/docs/install",
		"https://docs.example.com/docs/guide/usage",
		"https://docs.example.com/api",
	}
	for _, want := range wantInternal {
		if !slices.Contains(result.InternalLinks, want) {
			t.Errorf("missing internal link %q, got %v", want, result.InternalLinks)
		}
	}

	// docs.example.com and sub.example.com share no suffix relation;
	// the subdomain link is off-site for this page.
	if slices.Contains(result.InternalLinks, "https://sub.example.com/extra") {
		t.Errorf("sibling subdomain classified as internal: %v", result.InternalLinks)
	}
	if !slices.Contains(result.ExternalLinks, "https://other.org/away") {
		t.Errorf("missing external link, got %v", result.ExternalLinks)
	}

	// Anchors, mailto and javascript links are dropped entirely.
	for _, link := range append(result.InternalLinks, result.ExternalLinks...) {
		if strings.Contains(link, "mailto") || strings.Contains(link, "javascript") {
			t.Errorf("non-navigable link survived: %q", link)
		}
	}

	// The duplicate /docs/install link appears once.
	count := 0
	for _, link := range result.InternalLinks {
		if link == "https://docs.example.com/docs/install" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected deduplicated link, got %d occurrences", count)
	}
}

// TestParserSubdomainOfPage verifies subdomains of the page host are
// internal.
func TestParserSubdomainOfPage(t *testing.T) {
	t.Parallel()

	page := `<html><body><a href="https://api.example.com/ref">Ref</a></body></html>`

	p, err := NewParser("https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := p.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Contains(result.InternalLinks, "https://api.example.com/ref") {
		t.Errorf("subdomain not classified as internal: %v", result.InternalLinks)
	}
}

// TestParserDropsFragments verifies fragments are stripped so section
// links collapse onto their page URL.
func TestParserDropsFragments(t *testing.T) {
	t.Parallel()

	page := `<html><body><a href="/guide#intro">Intro</a></body></html>`

	p, err := NewParser("https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := p.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Contains(result.InternalLinks, "https://example.com/guide") {
		t.Errorf("fragment not stripped: %v", result.InternalLinks)
	}
}

// TestParserMalformedHTML verifies the parser tolerates tag soup.
func TestParserMalformedHTML(t *testing.T) {
	t.Parallel()

	page := `<html><title>Broken</head><body><a href="/a">A<a href="/b">B</body>`

	p, err := NewParser("https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := p.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Title != "Broken" {
		t.Errorf("unexpected title: %q", result.Title)
	}
	if len(result.InternalLinks) != 2 {
		t.Errorf("expected 2 links, got %v", result.InternalLinks)
	}
}
