package output

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RelativePath derives the output-relative Markdown path for a page URL.
// The URL path is mirrored with the leading slash stripped and ".md"
// appended; an empty path or a path ending in "/" maps to "index".
//
// Examples:
//
//	https://ex.com/docs/intro/getting-started -> docs/intro/getting-started.md
//	https://ex.com/docs/intro/                -> docs/intro/index.md
//	https://ex.com/                           -> index.md
//
// The derivation is deterministic: the same URL always yields the same
// relative path.
func RelativePath(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}

	sub := strings.TrimPrefix(u.Path, "/")
	if sub == "" {
		sub = "index"
	} else if strings.HasSuffix(sub, "/") {
		sub += "index"
	}

	return sub + ".md", nil
}

// Title derives a human-readable section title from a page URL:
// path segments joined with " > ", hyphens replaced by spaces, a trailing
// ".html" stripped, and the result title-cased. The root path yields
// "Index".
func Title(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	p := strings.Trim(u.Path, "/")
	if p == "" {
		p = "index"
	}
	p = strings.TrimSuffix(p, ".html")
	p = strings.ReplaceAll(p, "/", " > ")
	p = strings.ReplaceAll(p, "-", " ")

	// cases.Caser is not safe for concurrent use, so we build one per call.
	return cases.Title(language.English).String(p)
}
