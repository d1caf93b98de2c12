package crawler

import (
	"net/url"
	"strings"
)

// Scope decides whether a candidate URL belongs to the crawl.
// A candidate is in scope iff its host equals the base domain or is a
// subdomain of it. The base domain is the host of the start URL, including
// any port, so "docs.example.com:8080" only matches itself and its
// subdomains on the same port.
type Scope struct {
	// baseDomain is the host component of the start URL.
	baseDomain string
}

// NewScope creates a Scope for the given base domain.
func NewScope(baseDomain string) *Scope {
	return &Scope{baseDomain: baseDomain}
}

// InScope reports whether the candidate URL is within the crawl's domain.
// Malformed URLs and URLs without a host are out of scope; that is an
// expected condition, not an error, so they are excluded silently.
func (s *Scope) InScope(candidate string) bool {
	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}

	host := u.Host
	if host == "" {
		return false
	}

	return host == s.baseDomain || strings.HasSuffix(host, "."+s.baseDomain)
}
