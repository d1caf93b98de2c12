package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultEndpoint is the GitHub API URL for the latest release.
const defaultEndpoint = "https://api.github.com/repos/nao1215/docs2md/releases/latest"

// checkTimeout bounds the whole update check. The check runs before a
// crawl starts and must never delay it noticeably.
const checkTimeout = 2 * time.Second

// Checker looks up the latest published release and compares it against
// the running version.
type Checker struct {
	// client performs the HTTP request.
	client *http.Client

	// endpoint is the latest-release API URL.
	endpoint string
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		c.client = client
	}
}

// WithEndpoint sets a custom latest-release endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Checker) {
		c.endpoint = endpoint
	}
}

// NewChecker creates a Checker with default settings.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:   &http.Client{Timeout: checkTimeout},
		endpoint: defaultEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// release is the subset of the GitHub release payload we read.
type release struct {
	TagName string `json:"tag_name"`
}

// Check returns the latest release tag and true when it differs from the
// running version. Development builds and any lookup failure report no
// update; the caller stays silent in both cases.
func (c *Checker) Check(ctx context.Context, current string) (string, bool) {
	if isDevBuild(current) {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", false
	}

	var rel release
	if err := json.Unmarshal(body, &rel); err != nil {
		return "", false
	}
	if rel.TagName == "" {
		return "", false
	}

	if normalizeVersion(rel.TagName) == normalizeVersion(current) {
		return "", false
	}
	return rel.TagName, true
}

// Notice returns a human-readable upgrade hint, or an empty string when
// no newer release is known.
func (c *Checker) Notice(ctx context.Context, current string) string {
	latest, ok := c.Check(ctx, current)
	if !ok {
		return ""
	}
	return fmt.Sprintf("A new version of docs2md is available: %s (current: %s)", latest, current)
}

// isDevBuild reports whether the version string denotes a local build
// that should never be compared against releases.
func isDevBuild(version string) bool {
	switch normalizeVersion(version) {
	case "", "dev", "devel", "(devel)", "unknown":
		return true
	}
	return false
}

// normalizeVersion strips the conventional "v" tag prefix.
func normalizeVersion(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}
