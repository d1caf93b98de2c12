package output

import "testing"

// TestRelativePath verifies URL-to-file-path derivation.
func TestRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pageURL string
		want    string
	}{
		{
			name:    "nested path",
			pageURL: "https://docs.example.com/docs/intro/getting-started",
			want:    "docs/intro/getting-started.md",
		},
		{
			name:    "trailing slash maps to index",
			pageURL: "https://docs.example.com/docs/intro/",
			want:    "docs/intro/index.md",
		},
		{
			name:    "root path",
			pageURL: "https://docs.example.com/",
			want:    "index.md",
		},
		{
			name:    "empty path",
			pageURL: "https://docs.example.com",
			want:    "index.md",
		},
		{
			name:    "html page keeps extension",
			pageURL: "https://docs.example.com/guide/setup.html",
			want:    "guide/setup.html.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RelativePath(tt.pageURL)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RelativePath(%q) = %q, want %q", tt.pageURL, got, tt.want)
			}
		})
	}
}

// TestTitle verifies URL-to-title derivation.
func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pageURL string
		want    string
	}{
		{
			name:    "nested hyphenated path",
			pageURL: "https://docs.example.com/docs/getting-started",
			want:    "Docs > Getting Started",
		},
		{
			name:    "root path",
			pageURL: "https://docs.example.com/",
			want:    "Index",
		},
		{
			name:    "html suffix stripped",
			pageURL: "https://docs.example.com/guide/setup.html",
			want:    "Guide > Setup",
		},
		{
			name:    "trailing slash ignored",
			pageURL: "https://docs.example.com/api/reference/",
			want:    "Api > Reference",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Title(tt.pageURL); got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.pageURL, got, tt.want)
			}
		})
	}
}
