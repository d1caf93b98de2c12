package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestAggregateFinalize verifies that buffered sections land in a single
// combined document in processing order.
func TestAggregateFinalize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	agg := NewAggregate(dir, "mydocs")

	if err := agg.Add("https://docs.example.com/intro", 0, "Welcome to the docs."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := agg.Add("https://docs.example.com/guide/install", 1, "Run the installer."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := agg.Finalize(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPath := filepath.Join(dir, "mydocs", "index.md")
	if agg.IndexPath() != wantPath {
		t.Errorf("IndexPath() = %q, want %q", agg.IndexPath(), wantPath)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("failed to read index: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "# Intro\n\nWelcome to the docs.\n\n---\n\n") {
		t.Errorf("missing first section, got:\n%s", content)
	}
	if !strings.Contains(content, "# Guide > Install\n\nRun the installer.\n\n---\n\n") {
		t.Errorf("missing second section, got:\n%s", content)
	}
	if strings.Index(content, "# Intro") > strings.Index(content, "# Guide > Install") {
		t.Error("sections are out of processing order")
	}
}

// TestAggregateFinalizeEmpty verifies that a crawl with no successful
// pages still produces an (empty) index file.
func TestAggregateFinalizeEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	agg := NewAggregate(dir, "empty")

	if err := agg.Finalize(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(agg.IndexPath())
	if err != nil {
		t.Fatalf("failed to read index: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty index, got %q", string(data))
	}
}
