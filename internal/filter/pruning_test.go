package filter

import (
	"context"
	"strings"
	"testing"
)

// TestPruningFilter verifies boilerplate and link-heavy blocks are
// dropped while real content survives.
func TestPruningFilter(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<nav><a href="/">Home</a> <a href="/docs">Docs</a> <a href="/blog">Blog</a></nav>
<div class="sidebar">
  <a href="/a">Alpha page</a>
  <a href="/b">Beta page</a>
  <a href="/c">Gamma page</a>
</div>
<article>
  <h1>Installation</h1>
  <p>This guide walks through installing the tool from source on any
  supported platform. You will need a recent Go toolchain, a working
  network connection, and about five minutes. Every step below has been
  verified on Linux, macOS, and Windows machines.</p>
</article>
<footer><a href="/legal">Legal</a> copyright notice</footer>
<script>analytics();</script>
</body></html>`

	md, err := NewPruning().Filter(context.Background(), "https://docs.example.com/install", html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(md, "# Installation") {
		t.Errorf("content heading missing, got:\n%s", md)
	}
	if !strings.Contains(md, "recent Go toolchain") {
		t.Errorf("content body missing, got:\n%s", md)
	}
	if strings.Contains(md, "Alpha page") {
		t.Errorf("sidebar survived pruning, got:\n%s", md)
	}
	if strings.Contains(md, "Legal") || strings.Contains(md, "Blog") {
		t.Errorf("boilerplate survived pruning, got:\n%s", md)
	}
	if strings.Contains(md, "analytics") {
		t.Errorf("script survived pruning, got:\n%s", md)
	}
}

// TestPruningFilterKeepsWordyBlocks verifies the word-count rule only
// prunes blocks that also contain links.
func TestPruningFilterKeepsWordyBlocks(t *testing.T) {
	t.Parallel()

	html := `<html><body><div><p>Short note without any links.</p></div></body></html>`

	md, err := NewPruning().Filter(context.Background(), "https://docs.example.com/note", html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(md, "Short note without any links.") {
		t.Errorf("link-free block was pruned, got:\n%s", md)
	}
}

// TestPruningFilterOptions verifies threshold overrides take effect.
func TestPruningFilterOptions(t *testing.T) {
	t.Parallel()

	p := NewPruning(WithPruneThreshold(0.9), WithMinWordCount(5))
	if p.threshold != 0.9 {
		t.Errorf("expected threshold 0.9, got %f", p.threshold)
	}
	if p.minWords != 5 {
		t.Errorf("expected minWords 5, got %d", p.minWords)
	}
}
