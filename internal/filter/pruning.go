package filter

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/docs2md/internal/htmlmd"
)

const (
	// DefaultPruneThreshold is the link-density ratio above which a
	// block is considered navigation rather than content.
	DefaultPruneThreshold = 0.5

	// DefaultMinWordCount is the word count below which a container
	// block is considered too thin to be documentation content.
	DefaultMinWordCount = 30
)

// boilerplateSelector matches elements that never carry documentation
// content on the sites we target.
const boilerplateSelector = "script, style, noscript, iframe, nav, header, footer, aside, form"

// containerSelector matches the block-level containers the pruning pass
// scores. Paragraphs and headings are deliberately excluded: they are
// judged by their enclosing container, not individually.
const containerSelector = "div, section, table, ul, ol"

// Pruning is a heuristic ContentFilter. It removes boilerplate elements
// outright, then prunes container blocks that are link-heavy or carry
// too few words, and converts what remains to Markdown.
type Pruning struct {
	threshold float64
	minWords  int
}

// PruningOption configures a Pruning filter.
type PruningOption func(*Pruning)

// WithPruneThreshold overrides the link-density threshold.
func WithPruneThreshold(threshold float64) PruningOption {
	return func(p *Pruning) {
		p.threshold = threshold
	}
}

// WithMinWordCount overrides the minimum word count for container blocks.
func WithMinWordCount(minWords int) PruningOption {
	return func(p *Pruning) {
		p.minWords = minWords
	}
}

// NewPruning creates a Pruning filter with the default thresholds.
func NewPruning(opts ...PruningOption) *Pruning {
	p := &Pruning{
		threshold: DefaultPruneThreshold,
		minWords:  DefaultMinWordCount,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Filter implements ContentFilter.
func (p *Pruning) Filter(_ context.Context, pageURL, html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML for %s: %w", pageURL, err)
	}

	doc.Find(boilerplateSelector).Remove()

	doc.Find(containerSelector).Each(func(_ int, s *goquery.Selection) {
		if p.shouldPrune(s) {
			s.Remove()
		}
	})

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize pruned HTML for %s: %w", pageURL, err)
	}
	return htmlmd.Convert(body)
}

// shouldPrune reports whether a container block looks like navigation
// or filler. A block is pruned when more than threshold of its words
// sit inside links, or when it holds fewer than minWords words while
// still containing links.
func (p *Pruning) shouldPrune(s *goquery.Selection) bool {
	words := wordCount(s.Text())
	if words == 0 {
		// Keep empty structural wrappers; their children are scored
		// separately and images carry no words.
		return false
	}

	linkWords := 0
	s.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkWords += wordCount(a.Text())
	})

	density := float64(linkWords) / float64(words)
	if density > p.threshold {
		return true
	}
	return words < p.minWords && linkWords > 0
}

// wordCount counts whitespace-separated tokens.
func wordCount(text string) int {
	return len(strings.Fields(text))
}
