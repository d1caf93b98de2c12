// Package filter reduces raw page HTML to the documentation content
// worth keeping, expressed as Markdown.
//
// Two strategies are provided:
//
//   - Pruning: a heuristic DOM pass that drops boilerplate elements and
//     link-heavy or near-empty blocks. No network access, no cost.
//   - LLM: delegates content extraction to an OpenAI-compatible chat
//     model. Higher quality on messy sites, but requires an API key and
//     a round-trip per content chunk.
//
// Both satisfy ContentFilter, so callers choose a strategy once and
// stay agnostic afterwards.
package filter
