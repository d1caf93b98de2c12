package filter

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/docs2md/internal/htmlmd"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultLLMModel is the chat model used for content extraction.
	DefaultLLMModel = openai.GPT4oMini

	// DefaultChunkTokenThreshold caps the size of each extraction
	// request, measured in (approximate) tokens.
	DefaultChunkTokenThreshold = 1500

	// charsPerToken is the rough character-to-token ratio used to size
	// chunks without pulling in a tokenizer.
	charsPerToken = 4
)

// llmInstruction is the system prompt for content extraction.
const llmInstruction = "Extract the essential content of the documentation in Markdown format, " +
	"omitting menus, sidebars, footers, and any irrelevant sections."

// LLM is a ContentFilter that delegates content extraction to an
// OpenAI-compatible chat model. The page is first converted to Markdown
// locally, then sent in bounded chunks; responses are concatenated in
// chunk order.
//
// Design decision: We convert to Markdown before sending rather than
// shipping raw HTML. Markdown is several times smaller in tokens for
// the same content, and the model only has to discard boilerplate, not
// parse markup.
type LLM struct {
	client         *openai.Client
	model          string
	chunkThreshold int
}

// LLMOption configures an LLM filter.
type LLMOption func(*llmSettings)

type llmSettings struct {
	model          string
	chunkThreshold int
	baseURL        string
}

// WithModel overrides the chat model.
func WithModel(model string) LLMOption {
	return func(s *llmSettings) {
		s.model = model
	}
}

// WithChunkTokenThreshold overrides the per-request token budget.
func WithChunkTokenThreshold(tokens int) LLMOption {
	return func(s *llmSettings) {
		s.chunkThreshold = tokens
	}
}

// WithBaseURL points the client at an alternative OpenAI-compatible
// endpoint. Used by tests and by self-hosted gateways.
func WithBaseURL(baseURL string) LLMOption {
	return func(s *llmSettings) {
		s.baseURL = baseURL
	}
}

// NewLLM creates an LLM filter authenticated with the given API key.
func NewLLM(apiKey string, opts ...LLMOption) *LLM {
	settings := &llmSettings{
		model:          DefaultLLMModel,
		chunkThreshold: DefaultChunkTokenThreshold,
	}
	for _, opt := range opts {
		opt(settings)
	}

	cfg := openai.DefaultConfig(apiKey)
	if settings.baseURL != "" {
		cfg.BaseURL = settings.baseURL
	}

	return &LLM{
		client:         openai.NewClientWithConfig(cfg),
		model:          settings.model,
		chunkThreshold: settings.chunkThreshold,
	}
}

// Filter implements ContentFilter.
func (l *LLM) Filter(ctx context.Context, pageURL, html string) (string, error) {
	md, err := htmlmd.Convert(html)
	if err != nil {
		return "", err
	}
	if md == "" {
		return "", nil
	}

	var out []string
	for _, chunk := range splitChunks(md, l.chunkThreshold*charsPerToken) {
		filtered, err := l.extract(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("failed to extract content for %s: %w", pageURL, err)
		}
		out = append(out, filtered)
	}
	return strings.TrimSpace(strings.Join(out, "\n\n")), nil
}

// extract sends one chunk to the model and returns its answer.
func (l *LLM) extract(ctx context.Context, chunk string) (string, error) {
	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llmInstruction},
			{Role: openai.ChatMessageRoleUser, Content: chunk},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// splitChunks splits text into pieces of at most maxChars characters,
// breaking on line boundaries where possible so Markdown structures
// stay intact.
func splitChunks(text string, maxChars int) []string {
	if maxChars <= 0 || len(text) <= maxChars {
		return []string{text}
	}

	var chunks []string
	lines := strings.Split(text, "\n")
	var buf strings.Builder
	for _, line := range lines {
		// A single oversized line is emitted as its own chunk rather
		// than split mid-line.
		if buf.Len() > 0 && buf.Len()+len(line)+1 > maxChars {
			chunks = append(chunks, buf.String())
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
	}
	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}
	return chunks
}
