package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoStartURL is returned when no start URL is provided.
	ErrNoStartURL = errors.New("no start URL specified: provide the documentation URL as the first argument")

	// ErrInvalidStartURL is returned when the start URL cannot be parsed
	// or has no host component.
	ErrInvalidStartURL = errors.New("invalid start URL: must be an absolute URL with a host")

	// ErrNoDocName is returned when the documentation folder name is empty.
	ErrNoDocName = errors.New("no doc name specified: use --doc-name to name the output folder")

	// ErrInvalidDepth is returned when the maximum crawl depth is negative.
	// Depth 0 is valid and means only the seed page is fetched.
	ErrInvalidDepth = errors.New("invalid depth: must be zero or positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no fetches are ever dispatched.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidOutputMode is returned for an unrecognized output mode.
	ErrInvalidOutputMode = errors.New("invalid output mode: must be \"aggregate\" or \"mirror\"")

	// ErrInvalidFilterMode is returned for an unrecognized content-filter mode.
	ErrInvalidFilterMode = errors.New("invalid filter mode: must be \"heuristic\" or \"llm\"")

	// ErrMissingAPIKey is returned when LLM filtering is requested without
	// an OpenAI API key. This is checked before the crawl starts so the
	// failure is never discovered mid-crawl.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY is required when using LLM filtering: pass --openai-key, set it in .env, or export it")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidRateLimit is returned when the request rate limit is negative.
	// Zero disables rate limiting.
	ErrInvalidRateLimit = errors.New("invalid rate limit: must be non-negative")
)
