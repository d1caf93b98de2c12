// Package config defines the crawl configuration, its defaults, and its
// validation rules. Configuration is resolved once from CLI flags, the
// optional .docs2md.yml file, and the environment before a crawl starts;
// the crawler core receives an immutable Config and never re-reads flags
// or the environment mid-run.
package config
