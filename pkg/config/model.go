// Package config holds the file configuration of the link checker: which
// links to skip, which HTTP headers outbound requests carry, timeouts and the
// warning policy. Header values may reference environment variables with
// $NAME; references are expanded once at load time and the expanded form is
// kept out of serialization, equality and logs.
package config

import (
	"sort"
	"time"
)

// toolVersion is duplicated in internal/linkcheck to avoid an import cycle;
// the release workflow stamps both.
const toolVersion = "0.1.0"

const (
	// DefaultCacheTimeout is how long a cached link check stays valid,
	// around 12 hours, in seconds.
	DefaultCacheTimeout uint64 = 60 * 60 * 12

	// DefaultUserAgent is sent with web requests unless user-agent is set.
	DefaultUserAgent = "linkcheck/" + toolVersion
)

// Config is the file configuration. Every field has a default, so a partial
// file (or none at all) always loads: absent fields keep their defaults,
// present fields override them, including explicit zero values.
type Config struct {
	// FollowWebLinks enables checking of links that go out to the
	// internet. Off by default because of the performance impact.
	FollowWebLinks bool
	// TraverseParentDirectories allows local links that escape the
	// directory being checked.
	TraverseParentDirectories bool
	// Exclude lists link patterns that are never checked.
	Exclude []Pattern
	// UserAgent is sent with every web request.
	UserAgent string
	// CacheTimeout is the number of seconds a cached link check is
	// reused. Zero disables reuse.
	CacheTimeout uint64
	// WarningPolicy decides what warning-grade findings do to the run.
	WarningPolicy WarningPolicy
	// HTTPHeaders maps a URL pattern source to the headers sent to
	// matching sites, each written as a "Name: Value" record.
	HTTPHeaders map[string][]HeaderEntry
}

// Default generates the default config.
func Default() *Config {
	return &Config{
		UserAgent:     DefaultUserAgent,
		CacheTimeout:  DefaultCacheTimeout,
		WarningPolicy: PolicyWarn,
		Exclude:       []Pattern{},
		HTTPHeaders:   map[string][]HeaderEntry{},
	}
}

// ShouldSkip reports whether link matches any exclude pattern. An empty
// exclude list skips nothing.
func (cfg *Config) ShouldSkip(link string) bool {
	for _, p := range cfg.Exclude {
		if p.Matches(link) {
			return true
		}
	}
	return false
}

// HeadersFor returns the header entries of every pattern matching url.
// Patterns are visited in sorted source order so the result is stable across
// runs.
func (cfg *Config) HeadersFor(url string) []HeaderEntry {
	if len(cfg.HTTPHeaders) == 0 {
		return nil
	}
	sources := make([]string, 0, len(cfg.HTTPHeaders))
	for src := range cfg.HTTPHeaders {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	var headers []HeaderEntry
	for _, src := range sources {
		p, err := CompilePattern(src)
		if err != nil {
			// keys are validated at load time
			continue
		}
		if p.Matches(url) {
			headers = append(headers, cfg.HTTPHeaders[src]...)
		}
	}
	return headers
}

// CacheTTL is CacheTimeout as a duration.
func (cfg *Config) CacheTTL() time.Duration {
	return time.Duration(cfg.CacheTimeout) * time.Second
}

// Equal compares configs field by field. Resolved header values don't take
// part: two configs loaded from the same file under different environments
// are equal.
func (cfg *Config) Equal(other *Config) bool {
	if cfg == nil || other == nil {
		return cfg == other
	}
	if cfg.FollowWebLinks != other.FollowWebLinks ||
		cfg.TraverseParentDirectories != other.TraverseParentDirectories ||
		cfg.UserAgent != other.UserAgent ||
		cfg.CacheTimeout != other.CacheTimeout ||
		cfg.WarningPolicy != other.WarningPolicy {
		return false
	}
	if len(cfg.Exclude) != len(other.Exclude) {
		return false
	}
	for i := range cfg.Exclude {
		if !cfg.Exclude[i].Equal(other.Exclude[i]) {
			return false
		}
	}
	if len(cfg.HTTPHeaders) != len(other.HTTPHeaders) {
		return false
	}
	for src, entries := range cfg.HTTPHeaders {
		otherEntries, ok := other.HTTPHeaders[src]
		if !ok || len(entries) != len(otherEntries) {
			return false
		}
		for i := range entries {
			if !entries[i].Equal(otherEntries[i]) {
				return false
			}
		}
	}
	return true
}
