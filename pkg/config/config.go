package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the config file syntax. TOML is the canonical one; YAML is
// accepted as an alternate input.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// rawConfig is the decode target shared by both formats. Scalars are pointers
// so an absent field is distinguishable from an explicit zero: absent keeps
// the default, explicit zero overrides it.
type rawConfig struct {
	FollowWebLinks            *bool               `toml:"follow-web-links" yaml:"follow-web-links"`
	TraverseParentDirectories *bool               `toml:"traverse-parent-directories" yaml:"traverse-parent-directories"`
	Exclude                   []string            `toml:"exclude" yaml:"exclude"`
	UserAgent                 *string             `toml:"user-agent" yaml:"user-agent"`
	CacheTimeout              *uint64             `toml:"cache-timeout" yaml:"cache-timeout"`
	WarningPolicy             *string             `toml:"warning-policy" yaml:"warning-policy"`
	HTTPHeaders               map[string][]string `toml:"http-headers" yaml:"http-headers"`
}

// Load reads the config file at path, picking the format from the extension
// (.yaml/.yml for YAML, TOML otherwise). Header values are expanded against
// the process environment.
func Load(path string) (*Config, error) {
	return LoadWith(path, os.LookupEnv)
}

// LoadWith is Load with an injected lookup source for header interpolation.
func LoadWith(path string, lookup Lookup) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open config: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return FromReaderWith(f, formatForPath(path), lookup)
}

func formatForPath(path string) Format {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// FromReader decodes a config from r. Unknown fields are rejected in both
// formats. An empty input yields the defaults.
func FromReader(r io.Reader, format Format) (*Config, error) {
	return FromReaderWith(r, format, os.LookupEnv)
}

// FromReaderWith is FromReader with an injected lookup source. A single bad
// pattern or header record fails the whole load; there is no partial config.
func FromReaderWith(r io.Reader, format Format, lookup Lookup) (*Config, error) {
	raw := &rawConfig{}
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err := decoder.Decode(raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("can't decode config: %w", err)
		}
	default:
		decoder := toml.NewDecoder(r)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("can't decode config: %w", err)
		}
	}
	return raw.build(lookup)
}

// build applies the decoded fields over the defaults and runs the load-time
// work: pattern compilation and header interpolation.
func (raw *rawConfig) build(lookup Lookup) (*Config, error) {
	cfg := Default()
	if raw.FollowWebLinks != nil {
		cfg.FollowWebLinks = *raw.FollowWebLinks
	}
	if raw.TraverseParentDirectories != nil {
		cfg.TraverseParentDirectories = *raw.TraverseParentDirectories
	}
	if raw.UserAgent != nil {
		cfg.UserAgent = *raw.UserAgent
	}
	if raw.CacheTimeout != nil {
		cfg.CacheTimeout = *raw.CacheTimeout
	}
	if raw.WarningPolicy != nil {
		policy := WarningPolicy(*raw.WarningPolicy)
		if !policy.IsValid() {
			return nil, fmt.Errorf("invalid warning-policy '%s', must be one of: ignore, warn, error", policy)
		}
		cfg.WarningPolicy = policy
	}
	if raw.Exclude != nil {
		cfg.Exclude = make([]Pattern, 0, len(raw.Exclude))
		for _, source := range raw.Exclude {
			p, err := CompilePattern(source)
			if err != nil {
				return nil, fmt.Errorf("invalid exclude pattern: %w", err)
			}
			cfg.Exclude = append(cfg.Exclude, p)
		}
	}
	if raw.HTTPHeaders != nil {
		cfg.HTTPHeaders = make(map[string][]HeaderEntry, len(raw.HTTPHeaders))
		for source, records := range raw.HTTPHeaders {
			if _, err := CompilePattern(source); err != nil {
				return nil, fmt.Errorf("invalid http-headers pattern: %w", err)
			}
			entries := make([]HeaderEntry, 0, len(records))
			for _, record := range records {
				entry, err := ParseHeaderWith(record, lookup)
				if err != nil {
					return nil, err
				}
				entries = append(entries, entry)
			}
			cfg.HTTPHeaders[source] = entries
		}
	}
	return cfg, nil
}

// Marshal serializes cfg to its canonical TOML form: kebab-case fields,
// header values in their literal form, map keys sorted. Loading the result
// and marshaling again reproduces the same bytes.
func Marshal(cfg *Config) ([]byte, error) {
	raw := rawConfig{
		FollowWebLinks:            &cfg.FollowWebLinks,
		TraverseParentDirectories: &cfg.TraverseParentDirectories,
		Exclude:                   make([]string, 0, len(cfg.Exclude)),
		UserAgent:                 &cfg.UserAgent,
		CacheTimeout:              &cfg.CacheTimeout,
		HTTPHeaders:               make(map[string][]string, len(cfg.HTTPHeaders)),
	}
	policy := string(cfg.WarningPolicy)
	raw.WarningPolicy = &policy
	for _, p := range cfg.Exclude {
		raw.Exclude = append(raw.Exclude, p.String())
	}
	for source, entries := range cfg.HTTPHeaders {
		records := make([]string, 0, len(entries))
		for _, entry := range entries {
			records = append(records, entry.String())
		}
		raw.HTTPHeaders[source] = records
	}
	out, err := toml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("can't serialize config: %w", err)
	}
	return out, nil
}
