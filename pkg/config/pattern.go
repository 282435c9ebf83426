package config

import (
	"fmt"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

// Pattern is a compiled exclusion or header-target rule. Compiled regexes are
// interned by source, so two patterns built from the same source are equal
// under == and usable as one map key, independent of when they were compiled.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

var patternCache = struct {
	sync.RWMutex
	compiled map[string]*regexp.Regexp
}{compiled: make(map[string]*regexp.Regexp)}

// CompilePattern compiles source as a regular expression.
func CompilePattern(source string) (Pattern, error) {
	patternCache.RLock()
	re, ok := patternCache.compiled[source]
	patternCache.RUnlock()
	if ok {
		return Pattern{source: source, re: re}, nil
	}

	re, err := regexp.Compile(source)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern '%s': %w", source, err)
	}

	patternCache.Lock()
	// someone may have beaten us to it; keep the stored one so == holds
	if prev, ok := patternCache.compiled[source]; ok {
		re = prev
	} else {
		patternCache.compiled[source] = re
	}
	patternCache.Unlock()
	return Pattern{source: source, re: re}, nil
}

// MustPattern is CompilePattern for patterns known to be valid, such as test
// fixtures.
func MustPattern(source string) Pattern {
	p, err := CompilePattern(source)
	if err != nil {
		panic(err)
	}
	return p
}

// Matches reports whether the pattern matches anywhere in s. The zero
// Pattern matches nothing.
func (p Pattern) Matches(s string) bool {
	if p.re == nil {
		return false
	}
	return p.re.MatchString(s)
}

// String returns the pattern source as written in the config.
func (p Pattern) String() string {
	return p.source
}

// Equal compares pattern sources.
func (p Pattern) Equal(other Pattern) bool {
	return p.source == other.source
}

func (p *Pattern) UnmarshalText(text []byte) error {
	compiled, err := CompilePattern(string(text))
	if err != nil {
		return err
	}
	*p = compiled
	return nil
}

func (p Pattern) MarshalText() ([]byte, error) {
	return []byte(p.source), nil
}

func (p *Pattern) UnmarshalYAML(value *yaml.Node) error {
	var source string
	if err := value.Decode(&source); err != nil {
		return err
	}
	return p.UnmarshalText([]byte(source))
}

func (p Pattern) MarshalYAML() (interface{}, error) {
	return p.source, nil
}
