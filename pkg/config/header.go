package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// headerSeparator splits a header record into name and value. The split is on
// the first occurrence; the value may contain further ": " sequences.
const headerSeparator = ": "

// ErrMissingSeparator reports a header record without a ": " separator.
var ErrMissingSeparator = errors.New("header must contain ': '")

type SeparatorError struct {
	Record string
}

func (e SeparatorError) Error() string {
	return fmt.Sprintf("the '%s' HTTP header must contain ': ' but it doesn't", e.Record)
}

func (e SeparatorError) Is(target error) bool { return target == ErrMissingSeparator }

// HeaderEntry is one HTTP header sent to sites matching its pattern. Value is
// the header value exactly as written in the config, $VAR references and
// escapes included. The expanded form may carry secrets pulled from the
// environment, so it lives in an unexported field that stays out of
// serialization, equality and log output; the outbound-request path reads it
// through Resolved.
type HeaderEntry struct {
	Name  string
	Value string

	resolved string
}

// ParseHeader parses a "Name: Value" record, expanding the value against the
// process environment.
func ParseHeader(record string) (HeaderEntry, error) {
	return ParseHeaderWith(record, os.LookupEnv)
}

// ParseHeaderWith parses a "Name: Value" record with an injected lookup
// source. The name is taken verbatim, untrimmed. Expansion failures reject
// the record outright: resolution happens at load time, not at request time.
func ParseHeaderWith(record string, lookup Lookup) (HeaderEntry, error) {
	idx := strings.Index(record, headerSeparator)
	if idx < 0 {
		return HeaderEntry{}, SeparatorError{Record: record}
	}
	name := record[:idx]
	value := record[idx+len(headerSeparator):]
	resolved, err := ExpandWith(value, lookup)
	if err != nil {
		return HeaderEntry{}, fmt.Errorf("invalid '%s' HTTP header: %w", name, err)
	}
	return HeaderEntry{Name: name, Value: value, resolved: resolved}, nil
}

// UnmarshalText lets decoders produce entries straight from "Name: Value"
// strings. Expansion runs against the process environment, same as
// ParseHeader.
func (h *HeaderEntry) UnmarshalText(text []byte) error {
	parsed, err := ParseHeader(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// MarshalText serializes the literal record form only.
func (h HeaderEntry) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HeaderEntry) UnmarshalYAML(value *yaml.Node) error {
	var record string
	if err := value.Decode(&record); err != nil {
		return err
	}
	return h.UnmarshalText([]byte(record))
}

func (h HeaderEntry) MarshalYAML() (interface{}, error) {
	return h.String(), nil
}

// Resolved returns the expanded value for constructing outbound requests.
// Never serialize or log the result.
func (h HeaderEntry) Resolved() string {
	return h.resolved
}

// String returns the record form the entry was parsed from, with the literal
// value. fmt verbs and zap.Stringer go through here, which keeps the
// resolved value out of accidental output.
func (h HeaderEntry) String() string {
	return h.Name + headerSeparator + h.Value
}

// Equal compares name and literal value only. Two entries parsed from the
// same record under different environments are equal.
func (h HeaderEntry) Equal(other HeaderEntry) bool {
	return h.Name == other.Name && h.Value == other.Value
}
