package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Lookup resolves a variable name during header interpolation. The boolean
// reports whether the variable is defined at all; an empty value with true is
// a legitimate result. os.LookupEnv satisfies this signature.
type Lookup func(name string) (string, bool)

// ErrMissingVar reports that a header value referenced a variable that the
// lookup source doesn't define.
var ErrMissingVar = errors.New("variable is not set")

type MissingVarError struct {
	Name string
}

func (e MissingVarError) Error() string {
	return fmt.Sprintf("can't expand '$%s': variable is not set", e.Name)
}

func (e MissingVarError) Is(target error) bool { return target == ErrMissingVar }

// Expand substitutes $NAME references in value with environment variables.
// A backslash escapes the character after it when that character is '$' or
// '\'; before anything else the backslash is kept as-is. A reference to an
// undefined variable fails the whole expansion, so a config never loads with
// a half-filled header.
func Expand(value string) (string, error) {
	return ExpandWith(value, os.LookupEnv)
}

// ExpandWith is Expand with an injected lookup source. Variable names are
// maximal runs of ASCII letters, digits and underscores after the '$'; a '$'
// followed by anything else references the empty name, which no lookup
// defines, and fails like any other missing variable.
func ExpandWith(value string, lookup Lookup) (string, error) {
	var b strings.Builder
	b.Grow(len(value))

	escaped := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		if escaped {
			if c != '$' && c != '\\' {
				// the escape only neutralizes '$' and '\'
				b.WriteByte('\\')
			}
			b.WriteByte(c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '$':
			j := i + 1
			for j < len(value) && isIdentChar(value[j]) {
				j++
			}
			name := value[i+1 : j]
			v, ok := lookup(name)
			if !ok {
				return "", MissingVarError{Name: name}
			}
			b.WriteString(v)
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}
	// trailing backslash
	if escaped {
		b.WriteByte('\\')
	}
	return b.String(), nil
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
