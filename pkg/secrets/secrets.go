// Package secrets provides the variable sources the config loader expands
// $VAR references against.
package secrets

import (
	"os"

	"linkcheck/pkg/config"
)

// Env returns a lookup over the process environment.
func Env() config.Lookup {
	return os.LookupEnv
}

// Chain tries each lookup in order and returns the first hit.
func Chain(lookups ...config.Lookup) config.Lookup {
	return func(name string) (string, bool) {
		for _, lookup := range lookups {
			if value, ok := lookup(name); ok {
				return value, true
			}
		}
		return "", false
	}
}
