package config

import "fmt"

// WarningPolicy decides what happens with warning-grade findings: links that
// couldn't be verified because of auth walls, rate limits, flaky servers and
// the like. Broken links always fail the run regardless of the policy.
type WarningPolicy string

const (
	// PolicyIgnore drops warnings silently.
	PolicyIgnore WarningPolicy = "ignore"
	// PolicyWarn reports warnings but doesn't fail the run. The default.
	PolicyWarn WarningPolicy = "warn"
	// PolicyError treats warnings as broken links.
	PolicyError WarningPolicy = "error"
)

func (p WarningPolicy) IsValid() bool {
	switch p {
	case PolicyIgnore, PolicyWarn, PolicyError:
		return true
	}
	return false
}

func (p WarningPolicy) String() string {
	return string(p)
}

func (p *WarningPolicy) UnmarshalText(text []byte) error {
	got := WarningPolicy(text)
	if !got.IsValid() {
		return fmt.Errorf("invalid warning-policy '%s', must be one of: ignore, warn, error", text)
	}
	*p = got
	return nil
}

func (p WarningPolicy) MarshalText() ([]byte, error) {
	return []byte(p), nil
}
