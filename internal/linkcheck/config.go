package linkcheck

import "time"

// Runtime holds the knobs that come from flags and the environment. The
// file config in pkg/config travels with the checked repository; this one
// belongs to the invocation.
type Runtime struct {
	Dir          string   // directory to walk for files to check
	Files        []string // explicit files to check instead of walking
	FileMasks    []string // base name globs, e.g. *.md
	ExcludePaths []string // paths dropped from the discovered set
	ConfigPath   string   // file config location, empty means defaults

	Timeout time.Duration

	PAT           string // github.com token
	CorpPAT       string // enterprise GitHub token
	CorpGitHubURL string // enterprise GitHub base url

	VaultAddr  string
	VaultToken string
	VaultPath  string

	DDAPIKey string
	DDAppKey string

	CachePath string // overrides the default cache location
	NoCache   bool   // disables the cache entirely
}
