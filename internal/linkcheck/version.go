package linkcheck

type VersionInfo struct {
	Version   string `json:"Version"`
	GitCommit string `json:"GitCommit"`
	BuildDate string `json:"BuildDate"`
}

// Version is stamped by the release workflow. The version string has a
// twin in pkg/config (default User-Agent); keep them in sync.
var Version = VersionInfo{
	Version:   "0.1.0",
	GitCommit: "",
	BuildDate: "",
}
