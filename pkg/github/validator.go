// Package 'github' implements GitHub links validation, all links that can be requested via GitHub API.
// GitHub links are the links that point to files, commits, issues, releases and other
// objects in GitHub repositories (either public or enterprise GitHub)
// Example: [README](https://github.com/your-ko/link-validator/blob/main/README.md)
// links to a particular branch or commit are supported as well.

package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"go.uber.org/zap"

	"linkcheck/pkg/errs"
	"linkcheck/pkg/regex"
)

// handlers is a map from "typ" (blob/tree/raw/…/pulls) to the function.
var handlers = map[string]handlerEntry{
	"":     {name: "nope", fn: handleNothing},
	"nope": {name: "nope", fn: handleNothing},

	"blob":    {name: "contents", fn: handleContents},
	"tree":    {name: "contents", fn: handleContents},
	"raw":     {name: "contents", fn: handleContents},
	"blame":   {name: "contents", fn: handleContents},
	"compare": {name: "compare", fn: handleCompareCommits},

	// Single-object routes
	"repo":         {name: "repo-exist", fn: handleRepoExist},
	"commit":       {name: "commit", fn: handleCommit},
	"commits":      {name: "commit", fn: handleCommit},
	"pull":         {name: "pull", fn: handlePull},
	"issues":       {name: "issues", fn: handleIssue},
	"milestone":    {name: "milestone", fn: handleMilestone},
	"releases":     {name: "releases", fn: handleReleases},
	"advisories":   {name: "advisories", fn: handleSecurityAdvisories},
	"actions":      {name: "actions", fn: handleWorkflow},
	"user":         {name: "user", fn: handleUser},
	"orgs":         {name: "org-exist", fn: handleOrgExist},
	"wiki":         {name: "wiki", fn: handleWiki},
	"attestations": {name: "attestations", fn: handleAttestations},

	// Generic lists, we just validate the repo exists
	"pulls":       {name: "repo-exist", fn: handleRepoExist},
	"labels":      {name: "repo-exist", fn: handleRepoExist},
	"tags":        {name: "repo-exist", fn: handleRepoExist},
	"branches":    {name: "repo-exist", fn: handleRepoExist},
	"settings":    {name: "repo-exist", fn: handleRepoExist},
	"milestones":  {name: "repo-exist", fn: handleRepoExist},
	"discussions": {name: "repo-exist", fn: handleRepoExist},
	"projects":    {name: "repo-exist", fn: handleRepoExist},
	"security":    {name: "repo-exist", fn: handleRepoExist},
	"packages":    {name: "repo-exist", fn: handleRepoExist},
	"pkgs":        {name: "repo-exist", fn: handleRepoExist},
	"search":      {name: "repo-exist", fn: handleRepoExist},
}

// literal escape sequences and quotes show up around urls quoted inside
// docs, treat them as separators
var lineCleaner = strings.NewReplacer(`\n`, " ", `\t`, " ", `\r`, " ", `"`, " ", "'", " ")

type LinkProcessor struct {
	corpHost   string
	corpClient Client
	client     Client
	logger     *zap.Logger
}

func New(corpGitHubUrl, corpPat, publicPat string, timeout time.Duration, logger *zap.Logger) (*LinkProcessor, error) {
	client := github.NewClient(httpClient(timeout))
	if publicPat != "" {
		client = client.WithAuthToken(publicPat)
	}
	proc := &LinkProcessor{
		client: &wrapper{client: client},
		logger: logger,
	}
	if corpGitHubUrl == "" {
		return proc, nil
	}

	// Derive the bare host from corpGitHubUrl, e.g. "github.mycorp.com"
	u, err := url.Parse(corpGitHubUrl)
	if err != nil || u.Hostname() == "" {
		return nil, fmt.Errorf("invalid enterprise url: '%s'", corpGitHubUrl)
	}
	host := fmt.Sprintf("%s://%s", u.Scheme, u.Hostname())
	corpClient, err := github.NewClient(httpClient(timeout)).WithEnterpriseURLs(
		host,
		strings.ReplaceAll(host, "https://", "https://uploads."),
	)
	if err != nil {
		return nil, fmt.Errorf("can't create GitHub processor: %s", err)
	}
	if corpPat != "" {
		corpClient = corpClient.WithAuthToken(corpPat)
	}

	proc.corpHost = strings.ToLower(u.Hostname())
	proc.corpClient = &wrapper{client: corpClient}
	return proc, nil
}

func httpClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

type ghURL struct {
	enterprise bool
	host       string
	owner      string
	repo       string
	typ        string
	ref        string
	path       string
	anchor     string
}

func (proc *LinkProcessor) Process(ctx context.Context, link string, _ string) error {
	proc.logger.Debug("validating github url", zap.String("url", link))

	gh, err := parseUrl(link)
	if err != nil {
		return err
	}

	client := proc.client
	if gh.enterprise {
		if proc.corpHost == "" {
			return fmt.Errorf("the url '%s' looks like an enterprise url, but CORP_URL is not set", link)
		}
		if gh.host != proc.corpHost {
			return errs.NewUnverified(link, fmt.Sprintf("unknown enterprise host '%s'", gh.host))
		}
		client = proc.corpClient
	}

	entry, ok := handlers[gh.typ]
	if !ok {
		return fmt.Errorf("unsupported GitHub request type %q. Please open an issue", gh.typ)
	}
	proc.logger.Debug("using", zap.String("handler", entry.name))

	return mapGHError(link, entry.fn(ctx, client, gh.owner, gh.repo, gh.ref, gh.path, gh.anchor))
}

func parseUrl(link string) (*ghURL, error) {
	u, err := url.Parse(strings.TrimSuffix(link, ".git"))
	if err != nil {
		return nil, err
	}
	host := strings.ToLower(u.Hostname())
	if !strings.HasPrefix(host, "github.") {
		return nil, fmt.Errorf("not a GitHub URL")
	}

	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")

	gh := &ghURL{
		host:       host,
		enterprise: regex.EnterpriseGitHub.MatchString(host),
		anchor:     u.Fragment,
	}

	// Handle root GitHub URL
	if len(parts) <= 1 && parts[0] == "" {
		return gh, nil
	}

	// index-out-of-range prevention, joinPath stops at the first padding entry
	const maxParts = 10
	if len(parts) < maxParts {
		parts = append(parts, make([]string, maxParts-len(parts))...)
	}

	// Handle urls that don't start with the owner
	switch parts[0] {
	case "organizations", "orgs":
		gh.typ = "orgs"
		gh.owner = parts[1]
		gh.path = joinPath(parts[2:])
		return gh, nil
	case "settings", "api":
		gh.typ = "nope"
		gh.path = joinPath(parts[1:])
		return gh, nil
	}

	gh.owner = parts[0]
	gh.repo = parts[1]
	gh.typ = parts[2]

	switch gh.typ {
	case "":
		if gh.repo == "" {
			gh.typ = "user"
		} else {
			gh.typ = "repo"
		}
	case "branches", "settings", "tags", "labels", "packages", "pkgs",
		"pulls", "search", "milestones", "projects":
	// these above go to simple 'if repo exists' validation
	case "blob", "tree", "blame", "raw":
		gh.ref = parts[3]
		gh.path = joinPath(parts[4:])
	case "releases":
		switch parts[3] {
		case "tag", "download":
			gh.ref = parts[3]
			gh.path = joinPath(parts[4:])
		default:
			gh.path = parts[3]
		}
	case "commits", "commit", "issues", "pull", "discussions",
		"milestone", "attestations", "wiki", "compare", "actions":
		gh.ref = parts[3]
		gh.path = joinPath(parts[4:])
	case "security":
		// only 'advisories' can be looked up, the rest goes by 'handleRepoExist'
		if parts[3] == "advisories" && parts[4] != "" {
			gh.typ = "advisories"
			gh.ref = parts[4]
		}
	default:
		return nil, fmt.Errorf("unsupported GitHub URL found '%s', please report a bug", link)
	}

	return gh, nil
}

func joinPath(parts []string) string {
	i := 0
	for ; i < len(parts) && parts[i] != ""; i++ {
	} // find first empty
	if i == 0 {
		return ""
	}
	if i == 1 {
		return parts[0]
	}
	return strings.Join(parts[:i], "/")
}

func (proc *LinkProcessor) ExtractLinks(line string) []string {
	parts := regex.GitHub.FindAllString(lineCleaner.Replace(line), -1)
	if len(parts) == 0 {
		return nil
	}

	urls := make([]string, 0, len(parts))
	for _, raw := range parts {
		if strings.ContainsAny(raw, "[]{}") {
			// templated urls like https://github.com/org/{repo}
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			continue
		}
		urls = append(urls, raw)
	}
	if len(urls) == 0 {
		return nil
	}
	return urls
}
